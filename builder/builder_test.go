/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package builder_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/builder"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/dxapi/category"
	"dirpx.dev/dfx/factory"
	"dirpx.dev/dfx/std"
)

type ticket struct {
	ID string `json:"id"`
}

type stubHandler struct{ id string }

func (h *stubHandler) Materialize(_ any, _ apis.Provider) (reflect.Value, error) {
	return reflect.ValueOf(h.id), nil
}

type stubExtension struct{}

func (stubExtension) FindHandler(_ category.Category, _ apis.Config, _ reflect.Type) (apis.Handler, error) {
	return nil, nil
}

func TestBuildBase(t *testing.T) {
	b := builder.New()

	f := b.BuildBase(config.DefaultConfig(), nil)
	require.IsType(t, &std.Factory{}, f)

	f = b.BuildBase(config.DefaultConfig(), []apis.Extension{stubExtension{}})
	require.Len(t, f.(*std.Factory).Extensions(), 1)
}

func TestBuildFactory_FreshFacade(t *testing.T) {
	b := builder.New()
	base := std.New()

	f := b.BuildFactory(config.DefaultConfig(), base, nil, nil)
	c, ok := f.(*factory.Custom)
	require.True(t, ok)
	assert.Same(t, base, c.Base())
	assert.Equal(t, 0, c.Mappings().Count())
}

func TestBuildFactory_MigratesState(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := b.BuildFactory(cfg, std.New(), nil, nil).(*factory.Custom)
	h := &stubHandler{id: "ticket"}
	require.NoError(t, prev.Register(reflect.TypeOf(ticket{}), h))
	require.NoError(t, prev.SetMixIn(reflect.TypeOf(ticket{}), reflect.TypeOf(struct{}{})))

	prev2, err := prev.WithExtension(stubExtension{})
	require.NoError(t, err)

	next := b.BuildFactory(cfg, std.New(), prev2, nil).(*factory.Custom)

	got, err := next.CreateStructHandler(cfg, reflect.TypeOf(ticket{}), nil)
	require.NoError(t, err)
	assert.Same(t, h, got, "direct mappings carry into the new facade")
	assert.Equal(t, 1, next.MixIns().Count())
	assert.Len(t, next.Extensions(), 1)

	// The registries are shared: a registration on the old facade is
	// visible through the new one.
	h2 := &stubHandler{id: "late"}
	require.NoError(t, prev.Register(reflect.TypeOf(""), h2))
	got, err = next.CreateEnumHandler(cfg, reflect.TypeOf(""), nil)
	require.NoError(t, err)
	assert.Same(t, h2, got)
}

func TestBuildFactory_NilBaseGetsFreshChain(t *testing.T) {
	b := builder.New()

	f := b.BuildFactory(config.DefaultConfig(), nil, nil, nil)
	c, ok := f.(*factory.Custom)
	require.True(t, ok)
	require.IsType(t, &std.Factory{}, c.Base())
}

func TestBuildFactory_NonFacadePrevIgnored(t *testing.T) {
	b := builder.New()

	f := b.BuildFactory(config.DefaultConfig(), std.New(), std.New(), nil)
	c, ok := f.(*factory.Custom)
	require.True(t, ok)
	assert.Equal(t, 0, c.Mappings().Count())
	assert.Empty(t, c.Extensions())
}
