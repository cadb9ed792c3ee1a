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

package provider_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/overlay"
	"dirpx.dev/dfx/provider"
	"dirpx.dev/dfx/std"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type color string

// countingFactory counts how many times each create entry point runs, so
// memoization is observable.
type countingFactory struct {
	apis.Factory
	structs int
}

func (f *countingFactory) CreateStructHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	f.structs++
	return f.Factory.CreateStructHandler(cfg, t, p)
}

func TestHandlerFor_CategoryRouting(t *testing.T) {
	p := provider.New(std.New())
	cfg := config.DefaultConfig()

	for _, tc := range []struct {
		target reflect.Type
		raw    any
		want   any
	}{
		{reflect.TypeOf(point{}), map[string]any{"x": float64(1), "y": float64(2)}, point{X: 1, Y: 2}},
		{reflect.TypeOf([]int{}), []any{float64(1), float64(2)}, []int{1, 2}},
		{reflect.TypeOf(color("")), "teal", color("teal")},
		{reflect.TypeOf(0), float64(7), 7},
		{reflect.TypeOf(""), "plain", "plain"},
		{reflect.TypeOf(false), true, true},
		{reflect.TypeOf(0.0), float64(1.5), 1.5},
	} {
		h, err := p.HandlerFor(cfg, tc.target)
		require.NoError(t, err, tc.target.String())
		v, err := h.Materialize(tc.raw, p)
		require.NoError(t, err, tc.target.String())
		assert.Equal(t, tc.want, v.Interface(), tc.target.String())
	}
}

func TestHandlerFor_PointerTargets(t *testing.T) {
	p := provider.New(std.New())
	cfg := config.DefaultConfig()

	h, err := p.HandlerFor(cfg, reflect.TypeOf(&point{}))
	require.NoError(t, err)

	v, err := h.Materialize(map[string]any{"x": float64(3)}, p)
	require.NoError(t, err)
	require.IsType(t, &point{}, v.Interface())
	assert.Equal(t, point{X: 3}, *v.Interface().(*point))

	v, err = h.Materialize(nil, p)
	require.NoError(t, err)
	assert.Nil(t, v.Interface())
}

func TestHandlerFor_PointerNestingBounded(t *testing.T) {
	cfg := config.NewConfig(config.WithMaxUnwrap(2))
	p := provider.New(std.New())

	_, err := p.HandlerFor(cfg, reflect.TypeOf((***int)(nil)))
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnsupportedShape)

	_, err = p.HandlerFor(cfg, reflect.TypeOf((**int)(nil)))
	assert.NoError(t, err)
}

func TestHandlerFor_EmptyInterfacePassthrough(t *testing.T) {
	p := provider.New(std.New())

	h, err := p.HandlerFor(config.DefaultConfig(), reflect.TypeOf((*any)(nil)).Elem())
	require.NoError(t, err)

	raw := map[string]any{"free": "form"}
	v, err := h.Materialize(raw, p)
	require.NoError(t, err)
	assert.Equal(t, raw, v.Interface())
}

func TestHandlerFor_UnsupportedShapes(t *testing.T) {
	p := provider.New(std.New())
	cfg := config.DefaultConfig()

	for _, target := range []reflect.Type{
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(make(chan int)),
		reflect.TypeOf(func() {}),
		reflect.TypeOf((*error)(nil)).Elem(),
	} {
		_, err := p.HandlerFor(cfg, target)
		assert.ErrorIs(t, err, provider.ErrUnsupportedShape, target.String())
	}

	_, err := p.HandlerFor(cfg, nil)
	assert.ErrorIs(t, err, provider.ErrNilType)
}

func TestScalar_ConversionGuards(t *testing.T) {
	p := provider.New(std.New())
	cfg := config.DefaultConfig()

	ih, err := p.HandlerFor(cfg, reflect.TypeOf(0))
	require.NoError(t, err)

	_, err = ih.Materialize(float64(1.5), p)
	require.Error(t, err, "fractional values must not truncate")

	_, err = ih.Materialize("12", p)
	require.Error(t, err, "no implicit text-to-number conversion")

	sh, err := p.HandlerFor(cfg, reflect.TypeOf(""))
	require.NoError(t, err)

	_, err = sh.Materialize(float64(65), p)
	require.Error(t, err, "no rune-style number-to-string conversion")

	v, err := sh.Materialize(nil, p)
	require.NoError(t, err)
	assert.Equal(t, "", v.Interface())

	uh, err := p.HandlerFor(cfg, reflect.TypeOf(uint(0)))
	require.NoError(t, err)

	_, err = uh.Materialize(float64(-3), p)
	require.Error(t, err, "negative values must not wrap into unsigned kinds")

	v, err = uh.Materialize(float64(3), p)
	require.NoError(t, err)
	assert.Equal(t, uint(3), v.Interface())
}

func TestHandlerFor_Memoizes(t *testing.T) {
	cf := &countingFactory{Factory: std.New()}
	p := provider.New(cf)
	cfg := config.DefaultConfig()
	pt := reflect.TypeOf(point{})

	h1, err := p.HandlerFor(cfg, pt)
	require.NoError(t, err)
	h2, err := p.HandlerFor(cfg, pt)
	require.NoError(t, err)

	assert.Same(t, h1, h2)
	assert.Equal(t, 1, cf.structs, "second lookup served from cache")

	// A different knob set builds a distinct handler.
	_, err = p.HandlerFor(config.NewConfig(config.WithTagName("yaml")), pt)
	require.NoError(t, err)
	assert.Equal(t, 2, cf.structs)
}

func TestHandlerFor_MixInAwareMemoization(t *testing.T) {
	type counterView struct {
		N int `json:"count"`
	}
	type counter struct {
		N int `json:"n"`
	}

	p := provider.New(std.New())
	ct := reflect.TypeOf(counter{})

	h1, err := p.HandlerFor(config.DefaultConfig(), ct)
	require.NoError(t, err)

	ov := overlay.New()
	require.NoError(t, ov.Set(ct, reflect.TypeOf(counterView{})))
	cfg := config.NewConfig(config.WithMixIns(ov))

	h2, err := p.HandlerFor(cfg, ct)
	require.NoError(t, err)
	assert.NotSame(t, h1, h2, "an overlay change must not reuse the cached handler")

	v, err := h2.Materialize(map[string]any{"count": float64(9)}, p)
	require.NoError(t, err)
	assert.Equal(t, counter{N: 9}, v.Interface())

	// The overlay-free handler stays cached and unaffected.
	v, err = h1.Materialize(map[string]any{"n": float64(4)}, p)
	require.NoError(t, err)
	assert.Equal(t, counter{N: 4}, v.Interface())
}
