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

// Package std is the generic base factory chain: the fallback consulted
// when no direct mapping overrides a type.
//
// For each creation category the chain first asks its extensions, in
// registration order, first non-nil handler wins; only then does it build
// its own reflective handler. Map-shaped and tree-shaped targets have no
// construction path here.
package std

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/dxapi/category"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dfx(std): nil reflect.Type provided")
	// ErrNilExtension is returned when a nil extension is provided.
	ErrNilExtension = errors.New("dfx(std): nil extension provided")
	// ErrNoHandler indicates that no handler can be constructed for a type.
	ErrNoHandler = errors.New("dfx(std): no handler constructible")
)

// New constructs a base chain seeded with the given extensions.
// Nil extensions are ignored. The returned factory is immutable.
func New(exts ...apis.Extension) *Factory {
	out := make([]apis.Extension, 0, len(exts))
	for _, e := range exts {
		if e != nil {
			out = append(out, e)
		}
	}
	return &Factory{exts: out}
}

// Factory is the reflective base chain. It holds only its extension list
// and is safe for unsynchronized concurrent use.
type Factory struct {
	exts []apis.Extension
}

// Ensure Factory implements apis.Factory.
var _ apis.Factory = (*Factory)(nil)

// Extensions returns a copy of the extension chain in consultation order.
func (f *Factory) Extensions() []apis.Extension {
	return append([]apis.Extension(nil), f.exts...)
}

// WithExtension returns a new base chain carrying every existing extension
// plus ext. The receiver is left untouched.
func (f *Factory) WithExtension(ext apis.Extension) (apis.Factory, error) {
	if ext == nil {
		return nil, ErrNilExtension
	}
	n := make([]apis.Extension, 0, len(f.exts)+1)
	n = append(n, f.exts...)
	n = append(n, ext)
	return &Factory{exts: n}, nil
}

// CreateStructHandler builds a handler for the record-like type t.
func (f *Factory) CreateStructHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if h, err := f.find(category.Struct, cfg, t); err != nil || h != nil {
		return h, err
	}
	return newStructHandler(cfg, t)
}

// CreateArrayHandler builds a handler for the array-like type t.
func (f *Factory) CreateArrayHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if h, err := f.find(category.Array, cfg, t); err != nil || h != nil {
		return h, err
	}
	return newArrayHandler(cfg, t)
}

// CreateEnumHandler builds a handler for the enumerated type t.
// Enumerated types have no subtype relationships, so beyond the extension
// chain only the reflective textual/numeric handler can apply.
func (f *Factory) CreateEnumHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if h, err := f.find(category.Enum, cfg, t); err != nil || h != nil {
		return h, err
	}
	return newEnumHandler(cfg, t)
}

// find runs the extension chain in order until one covers t.
func (f *Factory) find(cat category.Category, cfg apis.Config, t reflect.Type) (apis.Handler, error) {
	for _, e := range f.exts {
		h, err := e.FindHandler(cat, cfg, t)
		if err != nil {
			return nil, err
		}
		if h != nil {
			return h, nil
		}
	}
	return nil, nil
}

// assign stores src into dst, converting covariantly produced values when
// the types allow it.
func assign(dst, src reflect.Value) error {
	if !src.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	st, dt := src.Type(), dst.Type()
	switch {
	case st.AssignableTo(dt):
		dst.Set(src)
	case st.ConvertibleTo(dt):
		dst.Set(src.Convert(dt))
	default:
		return errors.Errorf("dfx(std): %s value not assignable to %s", st, dt)
	}
	return nil
}
