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

// Package provider supplies the default apis.Provider: it categorizes a
// target type, routes it to the matching factory entry point, materializes
// plain scalars itself, and memoizes resolved handlers.
//
// Map-shaped targets have no creation category in the factory chain; the
// provider reports them as unsupported rather than guessing a shape.
package provider

import (
	"math"
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dfx(provider): nil reflect.Type provided")
	// ErrUnsupportedShape indicates a target shape with no creation
	// category (maps, channels, funcs, non-empty interfaces).
	ErrUnsupportedShape = errors.New("dfx(provider): target shape has no creation category")
)

// New constructs a provider routing category creation through f.
func New(f apis.Factory) *Std {
	return &Std{f: f}
}

// Std is the standard provider. It is bound to one (frozen) factory and is
// safe for unsynchronized concurrent use.
type Std struct {
	f     apis.Factory
	cache sync.Map // cacheKey -> apis.Handler
}

// Ensure Std implements apis.Provider.
var _ apis.Provider = (*Std)(nil)

// cacheKey ensures memoization respects the config knobs that affect
// handler construction, including the mixin overlay (by reference
// identity) since it shapes struct introspection. The provider is bound to
// one factory, so the factory's registries need not appear in the key.
type cacheKey struct {
	t         reflect.Type
	tagName   string
	maxUnwrap int16
	fold      bool
	mixins    apis.MixIns
}

// HandlerFor returns a handler able to materialize values of t, memoized
// per (type, config knobs).
func (p *Std) HandlerFor(cfg apis.Config, t reflect.Type) (apis.Handler, error) {
	if t == nil {
		return nil, ErrNilType
	}
	key := cacheKey{t: t, tagName: cfg.TagName, maxUnwrap: int16(cfg.MaxUnwrap), fold: cfg.FoldEnumCase, mixins: cfg.MixIns}
	if v, ok := p.cache.Load(key); ok {
		return v.(apis.Handler), nil
	}

	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}
	h, err := p.build(cfg, t, depth)
	if err != nil {
		return nil, err
	}
	p.cache.Store(key, h)
	return h, nil
}

// build routes t to its creation category.
func (p *Std) build(cfg apis.Config, t reflect.Type, depth int) (apis.Handler, error) {
	switch {
	case t.Kind() == reflect.Ptr:
		if depth <= 0 {
			return nil, errors.Wrapf(ErrUnsupportedShape, "%s: pointer nesting exceeds MaxUnwrap", t)
		}
		inner, err := p.build(cfg, t.Elem(), depth-1)
		if err != nil {
			return nil, err
		}
		return &ptrHandler{t: t, inner: inner}, nil

	case t.Kind() == reflect.Struct:
		return p.f.CreateStructHandler(cfg, t, p)

	case t.Kind() == reflect.Slice, t.Kind() == reflect.Array:
		return p.f.CreateArrayHandler(cfg, t, p)

	case isEnum(t):
		return p.f.CreateEnumHandler(cfg, t, p)

	case isScalar(t):
		return scalarHandler{t: t}, nil

	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		return identityHandler{}, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedShape, "%s (kind %s)", t, t.Kind())
	}
}

// isEnum reports whether t is a named, package-level type over a scalar
// kind: the enumerated creation category.
func isEnum(t reflect.Type) bool {
	if t.Name() == "" || t.PkgPath() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// isScalar reports whether t is a builtin scalar kind with no enum
// identity of its own.
func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// scalarHandler materializes builtin scalar values from decoded forms.
type scalarHandler struct {
	t reflect.Type
}

func (h scalarHandler) Materialize(raw any, _ apis.Provider) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(h.t), nil
	}
	v := reflect.ValueOf(raw)
	if v.Type().AssignableTo(h.t) {
		return v, nil
	}
	// Codec layers commonly deliver every number as float64; reject silent
	// truncation, unsigned wraparound and rune-style number-to-string
	// conversion.
	if f, ok := raw.(float64); ok && isIntegerKind(h.t.Kind()) {
		if f != math.Trunc(f) {
			return reflect.Value{}, errors.Errorf("dfx(provider): %s: fractional value %v", h.t, f)
		}
		if f < 0 && isUnsignedKind(h.t.Kind()) {
			return reflect.Value{}, errors.Errorf("dfx(provider): %s: negative value %v", h.t, f)
		}
	}
	if (h.t.Kind() == reflect.String) != (v.Kind() == reflect.String) {
		return reflect.Value{}, errors.Errorf("dfx(provider): %s: cannot decode %T", h.t, raw)
	}
	if v.Type().ConvertibleTo(h.t) {
		return v.Convert(h.t), nil
	}
	return reflect.Value{}, errors.Errorf("dfx(provider): %s: cannot decode %T", h.t, raw)
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// identityHandler passes the decoded form through for empty-interface
// targets.
type identityHandler struct{}

func (identityHandler) Materialize(raw any, _ apis.Provider) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(reflect.TypeOf((*any)(nil)).Elem()), nil
	}
	return reflect.ValueOf(raw), nil
}

// ptrHandler wraps an element handler, allocating the pointer cell.
type ptrHandler struct {
	t     reflect.Type
	inner apis.Handler
}

func (h *ptrHandler) Materialize(raw any, p apis.Provider) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(h.t), nil
	}
	ev, err := h.inner.Materialize(raw, p)
	if err != nil {
		return reflect.Value{}, err
	}
	pv := reflect.New(h.t.Elem())
	et := pv.Elem().Type()
	switch {
	case ev.Type().AssignableTo(et):
		pv.Elem().Set(ev)
	case ev.Type().ConvertibleTo(et):
		pv.Elem().Set(ev.Convert(et))
	default:
		return reflect.Value{}, errors.Errorf("dfx(provider): %s value not assignable to %s", ev.Type(), et)
	}
	return pv, nil
}
