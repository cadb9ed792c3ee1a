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

// Package factory implements the override facade in front of a base
// factory chain.
//
// Each creation entry point checks the direct mapping table first; a hit
// returns the registered handler with no further delegation and no merging.
// A miss delegates to the base chain verbatim, arguments and result alike.
//
// A facade is configured from a single goroutine (Register, SetMixIn),
// then frozen and shared; every Create call on a frozen facade is a pure
// read. WithExtension never mutates the receiver: it returns a fresh
// facade whose base chain carries the additional extension, structurally
// sharing the mapping and mixin registries (they are not
// extension-dependent).
package factory

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/overlay"
	"dirpx.dev/dfx/registry"
)

var (
	// ErrNilBase is returned when a facade is constructed without a base chain.
	ErrNilBase = errors.New("dfx(factory): nil base factory")
	// ErrNilExtension is returned when a nil extension is provided.
	ErrNilExtension = errors.New("dfx(factory): nil extension provided")
)

// Construct builds a specialized facade from the copied core state.
// Specializations that embed Custom supply one via Adopt so WithExtension
// can rebuild them without losing their extra state.
type Construct func(base apis.Factory, maps apis.Mappings, mix apis.MixIns, exts []apis.Extension) (apis.Factory, error)

// Option configures a Custom facade during construction.
type Option func(*Custom)

// WithMappings seeds the facade with an existing direct mapping table.
func WithMappings(m apis.Mappings) Option {
	return func(c *Custom) {
		if m != nil {
			c.maps = m
		}
	}
}

// WithMixIns seeds the facade with an existing mixin overlay registry.
func WithMixIns(m apis.MixIns) Option {
	return func(c *Custom) {
		if m != nil {
			c.mix = m
		}
	}
}

// WithExtensions seeds the facade's extension list. Nil entries are ignored.
func WithExtensions(exts ...apis.Extension) Option {
	return func(c *Custom) {
		for _, e := range exts {
			if e != nil {
				c.exts = append(c.exts, e)
			}
		}
	}
}

// New constructs an override facade over base.
//
// The base chain is consulted on every direct-mapping miss and is expected
// to already carry any extensions passed via WithExtensions.
func New(base apis.Factory, opts ...Option) (*Custom, error) {
	if base == nil {
		return nil, ErrNilBase
	}
	c := &Custom{base: base}
	for _, opt := range opts {
		opt(c)
	}
	if c.maps == nil {
		c.maps = registry.New()
	}
	if c.mix == nil {
		c.mix = overlay.New()
	}
	return c, nil
}

// Custom is the override facade: direct mappings and mixin overlays in
// front of a generic base chain, plus the ordered extension list.
type Custom struct {
	base apis.Factory
	maps apis.Mappings
	mix  apis.MixIns
	exts []apis.Extension

	// outer and construct are set through Adopt by specializations that
	// embed Custom while holding state of their own.
	outer     apis.Factory
	construct Construct
}

// Ensure Custom implements the factory and configuration contracts.
var (
	_ apis.Factory    = (*Custom)(nil)
	_ apis.Configurer = (*Custom)(nil)
)

// Adopt marks the facade as embedded inside outer. Specializations with
// state beyond Custom must also supply a Construct so WithExtension can
// rebuild them; adopting without one makes WithExtension fail fast instead
// of silently dropping the specialization's state.
func (c *Custom) Adopt(outer apis.Factory, construct Construct) {
	c.outer = outer
	c.construct = construct
}

// Register maps exactly t to h. Later registrations for the same type
// replace earlier ones. Configuration phase only.
func (c *Custom) Register(t reflect.Type, h apis.Handler) error {
	return c.maps.Add(t, h)
}

// SetMixIn directs introspection of dst to also consider property metadata
// declared on src. Configuration phase only.
func (c *Custom) SetMixIn(dst, src reflect.Type) error {
	return c.mix.Set(dst, src)
}

// Base exposes the underlying chain for diagnostics and migration.
func (c *Custom) Base() apis.Factory { return c.base }

// Mappings exposes the direct mapping table for diagnostics and migration.
func (c *Custom) Mappings() apis.Mappings { return c.maps }

// MixIns exposes the mixin overlay registry; the introspection engine
// consults it through Config.
func (c *Custom) MixIns() apis.MixIns { return c.mix }

// Extensions returns a copy of the accumulated extension list in
// registration order.
func (c *Custom) Extensions() []apis.Extension {
	return append([]apis.Extension(nil), c.exts...)
}

// WithExtension returns a new facade whose base chain carries ext in
// addition to every previously accumulated extension. The receiver and its
// extension list are left untouched; the mapping and mixin registries are
// shared with the new facade.
func (c *Custom) WithExtension(ext apis.Extension) (apis.Factory, error) {
	if ext == nil {
		return nil, ErrNilExtension
	}
	if c.outer != nil && c.construct == nil {
		return nil, errors.Errorf(
			"dfx(factory): specialized factory %T adopted without a construct path: extending it here would drop its state",
			c.outer)
	}

	nbase, err := c.base.WithExtension(ext)
	if err != nil {
		return nil, err
	}
	nexts := make([]apis.Extension, 0, len(c.exts)+1)
	nexts = append(nexts, c.exts...)
	nexts = append(nexts, ext)

	if c.construct != nil {
		return c.construct(nbase, c.maps, c.mix, nexts)
	}
	return &Custom{base: nbase, maps: c.maps, mix: c.mix, exts: nexts}, nil
}

// CreateStructHandler resolves the record-like type t: direct mapping
// first, base chain on a miss.
func (c *Custom) CreateStructHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if h, ok := c.maps.Lookup(t); ok {
		return h, nil
	}
	return c.base.CreateStructHandler(c.fill(cfg), t, p)
}

// CreateArrayHandler resolves the array-like type t: direct mapping first,
// base chain on a miss.
func (c *Custom) CreateArrayHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if h, ok := c.maps.Lookup(t); ok {
		return h, nil
	}
	return c.base.CreateArrayHandler(c.fill(cfg), t, p)
}

// CreateEnumHandler resolves the enumerated type t: direct mapping first,
// base chain on a miss.
func (c *Custom) CreateEnumHandler(cfg apis.Config, t reflect.Type, p apis.Provider) (apis.Handler, error) {
	if h, ok := c.maps.Lookup(t); ok {
		return h, nil
	}
	return c.base.CreateEnumHandler(c.fill(cfg), t, p)
}

// fill supplies the facade's own overlay registry when the caller's config
// carries none, so introspection downstream sees the mixins registered here.
func (c *Custom) fill(cfg apis.Config) apis.Config {
	if cfg.MixIns == nil {
		cfg.MixIns = c.mix
	}
	return cfg
}
