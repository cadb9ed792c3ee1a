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

package dfx

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/builder"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/provider"
)

// init initializes the global fac state.
func init() {
	// Initialize state with default cfg, bld, and fac.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.fac = b.BuildFactory(s.cfg, nil, nil, nil)
	s.prov = provider.New(s.fac)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilFactory is returned when a builder returns a nil factory.
	ErrNilFactory = errors.New("dfx: builder returned nil factory")
	// ErrNotConfigurable is returned when the installed factory does not
	// expose the configuration surface.
	ErrNotConfigurable = errors.New("dfx: installed factory is not configurable")
)

// HandlerFor resolves a handler for t using the global factory and
// configuration. This is a convenience wrapper around the global prov.
func HandlerFor(t reflect.Type) (apis.Handler, error) {
	s := st.Load()
	return s.prov.HandlerFor(s.cfg, t)
}

// Materialize decodes the codec-provided raw form into a value of t using
// the global factory and configuration.
func Materialize(t reflect.Type, raw any) (reflect.Value, error) {
	s := st.Load()
	h, err := s.prov.HandlerFor(s.cfg, t)
	if err != nil {
		return reflect.Value{}, err
	}
	return h.Materialize(raw, s.prov)
}

// Register adds a direct type-handler mapping to the global factory.
// This is a convenience wrapper around the global fac.
func Register(t reflect.Type, h apis.Handler) error {
	c, ok := st.Load().fac.(apis.Configurer)
	if !ok {
		return ErrNotConfigurable
	}
	return c.Register(t, h)
}

// SetMixIn records a mixin overlay on the global factory.
// This is a convenience wrapper around the global fac.
func SetMixIn(dst, src reflect.Type) error {
	c, ok := st.Load().fac.(apis.Configurer)
	if !ok {
		return ErrNotConfigurable
	}
	return c.SetMixIn(dst, src)
}

// AddExtension derives a new global factory carrying every prior extension
// plus ext, and publishes it. Prior snapshots held by in-flight readers are
// unaffected.
func AddExtension(ext apis.Extension) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	nfac, err := old.fac.WithExtension(ext)
	if err != nil {
		return err
	}
	if nfac == nil {
		return ErrNilFactory
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			fac:  nfac,
			prov: provider.New(nfac),
			bld:  old.bld,
			pfac: old.pfac,
		},
	)
	return nil
}

// SetAll explicitly sets all global dfx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, fac apis.Factory, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension context
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Factory
	nfac := fac
	npfac := false
	if nfac == nil {
		nfac = nbld.BuildFactory(ncfg, nil, old.fac, next)
	} else {
		npfac = true
	}

	// Ensure a non-nil fac.
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			fac:  nfac,
			prov: provider.New(nfac),
			bld:  nbld,
			pfac: npfac,
		},
	)
}

// Config returns the global dfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global dfx configuration to cfg.
// It rebuilds the global fac using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build a new fac based on the new cfg and old state.
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(cfg, nil, old.fac, old.ext)
	}

	// Ensure a non-nil fac.
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			fac:  nfac,
			prov: provider.New(nfac),
			bld:  b,
			pfac: old.pfac,
		},
	)
}

// Factory returns the global dfx fac.
func Factory() apis.Factory {
	return st.Load().fac
}

// SetFactory sets the global dfx fac to fac and pins it.
// This is a convenience wrapper around the global state.
func SetFactory(fac apis.Factory) {
	if fac == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			fac:  fac,
			prov: provider.New(fac),
			bld:  old.bld,
			pfac: true,
		},
	)
}

// Provider returns the global dfx prov.
func Provider() apis.Provider {
	return st.Load().prov
}

// Builder returns the global dfx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global dfx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build a new fac based on the new bld and old state.
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(old.cfg, nil, old.fac, old.ext)
	}

	// Ensure a non-nil fac.
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			fac:  nfac,
			prov: provider.New(nfac),
			bld:  b,
			pfac: old.pfac,
		},
	)
}

// SetExt replaces the extension context and rebuilds the non-pinned factory
// via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build a new fac based on the new ext and old state.
	nfac := old.fac
	if !old.pfac {
		nfac = b.BuildFactory(old.cfg, nil, old.fac, ext)
	}

	// Ensure a non-nil fac.
	if nfac == nil {
		panic(ErrNilFactory)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			fac:  nfac,
			prov: provider.New(nfac),
			bld:  b,
			pfac: old.pfac,
		},
	)
}

// ExtAs returns the global dfx extension context as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsFactoryPinned returns whether the global dfx fac is pinned (immutable).
func IsFactoryPinned() bool {
	return st.Load().pfac
}

// PinFactory makes the global dfx fac immune to config/builder rebuilds.
func PinFactory() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			fac:  old.fac,
			prov: old.prov,
			bld:  old.bld,
			pfac: true,
		},
	)
}

// UnpinFactory makes the global dfx fac rebuildable again.
func UnpinFactory() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			fac:  old.fac,
			prov: old.prov,
			bld:  old.bld,
			pfac: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global dfx state.
var st atomic.Pointer[state]

// state is the global dfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global dfx configuration.
	cfg apis.Config
	// ext is the global dfx extension context.
	ext any
	// fac is the global dfx fac.
	fac apis.Factory
	// prov is the provider bound to fac.
	prov apis.Provider
	// bld is the global dfx bld.
	bld apis.Builder
	// pfac indicates whether the fac is pinned (immutable).
	pfac bool
}
