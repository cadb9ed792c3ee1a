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

// Package overlay implements the mixin overlay registry: pure storage of
// "when introspecting dst, also consider metadata declared on src".
//
// The registry carries zero resolution logic. How the introspection engine
// combines the two metadata sets, and whether it walks embedded types, is
// its business alone; this package only promises correct key/value
// retrieval under the configure-then-freeze contract.
package overlay

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/typekey"
)

var (
	// ErrNilDestination is returned when a nil destination type is provided.
	ErrNilDestination = errors.New("dfx(overlay): nil destination type provided")
	// ErrNilSource is returned when a nil source type is provided.
	ErrNilSource = errors.New("dfx(overlay): nil source type provided")
)

// New constructs an empty mixin overlay registry.
func New() apis.MixIns {
	return &mixins{m: make(map[typekey.Key]reflect.Type)}
}

// mixins is a plain-map MixIns implementation.
type mixins struct {
	// m maps destination identities to mixin source types.
	m map[typekey.Key]reflect.Type
}

// Set records src as the mixin source for dst. Last write wins per
// destination.
func (o *mixins) Set(dst, src reflect.Type) error {
	if dst == nil {
		return ErrNilDestination
	}
	if src == nil {
		return ErrNilSource
	}
	k, err := typekey.Of(dst)
	if err != nil {
		return err
	}
	o.m[k] = src
	return nil
}

// Get returns the mixin source recorded for dst, if any.
func (o *mixins) Get(dst reflect.Type) (reflect.Type, bool) {
	if dst == nil {
		return nil, false
	}
	k, err := typekey.Of(dst)
	if err != nil {
		return nil, false
	}
	src, ok := o.m[k]
	return src, ok
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (o *mixins) Entries() []apis.MixInEntry {
	entries := make([]apis.MixInEntry, 0, len(o.m))
	for k, src := range o.m {
		entries = append(entries, apis.MixInEntry{Key: k, Source: src})
	}
	return entries
}

// Count returns the number of recorded overlays.
func (o *mixins) Count() int {
	return len(o.m)
}
