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

// Package registry implements the exact-type direct mapping table.
//
// Registrations are intentionally exact-match-only: a handler registered
// for an interface or a base type never applies to another type, because
// derived resolution is exactly the base factory chain's job. One table
// serves all creation categories.
//
// The table follows the configure-then-freeze contract: Add is called from
// a single goroutine during setup and takes no lock; afterwards the table
// is read-only and safe for unsynchronized concurrent Lookup calls.
package registry

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/typekey"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dfx(registry): nil reflect.Type provided")
	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("dfx(registry): nil handler provided")
)

// New constructs an empty direct mapping table.
func New() apis.Mappings {
	return &mappings{m: make(map[typekey.Key]apis.Handler)}
}

// mappings is a plain-map Mappings implementation.
type mappings struct {
	// m maps canonical type identities to registered handlers.
	m map[typekey.Key]apis.Handler
}

// Add inserts or replaces the handler for exactly t. Last write wins;
// replacing an earlier registration is not an error.
func (r *mappings) Add(t reflect.Type, h apis.Handler) error {
	if t == nil {
		return ErrNilType
	}
	if h == nil {
		return ErrNilHandler
	}
	k, err := typekey.Of(t)
	if err != nil {
		return err
	}
	r.m[k] = h
	return nil
}

// Lookup returns the handler registered for exactly t, if any.
func (r *mappings) Lookup(t reflect.Type) (apis.Handler, bool) {
	if t == nil {
		return nil, false
	}
	k, err := typekey.Of(t)
	if err != nil {
		return nil, false
	}
	h, ok := r.m[k]
	return h, ok
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *mappings) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, len(r.m))
	for k, h := range r.m {
		entries = append(entries, apis.Entry{Key: k, Handler: h})
	}
	return entries
}

// Count returns the number of registered entries.
func (r *mappings) Count() int {
	return len(r.m)
}
