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

package apis

import (
	"reflect"

	"dirpx.dev/dfx/dxapi/category"
)

// Handler converts a decoded serialized representation into a value of its
// target type.
//
// The raw form is whatever the surrounding codec layer produced
// (map[string]any for objects, []any for sequences, string/bool/numeric
// scalars); wire-level parsing never reaches this layer. A handler may
// produce a value of a narrower type than the one it was registered for;
// assignment sites are responsible for the covariant conversion.
//
// Handlers must be safe for concurrent Materialize calls once construction
// and configuration are complete.
type Handler interface {
	// Materialize builds a value from the codec-provided raw form,
	// resolving handlers for dependent types through p.
	Materialize(raw any, p Provider) (reflect.Value, error)
}

// Provider resolves handlers for dependent types during materialization.
// It is the collaborator a handler uses to decode nested values (struct
// fields, slice elements) without knowing how the factory chain is wired.
type Provider interface {
	// HandlerFor returns a handler able to materialize values of t.
	HandlerFor(cfg Config, t reflect.Type) (Handler, error)
}

// Extension contributes handler construction logic ahead of a base factory
// chain's built-in logic. Extensions are opaque to the override facade; it
// only guarantees ordered, loss-free accumulation across WithExtension
// calls. Consultation order is the base chain's contract.
type Extension interface {
	// FindHandler returns a handler for t in the given category, or
	// (nil, nil) if this extension does not cover t.
	FindHandler(cat category.Category, cfg Config, t reflect.Type) (Handler, error)
}
