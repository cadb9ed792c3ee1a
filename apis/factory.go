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

import "reflect"

// Factory constructs handlers for the three supported creation shapes.
// Map-shaped and tree-shaped targets deliberately have no entry point.
//
// A Factory is frozen once configuration stops: every Create call is a pure
// read and safe for unsynchronized concurrent use.
type Factory interface {
	// CreateStructHandler returns a handler for the record-like type t.
	CreateStructHandler(cfg Config, t reflect.Type, p Provider) (Handler, error)

	// CreateArrayHandler returns a handler for the array-like type t.
	CreateArrayHandler(cfg Config, t reflect.Type, p Provider) (Handler, error)

	// CreateEnumHandler returns a handler for the enumerated type t.
	CreateEnumHandler(cfg Config, t reflect.Type, p Provider) (Handler, error)

	// WithExtension returns a new Factory carrying every previously held
	// extension plus ext, leaving the receiver untouched. A nil ext is a
	// configuration error. Implementations that hold state beyond this
	// interface must supply their own construction path or fail fast here.
	WithExtension(ext Extension) (Factory, error)
}

// Configurer is the configuration surface of an override-capable factory.
// Calls happen during the single-threaded configuration phase only.
type Configurer interface {
	// Register maps exactly t (never its pointer, slice or any other
	// derived shape) to h. A later registration for the same type replaces
	// the earlier one.
	Register(t reflect.Type, h Handler) error

	// SetMixIn directs introspection of dst to also consider property
	// metadata declared on src. Last write wins per destination.
	SetMixIn(dst, src reflect.Type) error
}
