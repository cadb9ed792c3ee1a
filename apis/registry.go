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

	"dirpx.dev/dfx/typekey"
)

// Mappings is the exact-type handler override table. One table serves all
// creation categories: a lookup hit satisfies whichever category entry
// point asked.
//
// Writes belong to the configuration phase; after it, the table is frozen
// and safe for unsynchronized concurrent lookups.
type Mappings interface {
	// Add inserts or replaces the handler for exactly t (last write wins).
	Add(t reflect.Type, h Handler) error
	// Lookup returns the handler registered for exactly t, if any.
	// A miss is not an error; it is the designed fallback path.
	Lookup(t reflect.Type) (Handler, bool)
	// Entries returns a snapshot for diagnostics/docs (order unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
}

// Entry is a single (key, handler) association in a Mappings snapshot.
type Entry struct {
	// Key is the canonical identity the handler was registered under.
	Key typekey.Key
	// Handler is the associated handler.
	Handler Handler
}
