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

// MixIns records which type's property metadata supplements another's.
// It is pure storage: how metadata combines, and whether supertypes
// (embedded types) are walked, is entirely the introspection engine's
// business. The engine typically calls Get once per type it introspects,
// and again for each embedded type in the destination's hierarchy.
//
// Writes belong to the configuration phase; after it, the registry is
// frozen and safe for unsynchronized concurrent reads.
type MixIns interface {
	// Set directs introspection of dst to also consider metadata declared
	// on src. A later Set for the same destination replaces the earlier one.
	Set(dst, src reflect.Type) error
	// Get returns the mixin source recorded for dst, if any.
	Get(dst reflect.Type) (reflect.Type, bool)
	// Entries returns a snapshot for diagnostics/docs (order unspecified).
	Entries() []MixInEntry
	// Count returns the number of recorded overlays.
	Count() int
}

// MixInEntry is a single overlay association in a MixIns snapshot.
type MixInEntry struct {
	// Key identifies the destination type.
	Key typekey.Key
	// Source is the type whose metadata is mixed in.
	Source reflect.Type
}
