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

// Builder composes a base factory chain and an override facade from a
// Config. Implementations may migrate state from previous instances
// (mappings, mixins, extensions), or ignore them.
type Builder interface {
	// BuildBase constructs the generic fallback chain for Config, seeded
	// with the given extensions (order preserved).
	BuildBase(cfg Config, exts []Extension) Factory

	// BuildFactory composes the override facade over base. If prev is an
	// override facade, its direct mappings, mixin overlays and extensions
	// carry over. A nil base means "build one". ext is an optional opaque
	// extension context; its meaning is implementation-defined.
	BuildFactory(cfg Config, base Factory, prev Factory, ext any) Factory
}
