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

// Config carries read-only materialization knobs that influence handler
// construction and introspection. It is passed by value through every
// factory entry point and should be treated as immutable by implementations.
type Config struct {
	// TagName is the struct tag key consulted for property names
	// (e.g. "json"). An empty value means the config package default.
	TagName string

	// MaxUnwrap limits pointer unwrapping and embedded-struct recursion
	// depth. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// FoldEnumCase enables case-insensitive matching of enumerated values:
	// incoming text is lowercased before conversion or TextUnmarshaler
	// dispatch.
	FoldEnumCase bool

	// MixIns is the overlay registry the introspection engine consults for
	// supplemental property metadata. A nil value disables overlays; the
	// override facade fills a nil MixIns with its own registry before
	// delegating, so the default wiring always carries one.
	MixIns MixIns
}
