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

package category

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownCategory is returned by Parse for unrecognized names.
var ErrUnknownCategory = errors.New("dfx(category): unknown creation category")

// Category identifies the structural shape a handler is being created for.
//
// # Overview
//
// Category is a small enumerated type that discriminates between the three
// creation shapes the dfx factory chain supports. Factories expose one
// creation entry point per category, and extensions receive the Category so
// a single extension can cover several shapes without re-deriving the shape
// from the reflect.Type.
//
// Category is intentionally minimal: it selects a broad class of
// construction behavior, not a concrete algorithm. Concrete factories decide
// how a given category is materialized (reflective field binding for
// structs, element-wise decoding for arrays, textual matching for enums).
//
// # Values
//
// The following categories are defined:
//
//   - Struct — record-like types: Go structs bound field by field.
//   - Array  — array-like types: Go slices and fixed arrays, decoded
//     element-wise.
//   - Enum   — enumerated types: named types over a scalar kind whose
//     values form a closed set.
//
// Map-shaped and tree/node-shaped targets have no category. This is a
// known, deliberate gap: the factory chain defines no creation entry point
// for them, and providers report them as unsupported rather than guessing.
//
// # Contract
//
//   - Category values are plain integers and safe for concurrent use.
//   - A given concrete type is assumed to belong to exactly one category;
//     factories do not cross-check the category against the type.
//   - New values may be added over time; existing values MUST keep their
//     semantics.
type Category int

const (
	// Struct selects record-like construction.
	//
	// Record-like targets are Go struct types. Construction binds decoded
	// properties to fields, typically driven by introspected property
	// metadata (struct tags, mixin overlays).
	Struct Category = iota

	// Array selects array-like construction.
	//
	// Array-like targets are Go slices and fixed-length arrays.
	// Construction decodes an ordered sequence of elements, resolving a
	// handler for the element type once and applying it per element.
	Array

	// Enum selects enumerated construction.
	//
	// Enumerated targets are named types over a scalar kind (string or an
	// integer kind) whose values form a closed set. Enumerated types have
	// no subtype relationships, so only an exact match can apply.
	Enum
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case Struct:
		return "struct"
	case Array:
		return "array"
	case Enum:
		return "enum"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// Parse converts a case-insensitive category name to a Category.
func Parse(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "struct", "record":
		return Struct, nil
	case "array", "slice":
		return Array, nil
	case "enum", "enumerated":
		return Enum, nil
	default:
		return 0, errors.Wrap(ErrUnknownCategory, s)
	}
}
