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

// Package typekey derives canonical, value-comparable identities for Go types.
//
// A Key is the registry currency of dfx: every direct-mapping and mixin
// registration is stored under the Key of the type it was registered for,
// and every lookup recomputes the Key of the requested type. Two
// reflect.Type values that denote the same raw type produce equal Keys,
// with one deliberate collapse: generic instantiation parameters are
// stripped, so Pair[int] and Pair[string] share a Key.
//
// Keys are exact-match identities. No container unwrapping happens here:
// T, *T and []T all have distinct Keys, because a handler registered for T
// must never silently apply to *T or []T.
package typekey

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dfx(typekey): nil reflect.Type provided")
)

// composeDepth bounds recursion over composite shapes (*[][]*T and friends).
// Deeper shapes are legal but fall back to reflect's own formatting.
const composeDepth = 12

// Key is a canonical, value-comparable identity for a type.
//
// Equality and hashing are structural: two Keys are equal exactly when
// they were derived from descriptors of the same raw type, regardless of
// which reflect.Type value produced them. The zero Key identifies nothing.
type Key struct {
	// PkgPath is the full import path of the named type, or "" for
	// builtins and unnamed composite shapes.
	PkgPath string
	// Name is the type name with generic instantiation stripped, or the
	// canonical composite form for unnamed shapes (e.g. "[]money.Amount").
	Name string
}

// IsZero reports whether the key identifies nothing.
func (k Key) IsZero() bool { return k.PkgPath == "" && k.Name == "" }

// String returns a human-readable "pkgpath.Name" form.
func (k Key) String() string {
	switch {
	case k.IsZero():
		return "<none>"
	case k.PkgPath == "":
		return k.Name
	default:
		return k.PkgPath + "." + k.Name
	}
}

// Of derives the canonical Key for t.
//
// Derivation is pure and deterministic: named types map to their package
// path and parameter-stripped name; unnamed composites map to a canonical
// textual form built from their element Keys. Anonymous struct, func and
// interface shapes render through reflect's base-package-name form and may
// collide across identically named packages. The only error condition is
// a nil descriptor.
func Of(t reflect.Type) (Key, error) {
	if t == nil {
		return Key{}, ErrNilType
	}
	if t.Name() != "" {
		return Key{PkgPath: t.PkgPath(), Name: stripTypeParams(t.Name())}, nil
	}
	return Key{Name: canonical(t, composeDepth)}, nil
}

// MustOf is Of for descriptors known to be non-nil (registration literals).
func MustOf(t reflect.Type) Key {
	k, err := Of(t)
	if err != nil {
		panic(err)
	}
	return k
}

// canonical renders an unnamed composite shape using the full package paths
// of its named constituents, so the textual form cannot collide across
// packages the way reflect.Type.String's base-name form can.
func canonical(t reflect.Type, depth int) string {
	if depth <= 0 {
		return t.String()
	}
	if t.Name() != "" {
		n := stripTypeParams(t.Name())
		if p := t.PkgPath(); p != "" {
			return p + "." + n
		}
		return n
	}
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + canonical(t.Elem(), depth-1)
	case reflect.Slice:
		return "[]" + canonical(t.Elem(), depth-1)
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + canonical(t.Elem(), depth-1)
	case reflect.Map:
		return "map[" + canonical(t.Key(), depth-1) + "]" + canonical(t.Elem(), depth-1)
	case reflect.Chan:
		return fmt.Sprintf("%s %s", t.ChanDir(), canonical(t.Elem(), depth-1))
	default:
		// Anonymous structs, funcs and interfaces fall back to reflect's
		// rendering. Caveat: reflect prints named constituents with base
		// package names only, so two identically named packages can
		// collide inside these shapes. Named types never take this path.
		return t.String()
	}
}

// stripTypeParams removes the generic instantiation suffix:
// "Pair[int,string]" -> "Pair".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
