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

// Package introspect computes property metadata for record-like types.
//
// For every introspected struct it consults the mixin overlay registry
// carried by the Config: if a source type is recorded for the struct, tags
// declared on the source's same-named fields override the struct's own.
// Embedded structs are walked the same way, with the overlay consulted for
// each embedded type, so a mixin can target any type in the hierarchy.
package introspect

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
)

var (
	// ErrNotStruct is returned when a non-struct type is introspected.
	ErrNotStruct = errors.New("dfx(introspect): type is not a struct")
)

// Property is one bindable property of a record-like type.
type Property struct {
	// Name is the wire-level property name after tags and mixin overlay.
	Name string
	// Field is the Go field name.
	Field string
	// Index is the field index chain for reflect.Value.FieldByIndex.
	Index []int
	// Type is the field's declared type.
	Type reflect.Type
}

// Properties returns the bindable properties of the struct type t in
// breadth-first order: the struct's own fields in declaration order first,
// then promoted embedded fields level by level. Fields tagged "-" (on the
// type or via mixin) are omitted, as are unexported fields. On a wire-name
// collision the shallowest, earliest declaration wins.
func Properties(cfg apis.Config, t reflect.Type) ([]Property, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrap(ErrNotStruct, t.String())
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}
	var out []Property
	seen := make(map[string]struct{})
	collect(cfg, t, depth, &out, seen)
	return out, nil
}

// collect appends t's properties to out. Embedded structs queue behind the
// level that declares them, so every field of depth d claims its wire name
// before any field of depth d+1.
func collect(cfg apis.Config, t reflect.Type, depth int, out *[]Property, seen map[string]struct{}) {
	type level struct {
		t     reflect.Type
		index []int
		depth int
	}
	queue := []level{{t: t, depth: depth}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		over := overlayTags(cfg, n.t)
		for i := 0; i < n.t.NumField(); i++ {
			f := n.t.Field(i)
			idx := append(append([]int(nil), n.index...), i)

			ft := f.Type
			if f.Anonymous && n.depth > 0 {
				et := ft
				if et.Kind() == reflect.Ptr {
					et = et.Elem()
				}
				if et.Kind() == reflect.Struct && !tagged(cfg, f, over) {
					// Untagged embedded struct: queue its fields for
					// promotion. An unexported embedded type still
					// contributes its exported fields, matching
					// encoding/json; an unexported embedded pointer is
					// unreachable and drops.
					if f.PkgPath != "" && ft.Kind() == reflect.Ptr {
						continue
					}
					queue = append(queue, level{t: et, index: idx, depth: n.depth - 1})
					continue
				}
			}
			if f.PkgPath != "" { // unexported
				continue
			}

			name, ignored := wireName(cfg, f, over)
			if ignored {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			*out = append(*out, Property{Name: name, Field: f.Name, Index: idx, Type: ft})
		}
	}
}

// overlayTags returns the mixin source's tag values keyed by Go field name,
// or nil when no overlay is recorded for t.
func overlayTags(cfg apis.Config, t reflect.Type) map[string]string {
	if cfg.MixIns == nil {
		return nil
	}
	src, ok := cfg.MixIns.Get(t)
	if !ok || src == nil {
		return nil
	}
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if src.Kind() != reflect.Struct {
		return nil
	}
	tag := tagName(cfg)
	over := make(map[string]string, src.NumField())
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		if v, ok := f.Tag.Lookup(tag); ok {
			over[f.Name] = v
		}
	}
	return over
}

// wireName resolves the property name for f, mixin tags taking precedence
// over the field's own tag. The second result reports an ignored field.
func wireName(cfg apis.Config, f reflect.StructField, over map[string]string) (string, bool) {
	v, ok := over[f.Name]
	if !ok {
		v, ok = f.Tag.Lookup(tagName(cfg))
	}
	if !ok {
		return f.Name, false
	}
	name := v
	if i := strings.IndexByte(v, ','); i >= 0 {
		name = v[:i]
	}
	switch name {
	case "-":
		return "", true
	case "":
		return f.Name, false
	default:
		return name, false
	}
}

// tagged reports whether f carries an explicit property name, directly or
// via the mixin overlay. A named embedded struct binds as a single
// property instead of being promoted.
func tagged(cfg apis.Config, f reflect.StructField, over map[string]string) bool {
	if _, ok := over[f.Name]; ok {
		return true
	}
	_, ok := f.Tag.Lookup(tagName(cfg))
	return ok
}

func tagName(cfg apis.Config) string {
	if cfg.TagName == "" {
		return config.DefaultTagName
	}
	return cfg.TagName
}
