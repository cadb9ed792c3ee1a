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

package registry_test

import (
	"reflect"
	"testing"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/registry"
)

// stubHandler is a minimal handler carrying an identity for assertions.
type stubHandler struct{ id string }

func (h *stubHandler) Materialize(_ any, _ apis.Provider) (reflect.Value, error) {
	return reflect.ValueOf(h.id), nil
}

func TestAddAndLookup(t *testing.T) {
	reg := registry.New()
	h := &stubHandler{id: "money"}

	if err := reg.Add(reflect.TypeOf(T1{}), h); err != nil {
		t.Fatalf("Add(T1): unexpected error: %v", err)
	}

	got, ok := reg.Lookup(reflect.TypeOf(T1{}))
	if !ok {
		t.Fatalf("Lookup(T1): miss after registration")
	}
	if got != apis.Handler(h) {
		t.Fatalf("Lookup(T1): got %v, want the registered handler", got)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestLookup_ExactMatchOnly(t *testing.T) {
	reg := registry.New()
	if err := reg.Add(reflect.TypeOf(T1{}), &stubHandler{id: "t1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Derived shapes must miss: a handler for T1 never covers *T1 or []T1.
	if _, ok := reg.Lookup(reflect.TypeOf(&T1{})); ok {
		t.Fatalf("Lookup(*T1) hit; registration is exact-match only")
	}
	if _, ok := reg.Lookup(reflect.TypeOf([]T1{})); ok {
		t.Fatalf("Lookup([]T1) hit; registration is exact-match only")
	}
	if _, ok := reg.Lookup(reflect.TypeOf(T2{})); ok {
		t.Fatalf("Lookup(T2) hit without registration")
	}
}

func TestAdd_LastWriteWins(t *testing.T) {
	reg := registry.New()
	first := &stubHandler{id: "first"}
	second := &stubHandler{id: "second"}

	if err := reg.Add(reflect.TypeOf(T1{}), first); err != nil {
		t.Fatalf("Add(first): %v", err)
	}
	if err := reg.Add(reflect.TypeOf(T1{}), second); err != nil {
		t.Fatalf("Add(second): %v", err)
	}

	got, ok := reg.Lookup(reflect.TypeOf(T1{}))
	if !ok || got != apis.Handler(second) {
		t.Fatalf("Lookup after replacement: got %v, want the second handler", got)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d after replacement, want 1", reg.Count())
	}
}

func TestAdd_Errors(t *testing.T) {
	reg := registry.New()

	if err := reg.Add(nil, &stubHandler{}); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Add(reflect.TypeOf(T1{}), nil); err != registry.ErrNilHandler {
		t.Fatalf("nil handler: want ErrNilHandler, got %v", err)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d after failed Adds, want 0", reg.Count())
	}
}

func TestLookup_NilTypeMisses(t *testing.T) {
	reg := registry.New()
	if _, ok := reg.Lookup(nil); ok {
		t.Fatalf("Lookup(nil) hit")
	}
}

func TestEntries_Snapshot(t *testing.T) {
	reg := registry.New()
	_ = reg.Add(reflect.TypeOf(T1{}), &stubHandler{id: "t1"})
	_ = reg.Add(reflect.TypeOf(T2{}), &stubHandler{id: "t2"})

	snap := reg.Entries()
	if len(snap) != 2 {
		t.Fatalf("Entries() length = %d, want 2", len(snap))
	}
	for _, e := range snap {
		if e.Key.IsZero() || e.Handler == nil {
			t.Fatalf("invalid entry in snapshot: %+v", e)
		}
	}

	// Mutating afterwards must not reach into an earlier snapshot slice.
	_ = reg.Add(reflect.TypeOf(T3{}), &stubHandler{id: "t3"})
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed after later Add: %d", len(snap))
	}
}
