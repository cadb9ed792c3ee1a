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

// Package dfx provides per-type handler resolution for object
// deserialization.
//
// dfx sits in front of a generic handler factory chain and lets callers
// override it surgically: "use this specific handler for this specific
// type, never for anything derived from it", and "when introspecting type
// A's structure, also consider metadata declared on type B". Once
// configured, the whole facility is shared, unsynchronized, across any
// number of concurrent readers.
//
// # Design
//
// The core of dfx is a small set of composable layers:
//
//   - Direct mappings (registry): an exact-match table from canonical type
//     identities (typekey.Key) to handlers. Exact means exact: a handler
//     registered for T never applies to *T, []T, or any other type. One
//     table serves every creation category; the lookup is O(1) and always
//     runs before any generic resolution logic.
//
//   - Mixin overlays (overlay): pure storage directing the introspection
//     engine to treat one type's property metadata as supplemental to
//     another's. The registry records associations; the introspect package
//     decides how tags combine and how embedded types are walked.
//
//   - Base chain (std): the generic fallback, consulted only on a direct
//     mapping miss. It asks its extensions first (in registration order,
//     first match wins) and then builds reflective handlers for the three
//     supported creation categories: struct (record-like), array
//     (slices and fixed arrays), and enum (named scalar types). Map- and
//     tree-shaped targets deliberately have no creation path.
//
//   - Override facade (factory.Custom): the composed entry point. Each
//     CreateStructHandler / CreateArrayHandler / CreateEnumHandler call
//     checks the direct mappings and otherwise delegates to the base chain
//     verbatim — no merging, no wrapping of the chain's errors.
//
//   - Provider (provider.Std): resolves handlers for dependent types
//     during materialization, routing each type to its category entry
//     point and memoizing the results.
//
// # Configuration and immutability
//
// A facade has two lifecycle phases. During configuration — single-threaded
// by contract — Register and SetMixIn mutate its registries with no
// internal locking; last write wins in both tables. Once configuration
// stops, the facade is logically frozen: every resolution call is a pure
// read, so sharing it across goroutines needs no synchronization.
//
// Extending a frozen facade never mutates it. WithExtension returns a new
// facade carrying every previously registered extension plus the new one;
// the original, and any snapshot still referencing it, is untouched.
// Specializations that embed factory.Custom while holding extra state must
// register their own construction path (factory.Adopt); otherwise
// WithExtension fails fast instead of silently constructing a generic
// facade that drops the specialization's state.
//
// # Global API
//
// Like its sibling rfx, the package holds an atomic pointer to an immutable
// state snapshot {config, extension context, factory, provider, builder}.
// Readers load the pointer and never lock:
//
//	h, err := dfx.HandlerFor(reflect.TypeOf(Money{}))
//	v, err := dfx.Materialize(reflect.TypeOf(Money{}), raw)
//
// Writers (SetConfig, SetBuilder, SetExt, SetFactory, AddExtension, SetAll)
// take a short build mutex, derive a new snapshot — rebuilding the factory
// through the Builder unless it is pinned — and publish it atomically.
// SetFactory pins the factory; UnpinFactory makes it rebuildable again.
// SetAll is the hard-reset API used mainly by tests.
//
// # Scope
//
// dfx is intentionally small. It resolves handlers; it does not parse or
// write any wire format, and it does not interpret the extensions it
// accumulates — both belong to the surrounding codec layers.
package dfx
