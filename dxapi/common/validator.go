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

package common

// Validator lets a target type reject itself after property binding.
//
// # Overview
//
// Validator is an opt-in lifecycle hook for record-like targets, the
// counterpart of Defaulter on the other side of property binding. When the
// standard struct handler has assigned every decoded property, it calls
// Validate on the (addressable) value if its type implements Validator. A
// non-nil error aborts materialization and propagates to the caller as the
// handler's error; the partially built value is discarded.
//
// Validation at this point sees the fully bound value, including defaults
// established by a Defaulter implementation and overrides applied from the
// input, so cross-field invariants can be checked in one place.
//
// # Usage
//
//	type Window struct {
//	    From time.Time `json:"from"`
//	    To   time.Time `json:"to"`
//	}
//
//	func (w *Window) Validate() error {
//	    if w.To.Before(w.From) {
//	        return errors.New("window: To precedes From")
//	    }
//	    return nil
//	}
//
// # Contract
//
//   - Validate MUST NOT mutate the receiver; it is a read-only check.
//     Normalization belongs in SetDefaults or in the domain layer.
//   - Validate MUST NOT perform I/O or blocking operations; handlers run it
//     synchronously on the decoding hot path.
//   - Validate MUST be safe for concurrent calls on distinct receivers.
//   - A returned error SHOULD name the violated invariant; it is surfaced
//     verbatim to the code that requested materialization.
type Validator interface {
	// Validate reports whether the fully bound value is acceptable.
	Validate() error
}
