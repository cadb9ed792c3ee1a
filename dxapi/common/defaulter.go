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

// Defaulter lets a target type pre-populate itself before property binding.
//
// # Overview
//
// Defaulter is an opt-in lifecycle hook for record-like targets. When the
// standard struct handler materializes a value whose (addressable) type
// implements Defaulter, it calls SetDefaults on the freshly allocated value
// before any decoded property is assigned. Properties present in the input
// then overwrite whatever SetDefaults established; absent properties keep
// their defaults.
//
// This replaces the common anti-pattern of post-processing decoded values
// to fill in zero fields, which cannot distinguish "absent in input" from
// "explicitly set to the zero value".
//
// # Usage
//
//	type Options struct {
//	    Retries int    `json:"retries"`
//	    Region  string `json:"region"`
//	}
//
//	func (o *Options) SetDefaults() {
//	    o.Retries = 3
//	    o.Region = "eu-central-1"
//	}
//
// Decoding {"region":"us-east-1"} yields Options{Retries: 3,
// Region: "us-east-1"}.
//
// # Contract
//
//   - SetDefaults MUST only mutate the receiver; it MUST NOT perform I/O,
//     blocking operations, or mutate shared state.
//   - SetDefaults MUST be deterministic: materializing the same input twice
//     yields identical values.
//   - SetDefaults MUST be safe for concurrent calls on distinct receivers;
//     handlers may materialize many values in parallel.
//   - Implementations SHOULD be cheap; the hook runs once per materialized
//     value on the decoding hot path.
type Defaulter interface {
	// SetDefaults establishes the receiver's default field values.
	SetDefaults()
}
