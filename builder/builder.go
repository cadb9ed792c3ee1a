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

package builder

import (
	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/factory"
	"dirpx.dev/dfx/std"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildBase builds the standard reflective base chain seeded with exts.
func (b *builder) BuildBase(_ apis.Config, exts []apis.Extension) apis.Factory {
	return std.New(exts...)
}

// BuildFactory composes an override facade over base. If prev is an
// override facade, its direct mappings, mixin overlays and extension list
// carry over into the new facade (the registries are shared, not copied;
// they are not config-dependent). A nil base gets a fresh chain carrying
// the migrated extensions.
func (b *builder) BuildFactory(cfg apis.Config, base apis.Factory, prev apis.Factory, _ any) apis.Factory {
	var opts []factory.Option
	var exts []apis.Extension
	if pc, ok := prev.(*factory.Custom); ok && pc != nil {
		exts = pc.Extensions()
		opts = append(opts,
			factory.WithMappings(pc.Mappings()),
			factory.WithMixIns(pc.MixIns()),
			factory.WithExtensions(exts...),
		)
	}
	if base == nil {
		base = b.BuildBase(cfg, exts)
	}
	c, err := factory.New(base, opts...)
	if err != nil {
		// Only a nil base reaches here, and we just built one.
		return nil
	}
	return c
}
