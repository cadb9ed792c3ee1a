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

package config_test

import (
	"testing"

	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/overlay"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.TagName != config.DefaultTagName {
		t.Errorf("TagName = %q, want %q", cfg.TagName, config.DefaultTagName)
	}
	if cfg.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Errorf("MaxUnwrap = %d, want %d", cfg.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if cfg.FoldEnumCase != config.DefaultFoldEnumCase {
		t.Errorf("FoldEnumCase = %v, want %v", cfg.FoldEnumCase, config.DefaultFoldEnumCase)
	}
	if cfg.MixIns != nil {
		t.Errorf("MixIns = %v, want nil", cfg.MixIns)
	}
}

func TestNewConfigNoOptions(t *testing.T) {
	if got, want := config.NewConfig(), config.DefaultConfig(); got != want {
		t.Errorf("NewConfig() = %+v, want %+v", got, want)
	}
}

func TestNewConfigOptions(t *testing.T) {
	ov := overlay.New()
	cfg := config.NewConfig(
		config.WithTagName("yaml"),
		config.WithMaxUnwrap(3),
		config.WithFoldEnumCase(true),
		config.WithMixIns(ov),
	)
	if cfg.TagName != "yaml" {
		t.Errorf("TagName = %q, want %q", cfg.TagName, "yaml")
	}
	if cfg.MaxUnwrap != 3 {
		t.Errorf("MaxUnwrap = %d, want 3", cfg.MaxUnwrap)
	}
	if !cfg.FoldEnumCase {
		t.Error("FoldEnumCase = false, want true")
	}
	if cfg.MixIns != ov {
		t.Error("MixIns does not carry the given overlay")
	}
}

func TestNewConfigLastOptionWins(t *testing.T) {
	cfg := config.NewConfig(
		config.WithTagName("yaml"),
		config.WithTagName("toml"),
	)
	if cfg.TagName != "toml" {
		t.Errorf("TagName = %q, want %q", cfg.TagName, "toml")
	}
}

func TestNewConfigResets(t *testing.T) {
	cfg := config.NewConfig(
		config.WithTagName(""),
		config.WithMaxUnwrap(-1),
	)
	if cfg.TagName != config.DefaultTagName {
		t.Errorf("TagName = %q, want default %q", cfg.TagName, config.DefaultTagName)
	}
	if cfg.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Errorf("MaxUnwrap = %d, want default %d", cfg.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestNewConfigZeroMaxUnwrapAllowed(t *testing.T) {
	cfg := config.NewConfig(config.WithMaxUnwrap(0))
	if cfg.MaxUnwrap != 0 {
		t.Errorf("MaxUnwrap = %d, want 0", cfg.MaxUnwrap)
	}
}
