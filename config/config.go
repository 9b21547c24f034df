// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the immutable compilation configuration consumed by
// the driver (spec.md §6: "the core consumes already-parsed configuration
// ... as immutable structures"): include search directories, predefined
// macros, and a target triple placeholder. Configuration is data, not
// behavior — this package has no dependency on resolver, registry, or
// mono.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Define is one predefined macro supplied ahead of any source file, as if
// by a `-D` command-line flag.
type Define struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Config is one compilation's configuration. Load returns a Config and
// callers treat it as read-only thereafter; nothing in this package
// mutates a Config after construction.
type Config struct {
	// IncludeDirs is the ordered list of system include directories
	// consulted before an including file's own directory (spec.md §9's
	// resolved open question on search order).
	IncludeDirs []string `yaml:"include_dirs"`

	// Defines are applied by the driver to each top-level translation
	// unit's own defines table before that unit is resolved.
	Defines []Define `yaml:"defines"`

	// TargetTriple is carried through to the (out-of-scope) lowering stage;
	// the resolver and mono visitor never inspect it.
	TargetTriple string `yaml:"target_triple"`
}

// Load reads and parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML-encoded configuration data.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing configuration: %w", err)
	}
	return &c, nil
}
