/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tabella Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config holds the process-wide rendering defaults. A Config is
// resolved once per render call with explicit caller overrides taking
// precedence over loaded values, which take precedence over the
// built-ins. Configs are read-only after loading and safe for
// concurrent reads.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tabella/tabella/core/attrs"
)

// Built-in view identifiers shipped with the renderer. LegacyView keeps
// the markup vintage of the original template set for installations
// that still style against it.
const (
	DefaultTableView = "table"
	LegacyTableView  = "table-legacy"
)

// Config carries the rendering defaults applied when a view has no
// explicit override.
type Config struct {
	// Attributes of the top-level <table> element.
	TableAttributes *attrs.Attrs `yaml:"table_attributes"`

	// View identifier used when the render call names none.
	DefaultView string `yaml:"default_view"`

	// Attributes applied to cells of columns hidden without overrides.
	HiddenAttributes *attrs.Attrs `yaml:"hidden_attributes"`

	// LegacyTags selects the legacy built-in template when no view is
	// configured at all.
	LegacyTags bool `yaml:"legacy_tags"`

	// Fallback sort field applied when a sort request fails
	// validation.
	SortField string `yaml:"sort_field"`

	// Default rows per page for paginated views.
	PageSize int `yaml:"page_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TableAttributes:  attrs.New().Set("class", "table table-striped"),
		HiddenAttributes: attrs.New().Set("class", "hidden-xs"),
		SortField:        "created_at",
		PageSize:         25,
	}
}

// Load reads a YAML configuration file over the built-in defaults.
// Attribute maps keep their document order. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// View resolves the default view identifier: the configured view if
// set, else the built-in selected by LegacyTags.
func (c *Config) View() string {
	if c.DefaultView != "" {
		return c.DefaultView
	}
	if c.LegacyTags {
		return LegacyTableView
	}
	return DefaultTableView
}
