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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, " class='table table-striped'", cfg.TableAttributes.HTML())
	assert.Equal(t, " class='hidden-xs'", cfg.HiddenAttributes.HTML())
	assert.Equal(t, "created_at", cfg.SortField)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, DefaultTableView, cfg.View())
}

func TestViewResolution(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "table", cfg.View())

	cfg.LegacyTags = true
	assert.Equal(t, "table-legacy", cfg.View())

	// A configured view wins over the compatibility flag.
	cfg.DefaultView = "custom"
	assert.Equal(t, "custom", cfg.View())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabella.yaml")
	doc := `
table_attributes:
  class: data-table
  id: main
default_view: compact
sort_field: updated_at
page_size: 10
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Attribute maps keep YAML document order.
	assert.Equal(t, " class='data-table' id='main'", cfg.TableAttributes.HTML())
	assert.Equal(t, "compact", cfg.DefaultView)
	assert.Equal(t, "updated_at", cfg.SortField)
	assert.Equal(t, 10, cfg.PageSize)

	// Keys absent from the file keep their built-in values.
	assert.Equal(t, " class='hidden-xs'", cfg.HiddenAttributes.HTML())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "created_at", cfg.SortField)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
