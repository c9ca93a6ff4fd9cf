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

// Package attrs provides an ordered HTML attribute map and its
// serialization to the ` key='value'` form emitted into table markup.
package attrs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabella/tabella/core/ordered"
)

// Attrs is a set of HTML attributes that serializes in insertion order.
// The zero value is not usable; create one with New. Read methods accept
// a nil receiver and treat it as empty.
type Attrs struct {
	m *ordered.Map[string, string]
}

// New creates an empty attribute set.
func New() *Attrs {
	return &Attrs{m: ordered.New[string, string]()}
}

// Set adds or updates an attribute and returns the set for chaining.
// Updating an existing attribute keeps its position.
func (a *Attrs) Set(key, value string) *Attrs {
	if a.m == nil {
		a.m = ordered.New[string, string]()
	}
	a.m.Set(key, value)
	return a
}

// Get retrieves an attribute value.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil || a.m == nil {
		return "", false
	}
	return a.m.Get(key)
}

// Has checks if an attribute is present.
func (a *Attrs) Has(key string) bool {
	if a == nil || a.m == nil {
		return false
	}
	return a.m.Has(key)
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil || a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil || a.m == nil {
		return nil
	}
	return a.m.Keys()
}

// Range iterates over the attributes in insertion order.
func (a *Attrs) Range(f func(key, value string) bool) {
	if a == nil || a.m == nil {
		return
	}
	a.m.Range(f)
}

// Clone returns a copy of the set. Cloning nil yields an empty set.
func (a *Attrs) Clone() *Attrs {
	clone := New()
	a.Range(func(k, v string) bool {
		clone.m.Set(k, v)
		return true
	})
	return clone
}

// Merge copies every attribute of other into a, overwriting on key
// collision, and returns a. Merging nil is a no-op.
func (a *Attrs) Merge(other *Attrs) *Attrs {
	other.Range(func(k, v string) bool {
		a.Set(k, v)
		return true
	})
	return a
}

// HTML serializes the set to an HTML attribute string: one leading
// space, the key, `=` and the single-quoted value per entry, in
// insertion order. An empty set yields the empty string. Values are
// emitted verbatim; callers are responsible for supplying safe values.
func (a *Attrs) HTML() string {
	if a.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	a.Range(func(k, v string) bool {
		fmt.Fprintf(&sb, " %s='%s'", k, v)
		return true
	})
	return sb.String()
}

// String returns the same serialization as HTML.
func (a *Attrs) String() string {
	return a.HTML()
}

// UnmarshalYAML decodes a YAML mapping into the set, preserving the
// document order of the keys.
func (a *Attrs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("attrs: expected a mapping, got %s", value.Tag)
	}
	if a.m == nil {
		a.m = ordered.New[string, string]()
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("attrs: value for %q must be a scalar", keyNode.Value)
		}
		a.m.Set(keyNode.Value, valNode.Value)
	}
	return nil
}
