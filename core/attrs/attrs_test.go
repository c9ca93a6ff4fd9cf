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

package attrs

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestHTMLEmpty(t *testing.T) {
	if got := New().HTML(); got != "" {
		t.Errorf("Expected empty string for empty set, got %q", got)
	}
	var a *Attrs
	if got := a.HTML(); got != "" {
		t.Errorf("Expected empty string for nil set, got %q", got)
	}
}

func TestHTMLSerialization(t *testing.T) {
	a := New().Set("class", "x").Set("id", "y")
	want := " class='x' id='y'"
	if got := a.HTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHTMLPreservesInsertionOrder(t *testing.T) {
	a := New().Set("style", "display:none").Set("class", "muted").Set("id", "row-1")
	want := " style='display:none' class='muted' id='row-1'"
	if got := a.HTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Updating a key keeps its position
	a.Set("class", "loud")
	want = " style='display:none' class='loud' id='row-1'"
	if got := a.HTML(); got != want {
		t.Errorf("After update, expected %q, got %q", want, got)
	}
}

func TestHTMLNoEscaping(t *testing.T) {
	// Values pass through verbatim; callers supply safe values.
	a := New().Set("data-value", "a&b")
	if got := a.HTML(); got != " data-value='a&b'" {
		t.Errorf("Expected verbatim value, got %q", got)
	}
}

func TestMergeRightBiased(t *testing.T) {
	base := New().Set("class", "base").Set("id", "x")
	over := New().Set("class", "override").Set("style", "color:red")

	base.Merge(over)

	if got, _ := base.Get("class"); got != "override" {
		t.Errorf("Expected merge to overwrite class, got %q", got)
	}
	// Overwritten key keeps the base position, new keys append
	want := " class='override' id='x' style='color:red'"
	if got := base.HTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Merging nil is a no-op
	base.Merge(nil)
	if got := base.HTML(); got != want {
		t.Errorf("Merge(nil) changed the set: %q", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := New().Set("class", "x")
	b := a.Clone().Set("class", "y").Set("id", "z")

	if got, _ := a.Get("class"); got != "x" {
		t.Errorf("Clone mutation leaked into original: %q", got)
	}
	if b.Len() != 2 {
		t.Errorf("Expected clone Len 2, got %d", b.Len())
	}

	var none *Attrs
	if got := none.Clone().Len(); got != 0 {
		t.Errorf("Expected Clone of nil to be empty, got %d entries", got)
	}
}

func TestNilReads(t *testing.T) {
	var a *Attrs
	if a.Len() != 0 {
		t.Errorf("Expected nil Len 0")
	}
	if a.Has("class") {
		t.Errorf("Expected nil Has false")
	}
	if _, ok := a.Get("class"); ok {
		t.Errorf("Expected nil Get to miss")
	}
	if keys := a.Keys(); keys != nil {
		t.Errorf("Expected nil Keys nil, got %v", keys)
	}
}

func TestUnmarshalYAMLKeepsDocumentOrder(t *testing.T) {
	var cfg struct {
		Table *Attrs `yaml:"table"`
	}
	doc := "table:\n  class: table table-striped\n  id: main\n  data-role: grid\n"
	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := " class='table table-striped' id='main' data-role='grid'"
	if got := cfg.Table.HTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestUnmarshalYAMLRejectsNonMapping(t *testing.T) {
	var a Attrs
	if err := yaml.Unmarshal([]byte("- one\n- two\n"), &a); err == nil {
		t.Errorf("Expected error for sequence node")
	}
}
