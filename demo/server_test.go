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

package demo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tabella/tabella/core/config"
)

// One server for all subtests: the seeded in-memory database is shared
// through the manager's cached handle.
func TestDemoServer(t *testing.T) {
	server, err := NewServer(config.Default())
	if err != nil {
		t.Fatalf("Failed to start demo server: %v", err)
	}
	defer server.Close()

	get := func(t *testing.T, handler http.HandlerFunc, target string) (int, string) {
		t.Helper()
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec.Code, rec.Body.String()
	}

	t.Run("landing lists seeded tables", func(t *testing.T) {
		code, body := get(t, server.HandleLanding, "/")
		if code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", code)
		}
		for _, want := range []string{"Tabella Demo", "table=users", "table=orders"} {
			if !strings.Contains(body, want) {
				t.Errorf("Expected landing page to contain %q", want)
			}
		}
	})

	t.Run("users table renders", func(t *testing.T) {
		code, body := get(t, server.HandleTable, "/table?table=users")
		if code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", code)
		}
		if !strings.Contains(body, "Ada Lovelace") {
			t.Errorf("Expected a seeded user in the output")
		}
		// Hidden country column carries the default hidden attributes
		if !strings.Contains(body, "class='hidden-xs'") {
			t.Errorf("Expected hidden-column attributes in the output")
		}
		// Mass-action checkboxes keyed by email
		if !strings.Contains(body, "data-mass-action='user01@example.com'") {
			t.Errorf("Expected mass-action checkboxes keyed by email")
		}
	})

	t.Run("orders table resolves customers and formats amounts", func(t *testing.T) {
		code, body := get(t, server.HandleTable, "/table?table=orders&sort=amount_cents&dir=desc")
		if code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", code)
		}
		if !strings.Contains(body, "$") {
			t.Errorf("Expected formatted amounts in the output")
		}
		if !strings.Contains(body, "text-align: right") {
			t.Errorf("Expected the amount cell transform to apply")
		}
		// Every order resolves its customer name through the attached
		// user record, so at least one seeded name must appear.
		found := false
		for _, name := range demoNames {
			if strings.Contains(body, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected relation-resolved customer names in the output")
		}
	})

	t.Run("bogus sort falls back silently", func(t *testing.T) {
		code, _ := get(t, server.HandleTable, "/table?table=orders&sort=bogus&dir=sideways")
		if code != http.StatusOK {
			t.Fatalf("Expected fail-open fallback to render, got %d", code)
		}
	})

	t.Run("missing table parameter", func(t *testing.T) {
		code, _ := get(t, server.HandleTable, "/table")
		if code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", code)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		code, _ := get(t, server.HandleTable, "/table?table=nope")
		if code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", code)
		}
	})
}
