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

package rendering

import (
	"html/template"
	"net/url"
	"strings"
	"testing"

	"github.com/Velocidex/ordereddict"

	"github.com/tabella/tabella/core/attrs"
	"github.com/tabella/tabella/core/config"
	"github.com/tabella/tabella/core/query"
	"github.com/tabella/tabella/core/views"
)

func demoView() *views.TableView {
	records := []*ordereddict.Dict{
		ordereddict.NewDict().Set("id", "u-1").Set("name", "Ada").Set("age", 36),
		ordereddict.NewDict().Set("id", "u-2").Set("name", "Grace").Set("age", 45),
	}
	return views.New(records).
		AddColumn("name", "Name").
		AddColumn("age", "Age")
}

func renderToString(t *testing.T, cfg *config.Config, view *views.TableView, opts ...RenderOption) string {
	t.Helper()
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	out, err := r.RenderString(view, opts...)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	return out
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("Expected output to contain %q, got:\n%s", want, out)
	}
}

func TestRenderBasicTable(t *testing.T) {
	out := renderToString(t, nil, demoView())

	// Configured default table attributes are applied
	assertContains(t, out, "class='table table-striped'")
	assertContains(t, out, "<thead>")
	assertContains(t, out, "Name")
	assertContains(t, out, "<td >Ada</td>")
	assertContains(t, out, "<td >45</td>")
	if strings.Contains(out, "u-1") {
		t.Errorf("Expected unconfigured columns to stay out of the output, got:\n%s", out)
	}
}

func TestRenderExplicitAttributesWin(t *testing.T) {
	view := demoView().SetAttributes(attrs.New().Set("id", "users"))
	out := renderToString(t, nil, view)

	assertContains(t, out, "id='users'")
	if strings.Contains(out, "table-striped") {
		t.Errorf("Expected explicit attributes to replace the defaults, got:\n%s", out)
	}
}

func TestRenderHiddenColumn(t *testing.T) {
	view := demoView().Hidden(views.NewHiddenSet().Add("age"))
	out := renderToString(t, nil, view)

	// Default hidden attributes from configuration
	assertContains(t, out, "<td  class='hidden-xs'>36</td>")
}

func TestRenderHiddenColumnOverrideAttrs(t *testing.T) {
	view := demoView().Hidden(
		views.NewHiddenSet().AddAttrs("age", attrs.New().Set("style", "display:none")))
	out := renderToString(t, nil, view)

	assertContains(t, out, "<td  style='display:none'>36</td>")
}

func TestRenderCellTransformOutputIsTrusted(t *testing.T) {
	view := demoView().Modify("name", func(rec *ordereddict.Dict) template.HTML {
		name, _ := rec.Get("name")
		return template.HTML("<em>" + name.(string) + "</em>")
	})
	out := renderToString(t, nil, view)

	assertContains(t, out, "<em>Ada</em>")
}

func TestRenderSortLinks(t *testing.T) {
	u, _ := url.Parse("/table?table=users&sort=name&dir=asc")
	q := query.NewQuery(u)
	view := demoView().Sortable("name")

	out := renderToString(t, nil, view, WithQuery(q))

	// Sortable column becomes a toggle link, the other stays plain
	assertContains(t, out, "dir=desc")
	assertContains(t, out, "sort=name")
	if strings.Contains(out, "sort=age") {
		t.Errorf("Expected non-sortable column to have no link, got:\n%s", out)
	}
}

func TestRenderPagination(t *testing.T) {
	u, _ := url.Parse("/table?table=users&page=2&limit=1")
	q := query.NewQuery(u)
	view := demoView().ShowPages()

	out := renderToString(t, nil, view, WithQuery(q))

	assertContains(t, out, "page=3")
	assertContains(t, out, "Page 2")
}

func TestRenderPaginationOffWithoutFlag(t *testing.T) {
	u, _ := url.Parse("/table?table=users")
	out := renderToString(t, nil, demoView(), WithQuery(query.NewQuery(u)))

	if strings.Contains(out, "pagination") {
		t.Errorf("Expected no pagination controls, got:\n%s", out)
	}
}

func TestRenderMassActions(t *testing.T) {
	view := demoView().WithMassActions(func() []template.HTML {
		return []template.HTML{"<button name='delete'>Delete</button>"}
	}, "")
	out := renderToString(t, nil, view)

	assertContains(t, out, "<button name='delete'>Delete</button>")
	assertContains(t, out, "data-mass-action='u-1'")
	assertContains(t, out, "text-align: center")
}

func TestLegacyTagsSelectLegacyTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.LegacyTags = true

	out := renderToString(t, cfg, demoView())

	assertContains(t, out, "cellpadding='4'")
	if strings.Contains(out, "<thead>") {
		t.Errorf("Expected legacy markup vintage, got:\n%s", out)
	}
}

func TestExplicitViewBeatsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultView = "table"

	out := renderToString(t, cfg, demoView(), WithView("table-legacy"))

	assertContains(t, out, "cellpadding='4'")
}

func TestConfiguredViewBeatsCompatFlag(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultView = "table"
	cfg.LegacyTags = true

	out := renderToString(t, cfg, demoView())

	assertContains(t, out, "<thead>")
}

func TestRenderUnknownViewErrors(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	if _, err := r.RenderString(demoView(), WithView("missing")); err == nil {
		t.Error("Expected an error for an unknown view identifier")
	}
}

func TestExecuteLandingView(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	var sb strings.Builder
	err = r.ExecuteView(&sb, "landing", &LandingData{
		Title: "Tabella Demo",
		Tables: []LandingTable{
			{Name: "Users", URL: "/table?table=users", Description: "User accounts", RecordCount: 2},
		},
	})
	if err != nil {
		t.Fatalf("Failed to render landing page: %v", err)
	}

	out := sb.String()
	assertContains(t, out, "Tabella Demo")
	assertContains(t, out, "User accounts")
	assertContains(t, out, "/table?table=users")
}
