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

// Package rendering executes the built-in table templates against a
// view model. The view identifier is resolved per render call with
// explicit option > configured default > built-in precedence; the
// built-in is chosen by the legacy-markup compatibility flag.
package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/Masterminds/sprig/v3"

	"github.com/tabella/tabella/core/config"
	"github.com/tabella/tabella/core/query"
	"github.com/tabella/tabella/core/views"
)

//go:embed templates/*.html
var templateFS embed.FS

// Context is the data a template executes against. The view model is
// always bound under Table; Query carries the request's sort and page
// state for link building and may be nil.
type Context struct {
	Title string
	Table *views.TableView
	Query *query.Query
}

// Renderer executes the embedded templates with the configured
// defaults applied. Build one per process; it is safe for concurrent
// use.
type Renderer struct {
	cfg       *config.Config
	templates *template.Template
}

// NewRenderer creates a renderer. A nil config uses the built-in
// defaults.
func NewRenderer(cfg *config.Config) (*Renderer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	templates, err := template.New("tabella").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{cfg: cfg, templates: templates}, nil
}

type renderState struct {
	view string
	data Context
}

// RenderOption adjusts a single render call.
type RenderOption func(*renderState)

// WithView names the template to render, overriding the configured
// default.
func WithView(name string) RenderOption {
	return func(s *renderState) { s.view = name }
}

// WithQuery binds the request state used for sort and page links.
func WithQuery(q *query.Query) RenderOption {
	return func(s *renderState) { s.data.Query = q }
}

// WithTitle sets the title templates may render.
func WithTitle(title string) RenderOption {
	return func(s *renderState) { s.data.Title = title }
}

// Render executes the resolved template with the view model bound as
// the data context. Table attributes and hidden-column defaults the
// caller has not set explicitly are filled from configuration first.
func (r *Renderer) Render(w io.Writer, view *views.TableView, opts ...RenderOption) error {
	state := &renderState{}
	for _, opt := range opts {
		opt(state)
	}

	view.ApplyDefaults(r.cfg.TableAttributes, r.cfg.HiddenAttributes)
	state.data.Table = view

	name := state.view
	if name == "" {
		name = r.cfg.View()
	}
	return r.templates.ExecuteTemplate(w, name+".html", &state.data)
}

// RenderString renders to a string.
func (r *Renderer) RenderString(view *views.TableView, opts ...RenderOption) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, view, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExecuteView executes a non-table template, such as the landing page
// or the page wrapper, against arbitrary data.
func (r *Renderer) ExecuteView(w io.Writer, name string, data interface{}) error {
	return r.templates.ExecuteTemplate(w, name+".html", data)
}

// LandingTable is one entry of the landing page's table listing.
type LandingTable struct {
	Name        string
	Description string
	URL         string
	RecordCount int
}

// LandingData is the data context of the landing template.
type LandingData struct {
	Title  string
	Tables []LandingTable
}

// PageData is the data context of the page wrapper template. Content
// is trusted markup, normally the output of a table render.
type PageData struct {
	Title   string
	Content template.HTML
}
