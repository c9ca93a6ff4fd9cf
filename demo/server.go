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
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Velocidex/ordereddict"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/tabella/tabella/core/attrs"
	"github.com/tabella/tabella/core/config"
	"github.com/tabella/tabella/core/query"
	"github.com/tabella/tabella/core/rendering"
	"github.com/tabella/tabella/core/views"
	"github.com/tabella/tabella/storage"
)

// Server serves the demo pages: a landing page listing the seeded
// tables and one table view per source.
type Server struct {
	cfg      *config.Config
	manager  *storage.Manager
	renderer *rendering.Renderer
}

// NewServer seeds the demo database and builds the renderer.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	manager, err := Seed()
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}
	renderer, err := rendering.NewRenderer(cfg)
	if err != nil {
		manager.Close()
		return nil, err
	}
	return &Server{cfg: cfg, manager: manager, renderer: renderer}, nil
}

// Close releases the database handles.
func (s *Server) Close() error {
	return s.manager.Close()
}

// HandleLanding serves the table listing.
func (s *Server) HandleLanding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &rendering.LandingData{Title: "Tabella Demo"}
	for _, name := range s.manager.SourceNames() {
		q, err := s.manager.Query(name)
		if err != nil {
			logrus.WithError(err).WithField("table", name).Error("failed to open table")
			continue
		}
		count, err := q.Count(ctx)
		if err != nil {
			logrus.WithError(err).WithField("table", name).Error("failed to count table")
			continue
		}
		data.Tables = append(data.Tables, rendering.LandingTable{
			Name:        name,
			Description: tableDescriptions[name],
			URL:         "/table?table=" + name,
			RecordCount: count,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.ExecuteView(w, "landing", data); err != nil {
		logrus.WithError(err).Error("landing page rendering error")
	}
}

var tableDescriptions = map[string]string{
	"users":  "User accounts with responsive hidden columns and mass actions",
	"orders": "Orders with relation-aliased customer names and value transforms",
}

// HandleTable serves one table page.
func (s *Server) HandleTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := query.NewQuery(r.URL)

	if q.Table == "" {
		http.Error(w, "Table parameter is required", http.StatusBadRequest)
		return
	}

	sq, err := s.manager.Query(q.Table)
	if err != nil {
		http.Error(w, fmt.Sprintf("Table %q not found", q.Table), http.StatusNotFound)
		return
	}
	sq.FallbackSort(s.cfg.SortField)

	field, dir := q.SortParams()
	storage.SortScope(ctx, sq, field, dir)

	limit := q.Limit
	if limit == 0 {
		limit = s.cfg.PageSize
	}
	records, err := sq.Page(q.Page, limit).Rows(ctx)
	if err != nil {
		logrus.WithError(err).WithField("table", q.Table).Error("failed to load rows")
		http.Error(w, "Failed to load table", http.StatusInternalServerError)
		return
	}

	var view *views.TableView
	var title string
	switch q.Table {
	case "users":
		view = s.usersView(records)
		title = "Users"
	case "orders":
		if err := s.attachUsers(ctx, records); err != nil {
			logrus.WithError(err).Error("failed to attach order users")
		}
		view = s.ordersView(records)
		title = "Orders"
	default:
		view, err = s.genericView(ctx, sq, records)
		if err != nil {
			logrus.WithError(err).WithField("table", q.Table).Error("failed to build view")
			http.Error(w, "Failed to load table", http.StatusInternalServerError)
			return
		}
		title = q.Table
	}

	content, err := s.renderer.RenderString(view,
		rendering.WithQuery(q),
		rendering.WithTitle(title))
	if err != nil {
		logrus.WithError(err).WithField("table", q.Table).Error("table rendering error")
		http.Error(w, "Failed to render table", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.renderer.ExecuteView(w, "page", &rendering.PageData{
		Title:   title + " - Tabella Demo",
		Content: template.HTML(content),
	})
	if err != nil {
		logrus.WithError(err).Error("page rendering error")
	}
}

// usersView configures the users table: hidden country column on small
// screens, sortable identity columns and a mass-action checkbox keyed
// by email.
func (s *Server) usersView(records []*ordereddict.Dict) *views.TableView {
	return views.New(records).
		AddColumn("name", "Name").
		AddColumn("email", "Email").
		AddColumn("country", "Country").
		AddColumn("created_at", "Joined").
		Hidden(views.NewHiddenSet().Add("country")).
		Sortable("name", "email", "created_at").
		ShowPages().
		WithMassActions(func() []template.HTML {
			return []template.HTML{
				"<button type='submit' name='mass_action' value='deactivate'>Deactivate selected</button>",
			}
		}, "email")
}

// ordersView configures the orders table: the customer column resolves
// through the attached user record, amounts render as formatted money
// and failed orders flag their row.
func (s *Server) ordersView(records []*ordereddict.Dict) *views.TableView {
	return views.New(records).
		AddColumn("id", "Order").
		AddColumn("customer", "Customer").
		AddColumn("status", "Status").
		AddColumn("amount_cents", "Amount").
		AddColumn("created_at", "Placed").
		Means("customer", "user.name").
		Hidden(views.NewHiddenSet().
			AddAttrs("created_at", attrs.New().Set("class", "hidden-xs hidden-sm"))).
		Sortable("status", "amount_cents", "created_at").
		ShowPages().
		Modify("id", func(rec *ordereddict.Dict) template.HTML {
			id, _ := rec.GetString("id")
			if len(id) > 8 {
				id = id[:8]
			}
			return template.HTML("<code>" + id + "</code>")
		}).
		Modify("amount_cents", func(rec *ordereddict.Dict) template.HTML {
			cents, ok := rec.GetInt64("amount_cents")
			if !ok {
				return ""
			}
			money := humanize.CommafWithDigits(float64(cents)/100, 2)
			return template.HTML(template.HTMLEscapeString("$" + money))
		}).
		ModifyCell("amount_cents", func(*ordereddict.Dict) *attrs.Attrs {
			return attrs.New().Set("style", "text-align: right")
		}).
		ModifyRow("failed-orders", func(rec *ordereddict.Dict) *attrs.Attrs {
			if status, _ := rec.GetString("status"); status == "failed" {
				return attrs.New().Set("class", "danger")
			}
			return nil
		})
}

// genericView shows an unconfigured table with its own column names.
func (s *Server) genericView(ctx context.Context, sq *storage.Query, records []*ordereddict.Dict) (*views.TableView, error) {
	columns, err := sq.Columns(ctx)
	if err != nil {
		return nil, err
	}
	view := views.New(records).ShowPages()
	for _, column := range columns {
		view.AddColumn(column, column)
	}
	return view, nil
}

// attachUsers sets the related user record on every order so the
// customer column can resolve through it.
func (s *Server) attachUsers(ctx context.Context, orders []*ordereddict.Dict) error {
	uq, err := s.manager.Query("users")
	if err != nil {
		return err
	}
	users, err := uq.Rows(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*ordereddict.Dict, len(users))
	for _, user := range users {
		if id, ok := user.GetString("id"); ok {
			byID[id] = user
		}
	}
	for _, order := range orders {
		if userID, ok := order.GetString("user_id"); ok {
			if user, found := byID[userID]; found {
				order.Set("user", user)
			}
		}
	}
	return nil
}
