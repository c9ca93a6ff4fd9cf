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

// Package query parses the state of a table view URL and builds the
// sort and pagination links the templates emit. The raw sort parameters
// it carries are untrusted; storage.SortScope revalidates them against
// the live table schema before they reach a query.
package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
)

// Sort directions as they appear in URLs.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Query represents the parsed state of a table view URL.
type Query struct {
	// Base path (e.g., "/table")
	Path string

	Table string // The table being viewed
	Sort  string // Requested sort column ("" = server default)
	Dir   string // Requested sort direction ("asc" or "desc")
	Page  int    // 1-based page number
	Limit int    // Rows per page (0 = show all)
}

// NewQuery creates a Query from a URL.
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path: u.Path,
		Page: 1,
	}

	q := u.Query()
	state.Table = q.Get("table")
	state.Sort = q.Get("sort")
	state.Dir = q.Get("dir")

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			state.Page = page
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	return state
}

// Clone creates a copy of the Query.
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// SortParams returns the raw sort field and direction from the URL.
// Both may be empty or invalid; callers validate before use.
func (s *Query) SortParams() (field, dir string) {
	return s.Sort, s.Dir
}

// IsSortedBy checks whether the URL currently sorts by the column.
func (s *Query) IsSortedBy(column string) bool {
	return s.Sort == column
}

// SortIndicator returns the direction marker templates render next to
// the active sort column, or the empty string for inactive columns.
func (s *Query) SortIndicator(column string) string {
	if s.Sort != column {
		return ""
	}
	if s.Dir == SortDesc {
		return "▼"
	}
	return "▲"
}

// WithSortToggled returns a URL sorting by the column: ascending for a
// column that is not the current sort target, otherwise flipping the
// direction. Toggling the sort resets to the first page.
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = column
	if s.Sort == column && s.Dir == SortAsc {
		newState.Dir = SortDesc
	} else {
		newState.Dir = SortAsc
	}
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithPage returns a URL for a different page of the same view.
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page < 1 {
		page = 1
	}
	newState.Page = page
	return newState.ToSafeURL()
}

// NextPage returns a URL for the page after the current one.
func (s *Query) NextPage() safehtml.URL {
	return s.WithPage(s.Page + 1)
}

// PrevPage returns a URL for the page before the current one, clamped
// to the first page.
func (s *Query) PrevPage() safehtml.URL {
	return s.WithPage(s.Page - 1)
}

// ToURL converts the Query back to a URL string.
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if s.Sort != "" {
		q.Set("sort", s.Sort)
	}
	if s.Dir != "" {
		q.Set("dir", s.Dir)
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL for template use.
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
