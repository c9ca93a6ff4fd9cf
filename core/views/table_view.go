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

// Package views provides the table view model: an ordered collection of
// records plus the configuration a template consults while rendering it
// as an HTML table. Configuration methods return the view for chaining
// and are meant to run before the render; a view is request-scoped and
// not safe for concurrent mutation.
package views

import (
	"html/template"

	"github.com/Velocidex/ordereddict"

	"github.com/tabella/tabella/core/attrs"
	"github.com/tabella/tabella/core/ordered"
)

// CellTransform produces the display markup for one column of a record.
// Its output is injected into the template without escaping.
type CellTransform func(rec *ordereddict.Dict) template.HTML

// CellAttrsTransform produces extra attributes for one column's cells.
type CellAttrsTransform func(rec *ordereddict.Dict) *attrs.Attrs

// RowAttrsTransform produces extra attributes for a record's table row.
type RowAttrsTransform func(rec *ordereddict.Dict) *attrs.Attrs

// MassActionBuilder produces the bulk-action control fragments rendered
// above the table.
type MassActionBuilder func() []template.HTML

// Column describes one table column: the key used to resolve values
// from records, the heading label, and optional header styling.
type Column struct {
	Key   string
	Label string
	Class string
	Attrs *attrs.Attrs
}

// HiddenSet is the set of hidden columns. A column is either hidden
// with the configured default attributes (Add) or with its own override
// attributes (AddAttrs).
type HiddenSet struct {
	m *ordered.Map[string, *attrs.Attrs]
}

// NewHiddenSet creates an empty hidden-column set.
func NewHiddenSet() *HiddenSet {
	return &HiddenSet{m: ordered.New[string, *attrs.Attrs]()}
}

// Add marks columns as hidden with the default hidden attributes.
func (h *HiddenSet) Add(keys ...string) *HiddenSet {
	for _, key := range keys {
		h.m.Set(key, nil)
	}
	return h
}

// AddAttrs marks a column as hidden with its own attributes.
func (h *HiddenSet) AddAttrs(key string, a *attrs.Attrs) *HiddenSet {
	h.m.Set(key, a)
	return h
}

// Has checks whether a column is hidden.
func (h *HiddenSet) Has(key string) bool {
	if h == nil || h.m == nil {
		return false
	}
	return h.m.Has(key)
}

// Get returns the override attributes for a hidden column. A nil value
// with ok=true means the column is hidden with default attributes.
func (h *HiddenSet) Get(key string) (*attrs.Attrs, bool) {
	if h == nil || h.m == nil {
		return nil, false
	}
	return h.m.Get(key)
}

// Len returns the number of hidden columns.
func (h *HiddenSet) Len() int {
	if h == nil || h.m == nil {
		return 0
	}
	return h.m.Len()
}

func (h *HiddenSet) clone() *HiddenSet {
	if h == nil || h.m == nil {
		return nil
	}
	return &HiddenSet{m: h.m.Clone()}
}

// MassActionColumn is the key of the pseudo-column prepended by
// WithMassActions.
const MassActionColumn = "select"

// TableView wraps an ordered collection of records with the column,
// attribute and transform configuration used during rendering.
type TableView struct {
	records []*ordereddict.Dict

	columns        *ordered.Map[string, *Column]
	hidden         *HiddenSet
	hiddenDefaults *attrs.Attrs
	sortable       map[string]bool
	relations      map[string]string
	tableAttrs     *attrs.Attrs
	showPages      bool

	cellTransforms     map[string]CellTransform
	cellAttrTransforms map[string]CellAttrsTransform
	rowTransforms      *ordered.Map[string, RowAttrsTransform]

	massActions []template.HTML
}

// New creates a view over the given records.
func New(records []*ordereddict.Dict) *TableView {
	return &TableView{
		records:            records,
		columns:            ordered.New[string, *Column](),
		sortable:           make(map[string]bool),
		relations:          make(map[string]string),
		cellTransforms:     make(map[string]CellTransform),
		cellAttrTransforms: make(map[string]CellAttrsTransform),
		rowTransforms:      ordered.New[string, RowAttrsTransform](),
	}
}

// Len returns the number of records.
func (v *TableView) Len() int {
	return len(v.records)
}

// Records returns the wrapped records in order.
func (v *TableView) Records() []*ordereddict.Dict {
	return v.records
}

// Each iterates over the records in order. If f returns false,
// iteration stops.
func (v *TableView) Each(f func(i int, rec *ordereddict.Dict) bool) {
	for i, rec := range v.records {
		if !f(i, rec) {
			break
		}
	}
}

// Derive builds a view over different records carrying the same
// configuration as v.
func (v *TableView) Derive(records []*ordereddict.Dict) *TableView {
	clone := &TableView{
		records:            records,
		columns:            v.columns.Clone(),
		hidden:             v.hidden.clone(),
		hiddenDefaults:     v.hiddenDefaults,
		sortable:           make(map[string]bool, len(v.sortable)),
		relations:          make(map[string]string, len(v.relations)),
		tableAttrs:         v.tableAttrs,
		showPages:          v.showPages,
		cellTransforms:     make(map[string]CellTransform, len(v.cellTransforms)),
		cellAttrTransforms: make(map[string]CellAttrsTransform, len(v.cellAttrTransforms)),
		rowTransforms:      v.rowTransforms.Clone(),
		massActions:        v.massActions,
	}
	for k := range v.sortable {
		clone.sortable[k] = true
	}
	for k, path := range v.relations {
		clone.relations[k] = path
	}
	for k, fn := range v.cellTransforms {
		clone.cellTransforms[k] = fn
	}
	for k, fn := range v.cellAttrTransforms {
		clone.cellAttrTransforms[k] = fn
	}
	return clone
}

// SetColumns merges column descriptors into the column set. A
// descriptor whose key already exists replaces the old one in place;
// new keys append in argument order. Descriptors without a key are
// ignored.
func (v *TableView) SetColumns(cols ...*Column) *TableView {
	for _, col := range cols {
		if col == nil || col.Key == "" {
			continue
		}
		v.columns.Set(col.Key, col)
	}
	return v
}

// AddColumn merges a single key/label column descriptor.
func (v *TableView) AddColumn(key, label string) *TableView {
	return v.SetColumns(&Column{Key: key, Label: label})
}

// RemoveColumns deletes the listed columns if present.
func (v *TableView) RemoveColumns(keys ...string) *TableView {
	for _, key := range keys {
		v.columns.Delete(key)
	}
	return v
}

// OnlyColumns reduces the column set to the given keys, preserving the
// existing relative order of the retained columns.
func (v *TableView) OnlyColumns(keys ...string) *TableView {
	keep := make(map[string]bool, len(keys))
	for _, key := range keys {
		keep[key] = true
	}
	for _, key := range v.columns.Keys() {
		if !keep[key] {
			v.columns.Delete(key)
		}
	}
	return v
}

// Hidden replaces the hidden-column set wholesale.
func (v *TableView) Hidden(h *HiddenSet) *TableView {
	v.hidden = h
	return v
}

// SetHiddenDefaults sets the attributes applied to columns hidden
// without overrides. The renderer fills this from configuration when
// the caller has not.
func (v *TableView) SetHiddenDefaults(a *attrs.Attrs) *TableView {
	v.hiddenDefaults = a
	return v
}

// ShowPages makes the template render pagination controls.
func (v *TableView) ShowPages() *TableView {
	v.showPages = true
	return v
}

// SetAttributes replaces the top-level <table> attribute set.
func (v *TableView) SetAttributes(a *attrs.Attrs) *TableView {
	v.tableAttrs = a
	return v
}

// Sortable replaces the set of columns the template renders as
// sort links.
func (v *TableView) Sortable(keys ...string) *TableView {
	v.sortable = make(map[string]bool, len(keys))
	for _, key := range keys {
		v.sortable[key] = true
	}
	return v
}

// Means resolves column's displayed value by following relationPath
// (dot separated) instead of the column's own key.
func (v *TableView) Means(column, relationPath string) *TableView {
	v.relations[column] = relationPath
	return v
}

// Modify registers a value transform for a column. The last
// registration for a column wins.
func (v *TableView) Modify(column string, fn CellTransform) *TableView {
	v.cellTransforms[column] = fn
	return v
}

// ModifyAll registers one value transform per map entry.
func (v *TableView) ModifyAll(transforms map[string]CellTransform) *TableView {
	for column, fn := range transforms {
		v.cellTransforms[column] = fn
	}
	return v
}

// ModifyCell registers a cell-attribute transform for a column.
func (v *TableView) ModifyCell(column string, fn CellAttrsTransform) *TableView {
	v.cellAttrTransforms[column] = fn
	return v
}

// ModifyRow registers a row-attribute transform under a rule name.
// Every registered rule runs for every row; on attribute collisions the
// later-registered rule wins.
func (v *TableView) ModifyRow(name string, fn RowAttrsTransform) *TableView {
	v.rowTransforms.Set(name, fn)
	return v
}

// ApplyDefaults fills the table attributes and hidden defaults from
// configuration where the caller has not set them explicitly. The
// renderer calls this once per render.
func (v *TableView) ApplyDefaults(tableAttrs, hiddenDefaults *attrs.Attrs) *TableView {
	if v.tableAttrs == nil {
		v.tableAttrs = tableAttrs
	}
	if v.hiddenDefaults == nil {
		v.hiddenDefaults = hiddenDefaults
	}
	return v
}

// WithMassActions installs bulk-action controls: the builder's
// fragments are kept for the template and a checkbox pseudo-column is
// prepended to the column set. The checkbox carries the record's
// valueField (empty valueField means "id") as data-mass-action; a
// record lacking both that field and "id" yields an empty value. If the
// builder produces no fragments the view is returned unchanged.
func (v *TableView) WithMassActions(builder MassActionBuilder, valueField string) *TableView {
	if builder == nil {
		return v
	}
	fragments := builder()
	if len(fragments) == 0 {
		return v
	}
	if valueField == "" {
		valueField = "id"
	}
	v.massActions = fragments
	v.columns.SetFront(MassActionColumn, &Column{Key: MassActionColumn})
	v.cellTransforms[MassActionColumn] = massActionCheckbox(valueField)
	v.cellAttrTransforms[MassActionColumn] = func(*ordereddict.Dict) *attrs.Attrs {
		return attrs.New().Set("style", "text-align: center")
	}
	return v
}
