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

package views

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Velocidex/ordereddict"

	"github.com/tabella/tabella/core/attrs"
)

// Accessors in this file are called by templates while iterating
// records. They never fail: missing transforms, absent relationship
// segments and unknown columns all produce empty results the template
// renders as nothing.

// Columns returns the column descriptors in render order.
func (v *TableView) Columns() []*Column {
	return v.columns.Values()
}

// ColumnKeys returns the column keys in render order.
func (v *TableView) ColumnKeys() []string {
	return v.columns.Keys()
}

// HasColumn checks whether a column key is configured.
func (v *TableView) HasColumn(key string) bool {
	return v.columns.Has(key)
}

// HasPages reports whether the template should render pagination
// controls.
func (v *TableView) HasPages() bool {
	return v.showPages
}

// IsSortable reports whether the template should render the column
// heading as a sort link.
func (v *TableView) IsSortable(key string) bool {
	return v.sortable[key]
}

// MassActions returns the bulk-action fragments installed by
// WithMassActions, or nil.
func (v *TableView) MassActions() []template.HTML {
	return v.massActions
}

// TableAttributes serializes the top-level <table> attributes.
func (v *TableView) TableAttributes() template.HTMLAttr {
	return template.HTMLAttr(v.tableAttrs.HTML())
}

// HeaderAttributes serializes a column's header attributes: the
// descriptor's class and extra attributes, plus hidden-column
// attributes so hidden columns hide their heading as well.
func (v *TableView) HeaderAttributes(column string) template.HTMLAttr {
	merged := attrs.New()
	if col, ok := v.columns.Get(column); ok {
		if col.Class != "" {
			merged.Set("class", col.Class)
		}
		merged.Merge(col.Attrs)
	}
	if hiddenAttrs, hidden := v.hiddenAttributesFor(column); hidden {
		merged.Merge(hiddenAttrs)
	}
	return template.HTMLAttr(merged.HTML())
}

// CellValue resolves the display markup for one column of a record:
// the registered value transform if any, else the relationship alias
// set by Means, else the record's own field. Plain values are
// HTML-escaped; transform output is injected verbatim.
func (v *TableView) CellValue(column string, rec *ordereddict.Dict) template.HTML {
	if fn, ok := v.cellTransforms[column]; ok && fn != nil {
		return fn(rec)
	}
	if path, ok := v.relations[column]; ok {
		val, found := v.RelationValue(rec, path)
		if !found {
			return ""
		}
		return escape(val)
	}
	if rec == nil {
		return ""
	}
	val, ok := rec.Get(column)
	if !ok {
		return ""
	}
	return escape(val)
}

// CellAttributes serializes the attributes for one column's cell: the
// registered cell-attribute transform's output merged with the
// hidden-column attributes. Without a registered transform the result
// is empty regardless of hidden state; the template falls back to
// HiddenColumnAttributes for plain cells.
func (v *TableView) CellAttributes(column string, rec *ordereddict.Dict) template.HTMLAttr {
	fn, ok := v.cellAttrTransforms[column]
	if !ok || fn == nil {
		return ""
	}
	merged := fn(rec).Clone()
	if hiddenAttrs, hidden := v.hiddenAttributesFor(column); hidden {
		merged.Merge(hiddenAttrs)
	}
	return template.HTMLAttr(merged.HTML())
}

// RowAttributes serializes the attributes for a record's row: every
// registered row transform runs in registration order and later
// transforms win on key collisions.
func (v *TableView) RowAttributes(rec *ordereddict.Dict) template.HTMLAttr {
	merged := attrs.New()
	v.rowTransforms.Range(func(name string, fn RowAttrsTransform) bool {
		if fn != nil {
			merged.Merge(fn(rec))
		}
		return true
	})
	return template.HTMLAttr(merged.HTML())
}

// HiddenColumnAttributes serializes a hidden column's attributes: the
// override attributes if the hidden set carries them, else the
// configured defaults. Columns outside the hidden set yield nothing.
func (v *TableView) HiddenColumnAttributes(column string) template.HTMLAttr {
	hiddenAttrs, hidden := v.hiddenAttributesFor(column)
	if !hidden {
		return ""
	}
	return template.HTMLAttr(hiddenAttrs.HTML())
}

func (v *TableView) hiddenAttributesFor(column string) (*attrs.Attrs, bool) {
	override, ok := v.hidden.Get(column)
	if !ok {
		return nil, false
	}
	if override != nil {
		return override, true
	}
	return v.hiddenDefaults, true
}

// RelationValue resolves a dot-separated relationship path against a
// record. Every segment except the last is read off the record itself,
// not off the previously resolved value; templates and Means aliases
// depend on this flattened lookup. The final segment is read off the
// current value when that value is an object, otherwise the current
// value is the result. ok is false when a segment is absent.
func (v *TableView) RelationValue(rec *ordereddict.Dict, path string) (interface{}, bool) {
	if rec == nil || path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var current interface{} = rec
	for _, segment := range segments[:len(segments)-1] {
		val, ok := rec.Get(segment)
		if !ok {
			return nil, false
		}
		current = val
	}
	last := segments[len(segments)-1]
	switch obj := current.(type) {
	case *ordereddict.Dict:
		return obj.Get(last)
	case map[string]interface{}:
		val, ok := obj[last]
		return val, ok
	}
	return current, true
}

// RelationObject returns the related object itself rather than one of
// its fields: the record field named by the second-to-last path
// segment, or by the only segment of a one-part path.
func (v *TableView) RelationObject(rec *ordereddict.Dict, path string) (interface{}, bool) {
	if rec == nil || path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	key := segments[0]
	if len(segments) > 1 {
		key = segments[len(segments)-2]
	}
	return rec.Get(key)
}

func massActionCheckbox(valueField string) CellTransform {
	return func(rec *ordereddict.Dict) template.HTML {
		value := massActionValue(rec, valueField)
		markup := fmt.Sprintf("<input type='checkbox' name='mass-action' data-mass-action='%s'>", value)
		return template.HTML(markup)
	}
}

func massActionValue(rec *ordereddict.Dict, valueField string) string {
	if rec == nil {
		return ""
	}
	val, ok := rec.Get(valueField)
	if !ok || val == nil {
		val, ok = rec.Get("id")
	}
	if !ok || val == nil {
		return ""
	}
	switch seq := val.(type) {
	case []string:
		return strings.Join(seq, ",")
	case []interface{}:
		parts := make([]string, len(seq))
		for i, item := range seq {
			parts[i] = valueString(item)
		}
		return strings.Join(parts, ",")
	}
	return valueString(val)
}

func valueString(val interface{}) string {
	switch t := val.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(val)
}

func escape(val interface{}) template.HTML {
	return template.HTML(template.HTMLEscapeString(valueString(val)))
}
