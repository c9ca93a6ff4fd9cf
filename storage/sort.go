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

package storage

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DefaultSortField is the fallback ordering field when a query has no
// other configured.
const DefaultSortField = "created_at"

// SortScope applies ordering from externally supplied parameters.
// Both parameters must be present, the field must be a column of the
// query's table (introspected live, never cached) and the direction
// must be exactly "asc" or "desc". Any failure falls back to ordering
// by the query's fallback field, descending; the scope never errors so
// a bad sort link can not break a page.
func SortScope(ctx context.Context, q *Query, field, sort string) *Query {
	if field == "" || sort == "" {
		return sortFallback(q, field, "missing parameter")
	}

	dir := Direction(sort)
	if !dir.Valid() {
		return sortFallback(q, field, "invalid direction")
	}

	columns, err := q.Columns(ctx)
	if err != nil {
		return sortFallback(q, field, err.Error())
	}
	for _, column := range columns {
		if column == field {
			return q.OrderBy(field, dir)
		}
	}
	return sortFallback(q, field, "unknown column")
}

func sortFallback(q *Query, field, reason string) *Query {
	logrus.WithFields(logrus.Fields{
		"table":  q.table,
		"field":  field,
		"reason": reason,
	}).Debug("sort request rejected, using default order")
	return q.OrderBy(q.fallbackSort, Descending)
}
