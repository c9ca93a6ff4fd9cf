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
	"database/sql"
	"fmt"
	"strings"

	"github.com/Velocidex/ordereddict"
)

// Direction is a sort direction as it appears in requests.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether d is one of the two accepted directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// SQL returns the ORDER BY keyword for the direction.
func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ColumnLister lists the column names of a table. Query implements it
// with live schema introspection; tests substitute a static list.
type ColumnLister interface {
	Columns(ctx context.Context) ([]string, error)
}

// Query selects rows from one table. Ordering and pagination methods
// return the query for chaining. Field names reaching OrderBy must
// already be validated (SortScope checks them against the live schema);
// the table name comes from a registered Source.
type Query struct {
	db    *sql.DB
	table string

	orderField string
	orderDir   Direction

	page int
	size int

	fallbackSort string

	// Overrides live introspection when set. Tests use this to run
	// the sort scope without a database.
	lister ColumnLister
}

// NewQuery builds a query over a table.
func NewQuery(db *sql.DB, table string) *Query {
	return &Query{
		db:           db,
		table:        table,
		fallbackSort: DefaultSortField,
	}
}

// Table returns the table the query selects from.
func (q *Query) Table() string {
	return q.table
}

// OrderBy applies ordering by field and returns the query for further
// chaining. The last call wins.
func (q *Query) OrderBy(field string, dir Direction) *Query {
	q.orderField = field
	q.orderDir = dir
	return q
}

// Page applies pagination: 1-based page number and page size. A size
// of zero removes pagination.
func (q *Query) Page(page, size int) *Query {
	if page < 1 {
		page = 1
	}
	q.page = page
	q.size = size
	return q
}

// FallbackSort replaces the field used when a sort request fails
// validation.
func (q *Query) FallbackSort(field string) *Query {
	if field != "" {
		q.fallbackSort = field
	}
	return q
}

// SQL assembles the SELECT statement.
func (q *Query) SQL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", q.table)
	if q.orderField != "" {
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.orderField, q.orderDir.SQL())
	}
	if q.size > 0 {
		fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", q.size, (q.page-1)*q.size)
	}
	return sb.String()
}

// Columns returns the column names of the table, introspected from the
// schema on every call.
func (q *Query) Columns(ctx context.Context) ([]string, error) {
	if q.lister != nil {
		return q.lister.Columns(ctx)
	}

	rows, err := q.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", q.table))
	if err != nil {
		return nil, fmt.Errorf("failed to introspect %q: %w", q.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to introspect %q: %w", q.table, err)
	}
	return columns, nil
}

// Rows runs the query and scans every row into an ordered dict keyed
// by column name.
func (q *Query) Rows(ctx context.Context) ([]*ordereddict.Dict, error) {
	rows, err := q.db.QueryContext(ctx, q.SQL())
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", q.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", q.table, err)
	}

	var records []*ordereddict.Dict
	for rows.Next() {
		rowValues := make([]interface{}, len(columns))
		rowPointers := make([]interface{}, len(columns))
		for i := range columns {
			rowPointers[i] = &rowValues[i]
		}

		if err := rows.Scan(rowPointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %q: %w", q.table, err)
		}

		record := ordereddict.NewDict()
		for i, name := range columns {
			value := rowValues[i]

			// Special case raw []bytes to be strings.
			if bytesValue, ok := value.([]byte); ok {
				value = string(bytesValue)
			}

			record.Set(name, value)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", q.table, err)
	}
	return records, nil
}

// Count returns the number of rows in the table, ignoring pagination.
func (q *Query) Count(ctx context.Context) (int, error) {
	var count int
	row := q.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", q.table))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", q.table, err)
	}
	return count, nil
}
