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

// Package storage produces the record collections the view model wraps:
// SQL tables reached through database/sql and plain CSV files. It also
// carries the sort scope that validates externally supplied ordering
// against the live table schema.
package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Source describes one registered table: the driver and DSN of the
// database holding it, and the table name queries run against.
type Source struct {
	Name   string
	Driver string
	DSN    string
	Table  string
}

// Manager registers data sources and hands out queries against them.
// Source metadata is registered eagerly; database handles are opened
// lazily on first use and cached. Sources sharing a driver and DSN
// share one handle. A Manager is safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name - registered eagerly
	sources map[string]*Source

	// Cached database handles indexed by driver+DSN - opened lazily
	handles map[string]*sql.DB
}

// NewManager creates a new data source manager.
func NewManager() *Manager {
	return &Manager{
		sources: make(map[string]*Source),
		handles: make(map[string]*sql.DB),
	}
}

// AddSource registers a source. A source registered under an existing
// name replaces the old one.
func (m *Manager) AddSource(source *Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
}

// GetSource returns the source metadata for a given name.
// Returns nil if the source is not found.
func (m *Manager) GetSource(name string) *Source {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// SourceNames returns all registered source names, sorted.
func (m *Manager) SourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns the database handle for a source, opening it on first
// use.
func (m *Manager) Open(name string) (*sql.DB, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	source, ok := m.sources[name]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", name)
	}
	key := handleKey(source)
	if db, cached := m.handles[key]; cached {
		m.mu.RUnlock()
		return db, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have opened the handle in the meantime.
	if db, cached := m.handles[key]; cached {
		return db, nil
	}

	db, err := sql.Open(source.Driver, source.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %q: %w", name, err)
	}
	if source.Driver == "mysql" {
		// Settings recommended by the mysql driver README.
		db.SetConnMaxLifetime(time.Minute * 3)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}

	logrus.WithFields(logrus.Fields{
		"source": name,
		"driver": source.Driver,
	}).Debug("opened data source")

	m.handles[key] = db
	return db, nil
}

// IsOpen returns whether the handle for a source is currently cached.
func (m *Manager) IsOpen(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	source, ok := m.sources[name]
	if !ok {
		return false
	}
	_, cached := m.handles[handleKey(source)]
	return cached
}

// Query builds a query against a source's table.
func (m *Manager) Query(name string) (*Query, error) {
	m.mu.RLock()
	source, ok := m.sources[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source %q not found", name)
	}

	db, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	return NewQuery(db, source.Table), nil
}

// Close closes every cached handle. The manager stays usable; closed
// sources reopen on next use.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for key, db := range m.handles {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.handles, key)
	}
	return firstErr
}

func handleKey(source *Source) string {
	return source.Driver + " " + source.DSN
}
