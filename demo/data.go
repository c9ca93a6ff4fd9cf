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

// Package demo is a small HTTP server exercising every feature of the
// library against a seeded in-memory SQLite database.
package demo

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tabella/tabella/storage"
)

// The shared-cache DSN keeps the in-memory database alive for the
// lifetime of the manager's cached handle.
const demoDSN = "file:tabella_demo?mode=memory&cache=shared"

var (
	demoNames = []string{
		"Ada Lovelace", "Grace Hopper", "Edsger Dijkstra", "Barbara Liskov",
		"Donald Knuth", "Frances Allen", "Tony Hoare", "Margaret Hamilton",
		"John Backus", "Radia Perlman", "Dennis Ritchie", "Katherine Johnson",
	}
	demoCountries = []string{"GB", "US", "NL", "US", "US", "US", "GB", "US", "US", "US", "US", "US"}
	demoStatuses  = []string{"pending", "shipped", "delivered", "failed"}
)

// Seed creates the demo database and registers its tables with a fresh
// manager.
func Seed() (*storage.Manager, error) {
	manager := storage.NewManager()
	manager.AddSource(&storage.Source{
		Name:   "users",
		Driver: "sqlite3",
		DSN:    demoDSN,
		Table:  "users",
	})
	manager.AddSource(&storage.Source{
		Name:   "orders",
		Driver: "sqlite3",
		DSN:    demoDSN,
		Table:  "orders",
	})

	db, err := manager.Open("users")
	if err != nil {
		return nil, err
	}
	if err := seedTables(db); err != nil {
		manager.Close()
		return nil, err
	}
	return manager, nil
}

func seedTables(db *sql.DB) error {
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			country TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			status TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	userIDs := make([]string, 0, len(demoNames))
	for i, name := range demoNames {
		id := uuid.NewString()
		userIDs = append(userIDs, id)

		email := fmt.Sprintf("user%02d@example.com", i+1)
		createdAt := now.AddDate(0, 0, -rng.Intn(365)).Format(time.RFC3339)
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, country, created_at) VALUES (?, ?, ?, ?, ?)`,
			id, name, email, demoCountries[i], createdAt)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
	}

	for i := 0; i < 60; i++ {
		createdAt := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour).Format(time.RFC3339)
		_, err := db.ExecContext(ctx,
			`INSERT INTO orders (id, user_id, status, amount_cents, created_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(),
			userIDs[rng.Intn(len(userIDs))],
			demoStatuses[rng.Intn(len(demoStatuses))],
			500+rng.Intn(2500000),
			createdAt)
		if err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}
	}

	return nil
}
