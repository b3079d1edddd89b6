// Package testutil provides test utilities for the thuchi project.
// It offers temp SQLite stores, a fixed clock and a fully wired engine.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/thuchi/internal/storage"
	"github.com/Veraticus/thuchi/internal/testutil/ledger"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Ledger  ledger.Ledger
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithBuilder creates a test database seeded by a ledger builder.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b ledger.Builder) ledger.Builder {
//		return b.WithFixture(ledger.FixtureMonth)
//	})
func SetupTestDBWithBuilder(t *testing.T, configure func(ledger.Builder) ledger.Builder) *TestDB {
	t.Helper()

	builder := ledger.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}

	return SetupTestDBWithOptions(t, TestDBOptions{Builder: builder})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Builder        ledger.Builder
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	var seeded ledger.Ledger
	if opts.Builder != nil {
		seeded, err = opts.Builder.Build(ctx, store, store)
		if err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Ledger:  seeded,
		t:       t,
	}
}
