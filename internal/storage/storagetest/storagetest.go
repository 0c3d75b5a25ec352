// internal/storage/storagetest/storagetest.go

// Package storagetest connects tests to a scratch Postgres database.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"storefront/internal/storage"
	"testing"
)

// Open connects to the database described by the PG* environment variables,
// applies the schema and truncates every table. It skips the test if no
// database is reachable.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("PGHOST", "localhost"),
			getEnv("PGPORT", "5432"),
			getEnv("PGUSER", "user"),
			getEnv("PGPASSWORD", "password"),
			getEnv("PGDATABASE", "testdb"),
		)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, dsn)
	if err != nil {
		t.Skipf("skipping postgres tests: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if _, err := db.ExecContext(ctx, "TRUNCATE TABLE events, products, credentials, users, cart_lines CASCADE"); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
	return db
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
