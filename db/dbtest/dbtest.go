// Package dbtest opens throwaway migrated sqlite databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/swiss-tournament/db"
)

// DSN returns a private in-memory sqlite DSN with foreign keys enforced.
func DSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
}

// Open returns a migrated in-memory database that is closed when t ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	return OpenDSN(t, DSN())
}

// OpenDSN is Open for a caller-chosen sqlite DSN.
func OpenDSN(t testing.TB, dsn string) *sql.DB {
	t.Helper()

	conn, err := db.Connect(db.DriverSQLite, dsn, 5*time.Second)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(context.Background(), conn, db.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}
