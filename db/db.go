package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ErrUnsupportedDriver is returned for a driver name other than postgres or sqlite3.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

func Connect(driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// One connection keeps in-memory databases alive and serialises writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to ping database within %v: %w", timeout, err), closeErr)
	}

	if driver == DriverSQLite {
		var enabled int
		if err = db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err == nil && enabled != 1 {
			err = errors.New("foreign key enforcement is off")
		}
		if err != nil {
			closeErr := db.Close()
			return nil, errors.Join(fmt.Errorf("failed to enable sqlite foreign keys: %w", err), closeErr)
		}
	}

	return db, nil
}

// sqliteDSN forces foreign key enforcement on every connection the driver
// opens, whatever the caller put in the DSN.
func sqliteDSN(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		// The driver reports malformed parameters itself on open.
		return dsn
	}
	params.Del("_fk")
	params.Set("_foreign_keys", "1")
	return base + "?" + params.Encode()
}
