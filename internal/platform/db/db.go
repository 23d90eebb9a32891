// Package db opens pooled database handles for the binaries.
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// OpenPostgres opens a pooled Postgres handle via the pgx stdlib driver
// and verifies the connection before returning it. Used by dbtool for
// hosted deployments; the server itself runs on embedded SQLite.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openPostgres: open database: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(30 * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("openPostgres: verify connection: %w", err)
	}

	return pool, nil
}
