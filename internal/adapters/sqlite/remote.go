package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emiliopalmerini/labgenie/internal/migrate"
)

// OpenRemote connects to a Turso database over libsql and applies pending
// migrations.
func OpenRemote(ctx context.Context, databaseURL, authToken string) (*sql.DB, error) {
	db, err := ConnectRemote(ctx, databaseURL, authToken)
	if err != nil {
		return nil, err
	}

	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// ConnectRemote connects to a Turso database without touching the schema.
func ConnectRemote(ctx context.Context, databaseURL, authToken string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	connStr := databaseURL
	if authToken != "" {
		connStr += "?authToken=" + authToken
	}
	db, err := sql.Open(DriverLibSQL, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Turso closes idle Hrana streams aggressively, so idle connections go
	// stale with "stream not found".
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
