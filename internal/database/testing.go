package database

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/jackpot-builder/internal/config"
)

// SetupTestDB creates a test database connection and verifies it. Tests that
// call this are skipped when no test database is configured.
func SetupTestDB(t *testing.T) *DB {
	cfg, err := config.Load("../../config/config.test.yaml")
	if err != nil {
		t.Skipf("no test database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()

	if err := db.Ping(verifyCtx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	db.Close()
}
