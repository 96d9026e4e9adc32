package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/database"
)

// OpenStore returns the holdings store selected by configuration. For the sqlite
// backend it also returns the open database, which the caller must close; for
// the json backend the returned database is nil.
func OpenStore(cfg *config.Config) (HoldingsStore, *sql.DB, error) {
	switch cfg.Holdings.Backend {
	case config.BackendJSON:
		return NewJSONHoldingsRepository(cfg.Holdings.Path), nil, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteHoldingsRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown holdings backend %q", cfg.Holdings.Backend)
	}
}
