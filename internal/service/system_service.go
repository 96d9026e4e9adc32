package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/database"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
)

// Version is the application version, overridden at build time with -ldflags.
var Version = "dev"

// SystemService handles system-related operations
type SystemService struct {
	db         *sql.DB
	store      repository.HoldingsStore
	backend    string
	currencies model.Currencies
}

// NewSystemService creates a new SystemService. db is nil when holdings are
// stored in a JSON file.
func NewSystemService(db *sql.DB, store repository.HoldingsStore, backend string, currencies model.Currencies) *SystemService {
	return &SystemService{
		db:         db,
		store:      store,
		backend:    backend,
		currencies: currencies,
	}
}

// CheckHealth checks that the database responds and the holdings store can be read.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	if s.db != nil {
		if err := database.HealthCheck(s.db); err != nil {
			return err
		}
	}
	_, err := s.store.Load(ctx)
	return err
}

// CheckVersion returns version information for the application.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	info := model.VersionInfo{
		AppVersion:      Version,
		HoldingsBackend: s.backend,
		Currencies:      s.currencies,
	}
	if s.db != nil {
		version, err := database.SchemaVersion(s.db)
		if err != nil {
			return model.VersionInfo{}, err
		}
		info.DbVersion = &version
	}
	return info, nil
}
