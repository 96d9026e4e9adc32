package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/validation"
)

// HoldingsService edits the holdings mapping. Every edit loads the whole mapping,
// applies the change and saves it back; writers are serialized.
type HoldingsService struct {
	store repository.HoldingsStore
	log   zerolog.Logger
	mu    sync.Mutex
}

// NewHoldingsService creates a new HoldingsService with the provided store.
func NewHoldingsService(store repository.HoldingsStore, log zerolog.Logger) *HoldingsService {
	return &HoldingsService{
		store: store,
		log:   log.With().Str("component", "holdings").Logger(),
	}
}

// List returns all holdings in stored order.
func (s *HoldingsService) List(ctx context.Context) (model.Holdings, error) {
	return s.store.Load(ctx)
}

// Get returns the holding with the given identifier.
func (s *HoldingsService) Get(ctx context.Context, id string) (model.Holding, error) {
	holdings, err := s.store.Load(ctx)
	if err != nil {
		return model.Holding{}, err
	}
	i := holdings.Find(id)
	if i < 0 {
		return model.Holding{}, fmt.Errorf("%w: %s", apperrors.ErrHoldingNotFound, id)
	}
	return holdings[i], nil
}

// Upsert replaces the record of an existing holding in place, or appends a new one.
// It reports whether the holding was created.
func (s *HoldingsService) Upsert(ctx context.Context, id string, record model.HoldingRecord) (bool, error) {
	if err := validation.ValidateAssetID(id); err != nil {
		return false, err
	}
	if err := validation.ValidateHoldingFields(&record.Amount, &record.BuyPrice); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}

	updated := make(model.Holdings, len(holdings), len(holdings)+1)
	copy(updated, holdings)

	created := false
	if i := updated.Find(id); i >= 0 {
		updated[i].HoldingRecord = record
	} else {
		updated = append(updated, model.Holding{ID: id, HoldingRecord: record})
		created = true
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.log.Error().Err(err).Str("asset", id).Msg("Failed to save holdings")
		return false, err
	}

	s.log.Info().Str("asset", id).Bool("created", created).Msg("Holding saved")
	return created, nil
}

// Remove deletes the holding with the given identifier.
func (s *HoldingsService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	holdings, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	i := holdings.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrHoldingNotFound, id)
	}

	updated := make(model.Holdings, 0, len(holdings)-1)
	updated = append(updated, holdings[:i]...)
	updated = append(updated, holdings[i+1:]...)

	if err := s.store.Save(ctx, updated); err != nil {
		s.log.Error().Err(err).Str("asset", id).Msg("Failed to save holdings")
		return err
	}

	s.log.Info().Str("asset", id).Msg("Holding removed")
	return nil
}

// Replace saves holdings wholesale, e.g. when importing from another store.
func (s *HoldingsService) Replace(ctx context.Context, holdings model.Holdings) error {
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if err := validation.ValidateAssetID(h.ID); err != nil {
			return err
		}
		if seen[h.ID] {
			return fmt.Errorf("%w: duplicate holding %q", apperrors.ErrInvalidAssetID, h.ID)
		}
		seen[h.ID] = true
		if err := validation.ValidateHoldingFields(&h.Amount, &h.BuyPrice); err != nil {
			return fmt.Errorf("invalid holding %q: %w", h.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, holdings); err != nil {
		return err
	}
	s.log.Info().Int("holdings", len(holdings)).Msg("Holdings replaced")
	return nil
}
