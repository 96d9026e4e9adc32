package repository

import (
	"context"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// HoldingsStore loads and persists the ordered holdings mapping.
//
// Load fails with apperrors.ErrStorageUnavailable when the backing resource is
// missing, unreadable or structurally invalid. Save replaces the whole mapping
// atomically and fails with apperrors.ErrStorageWrite, leaving prior contents intact.
type HoldingsStore interface {
	Load(ctx context.Context) (model.Holdings, error)
	Save(ctx context.Context, holdings model.Holdings) error
}
