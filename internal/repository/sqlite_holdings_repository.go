package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/validation"
)

// SQLiteHoldingsRepository stores holdings in the holding table.
// The position column keeps the insertion order.
type SQLiteHoldingsRepository struct {
	db *sql.DB
}

// NewSQLiteHoldingsRepository creates a new SQLiteHoldingsRepository with the provided database connection.
func NewSQLiteHoldingsRepository(db *sql.DB) *SQLiteHoldingsRepository {
	return &SQLiteHoldingsRepository{db: db}
}

// Load retrieves all holdings ordered by position.
func (r *SQLiteHoldingsRepository) Load(ctx context.Context) (model.Holdings, error) {
	query := `
		SELECT id, amount, buy_price, alert_above
		FROM holding
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	holdings := model.Holdings{}
	for rows.Next() {
		var (
			id               string
			amount, buyPrice decimal.Decimal
			alertAbove       decimal.NullDecimal
		)
		if err := rows.Scan(&id, &amount, &buyPrice, &alertAbove); err != nil {
			return nil, fmt.Errorf("%w: failed to scan holding: %w", apperrors.ErrStorageUnavailable, err)
		}
		if err := validation.ValidateAssetID(id); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
		}
		if err := validation.ValidateHoldingFields(&amount, &buyPrice); err != nil {
			return nil, fmt.Errorf("%w: invalid holding %q: %w", apperrors.ErrStorageUnavailable, id, err)
		}

		h := model.Holding{
			ID: id,
			HoldingRecord: model.HoldingRecord{
				Amount:   amount,
				BuyPrice: buyPrice,
			},
		}
		if alertAbove.Valid {
			threshold := alertAbove.Decimal
			h.AlertAbove = &threshold
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}

	return holdings, nil
}

// Save replaces all holdings inside a single transaction.
func (r *SQLiteHoldingsRepository) Save(ctx context.Context, holdings model.Holdings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holding`); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO holding (id, position, amount, buy_price, alert_above)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	defer stmt.Close()

	for i, h := range holdings {
		var alertAbove any
		if h.AlertAbove != nil {
			alertAbove = h.AlertAbove.String()
		}
		if _, err := stmt.ExecContext(ctx, h.ID, i, h.Amount.String(), h.BuyPrice.String(), alertAbove); err != nil {
			return fmt.Errorf("%w: failed to insert holding %q: %w", apperrors.ErrStorageWrite, h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	return nil
}
