package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/validation"
)

// JSONHoldingsRepository stores holdings in a JSON object keyed by asset identifier:
//
//	{
//	    "bitcoin": {"amount": 2, "buy_price": 20000, "alert_above": 24000}
//	}
//
// Key order in the file is the stored order.
type JSONHoldingsRepository struct {
	path string
}

// NewJSONHoldingsRepository creates a repository backed by the file at path.
func NewJSONHoldingsRepository(path string) *JSONHoldingsRepository {
	return &JSONHoldingsRepository{path: path}
}

// Path returns the backing file path.
func (r *JSONHoldingsRepository) Path() string {
	return r.path
}

// holdingFile is the on-disk record. Pointers detect absent fields.
type holdingFile struct {
	Amount     *decimal.Decimal `json:"amount"`
	BuyPrice   *decimal.Decimal `json:"buy_price"`
	AlertAbove *decimal.Decimal `json:"alert_above,omitempty"`
}

// Load reads and validates the holdings file.
func (r *JSONHoldingsRepository) Load(_ context.Context) (model.Holdings, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}

	holdings, err := DecodeHoldings(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrStorageUnavailable, r.path, err)
	}
	return holdings, nil
}

// DecodeHoldings parses a holdings JSON object, keeping the key order.
func DecodeHoldings(rd io.Reader) (model.Holdings, error) {
	dec := json.NewDecoder(rd)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse holdings: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("holdings must be a JSON object")
	}

	holdings := model.Holdings{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse holdings: %w", err)
		}
		id, _ := tok.(string)
		if err := validation.ValidateAssetID(id); err != nil {
			return nil, err
		}
		if holdings.Find(id) >= 0 {
			return nil, fmt.Errorf("duplicate holding %q", id)
		}

		var rec holdingFile
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to parse holding %q: %w", id, err)
		}
		if err := validation.ValidateHoldingFields(rec.Amount, rec.BuyPrice); err != nil {
			return nil, fmt.Errorf("invalid holding %q: %w", id, err)
		}

		holdings = append(holdings, model.Holding{
			ID: id,
			HoldingRecord: model.HoldingRecord{
				Amount:     *rec.Amount,
				BuyPrice:   *rec.BuyPrice,
				AlertAbove: rec.AlertAbove,
			},
		})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse holdings: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after holdings object")
	}

	return holdings, nil
}

// EncodeHoldings writes holdings as an indented JSON object in stored order.
// Numbers are written as JSON numbers with their exact decimal representation.
func EncodeHoldings(w io.Writer, holdings model.Holdings) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, h := range holdings {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(h.ID)
		if err != nil {
			return err
		}
		rec := struct {
			Amount     json.Number  `json:"amount"`
			BuyPrice   json.Number  `json:"buy_price"`
			AlertAbove *json.Number `json:"alert_above,omitempty"`
		}{
			Amount:   json.Number(h.Amount.String()),
			BuyPrice: json.Number(h.BuyPrice.String()),
		}
		if h.AlertAbove != nil {
			n := json.Number(h.AlertAbove.String())
			rec.AlertAbove = &n
		}
		value, err := json.MarshalIndent(rec, "    ", "    ")
		if err != nil {
			return err
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(holdings) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// Save atomically replaces the holdings file. The new content is written to a
// temporary file in the same directory, synced and renamed over the target.
func (r *JSONHoldingsRepository) Save(_ context.Context, holdings model.Holdings) error {
	var buf bytes.Buffer
	if err := EncodeHoldings(&buf, holdings); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	// CreateTemp uses 0600; the replacement keeps the mode of the file it replaces.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	return nil
}
