package apperrors

import (
	"errors"
	"fmt"
)

// Storage errors are returned by the holdings store.
var (
	// ErrStorageUnavailable indicates that the holdings resource is missing, unreadable,
	// or failed structural validation.
	ErrStorageUnavailable = errors.New("holdings storage unavailable")

	// ErrStorageWrite indicates that persisting holdings failed. The previous contents
	// of the backing resource are left intact.
	ErrStorageWrite = errors.New("holdings storage write failed")
)

// Quote errors are returned by the quote client and the valuation engine.
var (
	// ErrQuoteService indicates a network failure, a non-success response or a
	// malformed body from the quote service.
	ErrQuoteService = errors.New("quote service error")

	// ErrMissingQuote indicates that the quote service response did not contain a
	// requested asset identifier.
	ErrMissingQuote = errors.New("missing quote")
)

// Domain entity errors.
var (
	// ErrHoldingNotFound indicates that no holding exists for the given identifier.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrInvalidAssetID indicates that an asset identifier is empty or not lowercase.
	ErrInvalidAssetID = errors.New("invalid asset identifier")
)

// MissingQuoteError reports which asset identifier had no quote.
// It matches ErrMissingQuote with errors.Is.
type MissingQuoteError struct {
	ID string
}

func (e *MissingQuoteError) Error() string {
	return fmt.Sprintf("%s for %q", ErrMissingQuote, e.ID)
}

// Is reports whether target is ErrMissingQuote.
func (e *MissingQuoteError) Is(target error) bool {
	return target == ErrMissingQuote
}
