package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/validation"
)

// statusForError maps the error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	var verr *validation.Error
	switch {
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrStorageWrite):
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrQuoteService), errors.Is(err, apperrors.ErrMissingQuote):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidAssetID), errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError sends err with the status derived from its kind.
func respondServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	response.RespondError(w, r, statusForError(err), message, err.Error())
}
