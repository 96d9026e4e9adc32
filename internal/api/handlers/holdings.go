package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/validation"
)

// maxRequestBodySize bounds the body of a holding upsert.
const maxRequestBodySize = 64 << 10

// HoldingsHandler handles holdings editing requests
type HoldingsHandler struct {
	holdingsService *service.HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler
func NewHoldingsHandler(holdingsService *service.HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsService: holdingsService,
	}
}

// Holdings handles GET requests for all holdings in stored order.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with []model.Holding
func (h *HoldingsHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingsService.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to retrieve holdings", err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, holdings)
}

// Holding handles GET requests for a single holding.
//
// Endpoint: GET /api/holdings/{id}
// Response: 200 OK with model.Holding
// Error: 404 Not Found if the holding does not exist
func (h *HoldingsHandler) Holding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	holding, err := h.holdingsService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "failed to retrieve holding", err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, holding)
}

// PutHolding handles PUT requests creating or replacing a holding.
//
// Endpoint: PUT /api/holdings/{id}
// Body: {"amount": 2, "buy_price": 20000, "alert_above": 24000}
// Response: 201 Created for a new holding, 200 OK for an update
// Error: 400 Bad Request on invalid identifier or body, 413 when the body exceeds maxRequestBodySize
func (h *HoldingsHandler) PutHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := validation.ValidateAssetID(id); err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid asset identifier", err.Error())
		return
	}

	var req request.UpsertHoldingRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(w, r, http.StatusRequestEntityTooLarge, "request body too large", err.Error())
			return
		}
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateHoldingFields(req.Amount, req.BuyPrice); err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding := model.Holding{
		ID: id,
		HoldingRecord: model.HoldingRecord{
			Amount:     *req.Amount,
			BuyPrice:   *req.BuyPrice,
			AlertAbove: req.AlertAbove,
		},
	}

	created, err := h.holdingsService.Upsert(r.Context(), id, holding.HoldingRecord)
	if err != nil {
		respondServiceError(w, r, "failed to save holding", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.RespondJSON(w, r, status, holding)
}

// DeleteHolding handles DELETE requests removing a holding.
//
// Endpoint: DELETE /api/holdings/{id}
// Response: 204 No Content
// Error: 404 Not Found if the holding does not exist
func (h *HoldingsHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.holdingsService.Remove(r.Context(), id); err != nil {
		respondServiceError(w, r, "failed to delete holding", err)
		return
	}

	response.RespondNoContent(w)
}
