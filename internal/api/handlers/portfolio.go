package handlers

import (
	"net/http"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
)

// PortfolioHandler handles portfolio valuation requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Valuation handles GET requests for the unformatted valuation of the portfolio.
// Decimal values are encoded as strings to keep them exact.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with model.Valuation
// Error: 502 Bad Gateway when quotes cannot be fetched, 503 when holdings cannot be loaded
func (h *PortfolioHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.portfolioService.Refresh(r.Context())
	if err != nil {
		respondServiceError(w, r, "failed to refresh portfolio", err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, valuation)
}
