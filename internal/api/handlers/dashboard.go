package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/presenter"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
)

// DashboardHandler serves the rendered dashboard. Every request runs a full refresh.
type DashboardHandler struct {
	portfolioService *service.PortfolioService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(portfolioService *service.PortfolioService) *DashboardHandler {
	return &DashboardHandler{
		portfolioService: portfolioService,
		now:              time.Now,
	}
}

// dashboard refreshes the portfolio and returns the display model. A failed
// refresh yields the error dashboard and the matching status code.
func (h *DashboardHandler) dashboard(r *http.Request) (presenter.Dashboard, int) {
	valuation, err := h.portfolioService.Refresh(r.Context())
	if err != nil {
		return presenter.ErrorDashboard(err, h.portfolioService.Currencies(), h.now()), statusForError(err)
	}
	return presenter.NewDashboard(valuation), http.StatusOK
}

// Page handles GET requests for the HTML dashboard.
//
// Endpoint: GET /
// Response: 200 OK with the dashboard page
// Error: 502/503/500 with the dashboard page showing the failure
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	dash, status := h.dashboard(r)

	response.RespondHTML(w, r, status, func(buf *bytes.Buffer) error {
		return presenter.RenderHTML(buf, dash)
	})
}

// Dashboard handles GET requests for the formatted dashboard as JSON.
//
// Endpoint: GET /api/portfolio/dashboard
// Response: 200 OK with presenter.Dashboard
// Error: 502/503/500 with presenter.Dashboard carrying the error message
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, status := h.dashboard(r)
	response.RespondJSON(w, r, status, dash)
}
