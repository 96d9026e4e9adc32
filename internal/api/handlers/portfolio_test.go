package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/handlers"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/presenter"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/testutil"
)

// TestPortfolioHandler_Valuation tests the GET /api/portfolio endpoint.
//
// WHY: Clients consuming the unformatted valuation rely on exact decimal
// values and on the stored holding order.
func TestPortfolioHandler_Valuation(t *testing.T) {
	t.Run("GET /api/portfolio returns rows, totals and alerts", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient())
		handler := handlers.NewPortfolioHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Valuation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var valuation model.Valuation
		if err := json.NewDecoder(w.Body).Decode(&valuation); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if len(valuation.Rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(valuation.Rows))
		}
		if valuation.Rows[0].ID != "bitcoin" || valuation.Rows[1].ID != "ethereum" {
			t.Errorf("Expected stored order [bitcoin ethereum], got [%s %s]", valuation.Rows[0].ID, valuation.Rows[1].ID)
		}
		if !valuation.Summary.TotalValuePrimary.Equal(testutil.Dec("68000")) {
			t.Errorf("Expected total 68000, got %s", valuation.Summary.TotalValuePrimary)
		}
		if !valuation.Summary.TotalValueSecondary.Equal(testutil.Dec("5644000")) {
			t.Errorf("Expected secondary total 5644000, got %s", valuation.Summary.TotalValueSecondary)
		}
		if len(valuation.Alerts) != 1 || valuation.Alerts[0].ID != "bitcoin" {
			t.Errorf("Expected one bitcoin alert, got %+v", valuation.Alerts)
		}
	})

	t.Run("quote service failure returns 502", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient().WithError("boom"))
		handler := handlers.NewPortfolioHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Valuation(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}

		var errResp response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if errResp.Error != "failed to refresh portfolio" {
			t.Errorf("Unexpected error message %q", errResp.Error)
		}
	})

	t.Run("missing quote returns 502", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient().WithoutQuote("ethereum"))
		handler := handlers.NewPortfolioHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Valuation(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "ethereum") {
			t.Errorf("Expected error to name ethereum, got %s", w.Body.String())
		}
	})

	t.Run("unreadable holdings returns 503", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, `{not json`)
		quotes := testutil.NewMockQuoteClient()
		svc := testutil.NewTestPortfolioService(t, store, quotes)
		handler := handlers.NewPortfolioHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Valuation(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
		if quotes.CallCount() != 0 {
			t.Errorf("Expected no quote requests, got %d", quotes.CallCount())
		}
	})
}

// TestDashboardHandler tests the rendered dashboard endpoints.
//
// WHY: The dashboard is the primary user surface. A failed refresh must still
// render a page explaining the failure instead of a stale or empty table.
func TestDashboardHandler(t *testing.T) {
	t.Run("GET / renders the HTML dashboard", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient())
		handler := handlers.NewDashboardHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.Page(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Expected text/html, got %q", ct)
		}

		body := w.Body.String()
		for _, want := range []string{"<table>", "Bitcoin", "Ethereum", "$68,000.00", "BITCOIN crossed $24,000.00"} {
			if !strings.Contains(body, want) {
				t.Errorf("Expected page to contain %q", want)
			}
		}
	})

	t.Run("GET / shows the error when the refresh fails", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient().WithError("rate limited"))
		handler := handlers.NewDashboardHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.Page(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "Refresh failed") || !strings.Contains(body, "rate limited") {
			t.Errorf("Expected failure message in page, got %s", body)
		}
		if strings.Contains(body, "Bitcoin") {
			t.Error("Expected no holdings rows on failure")
		}
	})

	t.Run("GET /api/portfolio/dashboard returns formatted values", func(t *testing.T) {
		store := testutil.NewTestJSONStore(t, testutil.SampleHoldingsJSON)
		svc := testutil.NewTestPortfolioService(t, store, testutil.NewMockQuoteClient())
		handler := handlers.NewDashboardHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/dashboard", nil)
		w := httptest.NewRecorder()

		handler.Dashboard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var dash presenter.Dashboard
		if err := json.NewDecoder(w.Body).Decode(&dash); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(dash.Rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(dash.Rows))
		}
		if dash.Rows[0].Value != "$50,000.00" {
			t.Errorf("Expected bitcoin value $50,000.00, got %s", dash.Rows[0].Value)
		}
		if dash.Rows[1].GainLoss != "$3,000.00" {
			t.Errorf("Expected ethereum gain $3,000.00, got %s", dash.Rows[1].GainLoss)
		}
		if dash.LastUpdated != "2024-05-01 12:30:00" {
			t.Errorf("Expected fixed clock timestamp, got %s", dash.LastUpdated)
		}
	})
}
