package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api/middleware"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	holdingsService *service.HoldingsService,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log.With().Str("component", "http").Logger()))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	dashboardHandler := handlers.NewDashboardHandler(portfolioService)
	r.Get("/", dashboardHandler.Page)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.Valuation)
			r.Get("/dashboard", dashboardHandler.Dashboard)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingsHandler := handlers.NewHoldingsHandler(holdingsService)
			r.Get("/", holdingsHandler.Holdings)
			r.Get("/{id}", holdingsHandler.Holding)
			r.Put("/{id}", holdingsHandler.PutHolding)
			r.Delete("/{id}", holdingsHandler.DeleteHolding)
		})
	})

	return r
}
