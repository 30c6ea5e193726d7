package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-ledger/internal/config"
	"github.com/pkordes/trip-ledger/internal/handler"
	"github.com/pkordes/trip-ledger/internal/metrics"
	"github.com/pkordes/trip-ledger/internal/middleware"
	"github.com/pkordes/trip-ledger/openapi"
)

// newRouter assembles the middleware stack and mounts every route.
//
// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
// Recoverer → CORS → MaxBodySize. Logger and Metrics sit outside Recoverer so
// a recovered panic is still logged and counted as a 500.
func newRouter(cfg config.Config, logger *slog.Logger, srv *handler.Server, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetricsHandler(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Method(http.MethodGet, "/openapi.yaml", openapi.Handler())
	r.Mount("/", srv.Routes())
	return r
}
