// Package handler implements the HTTP handlers for the Trip Ledger API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, expense.go, export.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	GetWithExpenses(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	Update(ctx context.Context, id uuid.UUID, in domain.TripInput) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ExpenseServicer defines the business operations the expense handler depends on.
type ExpenseServicer interface {
	Create(ctx context.Context, tripID uuid.UUID, in domain.ExpenseInput) (domain.Expense, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	expenses ExpenseServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(trips TripServicer, expenses ExpenseServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, expenses: expenses, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a router serving every API endpoint.
// Mount it at "/" in main.go after the shared middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/api/export", s.GetExport)

	r.Route("/api/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/expenses", s.CreateExpense)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errorBody{Code: codeNotFound, Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errorBody{Code: codeMethodNotAllowed, Message: "Method not allowed"})
	})
	return r
}
