package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// tripRequest is the body of POST /api/trips and PATCH /api/trips/{tripId}.
// Every key is optional at the decoding stage; the service decides which
// are required.
type tripRequest struct {
	Title        domain.Field `json:"title"`
	StartDate    domain.Field `json:"startDate"`
	EndDate      domain.Field `json:"endDate"`
	BaseCurrency domain.Field `json:"baseCurrency"`
}

func (b tripRequest) toInput() domain.TripInput {
	return domain.TripInput{
		Title:        b.Title,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		BaseCurrency: b.BaseCurrency,
	}
}

type tripResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	BaseCurrency string    `json:"baseCurrency"`
	CreatedAt    time.Time `json:"createdAt"`
}

type statsResponse struct {
	TotalByCurrency domain.Totals `json:"totalByCurrency"`
	TotalByCategory domain.Totals `json:"totalByCategory"`
	TotalByDay      domain.Totals `json:"totalByDay"`
}

type tripDetailResponse struct {
	Trip     tripResponse      `json:"trip"`
	Expenses []expenseResponse `json:"expenses"`
	Stats    statsResponse     `json:"stats"`
}

type deleteTripResponse struct {
	ID              uuid.UUID `json:"id"`
	DeletedExpenses int64     `json:"deletedExpenses"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeObject(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), body.toInput())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	s.respond(w, r, http.StatusOK, data)
}

// GetTrip handles GET /api/trips/{tripId}. The response carries the trip, its
// expenses in spending order, and the grouped totals.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	detail, err := s.trips.GetWithExpenses(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	expenses := make([]expenseResponse, len(detail.Expenses))
	for i, e := range detail.Expenses {
		expenses[i] = expenseToResponse(e)
	}
	s.respond(w, r, http.StatusOK, tripDetailResponse{
		Trip:     tripToResponse(detail.Trip),
		Expenses: expenses,
		Stats: statsResponse{
			TotalByCurrency: detail.Stats.TotalByCurrency,
			TotalByCategory: detail.Stats.TotalByCategory,
			TotalByDay:      detail.Stats.TotalByDay,
		},
	})
}

// UpdateTrip handles PATCH /api/trips/{tripId}. Only keys present in the body
// are changed.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body tripRequest
	if err := decodeObject(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, body.toInput())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	removed, err := s.trips.Delete(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, deleteTripResponse{ID: id, DeletedExpenses: removed})
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:           t.ID,
		Title:        t.Title,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		BaseCurrency: t.BaseCurrency,
		CreatedAt:    t.CreatedAt.UTC(),
	}
}
