package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// expenseRequest is the body of POST /api/trips/{tripId}/expenses.
type expenseRequest struct {
	Amount   domain.Field `json:"amount"`
	Currency domain.Field `json:"currency"`
	Category domain.Field `json:"category"`
	SpentAt  domain.Field `json:"spentAt"`
	Payer    domain.Field `json:"payer"`
	Note     domain.Field `json:"note"`
}

type expenseResponse struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"tripId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Category  string    `json:"category"`
	SpentAt   string    `json:"spentAt"`
	Payer     string    `json:"payer"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateExpense handles POST /api/trips/{tripId}/expenses.
// An unknown trip is reported before any field problem.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := tripID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body expenseRequest
	if err := decodeObject(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.expenses.Create(r.Context(), id, domain.ExpenseInput{
		Amount:   body.Amount,
		Currency: body.Currency,
		Category: body.Category,
		SpentAt:  body.SpentAt,
		Payer:    body.Payer,
		Note:     body.Note,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, expenseToResponse(created))
}

func expenseToResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		TripID:    e.TripID,
		Amount:    e.Amount,
		Currency:  e.Currency,
		Category:  e.Category,
		SpentAt:   e.SpentAt,
		Payer:     e.Payer,
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC(),
	}
}
