package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/metrics"
	"github.com/pkordes/trip-ledger/internal/repo"
)

// TripLookup is the existence check ExpenseService needs from TripService.
type TripLookup interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

// ExpenseService implements business logic for Expense operations.
type ExpenseService struct {
	trips    TripLookup
	expenses repo.ExpenseRepo
	metrics  *metrics.Metrics
}

// NewExpenseService constructs an ExpenseService. m may be nil.
func NewExpenseService(trips TripLookup, expenses repo.ExpenseRepo, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses, metrics: m}
}

// Create verifies the parent trip exists, validates the fields, then persists.
// The existence check runs first: an unknown trip is reported as
// domain.ErrNotFound even when every field is also invalid.
// Fields are checked in order amount, currency, category, spentAt, payer, note.
func (s *ExpenseService) Create(ctx context.Context, tripID uuid.UUID, in domain.ExpenseInput) (_ domain.Expense, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("expense.create", outcome(err), start) }()

	if err := s.trips.Exists(ctx, tripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}

	e, err := validateExpense(in)
	if err != nil {
		return domain.Expense{}, err
	}
	e.TripID = tripID

	created, err := s.expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	s.metrics.IncExpensesCreated()
	return created, nil
}

// validateExpense checks every field and returns the trimmed expense.
func validateExpense(in domain.ExpenseInput) (domain.Expense, error) {
	var (
		e   domain.Expense
		err error
	)
	if e.Amount, err = requireNumber(in.Amount, "amount"); err != nil {
		return domain.Expense{}, err
	}
	if e.Currency, err = requireText(in.Currency, "currency"); err != nil {
		return domain.Expense{}, err
	}
	if e.Category, err = requireText(in.Category, "category"); err != nil {
		return domain.Expense{}, err
	}
	if e.SpentAt, err = requireDate(in.SpentAt, "spentAt"); err != nil {
		return domain.Expense{}, err
	}
	if e.Payer, err = requireText(in.Payer, "payer"); err != nil {
		return domain.Expense{}, err
	}
	if e.Note, err = optionalText(in.Note, "note"); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}
