// Package service contains the business logic for the Trip Ledger API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/metrics"
	"github.com/pkordes/trip-ledger/internal/repo"
	"github.com/pkordes/trip-ledger/internal/validate"
)

// TripService implements business logic for Trip operations.
// It holds the expense repo because reading a trip includes its expenses and
// deleting a trip removes them.
type TripService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	tx       repo.Transactor
	metrics  *metrics.Metrics
}

// NewTripService constructs a TripService. m may be nil.
func NewTripService(trips repo.TripRepo, expenses repo.ExpenseRepo, tx repo.Transactor, m *metrics.Metrics) *TripService {
	return &TripService{trips: trips, expenses: expenses, tx: tx, metrics: m}
}

// Create validates and persists a new trip.
// Fields are checked in order title, startDate, endDate, baseCurrency, then
// the date ordering; the first failure is returned as a *domain.ValidationError.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (_ domain.Trip, err error) {
	defer s.observe("trip.create", time.Now(), &err)

	title, err := requireText(in.Title, "title")
	if err != nil {
		return domain.Trip{}, err
	}
	start, err := requireDate(in.StartDate, "startDate")
	if err != nil {
		return domain.Trip{}, err
	}
	end, err := requireDate(in.EndDate, "endDate")
	if err != nil {
		return domain.Trip{}, err
	}
	base, err := requireText(in.BaseCurrency, "baseCurrency")
	if err != nil {
		return domain.Trip{}, err
	}
	if err := checkDateOrder(start, end); err != nil {
		return domain.Trip{}, err
	}

	created, err := s.trips.Create(ctx, domain.Trip{
		Title:        title,
		StartDate:    start,
		EndDate:      end,
		BaseCurrency: base,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.metrics.IncTripsCreated()
	return created, nil
}

// List returns all trips, most recently created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) (_ []domain.Trip, err error) {
	defer s.observe("trip.list", time.Now(), &err)

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Exists returns nil when the trip exists and domain.ErrNotFound when it does not.
func (s *TripService) Exists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Exists: %w", err)
	}
	return nil
}

// GetWithExpenses returns the trip, its expenses ordered by spent date, and
// the totals computed from them. The two reads run concurrently and are not
// wrapped in a transaction. Returns domain.ErrNotFound if the trip is absent.
func (s *TripService) GetWithExpenses(ctx context.Context, id uuid.UUID) (_ domain.TripDetail, err error) {
	defer s.observe("trip.get", time.Now(), &err)

	var (
		trip     domain.Trip
		expenses []domain.Expense
		tripErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		trip, tripErr = s.trips.GetByID(gctx, id)
		return tripErr
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListByTripID(gctx, id)
		return err
	})
	waitErr := g.Wait()

	// A missing trip outranks whatever the cancelled expense read reported.
	// Any other trip error may only be the cancellation caused by the
	// expense read, so the first failure reported by the group wins.
	if errors.Is(tripErr, domain.ErrNotFound) {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetWithExpenses: %w", tripErr)
	}
	if waitErr != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetWithExpenses: %w", waitErr)
	}

	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return domain.TripDetail{
		Trip:     trip,
		Expenses: expenses,
		Stats:    domain.Summarize(expenses),
	}, nil
}

// Update applies a partial update. Only fields whose Set flag is true are
// validated and written; the date ordering is re-checked against the stored
// value of any date not being changed.
// Returns a *domain.ValidationError for bad input or an empty update, and
// domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, in domain.TripInput) (_ domain.Trip, err error) {
	defer s.observe("trip.update", time.Now(), &err)

	if in.Empty() {
		return domain.Trip{}, domain.NewValidationError("", "no fields to update")
	}

	current, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	changes, err := validateChanges(in)
	if err != nil {
		return domain.Trip{}, err
	}
	effective := changes.ApplyTo(current)
	if err := checkDateOrder(effective.StartDate, effective.EndDate); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, id, changes)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip and every expense it owns in one transaction and
// returns how many expenses were removed.
// Returns domain.ErrNotFound if the trip does not exist, and an error wrapping
// domain.ErrTransaction if anything fails after the existence check; in that
// case nothing has been removed.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) (_ int64, err error) {
	defer s.observe("trip.delete", time.Now(), &err)

	var removed int64
	err = s.tx.WithinTx(ctx, func(st repo.Stores) error {
		if _, err := st.Trips.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := st.Expenses.DeleteByTripID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: delete expenses: %w", domain.ErrTransaction, err)
		}
		if err := st.Trips.Delete(ctx, id); err != nil {
			return fmt.Errorf("%w: delete trip: %w", domain.ErrTransaction, err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("service.TripService.Delete: %w", err)
	}

	s.metrics.IncTripsDeleted(removed)
	return removed, nil
}

// validateChanges checks every supplied field with the same rules as Create.
func validateChanges(in domain.TripInput) (domain.TripChanges, error) {
	var c domain.TripChanges
	if in.Title.Set {
		v, err := requireText(in.Title, "title")
		if err != nil {
			return c, err
		}
		c.Title = &v
	}
	if in.StartDate.Set {
		v, err := requireDate(in.StartDate, "startDate")
		if err != nil {
			return c, err
		}
		c.StartDate = &v
	}
	if in.EndDate.Set {
		v, err := requireDate(in.EndDate, "endDate")
		if err != nil {
			return c, err
		}
		c.EndDate = &v
	}
	if in.BaseCurrency.Set {
		v, err := requireText(in.BaseCurrency, "baseCurrency")
		if err != nil {
			return c, err
		}
		c.BaseCurrency = &v
	}
	return c, nil
}

func checkDateOrder(start, end string) error {
	if !validate.DateLessOrEqual(start, end) {
		return domain.NewValidationError("endDate", "startDate must be <= endDate")
	}
	return nil
}

// observe records the operation duration labelled with the outcome of *errp.
func (s *TripService) observe(op string, start time.Time, errp *error) {
	s.metrics.ObserveOperation(op, outcome(*errp), start)
}

// outcome classifies err for metric labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
