package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/metrics"
	"github.com/pkordes/trip-ledger/internal/repo"
)

// exportFetchLimit bounds how many per-trip expense reads run at once.
const exportFetchLimit = 4

// ExportService assembles a flat export of every trip and its expenses.
type ExportService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	metrics  *metrics.Metrics
}

// NewExportService constructs an ExportService. m may be nil.
func NewExportService(trips repo.TripRepo, expenses repo.ExpenseRepo, m *metrics.Metrics) *ExportService {
	return &ExportService{trips: trips, expenses: expenses, metrics: m}
}

// Export returns one ExportRow per expense across all trips. Trips keep the
// listing order (newest first) and expenses keep their spending order. A trip
// with no expenses contributes a single row with a nil Expense.
func (s *ExportService) Export(ctx context.Context) (_ []domain.ExportRow, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("trip.export", outcome(err), start) }()

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	perTrip := make([][]domain.Expense, len(trips))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportFetchLimit)
	for i, t := range trips {
		g.Go(func() error {
			expenses, err := s.expenses.ListByTripID(gctx, t.ID)
			if err != nil {
				return fmt.Errorf("trip %s: %w", t.ID, err)
			}
			perTrip[i] = expenses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trips))
	for i, t := range trips {
		base := domain.ExportRow{
			TripID:       t.ID,
			TripTitle:    t.Title,
			StartDate:    t.StartDate,
			EndDate:      t.EndDate,
			BaseCurrency: t.BaseCurrency,
		}
		if len(perTrip[i]) == 0 {
			rows = append(rows, base)
			continue
		}
		for j := range perTrip[i] {
			row := base
			row.Expense = &perTrip[i][j]
			rows = append(rows, row)
		}
	}
	return rows, nil
}
