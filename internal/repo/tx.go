package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// Stores bundles the repos bound to one transaction.
type Stores struct {
	Trips    TripRepo
	Expenses ExpenseRepo
}

// Transactor runs fn inside a single all-or-nothing transaction.
// If fn returns an error, or the commit fails, every write made through the
// Stores passed to fn is rolled back. Commit failures wrap domain.ErrTransaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Stores) error) error
}

// beginner is satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx. Beginning on a
// pgx.Tx opens a savepoint, which is how tests nest a Transactor inside their
// rolled-back isolation transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor that opens transactions on db.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(Stores) error) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: begin: %w: %w", domain.ErrTransaction, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("repo.Transactor.WithinTx: rollback: %w", rbErr))
		}
	}()

	if err = fn(Stores{Trips: NewTripRepo(tx), Expenses: NewExpenseRepo(tx)}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: commit: %w: %w", domain.ErrTransaction, err)
	}
	return nil
}
