package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/repo"
	"github.com/pkordes/trip-ledger/testutil"
)

// The Transactor is built on the test transaction, so each WithinTx call runs
// in a savepoint that is released or rolled back independently while the
// outer transaction still isolates the test.

func TestTransactor_WithinTx_Commits(t *testing.T) {
	tx := testutil.NewTx(t)
	ctx := context.Background()

	trips := repo.NewTripRepo(tx)
	expenses := repo.NewExpenseRepo(tx)
	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = expenses.Create(ctx, expenseFixture(trip.ID))
	require.NoError(t, err)

	var removed int64
	err = repo.NewTransactor(tx).WithinTx(ctx, func(s repo.Stores) error {
		n, err := s.Expenses.DeleteByTripID(ctx, trip.ID)
		if err != nil {
			return err
		}
		removed = n
		return s.Trips.Delete(ctx, trip.ID)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	_, err = trips.GetByID(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactor_WithinTx_RollsBackOnError(t *testing.T) {
	tx := testutil.NewTx(t)
	ctx := context.Background()

	trips := repo.NewTripRepo(tx)
	expenses := repo.NewExpenseRepo(tx)
	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = expenses.Create(ctx, expenseFixture(trip.ID))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repo.NewTransactor(tx).WithinTx(ctx, func(s repo.Stores) error {
		if _, err := s.Expenses.DeleteByTripID(ctx, trip.ID); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)

	left, err := expenses.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1, "expense deletion must be undone")
	_, err = trips.GetByID(ctx, trip.ID)
	assert.NoError(t, err, "trip must survive")
}

func TestTransactor_WithinTx_NotFoundPassesThrough(t *testing.T) {
	tx := testutil.NewTx(t)
	ctx := context.Background()

	err := repo.NewTransactor(tx).WithinTx(ctx, func(s repo.Stores) error {
		_, err := s.Trips.GetByID(ctx, uuid.New())
		return err
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrTransaction)
}
