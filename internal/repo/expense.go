package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// Expenses are always reached through their owning trip.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	// The caller is responsible for checking that the trip exists.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// ListByTripID returns all expenses for a trip ordered by spent_at
	// ascending, then by insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// DeleteByTripID removes every expense owned by the trip and returns how
	// many rows were removed. Zero rows is not an error.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, amount, currency, category, spent_at, payer, note, created_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, amount, currency, category, spent_at, payer, note)
		VALUES (@trip_id, @amount, @currency, @category, @spent_at, @payer, @note)
		RETURNING ` + expenseColumns

	spentAt, err := toDate(&e.SpentAt)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: spent_at: %w", err)
	}

	args := pgx.NamedArgs{
		"trip_id":  e.TripID,
		"amount":   e.Amount,
		"currency": e.Currency,
		"category": e.Category,
		"spent_at": spentAt,
		"payer":    e.Payer,
		"note":     e.Note, // nil becomes NULL
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY spent_at ASC, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `DELETE FROM expenses WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e       domain.Expense
		id      pgtype.UUID
		tripID  pgtype.UUID
		spentAt pgtype.Date
		note    pgtype.Text
	)

	err := s.Scan(&id, &tripID, &e.Amount, &e.Currency, &e.Category, &spentAt, &e.Payer, &note, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.SpentAt = fromDate(spentAt)
	e.CreatedAt = e.CreatedAt.UTC()
	if note.Valid {
		n := note.String
		e.Note = &n
	}

	return e, nil
}
