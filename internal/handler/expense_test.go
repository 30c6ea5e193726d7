package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-ledger/internal/domain"
	"github.com/pkordes/trip-ledger/internal/handler"
)

type mockExpenseServicer struct {
	create func(ctx context.Context, tripID uuid.UUID, in domain.ExpenseInput) (domain.Expense, error)
}

func (m *mockExpenseServicer) Create(ctx context.Context, tripID uuid.UUID, in domain.ExpenseInput) (domain.Expense, error) {
	return m.create(ctx, tripID, in)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

func expenseFixture(tripID uuid.UUID) domain.Expense {
	note := "airport"
	return domain.Expense{
		ID:        uuid.New(),
		TripID:    tripID,
		Amount:    42.5,
		Currency:  "EUR",
		Category:  "transport",
		SpentAt:   "2025-06-01",
		Payer:     "ana",
		Note:      &note,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateExpense_201(t *testing.T) {
	tripID := uuid.New()
	fixture := expenseFixture(tripID)
	var (
		gotTrip  uuid.UUID
		gotInput domain.ExpenseInput
	)
	svc := &mockExpenseServicer{
		create: func(_ context.Context, id uuid.UUID, in domain.ExpenseInput) (domain.Expense, error) {
			gotTrip, gotInput = id, in
			return fixture, nil
		},
	}

	rec := serve(newHTTPHandler(nil, svc), http.MethodPost, "/api/trips/"+tripID.String()+"/expenses",
		strings.NewReader(`{"amount":42.5,"currency":"EUR","category":"transport","spentAt":"2025-06-01","payer":"ana","note":"airport"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, tripID, gotTrip)
	assert.Equal(t, json.Number("42.5"), gotInput.Amount.Value, "numbers reach the service undecoded")
	assert.True(t, gotInput.Note.Set)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID.String(), resp["id"])
	assert.Equal(t, tripID.String(), resp["tripId"])
	assert.InDelta(t, 42.5, resp["amount"], 1e-9)
	assert.Equal(t, "2025-06-01", resp["spentAt"])
	assert.Equal(t, "airport", resp["note"])
	assert.Equal(t, "2025-06-01T12:00:00Z", resp["createdAt"])
}

func TestCreateExpense_NoteOmitted(t *testing.T) {
	var got domain.ExpenseInput
	svc := &mockExpenseServicer{
		create: func(_ context.Context, id uuid.UUID, in domain.ExpenseInput) (domain.Expense, error) {
			got = in
			e := expenseFixture(id)
			e.Note = nil
			return e, nil
		},
	}

	rec := serve(newHTTPHandler(nil, svc), http.MethodPost, "/api/trips/"+uuid.New().String()+"/expenses",
		strings.NewReader(`{"amount":1,"currency":"EUR","category":"food","spentAt":"2025-06-01","payer":"ana"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, got.Note.Set)
	assert.Contains(t, rec.Body.String(), `"note":null`)
}

func TestCreateExpense_404_TripMissing(t *testing.T) {
	svc := &mockExpenseServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.ExpenseInput) (domain.Expense, error) {
			return domain.Expense{}, domain.ErrNotFound
		},
	}

	rec := serve(newHTTPHandler(nil, svc), http.MethodPost, "/api/trips/"+uuid.New().String()+"/expenses",
		strings.NewReader(`{"amount":"not a number"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Trip not found", decodeError(t, rec).Message)
}

func TestCreateExpense_404_MalformedTripID(t *testing.T) {
	svc := &mockExpenseServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.ExpenseInput) (domain.Expense, error) {
			t.Fatal("service must not be reached")
			return domain.Expense{}, nil
		},
	}

	rec := serve(newHTTPHandler(nil, svc), http.MethodPost, "/api/trips/123/expenses", strings.NewReader(`{}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateExpense_400_Validation(t *testing.T) {
	svc := &mockExpenseServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.ExpenseInput) (domain.Expense, error) {
			return domain.Expense{}, domain.NewValidationError("amount", "amount must be a number")
		},
	}

	rec := serve(newHTTPHandler(nil, svc), http.MethodPost, "/api/trips/"+uuid.New().String()+"/expenses",
		strings.NewReader(`{"amount":"12"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Code)
	assert.Equal(t, "amount", resp.Field)
}

func TestCreateExpense_400_InvalidBody(t *testing.T) {
	rec := serve(newHTTPHandler(nil, &mockExpenseServicer{}), http.MethodPost,
		"/api/trips/"+uuid.New().String()+"/expenses", strings.NewReader(`[]`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeError(t, rec).Message)
}
