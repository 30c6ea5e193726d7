package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-ledger/internal/domain"
)

func TestSummarize_groupsByCurrencyCategoryAndDay(t *testing.T) {
	expenses := []domain.Expense{
		{Currency: "USD", Category: "food", SpentAt: "2024-01-01", Amount: 10},
		{Currency: "USD", Category: "transport", SpentAt: "2024-01-01", Amount: 5},
		{Currency: "EUR", Category: "food", SpentAt: "2024-01-02", Amount: 7},
	}

	s := domain.Summarize(expenses)

	assert.Equal(t, map[string]float64{"USD": 15, "EUR": 7}, s.TotalByCurrency.Map())
	assert.Equal(t, map[string]float64{"food": 17, "transport": 5}, s.TotalByCategory.Map())
	assert.Equal(t, map[string]float64{"2024-01-01": 15, "2024-01-02": 7}, s.TotalByDay.Map())
}

func TestSummarize_keysFollowFirstOccurrence(t *testing.T) {
	expenses := []domain.Expense{
		{Currency: "JPY", Category: "lodging", SpentAt: "2024-03-02", Amount: 100},
		{Currency: "USD", Category: "food", SpentAt: "2024-03-01", Amount: 1},
		{Currency: "JPY", Category: "food", SpentAt: "2024-03-02", Amount: 2},
	}

	s := domain.Summarize(expenses)

	assert.Equal(t, []string{"JPY", "USD"}, s.TotalByCurrency.Keys())
	assert.Equal(t, []string{"lodging", "food"}, s.TotalByCategory.Keys())
	assert.Equal(t, []string{"2024-03-02", "2024-03-01"}, s.TotalByDay.Keys())
}

func TestSummarize_signedAmounts(t *testing.T) {
	expenses := []domain.Expense{
		{Currency: "USD", Category: "refund", SpentAt: "2024-01-01", Amount: 20},
		{Currency: "USD", Category: "refund", SpentAt: "2024-01-01", Amount: -20},
	}

	s := domain.Summarize(expenses)

	total, ok := s.TotalByCurrency.Get("USD")
	require.True(t, ok, "USD key must be present even when the total is zero")
	assert.Zero(t, total)
}

func TestSummarize_empty(t *testing.T) {
	s := domain.Summarize(nil)

	assert.Zero(t, s.TotalByCurrency.Len())
	assert.Zero(t, s.TotalByCategory.Len())
	assert.Zero(t, s.TotalByDay.Len())

	b, err := json.Marshal(s.TotalByDay)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestTotals_MarshalJSON_preservesOrder(t *testing.T) {
	var tot domain.Totals
	tot.Add("zeta", 1.5)
	tot.Add("alpha", 2)
	tot.Add("zeta", 1)

	b, err := json.Marshal(tot)

	require.NoError(t, err)
	assert.Equal(t, `{"zeta":2.5,"alpha":2}`, string(b))
}

func TestTotals_MarshalJSON_overflowIsNull(t *testing.T) {
	s := domain.Summarize([]domain.Expense{
		{Amount: 1e308, Currency: "EUR", Category: "lodging", SpentAt: "2024-06-01"},
		{Amount: 1e308, Currency: "EUR", Category: "lodging", SpentAt: "2024-06-01"},
		{Amount: 5, Currency: "USD", Category: "food", SpentAt: "2024-06-02"},
	})

	b, err := json.Marshal(s.TotalByCurrency)

	require.NoError(t, err)
	assert.Equal(t, `{"EUR":null,"USD":5}`, string(b))
}
