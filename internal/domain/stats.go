package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

// Totals maps a grouping key to the summed amount of every expense sharing it.
// Keys keep their first-occurrence order. The zero value is ready to use.
type Totals struct {
	keys []string
	sums map[string]float64
}

// Add adds amount to the running total for key, starting at zero.
func (t *Totals) Add(key string, amount float64) {
	if t.sums == nil {
		t.sums = make(map[string]float64)
	}
	if _, ok := t.sums[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.sums[key] += amount
}

// Get returns the total for key and whether key was ever added.
func (t Totals) Get(key string) (float64, bool) {
	v, ok := t.sums[key]
	return v, ok
}

// Keys returns the keys in first-occurrence order.
func (t Totals) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of distinct keys.
func (t Totals) Len() int {
	return len(t.keys)
}

// Map returns a copy of the totals as a plain map.
func (t Totals) Map() map[string]float64 {
	out := make(map[string]float64, len(t.keys))
	for _, k := range t.keys {
		out[k] = t.sums[k]
	}
	return out
}

// MarshalJSON encodes the totals as a JSON object in key order.
// An empty Totals encodes as {}. A sum that overflowed to ±Inf encodes as null.
func (t Totals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		v := t.sums[k]
		if math.IsInf(v, 0) || math.IsNaN(v) {
			buf.WriteString("null")
			continue
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TripStats groups a trip's expenses three ways.
type TripStats struct {
	TotalByCurrency Totals
	TotalByCategory Totals
	TotalByDay      Totals
}

// Summarize sums amounts by currency, category, and day in a single pass.
// Mixed currencies are never converted; each currency gets its own total.
func Summarize(expenses []Expense) TripStats {
	var s TripStats
	for _, e := range expenses {
		s.TotalByCurrency.Add(e.Currency, e.Amount)
		s.TotalByCategory.Add(e.Category, e.Amount)
		s.TotalByDay.Add(e.SpentAt, e.Amount)
	}
	return s
}
