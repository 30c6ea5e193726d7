// Package validate holds the pure predicates used to check untyped request
// values. Every function is total: any input, including nil, yields a result
// and nothing panics.
package validate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NonEmptyString reports whether v is a string that is not blank after
// trimming leading and trailing whitespace.
func NonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// StorableText reports whether v is a string free of NUL bytes, which
// Postgres text columns reject.
func StorableText(v any) bool {
	s, ok := v.(string)
	return ok && !strings.ContainsRune(s, 0)
}

// FiniteNumber reports whether v is a number that is neither infinite nor NaN.
func FiniteNumber(v any) bool {
	_, ok := Number(v)
	return ok
}

// Number converts v to a float64 when v is a finite number.
// json.Number literals that overflow float64 are rejected.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// OptionalString reports whether v is nil or a string.
func OptionalString(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(string)
	return ok
}
