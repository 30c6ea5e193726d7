package domain

import (
	"bytes"
	"encoding/json"
)

// Field is a request value whose type has not been checked yet.
// Set is true when the key was present in the request, including an explicit
// JSON null (Value is then nil). An absent key leaves Field at its zero value.
//
// JSON numbers decode as json.Number so validation can detect literals that
// overflow float64.
type Field struct {
	Value any
	Set   bool
}

// Supplied returns a Field carrying v, as if the key had been sent.
func Supplied(v any) Field {
	return Field{Value: v, Set: true}
}

// UnmarshalJSON records presence and stores the raw decoded value.
func (f *Field) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	f.Value = v
	f.Set = true
	return nil
}
