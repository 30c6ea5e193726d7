// Package domain contains the core data types for the Trip Ledger application.
// It is imported by every other internal package (repo, service, handler) and
// depends on nothing inside this module.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a titled date range with a nominal base currency.
// A trip is the top-level aggregate; expenses belong to a trip.
// StartDate and EndDate are "YYYY-MM-DD" calendar dates with StartDate <= EndDate.
type Trip struct {
	ID           uuid.UUID
	Title        string
	StartDate    string
	EndDate      string
	BaseCurrency string
	CreatedAt    time.Time
}

// TripInput carries unvalidated trip fields from the transport layer.
// Create reads every field regardless of Set; Update only touches the fields
// whose Set flag is true.
type TripInput struct {
	Title        Field
	StartDate    Field
	EndDate      Field
	BaseCurrency Field
}

// Empty reports whether no field was supplied at all.
func (in TripInput) Empty() bool {
	return !in.Title.Set && !in.StartDate.Set && !in.EndDate.Set && !in.BaseCurrency.Set
}

// TripChanges is a validated sparse update. Nil fields are left untouched
// in storage.
type TripChanges struct {
	Title        *string
	StartDate    *string
	EndDate      *string
	BaseCurrency *string
}

// ApplyTo returns t with every non-nil change applied.
func (c TripChanges) ApplyTo(t Trip) Trip {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.StartDate != nil {
		t.StartDate = *c.StartDate
	}
	if c.EndDate != nil {
		t.EndDate = *c.EndDate
	}
	if c.BaseCurrency != nil {
		t.BaseCurrency = *c.BaseCurrency
	}
	return t
}

// TripDetail is the read model for a single trip page.
// Expenses are ordered by SpentAt ascending; Stats is computed from them.
type TripDetail struct {
	Trip     Trip
	Expenses []Expense
	Stats    TripStats
}
