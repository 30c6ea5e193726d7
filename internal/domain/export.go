package domain

import "github.com/google/uuid"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per expense, with trip fields
// repeated for every expense on that trip. Trips with no expenses yield one
// row whose Expense is nil.
type ExportRow struct {
	TripID       uuid.UUID
	TripTitle    string
	StartDate    string
	EndDate      string
	BaseCurrency string

	Expense *Expense
}
