package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single dated monetary entry belonging to exactly one trip.
// Currency is an opaque tag; no conversion ever happens.
// Note is nil when the payer left it out.
type Expense struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Amount    float64
	Currency  string
	Category  string
	SpentAt   string
	Payer     string
	Note      *string
	CreatedAt time.Time
}

// ExpenseInput carries unvalidated expense fields from the transport layer.
type ExpenseInput struct {
	Amount   Field
	Currency Field
	Category Field
	SpentAt  Field
	Payer    Field
	Note     Field
}
