package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_start_date", "trip_end_date", "base_currency",
	"expense_id", "spent_at", "amount", "currency", "category", "payer", "note",
}

// exportRowResponse is one JSON export row. Expense fields are null for a
// trip without expenses.
type exportRowResponse struct {
	TripID       uuid.UUID  `json:"tripId"`
	TripTitle    string     `json:"tripTitle"`
	StartDate    string     `json:"tripStartDate"`
	EndDate      string     `json:"tripEndDate"`
	BaseCurrency string     `json:"baseCurrency"`
	ExpenseID    *uuid.UUID `json:"expenseId"`
	SpentAt      *string    `json:"spentAt"`
	Amount       *float64   `json:"amount"`
	Currency     *string    `json:"currency"`
	Category     *string    `json:"category"`
	Payer        *string    `json:"payer"`
	Note         *string    `json:"note"`
}

// GetExport handles GET /api/export.
// It returns a flat table of every trip and expense.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		s.respondError(w, r, domain.NewValidationError("format", "format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToResponse(row))
	}
	s.respond(w, r, http.StatusOK, out)
}

// writeCSV encodes rows as CSV behind a header row. Trips without expenses
// leave the expense columns empty.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func rowToCSVRecord(r domain.ExportRow) []string {
	rec := []string{r.TripID.String(), r.TripTitle, r.StartDate, r.EndDate, r.BaseCurrency}
	e := r.Expense
	if e == nil {
		return append(rec, "", "", "", "", "", "", "")
	}
	note := ""
	if e.Note != nil {
		note = *e.Note
	}
	return append(rec,
		e.ID.String(),
		e.SpentAt,
		strconv.FormatFloat(e.Amount, 'f', -1, 64),
		e.Currency,
		e.Category,
		e.Payer,
		note,
	)
}

func rowToResponse(r domain.ExportRow) exportRowResponse {
	out := exportRowResponse{
		TripID:       r.TripID,
		TripTitle:    r.TripTitle,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		BaseCurrency: r.BaseCurrency,
	}
	if e := r.Expense; e != nil {
		out.ExpenseID = &e.ID
		out.SpentAt = &e.SpentAt
		out.Amount = &e.Amount
		out.Currency = &e.Currency
		out.Category = &e.Category
		out.Payer = &e.Payer
		out.Note = e.Note
	}
	return out
}
