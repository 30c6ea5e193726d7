package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-ledger/internal/domain"
)

// Error codes carried in the "code" field of every error response.
const (
	codeValidation       = "validation_error"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeTooLarge         = "payload_too_large"
	codeTransaction      = "transaction_failed"
	codeInternal         = "internal_error"
)

// errorBody is the JSON shape of every non-2xx response.
// Field is set only when the failure is tied to one request field.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// errInvalidBody marks a request body that is missing, unparseable, or not a
// JSON object.
var errInvalidBody = errors.New("invalid JSON body")

// notFoundMessage is the message rendered for a missing trip.
const notFoundMessage = "Trip not found"

// writeJSON encodes v and writes it with the given status.
// Nothing is written when v cannot be encoded.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("handler.writeJSON: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
	return nil
}

// respond writes v as JSON, or an internal error when v cannot be encoded.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.respondError(w, r, err)
	}
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	_ = writeJSON(w, status, body)
}

// respondError maps a service or decoding error onto its HTTP response.
// Only unexpected errors are logged; their detail never reaches the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *domain.ValidationError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooBig):
		writeError(w, http.StatusRequestEntityTooLarge, errorBody{Code: codeTooLarge, Message: "request body too large"})
	case errors.Is(err, errInvalidBody):
		writeError(w, http.StatusBadRequest, errorBody{Code: codeValidation, Message: errInvalidBody.Error()})
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, errorBody{Code: codeValidation, Message: verr.Message, Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, errorBody{Code: codeNotFound, Message: notFoundMessage})
	case errors.Is(err, domain.ErrTransaction):
		s.log.ErrorContext(r.Context(), "transaction failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, errorBody{Code: codeTransaction, Message: "Delete could not be completed; no changes were made"})
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, errorBody{Code: codeInternal, Message: "Internal Server Error"})
	}
}
