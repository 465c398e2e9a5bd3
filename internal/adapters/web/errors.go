package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ibms-backend/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serviceError maps domain errors to HTTP responses. Absence is 404,
// business-rule violations are 400, anything unrecognized is a 500 with the
// detail kept in the server log.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *core.InsufficientStockError
	switch {
	case errors.Is(err, core.ErrInventoryNotFound),
		errors.Is(err, core.ErrCustomerNotFound),
		errors.Is(err, core.ErrBillNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &stockErr):
		writeError(w, r, stockErr.Error(), "INSUFFICIENT_STOCK", http.StatusBadRequest)
	case errors.Is(err, core.ErrCustomerExists):
		writeError(w, r, err.Error(), "CUSTOMER_EXISTS", http.StatusBadRequest)
	case errors.Is(err, core.ErrItemReferenced):
		writeError(w, r, err.Error(), "ITEM_REFERENCED", http.StatusBadRequest)
	case errors.Is(err, core.ErrValidation):
		writeError(w, r, err.Error(), "VALIDATION", http.StatusBadRequest)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
