package web

import (
	"encoding/json"
	"net/http"

	"ibms-backend/internal/core"
)

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type customerResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toCustomerResponse(c *core.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// historyRow is one bill in a customer's purchase history.
type historyRow struct {
	ID    int    `json:"id"`
	Date  string `json:"date"`
	Total string `json:"total"`
}

// listCustomers handles GET /api/inventory/customers/.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]customerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResponse(&customers[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// createCustomer handles POST /api/inventory/customers/add/.
func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	c, err := h.customers.Create(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(c))
}

// updateCustomer handles POST /api/inventory/customers/edit/{id}/. Blank
// fields keep their existing values.
func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	c, err := h.customers.Update(r.Context(), id, req.Name, req.Email, req.Phone)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

// customerHistory handles GET /api/inventory/customer/{id}/history/.
func (h *Handler) customerHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	bills, err := h.customers.History(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]historyRow, 0, len(bills))
	for _, b := range bills {
		out = append(out, historyRow{
			ID:    b.ID,
			Date:  b.Date.Format("2006-01-02"),
			Total: b.Total.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
