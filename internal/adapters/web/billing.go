package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ibms-backend/internal/core"
	"ibms-backend/internal/pdf"
)

type createBillRequest struct {
	CustomerID int                  `json:"customer_id"`
	Items      []core.BillLineInput `json:"items"`
}

// billRow is one entry of the bills listing.
type billRow struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Customer string `json:"customer"`
	Total    string `json:"total"`
}

type billItemResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type billDetailsResponse struct {
	ID       int                `json:"id"`
	Date     string             `json:"date"`
	Customer customerResponse   `json:"customer"`
	Items    []billItemResponse `json:"items"`
	Total    string             `json:"total"`
}

// createBill handles POST /api/inventory/bill/create/.
func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	bill, err := h.billing.CreateBill(r.Context(), req.CustomerID, req.Items)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"bill_id": bill.ID,
		"total":   bill.Total.StringFixed(2),
	})
}

// listBills handles GET /api/inventory/bills/ with optional search,
// start_date, and end_date query params.
func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bills, err := h.billing.ListBills(r.Context(), q.Get("search"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]billRow, 0, len(bills))
	for _, b := range bills {
		out = append(out, billRow{
			ID:       b.ID,
			Date:     b.Date.Format("2006-01-02"),
			Customer: b.CustomerName,
			Total:    b.Total.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// billDetails handles GET /api/inventory/bill/{id}/details/.
func (h *Handler) billDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	details, err := h.billing.GetBill(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	items := make([]billItemResponse, 0, len(details.Items))
	for _, it := range details.Items {
		items = append(items, billItemResponse{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
			Total:    it.LineTotal().StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, billDetailsResponse{
		ID:       details.Bill.ID,
		Date:     details.Bill.Date.Format("2006-01-02 15:04"),
		Customer: toCustomerResponse(&details.Customer),
		Items:    items,
		Total:    details.Bill.Total.StringFixed(2),
	})
}

// billPDF handles GET /api/inventory/bill/{id}/pdf/ and streams the invoice
// as a download.
func (h *Handler) billPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	details, err := h.billing.GetBill(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	doc, err := pdf.RenderInvoice(details)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice_%d.pdf", id)))
	_, _ = w.Write(doc)
}
