package web

import (
	"fmt"
	"log"
	"net/http"

	"ibms-backend/internal/pdf"
)

const salesTrendDays = 14

// reportSummary handles GET /api/inventory/reports/summary/.
func (h *Handler) reportSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reporting.Summary(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_sales":  sum.TotalSales.StringFixed(2),
		"transactions": sum.Transactions,
		"avg_bill":     sum.AvgBill.StringFixed(2),
		"low_stock":    sum.LowStock,
	})
}

// reportTopProducts handles GET /api/inventory/reports/top-products/.
func (h *Handler) reportTopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.reporting.TopProducts(r.Context(), 10)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		out = append(out, map[string]any{
			"name":       p.Name,
			"units_sold": p.UnitsSold,
			"revenue":    p.Revenue.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// reportInventoryStatus handles GET /api/inventory/reports/inventory-status/.
func (h *Handler) reportInventoryStatus(w http.ResponseWriter, r *http.Request) {
	items, err := h.reporting.LowStockItems(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{"name": it.Name, "stock": it.Stock})
	}
	writeJSON(w, http.StatusOK, out)
}

// reportRecentTransactions handles GET /api/inventory/reports/recent-transactions/.
func (h *Handler) reportRecentTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.reporting.RecentTransactions(r.Context(), 10)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(txns))
	for _, t := range txns {
		out = append(out, map[string]any{
			"date":     t.Date.Format("2006-01-02"),
			"bill_no":  t.BillNo,
			"customer": t.Customer,
			"total":    t.Total.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// reportSalesTrend handles GET /api/inventory/reports/sales-trend/. Sales
// values are numeric so the frontend can chart them directly.
func (h *Handler) reportSalesTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.reporting.DailySales(r.Context(), salesTrendDays)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(trend))
	for _, d := range trend {
		out = append(out, map[string]any{
			"date":  d.Date,
			"sales": d.Sales.InexactFloat64(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// sendReportToManager handles POST /api/inventory/reports/send-to-manager/.
// Unlike low-stock alerts, a delivery failure here is surfaced to the
// caller: the user explicitly asked for the email.
func (h *Handler) sendReportToManager(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil {
		writeError(w, r, "email is not configured", "EMAIL_UNCONFIGURED", http.StatusInternalServerError)
		return
	}
	set, err := h.settings.Get(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	if set.Email == "" {
		writeError(w, r, "manager email is not configured", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	report, err := h.reporting.BuildManagerReport(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	doc, err := pdf.RenderManagerReport(report)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	subject := fmt.Sprintf("Manager report %s", report.GeneratedAt.Format("2006-01-02"))
	body := fmt.Sprintf(
		"Please find the attached business report.\n\nTotal sales: %s across %d transactions.",
		report.Summary.TotalSales.StringFixed(2), report.Summary.Transactions)
	filename := fmt.Sprintf("report_%s.pdf", report.GeneratedAt.Format("2006-01-02"))

	if err := h.mailer.SendWithAttachment(set.Email, subject, body, filename, doc); err != nil {
		log.Printf("manager report email failed: %v", err)
		writeError(w, r, "failed to send report email", "EMAIL_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "report sent to " + set.Email})
}
