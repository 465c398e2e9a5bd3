// Package web exposes the HTTP API consumed by the frontend. Routes mirror
// the frontend's fetch paths exactly, trailing slashes included.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ibms-backend/internal/ai"
	"ibms-backend/internal/core"
	"ibms-backend/internal/notify"
)

const (
	defaultBodyLimit = 1 << 20  // 1 MiB for regular JSON bodies
	aiBodyLimit      = 12 << 20 // base64 product photos
)

// Handler holds the domain services and the chi router.
type Handler struct {
	inventory  core.InventoryService
	customers  core.CustomerService
	billing    core.BillingService
	reporting  core.ReportingService
	settings   core.SettingsService
	recognizer ai.Recognizer
	mailer     notify.Mailer
	router     chi.Router
}

// NewHandler creates and wires the chi router with all routes. recognizer
// and mailer may be nil when the corresponding credentials are absent; the
// affected endpoints then fail cleanly instead of at startup.
func NewHandler(
	inventory core.InventoryService,
	customers core.CustomerService,
	billing core.BillingService,
	reporting core.ReportingService,
	settings core.SettingsService,
	recognizer ai.Recognizer,
	mailer notify.Mailer,
	allowedOrigins string,
) http.Handler {
	h := &Handler{
		inventory:  inventory,
		customers:  customers,
		billing:    billing,
		reporting:  reporting,
		settings:   settings,
		recognizer: recognizer,
		mailer:     mailer,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	r.Route("/api/inventory", func(r chi.Router) {
		// Photo uploads get their own, larger body cap.
		r.With(RequestBodyLimit(aiBodyLimit)).Post("/ai/recognize/", h.recognizeItem)

		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(defaultBodyLimit))

			// ── Inventory CRUD ───────────────────────────────────────────
			r.Post("/add/", h.createItem)
			r.Get("/list/", h.listItems)
			r.Get("/{id}/", h.getItem)
			r.Put("/{id}/", h.updateItem)
			r.Delete("/{id}/", h.deleteItem)

			// ── Customers ────────────────────────────────────────────────
			r.Get("/customers/", h.listCustomers)
			r.Post("/customers/add/", h.createCustomer)
			r.Post("/customers/edit/{id}/", h.updateCustomer)
			r.Get("/customer/{id}/history/", h.customerHistory)

			// ── Billing ──────────────────────────────────────────────────
			r.Post("/bill/create/", h.createBill)
			r.Get("/bills/", h.listBills)
			r.Get("/bill/{id}/details/", h.billDetails)
			r.Get("/bill/{id}/pdf/", h.billPDF)

			// ── Notification settings ────────────────────────────────────
			r.Get("/notification-setting/", h.getSettings)
			r.Post("/notification-setting/", h.updateSettings)

			// ── Reports ──────────────────────────────────────────────────
			r.Get("/reports/summary/", h.reportSummary)
			r.Get("/reports/top-products/", h.reportTopProducts)
			r.Get("/reports/inventory-status/", h.reportInventoryStatus)
			r.Get("/reports/recent-transactions/", h.reportRecentTransactions)
			r.Get("/reports/sales-trend/", h.reportSalesTrend)
			r.Post("/reports/send-to-manager/", h.sendReportToManager)
		})
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
