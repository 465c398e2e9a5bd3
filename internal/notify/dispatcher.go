package notify

import (
	"context"
	"fmt"
	"log"

	"ibms-backend/internal/core"
)

// Dispatcher fans a low-stock alert out to the configured email address and
// phone number. Recipients are resolved from notification settings at
// dispatch time so edits take effect without a restart. Delivery failures
// are logged, never returned; stock changes must not fail because a
// provider is down.
type Dispatcher struct {
	settings core.SettingsService
	mailer   Mailer
	sms      SMSSender
}

var _ core.LowStockNotifier = (*Dispatcher)(nil)

// NewDispatcher wires the alert fan-out. mailer and sms may be nil when the
// corresponding channel is not configured.
func NewDispatcher(settings core.SettingsService, mailer Mailer, sms SMSSender) *Dispatcher {
	return &Dispatcher{settings: settings, mailer: mailer, sms: sms}
}

func (d *Dispatcher) NotifyLowStock(ctx context.Context, alert core.LowStockAlert) {
	set, err := d.settings.Get(ctx)
	if err != nil {
		log.Printf("low-stock alert for %q dropped: %v", alert.Name, err)
		return
	}

	subject := fmt.Sprintf("Low stock alert: %s", alert.Name)
	body := fmt.Sprintf("Item %q is running low: %d left in stock. Please restock soon.",
		alert.Name, alert.Quantity)

	if d.mailer != nil && set.Email != "" {
		if err := d.mailer.Send(set.Email, subject, body); err != nil {
			log.Printf("low-stock email for %q failed: %v", alert.Name, err)
		}
	}
	if d.sms != nil && set.PhoneNumber != "" {
		if err := d.sms.SendSMS(set.PhoneNumber, body); err != nil {
			log.Printf("low-stock SMS for %q failed: %v", alert.Name, err)
		}
	}
}
