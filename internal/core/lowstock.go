package core

import "context"

// LowStockThreshold is the quantity below which an item counts as low stock.
const LowStockThreshold = 2

// LowStockAlert describes one latch rising edge recorded during a stock
// mutation. Dispatch happens only after the surrounding transaction commits.
type LowStockAlert struct {
	ItemID   int
	Name     string
	Quantity int
}

// LowStockNotifier delivers a low-stock alert to the configured manager.
// Implementations are best-effort: delivery failures are logged, never
// returned, so a notification can never fail a committed sale.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert)
}

// EvaluateLowStock computes the new latch value for a quantity change and
// whether the transition is a rising edge that warrants a notification.
// Restocking to the threshold or above always clears the latch; an already
// latched item stays latched without re-notifying.
func EvaluateLowStock(quantity int, alertSent bool) (latched bool, notify bool) {
	if quantity >= LowStockThreshold {
		return false, false
	}
	if alertSent {
		return true, false
	}
	return true, true
}
