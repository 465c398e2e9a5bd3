package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ibms-backend/internal/core"
)

func TestReportingService_SummaryAndAggregates(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	billing := core.NewBillingService(pool, &recordingNotifier{})
	reporting := core.NewReportingService(pool)

	widget := seedItem(t, pool, "Widget A", 100, "50.00")
	seedItem(t, pool, "Gadget B", 1, "25.00") // already low stock
	customer := seedCustomer(t, pool, "Acme Corp", "billing@acme.test")

	if _, err := billing.CreateBill(ctx, customer, []core.BillLineInput{
		{InventoryID: widget, Quantity: 3, Price: decimal.RequireFromString("50.00")},
	}); err != nil {
		t.Fatalf("first bill: %v", err)
	}
	if _, err := billing.CreateBill(ctx, customer, []core.BillLineInput{
		{InventoryID: widget, Quantity: 1, Price: decimal.RequireFromString("50.00")},
	}); err != nil {
		t.Fatalf("second bill: %v", err)
	}

	sum, err := reporting.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if want := decimal.RequireFromString("200.00"); !sum.TotalSales.Equal(want) {
		t.Errorf("total sales = %s, want %s", sum.TotalSales, want)
	}
	if sum.Transactions != 2 {
		t.Errorf("transactions = %d, want 2", sum.Transactions)
	}
	if want := decimal.RequireFromString("100.00"); !sum.AvgBill.Equal(want) {
		t.Errorf("avg bill = %s, want %s", sum.AvgBill, want)
	}
	if sum.LowStock != 1 {
		t.Errorf("low stock = %d, want 1 (Gadget B)", sum.LowStock)
	}

	top, err := reporting.TopProducts(ctx, 10)
	if err != nil {
		t.Fatalf("TopProducts: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Widget A" || top[0].UnitsSold != 4 {
		t.Errorf("top = %+v", top)
	}
	if want := decimal.RequireFromString("200.00"); !top[0].Revenue.Equal(want) {
		t.Errorf("revenue = %s, want %s", top[0].Revenue, want)
	}

	low, err := reporting.LowStockItems(ctx)
	if err != nil {
		t.Fatalf("LowStockItems: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Gadget B" || low[0].Stock != 1 {
		t.Errorf("low = %+v", low)
	}

	recent, err := reporting.RecentTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTransactions: %v", err)
	}
	if len(recent) != 2 || recent[0].Customer != "Acme Corp" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestReportingService_EmptyDatabase(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	reporting := core.NewReportingService(pool)

	sum, err := reporting.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !sum.TotalSales.IsZero() || sum.Transactions != 0 || !sum.AvgBill.IsZero() {
		t.Errorf("summary = %+v, want zeros", sum)
	}
}

func TestReportingService_DailySalesZeroFills(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	billing := core.NewBillingService(pool, &recordingNotifier{})
	reporting := core.NewReportingService(pool)

	item := seedItem(t, pool, "Widget A", 100, "10.00")
	customer := seedCustomer(t, pool, "Acme Corp", "billing@acme.test")

	if _, err := billing.CreateBill(ctx, customer, []core.BillLineInput{
		{InventoryID: item, Quantity: 2, Price: decimal.RequireFromString("10.00")},
	}); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	trend, err := reporting.DailySales(ctx, 7)
	if err != nil {
		t.Fatalf("DailySales: %v", err)
	}
	if len(trend) != 7 {
		t.Fatalf("trend = %d days, want 7", len(trend))
	}

	today := time.Now().Format("2006-01-02")
	if trend[6].Date != today {
		t.Errorf("last bucket = %s, want %s", trend[6].Date, today)
	}
	if want := decimal.RequireFromString("20.00"); !trend[6].Sales.Equal(want) {
		t.Errorf("today's sales = %s, want %s", trend[6].Sales, want)
	}
	for _, day := range trend[:6] {
		if !day.Sales.IsZero() {
			t.Errorf("day %s = %s, want 0", day.Date, day.Sales)
		}
	}
}

func TestSettingsService_GetAndUpsert(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewSettingsService(pool)

	set, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if set.Email != "manager@example.test" {
		t.Errorf("seeded email = %q", set.Email)
	}

	updated, err := svc.Update(ctx, "boss@example.test", "+15550000009")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != "boss@example.test" || updated.PhoneNumber != "+15550000009" {
		t.Errorf("updated = %+v", updated)
	}

	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if again.Email != "boss@example.test" {
		t.Errorf("persisted email = %q", again.Email)
	}
}
