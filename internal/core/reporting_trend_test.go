package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFillDailySeries(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	byDay := map[string]decimal.Decimal{
		"2026-03-03": decimal.RequireFromString("150.00"),
		"2026-03-05": decimal.RequireFromString("50.00"),
	}

	series := fillDailySeries(byDay, now, 5)
	if len(series) != 5 {
		t.Fatalf("len = %d, want 5", len(series))
	}
	if series[0].Date != "2026-03-01" || series[4].Date != "2026-03-05" {
		t.Errorf("range = %s .. %s", series[0].Date, series[4].Date)
	}
	if !series[1].Sales.IsZero() {
		t.Errorf("missing day sales = %s, want 0", series[1].Sales)
	}
	if want := decimal.RequireFromString("150.00"); !series[2].Sales.Equal(want) {
		t.Errorf("2026-03-03 = %s, want %s", series[2].Sales, want)
	}
}

func TestTopSellingDay(t *testing.T) {
	series := []DailySales{
		{Date: "2026-03-01", Sales: decimal.RequireFromString("100.00")},
		{Date: "2026-03-02", Sales: decimal.RequireFromString("300.00")},
		{Date: "2026-03-03", Sales: decimal.RequireFromString("300.00")},
	}

	top := topSellingDay(series)
	if top == nil {
		t.Fatal("nil top day")
	}
	// Ties keep the earlier day.
	if top.Date != "2026-03-02" {
		t.Errorf("top day = %s, want 2026-03-02", top.Date)
	}

	if topSellingDay(nil) != nil {
		t.Error("empty series should yield nil")
	}
}

func TestTopSellingMonth(t *testing.T) {
	series := []DailySales{
		{Date: "2026-02-27", Sales: decimal.RequireFromString("80.00")},
		{Date: "2026-02-28", Sales: decimal.RequireFromString("90.00")},
		{Date: "2026-03-01", Sales: decimal.RequireFromString("100.00")},
	}

	top := topSellingMonth(series)
	if top == nil {
		t.Fatal("nil top month")
	}
	if top.Month != "2026-02" {
		t.Errorf("top month = %s, want 2026-02", top.Month)
	}
	if want := decimal.RequireFromString("170.00"); !top.Sales.Equal(want) {
		t.Errorf("month sales = %s, want %s", top.Sales, want)
	}

	if topSellingMonth(nil) != nil {
		t.Error("empty series should yield nil")
	}
}
