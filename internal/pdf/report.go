package pdf

import (
	"fmt"

	"ibms-backend/internal/core"
)

// RenderManagerReport produces the PDF attached to the emailed manager
// summary.
func RenderManagerReport(report *core.ManagerReport) ([]byte, error) {
	d := newDocument()

	d.title("Manager Report")
	d.line(fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))
	d.y += 3

	d.heading("Summary")
	d.line(fmt.Sprintf("Total sales: %s", report.Summary.TotalSales.StringFixed(2)))
	d.line(fmt.Sprintf("Transactions: %d", report.Summary.Transactions))
	d.line(fmt.Sprintf("Average bill: %s", report.Summary.AvgBill.StringFixed(2)))
	d.line(fmt.Sprintf("Low-stock items: %d", report.Summary.LowStock))
	d.y += 3

	if report.TopDay != nil {
		d.line(fmt.Sprintf("Best day (last 30): %s with %s",
			report.TopDay.Date, report.TopDay.Sales.StringFixed(2)))
	}
	if report.TopMonth != nil {
		d.line(fmt.Sprintf("Best month: %s with %s",
			report.TopMonth.Month, report.TopMonth.Sales.StringFixed(2)))
	}
	d.y += 3
	d.rule()

	d.heading("Top Products")
	if len(report.TopProducts) == 0 {
		d.line("No sales recorded yet.")
	}
	for _, p := range report.TopProducts {
		d.line(fmt.Sprintf("%-40s  %4d sold  revenue %10s",
			p.Name, p.UnitsSold, p.Revenue.StringFixed(2)))
	}
	d.rule()

	d.heading("Low Stock")
	if len(report.LowStockItems) == 0 {
		d.line("All items are adequately stocked.")
	}
	for _, it := range report.LowStockItems {
		d.line(fmt.Sprintf("%-40s  %d left", it.Name, it.Stock))
	}
	d.rule()

	d.heading("Daily Sales (last 30 days)")
	for _, day := range report.Trend {
		d.line(fmt.Sprintf("%s  %12s", day.Date, day.Sales.StringFixed(2)))
	}

	return d.output()
}
