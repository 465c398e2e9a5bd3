package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// ReportSummary is the dashboard headline block. AvgBill is TotalSales
// divided by Transactions from the same query snapshot, zero when there are
// no transactions.
type ReportSummary struct {
	TotalSales   decimal.Decimal
	Transactions int64
	AvgBill      decimal.Decimal
	LowStock     int64
}

// TopProduct is one row of the units-sold ranking.
type TopProduct struct {
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// LowStockItem is an item currently under the low-stock threshold.
type LowStockItem struct {
	Name  string
	Stock int
}

// RecentTransaction is one row of the latest-bills feed.
type RecentTransaction struct {
	Date     time.Time
	BillNo   int
	Customer string
	Total    decimal.Decimal
}

// DailySales is one calendar-day bucket of the sales trend.
type DailySales struct {
	Date  string // YYYY-MM-DD
	Sales decimal.Decimal
}

// MonthlySales aggregates trend buckets by calendar month.
type MonthlySales struct {
	Month string // YYYY-MM
	Sales decimal.Decimal
}

// ManagerReport is the payload of the emailed manager summary, built from a
// trailing 30-day window.
type ManagerReport struct {
	GeneratedAt   time.Time
	Summary       ReportSummary
	LowStockItems []LowStockItem
	TopProducts   []TopProduct
	Trend         []DailySales
	TopDay        *DailySales
	TopMonth      *MonthlySales
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService serves read-only aggregates over bills and inventory.
// Every value is computed fresh per call; nothing is cached.
type ReportingService interface {
	Summary(ctx context.Context) (*ReportSummary, error)
	// TopProducts ranks products by units sold, capped at limit.
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	LowStockItems(ctx context.Context) ([]LowStockItem, error)
	// RecentTransactions returns the latest bills, capped at limit.
	RecentTransactions(ctx context.Context, limit int) ([]RecentTransaction, error)
	// DailySales returns a zero-filled series for the trailing days calendar
	// days, oldest first, bucketed by calendar date.
	DailySales(ctx context.Context, days int) ([]DailySales, error)
	// BuildManagerReport assembles the 30-day manager summary.
	BuildManagerReport(ctx context.Context) (*ManagerReport, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) Summary(ctx context.Context) (*ReportSummary, error) {
	var sum ReportSummary
	// Sum and count come from one snapshot so the average is exact.
	err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(total), 0), COUNT(id) FROM bills",
	).Scan(&sum.TotalSales, &sum.Transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales totals: %w", err)
	}
	if sum.Transactions > 0 {
		sum.AvgBill = sum.TotalSales.Div(decimal.NewFromInt(sum.Transactions)).Round(2)
	}

	err = s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM inventory WHERE quantity < $1", LowStockThreshold,
	).Scan(&sum.LowStock)
	if err != nil {
		return nil, fmt.Errorf("failed to count low-stock items: %w", err)
	}
	return &sum, nil
}

func (s *reportingService) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT i.name,
		       SUM(bi.quantity)            AS units_sold,
		       SUM(bi.quantity * bi.price) AS revenue
		FROM bill_items bi
		JOIN inventory i ON i.id = bi.inventory_id
		GROUP BY i.id, i.name
		ORDER BY units_sold DESC, revenue DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var products []TopProduct
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.Name, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *reportingService) LowStockItems(ctx context.Context) ([]LowStockItem, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT name, quantity FROM inventory WHERE quantity < $1 ORDER BY quantity, name",
		LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query low-stock items: %w", err)
	}
	defer rows.Close()

	var items []LowStockItem
	for rows.Next() {
		var it LowStockItem
		if err := rows.Scan(&it.Name, &it.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan low-stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *reportingService) RecentTransactions(ctx context.Context, limit int) ([]RecentTransaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.date, b.id, c.name, b.total
		FROM bills b
		JOIN customers c ON c.id = b.customer_id
		ORDER BY b.date DESC, b.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	defer rows.Close()

	var txns []RecentTransaction
	for rows.Next() {
		var t RecentTransaction
		if err := rows.Scan(&t.Date, &t.BillNo, &t.Customer, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (s *reportingService) DailySales(ctx context.Context, days int) ([]DailySales, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -(days - 1)).Format("2006-01-02")

	rows, err := s.pool.Query(ctx, `
		SELECT to_char(b.date, 'YYYY-MM-DD') AS day, SUM(b.total)
		FROM bills b
		WHERE b.date >= $1::date
		GROUP BY day
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]decimal.Decimal)
	for rows.Next() {
		var day string
		var sales decimal.Decimal
		if err := rows.Scan(&day, &sales); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		byDay[day] = sales
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily sales iteration error: %w", err)
	}
	return fillDailySeries(byDay, now, days), nil
}

// fillDailySeries expands sparse per-day sums into a continuous series over
// the trailing days calendar days ending at now, zero for missing days.
func fillDailySeries(byDay map[string]decimal.Decimal, now time.Time, days int) []DailySales {
	series := make([]DailySales, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		sales, ok := byDay[day]
		if !ok {
			sales = decimal.Zero
		}
		series = append(series, DailySales{Date: day, Sales: sales})
	}
	return series
}

// topSellingDay picks the best day of the series; ties keep the earlier day.
func topSellingDay(series []DailySales) *DailySales {
	var top *DailySales
	for i := range series {
		if top == nil || series[i].Sales.GreaterThan(top.Sales) {
			top = &series[i]
		}
	}
	return top
}

// topSellingMonth buckets the series by YYYY-MM and picks the best month.
func topSellingMonth(series []DailySales) *MonthlySales {
	byMonth := make(map[string]decimal.Decimal)
	var order []string
	for _, d := range series {
		month := d.Date[:7]
		if _, seen := byMonth[month]; !seen {
			order = append(order, month)
		}
		byMonth[month] = byMonth[month].Add(d.Sales)
	}

	var top *MonthlySales
	for _, month := range order {
		sales := byMonth[month]
		if top == nil || sales.GreaterThan(top.Sales) {
			top = &MonthlySales{Month: month, Sales: sales}
		}
	}
	return top
}

const managerReportDays = 30

func (s *reportingService) BuildManagerReport(ctx context.Context) (*ManagerReport, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.TopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	trend, err := s.DailySales(ctx, managerReportDays)
	if err != nil {
		return nil, err
	}

	return &ManagerReport{
		GeneratedAt:   time.Now(),
		Summary:       *summary,
		LowStockItems: lowStock,
		TopProducts:   topProducts,
		Trend:         trend,
		TopDay:        topSellingDay(trend),
		TopMonth:      topSellingMonth(trend),
	}, nil
}
