package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BillingService creates bills and serves historical bill queries.
//
// CreateBill is the one multi-row atomic operation in the system: the bill
// header, every line item, and every stock decrement commit together or not
// at all. Inventory rows are locked FOR UPDATE so concurrent bills against
// the same item serialize and stock never goes negative.
type BillingService interface {
	CreateBill(ctx context.Context, customerID int, lines []BillLineInput) (*Bill, error)
	// ListBills filters by free-text search (bill id or customer name) and an
	// inclusive date range; any filter may be empty.
	ListBills(ctx context.Context, search, startDate, endDate string) ([]Bill, error)
	GetBill(ctx context.Context, id int) (*BillDetails, error)
}

type billingService struct {
	pool     *pgxpool.Pool
	notifier LowStockNotifier
}

// NewBillingService constructs a BillingService. notifier may be nil to
// disable low-stock dispatch.
func NewBillingService(pool *pgxpool.Pool, notifier LowStockNotifier) BillingService {
	return &billingService{pool: pool, notifier: notifier}
}

func (s *billingService) CreateBill(ctx context.Context, customerID int, lines []BillLineInput) (*Bill, error) {
	if customerID == 0 || len(lines) == 0 {
		return nil, fmt.Errorf("customer and items are required: %w", ErrValidation)
	}
	total := decimal.Zero
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be positive, got %d: %w", i+1, line.Quantity, ErrValidation)
		}
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("line %d: price cannot be negative, got %s: %w", i+1, line.Price, ErrValidation)
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerName string
	err = tx.QueryRow(ctx, "SELECT name FROM customers WHERE id = $1", customerID).Scan(&customerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}

	bill := Bill{CustomerID: customerID, CustomerName: customerName, Total: total}
	err = tx.QueryRow(ctx,
		"INSERT INTO bills (customer_id, total) VALUES ($1, $2) RETURNING id, date",
		customerID, total,
	).Scan(&bill.ID, &bill.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}

	var alerts []LowStockAlert
	for i, line := range lines {
		var (
			name      string
			stock     int
			alertSent bool
		)
		err = tx.QueryRow(ctx,
			"SELECT name, quantity, low_stock_alert_sent FROM inventory WHERE id = $1 FOR UPDATE",
			line.InventoryID,
		).Scan(&name, &stock, &alertSent)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("line %d: %w", i+1, ErrInventoryNotFound)
			}
			return nil, fmt.Errorf("line %d: failed to lock inventory item %d: %w", i+1, line.InventoryID, err)
		}

		if stock < line.Quantity {
			return nil, &InsufficientStockError{Item: name, Available: stock, Requested: line.Quantity}
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO bill_items (bill_id, inventory_id, quantity, price) VALUES ($1, $2, $3, $4)",
			bill.ID, line.InventoryID, line.Quantity, line.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to insert bill item: %w", i+1, err)
		}

		newQty := stock - line.Quantity
		latched, notify := EvaluateLowStock(newQty, alertSent)
		_, err = tx.Exec(ctx,
			"UPDATE inventory SET quantity = $1, low_stock_alert_sent = $2, updated_at = NOW() WHERE id = $3",
			newQty, latched, line.InventoryID,
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to decrement stock for %s: %w", i+1, name, err)
		}
		if notify {
			alerts = append(alerts, LowStockAlert{ItemID: line.InventoryID, Name: name, Quantity: newQty})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bill: %w", err)
	}

	// Dispatch only after the commit: a rolled-back bill never notifies.
	if s.notifier != nil {
		for _, alert := range alerts {
			s.notifier.NotifyLowStock(ctx, alert)
		}
	}
	return &bill, nil
}

func (s *billingService) ListBills(ctx context.Context, search, startDate, endDate string) ([]Bill, error) {
	q := `
		SELECT b.id, b.customer_id, c.name, b.date, b.total
		FROM bills b
		JOIN customers c ON c.id = b.customer_id`

	var args []any
	var conds []string
	if search != "" {
		args = append(args, "%"+search+"%")
		cond := fmt.Sprintf("c.name ILIKE $%d", len(args))
		if id, err := strconv.Atoi(search); err == nil {
			args = append(args, id)
			cond = fmt.Sprintf("(c.name ILIKE $%d OR b.id = $%d)", len(args)-1, len(args))
		}
		conds = append(conds, cond)
	}
	if startDate != "" {
		args = append(args, startDate)
		conds = append(conds, fmt.Sprintf("b.date >= $%d::date", len(args)))
	}
	if endDate != "" {
		args = append(args, endDate)
		conds = append(conds, fmt.Sprintf("b.date < ($%d::date + INTERVAL '1 day')", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			q += " WHERE " + cond
		} else {
			q += " AND " + cond
		}
	}
	q += " ORDER BY b.date DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.Date, &b.Total); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (s *billingService) GetBill(ctx context.Context, id int) (*BillDetails, error) {
	var d BillDetails
	err := s.pool.QueryRow(ctx, `
		SELECT b.id, b.customer_id, b.date, b.total,
		       c.id, c.name, c.email, c.phone, c.created_at, c.updated_at
		FROM bills b
		JOIN customers c ON c.id = b.customer_id
		WHERE b.id = $1
	`, id).Scan(&d.ID, &d.CustomerID, &d.Date, &d.Total,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &d.Customer.Phone,
		&d.Customer.CreatedAt, &d.Customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to fetch bill %d: %w", id, err)
	}
	d.CustomerName = d.Customer.Name

	rows, err := s.pool.Query(ctx, `
		SELECT bi.id, bi.bill_id, bi.inventory_id, i.name, bi.quantity, bi.price
		FROM bill_items bi
		JOIN inventory i ON i.id = bi.inventory_id
		WHERE bi.bill_id = $1
		ORDER BY bi.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.InventoryID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	return &d, rows.Err()
}
