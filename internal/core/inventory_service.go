package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InventoryService manages the product catalog and its stock latch state.
type InventoryService interface {
	Create(ctx context.Context, name, description string, quantity int, price decimal.Decimal) (*Inventory, error)
	List(ctx context.Context) ([]Inventory, error)
	Get(ctx context.Context, id int) (*Inventory, error)
	// Update replaces the full row and re-evaluates the low-stock latch the
	// same way the billing transaction does: a restock to the threshold or
	// above clears it, a drop below it on an unlatched row notifies once.
	Update(ctx context.Context, id int, name, description string, quantity int, price decimal.Decimal) (*Inventory, error)
	// Delete removes an item, failing with ErrItemReferenced when any bill
	// line still points at it.
	Delete(ctx context.Context, id int) error
}

type inventoryService struct {
	pool     *pgxpool.Pool
	notifier LowStockNotifier
}

// NewInventoryService constructs an InventoryService. notifier may be nil to
// disable alert dispatch (tests, tooling).
func NewInventoryService(pool *pgxpool.Pool, notifier LowStockNotifier) InventoryService {
	return &inventoryService{pool: pool, notifier: notifier}
}

const inventoryColumns = "id, name, description, quantity, price, low_stock_alert_sent, created_at, updated_at"

func scanInventory(row pgx.Row) (*Inventory, error) {
	var it Inventory
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price,
		&it.LowStockAlertSent, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *inventoryService) Create(ctx context.Context, name, description string, quantity int, price decimal.Decimal) (*Inventory, error) {
	if name == "" {
		return nil, fmt.Errorf("item name is required: %w", ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d: %w", quantity, ErrValidation)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s: %w", price, ErrValidation)
	}

	it, err := scanInventory(s.pool.QueryRow(ctx, `
		INSERT INTO inventory (name, description, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING `+inventoryColumns,
		name, description, quantity, price))
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return it, nil
}

func (s *inventoryService) List(ctx context.Context) ([]Inventory, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+inventoryColumns+" FROM inventory ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []Inventory
	for rows.Next() {
		var it Inventory
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price,
			&it.LowStockAlertSent, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *inventoryService) Get(ctx context.Context, id int) (*Inventory, error) {
	it, err := scanInventory(s.pool.QueryRow(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory item %d: %w", id, err)
	}
	return it, nil
}

func (s *inventoryService) Update(ctx context.Context, id int, name, description string, quantity int, price decimal.Decimal) (*Inventory, error) {
	if name == "" {
		return nil, fmt.Errorf("item name is required: %w", ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d: %w", quantity, ErrValidation)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s: %w", price, ErrValidation)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var alertSent bool
	err = tx.QueryRow(ctx,
		"SELECT low_stock_alert_sent FROM inventory WHERE id = $1 FOR UPDATE", id,
	).Scan(&alertSent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to lock inventory item %d: %w", id, err)
	}

	latched, notify := EvaluateLowStock(quantity, alertSent)

	it, err := scanInventory(tx.QueryRow(ctx, `
		UPDATE inventory
		SET name = $1, description = $2, quantity = $3, price = $4,
		    low_stock_alert_sent = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+inventoryColumns,
		name, description, quantity, price, latched, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit inventory update: %w", err)
	}

	if notify && s.notifier != nil {
		s.notifier.NotifyLowStock(ctx, LowStockAlert{ItemID: it.ID, Name: it.Name, Quantity: it.Quantity})
	}
	return it, nil
}

func (s *inventoryService) Delete(ctx context.Context, id int) error {
	var referenced bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM bill_items WHERE inventory_id = $1)", id,
	).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check bill references for item %d: %w", id, err)
	}
	if referenced {
		return ErrItemReferenced
	}

	ct, err := s.pool.Exec(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		// FK RESTRICT backstop for a reference created between check and delete.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrItemReferenced
		}
		return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInventoryNotFound
	}
	return nil
}
