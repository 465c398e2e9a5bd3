package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory is a stocked product. Quantity never goes negative: every
// decrement happens under a row lock inside the billing transaction.
// LowStockAlertSent is the notification latch: true iff quantity dropped
// below the threshold and an alert was dispatched since the last restock.
type Inventory struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	LowStockAlertSent bool            `json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Customer is a billing customer. Email is the natural dedup key: creation
// fails when the email already exists.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bill is a sales transaction header. Immutable once created.
type Bill struct {
	ID           int             `json:"id"`
	CustomerID   int             `json:"customer_id"`
	CustomerName string          `json:"customer_name"` // joined from customers
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
}

// BillItem is one line on a bill. Price is captured at sale time and does not
// follow later inventory price changes.
type BillItem struct {
	ID          int             `json:"id"`
	BillID      int             `json:"bill_id"`
	InventoryID int             `json:"inventory_id"`
	Name        string          `json:"name"` // joined from inventory
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is quantity × captured price.
func (bi BillItem) LineTotal() decimal.Decimal {
	return bi.Price.Mul(decimal.NewFromInt(int64(bi.Quantity)))
}

// BillDetails is a bill with its customer and line items resolved.
type BillDetails struct {
	Bill
	Customer Customer
	Items    []BillItem
}

// NotificationSetting is the singleton manager-contact row (id = 1).
type NotificationSetting struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// BillLineInput is one requested line on a new bill.
type BillLineInput struct {
	InventoryID int             `json:"inventory_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
