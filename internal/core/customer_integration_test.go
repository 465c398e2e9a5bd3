package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ibms-backend/internal/core"
)

func TestCustomerService_CreateAndDuplicate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewCustomerService(pool)

	c, err := svc.Create(ctx, "Acme Corp", "billing@acme.test", "+15550000002")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == 0 || c.Email != "billing@acme.test" {
		t.Errorf("created = %+v", c)
	}

	if _, err := svc.Create(ctx, "Acme Clone", "billing@acme.test", ""); !errors.Is(err, core.ErrCustomerExists) {
		t.Errorf("duplicate email: got %v, want ErrCustomerExists", err)
	}
}

func TestCustomerService_PartialUpdate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewCustomerService(pool)
	id := seedCustomer(t, pool, "Acme Corp", "billing@acme.test")

	// Blank email and phone keep their stored values.
	updated, err := svc.Update(ctx, id, "Acme Corporation", "", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Acme Corporation" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Email != "billing@acme.test" {
		t.Errorf("email = %q, want original preserved", updated.Email)
	}

	if _, err := svc.Update(ctx, 9999, "Nobody", "", ""); !errors.Is(err, core.ErrCustomerNotFound) {
		t.Errorf("unknown id: got %v, want ErrCustomerNotFound", err)
	}
}

func TestCustomerService_History(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	customers := core.NewCustomerService(pool)
	billing := core.NewBillingService(pool, &recordingNotifier{})

	item := seedItem(t, pool, "Widget A", 100, "10.00")
	id := seedCustomer(t, pool, "Acme Corp", "billing@acme.test")
	price := decimal.RequireFromString("10.00")

	for i := 0; i < 3; i++ {
		if _, err := billing.CreateBill(ctx, id, []core.BillLineInput{
			{InventoryID: item, Quantity: 1, Price: price},
		}); err != nil {
			t.Fatalf("CreateBill %d: %v", i, err)
		}
	}

	bills, err := customers.History(ctx, id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("bills = %d, want 3", len(bills))
	}
	for _, b := range bills {
		if b.CustomerName != "Acme Corp" {
			t.Errorf("customer name = %q", b.CustomerName)
		}
	}

	if _, err := customers.History(ctx, 9999); !errors.Is(err, core.ErrCustomerNotFound) {
		t.Errorf("unknown id: got %v, want ErrCustomerNotFound", err)
	}
}
