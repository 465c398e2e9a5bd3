package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ibms-backend/internal/core"
)

func TestInventoryService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewInventoryService(pool, &recordingNotifier{})

	created, err := svc.Create(ctx, "Brake Pad", "Ceramic front pad", 10, decimal.RequireFromString("99.99"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Quantity != 10 {
		t.Errorf("created = %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Brake Pad" || !got.Price.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("got = %+v", got)
	}

	updated, err := svc.Update(ctx, created.ID, "Brake Pad Pro", "Upgraded", 12, decimal.RequireFromString("119.99"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Brake Pad Pro" || updated.Quantity != 12 {
		t.Errorf("updated = %+v", updated)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, core.ErrInventoryNotFound) {
		t.Errorf("Get after delete: got %v, want ErrInventoryNotFound", err)
	}
}

func TestInventoryService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewInventoryService(pool, &recordingNotifier{})

	if _, err := svc.Create(ctx, "", "", 1, decimal.NewFromInt(1)); !errors.Is(err, core.ErrValidation) {
		t.Errorf("empty name: got %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "Widget", "", -1, decimal.NewFromInt(1)); !errors.Is(err, core.ErrValidation) {
		t.Errorf("negative quantity: got %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "Widget", "", 1, decimal.NewFromInt(-1)); !errors.Is(err, core.ErrValidation) {
		t.Errorf("negative price: got %v, want ErrValidation", err)
	}
}

func TestInventoryService_DeleteReferencedItemBlocked(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	notifier := &recordingNotifier{}
	inventory := core.NewInventoryService(pool, notifier)
	billing := core.NewBillingService(pool, notifier)

	item := seedItem(t, pool, "Widget A", 10, "25.00")
	customer := seedCustomer(t, pool, "Acme Corp", "billing@acme.test")

	if _, err := billing.CreateBill(ctx, customer, []core.BillLineInput{
		{InventoryID: item, Quantity: 1, Price: decimal.RequireFromString("25.00")},
	}); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if err := inventory.Delete(ctx, item); !errors.Is(err, core.ErrItemReferenced) {
		t.Fatalf("Delete referenced: got %v, want ErrItemReferenced", err)
	}

	// The item must still exist untouched.
	if _, err := inventory.Get(ctx, item); err != nil {
		t.Errorf("Get after blocked delete: %v", err)
	}
}

func TestInventoryService_UpdateDropBelowThresholdAlerts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	notifier := &recordingNotifier{}
	svc := core.NewInventoryService(pool, notifier)

	item := seedItem(t, pool, "Oil Filter", 5, "15.00")

	// Manual correction down to 1 crosses the threshold.
	if _, err := svc.Update(ctx, item, "Oil Filter", "", 1, decimal.RequireFromString("15.00")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if notifier.count() != 1 {
		t.Fatalf("alerts = %d, want 1", notifier.count())
	}

	// A second low-stock update on the latched row stays silent.
	if _, err := svc.Update(ctx, item, "Oil Filter", "", 0, decimal.RequireFromString("15.00")); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if notifier.count() != 1 {
		t.Fatalf("alerts after second update = %d, want 1", notifier.count())
	}
}
