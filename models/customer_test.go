package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quanlykho/kho_backend/models"
)

func TestCustomerCrud(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	customer, err := ledger.CreateCustomer(ctx, &models.NewCustomer{Name: "Pham Thi D", Phone: "0934567890", Address: "Q5"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	updated, err := ledger.UpdateCustomer(ctx, customer.ID, &models.NewCustomer{Name: "Pham Thi D", Phone: "0934567890", Address: "Q7"})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.Address != "Q7" {
		t.Fatalf("address = %q, want Q7", updated.Address)
	}

	if err := ledger.DeleteCustomer(ctx, customer.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if err := ledger.DeleteCustomer(ctx, customer.ID); !errors.Is(err, models.ErrorCustomerNotFound) {
		t.Fatalf("second delete err = %v, want ErrorCustomerNotFound", err)
	}
}

// Orders are matched back to a customer by exact name or phone, because an
// order only embeds snapshots and carries no customer id.
func TestGetCustomerOrdersMatchesByNameOrPhone(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Banh trang", 3000, 100)

	customer, err := ledger.CreateCustomer(ctx, &models.NewCustomer{Name: "Nguyen Van A", Phone: "0999999999"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	// Matches by name (different phone).
	if _, err := ledger.CreateOrder(ctx, &models.NewOrder{
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0000000000",
		Items:         []models.NewOrderItem{{ProductId: product.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// Matches by phone (different name).
	if _, err := ledger.CreateOrder(ctx, &models.NewOrder{
		CustomerName:  "Chong chi A",
		CustomerPhone: "0999999999",
		Items:         []models.NewOrderItem{{ProductId: product.ID, Quantity: 2}},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// Matches neither.
	if _, err := ledger.CreateOrder(ctx, &models.NewOrder{
		CustomerName:  "Khach la",
		CustomerPhone: "0111111111",
		Items:         []models.NewOrderItem{{ProductId: product.ID, Quantity: 3}},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	orders, err := ledger.GetCustomerOrders(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetCustomerOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("matched orders = %d, want 2", len(orders))
	}
}
