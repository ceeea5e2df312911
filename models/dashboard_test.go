package models_test

import (
	"context"
	"testing"

	"github.com/quanlykho/kho_backend/models"
)

func TestDashboardStats(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	low := createProduct(t, ledger, "Sap den", 7000, 3)
	createProduct(t, ledger, "Day thung", 15000, 40)

	createOrder(t, ledger, low.ID, 1)
	cancelled := createOrder(t, ledger, low.ID, 2)
	if _, err := ledger.SetOrderStatus(ctx, cancelled.ID, models.OrderStatusCancelled, ""); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}

	stats, err := ledger.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("totalOrders = %d, want 2", stats.TotalOrders)
	}
	// Cancelled orders are excluded from revenue, open ones count in full.
	if stats.TotalRevenue != 7000 {
		t.Fatalf("totalRevenue = %d, want 7000", stats.TotalRevenue)
	}
	if stats.TotalProducts != 2 {
		t.Fatalf("totalProducts = %d, want 2", stats.TotalProducts)
	}
	if stats.LowStockCount != 1 {
		t.Fatalf("lowStockCount = %d, want 1", stats.LowStockCount)
	}
}
