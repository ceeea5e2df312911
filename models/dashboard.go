package models

import (
	"context"

	"github.com/quanlykho/kho_backend/store"
)

// lowStockThreshold matches the warning badge on the inventory screen.
const lowStockThreshold = 10

type DashboardStats struct {
	TotalRevenue  int64 `json:"totalRevenue"`
	TotalOrders   int   `json:"totalOrders"`
	TotalProducts int   `json:"totalProducts"`
	LowStockCount int   `json:"lowStockCount"`
}

// GetDashboardStats aggregates the headline numbers. Revenue counts every
// non-cancelled order at its full total, regardless of how much has been
// collected; receivables track collection separately.
func (l *Ledger) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	orders, err := fetchAll[Order](ctx, l, store.CollectionOrders)
	if err != nil {
		return nil, err
	}
	products, err := fetchAll[Product](ctx, l, store.CollectionProducts)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{TotalOrders: len(orders), TotalProducts: len(products)}
	for _, order := range orders {
		if order.Status != OrderStatusCancelled {
			stats.TotalRevenue += order.TotalAmount
		}
	}
	for _, product := range products {
		if product.Stock < lowStockThreshold {
			stats.LowStockCount++
		}
	}
	return &stats, nil
}
