package models_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/quanlykho/kho_backend/models"
	"github.com/quanlykho/kho_backend/store"
)

func newTestLedger(t *testing.T) *models.Ledger {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return models.NewLedger(store.NewMemoryStore(), logger)
}

func createProduct(t *testing.T, ledger *models.Ledger, name string, price int64, stock int) *models.Product {
	t.Helper()
	product, err := ledger.CreateProduct(context.Background(), &models.NewProduct{
		Name:  name,
		Sku:   "SKU-" + name,
		Price: price,
		Stock: stock,
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", name, err)
	}
	return product
}

func createOrder(t *testing.T, ledger *models.Ledger, productId string, quantity int) *models.Order {
	t.Helper()
	order, err := ledger.CreateOrder(context.Background(), &models.NewOrder{
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0901234567",
		Items: []models.NewOrderItem{
			{ProductId: productId, Quantity: quantity},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return order
}
