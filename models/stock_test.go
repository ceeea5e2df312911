package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quanlykho/kho_backend/models"
)

func TestImportStockIncrementsAndRecords(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Dau phong", 35000, 5)

	record, err := ledger.ImportStock(ctx, &models.NewStockImport{
		ProductId:    product.ID,
		Quantity:     20,
		UnitCost:     ptr(int64(28000)),
		SupplierName: "Nha cung cap X",
		Note:         "dot hang thang 8",
	})
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}

	if record.TotalCost == nil || *record.TotalCost != 560000 {
		t.Fatalf("totalCost = %v, want 560000", record.TotalCost)
	}
	if record.Name != "Dau phong" || record.Sku != product.Sku {
		t.Fatalf("snapshot = %+v, want name/sku copied from product", record)
	}

	got, err := ledger.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 25 {
		t.Fatalf("stock = %d, want 25", got.Stock)
	}
}

func TestImportStockValidation(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.ImportStock(ctx, &models.NewStockImport{ProductId: "missing", Quantity: 5})
	if !errors.Is(err, models.ErrorProductNotFound) {
		t.Fatalf("missing product err = %v, want ErrorProductNotFound", err)
	}

	product := createProduct(t, ledger, "Tieu", 80000, 1)
	_, err = ledger.ImportStock(ctx, &models.NewStockImport{ProductId: product.ID, Quantity: 0})
	if !errors.Is(err, models.ErrorInvalidQuantity) {
		t.Fatalf("zero quantity err = %v, want ErrorInvalidQuantity", err)
	}
}

// PaidNow settles the import's payable in the same write, so the supplier
// never shows up in the debts screen.
func TestImportStockPaidNowSettlesPayable(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Ot bot", 60000, 0)

	record, err := ledger.ImportStock(ctx, &models.NewStockImport{
		ProductId:    product.ID,
		Quantity:     10,
		UnitCost:     ptr(int64(45000)),
		SupplierName: "Cho Lon",
		PaidNow:      true,
		Method:       models.PaymentMethodBank,
	})
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}

	payments, err := ledger.GetPayments(ctx)
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(payments))
	}
	p := payments[0]
	if p.Kind != models.PaymentKindPayable || p.ImportId != record.ID || p.Amount != 450000 {
		t.Fatalf("payment = %+v, want payable of 450000 against %s", p, record.ID)
	}
	if p.Method != models.PaymentMethodBank {
		t.Fatalf("method = %s, want bank", p.Method)
	}

	balances, err := ledger.GetPayables(ctx)
	if err != nil {
		t.Fatalf("GetPayables: %v", err)
	}
	if len(balances) != 1 || balances[0].Outstanding != 0 {
		t.Fatalf("balances = %+v, want one fully settled row", balances)
	}
}

// PaidNow without a unit cost has nothing to settle and must not invent a
// zero-amount payment.
func TestImportStockPaidNowWithoutCostIsIgnored(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "La chanh", 2000, 0)

	if _, err := ledger.ImportStock(ctx, &models.NewStockImport{
		ProductId: product.ID,
		Quantity:  5,
		PaidNow:   true,
	}); err != nil {
		t.Fatalf("ImportStock: %v", err)
	}

	payments, _ := ledger.GetPayments(ctx)
	if len(payments) != 0 {
		t.Fatalf("payments = %d, want 0", len(payments))
	}
}
