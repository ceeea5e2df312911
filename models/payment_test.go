package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quanlykho/kho_backend/models"
)

func TestAddOrderPaymentRequiresCompletedOrder(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Sua", 20000, 10)
	order := createOrder(t, ledger, product.ID, 5)

	_, err := ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 50000, Method: models.PaymentMethodCash})
	if !errors.Is(err, models.ErrorOrderNotCompleted) {
		t.Fatalf("payment on pending order err = %v, want ErrorOrderNotCompleted", err)
	}

	_, err = ledger.AddOrderPayment(ctx, "DH000000", &models.NewPayment{Amount: 50000, Method: models.PaymentMethodCash})
	if !errors.Is(err, models.ErrorOrderNotFound) {
		t.Fatalf("payment on missing order err = %v, want ErrorOrderNotFound", err)
	}

	_, err = ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 0, Method: models.PaymentMethodCash})
	if !errors.Is(err, models.ErrorInvalidAmount) {
		t.Fatalf("zero amount err = %v, want ErrorInvalidAmount", err)
	}
}

// Regression: a 100000 order paid 60000 then 50000 must reject the second
// payment outright instead of clamping it to the remaining 40000.
func TestAddOrderPaymentCapsAtTotal(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Gao nep", 25000, 10)
	order := createOrder(t, ledger, product.ID, 4)
	if _, err := ledger.SetOrderStatus(ctx, order.ID, models.OrderStatusCompleted, ""); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}

	if _, err := ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 60000, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err := ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 50000, Method: models.PaymentMethodBank})
	if !errors.Is(err, models.ErrorOverpayment) {
		t.Fatalf("overpayment err = %v, want ErrorOverpayment", err)
	}

	// The rejected payment left nothing behind.
	got, err := ledger.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.PaidAmount != 60000 {
		t.Fatalf("paidAmount = %d, want 60000", got.PaidAmount)
	}
	payments, _ := ledger.GetPayments(ctx)
	if len(payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(payments))
	}

	// Settling the exact remainder is fine.
	if _, err := ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 40000, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	got, _ = ledger.GetOrder(ctx, order.ID)
	if got.PaidAmount != 100000 {
		t.Fatalf("paidAmount = %d, want 100000", got.PaidAmount)
	}
}

func TestReceivablesComputedFromPaymentLedger(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Mi tom", 5000, 100)
	order := createOrder(t, ledger, product.ID, 20)
	if _, err := ledger.SetOrderStatus(ctx, order.ID, models.OrderStatusCompleted, ""); err != nil {
		t.Fatalf("SetOrderStatus: %v", err)
	}
	if _, err := ledger.AddOrderPayment(ctx, order.ID, &models.NewPayment{Amount: 30000, Method: models.PaymentMethodCod}); err != nil {
		t.Fatalf("AddOrderPayment: %v", err)
	}

	balances, err := ledger.GetReceivables(ctx)
	if err != nil {
		t.Fatalf("GetReceivables: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("balances = %d, want 1", len(balances))
	}
	b := balances[0]
	if b.TotalAmount != 100000 || b.PaidAmount != 30000 || b.Outstanding != 70000 {
		t.Fatalf("balance = %+v, want total=100000 paid=30000 outstanding=70000", b)
	}
	if b.State != models.ReceivableStatePartial {
		t.Fatalf("state = %s, want partial", b.State)
	}
}

func TestPayablePaymentsAndBalances(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Bot mi", 18000, 0)

	record, err := ledger.ImportStock(ctx, &models.NewStockImport{
		ProductId:    product.ID,
		Quantity:     50,
		UnitCost:     ptr(int64(12000)),
		SupplierName: "Cty Tan Phat",
	})
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}

	if _, err := ledger.AddPayablePayment(ctx, record.ID, &models.NewPayment{Amount: 200000, Method: models.PaymentMethodBank}); err != nil {
		t.Fatalf("AddPayablePayment: %v", err)
	}

	balances, err := ledger.GetPayables(ctx)
	if err != nil {
		t.Fatalf("GetPayables: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("balances = %d, want 1", len(balances))
	}
	b := balances[0]
	if b.TotalCost != 600000 || b.PaidAmount != 200000 || b.Outstanding != 400000 {
		t.Fatalf("balance = %+v, want cost=600000 paid=200000 outstanding=400000", b)
	}

	// Payables carry no cap: an amount above the remaining balance is
	// accepted and the outstanding floors at zero.
	if _, err := ledger.AddPayablePayment(ctx, record.ID, &models.NewPayment{Amount: 500000, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("over-balance payable payment: %v", err)
	}
	balances, _ = ledger.GetPayables(ctx)
	if balances[0].Outstanding != 0 {
		t.Fatalf("outstanding = %d, want 0", balances[0].Outstanding)
	}
}

func TestPayablePaymentRejectsImportsWithoutCost(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, ledger, "Hanh kho", 9000, 0)

	record, err := ledger.ImportStock(ctx, &models.NewStockImport{ProductId: product.ID, Quantity: 10})
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}

	_, err = ledger.AddPayablePayment(ctx, record.ID, &models.NewPayment{Amount: 10000, Method: models.PaymentMethodCash})
	if !errors.Is(err, models.ErrorImportHasNoCost) {
		t.Fatalf("err = %v, want ErrorImportHasNoCost", err)
	}

	// Cost-less imports never show up as payables either.
	balances, err := ledger.GetPayables(ctx)
	if err != nil {
		t.Fatalf("GetPayables: %v", err)
	}
	if len(balances) != 0 {
		t.Fatalf("balances = %d, want 0", len(balances))
	}
}

func ptr[T any](v T) *T { return &v }
