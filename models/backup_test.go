package models_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/quanlykho/kho_backend/models"
)

func TestBackupRoundTrip(t *testing.T) {
	source := newTestLedger(t)
	ctx := context.Background()
	product := createProduct(t, source, "Gao lut", 30000, 12)
	order := createOrder(t, source, product.ID, 2)
	if _, err := source.CreateCustomer(ctx, &models.NewCustomer{Name: "Le Van C", Phone: "0987654321"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	data, err := source.ExportData(ctx)
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal backup: %v", err)
	}

	target := newTestLedger(t)
	if err := target.ImportData(ctx, body); err != nil {
		t.Fatalf("ImportData: %v", err)
	}

	products, err := target.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != product.ID || products[0].Stock != 12 {
		t.Fatalf("restored products = %+v", products)
	}
	restored, err := target.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder after restore: %v", err)
	}
	if restored.TotalAmount != order.TotalAmount || restored.Status != order.Status {
		t.Fatalf("restored order = %+v, want %+v", restored, order)
	}
	customers, _ := target.GetCustomers(ctx)
	if len(customers) != 1 {
		t.Fatalf("restored customers = %d, want 1", len(customers))
	}
}

func TestImportDataRejectsMalformedDocument(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	createProduct(t, ledger, "Existing", 1000, 1)

	if err := ledger.ImportData(ctx, []byte("not json at all")); err == nil {
		t.Fatal("ImportData accepted malformed JSON")
	}

	// The failed restore touched nothing.
	products, err := ledger.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
}

// Only collections present in the document are replaced; the rest survive.
func TestImportDataIsPartialByKey(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	createProduct(t, ledger, "Keeps", 1000, 1)
	if _, err := ledger.CreateCustomer(ctx, &models.NewCustomer{Name: "Replaced", Phone: "01"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	doc := []byte(`{"customers":[{"id":"c-1","name":"From Backup","phone":"02"}]}`)
	if err := ledger.ImportData(ctx, doc); err != nil {
		t.Fatalf("ImportData: %v", err)
	}

	products, _ := ledger.GetProducts(ctx)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1 (untouched)", len(products))
	}
	customers, _ := ledger.GetCustomers(ctx)
	if len(customers) != 1 || customers[0].Name != "From Backup" {
		t.Fatalf("customers = %+v, want the backup copy only", customers)
	}
}
