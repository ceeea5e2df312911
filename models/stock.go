package models

import (
	"context"
	"sort"
	"time"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// ImportRecord is a stock-in ledger entry. Append-only: never mutated after
// creation. Name and sku are snapshots taken from the product at import time.
type ImportRecord struct {
	ID           string    `json:"id"`
	ProductId    string    `json:"productId"`
	Sku          string    `json:"sku"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	UnitCost     *int64    `json:"unitCost,omitempty"`
	TotalCost    *int64    `json:"totalCost,omitempty"`
	SupplierName string    `json:"supplierName,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExportRecord is a stock-out ledger entry, created exactly once per order
// line when the order reaches COMPLETED. Append-only.
type ExportRecord struct {
	ID            string    `json:"id"`
	ProductId     string    `json:"productId"`
	Sku           string    `json:"sku"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	OrderId       string    `json:"orderId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NewStockImport struct {
	ProductId    string        `json:"productId" binding:"required"`
	Quantity     int           `json:"quantity" binding:"required,gt=0"`
	UnitCost     *int64        `json:"unitCost"`
	SupplierName string        `json:"supplierName"`
	Note         string        `json:"note"`
	PaidNow      bool          `json:"paidNow"`
	Method       PaymentMethod `json:"method"`
}

// ImportStock increments stock immediately (unlike order fulfillment, which
// waits for COMPLETED) and appends one ImportRecord. With PaidNow and a unit
// cost it also appends a payable PaymentRecord that settles the import's
// whole balance at creation, bypassing the normal payable flow.
func (l *Ledger) ImportStock(ctx context.Context, input *NewStockImport) (*ImportRecord, error) {
	if input.Quantity <= 0 {
		return nil, ErrorInvalidQuantity
	}
	product, exists, err := fetchOne[Product](ctx, l, store.CollectionProducts, input.ProductId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorProductNotFound
	}

	now := time.Now().UTC()
	record := ImportRecord{
		ID:           utils.NewRecordId(),
		ProductId:    product.ID,
		Sku:          product.Sku,
		Name:         product.Name,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		SupplierName: input.SupplierName,
		Note:         input.Note,
		CreatedAt:    now,
	}
	if input.UnitCost != nil {
		record.TotalCost = utils.Ptr(*input.UnitCost * int64(input.Quantity))
	}

	product.Stock += input.Quantity
	changes := map[string]interface{}{
		store.RecordPath(store.CollectionProducts, product.ID): product,
		store.RecordPath(store.CollectionImports, record.ID):   record,
	}

	if input.PaidNow && record.TotalCost != nil {
		method := input.Method
		if !method.IsValid() {
			method = PaymentMethodCash
		}
		payment := PaymentRecord{
			ID:           utils.NewRecordId(),
			Kind:         PaymentKindPayable,
			ImportId:     record.ID,
			Amount:       *record.TotalCost,
			Method:       method,
			SupplierName: record.SupplierName,
			CreatedAt:    now,
		}
		changes[store.RecordPath(store.CollectionPayments, payment.ID)] = payment
	}

	if err := l.store.Update(ctx, changes); err != nil {
		return nil, err
	}
	return &record, nil
}

// ReservedQuantities sums line quantities across all open (PENDING or
// SHIPPING) orders per product. Derived on every read, never stored: the
// set of open orders changes under the operator's feet.
func (l *Ledger) ReservedQuantities(ctx context.Context) (map[string]int, error) {
	orders, err := fetchAll[Order](ctx, l, store.CollectionOrders)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]int)
	for _, order := range orders {
		if order.Status.IsTerminal() {
			continue
		}
		for _, item := range order.Items {
			reserved[item.ProductId] += item.Quantity
		}
	}
	return reserved, nil
}

func (l *Ledger) GetImports(ctx context.Context) ([]ImportRecord, error) {
	records, err := fetchAll[ImportRecord](ctx, l, store.CollectionImports)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (l *Ledger) GetExports(ctx context.Context) ([]ExportRecord, error) {
	records, err := fetchAll[ExportRecord](ctx, l, store.CollectionExports)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
