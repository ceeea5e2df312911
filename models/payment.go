package models

import (
	"context"
	"sort"
	"time"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// PaymentRecord is append-only. Receivable payments reference an order,
// payable payments an import; each carries a name snapshot so the ledger
// stays readable after the customer or supplier record is edited.
type PaymentRecord struct {
	ID           string        `json:"id"`
	Kind         PaymentKind   `json:"kind"`
	OrderId      string        `json:"orderId,omitempty"`
	ImportId     string        `json:"importId,omitempty"`
	Amount       int64         `json:"amount"`
	Method       PaymentMethod `json:"method"`
	Note         string        `json:"note,omitempty"`
	CustomerName string        `json:"customerName,omitempty"`
	SupplierName string        `json:"supplierName,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type NewPayment struct {
	Amount int64         `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required"`
	Note   string        `json:"note"`
}

// AddOrderPayment records a receivable payment. Payments are only accepted
// against COMPLETED orders, and the running paidAmount may never exceed
// totalAmount.
func (l *Ledger) AddOrderPayment(ctx context.Context, orderId string, input *NewPayment) (*PaymentRecord, error) {
	if input.Amount <= 0 {
		return nil, ErrorInvalidAmount
	}
	if !input.Method.IsValid() {
		return nil, ErrorInvalidMethod
	}
	order, exists, err := fetchOne[Order](ctx, l, store.CollectionOrders, orderId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorOrderNotFound
	}
	if order.Status != OrderStatusCompleted {
		return nil, ErrorOrderNotCompleted
	}
	if order.PaidAmount+input.Amount > order.TotalAmount {
		return nil, ErrorOverpayment
	}

	order.PaidAmount += input.Amount
	payment := PaymentRecord{
		ID:           utils.NewRecordId(),
		Kind:         PaymentKindReceivable,
		OrderId:      order.ID,
		Amount:       input.Amount,
		Method:       input.Method,
		Note:         input.Note,
		CustomerName: order.CustomerName,
		CreatedAt:    time.Now().UTC(),
	}
	changes := map[string]interface{}{
		store.RecordPath(store.CollectionOrders, order.ID):     order,
		store.RecordPath(store.CollectionPayments, payment.ID): payment,
	}
	if err := l.store.Update(ctx, changes); err != nil {
		return nil, err
	}
	return &payment, nil
}

// AddPayablePayment records a payment to a supplier against an import.
// Imports without a recorded cost carry no payable balance at all.
//
// Unlike receivables there is no overpayment cap here. Supplier prepayments
// are recorded through the same path, so the asymmetry is kept on purpose.
func (l *Ledger) AddPayablePayment(ctx context.Context, importId string, input *NewPayment) (*PaymentRecord, error) {
	if input.Amount <= 0 {
		return nil, ErrorInvalidAmount
	}
	if !input.Method.IsValid() {
		return nil, ErrorInvalidMethod
	}
	record, exists, err := fetchOne[ImportRecord](ctx, l, store.CollectionImports, importId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorImportNotFound
	}
	if record.TotalCost == nil {
		return nil, ErrorImportHasNoCost
	}

	payment := PaymentRecord{
		ID:           utils.NewRecordId(),
		Kind:         PaymentKindPayable,
		ImportId:     record.ID,
		Amount:       input.Amount,
		Method:       input.Method,
		Note:         input.Note,
		SupplierName: record.SupplierName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionPayments, payment.ID), payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (l *Ledger) GetPayments(ctx context.Context) ([]PaymentRecord, error) {
	payments, err := fetchAll[PaymentRecord](ctx, l, store.CollectionPayments)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

// ReceivableBalance is one row of the customer-debt screen.
type ReceivableBalance struct {
	OrderId      string          `json:"orderId"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	OrderStatus  OrderStatus     `json:"orderStatus"`
	TotalAmount  int64           `json:"totalAmount"`
	PaidAmount   int64           `json:"paidAmount"`
	Outstanding  int64           `json:"outstanding"`
	State        ReceivableState `json:"state"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
}

// GetReceivables recomputes outstanding balances from the payment ledger,
// not from the cached paidAmount, so the two can be cross-checked.
func (l *Ledger) GetReceivables(ctx context.Context) ([]ReceivableBalance, error) {
	orders, err := l.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := fetchAll[PaymentRecord](ctx, l, store.CollectionPayments)
	if err != nil {
		return nil, err
	}
	paidByOrder := make(map[string]int64)
	for _, payment := range payments {
		if payment.Kind == PaymentKindReceivable && payment.OrderId != "" {
			paidByOrder[payment.OrderId] += payment.Amount
		}
	}

	balances := make([]ReceivableBalance, 0, len(orders))
	for _, order := range orders {
		if order.Status == OrderStatusCancelled {
			continue
		}
		paid := paidByOrder[order.ID]
		outstanding := order.TotalAmount - paid
		if outstanding < 0 {
			outstanding = 0
		}
		balances = append(balances, ReceivableBalance{
			OrderId:      order.ID,
			CustomerName: order.CustomerName,
			Phone:        order.CustomerPhone,
			OrderStatus:  order.Status,
			TotalAmount:  order.TotalAmount,
			PaidAmount:   paid,
			Outstanding:  outstanding,
			State:        ReceivableStateFor(paid, order.TotalAmount),
			DueDate:      order.DueDate,
		})
	}
	return balances, nil
}

// PayableBalance is one row of the supplier-debt screen. Imports without a
// recorded cost are excluded entirely, not shown as zero-cost.
type PayableBalance struct {
	ImportId     string    `json:"importId"`
	SupplierName string    `json:"supplierName"`
	ProductName  string    `json:"productName"`
	TotalCost    int64     `json:"totalCost"`
	PaidAmount   int64     `json:"paidAmount"`
	Outstanding  int64     `json:"outstanding"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l *Ledger) GetPayables(ctx context.Context) ([]PayableBalance, error) {
	imports, err := l.GetImports(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := fetchAll[PaymentRecord](ctx, l, store.CollectionPayments)
	if err != nil {
		return nil, err
	}
	paidByImport := make(map[string]int64)
	for _, payment := range payments {
		if payment.Kind == PaymentKindPayable && payment.ImportId != "" {
			paidByImport[payment.ImportId] += payment.Amount
		}
	}

	balances := make([]PayableBalance, 0, len(imports))
	for _, record := range imports {
		if record.TotalCost == nil {
			continue
		}
		paid := paidByImport[record.ID]
		outstanding := *record.TotalCost - paid
		if outstanding < 0 {
			outstanding = 0
		}
		balances = append(balances, PayableBalance{
			ImportId:     record.ID,
			SupplierName: record.SupplierName,
			ProductName:  record.Name,
			TotalCost:    *record.TotalCost,
			PaidAmount:   paid,
			Outstanding:  outstanding,
			CreatedAt:    record.CreatedAt,
		})
	}
	return balances, nil
}
