package models

// OrderStatus is the order lifecycle state. PENDING may move to SHIPPING,
// COMPLETED or CANCELLED; SHIPPING may move to COMPLETED or CANCELLED;
// COMPLETED and CANCELLED are terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type PaymentKind string

const (
	PaymentKindReceivable PaymentKind = "receivable"
	PaymentKindPayable    PaymentKind = "payable"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCod    PaymentMethod = "cod"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodOther  PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCod, PaymentMethodBank, PaymentMethodWallet, PaymentMethodOther:
		return true
	}
	return false
}

// ReceivableState is the display tri-state of an order's collection status.
type ReceivableState string

const (
	ReceivableStateUnpaid  ReceivableState = "unpaid"
	ReceivableStatePartial ReceivableState = "partial"
	ReceivableStatePaid    ReceivableState = "paid"
)

func ReceivableStateFor(paid, total int64) ReceivableState {
	switch {
	case paid <= 0:
		return ReceivableStateUnpaid
	case paid < total:
		return ReceivableStatePartial
	default:
		return ReceivableStatePaid
	}
}
