package models

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// CartItem is a line snapshot: name and price are copied from the product
// at order-creation time and never track later product edits.
type CartItem struct {
	ProductId string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	Address       string      `json:"address"`
	Items         []CartItem  `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        OrderStatus `json:"status"`
	PaidAmount    int64       `json:"paidAmount,omitempty"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	Note          string      `json:"note,omitempty"`
	CancelReason  string      `json:"cancelReason,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type NewOrderItem struct {
	ProductId string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type NewOrder struct {
	CustomerName  string         `json:"customerName" binding:"required"`
	CustomerPhone string         `json:"customerPhone" binding:"required"`
	Address       string         `json:"address"`
	Items         []NewOrderItem `json:"items" binding:"required"`
	Note          string         `json:"note"`
	DueDate       *time.Time     `json:"dueDate"`
}

// CreateOrder validates every line against current stock before writing
// anything, snapshots name/price per line and computes the total once.
// Stock is NOT decremented here: the quantities stay "reserved" (derived
// from open orders) until the COMPLETED transition commits them. The
// pre-check is not a transactional guarantee; two racing creates can both
// pass it, which the UI surfaces as the about-to-ship indicator.
func (l *Ledger) CreateOrder(ctx context.Context, input *NewOrder) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrorEmptyCart
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrorInvalidQuantity
		}
	}

	products, err := fetchAll[Product](ctx, l, store.CollectionProducts)
	if err != nil {
		return nil, err
	}
	byId := make(map[string]Product, len(products))
	for _, product := range products {
		byId[product.ID] = product
	}

	items := make([]CartItem, 0, len(input.Items))
	var total int64
	for _, line := range input.Items {
		product, exists := byId[line.ProductId]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrorProductNotFound, line.ProductId)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrorInsufficientStock, product.Name)
		}
		items = append(items, CartItem{
			ProductId: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * int64(line.Quantity)
	}

	now := time.Now().UTC()
	order := Order{
		ID:            utils.NewOrderId(now),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		Items:         items,
		TotalAmount:   total,
		Status:        OrderStatusPending,
		Note:          input.Note,
		DueDate:       input.DueDate,
		CreatedAt:     now,
	}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionOrders, order.ID), order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderStatus moves an order through its lifecycle. An order already in
// a terminal state is never touched again: the COMPLETED side effects
// (stock decrement + export records) therefore run exactly once even under
// retried or duplicate calls. Callers treat ErrorTerminalStatus as a no-op.
func (l *Ledger) SetOrderStatus(ctx context.Context, orderId string, status OrderStatus, cancelReason string) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrorInvalidStatus
	}
	order, exists, err := fetchOne[Order](ctx, l, store.CollectionOrders, orderId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorOrderNotFound
	}
	if order.Status.IsTerminal() {
		return order, ErrorTerminalStatus
	}

	order.Status = status
	if status == OrderStatusCancelled && cancelReason != "" {
		order.CancelReason = cancelReason
	}

	changes := map[string]interface{}{
		store.RecordPath(store.CollectionOrders, order.ID): order,
	}

	if status == OrderStatusCompleted {
		// The only point where physical stock is consumed.
		products, err := fetchAll[Product](ctx, l, store.CollectionProducts)
		if err != nil {
			return nil, err
		}
		byId := make(map[string]Product, len(products))
		for _, product := range products {
			byId[product.ID] = product
		}
		now := time.Now().UTC()
		for _, item := range order.Items {
			sku := ""
			if product, stillExists := byId[item.ProductId]; stillExists {
				product.Stock -= item.Quantity
				if product.Stock < 0 {
					// Concurrent orders may already have consumed it.
					product.Stock = 0
				}
				sku = product.Sku
				byId[item.ProductId] = product
				changes[store.RecordPath(store.CollectionProducts, product.ID)] = product
			}
			export := ExportRecord{
				ID:            utils.NewRecordId(),
				ProductId:     item.ProductId,
				Sku:           sku,
				Name:          item.Name,
				Quantity:      item.Quantity,
				OrderId:       order.ID,
				CustomerName:  order.CustomerName,
				CustomerPhone: order.CustomerPhone,
				CreatedAt:     now,
			}
			changes[store.RecordPath(store.CollectionExports, export.ID)] = export
		}
	}

	if err := l.store.Update(ctx, changes); err != nil {
		return nil, err
	}
	return order, nil
}

func (l *Ledger) SetOrderNote(ctx context.Context, orderId string, note string) (*Order, error) {
	order, exists, err := fetchOne[Order](ctx, l, store.CollectionOrders, orderId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorOrderNotFound
	}
	order.Note = note
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionOrders, order.ID), order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order record. Stock is restored only for orders
// that actually reached COMPLETED: an open or cancelled order never
// consumed stock, so reversing it would inflate inventory. Export records
// are an append-only ledger and stay.
func (l *Ledger) DeleteOrder(ctx context.Context, orderId string) error {
	order, exists, err := fetchOne[Order](ctx, l, store.CollectionOrders, orderId)
	if err != nil {
		return err
	}
	if !exists {
		return ErrorOrderNotFound
	}

	changes := map[string]interface{}{
		store.RecordPath(store.CollectionOrders, order.ID): nil,
	}
	if order.Status == OrderStatusCompleted {
		products, err := fetchAll[Product](ctx, l, store.CollectionProducts)
		if err != nil {
			return err
		}
		byId := make(map[string]Product, len(products))
		for _, product := range products {
			byId[product.ID] = product
		}
		for _, item := range order.Items {
			if product, stillExists := byId[item.ProductId]; stillExists {
				product.Stock += item.Quantity
				byId[item.ProductId] = product
				changes[store.RecordPath(store.CollectionProducts, product.ID)] = product
			}
		}
	}
	return l.store.Update(ctx, changes)
}

func (l *Ledger) GetOrder(ctx context.Context, orderId string) (*Order, error) {
	order, exists, err := fetchOne[Order](ctx, l, store.CollectionOrders, orderId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorOrderNotFound
	}
	return order, nil
}

func (l *Ledger) GetOrders(ctx context.Context) ([]Order, error) {
	orders, err := fetchAll[Order](ctx, l, store.CollectionOrders)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
