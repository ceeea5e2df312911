package models

import (
	"context"
	"sort"
	"time"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// Customer records are independent of orders: an order embeds its own copy
// of the customer's name/phone/address, and history is matched back by
// name-or-phone equality at query time. There is no foreign key.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewCustomer struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

func (l *Ledger) CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	customer := Customer{
		ID:        utils.NewRecordId(),
		Name:      input.Name,
		Phone:     input.Phone,
		Address:   input.Address,
		Note:      input.Note,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionCustomers, customer.ID), customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (l *Ledger) UpdateCustomer(ctx context.Context, id string, input *NewCustomer) (*Customer, error) {
	customer, exists, err := fetchOne[Customer](ctx, l, store.CollectionCustomers, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorCustomerNotFound
	}
	customer.Name = input.Name
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Note = input.Note
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionCustomers, id), customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (l *Ledger) DeleteCustomer(ctx context.Context, id string) error {
	_, exists, err := fetchOne[Customer](ctx, l, store.CollectionCustomers, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrorCustomerNotFound
	}
	return l.store.Set(ctx, store.RecordPath(store.CollectionCustomers, id), nil)
}

func (l *Ledger) GetCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := fetchAll[Customer](ctx, l, store.CollectionCustomers)
	if err != nil {
		return nil, err
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return customers, nil
}

// GetCustomerOrders returns the order history matched by exact name or
// phone. The soft natural key means two customers sharing a phone see each
// other's orders; that is the accepted trade-off of the no-FK design.
func (l *Ledger) GetCustomerOrders(ctx context.Context, id string) ([]Order, error) {
	customer, exists, err := fetchOne[Customer](ctx, l, store.CollectionCustomers, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorCustomerNotFound
	}
	orders, err := l.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Order, 0)
	for _, order := range orders {
		if order.CustomerName == customer.Name || (customer.Phone != "" && order.CustomerPhone == customer.Phone) {
			matched = append(matched, order)
		}
	}
	return matched, nil
}
