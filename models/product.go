package models

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// Product is the single source of truth for on-hand stock. Stock is only
// mutated by ImportStock and by the COMPLETED order transition; the plain
// update operation never touches it.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Sku        string    `json:"sku"`
	Price      int64     `json:"price"`
	Stock      int       `json:"stock"`
	Category   string    `json:"category"`
	ImportDate time.Time `json:"importDate"`
	Image      string    `json:"image,omitempty"`
}

type NewProduct struct {
	Name     string `json:"name" binding:"required"`
	Sku      string `json:"sku"`
	Price    int64  `json:"price" binding:"gte=0"`
	Stock    int    `json:"stock" binding:"gte=0"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

func (input *NewProduct) validate() error {
	if input.Name == "" {
		return errors.New("product name is required")
	}
	if input.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if input.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

func (l *Ledger) CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := Product{
		ID:         utils.NewRecordId(),
		Name:       input.Name,
		Sku:        input.Sku,
		Price:      input.Price,
		Stock:      input.Stock,
		Category:   input.Category,
		ImportDate: time.Now().UTC(),
		Image:      utils.NormalizeProductImage(input.Image),
	}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionProducts, product.ID), product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProductsBulk persists a spreadsheet-import batch in one multi-path
// write. All rows are validated before anything is written.
func (l *Ledger) CreateProductsBulk(ctx context.Context, inputs []*NewProduct) (int, error) {
	if len(inputs) == 0 {
		return 0, errors.New("no products to import")
	}
	for _, input := range inputs {
		if err := input.validate(); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	changes := make(map[string]interface{}, len(inputs))
	for _, input := range inputs {
		product := Product{
			ID:         utils.NewRecordId(),
			Name:       input.Name,
			Sku:        input.Sku,
			Price:      input.Price,
			Stock:      input.Stock,
			Category:   input.Category,
			ImportDate: now,
			Image:      utils.NormalizeProductImage(input.Image),
		}
		changes[store.RecordPath(store.CollectionProducts, product.ID)] = product
	}
	if err := l.store.Update(ctx, changes); err != nil {
		return 0, err
	}
	return len(changes), nil
}

// UpdateProduct edits the descriptive fields. Stock is deliberately carried
// over from the stored record: only imports and order fulfillment may move it.
func (l *Ledger) UpdateProduct(ctx context.Context, id string, input *NewProduct) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	product, exists, err := fetchOne[Product](ctx, l, store.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorProductNotFound
	}

	product.Name = input.Name
	product.Sku = input.Sku
	product.Price = input.Price
	product.Category = input.Category
	if input.Image != "" && input.Image != product.Image {
		product.Image = utils.NormalizeProductImage(input.Image)
	}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionProducts, id), product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product only. Historical orders, imports and
// exports keep their own name/sku snapshots and are not cascaded.
func (l *Ledger) DeleteProduct(ctx context.Context, id string) error {
	_, exists, err := fetchOne[Product](ctx, l, store.CollectionProducts, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrorProductNotFound
	}
	return l.store.Set(ctx, store.RecordPath(store.CollectionProducts, id), nil)
}

func (l *Ledger) GetProduct(ctx context.Context, id string) (*Product, error) {
	product, exists, err := fetchOne[Product](ctx, l, store.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrorProductNotFound
	}
	return product, nil
}

func (l *Ledger) GetProducts(ctx context.Context) ([]Product, error) {
	products, err := fetchAll[Product](ctx, l, store.CollectionProducts)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ImportDate.After(products[j].ImportDate)
	})
	return products, nil
}
