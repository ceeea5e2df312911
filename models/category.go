package models

import (
	"context"
	"errors"
	"sort"

	"github.com/quanlykho/kho_backend/store"
	"github.com/quanlykho/kho_backend/utils"
)

// Category is a labeling convenience. Products reference it by name, not by
// id, so deleting a category leaves a dangling label on purpose.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (l *Ledger) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, errors.New("category name is required")
	}
	category := Category{ID: utils.NewCategoryId(), Name: name}
	if err := l.store.Set(ctx, store.RecordPath(store.CollectionCategories, category.ID), category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	_, exists, err := fetchOne[Category](ctx, l, store.CollectionCategories, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrorCategoryNotFound
	}
	return l.store.Set(ctx, store.RecordPath(store.CollectionCategories, id), nil)
}

func (l *Ledger) GetCategories(ctx context.Context) ([]Category, error) {
	categories, err := fetchAll[Category](ctx, l, store.CollectionCategories)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}
