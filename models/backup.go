package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/quanlykho/kho_backend/store"
)

// BackupData is the portable snapshot format: one array per collection,
// the same shape the collections have on the wire.
type BackupData struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Products   []Product       `json:"products,omitempty"`
	Categories []Category      `json:"categories,omitempty"`
	Customers  []Customer      `json:"customers,omitempty"`
	Orders     []Order         `json:"orders,omitempty"`
	Imports    []ImportRecord  `json:"imports,omitempty"`
	Exports    []ExportRecord  `json:"exports,omitempty"`
	Payments   []PaymentRecord `json:"payments,omitempty"`
}

// ExportData snapshots every collection into a single JSON document.
func (l *Ledger) ExportData(ctx context.Context) (*BackupData, error) {
	data := BackupData{ExportedAt: time.Now().UTC()}
	var err error
	if data.Products, err = fetchAll[Product](ctx, l, store.CollectionProducts); err != nil {
		return nil, err
	}
	if data.Categories, err = fetchAll[Category](ctx, l, store.CollectionCategories); err != nil {
		return nil, err
	}
	if data.Customers, err = fetchAll[Customer](ctx, l, store.CollectionCustomers); err != nil {
		return nil, err
	}
	if data.Orders, err = fetchAll[Order](ctx, l, store.CollectionOrders); err != nil {
		return nil, err
	}
	if data.Imports, err = fetchAll[ImportRecord](ctx, l, store.CollectionImports); err != nil {
		return nil, err
	}
	if data.Exports, err = fetchAll[ExportRecord](ctx, l, store.CollectionExports); err != nil {
		return nil, err
	}
	if data.Payments, err = fetchAll[PaymentRecord](ctx, l, store.CollectionPayments); err != nil {
		return nil, err
	}
	return &data, nil
}

// ImportData restores collections from a backup document. Only collections
// whose key is present in the document are replaced; absent keys leave the
// current data untouched, so a partial backup is a partial restore. Records
// are keyed by their embedded id and are not re-validated: a restore must
// bring back yesterday's books exactly, warts included.
func (l *Ledger) ImportData(ctx context.Context, raw []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return errors.New("backup file is not valid JSON")
	}

	for _, collection := range store.Collections {
		body, present := top[collection]
		if !present {
			continue
		}
		var records []map[string]interface{}
		if err := json.Unmarshal(body, &records); err != nil {
			return errors.New("backup section " + collection + " is not a record array")
		}
		keyed := make(map[string]interface{}, len(records))
		for _, record := range records {
			id, _ := record["id"].(string)
			if id == "" {
				continue
			}
			keyed[id] = record
		}
		if err := l.store.SetCollection(ctx, collection, keyed); err != nil {
			return err
		}
	}
	return nil
}
