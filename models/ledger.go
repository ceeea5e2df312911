package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quanlykho/kho_backend/store"
	"github.com/sirupsen/logrus"
)

// Ledger is the engine behind every screen: it reads the raw collections,
// computes derived state (stock, reservations, outstanding balances) and
// enforces the mutation invariants. The store is injected once at process
// start so tests can substitute an in-memory double.
type Ledger struct {
	store  store.Store
	logger *logrus.Logger
}

func NewLedger(st store.Store, logger *logrus.Logger) *Ledger {
	return &Ledger{store: st, logger: logger}
}

func (l *Ledger) Store() store.Store {
	return l.store
}

// fetchAll loads a whole collection and decodes each record. Records that do
// not decode are skipped rather than failing the read: the store performs no
// shape validation on restore, so a single bad record must not take down
// every listing.
func fetchAll[T any](ctx context.Context, l *Ledger, collection string) ([]T, error) {
	records, err := l.store.GetCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	results := make([]T, 0, len(records))
	for id, raw := range records {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			l.logger.WithFields(logrus.Fields{
				"module":   "models",
				"context":  collection,
				"recordId": id,
			}).Warn("skipping undecodable record: " + err.Error())
			continue
		}
		results = append(results, record)
	}
	return results, nil
}

func fetchOne[T any](ctx context.Context, l *Ledger, collection, id string) (*T, bool, error) {
	raw, exists, err := l.store.Get(ctx, store.RecordPath(collection, id))
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("decode %s/%s: %v", collection, id, err)
	}
	return &record, true, nil
}
