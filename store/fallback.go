package store

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// FallbackStore wraps a remote primary with an on-device local store. A
// write that still fails after the primary's retry budget is redirected to
// the local store so the operator's action is not silently lost; the two
// stores may then disagree until the next successful primary read, at which
// point the local copy is reconciled from the remote.
type FallbackStore struct {
	primary Store
	local   Store
	logger  *logrus.Logger
}

func NewFallbackStore(primary, local Store, logger *logrus.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, local: local, logger: logger}
}

func (f *FallbackStore) logDegraded(op, target string, err error) {
	f.logger.WithFields(logrus.Fields{
		"module":   "store",
		"funcName": op,
		"context":  target,
	}).Warn("primary store unavailable, using local fallback: " + err.Error())
}

func (f *FallbackStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	raw, exists, err := f.primary.Get(ctx, path)
	if err == nil {
		return raw, exists, nil
	}
	f.logDegraded("Get", path, err)
	return f.local.Get(ctx, path)
}

func (f *FallbackStore) Set(ctx context.Context, path string, value interface{}) error {
	if err := f.primary.Set(ctx, path, value); err != nil {
		f.logDegraded("Set", path, err)
		return f.local.Set(ctx, path, value)
	}
	// Keep the local mirror roughly current for offline reads.
	_ = f.local.Set(ctx, path, value)
	return nil
}

func (f *FallbackStore) Update(ctx context.Context, changes map[string]interface{}) error {
	if err := f.primary.Update(ctx, changes); err != nil {
		f.logDegraded("Update", "batch", err)
		return f.local.Update(ctx, changes)
	}
	_ = f.local.Update(ctx, changes)
	return nil
}

func (f *FallbackStore) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	records, err := f.primary.GetCollection(ctx, collection)
	if err != nil {
		f.logDegraded("GetCollection", collection, err)
		return f.local.GetCollection(ctx, collection)
	}
	// Successful remote read wins over whatever the fallback accumulated.
	mirror := make(map[string]interface{}, len(records))
	for id, raw := range records {
		mirror[id] = raw
	}
	_ = f.local.SetCollection(ctx, collection, mirror)
	return records, nil
}

func (f *FallbackStore) SetCollection(ctx context.Context, collection string, records map[string]interface{}) error {
	if err := f.primary.SetCollection(ctx, collection, records); err != nil {
		f.logDegraded("SetCollection", collection, err)
		return f.local.SetCollection(ctx, collection, records)
	}
	_ = f.local.SetCollection(ctx, collection, records)
	return nil
}
