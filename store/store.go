package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Collection names, keyed under the store root. Record paths are
// "<collection>/<id>".
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCustomers  = "customers"
	CollectionOrders     = "orders"
	CollectionImports    = "imports"
	CollectionExports    = "exports"
	CollectionPayments   = "payments"
)

var Collections = []string{
	CollectionProducts,
	CollectionCategories,
	CollectionCustomers,
	CollectionOrders,
	CollectionImports,
	CollectionExports,
	CollectionPayments,
}

// ErrorStoreUnavailable is returned once the timeout/retry budget for a
// remote call is exhausted.
var ErrorStoreUnavailable = errors.New("store unavailable")

// Store is a path-addressed document store. Update applies a multi-path
// patch as one request where the backend supports it, but it is NOT atomic
// across paths: a failure mid-batch can leave some paths written and others
// not. Callers must not assume all-or-nothing semantics.
type Store interface {
	// Get returns the record at path, or ok=false when absent.
	Get(ctx context.Context, path string) (json.RawMessage, bool, error)
	// Set replaces the record at path. A nil value deletes it.
	Set(ctx context.Context, path string, value interface{}) error
	// Update patches several paths best-effort. Nil values delete.
	Update(ctx context.Context, changes map[string]interface{}) error
	// GetCollection returns every record of a collection keyed by id.
	GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error)
	// SetCollection replaces a collection wholesale, keyed by record id.
	SetCollection(ctx context.Context, collection string, records map[string]interface{}) error
}

func RecordPath(collection, id string) string {
	return collection + "/" + id
}

func splitPath(path string) (collection, id string, ok bool) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func marshalValue(value interface{}) (json.RawMessage, error) {
	if raw, isRaw := value.(json.RawMessage); isRaw {
		return raw, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
