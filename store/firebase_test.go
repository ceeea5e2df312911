package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/quanlykho/kho_backend/store"
)

func TestFirebaseStorePathsAndNullBodies(t *testing.T) {
	var lastMethod, lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastMethod = r.Method
		lastPath = r.URL.Path
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/products/p1.json":
			io.WriteString(w, `{"id":"p1","name":"one"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/orders.json":
			// Firebase returns literal null for an empty node.
			io.WriteString(w, "null")
		default:
			io.WriteString(w, "{}")
		}
	}))
	defer srv.Close()

	fs, err := store.NewFirebaseStore(srv.URL)
	if err != nil {
		t.Fatalf("NewFirebaseStore: %v", err)
	}
	ctx := context.Background()

	raw, exists, err := fs.Get(ctx, "products/p1")
	if err != nil || !exists {
		t.Fatalf("Get: exists=%v err=%v", exists, err)
	}
	var got struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(raw, &got)
	if got.Name != "one" {
		t.Fatalf("got = %+v", got)
	}

	records, err := fs.GetCollection(ctx, "orders")
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("null node decoded to %d records, want 0", len(records))
	}

	if err := fs.Set(ctx, "products/p1", nil); err != nil {
		t.Fatalf("Set nil: %v", err)
	}
	if lastMethod != http.MethodDelete || lastPath != "/products/p1.json" {
		t.Fatalf("delete sent %s %s", lastMethod, lastPath)
	}
}

func TestFirebaseStoreUpdatePatchesRoot(t *testing.T) {
	var body []byte
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		io.WriteString(w, "{}")
	}))
	defer srv.Close()

	fs, _ := store.NewFirebaseStore(srv.URL)
	err := fs.Update(context.Background(), map[string]interface{}{
		"products/p1": map[string]string{"id": "p1"},
		"orders/o1":   nil,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if method != http.MethodPatch || path != "/.json" {
		t.Fatalf("patch sent %s %s, want PATCH /.json", method, path)
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(body, &patch); err != nil {
		t.Fatalf("patch body: %v", err)
	}
	if string(patch["orders/o1"]) != "null" {
		t.Fatalf("delete path = %s, want null", patch["orders/o1"])
	}
	if _, ok := patch["products/p1"]; !ok {
		t.Fatalf("patch keys = %v", patch)
	}
}

func TestFirebaseStoreRetriesThenSurfacesUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fs, _ := store.NewFirebaseStore(srv.URL)
	_, _, err := fs.Get(context.Background(), "products/p1")
	if !errors.Is(err, store.ErrorStoreUnavailable) {
		t.Fatalf("err = %v, want ErrorStoreUnavailable", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("attempts = %d, want 2 (one retry)", calls.Load())
	}
}

func TestFirebaseStoreRecoversMidRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"id":"p1"}`)
	}))
	defer srv.Close()

	fs, _ := store.NewFirebaseStore(srv.URL)
	_, exists, err := fs.Get(context.Background(), "products/p1")
	if err != nil || !exists {
		t.Fatalf("Get: exists=%v err=%v", exists, err)
	}
	if calls.Load() != 2 {
		t.Fatalf("attempts = %d, want 2", calls.Load())
	}
}
