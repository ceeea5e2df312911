package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 8 * time.Second
	defaultRetryCount     = 2
	defaultRetryBackoff   = 500 * time.Millisecond
)

// FirebaseStore talks to a Firebase Realtime Database over its REST surface:
// every path maps to "<databaseURL>/<path>.json". Multi-path patches go
// through a single PATCH on the root, which the backend applies as one
// request but without cross-path atomicity.
type FirebaseStore struct {
	baseURL string
	client  *http.Client
	retries int
	backoff time.Duration
	timeout time.Duration
}

var trailingJunk = regexp.MustCompile(`[)\s]+$`)

// SanitizeDatabaseURL strips the stray parentheses/whitespace that pasted
// console URLs tend to carry, plus trailing slashes.
func SanitizeDatabaseURL(url string) string {
	url = trailingJunk.ReplaceAllString(strings.TrimSpace(url), "")
	return strings.TrimRight(url, "/")
}

func NewFirebaseStore(databaseURL string) (*FirebaseStore, error) {
	base := SanitizeDatabaseURL(databaseURL)
	if base == "" {
		return nil, fmt.Errorf("firebase database url is required")
	}
	return &FirebaseStore{
		baseURL: base,
		client:  &http.Client{},
		retries: defaultRetryCount,
		backoff: defaultRetryBackoff,
		timeout: defaultRequestTimeout,
	}, nil
}

// do runs one REST call with a hard per-attempt timeout and a bounded retry
// budget with fixed backoff. Exhaustion surfaces as ErrorStoreUnavailable.
func (f *FirebaseStore) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := f.baseURL + "/" + strings.Trim(path, "/") + ".json"
	var lastErr error
	for attempt := 0; attempt < f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(f.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
		data, err := f.doOnce(attemptCtx, method, url, body)
		cancel()
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %s %s: %v", ErrorStoreUnavailable, method, url, lastErr)
}

func (f *FirebaseStore) doOnce(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func isNullBody(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return trimmed == "" || trimmed == "null"
}

func (f *FirebaseStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	data, err := f.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}
	if isNullBody(data) {
		return nil, false, nil
	}
	return json.RawMessage(data), true, nil
}

func (f *FirebaseStore) Set(ctx context.Context, path string, value interface{}) error {
	if value == nil {
		_, err := f.do(ctx, http.MethodDelete, path, nil)
		return err
	}
	raw, err := marshalValue(value)
	if err != nil {
		return err
	}
	_, err = f.do(ctx, http.MethodPut, path, raw)
	return err
}

func (f *FirebaseStore) Update(ctx context.Context, changes map[string]interface{}) error {
	patch := make(map[string]json.RawMessage, len(changes))
	for path, value := range changes {
		if value == nil {
			patch[strings.Trim(path, "/")] = json.RawMessage("null")
			continue
		}
		raw, err := marshalValue(value)
		if err != nil {
			return err
		}
		patch[strings.Trim(path, "/")] = raw
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	_, err = f.do(ctx, http.MethodPatch, "", body)
	return err
}

func (f *FirebaseStore) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	data, err := f.do(ctx, http.MethodGet, collection, nil)
	if err != nil {
		return nil, err
	}
	if isNullBody(data) {
		return map[string]json.RawMessage{}, nil
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %v", collection, err)
	}
	return records, nil
}

func (f *FirebaseStore) SetCollection(ctx context.Context, collection string, records map[string]interface{}) error {
	body, err := json.Marshal(records)
	if err != nil {
		return err
	}
	_, err = f.do(ctx, http.MethodPut, collection, body)
	return err
}
