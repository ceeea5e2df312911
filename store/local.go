package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore persists each collection as one JSON array file under a data
// directory, mirroring the browser localStorage fallback of the UI. Writes
// are last-write-wins; there is no cross-process locking discipline.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("local store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (l *LocalStore) file(collection string) string {
	return filepath.Join(l.dir, collection+".json")
}

// readAll loads a collection file and keys its records by id.
func (l *LocalStore) readAll(collection string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(l.file(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	result := make(map[string]json.RawMessage, len(records))
	for _, raw := range records {
		var keyed struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &keyed); err != nil || keyed.ID == "" {
			continue
		}
		result[keyed.ID] = raw
	}
	return result, nil
}

func (l *LocalStore) writeAll(collection string, records map[string]json.RawMessage) error {
	list := make([]json.RawMessage, 0, len(records))
	for _, raw := range records {
		list = append(list, raw)
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return os.WriteFile(l.file(collection), data, 0o644)
}

func (l *LocalStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	collection, id, ok := splitPath(path)
	if !ok {
		return nil, false, errors.New("invalid record path: " + path)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	records, err := l.readAll(collection)
	if err != nil {
		return nil, false, err
	}
	raw, exists := records[id]
	return raw, exists, nil
}

func (l *LocalStore) Set(ctx context.Context, path string, value interface{}) error {
	collection, id, ok := splitPath(path)
	if !ok {
		return errors.New("invalid record path: " + path)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	records, err := l.readAll(collection)
	if err != nil {
		return err
	}
	if value == nil {
		delete(records, id)
	} else {
		raw, err := marshalValue(value)
		if err != nil {
			return err
		}
		records[id] = raw
	}
	return l.writeAll(collection, records)
}

func (l *LocalStore) Update(ctx context.Context, changes map[string]interface{}) error {
	for path, value := range changes {
		if err := l.Set(ctx, path, value); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalStore) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll(collection)
}

func (l *LocalStore) SetCollection(ctx context.Context, collection string, records map[string]interface{}) error {
	replacement := make(map[string]json.RawMessage, len(records))
	for id, value := range records {
		raw, err := marshalValue(value)
		if err != nil {
			return err
		}
		replacement[id] = raw
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeAll(collection, replacement)
}
