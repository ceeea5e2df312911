package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MemoryStore keeps every collection in process memory. It backs unit tests
// and doubles as the degraded mode when no backend is configured at all.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]json.RawMessage)}
}

func (m *MemoryStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	collection, id, ok := splitPath(path)
	if !ok {
		return nil, false, errors.New("invalid record path: " + path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	records, exists := m.data[collection]
	if !exists {
		return nil, false, nil
	}
	raw, exists := records[id]
	if !exists {
		return nil, false, nil
	}
	return raw, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, path string, value interface{}) error {
	collection, id, ok := splitPath(path)
	if !ok {
		return errors.New("invalid record path: " + path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == nil {
		if records, exists := m.data[collection]; exists {
			delete(records, id)
		}
		return nil
	}
	raw, err := marshalValue(value)
	if err != nil {
		return err
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][id] = raw
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, changes map[string]interface{}) error {
	for path, value := range changes {
		if err := m.Set(ctx, path, value); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]json.RawMessage, len(m.data[collection]))
	for id, raw := range m.data[collection] {
		result[id] = raw
	}
	return result, nil
}

func (m *MemoryStore) SetCollection(ctx context.Context, collection string, records map[string]interface{}) error {
	replacement := make(map[string]json.RawMessage, len(records))
	for id, value := range records {
		raw, err := marshalValue(value)
		if err != nil {
			return err
		}
		replacement[id] = raw
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[collection] = replacement
	return nil
}
