package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests. It mimics the remote
// database's observable behavior: two-level collection/key paths, merge
// semantics on Update, nil results for absent nodes and sortable push keys.
// Values round-trip through JSON so numbers decode as float64, exactly as
// they do coming back from the wire.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]any
	seq  int

	// Err, when set, is returned by every operation. Lets tests exercise
	// the store-failure paths without a network.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]map[string]any)}
}

// splitPath separates "Collection" or "Collection/key" paths.
func splitPath(path string) (collection, key string) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 2)
	collection = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}
	return collection, key
}

func decodeInto(src any, v any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func (m *MemoryStore) Get(ctx context.Context, path string, v any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	collection, key := splitPath(path)
	nodes, ok := m.data[collection]
	if !ok {
		return nil
	}
	if key == "" {
		return decodeInto(nodes, v)
	}
	node, ok := nodes[key]
	if !ok {
		return nil
	}
	return decodeInto(node, v)
}

func (m *MemoryStore) Set(ctx context.Context, path string, v any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	collection, key := splitPath(path)
	var fields map[string]any
	if err := decodeInto(v, &fields); err != nil {
		return err
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]map[string]any)
	}
	m.data[collection][key] = fields
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	collection, key := splitPath(path)
	var incoming map[string]any
	if err := decodeInto(fields, &incoming); err != nil {
		return err
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]map[string]any)
	}
	node := m.data[collection][key]
	if node == nil {
		node = make(map[string]any)
	}
	for k, v := range incoming {
		node[k] = v
	}
	m.data[collection][key] = node
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, path string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	collection, key := splitPath(path)
	if key == "" {
		delete(m.data, collection)
		return nil
	}
	delete(m.data[collection], key)
	return nil
}

func (m *MemoryStore) Push(ctx context.Context, path string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	return fmt.Sprintf("-K%08d", m.seq), nil
}
