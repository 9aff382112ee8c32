// Package storage provides rule persistence backends. All backends
// store rules as JSON documents keyed by rule id and implement
// rule.Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/inkdeck/display-automation/pkg/rule"
)

// encodeRule serializes a rule to its persisted JSON form.
func encodeRule(r rule.Rule) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule %s: %w", r.ID, err)
	}
	return data, nil
}

// decodeRule deserializes a persisted rule document.
func decodeRule(data []byte) (rule.Rule, error) {
	var r rule.Rule
	if err := json.Unmarshal(data, &r); err != nil {
		return rule.Rule{}, fmt.Errorf("failed to unmarshal rule: %w", err)
	}
	return r, nil
}

// MemoryRepository keeps persisted rule documents in process memory.
// It exercises the same JSON codec as the durable backends, so what
// the engine reads back went through a real encode/decode round trip.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string][]byte)}
}

// Save stores a rule document, overwriting any previous version.
func (m *MemoryRepository) Save(ctx context.Context, r rule.Rule) error {
	data, err := encodeRule(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[r.ID] = data
	return nil
}

// LoadAll returns every stored rule.
func (m *MemoryRepository) LoadAll(ctx context.Context) ([]rule.Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rules := make([]rule.Rule, 0, len(m.docs))
	for id, data := range m.docs {
		r, err := decodeRule(data)
		if err != nil {
			return nil, fmt.Errorf("corrupt rule document %s: %w", id, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Delete removes a rule document. Deleting an absent id is not an
// error.
func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

// Ping reports readiness. The in-memory backend is always ready.
func (m *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close releases the repository. No-op for the in-memory backend.
func (m *MemoryRepository) Close() error {
	return nil
}
