// Package handoff implements the write-once session slot used to carry a
// serialized form state from one page context into a freshly constructed
// editor engine. A payload is read at most once: Take deletes it, so a second
// engine built in the same session sees nothing.
package handoff

import (
	"context"
	"errors"
	"sync"
)

// ErrEmpty is returned by Take when the slot holds nothing for the session.
var ErrEmpty = errors.New("handoff: slot empty")

// Slot stores one pending payload per session key.
type Slot interface {
	Put(ctx context.Context, key string, payload []byte) error

	// Take returns the payload and deletes it in the same step.
	Take(ctx context.Context, key string) ([]byte, error)
}

// Memory is the in-process Slot used by tests and single-node deployments.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = payload
	return nil
}

func (m *Memory) Take(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, ok := m.entries[key]
	if !ok {
		return nil, ErrEmpty
	}
	delete(m.entries, key)
	return payload, nil
}
