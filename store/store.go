// Package store persists classification records as they are produced.
package store

import (
	"context"
	"sync"
)

// Sink is an append-only record store. Records are persisted in call
// order; the pipeline appends one ClassificationResult per URL plus a
// final RunSummary.
type Sink interface {
	Append(ctx context.Context, record any) error
}

// MemorySink keeps appended records in memory, in order. Used in tests and
// as a stand-in when no durable store is configured.
type MemorySink struct {
	mu      sync.Mutex
	records []any
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append stores the record.
func (m *MemorySink) Append(_ context.Context, record any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

// Records returns the appended records in insertion order.
func (m *MemorySink) Records() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.records))
	copy(out, m.records)
	return out
}
