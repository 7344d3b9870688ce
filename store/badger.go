package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"
	"github.com/use-agent/qualify/models"
)

// StoredRecord is the on-disk envelope for one appended record. The
// sequence key preserves append order, so reading back in key order
// reproduces the FIFO result stream.
type StoredRecord struct {
	Seq       uint64 `badgerholdKey:"Seq"`
	Kind      string // "result" or "summary"
	Payload   []byte // JSON-encoded record
	CreatedAt time.Time
}

// BadgerSink is a Sink backed by an embedded Badger database.
type BadgerSink struct {
	store *badgerhold.Store
}

// OpenBadger opens (creating if needed) the Badger database at path.
func OpenBadger(path string) (*BadgerSink, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // quiet badger's own logger; slog covers the rest

	s, err := badgerhold.Open(options)
	if err != nil {
		return nil, models.NewPipelineError(models.ErrCodeStore, "failed to open badger store", err)
	}

	slog.Info("record store opened", "path", path)
	return &BadgerSink{store: s}, nil
}

// Append persists one record under the next sequence key.
func (b *BadgerSink) Append(_ context.Context, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return models.NewPipelineError(models.ErrCodeStore, "failed to encode record", err)
	}

	rec := StoredRecord{
		Kind:      kindOf(record),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := b.store.Insert(badgerhold.NextSequence(), &rec); err != nil {
		return models.NewPipelineError(models.ErrCodeStore, "failed to append record", err)
	}
	return nil
}

// Records returns every stored record in append order.
func (b *BadgerSink) Records() ([]StoredRecord, error) {
	var records []StoredRecord
	if err := b.store.Find(&records, nil); err != nil {
		return nil, models.NewPipelineError(models.ErrCodeStore, "failed to read records", err)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	return records, nil
}

// Close flushes and closes the database.
func (b *BadgerSink) Close() error {
	return b.store.Close()
}

func kindOf(record any) string {
	switch record.(type) {
	case models.RunSummary, *models.RunSummary:
		return "summary"
	default:
		return "result"
	}
}
