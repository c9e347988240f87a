// file: internals/docstore/store.go
package docstore

import (
	"context"
	"errors"
)

// Document adalah payload JSON mentah satu dokumen.
type Document = map[string]any

var (
	ErrNotFound      = errors.New("docstore: document not found")
	ErrEmptyBatch    = errors.New("docstore: commit on empty batch")
	ErrBatchCommited = errors.New("docstore: batch already committed")
)

// Snapshot: hasil query (id + data).
type Snapshot struct {
	ID   string
	Data Document
}

/* =========================
   Sentinel nilai update
========================= */

type deleteSentinel struct{}

type arrayUnionSentinel struct{ values []any }

// Delete menghapus field pada Update (dotted path didukung).
var Delete = deleteSentinel{}

// ArrayUnion menambahkan nilai ke array field tanpa duplikat.
// Idempoten di level storage: nilai yang sudah ada tidak ditambahkan lagi.
func ArrayUnion(values ...any) any {
	return arrayUnionSentinel{values: values}
}

/* =========================
   Kontrak store
========================= */

// Store: kemampuan minimum yang dibutuhkan engine dari database dokumen.
// Hanya equality filter untuk Query; tidak ada range query.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	// Update menerapkan partial field paths (dotted), sentinel Delete dan
	// ArrayUnion. ErrNotFound bila dokumen belum ada.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, eq map[string]any, limit int) ([]Snapshot, error)
	Batch() Batch
}

// Batch: multi-write atomik. Semua operasi diterapkan pada Commit,
// all-or-nothing.
type Batch interface {
	Set(collection, id string, doc Document)
	Update(collection, id string, fields map[string]any)
	Delete(collection, id string)
	Commit(ctx context.Context) error
}
