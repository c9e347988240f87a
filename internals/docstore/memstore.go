// file: internals/docstore/memstore.go
package docstore

import (
	"context"
	"reflect"
	"sort"
	"sync"
)

/* =========================
   Implementasi in-memory (untuk test)
=========================
Semantik sama dengan GormStore: Set = upsert, Update butuh dokumen ada,
Batch all-or-nothing. Dokumen selalu di-deep-copy saat masuk/keluar supaya
caller tidak bisa memutasi state internal.
*/

type MemStore struct {
	mu   sync.Mutex
	data map[string]map[string]Document // collection -> id -> doc
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string]map[string]Document{}}
}

func cloneDoc(doc Document) Document {
	out, err := DataFrom(doc)
	if err != nil || out == nil {
		return Document{}
	}
	return out
}

func (s *MemStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *MemStore) Set(ctx context.Context, collection, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(collection, id, doc)
	return nil
}

func (s *MemStore) setLocked(collection, id string, doc Document) {
	col, ok := s.data[collection]
	if !ok {
		col = map[string]Document{}
		s.data[collection] = col
	}
	col[id] = cloneDoc(doc)
}

func (s *MemStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(collection, id, fields)
}

func (s *MemStore) updateLocked(collection, id string, fields map[string]any) error {
	doc, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	next := cloneDoc(doc)
	ApplyFields(next, fields)
	s.data[collection][id] = next
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

func (s *MemStore) Query(ctx context.Context, collection string, eq map[string]any, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.data[collection]))
	for id := range s.data[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Snapshot
	for _, id := range ids {
		doc := s.data[collection][id]
		if matchesEq(doc, eq) {
			out = append(out, Snapshot{ID: id, Data: cloneDoc(doc)})
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func matchesEq(doc Document, eq map[string]any) bool {
	for path, want := range eq {
		got, ok := GetField(doc, path)
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual menyamakan angka hasil decode JSON (float64) dengan int filter.
func looseEqual(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	gf, gok := asFloat(got)
	wf, wok := asFloat(want)
	return gok && wok && gf == wf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (s *MemStore) Batch() Batch {
	return &memBatch{store: s}
}

type memBatch struct {
	store     *MemStore
	ops       []batchOp
	committed bool
}

func (b *memBatch) Set(collection, id string, doc Document) {
	b.ops = append(b.ops, batchOp{kind: opSet, collection: collection, id: id, doc: cloneDoc(doc)})
}

func (b *memBatch) Update(collection, id string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opUpdate, collection: collection, id: id, fields: fields})
}

func (b *memBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{kind: opDelete, collection: collection, id: id})
}

func (b *memBatch) Commit(ctx context.Context) error {
	if b.committed {
		return ErrBatchCommited
	}
	if len(b.ops) == 0 {
		return ErrEmptyBatch
	}
	b.committed = true

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// snapshot untuk rollback all-or-nothing
	backup := map[string]map[string]Document{}
	for col, docs := range s.data {
		backup[col] = map[string]Document{}
		for id, d := range docs {
			backup[col][id] = d
		}
	}

	for _, op := range b.ops {
		var err error
		switch op.kind {
		case opSet:
			s.setLocked(op.collection, op.id, op.doc)
		case opUpdate:
			err = s.updateLocked(op.collection, op.id, op.fields)
		case opDelete:
			delete(s.data[op.collection], op.id)
		}
		if err != nil {
			s.data = backup
			return err
		}
	}
	return nil
}
