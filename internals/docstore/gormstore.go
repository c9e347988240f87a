// file: internals/docstore/gormstore.go
package docstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* =========================
   Implementasi Postgres (GORM + JSONB)
=========================
Satu tabel `documents` untuk semua collection; payload dokumen di kolom
JSONB. Equality query memakai containment operator (@>), batch memakai
transaction DB (all-or-nothing).
*/

type documentRow struct {
	Collection string            `gorm:"type:varchar(64);primaryKey;column:collection"`
	DocID      string            `gorm:"type:varchar(160);primaryKey;column:doc_id"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null;column:data"`
	CreatedAt  time.Time         `gorm:"type:timestamptz;not null;default:now();column:created_at"`
	UpdatedAt  time.Time         `gorm:"type:timestamptz;not null;default:now();column:updated_at"`
}

func (documentRow) TableName() string { return "documents" }

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate membuat tabel documents (dipanggil saat bootstrap).
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&documentRow{})
}

func (s *GormStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var row documentRow
	err := s.DB.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Document(row.Data), nil
}

func (s *GormStore) Set(ctx context.Context, collection, id string, doc Document) error {
	return setTx(s.DB.WithContext(ctx), collection, id, doc)
}

func (s *GormStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return updateTx(tx, collection, id, fields)
	})
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	return deleteTx(s.DB.WithContext(ctx), collection, id)
}

func (s *GormStore) Query(ctx context.Context, collection string, eq map[string]any, limit int) ([]Snapshot, error) {
	q := s.DB.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ?", collection)
	if len(eq) > 0 {
		// containment: semua pasangan key=value harus cocok
		q = q.Where("data @> ?", datatypes.JSONMap(eq))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []documentRow
	if err := q.Order("doc_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Snapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, Snapshot{ID: r.DocID, Data: Document(r.Data)})
	}
	return out, nil
}

func (s *GormStore) Batch() Batch {
	return &gormBatch{store: s}
}

/* =========================
   Operasi per-baris (dipakai langsung & oleh batch)
========================= */

func setTx(tx *gorm.DB, collection, id string, doc Document) error {
	row := documentRow{
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSONMap(doc),
		UpdatedAt:  time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func updateTx(tx *gorm.DB, collection, id string, fields map[string]any) error {
	// read-modify-write dengan row lock supaya update field path konsisten
	var row documentRow
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	doc := Document(row.Data)
	if doc == nil {
		doc = Document{}
	}
	ApplyFields(doc, fields)

	return tx.Model(&documentRow{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Updates(map[string]any{
			"data":       datatypes.JSONMap(doc),
			"updated_at": time.Now(),
		}).Error
}

func deleteTx(tx *gorm.DB, collection, id string) error {
	return tx.Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&documentRow{}).Error
}

/* =========================
   Batch
========================= */

type batchOpKind int

const (
	opSet batchOpKind = iota
	opUpdate
	opDelete
)

type batchOp struct {
	kind       batchOpKind
	collection string
	id         string
	doc        Document
	fields     map[string]any
}

type gormBatch struct {
	store     *GormStore
	ops       []batchOp
	committed bool
}

func (b *gormBatch) Set(collection, id string, doc Document) {
	b.ops = append(b.ops, batchOp{kind: opSet, collection: collection, id: id, doc: doc})
}

func (b *gormBatch) Update(collection, id string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opUpdate, collection: collection, id: id, fields: fields})
}

func (b *gormBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{kind: opDelete, collection: collection, id: id})
}

func (b *gormBatch) Commit(ctx context.Context) error {
	if b.committed {
		return ErrBatchCommited
	}
	if len(b.ops) == 0 {
		return ErrEmptyBatch
	}
	b.committed = true

	return b.store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range b.ops {
			var err error
			switch op.kind {
			case opSet:
				err = setTx(tx, op.collection, op.id, op.doc)
			case opUpdate:
				err = updateTx(tx, op.collection, op.id, op.fields)
			case opDelete:
				err = deleteTx(tx, op.collection, op.id)
			}
			if err != nil {
				return err // rollback semua
			}
		}
		return nil
	})
}
