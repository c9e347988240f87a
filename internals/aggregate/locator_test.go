// file: internals/aggregate/locator_test.go
package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelatihanku_backend/internals/docstore"
)

func TestDecodeBatchID(t *testing.T) {
	base, suffix, err := DecodeBatchID("B-FD-25-A")
	require.NoError(t, err)
	assert.Equal(t, "B-FD-25", base)
	assert.Equal(t, "A", suffix)

	// suffix boleh multi-karakter; base tetap 3 segmen pertama
	base, suffix, err = DecodeBatchID("B-FD-25-A2")
	require.NoError(t, err)
	assert.Equal(t, "B-FD-25", base)
	assert.Equal(t, "A2", suffix)
}

func TestDecodeBatchIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "B-FD-25", "BFD25A", "B-FD-25-"} {
		_, _, err := DecodeBatchID(id)
		assert.ErrorIs(t, err, ErrValidation, "id=%q", id)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	id := EncodeBatchID("B-FD-25", "C")
	base, suffix, err := DecodeBatchID(id)
	require.NoError(t, err)
	assert.Equal(t, "B-FD-25", base)
	assert.Equal(t, "C", suffix)
}

func TestDailyRecordIDAndDatePart(t *testing.T) {
	date := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	id := DailyRecordID(date, "B-FD-25-A")
	assert.Equal(t, "01-02-25-B-FD-25-A", id)
	assert.Equal(t, "01-02-25", DatePart(id))

	// id pendek dikembalikan apa adanya
	assert.Equal(t, "01-02", DatePart("01-02"))
}

func TestResolveBatch(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemStore()

	doc, err := docstore.DataFrom(BatchDoc{
		BaseID:   "B-FD-25",
		CourseID: "course-1",
		Entries: []BatchEntry{
			{Key: "k-a", Suffix: "A", Name: "Batch Pagi"},
			{Key: "k-b", Suffix: "B", Name: "Batch Sore"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, ColBatches, "B-FD-25", doc))

	batch, entry, err := ResolveBatch(ctx, store, "B-FD-25-B")
	require.NoError(t, err)
	assert.Equal(t, "B-FD-25", batch.BaseID)
	assert.Equal(t, "k-b", entry.Key)
	assert.Equal(t, "Batch Sore", entry.Name)

	_, _, err = ResolveBatch(ctx, store, "B-FD-25-Z")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = ResolveBatch(ctx, store, "B-XX-99-A")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsFirstForDate(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemStore()

	set := func(id, batchID string) {
		doc, err := docstore.DataFrom(AttendanceDoc{BatchID: batchID, Date: DatePart(id)})
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, ColAttendance, id, doc))
	}
	set("01-02-25-B-FD-25-A", "B-FD-25-A")
	set("02-02-25-B-FD-25-A", "B-FD-25-A")

	// dokumen yang sedang ditulis di-exclude
	first, err := IsFirstForDate(ctx, store, ColAttendance, "B-FD-25-A", "01-02-25", "01-02-25-B-FD-25-A")
	require.NoError(t, err)
	assert.True(t, first)

	// record lain untuk tanggal yang sama sudah ada
	first, err = IsFirstForDate(ctx, store, ColAttendance, "B-FD-25-A", "02-02-25", "other-doc")
	require.NoError(t, err)
	assert.False(t, first)

	// batch lain tidak terhitung
	first, err = IsFirstForDate(ctx, store, ColAttendance, "B-FD-25-B", "01-02-25", "")
	require.NoError(t, err)
	assert.True(t, first)
}
