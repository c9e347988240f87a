// file: internals/aggregate/outbox_test.go
package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelatihanku_backend/internals/docstore"
)

// flakyStore meneruskan semua operasi ke MemStore kecuali Update pada
// collection yang sedang disabotase.
type flakyStore struct {
	*docstore.MemStore
	failUpdates string // nama collection yang Update-nya selalu gagal
}

var errInjected = errors.New("injected storage failure")

func (f *flakyStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if f.failUpdates != "" && collection == f.failUpdates {
		return errInjected
	}
	return f.MemStore.Update(ctx, collection, id, fields)
}

func TestOutboxEnqueue(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemStore()
	ob := NewOutbox(store)

	require.NoError(t, ob.Enqueue(ctx, "u1", "course-1", "progress-score: boom"))

	snaps, err := store.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	var task OutboxTask
	require.NoError(t, docstore.DataTo(snaps[0].Data, &task))
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, "course-1", task.CourseID)
	assert.Equal(t, "progress-score: boom", task.Cause)
	assert.Zero(t, task.Attempts)
}

func TestFailedPropagationEnqueuesThenWorkerRepairs(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemStore()
	flaky := &flakyStore{MemStore: mem}

	// world setup lewat store sehat
	healthy := NewCoordinator(mem, nil)
	batchDoc, err := docstore.DataFrom(BatchDoc{
		BaseID: "B-FD-25", CourseID: testCourse,
		Entries: []BatchEntry{{Key: "k-a", Suffix: "A", Name: "Batch Pagi"}},
	})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, ColBatches, "B-FD-25", batchDoc))
	userDoc, err := docstore.DataFrom(UserDoc{UserID: "u1", Name: "Budi", Courses: map[string]CourseProgress{}})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, ColUsers, "u1", userDoc))
	require.NoError(t, healthy.EnrollTrainee(ctx, EnrollInput{
		UserID: "u1", Name: "Budi", CourseID: testCourse, BatchID: testBatch, EnrolledAt: time.Now(),
	}))

	// coordinator yang update user-nya gagal: primary tetap sukses,
	// propagasi progress masuk outbox
	flaky.failUpdates = ColUsers
	coord := NewCoordinator(flaky, NewOutbox(flaky))

	recordID, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	require.NoError(t, err, "secondary gagal tidak boleh menggagalkan request")

	_, err = mem.Get(ctx, ColAttendance, recordID)
	require.NoError(t, err, "primary record harus tetap tertulis")

	pending, err := mem.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	// aggregate belum ter-update
	user, err := healthy.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, user.Courses[testCourse].TotalPresent)

	// storage pulih; worker memperbaiki lewat recompute penuh
	flaky.failUpdates = ""
	worker := NewOutboxWorker(flaky, coord)
	require.NoError(t, worker.ProcessOnce(ctx))

	user, err = healthy.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.Courses[testCourse].TotalPresent)
	assert.Equal(t, 100, user.Courses[testCourse].AttendanceRate)

	// task sukses dihapus
	pending, err = mem.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorkerMarksTaskDeadAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemStore()
	coord := NewCoordinator(store, nil)

	ob := NewOutbox(store)
	// user tidak pernah ada -> Reconcile selalu ErrNotFound
	require.NoError(t, ob.Enqueue(ctx, "hantu", "course-1", "test"))

	worker := NewOutboxWorker(store, coord)
	worker.MaxAttempts = 2

	require.NoError(t, worker.ProcessOnce(ctx))
	pending, _ := store.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, 0)
	require.Len(t, pending, 1)
	var task OutboxTask
	require.NoError(t, docstore.DataTo(pending[0].Data, &task))
	assert.Equal(t, 1, task.Attempts)
	assert.NotEmpty(t, task.LastError)

	require.NoError(t, worker.ProcessOnce(ctx))
	pending, _ = store.Query(ctx, ColOutbox, map[string]any{"status": OutboxPending}, 0)
	assert.Empty(t, pending)

	dead, _ := store.Query(ctx, ColOutbox, map[string]any{"status": OutboxDead}, 0)
	require.Len(t, dead, 1)
	require.NoError(t, docstore.DataTo(dead[0].Data, &task))
	assert.Equal(t, 2, task.Attempts)

	// task dead tidak diproses lagi
	require.NoError(t, worker.ProcessOnce(ctx))
	dead, _ = store.Query(ctx, ColOutbox, map[string]any{"status": OutboxDead}, 0)
	assert.Len(t, dead, 1)
}
