// file: internals/aggregate/coordinator_test.go
package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelatihanku_backend/internals/docstore"
)

const (
	testCourse = "course-1"
	testBatch  = "B-FD-25-A"
)

// seedWorld: batch B-FD-25 (entry A) + user u1,u2 yang sudah enrolled.
func seedWorld(t *testing.T) (context.Context, *docstore.MemStore, *Coordinator) {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemStore()
	coord := NewCoordinator(store, nil)

	batchDoc, err := docstore.DataFrom(BatchDoc{
		BaseID:   "B-FD-25",
		CourseID: testCourse,
		Entries:  []BatchEntry{{Key: "k-a", Suffix: "A", Name: "Batch Pagi"}},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, ColBatches, "B-FD-25", batchDoc))

	for _, u := range []struct{ id, name string }{{"u1", "Budi"}, {"u2", "Siti"}} {
		userDoc, derr := docstore.DataFrom(UserDoc{
			UserID: u.id, Name: u.name, Email: u.id + "@mail.test", Role: "trainee",
			Courses: map[string]CourseProgress{},
		})
		require.NoError(t, derr)
		require.NoError(t, store.Set(ctx, ColUsers, u.id, userDoc))
		require.NoError(t, coord.EnrollTrainee(ctx, EnrollInput{
			UserID: u.id, Name: u.name, Email: u.id + "@mail.test",
			CourseID: testCourse, BatchID: testBatch, EnrolledAt: time.Now(),
		}))
	}
	return ctx, store, coord
}

func progressOf(t *testing.T, coord *Coordinator, userID string) CourseProgress {
	t.Helper()
	user, err := coord.GetUser(context.Background(), userID)
	require.NoError(t, err)
	p, ok := user.Courses[testCourse]
	require.True(t, ok, "user %s tidak enrolled", userID)
	return p
}

func rosterEntryOf(t *testing.T, store docstore.Store, userID string) RosterEntry {
	t.Helper()
	raw, err := store.Get(context.Background(), ColRosters, testBatch)
	require.NoError(t, err)
	var roster RosterDoc
	require.NoError(t, docstore.DataTo(raw, &roster))
	for _, s := range roster.Students {
		if s.UserID == userID {
			return s
		}
	}
	t.Fatalf("user %s tidak ada di roster", userID)
	return RosterEntry{}
}

func seedAssignment(t *testing.T, ctx context.Context, store docstore.Store, docID, name string, totalMarks float64) {
	t.Helper()
	raw, err := store.Get(ctx, ColAssignments, docID)
	if err != nil {
		doc, derr := docstore.DataFrom(AssignmentDoc{
			CourseID: testCourse, BatchID: testBatch, Date: DatePart(docID),
			Assignments: map[string]AssignmentRecord{name: {
				AssignmentName: name, CourseID: testCourse, BatchID: testBatch,
				TotalMarks: totalMarks, Submissions: []Submission{},
			}},
		})
		require.NoError(t, derr)
		require.NoError(t, store.Set(ctx, ColAssignments, docID, doc))
		return
	}
	var doc AssignmentDoc
	require.NoError(t, docstore.DataTo(raw, &doc))
	doc.Assignments[name] = AssignmentRecord{
		AssignmentName: name, CourseID: testCourse, BatchID: testBatch,
		TotalMarks: totalMarks, Submissions: []Submission{},
	}
	full, derr := docstore.DataFrom(doc)
	require.NoError(t, derr)
	require.NoError(t, store.Set(ctx, ColAssignments, docID, full))
}

/* =========================
   Enrollment
========================= */

func TestEnrollTraineeSeedsZeroAggregateAndRoster(t *testing.T) {
	ctx, store, coord := seedWorld(t)

	p := progressOf(t, coord, "u1")
	assert.Equal(t, testCourse, p.CourseID)
	assert.Equal(t, testBatch, p.BatchID)
	assert.Equal(t, "active", p.Status)
	assert.Zero(t, p.TotalPresent)
	assert.Zero(t, p.AverageScore)
	assert.Empty(t, p.AttendanceHistory)

	e := rosterEntryOf(t, store, "u1")
	assert.Equal(t, "Budi", e.Name)
	assert.Empty(t, e.Scores)

	// enroll ulang tidak me-reset aggregate yang sudah jalan
	_, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	require.NoError(t, err)
	require.NoError(t, coord.EnrollTrainee(ctx, EnrollInput{
		UserID: "u1", Name: "Budi", Email: "u1@mail.test",
		CourseID: testCourse, BatchID: testBatch, EnrolledAt: time.Now(),
	}))
	assert.Equal(t, 1, progressOf(t, coord, "u1").TotalPresent)
	assert.Equal(t, 1, rosterEntryOf(t, store, "u1").TotalPresent)
}

func TestEnrollTraineeUnknownBatch(t *testing.T) {
	ctx, _, coord := seedWorld(t)
	err := coord.EnrollTrainee(ctx, EnrollInput{
		UserID: "u1", CourseID: testCourse, BatchID: "B-XX-99-A", EnrolledAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

/* =========================
   Attendance
========================= */

func TestRecordAttendanceCreate(t *testing.T) {
	ctx, store, coord := seedWorld(t)

	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	id, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, Date: date, Actor: "admin-1",
		Students: []StudentDetail{
			{StudentID: "u1", Status: StatusPresent},
			{StudentID: "u2", Status: StatusAbsent},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "01-02-25-"+testBatch, id)

	raw, err := store.Get(ctx, ColAttendance, id)
	require.NoError(t, err)
	var doc AttendanceDoc
	require.NoError(t, docstore.DataTo(raw, &doc))
	assert.Equal(t, 2, doc.TotalStudents)
	assert.Equal(t, 1, doc.PresentStudents)
	assert.Equal(t, 1, doc.AbsentStudents)
	assert.Equal(t, "admin-1", doc.CreatedBy)

	p1 := progressOf(t, coord, "u1")
	assert.Equal(t, 1, p1.TotalPresent)
	assert.Equal(t, 100, p1.AttendanceRate)

	p2 := progressOf(t, coord, "u2")
	assert.Equal(t, 1, p2.TotalAbsent)
	assert.Equal(t, 0, p2.AttendanceRate)

	assert.Equal(t, 1, rosterEntryOf(t, store, "u1").TotalPresent)
	assert.Equal(t, 1, rosterEntryOf(t, store, "u2").TotalAbsent)
}

func TestRecordAttendanceUpdateFlipsStatus(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	id, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, Date: date,
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	require.NoError(t, err)

	// koreksi: present -> absent, counter pindah bukan bertambah
	_, err = coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, RecordID: id, Date: date,
		Students: []StudentDetail{{StudentID: "u1", Status: StatusAbsent}},
	})
	require.NoError(t, err)

	p := progressOf(t, coord, "u1")
	assert.Equal(t, 0, p.TotalPresent)
	assert.Equal(t, 1, p.TotalAbsent)
	assert.Equal(t, 0, p.AttendanceRate)
	assert.Len(t, p.AttendanceHistory, 1)

	e := rosterEntryOf(t, store, "u1")
	assert.Equal(t, 0, e.TotalPresent)
	assert.Equal(t, 1, e.TotalAbsent)
}

func TestRecordAttendanceIdenticalRepeatIsIdempotent(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	id, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, Date: date,
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	require.NoError(t, err)

	// update dengan isi identik dua kali: delta nol, counter tidak bergerak
	for i := 0; i < 2; i++ {
		_, err = coord.RecordAttendance(ctx, RecordAttendanceInput{
			CourseID: testCourse, BatchID: testBatch, RecordID: id, Date: date,
			Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
		})
		require.NoError(t, err)
	}

	p := progressOf(t, coord, "u1")
	assert.Equal(t, 1, p.TotalPresent)
	assert.Equal(t, 0, p.TotalAbsent)
	assert.Equal(t, 100, p.AttendanceRate)
	assert.Len(t, p.AttendanceHistory, 1)

	e := rosterEntryOf(t, store, "u1")
	assert.Equal(t, 1, e.TotalPresent)
	assert.Equal(t, 0, e.TotalAbsent)
}

func TestRecordAttendanceRejectsNonRosterMember(t *testing.T) {
	ctx, _, coord := seedWorld(t)
	_, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "penyusup", Status: StatusPresent}},
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "penyusup")
}

func TestRecordAttendanceValidation(t *testing.T) {
	ctx, _, coord := seedWorld(t)

	_, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: "late"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, RecordID: "99-99-99-" + testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAttendanceReversesEverything(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	id, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch, Date: date,
		Students: []StudentDetail{
			{StudentID: "u1", Status: StatusPresent},
			{StudentID: "u2", Status: StatusAbsent},
		},
	})
	require.NoError(t, err)

	require.NoError(t, coord.DeleteAttendance(ctx, id))

	_, err = store.Get(ctx, ColAttendance, id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	for _, u := range []string{"u1", "u2"} {
		p := progressOf(t, coord, u)
		assert.Zero(t, p.TotalPresent, u)
		assert.Zero(t, p.TotalAbsent, u)
		assert.Zero(t, p.AttendanceRate, u)
		assert.Empty(t, p.AttendanceHistory, u)

		e := rosterEntryOf(t, store, u)
		assert.Zero(t, e.TotalPresent, u)
		assert.Zero(t, e.TotalAbsent, u)
	}

	assert.ErrorIs(t, coord.DeleteAttendance(ctx, id), ErrNotFound)
}

/* =========================
   Assignments
========================= */

func TestSubmitAssignmentPropagates(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)

	require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", "u1", 80, time.Now()))

	p := progressOf(t, coord, "u1")
	assert.Equal(t, 80, p.AverageScore)
	require.Len(t, p.AssignmentHistory, 1)
	assert.Equal(t, docID+"/quiz", p.AssignmentHistory[0].AssignmentID)

	assert.Equal(t, []float64{80}, rosterEntryOf(t, store, "u1").Scores)

	raw, err := store.Get(ctx, ColAssignments, docID)
	require.NoError(t, err)
	var doc AssignmentDoc
	require.NoError(t, docstore.DataTo(raw, &doc))
	require.Len(t, doc.Assignments["quiz"].Submissions, 1)
	assert.Equal(t, "u1", doc.Assignments["quiz"].Submissions[0].TraineeID)
}

func TestSubmitAssignmentDuplicateIsConflict(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)

	require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", "u1", 80, time.Now()))
	err := coord.SubmitAssignment(ctx, docID, "quiz", "u1", 95, time.Now())
	assert.ErrorIs(t, err, ErrConflict)

	// tidak ada double count di mana pun
	assert.Equal(t, 80, progressOf(t, coord, "u1").AverageScore)
	assert.Equal(t, []float64{80}, rosterEntryOf(t, store, "u1").Scores)
}

func TestSubmitAssignmentUnknownTargets(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)

	assert.ErrorIs(t, coord.SubmitAssignment(ctx, "99-99-99-x-y-z", "quiz", "u1", 80, time.Now()), ErrNotFound)
	assert.ErrorIs(t, coord.SubmitAssignment(ctx, docID, "uts", "u1", 80, time.Now()), ErrNotFound)
}

func TestDeleteAssignmentLastOneRemovesDocument(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)
	require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", "u1", 80, time.Now()))

	require.NoError(t, coord.DeleteAssignment(ctx, docID, "quiz"))

	_, err := store.Get(ctx, ColAssignments, docID)
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	// kontribusi dibalikkan
	p := progressOf(t, coord, "u1")
	assert.Zero(t, p.AverageScore)
	assert.Empty(t, p.AssignmentHistory)
	assert.Empty(t, rosterEntryOf(t, store, "u1").Scores)
}

func TestDeleteAssignmentKeepsSiblings(t *testing.T) {
	ctx, store, coord := seedWorld(t)
	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)
	seedAssignment(t, ctx, store, docID, "uts", 50)
	require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", "u1", 80, time.Now()))
	require.NoError(t, coord.SubmitAssignment(ctx, docID, "uts", "u1", 25, time.Now()))

	require.NoError(t, coord.DeleteAssignment(ctx, docID, "uts"))

	raw, err := store.Get(ctx, ColAssignments, docID)
	require.NoError(t, err)
	var doc AssignmentDoc
	require.NoError(t, docstore.DataTo(raw, &doc))
	_, hasQuiz := doc.Assignments["quiz"]
	_, hasUTS := doc.Assignments["uts"]
	assert.True(t, hasQuiz)
	assert.False(t, hasUTS)

	assert.Equal(t, 80, progressOf(t, coord, "u1").AverageScore)
}

// slowStore menunda Get, meniru latensi baca backend sungguhan.
type slowStore struct {
	*docstore.MemStore
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	time.Sleep(s.delay)
	return s.MemStore.Get(ctx, collection, id)
}

func TestDeleteAssignmentReversesAllRosterScores(t *testing.T) {
	ctx := context.Background()
	store := &slowStore{MemStore: docstore.NewMemStore(), delay: 5 * time.Millisecond}
	coord := NewCoordinator(store, nil)

	batchDoc, err := docstore.DataFrom(BatchDoc{
		BaseID: "B-FD-25", CourseID: testCourse,
		Entries: []BatchEntry{{Key: "k-a", Suffix: "A", Name: "Batch Pagi"}},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, ColBatches, "B-FD-25", batchDoc))

	ids := []string{"u1", "u2", "u3", "u4"}
	for _, id := range ids {
		userDoc, derr := docstore.DataFrom(UserDoc{
			UserID: id, Name: "Trainee " + id, Email: id + "@mail.test", Role: "trainee",
			Courses: map[string]CourseProgress{},
		})
		require.NoError(t, derr)
		require.NoError(t, store.Set(ctx, ColUsers, id, userDoc))
		require.NoError(t, coord.EnrollTrainee(ctx, EnrollInput{
			UserID: id, Name: "Trainee " + id, Email: id + "@mail.test",
			CourseID: testCourse, BatchID: testBatch, EnrolledAt: time.Now(),
		}))
	}

	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)
	for _, id := range ids {
		require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", id, 80, time.Now()))
	}

	require.NoError(t, coord.DeleteAssignment(ctx, docID, "quiz"))

	// semua entri skor terbalikkan; rewrite roster tidak boleh saling
	// menimpa meski read-nya lambat
	raw, err := store.Get(ctx, ColRosters, testBatch)
	require.NoError(t, err)
	var roster RosterDoc
	require.NoError(t, docstore.DataTo(raw, &roster))
	require.Len(t, roster.Students, len(ids))
	for _, s := range roster.Students {
		assert.Emptyf(t, s.Scores, "skor trainee %s tidak terbalikkan", s.UserID)
	}
}

/* =========================
   Reconcile
========================= */

func TestReconcileRebuildsFromSourceRecords(t *testing.T) {
	ctx, store, coord := seedWorld(t)

	_, err := coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: StatusPresent}},
	})
	require.NoError(t, err)
	_, err = coord.RecordAttendance(ctx, RecordAttendanceInput{
		CourseID: testCourse, BatchID: testBatch,
		Date:     time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
		Students: []StudentDetail{{StudentID: "u1", Status: StatusAbsent}},
	})
	require.NoError(t, err)

	docID := "01-02-25-" + testBatch
	seedAssignment(t, ctx, store, docID, "quiz", 100)
	require.NoError(t, coord.SubmitAssignment(ctx, docID, "quiz", "u1", 80, time.Now()))

	want := progressOf(t, coord, "u1")

	// korupsi aggregate secara sengaja
	require.NoError(t, store.Update(ctx, ColUsers, "u1", map[string]any{
		"courses." + testCourse + ".total_present":      99,
		"courses." + testCourse + ".attendance_rate":    1,
		"courses." + testCourse + ".average_score":      1,
		"courses." + testCourse + ".attendance_history": []any{},
	}))

	got, err := coord.Reconcile(ctx, "u1", testCourse)
	require.NoError(t, err)
	assert.Equal(t, want.TotalPresent, got.TotalPresent)
	assert.Equal(t, want.TotalAbsent, got.TotalAbsent)
	assert.Equal(t, want.AttendanceRate, got.AttendanceRate)
	assert.Equal(t, want.AverageScore, got.AverageScore)
	assert.Len(t, got.AttendanceHistory, 2)
	assert.Len(t, got.AssignmentHistory, 1)

	// hasil ditulis balik ke dokumen user
	assert.Equal(t, want.TotalPresent, progressOf(t, coord, "u1").TotalPresent)
}

func TestReconcileUnknownEnrollment(t *testing.T) {
	ctx, _, coord := seedWorld(t)
	_, err := coord.Reconcile(ctx, "u1", "course-lain")
	assert.ErrorIs(t, err, ErrNotFound)
}
