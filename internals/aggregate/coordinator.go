// file: internals/aggregate/coordinator.go
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"pelatihanku_backend/internals/docstore"
)

/* =========================
   Propagation Coordinator
=========================
Satu event masuk -> pipeline pendek:
Validate -> Locate -> Mutate-primary (wajib, sinkron) -> Propagate-secondary
(best-effort, dijalankan sebagai grup konkuren lalu di-join).

Primary write yang gagal membatalkan operasi. Secondary write yang gagal
di-log + di-enqueue ke outbox untuk repair; request tetap sukses. Primary
yang sudah commit tidak pernah di-rollback.
*/

type Coordinator struct {
	Store  docstore.Store
	Outbox *Outbox // boleh nil: propagasi gagal hanya di-log
}

func NewCoordinator(store docstore.Store, outbox *Outbox) *Coordinator {
	return &Coordinator{Store: store, Outbox: outbox}
}

/* =========================
   Grup propagasi best-effort
========================= */

type propagation struct {
	label    string
	userID   string
	courseID string
	fn       func(ctx context.Context) error
}

// propagate menjalankan semua task konkuren, join sebelum return.
// Error tidak pernah dikembalikan ke caller.
func (c *Coordinator) propagate(ctx context.Context, tasks []propagation) {
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t propagation) {
			defer wg.Done()
			if err := t.fn(ctx); err != nil {
				log.Printf("[AGGREGATE] propagasi %s gagal (user=%s course=%s): %v", t.label, t.userID, t.courseID, err)
				if c.Outbox != nil && t.userID != "" && t.courseID != "" {
					if qerr := c.Outbox.Enqueue(ctx, t.userID, t.courseID, t.label+": "+err.Error()); qerr != nil {
						log.Printf("[AGGREGATE] enqueue outbox gagal: %v", qerr)
					}
				}
			}
		}(t)
	}
	wg.Wait()
}

/* =========================
   Akses dokumen derived
========================= */

func (c *Coordinator) getUser(ctx context.Context, userID string) (UserDoc, error) {
	raw, err := c.Store.Get(ctx, ColUsers, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return UserDoc{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return UserDoc{}, err
	}
	var user UserDoc
	if err := docstore.DataTo(raw, &user); err != nil {
		return UserDoc{}, err
	}
	return user, nil
}

// GetUser dipakai layer HTTP untuk membaca profil + aggregate user.
func (c *Coordinator) GetUser(ctx context.Context, userID string) (UserDoc, error) {
	return c.getUser(ctx, userID)
}

func (c *Coordinator) getRoster(ctx context.Context, batchID string) (RosterDoc, error) {
	raw, err := c.Store.Get(ctx, ColRosters, batchID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return RosterDoc{}, fmt.Errorf("%w: roster for batch %s", ErrNotFound, batchID)
		}
		return RosterDoc{}, err
	}
	var roster RosterDoc
	if err := docstore.DataTo(raw, &roster); err != nil {
		return RosterDoc{}, err
	}
	return roster, nil
}

func findRosterEntry(roster RosterDoc, userID string) int {
	for i, s := range roster.Students {
		if s.UserID == userID {
			return i
		}
	}
	return -1
}

// updateProgress: read-modify-write aggregate courses.{courseId} milik satu
// user lewat mutator murni.
func (c *Coordinator) updateProgress(ctx context.Context, userID, courseID string, mutate func(CourseProgress) CourseProgress) error {
	user, err := c.getUser(ctx, userID)
	if err != nil {
		return err
	}
	prior, ok := user.Courses[courseID]
	if !ok {
		return fmt.Errorf("%w: user %s is not enrolled in course %s", ErrNotFound, userID, courseID)
	}
	next := mutate(prior)
	doc, err := docstore.DataFrom(next)
	if err != nil {
		return err
	}
	return c.Store.Update(ctx, ColUsers, userID, map[string]any{
		"courses." + courseID: doc,
	})
}

// writeRosterStudents menulis ulang array students (satu write).
func (c *Coordinator) writeRosterStudents(ctx context.Context, batchID string, students []RosterEntry) error {
	arr := make([]any, 0, len(students))
	for _, s := range students {
		doc, err := docstore.DataFrom(s)
		if err != nil {
			return err
		}
		arr = append(arr, doc)
	}
	return c.Store.Update(ctx, ColRosters, batchID, map[string]any{"students": arr})
}

/* =========================
   SubmitAssignment
========================= */

// SubmitAssignment menambahkan submission trainee ke satu assignment.
// Duplikat = ErrConflict (bukan no-op): submit tidak aman untuk di-retry.
func (c *Coordinator) SubmitAssignment(ctx context.Context, docID, assignmentName, traineeID string, score float64, now time.Time) error {
	raw, err := c.Store.Get(ctx, ColAssignments, docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: assignment document %s", ErrNotFound, docID)
		}
		return err
	}
	var doc AssignmentDoc
	if err := docstore.DataTo(raw, &doc); err != nil {
		return err
	}
	rec, ok := doc.Assignments[assignmentName]
	if !ok {
		return fmt.Errorf("%w: assignment %q in document %s", ErrNotFound, assignmentName, docID)
	}
	for _, s := range rec.Submissions {
		if s.TraineeID == traineeID {
			return fmt.Errorf("%w: trainee %s already submitted %q", ErrConflict, traineeID, assignmentName)
		}
	}

	// primary: append submission ke record assignment (satu update)
	subs := append(append([]Submission(nil), rec.Submissions...), Submission{
		TraineeID:   traineeID,
		Score:       score,
		SubmittedAt: now,
	})
	subsDoc := make([]any, 0, len(subs))
	for _, s := range subs {
		d, derr := docstore.DataFrom(s)
		if derr != nil {
			return derr
		}
		subsDoc = append(subsDoc, d)
	}
	if err := c.Store.Update(ctx, ColAssignments, docID, map[string]any{
		"assignments." + assignmentName + ".submissions": subsDoc,
	}); err != nil {
		return err
	}

	// secondary: roster scores + aggregate progress (best-effort)
	mark := AssignmentMark{
		AssignmentID:   docID + "/" + assignmentName,
		AssignmentName: assignmentName,
		Score:          score,
		TotalMarks:     rec.TotalMarks,
	}
	c.propagate(ctx, []propagation{
		{
			label: "roster-score", userID: traineeID, courseID: rec.CourseID,
			fn: func(ctx context.Context) error {
				roster, rerr := c.getRoster(ctx, rec.BatchID)
				if rerr != nil {
					return rerr
				}
				idx := findRosterEntry(roster, traineeID)
				if idx < 0 {
					return fmt.Errorf("%w: trainee %s not in roster %s", ErrNotFound, traineeID, rec.BatchID)
				}
				roster.Students[idx] = ApplyRosterScore(roster.Students[idx], score)
				return c.writeRosterStudents(ctx, rec.BatchID, roster.Students)
			},
		},
		{
			label: "progress-score", userID: traineeID, courseID: rec.CourseID,
			fn: func(ctx context.Context) error {
				return c.updateProgress(ctx, traineeID, rec.CourseID, func(p CourseProgress) CourseProgress {
					return ApplyAssignmentScore(p, mark)
				})
			},
		},
	})
	return nil
}

/* =========================
   DeleteAssignment
========================= */

// DeleteAssignment menghapus satu assignment; bila itu satu-satunya field
// assignment di dokumen induknya, seluruh dokumen ikut dihapus. Kontribusi
// setiap submission ke aggregate dibalikkan best-effort per trainee.
func (c *Coordinator) DeleteAssignment(ctx context.Context, docID, assignmentName string) error {
	raw, err := c.Store.Get(ctx, ColAssignments, docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: assignment document %s", ErrNotFound, docID)
		}
		return err
	}
	var doc AssignmentDoc
	if err := docstore.DataTo(raw, &doc); err != nil {
		return err
	}
	rec, ok := doc.Assignments[assignmentName]
	if !ok {
		return fmt.Errorf("%w: assignment %q in document %s", ErrNotFound, assignmentName, docID)
	}

	// primary: hapus field atau seluruh dokumen
	if len(doc.Assignments) == 1 {
		if err := c.Store.Delete(ctx, ColAssignments, docID); err != nil {
			return err
		}
	} else {
		if err := c.Store.Update(ctx, ColAssignments, docID, map[string]any{
			"assignments." + assignmentName: docstore.Delete,
		}); err != nil {
			return err
		}
	}

	// reverse roster score semua submission, mirror dari DeleteAttendance:
	// satu read + satu write, bukan per-submission (roster-nya dokumen yang
	// sama, rewrite paralel saling menimpa)
	if len(rec.Submissions) > 0 {
		if roster, rerr := c.getRoster(ctx, rec.BatchID); rerr == nil {
			for _, sub := range rec.Submissions {
				idx := findRosterEntry(roster, sub.TraineeID)
				if idx < 0 {
					continue
				}
				roster.Students[idx] = ReverseRosterScore(roster.Students[idx], sub.Score)
			}
			if werr := c.writeRosterStudents(ctx, rec.BatchID, roster.Students); werr != nil {
				log.Printf("[AGGREGATE] reverse roster score gagal (batch=%s): %v", rec.BatchID, werr)
				c.enqueueSubmissions(ctx, rec.Submissions, rec.CourseID, "reverse-roster-score: "+werr.Error())
			}
		} else {
			log.Printf("[AGGREGATE] roster %s tidak bisa dimuat saat delete assignment: %v", rec.BatchID, rerr)
			c.enqueueSubmissions(ctx, rec.Submissions, rec.CourseID, "reverse-roster-score: "+rerr.Error())
		}
	}

	assignmentID := docID + "/" + assignmentName
	tasks := make([]propagation, 0, len(rec.Submissions))
	for _, sub := range rec.Submissions {
		sub := sub
		tasks = append(tasks, propagation{
			label: "reverse-progress-score", userID: sub.TraineeID, courseID: rec.CourseID,
			fn: func(ctx context.Context) error {
				return c.updateProgress(ctx, sub.TraineeID, rec.CourseID, func(p CourseProgress) CourseProgress {
					return ReverseAssignmentScore(p, assignmentID)
				})
			},
		})
	}
	c.propagate(ctx, tasks)
	return nil
}

func (c *Coordinator) enqueueSubmissions(ctx context.Context, subs []Submission, courseID, cause string) {
	if c.Outbox == nil {
		return
	}
	for _, sub := range subs {
		if err := c.Outbox.Enqueue(ctx, sub.TraineeID, courseID, cause); err != nil {
			log.Printf("[AGGREGATE] enqueue outbox gagal: %v", err)
		}
	}
}

/* =========================
   RecordAttendance
========================= */

type RecordAttendanceInput struct {
	CourseID string
	BatchID  string
	// RecordID terisi = update record yang sudah ada (intent eksplisit dari
	// caller); kosong = create untuk tanggal Date.
	RecordID string
	Date     time.Time
	Students []StudentDetail
	Actor    string
}

// RecordAttendance meng-upsert satu AttendanceRecord lalu mem-propagasi
// counter ke roster (batch atomik) dan aggregate tiap trainee (best-effort).
func (c *Coordinator) RecordAttendance(ctx context.Context, in RecordAttendanceInput) (string, error) {
	if len(in.Students) == 0 {
		return "", fmt.Errorf("%w: student_details must not be empty", ErrValidation)
	}
	for _, s := range in.Students {
		if !s.Status.Valid() {
			return "", fmt.Errorf("%w: invalid status %q for student %s", ErrValidation, s.Status, s.StudentID)
		}
	}

	// semua student harus anggota roster saat ini
	roster, err := c.getRoster(ctx, in.BatchID)
	if err != nil {
		return "", err
	}
	var offending []string
	for _, s := range in.Students {
		if findRosterEntry(roster, s.StudentID) < 0 {
			offending = append(offending, s.StudentID)
		}
	}
	if len(offending) > 0 {
		return "", fmt.Errorf("%w: not roster members: %s", ErrConflict, strings.Join(offending, ", "))
	}

	isUpdate := in.RecordID != ""
	var docID, datePart string
	prevStatus := map[string]AttendanceStatus{}

	if isUpdate {
		docID = in.RecordID
		datePart = DatePart(docID)
		raw, gerr := c.Store.Get(ctx, ColAttendance, docID)
		if gerr != nil {
			if errors.Is(gerr, docstore.ErrNotFound) {
				return "", fmt.Errorf("%w: attendance record %s", ErrNotFound, docID)
			}
			return "", gerr
		}
		var prior AttendanceDoc
		if derr := docstore.DataTo(raw, &prior); derr != nil {
			return "", derr
		}
		for _, d := range prior.StudentDetails {
			prevStatus[d.StudentID] = d.Status
		}
	} else {
		docID = DailyRecordID(in.Date, in.BatchID)
		datePart = in.Date.Format(DateLayout)
	}

	isFirst, err := IsFirstForDate(ctx, c.Store, ColAttendance, in.BatchID, datePart, docID)
	if err != nil {
		return "", err
	}

	present, absent := 0, 0
	for _, s := range in.Students {
		if s.Status == StatusPresent {
			present++
		} else {
			absent++
		}
	}

	// primary: upsert AttendanceRecord (satu write)
	if isUpdate {
		details := make([]any, 0, len(in.Students))
		for _, s := range in.Students {
			d, derr := docstore.DataFrom(s)
			if derr != nil {
				return "", derr
			}
			details = append(details, d)
		}
		if uerr := c.Store.Update(ctx, ColAttendance, docID, map[string]any{
			"student_details":  details,
			"total_students":   len(in.Students),
			"present_students": present,
			"absent_students":  absent,
			"updated_by":       in.Actor,
		}); uerr != nil {
			return "", uerr
		}
	} else {
		full := AttendanceDoc{
			CourseID:        in.CourseID,
			BatchID:         in.BatchID,
			Date:            datePart,
			StudentDetails:  in.Students,
			TotalStudents:   len(in.Students),
			PresentStudents: present,
			AbsentStudents:  absent,
			CreatedBy:       in.Actor,
		}
		doc, derr := docstore.DataFrom(full)
		if derr != nil {
			return "", derr
		}
		if serr := c.Store.Set(ctx, ColAttendance, docID, doc); serr != nil {
			return "", serr
		}
	}

	// roster: counter semua trainee di-update dalam satu commit
	for _, s := range in.Students {
		idx := findRosterEntry(roster, s.StudentID)
		var prev *AttendanceStatus
		if isUpdate {
			if ps, ok := prevStatus[s.StudentID]; ok {
				ps := ps
				prev = &ps
			}
		}
		roster.Students[idx] = ApplyRosterAttendance(roster.Students[idx], prev, s.Status)
	}
	if rerr := c.commitRosterBatch(ctx, in.BatchID, roster.Students); rerr != nil {
		log.Printf("[AGGREGATE] roster batch attendance gagal (batch=%s): %v", in.BatchID, rerr)
		c.enqueueAll(ctx, in.Students, in.CourseID, "roster-attendance: "+rerr.Error())
	}

	// aggregate per trainee: best-effort group
	tasks := make([]propagation, 0, len(in.Students))
	for _, s := range in.Students {
		s := s
		mark := AttendanceMark{Date: datePart, Status: s.Status, BatchID: in.BatchID}
		tasks = append(tasks, propagation{
			label: "progress-attendance", userID: s.StudentID, courseID: in.CourseID,
			fn: func(ctx context.Context) error {
				return c.updateProgress(ctx, s.StudentID, in.CourseID, func(p CourseProgress) CourseProgress {
					return ApplyAttendance(p, mark, isFirst)
				})
			},
		})
	}
	c.propagate(ctx, tasks)

	return docID, nil
}

func (c *Coordinator) commitRosterBatch(ctx context.Context, batchID string, students []RosterEntry) error {
	arr := make([]any, 0, len(students))
	for _, s := range students {
		doc, err := docstore.DataFrom(s)
		if err != nil {
			return err
		}
		arr = append(arr, doc)
	}
	batch := c.Store.Batch()
	batch.Update(ColRosters, batchID, map[string]any{"students": arr})
	return batch.Commit(ctx)
}

func (c *Coordinator) enqueueAll(ctx context.Context, students []StudentDetail, courseID, cause string) {
	if c.Outbox == nil {
		return
	}
	for _, s := range students {
		if err := c.Outbox.Enqueue(ctx, s.StudentID, courseID, cause); err != nil {
			log.Printf("[AGGREGATE] enqueue outbox gagal: %v", err)
		}
	}
}

/* =========================
   DeleteAttendance
========================= */

// DeleteAttendance membalikkan kontribusi satu record (counter symmetry)
// lalu menghapus record-nya.
func (c *Coordinator) DeleteAttendance(ctx context.Context, recordID string) error {
	raw, err := c.Store.Get(ctx, ColAttendance, recordID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: attendance record %s", ErrNotFound, recordID)
		}
		return err
	}
	var doc AttendanceDoc
	if err := docstore.DataTo(raw, &doc); err != nil {
		return err
	}

	// reverse roster counter, mirror dari create (satu commit)
	if roster, rerr := c.getRoster(ctx, doc.BatchID); rerr == nil {
		for _, d := range doc.StudentDetails {
			idx := findRosterEntry(roster, d.StudentID)
			if idx < 0 {
				continue
			}
			roster.Students[idx] = ReverseRosterAttendance(roster.Students[idx], d.Status)
		}
		if berr := c.commitRosterBatch(ctx, doc.BatchID, roster.Students); berr != nil {
			log.Printf("[AGGREGATE] reverse roster attendance gagal (batch=%s): %v", doc.BatchID, berr)
			c.enqueueAll(ctx, doc.StudentDetails, doc.CourseID, "reverse-roster-attendance: "+berr.Error())
		}
	} else {
		log.Printf("[AGGREGATE] roster %s tidak bisa dimuat saat delete attendance: %v", doc.BatchID, rerr)
	}

	// reverse aggregate tiap trainee
	datePart := doc.Date
	if datePart == "" {
		datePart = DatePart(recordID)
	}
	tasks := make([]propagation, 0, len(doc.StudentDetails))
	for _, d := range doc.StudentDetails {
		d := d
		tasks = append(tasks, propagation{
			label: "reverse-progress-attendance", userID: d.StudentID, courseID: doc.CourseID,
			fn: func(ctx context.Context) error {
				return c.updateProgress(ctx, d.StudentID, doc.CourseID, func(p CourseProgress) CourseProgress {
					return ReverseAttendance(p, datePart)
				})
			},
		})
	}
	c.propagate(ctx, tasks)

	// terakhir: hapus record sumber
	return c.Store.Delete(ctx, ColAttendance, recordID)
}

/* =========================
   EnrollTrainee (CompletePayment step 2-4 & manual entry)
========================= */

type EnrollInput struct {
	UserID     string
	Name       string
	Email      string
	CourseID   string
	BatchID    string
	EnrolledAt time.Time
}

// EnrollTrainee membuat enrollment record + seed aggregate nol untuk user,
// lalu menambahkan trainee ke roster (array-union, idempoten di storage).
// Tidak ada jaminan atomik lintas dokumen.
func (c *Coordinator) EnrollTrainee(ctx context.Context, in EnrollInput) error {
	if _, _, err := ResolveBatch(ctx, c.Store, in.BatchID); err != nil {
		return err
	}

	user, err := c.getUser(ctx, in.UserID)
	if err != nil {
		return err
	}

	// primary: enrollment record + aggregate nol (idempoten: enrollment yang
	// sudah ada tidak di-reset)
	if _, enrolled := user.Courses[in.CourseID]; !enrolled {
		seed := CourseProgress{
			CourseID:          in.CourseID,
			BatchID:           in.BatchID,
			EnrolledAt:        in.EnrolledAt,
			Status:            "active",
			AttendanceHistory: []AttendanceMark{},
			AssignmentHistory: []AssignmentMark{},
		}
		doc, derr := docstore.DataFrom(seed)
		if derr != nil {
			return derr
		}
		if uerr := c.Store.Update(ctx, ColUsers, in.UserID, map[string]any{
			"courses." + in.CourseID: doc,
		}); uerr != nil {
			return uerr
		}
	}

	// secondary: roster membership (best-effort)
	c.propagate(ctx, []propagation{{
		label: "roster-enroll", userID: in.UserID, courseID: in.CourseID,
		fn: func(ctx context.Context) error {
			return c.addToRoster(ctx, in)
		},
	}})
	return nil
}

func (c *Coordinator) addToRoster(ctx context.Context, in EnrollInput) error {
	entry := RosterEntry{
		UserID: in.UserID,
		Name:   in.Name,
		Email:  in.Email,
		Scores: []float64{},
	}
	entryDoc, err := docstore.DataFrom(entry)
	if err != nil {
		return err
	}

	roster, err := c.getRoster(ctx, in.BatchID)
	if errors.Is(err, ErrNotFound) {
		fresh := RosterDoc{BatchID: in.BatchID, CourseID: in.CourseID, Students: []RosterEntry{entry}}
		doc, derr := docstore.DataFrom(fresh)
		if derr != nil {
			return derr
		}
		return c.Store.Set(ctx, ColRosters, in.BatchID, doc)
	}
	if err != nil {
		return err
	}
	if findRosterEntry(roster, in.UserID) >= 0 {
		return nil // sudah terdaftar; jangan reset counter
	}
	return c.Store.Update(ctx, ColRosters, in.BatchID, map[string]any{
		"students": docstore.ArrayUnion(entryDoc),
	})
}

/* =========================
   Reconcile (backfill)
========================= */

// Reconcile menghitung ulang satu CourseProgress dari nol dengan me-replay
// seluruh record attendance + assignment milik batch user tsb lewat mutator
// murni, lalu menulis hasilnya. Konsumen: outbox worker dan endpoint
// backfill manual.
func (c *Coordinator) Reconcile(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	user, err := c.getUser(ctx, userID)
	if err != nil {
		return CourseProgress{}, err
	}
	prior, ok := user.Courses[courseID]
	if !ok {
		return CourseProgress{}, fmt.Errorf("%w: user %s is not enrolled in course %s", ErrNotFound, userID, courseID)
	}

	next := CourseProgress{
		CourseID:          prior.CourseID,
		BatchID:           prior.BatchID,
		EnrolledAt:        prior.EnrolledAt,
		Status:            prior.Status,
		Progress:          prior.Progress,
		AttendanceHistory: []AttendanceMark{},
		AssignmentHistory: []AssignmentMark{},
	}

	// replay attendance
	attSnaps, err := c.Store.Query(ctx, ColAttendance, map[string]any{"batch_id": prior.BatchID}, 0)
	if err != nil {
		return CourseProgress{}, err
	}
	sort.Slice(attSnaps, func(i, j int) bool { return attSnaps[i].ID < attSnaps[j].ID })
	for _, snap := range attSnaps {
		var rec AttendanceDoc
		if derr := docstore.DataTo(snap.Data, &rec); derr != nil {
			continue
		}
		date := rec.Date
		if date == "" {
			date = DatePart(snap.ID)
		}
		for _, d := range rec.StudentDetails {
			if d.StudentID == userID {
				next = ApplyAttendance(next, AttendanceMark{Date: date, Status: d.Status, BatchID: rec.BatchID}, false)
			}
		}
	}

	// replay assignments
	asgSnaps, err := c.Store.Query(ctx, ColAssignments, map[string]any{"batch_id": prior.BatchID}, 0)
	if err != nil {
		return CourseProgress{}, err
	}
	for _, snap := range asgSnaps {
		var doc AssignmentDoc
		if derr := docstore.DataTo(snap.Data, &doc); derr != nil {
			continue
		}
		names := make([]string, 0, len(doc.Assignments))
		for name := range doc.Assignments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rec := doc.Assignments[name]
			for _, sub := range rec.Submissions {
				if sub.TraineeID == userID {
					next = ApplyAssignmentScore(next, AssignmentMark{
						AssignmentID:   snap.ID + "/" + name,
						AssignmentName: name,
						Score:          sub.Score,
						TotalMarks:     rec.TotalMarks,
					})
				}
			}
		}
	}

	doc, err := docstore.DataFrom(next)
	if err != nil {
		return CourseProgress{}, err
	}
	if err := c.Store.Update(ctx, ColUsers, userID, map[string]any{
		"courses." + courseID: doc,
	}); err != nil {
		return CourseProgress{}, err
	}
	return next, nil
}
