// file: internals/aggregate/types.go
package aggregate

import "time"

/* =========================
   Status kehadiran
========================= */

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

/* =========================
   Aggregate per (user, course)
=========================
Tersimpan di dokumen user pada field courses.{courseId}. Seluruh nilai
derived harus bisa dihitung ulang dari union AttendanceDoc + AssignmentDoc
(lihat Reconcile).
*/

// AttendanceMark: satu entri history kehadiran. Maksimal satu entri per
// (user, course, date); date format DD-MM-YY.
type AttendanceMark struct {
	Date    string           `json:"date"`
	Status  AttendanceStatus `json:"status"`
	BatchID string           `json:"batch_id"`
}

// AssignmentMark: satu entri history nilai tugas, key unik per assignment
// ("<docID>/<assignmentName>").
type AssignmentMark struct {
	AssignmentID   string  `json:"assignment_id"`
	AssignmentName string  `json:"assignment_name"`
	Score          float64 `json:"score"`
	TotalMarks     float64 `json:"total_marks"`
}

type CourseProgress struct {
	CourseID   string    `json:"course_id"`
	BatchID    string    `json:"batch_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Status     string    `json:"status"`

	TotalPresent      int              `json:"total_present"`
	TotalAbsent       int              `json:"total_absent"`
	AttendanceRate    int              `json:"attendance_rate"`
	AttendanceHistory []AttendanceMark `json:"attendance_history"`

	AverageScore      int              `json:"average_score"`
	AssignmentHistory []AssignmentMark `json:"assignment_history"`

	Progress int `json:"progress"`
}

/* =========================
   Dokumen sumber & roster
========================= */

// RosterEntry: satu trainee di dokumen roster per-batch.
type RosterEntry struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Scores       []float64 `json:"scores"`
	TotalPresent int       `json:"total_present"`
	TotalAbsent  int       `json:"total_absent"`
}

type RosterDoc struct {
	BatchID  string        `json:"batch_id"`
	CourseID string        `json:"course_id"`
	Students []RosterEntry `json:"students"`
}

type StudentDetail struct {
	StudentID string           `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceDoc: satu record per (date, batch), id DD-MM-YY-<batchID>.
type AttendanceDoc struct {
	CourseID        string          `json:"course_id"`
	BatchID         string          `json:"batch_id"`
	Date            string          `json:"date"`
	StudentDetails  []StudentDetail `json:"student_details"`
	TotalStudents   int             `json:"total_students"`
	PresentStudents int             `json:"present_students"`
	AbsentStudents  int             `json:"absent_students"`
	CreatedBy       string          `json:"created_by,omitempty"`
	UpdatedBy       string          `json:"updated_by,omitempty"`
}

type Submission struct {
	TraineeID   string    `json:"trainee_id"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// AssignmentRecord: satu tugas, disimpan sebagai field bernama di dalam
// dokumen per-(date,batch); beberapa tugas bisa berbagi satu dokumen.
type AssignmentRecord struct {
	AssignmentName string       `json:"assignment_name"`
	CourseID       string       `json:"course_id"`
	BatchID        string       `json:"batch_id"`
	TotalMarks     float64      `json:"total_marks"`
	Submissions    []Submission `json:"submissions"`
	CreatedBy      string       `json:"created_by,omitempty"`
}

// AssignmentDoc: dokumen harian per batch, id DD-MM-YY-<batchID>.
type AssignmentDoc struct {
	CourseID    string                      `json:"course_id"`
	BatchID     string                      `json:"batch_id"`
	Date        string                      `json:"date"`
	Assignments map[string]AssignmentRecord `json:"assignments"`
}

// UserDoc: dokumen profil user; aggregate per course hidup di field
// courses.{courseId}.
type UserDoc struct {
	UserID       string                    `json:"user_id"`
	Name         string                    `json:"name"`
	Email        string                    `json:"email"`
	Role         string                    `json:"role"`
	PasswordHash string                    `json:"password_hash,omitempty"`
	Courses      map[string]CourseProgress `json:"courses"`
	CreatedAt    time.Time                 `json:"created_at"`
}

/* =========================
   Dokumen batch (base + entries)
=========================
Redesign dari skema lama "field apa pun yang punya atribut suffix":
entries eksplisit, identifier komposit base-suffix hanya hidup di
boundary API (Encode/DecodeBatchID).
*/

type BatchEntry struct {
	Key       string `json:"key"`
	Suffix    string `json:"suffix"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	Schedule  string `json:"schedule,omitempty"`
}

type BatchDoc struct {
	BaseID   string       `json:"base_id"`
	CourseID string       `json:"course_id"`
	Entries  []BatchEntry `json:"entries"`
}
