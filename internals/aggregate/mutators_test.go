// file: internals/aggregate/mutators_test.go
package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 0, RoundHalfUp(0.4))
	assert.Equal(t, 1, RoundHalfUp(0.5))
	assert.Equal(t, 67, RoundHalfUp(66.666))
	assert.Equal(t, 84, RoundHalfUp(83.5))
}

func TestApplyAttendanceFirstMark(t *testing.T) {
	next := ApplyAttendance(CourseProgress{}, AttendanceMark{Date: "01-02-25", Status: StatusPresent, BatchID: "B-FD-25-A"}, true)

	assert.Equal(t, 1, next.TotalPresent)
	assert.Equal(t, 0, next.TotalAbsent)
	assert.Equal(t, 100, next.AttendanceRate)
	assert.Len(t, next.AttendanceHistory, 1)
}

func TestApplyAttendanceStatusFlipTransfersCounter(t *testing.T) {
	p := ApplyAttendance(CourseProgress{}, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, true)
	assert.Equal(t, 100, p.AttendanceRate)

	// update tanggal yang sama: present -> absent, bukan duplikasi entri
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusAbsent}, false)
	assert.Equal(t, 0, p.TotalPresent)
	assert.Equal(t, 1, p.TotalAbsent)
	assert.Equal(t, 0, p.AttendanceRate)
	assert.Len(t, p.AttendanceHistory, 1)
	assert.Equal(t, StatusAbsent, p.AttendanceHistory[0].Status)
}

func TestApplyAttendanceSameStatusUpdateIsIdempotent(t *testing.T) {
	p := ApplyAttendance(CourseProgress{}, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, true)
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, false)

	assert.Equal(t, 1, p.TotalPresent)
	assert.Len(t, p.AttendanceHistory, 1)
}

func TestApplyAttendanceSameDateRewriteTransfersEvenWhenFirst(t *testing.T) {
	// rewrite record yang sama: isFirstForDate tetap true (tidak ada record
	// lain untuk tanggal itu) padahal entri history sudah ada — counter
	// harus pindah, bukan bertambah
	p := ApplyAttendance(CourseProgress{}, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, true)
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusAbsent}, true)

	assert.Equal(t, 0, p.TotalPresent)
	assert.Equal(t, 1, p.TotalAbsent)
	assert.Equal(t, 0, p.AttendanceRate)
	assert.Len(t, p.AttendanceHistory, 1)

	// penerapan identik berulang juga tidak menggeser apa pun
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusAbsent}, true)
	assert.Equal(t, 0, p.TotalPresent)
	assert.Equal(t, 1, p.TotalAbsent)
	assert.Len(t, p.AttendanceHistory, 1)
}

func TestApplyAttendanceRateRounding(t *testing.T) {
	var p CourseProgress
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, true)
	p = ApplyAttendance(p, AttendanceMark{Date: "02-02-25", Status: StatusPresent}, true)
	p = ApplyAttendance(p, AttendanceMark{Date: "03-02-25", Status: StatusAbsent}, true)

	// 2/3 = 66.67 -> 67
	assert.Equal(t, 67, p.AttendanceRate)
}

func TestReverseAttendanceRestoresCounters(t *testing.T) {
	var p CourseProgress
	p = ApplyAttendance(p, AttendanceMark{Date: "01-02-25", Status: StatusPresent}, true)
	p = ApplyAttendance(p, AttendanceMark{Date: "02-02-25", Status: StatusAbsent}, true)

	p = ReverseAttendance(p, "02-02-25")
	assert.Equal(t, 1, p.TotalPresent)
	assert.Equal(t, 0, p.TotalAbsent)
	assert.Equal(t, 100, p.AttendanceRate)
	assert.Len(t, p.AttendanceHistory, 1)

	// reverse tanggal yang tidak ada = no-op
	q := ReverseAttendance(p, "09-09-25")
	assert.Equal(t, p.TotalPresent, q.TotalPresent)
	assert.Len(t, q.AttendanceHistory, 1)
}

func TestReverseAttendanceFloorsAtZero(t *testing.T) {
	p := CourseProgress{AttendanceHistory: []AttendanceMark{{Date: "01-02-25", Status: StatusPresent}}}
	// counter sudah 0 (state korup); reverse tidak boleh negatif
	p = ReverseAttendance(p, "01-02-25")
	assert.Equal(t, 0, p.TotalPresent)
	assert.Equal(t, 0, p.TotalAbsent)
	assert.Equal(t, 0, p.AttendanceRate)
}

func TestApplyAssignmentScoreAverage(t *testing.T) {
	var p CourseProgress
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/quiz", Score: 80, TotalMarks: 100})
	assert.Equal(t, 80, p.AverageScore)

	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/uts", Score: 10, TotalMarks: 50})
	// (80% + 20%) / 2 = 50
	assert.Equal(t, 50, p.AverageScore)
	assert.Len(t, p.AssignmentHistory, 2)
}

func TestApplyAssignmentScoreUpsertsByID(t *testing.T) {
	var p CourseProgress
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/quiz", Score: 40, TotalMarks: 100})
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/quiz", Score: 90, TotalMarks: 100})

	assert.Len(t, p.AssignmentHistory, 1)
	assert.Equal(t, 90, p.AverageScore)
}

func TestAverageScoreSkipsZeroTotalMarks(t *testing.T) {
	var p CourseProgress
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/ungraded", Score: 5, TotalMarks: 0})
	// tidak ada entri yang gradable -> 0, bukan NaN
	assert.Equal(t, 0, p.AverageScore)

	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/quiz", Score: 80, TotalMarks: 100})
	// entri totalMarks=0 keluar dari pembagi juga
	assert.Equal(t, 80, p.AverageScore)
}

func TestReverseAssignmentScoreRoundTrip(t *testing.T) {
	var p CourseProgress
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/quiz", Score: 80, TotalMarks: 100})
	p = ApplyAssignmentScore(p, AssignmentMark{AssignmentID: "d1/uts", Score: 25, TotalMarks: 50})

	p = ReverseAssignmentScore(p, "d1/uts")
	assert.Len(t, p.AssignmentHistory, 1)
	assert.Equal(t, 80, p.AverageScore)

	p = ReverseAssignmentScore(p, "d1/quiz")
	assert.Empty(t, p.AssignmentHistory)
	assert.Equal(t, 0, p.AverageScore)
}

func TestMutatorsDoNotMutateInput(t *testing.T) {
	prior := CourseProgress{
		TotalPresent:      1,
		AttendanceHistory: []AttendanceMark{{Date: "01-02-25", Status: StatusPresent}},
	}
	_ = ApplyAttendance(prior, AttendanceMark{Date: "01-02-25", Status: StatusAbsent}, false)

	assert.Equal(t, 1, prior.TotalPresent)
	assert.Equal(t, StatusPresent, prior.AttendanceHistory[0].Status)
}

func TestRosterAttendanceMutators(t *testing.T) {
	e := RosterEntry{UserID: "u1"}

	e = ApplyRosterAttendance(e, nil, StatusPresent)
	assert.Equal(t, 1, e.TotalPresent)

	prev := StatusPresent
	e = ApplyRosterAttendance(e, &prev, StatusAbsent)
	assert.Equal(t, 0, e.TotalPresent)
	assert.Equal(t, 1, e.TotalAbsent)

	same := StatusAbsent
	e = ApplyRosterAttendance(e, &same, StatusAbsent)
	assert.Equal(t, 1, e.TotalAbsent)

	e = ReverseRosterAttendance(e, StatusAbsent)
	assert.Equal(t, 0, e.TotalAbsent)
	e = ReverseRosterAttendance(e, StatusAbsent)
	assert.Equal(t, 0, e.TotalAbsent) // floor 0
}

func TestRosterScoreMutators(t *testing.T) {
	e := RosterEntry{UserID: "u1", Scores: []float64{80}}

	e = ApplyRosterScore(e, 80)
	assert.Equal(t, []float64{80, 80}, e.Scores)

	// hanya satu kemunculan yang dibuang
	e = ReverseRosterScore(e, 80)
	assert.Equal(t, []float64{80}, e.Scores)

	e = ReverseRosterScore(e, 99)
	assert.Equal(t, []float64{80}, e.Scores)
}
