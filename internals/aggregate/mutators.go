// file: internals/aggregate/mutators.go
package aggregate

import "math"

/* =========================
   Aggregate Mutators
=========================
Fungsi murni tanpa I/O: hitung nilai aggregate berikutnya dari state
sebelumnya + satu event. Kebijakan numerik: round half-up ke integer;
pembagi 0 menghasilkan 0 (bukan NaN/error).
*/

// RoundHalfUp membulatkan ke integer terdekat, .5 ke atas.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func attendanceRate(present, absent int) int {
	total := present + absent
	if total == 0 {
		return 0
	}
	return RoundHalfUp(100 * float64(present) / float64(total))
}

// averageScore: mean dari (score/totalMarks*100) — entri dengan
// totalMarks <= 0 tidak ikut numerator maupun denominator.
func averageScore(history []AssignmentMark) int {
	var sum float64
	var n int
	for _, m := range history {
		if m.TotalMarks > 0 {
			sum += m.Score / m.TotalMarks * 100
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return RoundHalfUp(sum / float64(n))
}

func cloneProgress(p CourseProgress) CourseProgress {
	next := p
	next.AttendanceHistory = append([]AttendanceMark(nil), p.AttendanceHistory...)
	next.AssignmentHistory = append([]AssignmentMark(nil), p.AssignmentHistory...)
	return next
}

func findAttendanceMark(history []AttendanceMark, date string) int {
	for i, m := range history {
		if m.Date == date {
			return i
		}
	}
	return -1
}

// ApplyAttendance menerapkan satu event kehadiran ke aggregate.
// Entri history per tanggal maksimal satu: bila entri untuk tanggal itu
// sudah ada, penerapan ulang mengganti entri dan memindahkan satu unit
// antar counter bila status berubah, tidak pernah menambah lagi, apa pun
// nilai isFirstForDate.
func ApplyAttendance(prior CourseProgress, mark AttendanceMark, isFirstForDate bool) CourseProgress {
	next := cloneProgress(prior)
	idx := findAttendanceMark(next.AttendanceHistory, mark.Date)

	if idx < 0 {
		next.AttendanceHistory = append(next.AttendanceHistory, mark)
		if mark.Status == StatusPresent {
			next.TotalPresent++
		} else {
			next.TotalAbsent++
		}
	} else {
		prev := next.AttendanceHistory[idx]
		if prev.Status != mark.Status {
			if mark.Status == StatusPresent {
				next.TotalPresent++
				next.TotalAbsent = floorZero(next.TotalAbsent - 1)
			} else {
				next.TotalAbsent++
				next.TotalPresent = floorZero(next.TotalPresent - 1)
			}
		}
		next.AttendanceHistory[idx] = mark
	}

	next.AttendanceRate = attendanceRate(next.TotalPresent, next.TotalAbsent)
	return next
}

// ReverseAttendance membalikkan kontribusi entri untuk satu tanggal:
// entri dibuang, counter sesuai status tersimpan diturunkan (floor 0).
func ReverseAttendance(prior CourseProgress, date string) CourseProgress {
	next := cloneProgress(prior)
	idx := findAttendanceMark(next.AttendanceHistory, date)
	if idx < 0 {
		return next
	}

	removed := next.AttendanceHistory[idx]
	next.AttendanceHistory = append(next.AttendanceHistory[:idx], next.AttendanceHistory[idx+1:]...)
	if removed.Status == StatusPresent {
		next.TotalPresent = floorZero(next.TotalPresent - 1)
	} else {
		next.TotalAbsent = floorZero(next.TotalAbsent - 1)
	}

	next.AttendanceRate = attendanceRate(next.TotalPresent, next.TotalAbsent)
	return next
}

// ApplyAssignmentScore upsert-by-assignmentId ke history, lalu hitung ulang
// average.
func ApplyAssignmentScore(prior CourseProgress, mark AssignmentMark) CourseProgress {
	next := cloneProgress(prior)

	replaced := false
	for i, m := range next.AssignmentHistory {
		if m.AssignmentID == mark.AssignmentID {
			next.AssignmentHistory[i] = mark
			replaced = true
			break
		}
	}
	if !replaced {
		next.AssignmentHistory = append(next.AssignmentHistory, mark)
	}

	next.AverageScore = averageScore(next.AssignmentHistory)
	return next
}

// ReverseAssignmentScore membuang entri by id, hitung ulang average.
func ReverseAssignmentScore(prior CourseProgress, assignmentID string) CourseProgress {
	next := cloneProgress(prior)
	for i, m := range next.AssignmentHistory {
		if m.AssignmentID == assignmentID {
			next.AssignmentHistory = append(next.AssignmentHistory[:i], next.AssignmentHistory[i+1:]...)
			break
		}
	}
	next.AverageScore = averageScore(next.AssignmentHistory)
	return next
}

/* =========================
   Mutator roster (per-batch)
=========================
Roster hanya menyimpan raw counter & array nilai, tanpa persentase.
*/

func cloneRosterEntry(e RosterEntry) RosterEntry {
	next := e
	next.Scores = append([]float64(nil), e.Scores...)
	return next
}

// ApplyRosterAttendance: prevStatus nil = record baru (increment saja);
// non-nil = update record tanggal yang sama (pindahkan satu unit bila
// status berubah).
func ApplyRosterAttendance(entry RosterEntry, prevStatus *AttendanceStatus, status AttendanceStatus) RosterEntry {
	next := cloneRosterEntry(entry)

	if prevStatus == nil {
		if status == StatusPresent {
			next.TotalPresent++
		} else {
			next.TotalAbsent++
		}
		return next
	}

	if *prevStatus == status {
		return next
	}
	if status == StatusPresent {
		next.TotalPresent++
		next.TotalAbsent = floorZero(next.TotalAbsent - 1)
	} else {
		next.TotalAbsent++
		next.TotalPresent = floorZero(next.TotalPresent - 1)
	}
	return next
}

// ReverseRosterAttendance menurunkan counter sesuai status tersimpan.
func ReverseRosterAttendance(entry RosterEntry, status AttendanceStatus) RosterEntry {
	next := cloneRosterEntry(entry)
	if status == StatusPresent {
		next.TotalPresent = floorZero(next.TotalPresent - 1)
	} else {
		next.TotalAbsent = floorZero(next.TotalAbsent - 1)
	}
	return next
}

// ApplyRosterScore menambahkan nilai mentah ke array scores.
func ApplyRosterScore(entry RosterEntry, score float64) RosterEntry {
	next := cloneRosterEntry(entry)
	next.Scores = append(next.Scores, score)
	return next
}

// ReverseRosterScore membuang satu kemunculan nilai (yang pertama cocok).
func ReverseRosterScore(entry RosterEntry, score float64) RosterEntry {
	next := cloneRosterEntry(entry)
	for i, s := range next.Scores {
		if s == score {
			next.Scores = append(next.Scores[:i], next.Scores[i+1:]...)
			break
		}
	}
	return next
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
