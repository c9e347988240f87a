// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

type StudentStatusRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent"`
}

type RecordAttendanceRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
	BatchID  string `json:"batch_id" validate:"required"`
	// record_id terisi = update record tersebut; kosong = create untuk date.
	RecordID string                 `json:"record_id"`
	Date     string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Students []StudentStatusRequest `json:"student_details" validate:"required,min=1,dive"`
}

type RecordAttendanceResponse struct {
	RecordID string `json:"record_id"`
}
