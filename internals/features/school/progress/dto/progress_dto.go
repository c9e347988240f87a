// file: internals/features/school/progress/dto/progress_dto.go
package dto

type EnrollRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required,uuid4"`
	BatchID  string `json:"batch_id" validate:"required"`
}

type ReconcileRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
}
