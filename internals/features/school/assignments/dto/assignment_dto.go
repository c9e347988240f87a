// file: internals/features/school/assignments/dto/assignment_dto.go
package dto

type CreateAssignmentRequest struct {
	AssignmentName string  `json:"assignment_name" validate:"required,max=100,excludes=."`
	CourseID       string  `json:"course_id" validate:"required,uuid4"`
	BatchID        string  `json:"batch_id" validate:"required"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalMarks     float64 `json:"total_marks" validate:"gte=0"`
}

type SubmitScoreRequest struct {
	TraineeID string  `json:"trainee_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
}

type SubmitSelfRequest struct {
	Score float64 `json:"score" validate:"gte=0"`
}

type CreateAssignmentResponse struct {
	DocID          string `json:"doc_id"`
	AssignmentName string `json:"assignment_name"`
}
