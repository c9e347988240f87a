// file: internals/features/catalog/batches/dto/batch_dto.go
package dto

type BatchEntryRequest struct {
	Suffix    string `json:"suffix" validate:"required,alphanum,max=8"`
	Name      string `json:"name" validate:"required,min=3,max=120"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Schedule  string `json:"schedule" validate:"max=200"`
}

type CreateBatchRequest struct {
	// base id format <prefix>-<code>-<year>, mis. "B-FD-25"
	BaseID   string              `json:"base_id" validate:"required,max=40"`
	CourseID string              `json:"course_id" validate:"required,uuid4"`
	Entries  []BatchEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type AddBatchEntryRequest struct {
	Entry BatchEntryRequest `json:"entry" validate:"required"`
}

// ResolveBatchResponse: hasil translasi id komposit -> lokasi storage.
type ResolveBatchResponse struct {
	BatchID  string `json:"batch_id"`
	BaseID   string `json:"base_id"`
	Suffix   string `json:"suffix"`
	FieldKey string `json:"field_key"`
	Name     string `json:"name"`
}
