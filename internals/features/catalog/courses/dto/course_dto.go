// file: internals/features/catalog/courses/dto/course_dto.go
package dto

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Price       int64  `json:"price" validate:"gte=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// Patch semantics: field nil = tidak diubah.
type UpdateCourseRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
	Active      *bool   `json:"active"`
}
