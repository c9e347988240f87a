// file: internals/features/catalog/courses/model/course_model.go
package model

import "time"

type CourseThumbnail struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// CourseDoc: satu course di katalog (collection "courses").
type CourseDoc struct {
	CourseID    string           `json:"course_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	// harga dalam minor units (sen)
	Price     int64            `json:"price"`
	Currency  string           `json:"currency"`
	Active    bool             `json:"active"`
	Thumbnail *CourseThumbnail `json:"thumbnail,omitempty"`
	CreatedBy string           `json:"created_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
