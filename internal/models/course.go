package models

import "time"

// Course represents a course in the catalog
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCourseRequest represents a request to create a course
//
// Description and Category must be present in the payload but may be empty.
// Lengths are capped at the column sizes of the courses table.
type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"required,max=4194303"`
	Category    *string `json:"category" validate:"required,max=100"`
}

// ApplyDefaults is a no-op, courses have no optional fields.
func (r *CreateCourseRequest) ApplyDefaults() {}

// ToCourse builds a course record from the request
func (r *CreateCourseRequest) ToCourse() *Course {
	course := &Course{Title: r.Title}
	if r.Description != nil {
		course.Description = *r.Description
	}
	if r.Category != nil {
		course.Category = *r.Category
	}
	return course
}
