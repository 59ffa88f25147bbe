package models

import "github.com/google/uuid"

// CourseFacilitator defines one named co-instructor of a course, based on
// the 'course_facilitators' table.
type CourseFacilitator struct {
	ID       int64     `json:"id" db:"id"`
	CourseID uuid.UUID `json:"course_id" db:"course_id"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
}
