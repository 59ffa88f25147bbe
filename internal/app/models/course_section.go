package models

import "github.com/google/uuid"

// CourseSection defines one meeting pattern of a course, based on the
// 'course_sections' table. Sections are created in bulk at submission time
// and never updated afterwards.
type CourseSection struct {
	ID               int64     `json:"id" db:"id"`
	CourseID         uuid.UUID `json:"course_id" db:"course_id"`
	SectionType      string    `json:"section_type" db:"section_type"`
	EnrollmentStatus string    `json:"enrollment_status" db:"enrollment_status"` // free text, commonly Open/Waitlist/Full
	Day              string    `json:"day" db:"day"`
	Time             string    `json:"time" db:"time"`
	Room             string    `json:"room" db:"room"`
	Capacity         *int      `json:"capacity,omitempty" db:"capacity"`
	StartDate        *string   `json:"start_date,omitempty" db:"start_date"`
	CCNLowerDiv      *string   `json:"ccn_ld,omitempty" db:"ccn_ld"` // catalog number, lower division
	CCNUpperDiv      *string   `json:"ccn_ud,omitempty" db:"ccn_ud"` // catalog number, upper division
	Notes            *string   `json:"notes,omitempty" db:"notes"`
}
