package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseStatus is the moderation state of a submitted course.
type CourseStatus string

const (
	// StatusPending is the initial state of every submission.
	StatusPending CourseStatus = "Pending"
	// StatusActive means the course was approved and is publicly listed.
	StatusActive CourseStatus = "Active"
	// StatusRejected means the course was rejected with feedback.
	StatusRejected CourseStatus = "Rejected"
)

// CourseCategory enumerates the program's course categories.
type CourseCategory string

const (
	CategoryPublication     CourseCategory = "Publication"
	CategoryHealth          CourseCategory = "Health"
	CategoryEnvironment     CourseCategory = "Environment"
	CategoryCultural        CourseCategory = "Cultural"
	CategoryPoliticalSocial CourseCategory = "Political/Social"
	CategoryMedia           CourseCategory = "Media"
	CategoryProfessionalBiz CourseCategory = "Professional/Business"
	CategoryFood            CourseCategory = "Food"
)

// Course defines the course model based on the 'courses' table. Field names
// on the wire keep the snake_case shape the frontend already consumes.
type Course struct {
	ID                    uuid.UUID      `json:"id" db:"id"`
	Title                 string         `json:"title" db:"title"`
	Department            string         `json:"department" db:"department"`
	Category              CourseCategory `json:"category" db:"category"`
	Units                 int            `json:"units" db:"units"` // 1 or 2
	Semester              string         `json:"semester" db:"semester"`
	Status                CourseStatus   `json:"status" db:"status"`
	ContactEmail          string         `json:"contact_email" db:"contact_email"`
	Website               *string        `json:"website,omitempty" db:"website"`
	Description           string         `json:"description" db:"description"`
	FacultySponsorName    string         `json:"faculty_sponsor_name" db:"faculty_sponsor_name"`
	FacultySponsorEmail   string         `json:"faculty_sponsor_email" db:"faculty_sponsor_email"`
	EnrollmentInformation *string        `json:"enrollment_information,omitempty" db:"enrollment_information"`
	ApplicationURL        *string        `json:"application_url,omitempty" db:"application_url"`
	ApplicationDueDate    *string        `json:"application_due_date,omitempty" db:"application_due_date"`
	TimeToComplete        *string        `json:"time_to_complete,omitempty" db:"time_to_complete"`
	CPF                   string         `json:"cpf" db:"cpf"`                             // proposal-form document URL
	Syllabus              *string        `json:"syllabus,omitempty" db:"syllabus"`         // inline syllabus content (legacy)
	SyllabusURL           *string        `json:"syllabus_url,omitempty" db:"syllabus_url"` // syllabus document URL
	CrossReferenceSuccess *bool          `json:"cross_reference_success,omitempty" db:"cross_reference_success"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`

	// Relations (populated when needed)
	Sections     []CourseSection     `json:"sections,omitempty"`
	Facilitators []CourseFacilitator `json:"facilitators,omitempty"`
}
