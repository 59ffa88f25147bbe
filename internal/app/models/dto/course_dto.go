package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// CourseSubmission is the JSON payload of the multipart "data" field on
// POST /api/submitCourse. Any client-supplied status is ignored; submissions
// always start Pending.
type CourseSubmission struct {
	Title                 string             `json:"title"`
	Department            string             `json:"department"`
	Category              string             `json:"category"`
	Units                 int                `json:"units"`
	Semester              string             `json:"semester"`
	Status                string             `json:"status"` // ignored
	ContactEmail          string             `json:"contact_email"`
	Website               *string            `json:"website"`
	Description           string             `json:"description"`
	FacultySponsorName    string             `json:"faculty_sponsor_name"`
	FacultySponsorEmail   string             `json:"faculty_sponsor_email"`
	EnrollmentInformation *string            `json:"enrollment_information"`
	ApplicationURL        *string            `json:"application_url"`
	ApplicationDueDate    *string            `json:"application_due_date"`
	TimeToComplete        *string            `json:"time_to_complete"`
	Syllabus              *string            `json:"syllabus"`
	Sections              []SectionInput     `json:"sections"`
	Facilitators          []FacilitatorInput `json:"facilitators"`
}

// SectionInput is one meeting pattern in a submission.
type SectionInput struct {
	SectionType      string  `json:"section_type"`
	EnrollmentStatus string  `json:"enrollment_status"`
	Day              string  `json:"day"`
	Time             string  `json:"time"`
	Room             string  `json:"room"`
	Capacity         *int    `json:"capacity"`
	StartDate        *string `json:"start_date"`
	CCNLowerDiv      *string `json:"ccn_ld"`
	CCNUpperDiv      *string `json:"ccn_ud"`
	Notes            *string `json:"notes"`
}

// FacilitatorInput is one named co-instructor in a submission.
type FacilitatorInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicCourse is the sanitized course shape served to unauthenticated
// readers. It carries no moderation state, no document references and no
// faculty sponsor email.
type PublicCourse struct {
	ID                    uuid.UUID                  `json:"id"`
	Semester              string                     `json:"semester"`
	Title                 string                     `json:"title"`
	Department            string                     `json:"department"`
	Category              models.CourseCategory      `json:"category"`
	Units                 int                        `json:"units"`
	ContactEmail          string                     `json:"contact_email"`
	Website               *string                    `json:"website,omitempty"`
	Description           string                     `json:"description"`
	FacultySponsorName    string                     `json:"faculty_sponsor_name"`
	EnrollmentInformation *string                    `json:"enrollment_information,omitempty"`
	ApplicationURL        *string                    `json:"application_url,omitempty"`
	ApplicationDueDate    *string                    `json:"application_due_date,omitempty"`
	TimeToComplete        *string                    `json:"time_to_complete,omitempty"`
	Sections              []models.CourseSection     `json:"sections"`
	Facilitators          []models.CourseFacilitator `json:"facilitators"`
}

// NewPublicCourse sanitizes a course for the public read path.
func NewPublicCourse(course *models.Course) PublicCourse {
	return PublicCourse{
		ID:                    course.ID,
		Semester:              course.Semester,
		Title:                 course.Title,
		Department:            course.Department,
		Category:              course.Category,
		Units:                 course.Units,
		ContactEmail:          course.ContactEmail,
		Website:               course.Website,
		Description:           course.Description,
		FacultySponsorName:    course.FacultySponsorName,
		EnrollmentInformation: course.EnrollmentInformation,
		ApplicationURL:        course.ApplicationURL,
		ApplicationDueDate:    course.ApplicationDueDate,
		TimeToComplete:        course.TimeToComplete,
		Sections:              nonNilSections(course.Sections),
		Facilitators:          nonNilFacilitators(course.Facilitators),
	}
}

// CrossValidationSummary is the tri-state roster-match outcome on the wire.
// Match is null when the lookup itself failed, which is distinct from false.
type CrossValidationSummary struct {
	Match          *bool                  `json:"match"`
	ApprovedCourse *models.ApprovedCourse `json:"approvedCourse,omitempty"`
}

// ModeratorCourse is the enriched course shape served to moderators: the
// full record plus child rows and a cross-validation outcome recomputed at
// read time.
type ModeratorCourse struct {
	ID                    uuid.UUID                  `json:"id"`
	Semester              string                     `json:"semester"`
	Status                models.CourseStatus        `json:"status"`
	Title                 string                     `json:"title"`
	Department            string                     `json:"department"`
	Category              models.CourseCategory      `json:"category"`
	Units                 int                        `json:"units"`
	ContactEmail          string                     `json:"contact_email"`
	Website               *string                    `json:"website,omitempty"`
	Description           string                     `json:"description"`
	FacultySponsorName    string                     `json:"faculty_sponsor_name"`
	FacultySponsorEmail   string                     `json:"faculty_sponsor_email"`
	EnrollmentInformation *string                    `json:"enrollment_information,omitempty"`
	ApplicationURL        *string                    `json:"application_url,omitempty"`
	ApplicationDueDate    *string                    `json:"application_due_date,omitempty"`
	TimeToComplete        *string                    `json:"time_to_complete,omitempty"`
	CrossReferenceSuccess *bool                      `json:"cross_reference_success,omitempty"`
	CrossValidation       CrossValidationSummary     `json:"crossValidation"`
	CPF                   string                     `json:"cpf"`
	Syllabus              *string                    `json:"syllabus,omitempty"`
	SyllabusURL           *string                    `json:"syllabus_url,omitempty"`
	Sections              []models.CourseSection     `json:"sections"`
	Facilitators          []models.CourseFacilitator `json:"facilitators"`
	CreatedAt             time.Time                  `json:"created_at"`
}

// NewModeratorCourse builds the enriched moderator row.
func NewModeratorCourse(course *models.Course, validation CrossValidationSummary) ModeratorCourse {
	return ModeratorCourse{
		ID:                    course.ID,
		Semester:              course.Semester,
		Status:                course.Status,
		Title:                 course.Title,
		Department:            course.Department,
		Category:              course.Category,
		Units:                 course.Units,
		ContactEmail:          course.ContactEmail,
		Website:               course.Website,
		Description:           course.Description,
		FacultySponsorName:    course.FacultySponsorName,
		FacultySponsorEmail:   course.FacultySponsorEmail,
		EnrollmentInformation: course.EnrollmentInformation,
		ApplicationURL:        course.ApplicationURL,
		ApplicationDueDate:    course.ApplicationDueDate,
		TimeToComplete:        course.TimeToComplete,
		CrossReferenceSuccess: course.CrossReferenceSuccess,
		CrossValidation:       validation,
		CPF:                   course.CPF,
		Syllabus:              course.Syllabus,
		SyllabusURL:           course.SyllabusURL,
		Sections:              nonNilSections(course.Sections),
		Facilitators:          nonNilFacilitators(course.Facilitators),
		CreatedAt:             course.CreatedAt,
	}
}

// The frontend expects empty arrays, not null, for child collections.
func nonNilSections(sections []models.CourseSection) []models.CourseSection {
	if sections == nil {
		return []models.CourseSection{}
	}
	return sections
}

func nonNilFacilitators(facilitators []models.CourseFacilitator) []models.CourseFacilitator {
	if facilitators == nil {
		return []models.CourseFacilitator{}
	}
	return facilitators
}
