package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// Services defined in this package:
// - SubmissionService: validates and persists incoming course proposals
// - CrossValidator: matches proposals against the pre-approved roster
// - ModerationService: approve/reject state machine and moderator reads
// - CatalogService: public, cache-aware course reads

// Cache keys for the two memoized list reads. Moderation transitions
// invalidate these; the TTLs are only a backstop.
const (
	cacheKeyApprovedCourses   = "approvedCourses"
	cacheKeyUnapprovedCourses = "unapprovedCourses"
)

// CourseStore is the course persistence surface the services need.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetAll(ctx context.Context, status models.CourseStatus) ([]*models.Course, error)
	UpdateStatusFromPending(ctx context.Context, id uuid.UUID, to models.CourseStatus) (*models.Course, error)
	SetCrossReference(ctx context.Context, id uuid.UUID, success bool) error
}

// SectionStore persists and loads course sections.
type SectionStore interface {
	CreateBulk(ctx context.Context, courseID uuid.UUID, sections []models.CourseSection) error
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseSection, error)
}

// FacilitatorStore persists and loads course facilitators.
type FacilitatorStore interface {
	CreateBulk(ctx context.Context, courseID uuid.UUID, facilitators []models.CourseFacilitator) error
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseFacilitator, error)
}

// RosterStore reads the pre-approved instructor roster.
type RosterStore interface {
	FindByInstructorEmail(ctx context.Context, email, semester string) ([]models.ApprovedCourse, error)
}

// SemesterStore reads the known semester tokens.
type SemesterStore interface {
	GetCurrent(ctx context.Context) (string, error)
	GetAll(ctx context.Context) ([]string, error)
}
