package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/cache"
	"github.com/berkeley-decal/decal-portal/internal/pkg/email"
	"github.com/berkeley-decal/decal-portal/internal/pkg/objectstorage"
)

// ModerationService drives the Pending -> Active/Rejected state machine and
// the moderator read paths. All moderation endpoints sit behind the admin
// gate; this service assumes the caller is already authorized.
type ModerationService struct {
	courses      CourseStore
	sections     SectionStore
	facilitators FacilitatorStore
	validator    *CrossValidator
	store        objectstorage.Store
	notifier     email.Notifier
	cache        *cache.TTLCache
	listTTL      time.Duration
	logger       zerolog.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(
	courses CourseStore,
	sections SectionStore,
	facilitators FacilitatorStore,
	validator *CrossValidator,
	store objectstorage.Store,
	notifier email.Notifier,
	ttlCache *cache.TTLCache,
	listTTL time.Duration,
	logger zerolog.Logger,
) *ModerationService {
	return &ModerationService{
		courses:      courses,
		sections:     sections,
		facilitators: facilitators,
		validator:    validator,
		store:        store,
		notifier:     notifier,
		cache:        ttlCache,
		listTTL:      listTTL,
		logger:       logger,
	}
}

// Approve moves a Pending course to Active and notifies the facilitators.
// The transition is a conditional update, so two moderators racing on the
// same course cannot both succeed.
func (s *ModerationService) Approve(ctx context.Context, id uuid.UUID, facilitatorEmails []string) (*models.Course, error) {
	course, err := s.transition(ctx, id, models.StatusActive)
	if err != nil {
		return nil, err
	}

	// Both list views change: the course leaves the review queue and
	// enters the public catalog.
	s.cache.Invalidate(cacheKeyApprovedCourses, cacheKeyUnapprovedCourses)

	recipients := s.recipients(facilitatorEmails, course)
	if err := s.notifier.SendApprovalEmail(recipients, course.Title); err != nil {
		// The transition already committed; a mail failure must not
		// surface as a moderation error.
		s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to send approval email")
	}

	return course, nil
}

// Reject moves a Pending course to Rejected and sends the review feedback
// to the facilitators. Feedback is mandatory; a rejection without it fails
// before any state changes.
func (s *ModerationService) Reject(ctx context.Context, id uuid.UUID, feedback string, facilitatorEmails []string) (*models.Course, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, apperrors.NewValidationError("feedback is required when rejecting a course")
	}

	course, err := s.transition(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}

	// Rejection only changes the review queue; the public catalog never
	// contained this course.
	s.cache.Invalidate(cacheKeyUnapprovedCourses)

	recipients := s.recipients(facilitatorEmails, course)
	if err := s.notifier.SendRejectionEmail(recipients, course.Title, feedback); err != nil {
		s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to send rejection email")
	}

	return course, nil
}

// transition performs the existence check and the conditional status update.
// A missing course is NotFound; an existing course that is no longer
// Pending is a state conflict, whether seen up front or lost to a race.
func (s *ModerationService) transition(ctx context.Context, id uuid.UUID, to models.CourseStatus) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
		}
		return nil, apperrors.NewUpstreamError("failed to load course", err)
	}

	if course.Status != models.StatusPending {
		return nil, apperrors.NewCustomError(apperrors.ErrStateConflict,
			"course has already been "+strings.ToLower(string(course.Status)))
	}

	updated, err := s.courses.UpdateStatusFromPending(ctx, id, to)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotPending) {
			return nil, apperrors.NewCustomError(apperrors.ErrStateConflict, "course is no longer pending")
		}
		return nil, apperrors.NewUpstreamError("failed to update course status", err)
	}

	return updated, nil
}

// recipients picks the notification targets: the explicit facilitator list
// when the moderator supplied one, else the course contact email.
func (s *ModerationService) recipients(facilitatorEmails []string, course *models.Course) []string {
	emails := make([]string, 0, len(facilitatorEmails))
	for _, e := range facilitatorEmails {
		if strings.TrimSpace(e) != "" {
			emails = append(emails, e)
		}
	}
	if len(emails) > 0 {
		return emails
	}
	return []string{course.ContactEmail}
}

// ListForReview returns every course, any status, newest first, enriched
// with child rows and a freshly computed cross-validation outcome. The
// result is memoized briefly; the second return reports a cache hit.
func (s *ModerationService) ListForReview(ctx context.Context) ([]dto.ModeratorCourse, bool, error) {
	if payload, ok := s.cache.Get(cacheKeyUnapprovedCourses); ok {
		return payload.([]dto.ModeratorCourse), true, nil
	}

	courses, err := s.courses.GetAll(ctx, "")
	if err != nil {
		return nil, false, apperrors.NewUpstreamError("failed to load courses", err)
	}

	result := make([]dto.ModeratorCourse, 0, len(courses))
	for _, course := range courses {
		s.attachChildren(ctx, course)
		outcome := s.validator.Validate(ctx, course.FacultySponsorEmail, course.Semester)
		result = append(result, dto.NewModeratorCourse(course, outcome.Summary()))
	}

	s.cache.Set(cacheKeyUnapprovedCourses, result, s.listTTL)
	return result, false, nil
}

// DownloadCPF streams a course's proposal-form PDF out of object storage.
// The object path is derived from the stored document URL, never from
// client input.
func (s *ModerationService) DownloadCPF(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return "", nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
		}
		return "", nil, apperrors.NewUpstreamError("failed to load course", err)
	}

	if course.CPF == "" {
		return "", nil, apperrors.NewNotFoundError("course has no CPF document")
	}

	objectPath, err := cpfObjectPath(course.CPF)
	if err != nil {
		return "", nil, err
	}

	content, err := s.store.Download(ctx, objectPath)
	if err != nil {
		return "", nil, apperrors.NewUpstreamError("failed to download CPF file", err)
	}

	filename := objectPath[strings.LastIndex(objectPath, "/")+1:]
	return filename, content, nil
}

// cpfObjectPath extracts the storage object path from a stored CPF URL.
func cpfObjectPath(cpfURL string) (string, error) {
	marker := "/cpf-forms/"
	idx := strings.Index(cpfURL, marker)
	if idx < 0 {
		return "", apperrors.NewNotFoundError("course CPF reference is malformed")
	}
	return "cpf-forms/" + cpfURL[idx+len(marker):], nil
}

// attachChildren loads sections and facilitators onto the course. Child
// lookups are best-effort reads; a failure leaves the slice empty.
func (s *ModerationService) attachChildren(ctx context.Context, course *models.Course) {
	sections, err := s.sections.GetByCourseID(ctx, course.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to load course sections")
	} else {
		course.Sections = sections
	}

	facilitators, err := s.facilitators.GetByCourseID(ctx, course.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to load course facilitators")
	} else {
		course.Facilitators = facilitators
	}
}
