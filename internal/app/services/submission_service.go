package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/objectstorage"
	"github.com/berkeley-decal/decal-portal/internal/pkg/validation"
)

// Attachment is one uploaded PDF, decoupled from the HTTP multipart layer.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// SubmissionRequest is a complete incoming proposal: the JSON payload plus
// the proposal-form and syllabus attachments.
type SubmissionRequest struct {
	Data     dto.CourseSubmission
	CPF      *Attachment
	Syllabus *Attachment
}

// SubmissionResult is the persisted course plus the cross-validation
// outcome and any best-effort child-row failures the caller may inspect.
type SubmissionResult struct {
	Course            *models.Course
	Validation        Outcome
	SectionsError     error
	FacilitatorsError error
}

// SubmissionService handles course proposal intake: validation, attachment
// storage, persistence and cross-validation, in that order. Validation runs
// before any external call so a rejected submission leaves no side effects.
type SubmissionService struct {
	courses      CourseStore
	sections     SectionStore
	facilitators FacilitatorStore
	semesters    SemesterStore
	store        objectstorage.Store
	validator    *CrossValidator
	logger       zerolog.Logger

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	courses CourseStore,
	sections SectionStore,
	facilitators FacilitatorStore,
	semesters SemesterStore,
	store objectstorage.Store,
	validator *CrossValidator,
	logger zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		courses:      courses,
		sections:     sections,
		facilitators: facilitators,
		semesters:    semesters,
		store:        store,
		validator:    validator,
		logger:       logger,
		now:          time.Now,
	}
}

// validateRequest checks attachments and textual fields, fail-fast in order.
func (s *SubmissionService) validateRequest(req *SubmissionRequest) error {
	if req.CPF == nil {
		return apperrors.NewCustomError(apperrors.ErrMissingAttachment, "CPF file is required")
	}
	if req.CPF.ContentType != "application/pdf" {
		return apperrors.NewCustomError(apperrors.ErrInvalidAttachment, "CPF file must be a PDF")
	}
	if req.Syllabus == nil {
		return apperrors.NewCustomError(apperrors.ErrMissingAttachment, "Syllabus file is required")
	}
	if req.Syllabus.ContentType != "application/pdf" {
		return apperrors.NewCustomError(apperrors.ErrInvalidAttachment, "Syllabus file must be a PDF")
	}

	if strings.TrimSpace(req.Data.Title) == "" || strings.TrimSpace(req.Data.FacultySponsorEmail) == "" {
		return apperrors.NewValidationError("missing required fields: title and faculty_sponsor_email are required")
	}
	if strings.TrimSpace(req.Data.ContactEmail) == "" {
		return apperrors.NewValidationError("missing required fields: contact_email is required")
	}

	if !validation.IsEmail(req.Data.FacultySponsorEmail) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, "faculty_sponsor_email is not a valid email address")
	}
	if !validation.IsEmail(req.Data.ContactEmail) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, "contact_email is not a valid email address")
	}

	return nil
}

// Submit runs the full intake pipeline. Attachment uploads happen strictly
// before the course insert, which happens strictly before child-row inserts,
// which happen strictly before cross-validation. A failed upload or insert
// deletes the attachments stored so far; child-row failures are best-effort
// and never roll anything back.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmissionRequest) (*SubmissionResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	semester := strings.TrimSpace(req.Data.Semester)
	if semester == "" {
		current, err := s.semesters.GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, repositories.ErrNoSemesters) {
				return nil, apperrors.NewUpstreamError("no semesters found", err)
			}
			return nil, apperrors.NewUpstreamError("failed to resolve current semester", err)
		}
		semester = current
	}

	// Collision-resistant object names: timestamp plus sanitized title slug.
	timestamp := s.now().UnixMilli()
	slug := validation.TitleSlug(req.Data.Title)
	cpfPath := fmt.Sprintf("cpf-forms/%d_%s.pdf", timestamp, slug)
	syllabusPath := fmt.Sprintf("syllabus-files/%d_%s_syllabus.pdf", timestamp, slug)

	cpfURL, err := s.store.Upload(ctx, cpfPath, req.CPF.ContentType, req.CPF.Content)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to upload CPF file", err)
	}

	syllabusURL, err := s.store.Upload(ctx, syllabusPath, req.Syllabus.ContentType, req.Syllabus.Content)
	if err != nil {
		// No orphaned blobs on partial failure.
		if delErr := s.store.Delete(ctx, cpfPath); delErr != nil {
			s.logger.Error().Err(delErr).Str("object", cpfPath).Msg("Failed to delete CPF after syllabus upload failure")
		}
		return nil, apperrors.NewUpstreamError("failed to upload Syllabus file", err)
	}

	course := s.buildCourse(&req.Data, semester, cpfURL, syllabusURL)
	if err := s.courses.Create(ctx, course); err != nil {
		for _, path := range []string{cpfPath, syllabusPath} {
			if delErr := s.store.Delete(ctx, path); delErr != nil {
				s.logger.Error().Err(delErr).Str("object", path).Msg("Failed to delete attachment after course insert failure")
			}
		}
		return nil, apperrors.NewUpstreamError("failed to create course", err)
	}

	result := &SubmissionResult{Course: course}

	// Child rows are best-effort: failures are logged and reported on the
	// result but never fail the submission.
	if len(req.Data.Sections) > 0 {
		sections := make([]models.CourseSection, 0, len(req.Data.Sections))
		for _, input := range req.Data.Sections {
			sections = append(sections, models.CourseSection{
				SectionType:      input.SectionType,
				EnrollmentStatus: input.EnrollmentStatus,
				Day:              input.Day,
				Time:             input.Time,
				Room:             input.Room,
				Capacity:         input.Capacity,
				StartDate:        input.StartDate,
				CCNLowerDiv:      input.CCNLowerDiv,
				CCNUpperDiv:      input.CCNUpperDiv,
				Notes:            input.Notes,
			})
		}
		if err := s.sections.CreateBulk(ctx, course.ID, sections); err != nil {
			s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to insert course sections")
			result.SectionsError = err
		}
	}

	if len(req.Data.Facilitators) > 0 {
		facilitators := make([]models.CourseFacilitator, 0, len(req.Data.Facilitators))
		for _, input := range req.Data.Facilitators {
			facilitators = append(facilitators, models.CourseFacilitator{
				Name:  input.Name,
				Email: input.Email,
			})
		}
		if err := s.facilitators.CreateBulk(ctx, course.ID, facilitators); err != nil {
			s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to insert course facilitators")
			result.FacilitatorsError = err
		}
	}

	// Cross-validation runs last; only a definitive outcome is persisted.
	result.Validation = s.validator.Validate(ctx, course.FacultySponsorEmail, course.Semester)
	if result.Validation.LookupSucceeded {
		if err := s.courses.SetCrossReference(ctx, course.ID, *result.Validation.IsMatch); err != nil {
			s.logger.Error().Err(err).Str("courseId", course.ID.String()).Msg("Failed to write cross-reference annotation")
		} else {
			course.CrossReferenceSuccess = result.Validation.IsMatch
		}
	}

	return result, nil
}

// buildCourse maps the validated submission payload onto a persistence
// model. Status is always Pending here, whatever the client sent.
func (s *SubmissionService) buildCourse(data *dto.CourseSubmission, semester, cpfURL, syllabusURL string) *models.Course {
	return &models.Course{
		Title:                 data.Title,
		Department:            data.Department,
		Category:              models.CourseCategory(data.Category),
		Units:                 data.Units,
		Semester:              semester,
		Status:                models.StatusPending,
		ContactEmail:          data.ContactEmail,
		Website:               data.Website,
		Description:           data.Description,
		FacultySponsorName:    data.FacultySponsorName,
		FacultySponsorEmail:   data.FacultySponsorEmail,
		EnrollmentInformation: data.EnrollmentInformation,
		ApplicationURL:        data.ApplicationURL,
		ApplicationDueDate:    data.ApplicationDueDate,
		TimeToComplete:        data.TimeToComplete,
		CPF:                   cpfURL,
		Syllabus:              data.Syllabus,
		SyllabusURL:           &syllabusURL,
	}
}
