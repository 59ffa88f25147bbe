package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/cache"
)

// CatalogService serves the public, unauthenticated read paths. Only Active
// courses ever leave this service, and always in the sanitized shape.
type CatalogService struct {
	courses      CourseStore
	sections     SectionStore
	facilitators FacilitatorStore
	semesters    SemesterStore
	cache        *cache.TTLCache
	listTTL      time.Duration
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	courses CourseStore,
	sections SectionStore,
	facilitators FacilitatorStore,
	semesters SemesterStore,
	ttlCache *cache.TTLCache,
	listTTL time.Duration,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		courses:      courses,
		sections:     sections,
		facilitators: facilitators,
		semesters:    semesters,
		cache:        ttlCache,
		listTTL:      listTTL,
		logger:       logger,
	}
}

// ApprovedCourses returns every Active course, newest first, sanitized for
// public consumption. The result is memoized briefly; the second return
// reports a cache hit.
func (s *CatalogService) ApprovedCourses(ctx context.Context) ([]dto.PublicCourse, bool, error) {
	if payload, ok := s.cache.Get(cacheKeyApprovedCourses); ok {
		return payload.([]dto.PublicCourse), true, nil
	}

	courses, err := s.courses.GetAll(ctx, models.StatusActive)
	if err != nil {
		return nil, false, apperrors.NewUpstreamError("failed to load approved courses", err)
	}

	result := make([]dto.PublicCourse, 0, len(courses))
	for _, course := range courses {
		s.attachChildren(ctx, course)
		result = append(result, dto.NewPublicCourse(course))
	}

	s.cache.Set(cacheKeyApprovedCourses, result, s.listTTL)
	return result, false, nil
}

// ActiveCourse returns one Active course in the sanitized public shape. A
// course that exists but is Pending or Rejected is indistinguishable from a
// missing one on this path.
func (s *CatalogService) ActiveCourse(ctx context.Context, id uuid.UUID) (*dto.PublicCourse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
		}
		return nil, apperrors.NewUpstreamError("failed to load course", err)
	}

	if course.Status != models.StatusActive {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course not found")
	}

	s.attachChildren(ctx, course)
	public := dto.NewPublicCourse(course)
	return &public, nil
}

// Semesters lists the known semester tokens.
func (s *CatalogService) Semesters(ctx context.Context) ([]string, error) {
	semesters, err := s.semesters.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to load semesters", err)
	}
	if semesters == nil {
		semesters = []string{}
	}
	return semesters, nil
}

func (s *CatalogService) attachChildren(ctx context.Context, course *models.Course) {
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
