package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/pkg/apperrors"
	"github.com/berkeley-decal/decal-portal/internal/pkg/cache"
)

type catalogFixture struct {
	service  *CatalogService
	courses  *fakeCourseStore
	sections *fakeSectionStore
	cache    *cache.TTLCache
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		courses:  newFakeCourseStore(),
		sections: newFakeSectionStore(),
		cache:    cache.New(),
	}
	f.service = NewCatalogService(
		f.courses, f.sections, newFakeFacilitatorStore(),
		&fakeSemesterStore{all: []string{"Fall 2025", "Spring 2025"}},
		f.cache, 60*time.Second, zerolog.Nop(),
	)
	return f
}

func TestApprovedCoursesFiltersToActive(t *testing.T) {
	f := newCatalogFixture()
	f.courses.add(&models.Course{Title: "Live", Status: models.StatusActive})
	f.courses.add(&models.Course{Title: "Waiting", Status: models.StatusPending})
	f.courses.add(&models.Course{Title: "Declined", Status: models.StatusRejected})

	courses, cached, err := f.service.ApprovedCourses(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, courses, 1)
	assert.Equal(t, "Live", courses[0].Title)
}

func TestApprovedCoursesAttachesChildren(t *testing.T) {
	f := newCatalogFixture()
	course := f.courses.add(&models.Course{Title: "Live", Status: models.StatusActive})
	f.sections.byCourse[course.ID] = []models.CourseSection{{Day: "Monday"}}

	courses, _, err := f.service.ApprovedCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Len(t, courses[0].Sections, 1)
	assert.Equal(t, "Monday", courses[0].Sections[0].Day)
	assert.NotNil(t, courses[0].Facilitators, "empty collections serialize as arrays")
}

func TestApprovedCoursesCached(t *testing.T) {
	f := newCatalogFixture()
	f.courses.add(&models.Course{Title: "Live", Status: models.StatusActive})

	_, cached, err := f.service.ApprovedCourses(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	// A course added after the first read stays invisible until the entry
	// expires or a moderation action invalidates it.
	f.courses.add(&models.Course{Title: "Newer", Status: models.StatusActive})

	courses, cached, err := f.service.ApprovedCourses(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, courses, 1)
}

func TestActiveCourseHidesUndecidedCourses(t *testing.T) {
	f := newCatalogFixture()
	pending := f.courses.add(&models.Course{Title: "Waiting", Status: models.StatusPending})

	_, err := f.service.ActiveCourse(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound, "non-Active reads as missing")

	_, err = f.service.ActiveCourse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestActiveCourseReturnsPublicShape(t *testing.T) {
	f := newCatalogFixture()
	course := f.courses.add(&models.Course{
		Title:               "Live",
		Status:              models.StatusActive,
		FacultySponsorEmail: "sponsor@berkeley.edu",
		ContactEmail:        "contact@berkeley.edu",
	})

	public, err := f.service.ActiveCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live", public.Title)
	assert.Equal(t, "contact@berkeley.edu", public.ContactEmail)
}

func TestSemesters(t *testing.T) {
	f := newCatalogFixture()

	semesters, err := f.service.Semesters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fall 2025", "Spring 2025"}, semesters)
}
