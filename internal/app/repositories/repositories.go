package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository over one shared connection pool.
type Repositories struct {
	CourseRepository         *CourseRepository
	SectionRepository        *SectionRepository
	FacilitatorRepository    *FacilitatorRepository
	ApprovedCourseRepository *ApprovedCourseRepository
	ProfileRepository        *ProfileRepository
	SemesterRepository       *SemesterRepository
}

// NewRepositories creates the repository container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:         NewCourseRepository(db),
		SectionRepository:        NewSectionRepository(db),
		FacilitatorRepository:    NewFacilitatorRepository(db),
		ApprovedCourseRepository: NewApprovedCourseRepository(db),
		ProfileRepository:        NewProfileRepository(db),
		SemesterRepository:       NewSemesterRepository(db),
	}
}
