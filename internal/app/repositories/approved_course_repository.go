package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// ApprovedCourseRepository reads the pre-vetted instructor roster. The
// roster is maintained by an external intake process; this repository never
// writes to it.
type ApprovedCourseRepository struct {
	db *pgxpool.Pool
}

// NewApprovedCourseRepository creates a new approved-course repository
func NewApprovedCourseRepository(db *pgxpool.Pool) *ApprovedCourseRepository {
	return &ApprovedCourseRepository{
		db: db,
	}
}

// FindByInstructorEmail retrieves roster rows matching the exact
// (instructor email, semester) pair, lowest id first so that multi-row
// matches resolve deterministically.
func (r *ApprovedCourseRepository) FindByInstructorEmail(ctx context.Context, email, semester string) ([]models.ApprovedCourse, error) {
	query := `
		SELECT id, course_title, instructor_of_record_email, semester
		FROM approved_courses
		WHERE instructor_of_record_email = $1 AND semester = $2
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, email, semester)
	if err != nil {
		return nil, fmt.Errorf("error querying approved courses: %w", err)
	}
	defer rows.Close()

	var records []models.ApprovedCourse
	for rows.Next() {
		var record models.ApprovedCourse
		if err := rows.Scan(
			&record.ID,
			&record.CourseTitle,
			&record.InstructorOfRecordEmail,
			&record.Semester,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
