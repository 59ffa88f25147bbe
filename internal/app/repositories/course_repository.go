package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// Course error types
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseNotPending = errors.New("course is not in pending status")
)

const courseColumns = `
	id, title, department, category, units, semester, status,
	contact_email, website, description,
	faculty_sponsor_name, faculty_sponsor_email,
	enrollment_information, application_url, application_due_date, time_to_complete,
	cpf, syllabus, syllabus_url, cross_reference_success, created_at
`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// scanCourse reads one course row in courseColumns order.
func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Department,
		&course.Category,
		&course.Units,
		&course.Semester,
		&course.Status,
		&course.ContactEmail,
		&course.Website,
		&course.Description,
		&course.FacultySponsorName,
		&course.FacultySponsorEmail,
		&course.EnrollmentInformation,
		&course.ApplicationURL,
		&course.ApplicationDueDate,
		&course.TimeToComplete,
		&course.CPF,
		&course.Syllabus,
		&course.SyllabusURL,
		&course.CrossReferenceSuccess,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course. The id is generated here and the
// server-assigned created_at is read back onto the model.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.ID = uuid.New()

	query := `
		INSERT INTO courses (
			id, title, department, category, units, semester, status,
			contact_email, website, description,
			faculty_sponsor_name, faculty_sponsor_email,
			enrollment_information, application_url, application_due_date, time_to_complete,
			cpf, syllabus, syllabus_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		course.ID, course.Title, course.Department, course.Category, course.Units,
		course.Semester, course.Status,
		course.ContactEmail, course.Website, course.Description,
		course.FacultySponsorName, course.FacultySponsorEmail,
		course.EnrollmentInformation, course.ApplicationURL, course.ApplicationDueDate, course.TimeToComplete,
		course.CPF, course.Syllabus, course.SyllabusURL,
	).Scan(&course.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAll retrieves all courses, newest first, optionally filtered by status.
// An empty status returns every course.
func (r *CourseRepository) GetAll(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// UpdateStatusFromPending moves a Pending course to the given status as a
// single conditional update. Zero affected rows means the course was not
// Pending anymore (or never existed); concurrent moderation actions on the
// same course therefore cannot both succeed.
func (r *CourseRepository) UpdateStatusFromPending(ctx context.Context, id uuid.UUID, to models.CourseStatus) (*models.Course, error) {
	query := `
		UPDATE courses
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING ` + courseColumns

	course, err := scanCourse(r.db.QueryRow(ctx, query, id, to, models.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotPending
		}
		return nil, fmt.Errorf("error updating course status: %w", err)
	}

	return course, nil
}

// SetCrossReference writes the cross-validation annotation back onto the
// course row.
func (r *CourseRepository) SetCrossReference(ctx context.Context, id uuid.UUID, success bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET cross_reference_success = $2 WHERE id = $1`,
		id, success)
	if err != nil {
		return fmt.Errorf("error updating cross reference: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}
