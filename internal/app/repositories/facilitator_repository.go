package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// FacilitatorRepository handles database operations for course facilitators
type FacilitatorRepository struct {
	db *pgxpool.Pool
}

// NewFacilitatorRepository creates a new facilitator repository
func NewFacilitatorRepository(db *pgxpool.Pool) *FacilitatorRepository {
	return &FacilitatorRepository{
		db: db,
	}
}

// CreateBulk inserts all facilitators for a course in one batch.
func (r *FacilitatorRepository) CreateBulk(ctx context.Context, courseID uuid.UUID, facilitators []models.CourseFacilitator) error {
	if len(facilitators) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO course_facilitators (course_id, name, email) VALUES ($1, $2, $3)`
	for _, facilitator := range facilitators {
		batch.Queue(query, courseID, facilitator.Name, facilitator.Email)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range facilitators {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error inserting course facilitators: %w", err)
		}
	}

	return nil
}

// GetByCourseID retrieves all facilitators for a course
func (r *FacilitatorRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseFacilitator, error) {
	query := `
		SELECT id, course_id, name, email
		FROM course_facilitators
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facilitators []models.CourseFacilitator
	for rows.Next() {
		var facilitator models.CourseFacilitator
		if err := rows.Scan(
			&facilitator.ID,
			&facilitator.CourseID,
			&facilitator.Name,
			&facilitator.Email,
		); err != nil {
			return nil, err
		}
		facilitators = append(facilitators, facilitator)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return facilitators, nil
}
