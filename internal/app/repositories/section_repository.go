package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

// SectionRepository handles database operations for course sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
	}
}

// CreateBulk inserts all sections for a course in one batch.
func (r *SectionRepository) CreateBulk(ctx context.Context, courseID uuid.UUID, sections []models.CourseSection) error {
	if len(sections) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO course_sections (
			course_id, section_type, enrollment_status, day, time, room,
			capacity, start_date, ccn_ld, ccn_ud, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, section := range sections {
		sectionType := section.SectionType
		if sectionType == "" {
			sectionType = "Lecture"
		}
		batch.Queue(query,
			courseID, sectionType, section.EnrollmentStatus, section.Day,
			section.Time, section.Room, section.Capacity, section.StartDate,
			section.CCNLowerDiv, section.CCNUpperDiv, section.Notes,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range sections {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error inserting course sections: %w", err)
		}
	}

	return nil
}

// GetByCourseID retrieves all sections for a course
func (r *SectionRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]models.CourseSection, error) {
	query := `
		SELECT id, course_id, section_type, enrollment_status, day, time, room,
		       capacity, start_date, ccn_ld, ccn_ud, notes
		FROM course_sections
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []models.CourseSection
	for rows.Next() {
		var section models.CourseSection
		if err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.SectionType,
			&section.EnrollmentStatus,
			&section.Day,
			&section.Time,
			&section.Room,
			&section.Capacity,
			&section.StartDate,
			&section.CCNLowerDiv,
			&section.CCNUpperDiv,
			&section.Notes,
		); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}
