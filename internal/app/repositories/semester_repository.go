package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Semester error types
var (
	ErrNoSemesters = errors.New("no semesters found")
)

// SemesterRepository handles database operations for semester tokens
type SemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
	}
}

// GetCurrent returns the authoritative current semester token: the most
// recently inserted row. The term-rollover job appends exactly one row per
// term, so insertion order is the source of truth.
func (r *SemesterRepository) GetCurrent(ctx context.Context) (string, error) {
	var semester string
	err := r.db.QueryRow(ctx,
		`SELECT semester FROM semesters ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&semester)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoSemesters
		}
		return "", fmt.Errorf("error retrieving current semester: %w", err)
	}

	return semester, nil
}

// GetAll returns all known semester tokens, most recently inserted first.
func (r *SemesterRepository) GetAll(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT semester FROM semesters ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []string
	for rows.Next() {
		var semester string
		if err := rows.Scan(&semester); err != nil {
			return nil, err
		}
		semesters = append(semesters, semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// Exists reports whether the given semester token is already known.
func (r *SemesterRepository) Exists(ctx context.Context, semester string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM semesters WHERE semester = $1)`,
		semester).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking semester existence: %w", err)
	}

	return exists, nil
}

// Create appends a new semester token.
func (r *SemesterRepository) Create(ctx context.Context, semester string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO semesters (semester) VALUES ($1)`, semester)
	if err != nil {
		return fmt.Errorf("error inserting semester: %w", err)
	}

	return nil
}
