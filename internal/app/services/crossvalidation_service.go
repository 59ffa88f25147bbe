package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
	"github.com/berkeley-decal/decal-portal/internal/app/models/dto"
)

// Outcome is the tri-state result of a roster lookup. IsMatch is nil when
// the lookup itself failed; "unknown" is distinct from "no match" and
// callers must not persist or display one as the other.
type Outcome struct {
	LookupSucceeded bool
	IsMatch         *bool
	Matched         *models.ApprovedCourse
}

// Summary converts the outcome to its wire shape.
func (o Outcome) Summary() dto.CrossValidationSummary {
	summary := dto.CrossValidationSummary{Match: o.IsMatch}
	if o.IsMatch != nil && *o.IsMatch {
		summary.ApprovedCourse = o.Matched
	}
	return summary
}

// CrossValidator checks whether a proposal's faculty sponsor appears on the
// pre-approved roster for the stated semester. Pure read; safe to call
// repeatedly and concurrently.
type CrossValidator struct {
	roster RosterStore
	logger zerolog.Logger
}

// NewCrossValidator creates a new cross validator
func NewCrossValidator(roster RosterStore, logger zerolog.Logger) *CrossValidator {
	return &CrossValidator{
		roster: roster,
		logger: logger,
	}
}

// Validate looks up the exact (sponsorEmail, semester) pair. Zero rows is a
// definitive no-match; one or more rows is a match resolved to the lowest
// roster id (the store returns rows in id order).
func (v *CrossValidator) Validate(ctx context.Context, sponsorEmail, semester string) Outcome {
	records, err := v.roster.FindByInstructorEmail(ctx, sponsorEmail, semester)
	if err != nil {
		v.logger.Error().Err(err).
			Str("sponsorEmail", sponsorEmail).
			Str("semester", semester).
			Msg("Roster lookup failed")
		return Outcome{LookupSucceeded: false}
	}

	isMatch := len(records) > 0
	outcome := Outcome{
		LookupSucceeded: true,
		IsMatch:         &isMatch,
	}
	if isMatch {
		outcome.Matched = &records[0]
	}
	return outcome
}
