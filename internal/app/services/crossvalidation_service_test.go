package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berkeley-decal/decal-portal/internal/app/models"
)

func TestValidateMatch(t *testing.T) {
	roster := &fakeRosterStore{records: []models.ApprovedCourse{
		{ID: 2, CourseTitle: "Birdwatching", InstructorOfRecordEmail: "sponsor@berkeley.edu", Semester: "Fall 2025"},
		{ID: 5, CourseTitle: "Birdwatching II", InstructorOfRecordEmail: "sponsor@berkeley.edu", Semester: "Fall 2025"},
	}}
	v := NewCrossValidator(roster, zerolog.Nop())

	outcome := v.Validate(context.Background(), "sponsor@berkeley.edu", "Fall 2025")
	assert.True(t, outcome.LookupSucceeded)
	require.NotNil(t, outcome.IsMatch)
	assert.True(t, *outcome.IsMatch)
	require.NotNil(t, outcome.Matched)
	assert.Equal(t, int64(2), outcome.Matched.ID, "first row wins on multiple matches")
}

func TestValidateNoMatchIsDefinitive(t *testing.T) {
	v := NewCrossValidator(&fakeRosterStore{}, zerolog.Nop())

	outcome := v.Validate(context.Background(), "unknown@berkeley.edu", "Fall 2025")
	assert.True(t, outcome.LookupSucceeded)
	require.NotNil(t, outcome.IsMatch)
	assert.False(t, *outcome.IsMatch)
	assert.Nil(t, outcome.Matched)
}

func TestValidateLookupFailureIsUnknown(t *testing.T) {
	roster := &fakeRosterStore{err: errors.New("db down")}
	v := NewCrossValidator(roster, zerolog.Nop())

	outcome := v.Validate(context.Background(), "sponsor@berkeley.edu", "Fall 2025")
	assert.False(t, outcome.LookupSucceeded)
	assert.Nil(t, outcome.IsMatch, "unknown is distinct from no-match")
}

func TestValidateSemesterMismatch(t *testing.T) {
	roster := &fakeRosterStore{records: []models.ApprovedCourse{
		{ID: 1, InstructorOfRecordEmail: "sponsor@berkeley.edu", Semester: "Spring 2025"},
	}}
	v := NewCrossValidator(roster, zerolog.Nop())

	outcome := v.Validate(context.Background(), "sponsor@berkeley.edu", "Fall 2025")
	require.NotNil(t, outcome.IsMatch)
	assert.False(t, *outcome.IsMatch, "roster match is per semester")
}

func TestOutcomeSummary(t *testing.T) {
	matched := &models.ApprovedCourse{ID: 9}
	yes, no := true, false

	summary := Outcome{LookupSucceeded: true, IsMatch: &yes, Matched: matched}.Summary()
	require.NotNil(t, summary.Match)
	assert.True(t, *summary.Match)
	assert.Equal(t, matched, summary.ApprovedCourse)

	summary = Outcome{LookupSucceeded: true, IsMatch: &no}.Summary()
	require.NotNil(t, summary.Match)
	assert.False(t, *summary.Match)
	assert.Nil(t, summary.ApprovedCourse)

	summary = Outcome{}.Summary()
	assert.Nil(t, summary.Match)
	assert.Nil(t, summary.ApprovedCourse)
}
