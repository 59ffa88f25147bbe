// Command semesters is the term-rollover job. Run monthly from cron: in
// July it appends the fall term for the current year, in December the
// spring term for the next year. Any other month, or a term that already
// exists, is a no-op.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/berkeley-decal/decal-portal/internal/app/repositories"
	"github.com/berkeley-decal/decal-portal/internal/bootstrap"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	semesters := repositories.NewSemesterRepository(dbPool)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, ok := nextTerm(time.Now())
	if !ok {
		lgr.Info().Msg("No term rollover scheduled this month")
		return
	}

	exists, err := semesters.Exists(ctx, token)
	if err != nil {
		lgr.Error().Err(err).Str("semester", token).Msg("Failed to check semester")
		os.Exit(1)
	}
	if exists {
		lgr.Info().Str("semester", token).Msg("Semester already exists, nothing to do")
		return
	}

	if err := semesters.Create(ctx, token); err != nil {
		lgr.Error().Err(err).Str("semester", token).Msg("Failed to insert semester")
		os.Exit(1)
	}

	lgr.Info().Str("semester", token).Msg("Semester rolled over")
}

// nextTerm maps the current month to the upcoming term token. July opens
// fall enrollment for the same year; December opens spring for the next.
func nextTerm(now time.Time) (string, bool) {
	switch now.Month() {
	case time.July:
		return fmt.Sprintf("Fall %d", now.Year()), true
	case time.December:
		return fmt.Sprintf("Spring %d", now.Year()+1), true
	default:
		return "", false
	}
}
