package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/ingest/espn"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// Runner executes backfill specs using the ESPN ingester. The scraper is not
// used here: the standings page only renders current records, while the API
// accepts a date parameter for any past day.
type Runner struct {
	ingester      *espn.Ingester
	standingsRepo *repository.StandingsRepository
	db            *store.Database
}

// NewRunner constructs a runner with the default ESPN base URL.
func NewRunner(db *store.Database) *Runner {
	return &Runner{
		ingester:      espn.NewIngester(db),
		standingsRepo: repository.NewStandingsRepository(db),
		db:            db,
	}
}

// NewRunnerWithBaseURL overrides the ESPN API base URL (useful for tests).
func NewRunnerWithBaseURL(db *store.Database, baseURL string) *Runner {
	return &Runner{
		ingester:      espn.NewIngesterWithBaseURL(db, baseURL),
		standingsRepo: repository.NewStandingsRepository(db),
		db:            db,
	}
}

// Run executes the job spec, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	if reporter != nil {
		reporter.OnJobStart(spec)
	}

	if spec.DryRun {
		if reporter != nil {
			reporter.OnProgress("Dry-run mode: no data will be written", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	start, end := spec.Start, spec.End
	if spec.Type == JobTypeSeason {
		var err error
		start, end, err = r.lookupSeasonWindow(ctx, spec.SeasonYear)
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}
	}

	dates := enumerateDates(start, end)
	if len(dates) == 0 {
		if reporter != nil {
			reporter.OnProgress("No dates to process", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	// Never backfill snapshots that don't exist yet.
	today := truncateDate(time.Now().UTC())

	total := len(dates)
	for idx, date := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if date.After(today) {
			break
		}

		if reporter != nil {
			reporter.OnDateStart(date, idx, total)
		}

		// Restarted jobs resume where they left off.
		existing, err := r.standingsRepo.CountForDate(ctx, spec.SeasonYear, date)
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return fmt.Errorf("checking %s: %w", date.Format("2006-01-02"), err)
		}
		if existing > 0 {
			if reporter != nil {
				reporter.OnProgress(fmt.Sprintf("Skipped %s (%d snapshots already present)", date.Format("Jan 2, 2006"), existing), idx+1, total)
			}
			continue
		}

		count, err := r.ingester.IngestStandings(ctx, spec.SeasonYear, date)
		if err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return fmt.Errorf("ingest %s: %w", date.Format("2006-01-02"), err)
		}

		if reporter != nil {
			reporter.OnDateComplete(date, count)
			reporter.OnProgress(fmt.Sprintf("Processed %s (%d teams)", date.Format("Jan 2, 2006"), count), idx+1, total)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete()
	}

	return nil
}

// lookupSeasonWindow reads the season's calendar bounds from the database
func (r *Runner) lookupSeasonWindow(ctx context.Context, seasonYear int) (time.Time, time.Time, error) {
	query := `SELECT start_date, end_date FROM seasons WHERE season_year = $1 LIMIT 1`

	var start, end time.Time
	err := r.db.DB().QueryRowContext(ctx, query, seasonYear).Scan(&start, &end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("season %d not found in database: %w", seasonYear, err)
	}

	return start, end, nil
}

func enumerateDates(start, end time.Time) []time.Time {
	if end.Before(start) {
		start, end = end, start
	}

	var dates []time.Time
	current := truncateDate(start)
	final := truncateDate(end)

	for !current.After(final) {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 1)
	}

	return dates
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
