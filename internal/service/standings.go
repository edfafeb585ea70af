package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/engine"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// StandingsService is the standings reference resolver: it materializes
// snapshot maps for the engine, which never touches the database itself.
type StandingsService struct {
	standingsRepo *repository.StandingsRepository
}

// NewStandingsService creates a new standings service
func NewStandingsService(db *store.Database) *StandingsService {
	return &StandingsService{
		standingsRepo: repository.NewStandingsRepository(db),
	}
}

// SnapshotsForDate returns every team's standing as of one calendar date.
// Teams without a snapshot that day are simply absent from the map.
func (s *StandingsService) SnapshotsForDate(ctx context.Context, seasonYear int, date time.Time) (map[string]engine.TeamStanding, error) {
	snapshots, err := s.standingsRepo.GetByDate(ctx, seasonYear, date)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshots for %s: %w", date.Format("2006-01-02"), err)
	}

	return toStandingMap(snapshots), nil
}

// FinalSnapshots returns each team's latest snapshot for the season. Once
// the season is complete this is the final truth for settlement.
func (s *StandingsService) FinalSnapshots(ctx context.Context, seasonYear int) (map[string]engine.TeamStanding, error) {
	snapshots, err := s.standingsRepo.GetLatest(ctx, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("fetching final snapshots: %w", err)
	}

	return toStandingMap(snapshots), nil
}

// Resolve selects the mode and standings map for a request: historical mode
// iff an as-of date was given, final mode otherwise.
func (s *StandingsService) Resolve(ctx context.Context, seasonYear int, date *time.Time) (map[string]engine.TeamStanding, engine.Mode, error) {
	if date != nil {
		standings, err := s.SnapshotsForDate(ctx, seasonYear, *date)
		return standings, engine.ModeHistorical, err
	}

	standings, err := s.FinalSnapshots(ctx, seasonYear)
	return standings, engine.ModeFinal, err
}

func toStandingMap(snapshots []*store.StandingsSnapshot) map[string]engine.TeamStanding {
	standings := make(map[string]engine.TeamStanding, len(snapshots))
	for _, snap := range snapshots {
		standings[snap.TeamID] = engine.TeamStanding{
			Wins:        snap.Wins,
			Losses:      snap.Losses,
			GamesPlayed: snap.GamesPlayed,
			RunsScored:  snap.RunsScored,
			RunsAllowed: snap.RunsAllowed,
		}
	}
	return standings
}
