package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/engine"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// ProjectionService computes display projections for a single team. Both
// values here are display-rounded; settlement recomputes pace at full
// precision inside the engine and never reads these.
type ProjectionService struct {
	standingsRepo *repository.StandingsRepository
	teamRepo      *repository.TeamRepository
	groupRepo     *repository.GroupRepository
}

// NewProjectionService creates a new projection service
func NewProjectionService(db *store.Database) *ProjectionService {
	return &ProjectionService{
		standingsRepo: repository.NewStandingsRepository(db),
		teamRepo:      repository.NewTeamRepository(db),
		groupRepo:     repository.NewGroupRepository(db),
	}
}

// TeamProjection contains a team's projected full-season win totals
type TeamProjection struct {
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	SeasonYear      int     `json:"season_year"`
	Date            string  `json:"date"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	GamesPlayed     int     `json:"games_played"`
	RunsScored      int     `json:"runs_scored"`
	RunsAllowed     int     `json:"runs_allowed"`
	PaceWins        float64 `json:"pace_wins"`
	PythagoreanWins float64 `json:"pythagorean_wins"`
}

// ProjectionPoint is one dated sample in a team's projection trend
type ProjectionPoint struct {
	Date            string  `json:"date"`
	Wins            int     `json:"wins"`
	GamesPlayed     int     `json:"games_played"`
	PaceWins        float64 `json:"pace_wins"`
	PythagoreanWins float64 `json:"pythagorean_wins"`
}

// ProjectionTrend contains a team's projection samples over a date range
type ProjectionTrend struct {
	TeamID   string            `json:"team_id"`
	TeamName string            `json:"team_name"`
	Points   []ProjectionPoint `json:"points"`
}

// GetTeamProjection returns a team's pace and Pythagorean projections as of
// one date.
func (s *ProjectionService) GetTeamProjection(ctx context.Context, teamID string, seasonYear int, date time.Time) (*TeamProjection, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	season, err := s.groupRepo.GetSeason(ctx, seasonYear)
	if err != nil {
		return nil, err
	}

	snap, err := s.standingsRepo.GetTeamSnapshot(ctx, teamID, seasonYear, date)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	return &TeamProjection{
		TeamID:          team.TeamID,
		TeamName:        team.DisplayName(),
		SeasonYear:      seasonYear,
		Date:            snap.SnapshotDate.Format("2006-01-02"),
		Wins:            snap.Wins,
		Losses:          snap.Losses,
		GamesPlayed:     snap.GamesPlayed,
		RunsScored:      snap.RunsScored,
		RunsAllowed:     snap.RunsAllowed,
		PaceWins:        engine.ProjectedWins(snap.Wins, snap.GamesPlayed, season.TotalGames, false),
		PythagoreanWins: engine.PythagoreanWins(snap.RunsScored, snap.RunsAllowed, snap.GamesPlayed, season.TotalGames),
	}, nil
}

// GetTeamTrend returns a team's projection samples across a date range,
// oldest first, for charting.
func (s *ProjectionService) GetTeamTrend(ctx context.Context, teamID string, seasonYear int, from, to time.Time) (*ProjectionTrend, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	season, err := s.groupRepo.GetSeason(ctx, seasonYear)
	if err != nil {
		return nil, err
	}

	history, err := s.standingsRepo.GetTeamHistory(ctx, teamID, seasonYear, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot history: %w", err)
	}

	trend := &ProjectionTrend{
		TeamID:   team.TeamID,
		TeamName: team.DisplayName(),
		Points:   make([]ProjectionPoint, 0, len(history)),
	}
	for _, snap := range history {
		trend.Points = append(trend.Points, ProjectionPoint{
			Date:            snap.SnapshotDate.Format("2006-01-02"),
			Wins:            snap.Wins,
			GamesPlayed:     snap.GamesPlayed,
			PaceWins:        engine.ProjectedWins(snap.Wins, snap.GamesPlayed, season.TotalGames, false),
			PythagoreanWins: engine.PythagoreanWins(snap.RunsScored, snap.RunsAllowed, snap.GamesPlayed, season.TotalGames),
		})
	}

	return trend, nil
}
