package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// StandingsRepository handles standings snapshot data access. Snapshots are
// written once per team per day by ingestion and never updated afterward.
type StandingsRepository struct {
	db *store.Database
}

// NewStandingsRepository creates a new standings repository
func NewStandingsRepository(db *store.Database) *StandingsRepository {
	return &StandingsRepository{db: db}
}

const snapshotColumns = `snapshot_id, team_id, season_year, snapshot_date,
	wins, losses, games_played, runs_scored, runs_allowed, streak, created_at`

// GetByDate returns every team's snapshot for one calendar date. Ingestion
// writes a date's snapshots in a single transaction, so readers observe
// either all teams or none for a given date.
func (r *StandingsRepository) GetByDate(ctx context.Context, seasonYear int, date time.Time) ([]*store.StandingsSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM standings_snapshots
		WHERE season_year = $1 AND snapshot_date = $2
		ORDER BY team_id
	`, snapshotColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetLatest returns the most recent snapshot per team across the whole
// season. After the final day this is the season's actual result.
func (r *StandingsRepository) GetLatest(ctx context.Context, seasonYear int) ([]*store.StandingsSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (team_id) %s
		FROM standings_snapshots
		WHERE season_year = $1
		ORDER BY team_id, snapshot_date DESC
	`, snapshotColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetTeamSnapshot returns one team's snapshot for one date
func (r *StandingsRepository) GetTeamSnapshot(ctx context.Context, teamID string, seasonYear int, date time.Time) (*store.StandingsSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM standings_snapshots
		WHERE team_id = $1 AND season_year = $2 AND snapshot_date = $3
	`, snapshotColumns)

	snap := &store.StandingsSnapshot{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID, seasonYear, date.Format("2006-01-02")).Scan(
		&snap.SnapshotID, &snap.TeamID, &snap.SeasonYear, &snap.SnapshotDate,
		&snap.Wins, &snap.Losses, &snap.GamesPlayed,
		&snap.RunsScored, &snap.RunsAllowed, &snap.Streak, &snap.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no snapshot for %s on %s", teamID, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	return snap, nil
}

// GetTeamHistory returns a team's snapshots over a date range, oldest first.
// Used by the projection trend endpoint for charting.
func (r *StandingsRepository) GetTeamHistory(ctx context.Context, teamID string, seasonYear int, from, to time.Time) ([]*store.StandingsSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM standings_snapshots
		WHERE team_id = $1 AND season_year = $2
			AND snapshot_date BETWEEN $3 AND $4
		ORDER BY snapshot_date
	`, snapshotColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, seasonYear, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying snapshot history: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// UpsertDay writes one full day of snapshots in a single transaction.
// Readers of a date's snapshot set must observe either all teams or none,
// so a partial failure rolls back the whole day.
func (r *StandingsRepository) UpsertDay(ctx context.Context, snapshots []*store.StandingsSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO standings_snapshots
			(team_id, season_year, snapshot_date, wins, losses, games_played,
			 runs_scored, runs_allowed, streak)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (team_id, season_year, snapshot_date) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			games_played = EXCLUDED.games_played,
			runs_scored = EXCLUDED.runs_scored,
			runs_allowed = EXCLUDED.runs_allowed,
			streak = EXCLUDED.streak
	`

	for _, snap := range snapshots {
		_, err := tx.ExecContext(ctx, query,
			snap.TeamID, snap.SeasonYear, snap.SnapshotDate.Format("2006-01-02"),
			snap.Wins, snap.Losses, snap.GamesPlayed,
			snap.RunsScored, snap.RunsAllowed, snap.Streak,
		)
		if err != nil {
			return fmt.Errorf("upserting snapshot for %s: %w", snap.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot transaction: %w", err)
	}

	return nil
}

// CountForDate reports how many team snapshots exist for a date. Used by the
// backfill runner to skip days already ingested.
func (r *StandingsRepository) CountForDate(ctx context.Context, seasonYear int, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM standings_snapshots
		WHERE season_year = $1 AND snapshot_date = $2
	`

	var count int
	err := r.db.DB().QueryRowContext(ctx, query, seasonYear, date.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}

	return count, nil
}

func scanSnapshots(rows *sql.Rows) ([]*store.StandingsSnapshot, error) {
	var snapshots []*store.StandingsSnapshot
	for rows.Next() {
		snap := &store.StandingsSnapshot{}
		err := rows.Scan(
			&snap.SnapshotID, &snap.TeamID, &snap.SeasonYear, &snap.SnapshotDate,
			&snap.Wins, &snap.Losses, &snap.GamesPlayed,
			&snap.RunsScored, &snap.RunsAllowed, &snap.Streak, &snap.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}
