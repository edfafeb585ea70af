package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all active MLB teams
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, external_id, abbreviation, city, name, league, division,
			logo_url, is_active, created_at, updated_at
		FROM teams
		WHERE is_active = true
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.ExternalID, &team.Abbreviation, &team.City,
			&team.Name, &team.League, &team.Division, &team.LogoURL,
			&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*store.Team, error) {
	query := `
		SELECT team_id, external_id, abbreviation, city, name, league, division,
			logo_url, is_active, created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.ExternalID, &team.Abbreviation, &team.City,
		&team.Name, &team.League, &team.Division, &team.LogoURL,
		&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetByAbbreviation finds a team by abbreviation (e.g., "NYY", "LAD")
func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbr string) (*store.Team, error) {
	query := `
		SELECT team_id, external_id, abbreviation, city, name, league, division,
			logo_url, is_active, created_at, updated_at
		FROM teams
		WHERE abbreviation = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, abbr).Scan(
		&team.TeamID, &team.ExternalID, &team.Abbreviation, &team.City,
		&team.Name, &team.League, &team.Division, &team.LogoURL,
		&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", abbr)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}
