package repository

import (
	"context"
	"fmt"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// LineRepository handles win-total line data access. Lines are set before
// the season starts and never change afterward.
type LineRepository struct {
	db *store.Database
}

// NewLineRepository creates a new line repository
func NewLineRepository(db *store.Database) *LineRepository {
	return &LineRepository{db: db}
}

// GetForSeason returns every team's line for a season
func (r *LineRepository) GetForSeason(ctx context.Context, seasonYear int) ([]*store.Line, error) {
	query := `
		SELECT l.line_id, l.team_id, l.season_year, l.value, l.created_at
		FROM lines l
		JOIN teams t ON t.team_id = l.team_id
		WHERE l.season_year = $1
		ORDER BY t.city, t.name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}
	defer rows.Close()

	var lines []*store.Line
	for rows.Next() {
		line := &store.Line{}
		err := rows.Scan(&line.LineID, &line.TeamID, &line.SeasonYear, &line.Value, &line.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
