package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// ErrSheetNotFound is returned when a user has no sheet in a group.
var ErrSheetNotFound = fmt.Errorf("sheet not found")

// ErrPickNotFound is returned when a pick ID does not exist on a sheet.
var ErrPickNotFound = fmt.Errorf("pick not found")

// SheetRepository handles sheet and pick data access
type SheetRepository struct {
	db *store.Database
}

// NewSheetRepository creates a new sheet repository
func NewSheetRepository(db *store.Database) *SheetRepository {
	return &SheetRepository{db: db}
}

// GetByGroupAndUser finds a user's sheet in a group
func (r *SheetRepository) GetByGroupAndUser(ctx context.Context, groupID, userID string) (*store.Sheet, error) {
	query := `
		SELECT sheet_id, group_id, user_id, created_at, updated_at
		FROM sheets
		WHERE group_id = $1 AND user_id = $2
	`

	sheet := &store.Sheet{}
	err := r.db.DB().QueryRowContext(ctx, query, groupID, userID).Scan(
		&sheet.SheetID, &sheet.GroupID, &sheet.UserID, &sheet.CreatedAt, &sheet.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying sheet: %w", err)
	}

	return sheet, nil
}

// GetSheetPicks returns a sheet's picks joined with team display fields
func (r *SheetRepository) GetSheetPicks(ctx context.Context, sheetID string) ([]*store.SheetPick, error) {
	query := `
		SELECT p.pick_id, p.sheet_id, s.user_id, p.team_id, t.city, t.name,
			p.line, p.direction
		FROM picks p
		JOIN sheets s ON s.sheet_id = p.sheet_id
		JOIN teams t ON t.team_id = p.team_id
		WHERE p.sheet_id = $1
		ORDER BY t.city, t.name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, sheetID)
	if err != nil {
		return nil, fmt.Errorf("querying sheet picks: %w", err)
	}
	defer rows.Close()

	return scanSheetPicks(rows)
}

// GetGroupPicks returns every member's picks for a group in one query,
// joined with team display fields.
func (r *SheetRepository) GetGroupPicks(ctx context.Context, groupID string) ([]*store.SheetPick, error) {
	query := `
		SELECT p.pick_id, p.sheet_id, s.user_id, p.team_id, t.city, t.name,
			p.line, p.direction
		FROM picks p
		JOIN sheets s ON s.sheet_id = p.sheet_id
		JOIN teams t ON t.team_id = p.team_id
		WHERE s.group_id = $1
		ORDER BY s.user_id, t.city, t.name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying group picks: %w", err)
	}
	defer rows.Close()

	return scanSheetPicks(rows)
}

// UpdatePickDirection sets a pick's direction. Lock-date enforcement happens
// in the service layer; this only touches the row.
func (r *SheetRepository) UpdatePickDirection(ctx context.Context, sheetID, pickID, direction string) error {
	query := `
		UPDATE picks
		SET direction = $1, updated_at = NOW()
		WHERE pick_id = $2 AND sheet_id = $3
	`

	result, err := r.db.DB().ExecContext(ctx, query, direction, pickID, sheetID)
	if err != nil {
		return fmt.Errorf("updating pick direction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking pick update: %w", err)
	}
	if affected == 0 {
		return ErrPickNotFound
	}

	return nil
}

// CreateSheet creates a sheet with one unset pick per lined team for the
// group's season.
func (r *SheetRepository) CreateSheet(ctx context.Context, groupID, userID string, seasonYear int) (*store.Sheet, error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sheet transaction: %w", err)
	}
	defer tx.Rollback()

	sheet := &store.Sheet{GroupID: groupID, UserID: userID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO sheets (group_id, user_id)
		VALUES ($1, $2)
		RETURNING sheet_id, created_at, updated_at
	`, groupID, userID).Scan(&sheet.SheetID, &sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting sheet: %w", err)
	}

	// Picks start unset, one per team with a published line.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO picks (sheet_id, team_id, line, direction)
		SELECT $1, l.team_id, l.value, 'unset'
		FROM lines l
		WHERE l.season_year = $2
	`, sheet.SheetID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("inserting picks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sheet transaction: %w", err)
	}

	return sheet, nil
}

func scanSheetPicks(rows *sql.Rows) ([]*store.SheetPick, error) {
	var picks []*store.SheetPick
	for rows.Next() {
		pick := &store.SheetPick{}
		err := rows.Scan(
			&pick.PickID, &pick.SheetID, &pick.UserID, &pick.TeamID,
			&pick.TeamCity, &pick.TeamName, &pick.Line, &pick.Direction,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pick: %w", err)
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}
