package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// ErrGroupNotFound is returned when a group ID does not exist.
var ErrGroupNotFound = fmt.Errorf("group not found")

// GroupRepository handles group and membership data access
type GroupRepository struct {
	db *store.Database
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *store.Database) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetByID finds a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (*store.Group, error) {
	query := `
		SELECT group_id, name, season_year, owner_id, lock_date, created_at, updated_at
		FROM groups
		WHERE group_id = $1
	`

	group := &store.Group{}
	err := r.db.DB().QueryRowContext(ctx, query, groupID).Scan(
		&group.GroupID, &group.Name, &group.SeasonYear, &group.OwnerID,
		&group.LockDate, &group.CreatedAt, &group.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying group: %w", err)
	}

	return group, nil
}

// GetMembers returns a group's members in join order. Join order is the
// leaderboard's tie-break of last resort, so it must be stable.
func (r *GroupRepository) GetMembers(ctx context.Context, groupID string) ([]*store.User, error) {
	query := `
		SELECT u.user_id, u.display_name, u.email, u.created_at, u.updated_at
		FROM group_members gm
		JOIN users u ON u.user_id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at, u.user_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying group members: %w", err)
	}
	defer rows.Close()

	var users []*store.User
	for rows.Next() {
		user := &store.User{}
		err := rows.Scan(&user.UserID, &user.DisplayName, &user.Email, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning group member: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// AddMember records a user's membership in a group. Idempotent, so joining
// twice keeps the original joined_at and leaderboard position.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`

	if _, err := r.db.DB().ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("adding group member: %w", err)
	}

	return nil
}

// GetSeason returns the season a group plays against
func (r *GroupRepository) GetSeason(ctx context.Context, seasonYear int) (*store.Season, error) {
	query := `
		SELECT season_year, total_games, start_date, end_date, is_active, created_at, updated_at
		FROM seasons
		WHERE season_year = $1
	`

	season := &store.Season{}
	err := r.db.DB().QueryRowContext(ctx, query, seasonYear).Scan(
		&season.SeasonYear, &season.TotalGames, &season.StartDate, &season.EndDate,
		&season.IsActive, &season.CreatedAt, &season.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("season not found: %d", seasonYear)
	}
	if err != nil {
		return nil, fmt.Errorf("querying season: %w", err)
	}

	return season, nil
}

// GetGroupsForSeason returns the IDs of every group playing a season. Used
// for cache invalidation after a day's standings land.
func (r *GroupRepository) GetGroupsForSeason(ctx context.Context, seasonYear int) ([]string, error) {
	query := `
		SELECT group_id
		FROM groups
		WHERE season_year = $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("querying groups for season: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning group id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
