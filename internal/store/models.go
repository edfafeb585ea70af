package store

import (
	"database/sql"
	"time"
)

// Season represents one MLB season
type Season struct {
	SeasonYear int       `json:"season_year" db:"season_year"`
	TotalGames int       `json:"total_games" db:"total_games"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Team represents an MLB franchise
type Team struct {
	TeamID       string         `json:"team_id" db:"team_id"`
	ExternalID   sql.NullString `json:"external_id,omitempty" db:"external_id"`
	Abbreviation string         `json:"abbreviation" db:"abbreviation"`
	City         string         `json:"city" db:"city"`
	Name         string         `json:"name" db:"name"`
	League       sql.NullString `json:"league,omitempty" db:"league"`
	Division     sql.NullString `json:"division,omitempty" db:"division"`
	LogoURL      sql.NullString `json:"logo_url,omitempty" db:"logo_url"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// DisplayName is the city-plus-name form used everywhere picks are rendered.
func (t *Team) DisplayName() string {
	return t.City + " " + t.Name
}

// StandingsSnapshot is one team's record on one calendar date. At most one
// row exists per (team, season, date); rows are immutable once written and
// only the ingestion job writes them.
type StandingsSnapshot struct {
	SnapshotID   int            `json:"snapshot_id" db:"snapshot_id"`
	TeamID       string         `json:"team_id" db:"team_id"`
	SeasonYear   int            `json:"season_year" db:"season_year"`
	SnapshotDate time.Time      `json:"snapshot_date" db:"snapshot_date"`
	Wins         int            `json:"wins" db:"wins"`
	Losses       int            `json:"losses" db:"losses"`
	GamesPlayed  int            `json:"games_played" db:"games_played"`
	RunsScored   int            `json:"runs_scored" db:"runs_scored"`
	RunsAllowed  int            `json:"runs_allowed" db:"runs_allowed"`
	Streak       sql.NullString `json:"streak,omitempty" db:"streak"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Line is the fixed win-total threshold assigned to a (team, season) pair
// before the season starts. Immutable for the life of the season.
type Line struct {
	LineID     int       `json:"line_id" db:"line_id"`
	TeamID     string    `json:"team_id" db:"team_id"`
	SeasonYear int       `json:"season_year" db:"season_year"`
	Value      float64   `json:"value" db:"value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// User represents a registered user
type User struct {
	UserID      string    `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Email       string    `json:"email" db:"email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Group represents a pick group for one season. Picks lock at LockDate.
type Group struct {
	GroupID    string    `json:"group_id" db:"group_id"`
	Name       string    `json:"name" db:"name"`
	SeasonYear int       `json:"season_year" db:"season_year"`
	OwnerID    string    `json:"owner_id" db:"owner_id"`
	LockDate   time.Time `json:"lock_date" db:"lock_date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Locked reports whether the group's picks are locked as of now.
func (g *Group) Locked(now time.Time) bool {
	return !now.Before(g.LockDate)
}

// Sheet is one user's collection of picks for one group.
type Sheet struct {
	SheetID   string    `json:"sheet_id" db:"sheet_id"`
	GroupID   string    `json:"group_id" db:"group_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Pick is a single over/under call on a sheet. Direction is one of
// over, under, or unset; rows start unset and are mutable until lock.
type Pick struct {
	PickID    string    `json:"pick_id" db:"pick_id"`
	SheetID   string    `json:"sheet_id" db:"sheet_id"`
	TeamID    string    `json:"team_id" db:"team_id"`
	Line      float64   `json:"line" db:"line"`
	Direction string    `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SheetPick is a pick joined with its team's display fields, shaped the way
// the settlement services consume it.
type SheetPick struct {
	PickID    string  `json:"pick_id" db:"pick_id"`
	SheetID   string  `json:"sheet_id" db:"sheet_id"`
	UserID    string  `json:"user_id" db:"user_id"`
	TeamID    string  `json:"team_id" db:"team_id"`
	TeamCity  string  `json:"team_city" db:"team_city"`
	TeamName  string  `json:"team_name" db:"team_name"`
	Line      float64 `json:"line" db:"line"`
	Direction string  `json:"direction" db:"direction"`
}
