package engine

// Direction is a user's call on a team's season win total.
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
	// DirectionUnset means the user has not chosen yet. Unset picks are
	// excluded from settlement entirely, not counted as pending.
	DirectionUnset Direction = "unset"
)

// IsSet reports whether the pick has an actual over/under call.
func (d Direction) IsSet() bool {
	return d == DirectionOver || d == DirectionUnder
}

// Result is the settled outcome of a single pick.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

// Mode selects how reference wins are derived from standings.
type Mode string

const (
	// ModeHistorical projects full-season wins from a dated snapshot.
	ModeHistorical Mode = "historical"
	// ModeFinal takes the season's actual win total as the final truth.
	ModeFinal Mode = "final"
)

// TeamStanding is one team's record as of a snapshot. In final mode Wins is
// the season's actual total and the other fields describe the last snapshot.
type TeamStanding struct {
	Wins        int
	Losses      int
	GamesPlayed int
	RunsScored  int
	RunsAllowed int
}

// Pick is a fully-resolved over/under pick. Callers resolve team references
// to an identifier and display name before handing picks to the engine.
type Pick struct {
	TeamID    string
	TeamName  string
	Line      float64
	Direction Direction
}

// PickResultDetail is one settled pick, shaped for rendering.
type PickResultDetail struct {
	TeamID          string    `json:"team_id"`
	TeamName        string    `json:"team_name"`
	Line            float64   `json:"line"`
	Direction       Direction `json:"direction"`
	ActualWins      int       `json:"actual_wins"`
	GamesPlayed     int       `json:"games_played"`
	ProjectedWins   float64   `json:"projected_wins"`
	PythagoreanWins float64   `json:"pythagorean_wins"`
	Result          Result    `json:"result"`
	MissingSnapshot bool      `json:"missing_snapshot,omitempty"`
}

// SheetTally is the settled summary of one user's sheet.
type SheetTally struct {
	Results []PickResultDetail `json:"results"`
	Wins    int                `json:"wins"`
	Losses  int                `json:"losses"`
	Pushes  int                `json:"pushes"`
	Total   int                `json:"total"`

	// MissingSnapshots counts resolved picks whose team had no snapshot
	// under the requested mode. Those picks settle against zero wins;
	// callers should surface this count rather than fail.
	MissingSnapshots int `json:"missing_snapshots,omitempty"`
}

// Member is one group member eligible for the leaderboard.
type Member struct {
	UserID      string
	DisplayName string
}

// LeaderboardEntry is one member's row, recomputed per request.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Pushes        int    `json:"pushes"`
	Total         int    `json:"total"`
	WinPct        int    `json:"win_pct"`
	Rank          int    `json:"rank"`
	IsCurrentUser bool   `json:"is_current_user"`
}
