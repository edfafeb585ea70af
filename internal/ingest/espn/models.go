package espn

// TeamMeta captures ESPN team identifiers needed for mapping.
type TeamMeta struct {
	ESPNID       string
	Abbreviation string
	Location     string
	Name         string
}

// StandingRow is one team's record parsed from the standings payload.
type StandingRow struct {
	Team        TeamMeta
	Wins        int
	Losses      int
	GamesPlayed int
	RunsScored  int
	RunsAllowed int
	Streak      string
}
