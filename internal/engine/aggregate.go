package engine

import (
	"sort"
	"strings"
)

// Aggregate settles every resolved pick on a sheet against the supplied
// standings and folds the verdicts into a tally.
//
// Picks with an unset direction are skipped entirely: they appear neither in
// Results nor in Total. The emitted Results are sorted by team display name,
// ascending and case-insensitive, a caller-visible rendering contract.
//
// The function is deterministic: identical inputs yield identical output, and
// it never consults the wall clock.
func Aggregate(picks []Pick, standings map[string]TeamStanding, mode Mode, totalGames int) SheetTally {
	tally := SheetTally{Results: []PickResultDetail{}}

	for _, pick := range picks {
		if !pick.Direction.IsSet() {
			continue
		}

		st, found := standings[pick.TeamID]
		ref := referenceWins(st, found, mode, totalGames)
		result := Settle(pick.Direction, pick.Line, ref)

		detail := PickResultDetail{
			TeamID:          pick.TeamID,
			TeamName:        pick.TeamName,
			Line:            pick.Line,
			Direction:       pick.Direction,
			ActualWins:      st.Wins,
			GamesPlayed:     st.GamesPlayed,
			ProjectedWins:   ProjectedWins(st.Wins, st.GamesPlayed, totalGames, false),
			PythagoreanWins: PythagoreanWins(st.RunsScored, st.RunsAllowed, st.GamesPlayed, totalGames),
			Result:          result,
			MissingSnapshot: !found,
		}
		if mode == ModeFinal && found {
			// The season is complete: actual wins are the projection.
			detail.GamesPlayed = totalGames
			detail.ProjectedWins = float64(st.Wins)
		}

		tally.Results = append(tally.Results, detail)
		tally.count(result)
		if !found {
			tally.MissingSnapshots++
		}
	}

	sort.SliceStable(tally.Results, func(i, j int) bool {
		return strings.ToLower(tally.Results[i].TeamName) < strings.ToLower(tally.Results[j].TeamName)
	})

	return tally
}

// Tally settles a sheet counting verdicts only, without building the
// per-pick breakdown. The leaderboard builder uses this path.
func Tally(picks []Pick, standings map[string]TeamStanding, mode Mode, totalGames int) SheetTally {
	var tally SheetTally

	for _, pick := range picks {
		if !pick.Direction.IsSet() {
			continue
		}

		st, found := standings[pick.TeamID]
		ref := referenceWins(st, found, mode, totalGames)
		tally.count(Settle(pick.Direction, pick.Line, ref))
		if !found {
			tally.MissingSnapshots++
		}
	}

	return tally
}

func (t *SheetTally) count(r Result) {
	switch r {
	case ResultWin:
		t.Wins++
	case ResultLoss:
		t.Losses++
	case ResultPush:
		t.Pushes++
	}
	t.Total++
}
