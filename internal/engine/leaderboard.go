package engine

import (
	"math"
	"sort"
)

// BuildLeaderboard folds every group member's picks into a ranked
// leaderboard. Every member produces exactly one entry; a member with no
// picks (or only unset picks) scores zeros across the board.
//
// Sort order is wins descending, win percentage descending. Members tied on
// both keys keep their relative input order, and ranks are assigned strictly
// sequentially; tied members do not share a rank. That matches the behavior
// users have always seen; do not "fix" it to competition ranking.
func BuildLeaderboard(members []Member, picksByUser map[string][]Pick, standings map[string]TeamStanding, mode Mode, totalGames int, viewerID string) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(members))

	for _, member := range members {
		tally := Tally(picksByUser[member.UserID], standings, mode, totalGames)

		winPct := 0
		if tally.Total > 0 {
			winPct = int(math.Round(float64(tally.Wins) / float64(tally.Total) * 100))
		}

		entries = append(entries, LeaderboardEntry{
			UserID:        member.UserID,
			DisplayName:   member.DisplayName,
			Wins:          tally.Wins,
			Losses:        tally.Losses,
			Pushes:        tally.Pushes,
			Total:         tally.Total,
			WinPct:        winPct,
			IsCurrentUser: member.UserID == viewerID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].WinPct > entries[j].WinPct
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
