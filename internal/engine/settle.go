package engine

// Settle resolves a single over/under pick against a reference win total.
// It is total over its numeric domain: no I/O, no errors. Callers filter out
// unset picks before invoking it.
//
// referenceWins may be a pace projection, a Pythagorean projection, or a
// season-final win count; the comparison is agnostic to the source. Where a
// pace projection is used it must be computed with full precision.
func Settle(direction Direction, line, referenceWins float64) Result {
	switch {
	case referenceWins > line:
		if direction == DirectionOver {
			return ResultWin
		}
		return ResultLoss
	case referenceWins < line:
		if direction == DirectionUnder {
			return ResultWin
		}
		return ResultLoss
	default:
		return ResultPush
	}
}

// referenceWins derives the win total a pick settles against.
//
// Historical mode recalculates the pace projection with full precision to
// avoid false pushes. Final mode takes the season's actual win total. A
// missing snapshot settles against zero wins rather than failing the sheet.
func referenceWins(st TeamStanding, found bool, mode Mode, totalGames int) float64 {
	if !found {
		return 0
	}
	if mode == ModeFinal {
		return float64(st.Wins)
	}
	if st.GamesPlayed == 0 {
		return 0
	}
	return ProjectedWins(st.Wins, st.GamesPlayed, totalGames, true)
}
