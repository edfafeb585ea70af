package engine

import "math"

// DefaultSeasonGames is a full MLB regular season.
const DefaultSeasonGames = 162

// pythagoreanExponent is the baseball run-differential exponent.
const pythagoreanExponent = 1.83

// ProjectedWins extrapolates a full-season win total from a partial-season
// record at the team's current pace.
//
// With precise=false the result is rounded to one decimal for display. Any
// value that feeds Settle must be requested with precise=true: a rounded
// projection can land exactly on a half-integer line and manufacture a
// spurious push.
func ProjectedWins(wins, gamesPlayed, totalGames int, precise bool) float64 {
	if gamesPlayed == 0 {
		return 0
	}

	projected := float64(wins) / float64(gamesPlayed) * float64(totalGames)
	if precise {
		return projected
	}
	return roundTo1(projected)
}

// PythagoreanWins estimates a full-season win total from run differential.
// This projection is display/trend-only and never feeds settlement.
func PythagoreanWins(runsScored, runsAllowed, gamesPlayed, totalGames int) float64 {
	if gamesPlayed == 0 || runsScored == 0 || runsAllowed == 0 {
		return 0
	}

	rs := math.Pow(float64(runsScored), pythagoreanExponent)
	ra := math.Pow(float64(runsAllowed), pythagoreanExponent)
	winPct := rs / (rs + ra)

	return roundTo1(winPct * float64(totalGames))
}

// roundTo1 rounds to one decimal place, half up.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
