package engine

import (
	"math"
	"testing"
)

func TestProjectedWins_ZeroGamesPlayed(t *testing.T) {
	for _, precise := range []bool{true, false} {
		for _, total := range []int{82, 162, 1} {
			if got := ProjectedWins(0, 0, total, precise); got != 0 {
				t.Errorf("ProjectedWins(0, 0, %d, %v) = %v, want 0", total, precise, got)
			}
			// Non-zero wins with zero games played is degenerate input but
			// must still return 0 rather than dividing by zero.
			if got := ProjectedWins(5, 0, total, precise); got != 0 {
				t.Errorf("ProjectedWins(5, 0, %d, %v) = %v, want 0", total, precise, got)
			}
		}
	}
}

func TestProjectedWins_PerfectPace(t *testing.T) {
	if got := ProjectedWins(81, 81, 162, true); got != 162 {
		t.Errorf("ProjectedWins(81, 81, 162, true) = %v, want 162", got)
	}
}

func TestProjectedWins_DisplayRounding(t *testing.T) {
	// 45 wins in 80 games projects to 91.125; display mode rounds to one
	// decimal, precise mode must not.
	if got := ProjectedWins(45, 80, 162, false); got != 91.1 {
		t.Errorf("display ProjectedWins(45, 80) = %v, want 91.1", got)
	}
	precise := ProjectedWins(45, 80, 162, true)
	if math.Abs(precise-91.125) > 1e-9 {
		t.Errorf("precise ProjectedWins(45, 80) = %v, want 91.125", precise)
	}
	if precise == 91.1 {
		t.Error("precise projection leaked display rounding")
	}
}

func TestProjectedWins_MonotonicInWins(t *testing.T) {
	const gamesPlayed = 80
	prev := math.Inf(-1)
	for wins := 0; wins <= gamesPlayed; wins++ {
		got := ProjectedWins(wins, gamesPlayed, 162, true)
		if got < prev {
			t.Fatalf("ProjectedWins(%d, %d) = %v < ProjectedWins(%d, %d) = %v", wins, gamesPlayed, got, wins-1, gamesPlayed, prev)
		}
		prev = got
	}
}

func TestPythagoreanWins(t *testing.T) {
	tests := []struct {
		name                 string
		rs, ra, games, total int
		want                 float64
	}{
		{"even run differential is a .500 pace", 400, 400, 81, 162, 81},
		{"zero runs allowed", 400, 0, 81, 162, 0},
		{"zero runs scored", 0, 400, 81, 162, 0},
		{"zero games played", 400, 380, 0, 162, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PythagoreanWins(tt.rs, tt.ra, tt.games, tt.total); got != tt.want {
				t.Errorf("PythagoreanWins(%d, %d, %d, %d) = %v, want %v", tt.rs, tt.ra, tt.games, tt.total, got, tt.want)
			}
		})
	}
}

func TestPythagoreanWins_OutscoringTeamProjectsAboveHalf(t *testing.T) {
	got := PythagoreanWins(450, 400, 81, 162)
	if got <= 81 {
		t.Errorf("PythagoreanWins(450, 400, 81, 162) = %v, want > 81", got)
	}
	if got >= 162 {
		t.Errorf("PythagoreanWins(450, 400, 81, 162) = %v, want < 162", got)
	}
}
