package engine

import (
	"reflect"
	"testing"
)

func midSeasonStandings() map[string]TeamStanding {
	return map[string]TeamStanding{
		// Projects to 45/81*162 = 90 exactly.
		"nyy": {Wins: 45, Losses: 36, GamesPlayed: 81, RunsScored: 410, RunsAllowed: 380},
		// Projects to 50/80*162 = 101.25.
		"lad": {Wins: 50, Losses: 30, GamesPlayed: 80, RunsScored: 450, RunsAllowed: 350},
		// Projects to 30/80*162 = 60.75.
		"oak": {Wins: 30, Losses: 50, GamesPlayed: 80, RunsScored: 320, RunsAllowed: 420},
	}
}

func TestAggregate_SettlesResolvedPicks(t *testing.T) {
	picks := []Pick{
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 90, Direction: DirectionOver},
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionOver},
		{TeamID: "oak", TeamName: "Athletics", Line: 65.5, Direction: DirectionOver},
	}

	tally := Aggregate(picks, midSeasonStandings(), ModeHistorical, 162)

	if tally.Wins != 1 || tally.Losses != 1 || tally.Pushes != 1 || tally.Total != 3 {
		t.Fatalf("tally = %d/%d/%d (total %d), want 1/1/1 (total 3)", tally.Wins, tally.Losses, tally.Pushes, tally.Total)
	}

	byTeam := map[string]PickResultDetail{}
	for _, d := range tally.Results {
		byTeam[d.TeamID] = d
	}
	if byTeam["nyy"].Result != ResultPush {
		t.Errorf("nyy over 90 on a 90-win pace = %q, want push", byTeam["nyy"].Result)
	}
	if byTeam["lad"].Result != ResultWin {
		t.Errorf("lad over 95.5 on a 101.25-win pace = %q, want win", byTeam["lad"].Result)
	}
	if byTeam["oak"].Result != ResultLoss {
		t.Errorf("oak over 65.5 on a 60.75-win pace = %q, want loss", byTeam["oak"].Result)
	}
}

func TestAggregate_UnsetPicksExcluded(t *testing.T) {
	picks := []Pick{
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 89.5, Direction: DirectionOver},
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionUnset},
		{TeamID: "oak", TeamName: "Athletics", Line: 65.5},
	}

	tally := Aggregate(picks, midSeasonStandings(), ModeHistorical, 162)

	if tally.Total != 1 {
		t.Errorf("Total = %d, want 1 (unset picks excluded)", tally.Total)
	}
	if len(tally.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(tally.Results))
	}
	if tally.Results[0].TeamID != "nyy" {
		t.Errorf("Results[0].TeamID = %q, want nyy", tally.Results[0].TeamID)
	}
	if tally.Wins+tally.Losses+tally.Pushes != tally.Total {
		t.Errorf("counters %d/%d/%d do not sum to total %d", tally.Wins, tally.Losses, tally.Pushes, tally.Total)
	}
}

func TestAggregate_ResultsSortedByTeamName(t *testing.T) {
	picks := []Pick{
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 89.5, Direction: DirectionOver},
		{TeamID: "oak", TeamName: "athletics", Line: 65.5, Direction: DirectionUnder},
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionOver},
	}

	tally := Aggregate(picks, midSeasonStandings(), ModeHistorical, 162)

	var got []string
	for _, d := range tally.Results {
		got = append(got, d.TeamID)
	}
	// Case-insensitive ascending: "athletics" sorts first despite lowercase.
	want := []string{"oak", "lad", "nyy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("result order = %v, want %v", got, want)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	picks := []Pick{
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionOver},
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 90, Direction: DirectionUnder},
		{TeamID: "mia", TeamName: "Miami Marlins", Line: 70.5, Direction: DirectionUnder},
	}
	standings := midSeasonStandings()

	first := Aggregate(picks, standings, ModeHistorical, 162)
	second := Aggregate(picks, standings, ModeHistorical, 162)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregate_MissingSnapshotSettlesAgainstZero(t *testing.T) {
	picks := []Pick{
		{TeamID: "mia", TeamName: "Miami Marlins", Line: 70.5, Direction: DirectionOver},
		{TeamID: "wsh", TeamName: "Washington Nationals", Line: 75.5, Direction: DirectionUnder},
	}

	tally := Aggregate(picks, midSeasonStandings(), ModeHistorical, 162)

	if tally.MissingSnapshots != 2 {
		t.Errorf("MissingSnapshots = %d, want 2", tally.MissingSnapshots)
	}
	for _, d := range tally.Results {
		if !d.MissingSnapshot {
			t.Errorf("%s: MissingSnapshot = false, want true", d.TeamID)
		}
		switch d.Direction {
		case DirectionOver:
			if d.Result != ResultLoss {
				t.Errorf("%s: over against zero wins = %q, want loss", d.TeamID, d.Result)
			}
		case DirectionUnder:
			if d.Result != ResultWin {
				t.Errorf("%s: under against zero wins = %q, want win", d.TeamID, d.Result)
			}
		}
	}
}

func TestAggregate_FinalModeUsesActualWins(t *testing.T) {
	standings := map[string]TeamStanding{
		"nyy": {Wins: 94, Losses: 68, GamesPlayed: 162, RunsScored: 820, RunsAllowed: 720},
		// Shortened slate: actual wins are still the final truth, no projection.
		"lad": {Wins: 98, Losses: 63, GamesPlayed: 161, RunsScored: 860, RunsAllowed: 650},
	}
	picks := []Pick{
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 94, Direction: DirectionOver},
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionOver},
	}

	tally := Aggregate(picks, standings, ModeFinal, 162)

	byTeam := map[string]PickResultDetail{}
	for _, d := range tally.Results {
		byTeam[d.TeamID] = d
	}
	if byTeam["nyy"].Result != ResultPush {
		t.Errorf("nyy over 94 with 94 final wins = %q, want push", byTeam["nyy"].Result)
	}
	if byTeam["lad"].Result != ResultWin {
		t.Errorf("lad over 95.5 with 98 final wins = %q, want win", byTeam["lad"].Result)
	}
	for id, d := range byTeam {
		if d.GamesPlayed != 162 {
			t.Errorf("%s: final-mode GamesPlayed = %d, want 162", id, d.GamesPlayed)
		}
		if d.ProjectedWins != float64(standings[id].Wins) {
			t.Errorf("%s: final-mode ProjectedWins = %v, want actual %d", id, d.ProjectedWins, standings[id].Wins)
		}
	}
}

func TestTally_MatchesAggregateCounters(t *testing.T) {
	picks := []Pick{
		{TeamID: "nyy", TeamName: "New York Yankees", Line: 90, Direction: DirectionOver},
		{TeamID: "lad", TeamName: "Los Angeles Dodgers", Line: 95.5, Direction: DirectionOver},
		{TeamID: "oak", TeamName: "Athletics", Line: 65.5, Direction: DirectionUnder},
		{TeamID: "mia", TeamName: "Miami Marlins", Line: 70.5, Direction: DirectionUnset},
		{TeamID: "wsh", TeamName: "Washington Nationals", Line: 75.5, Direction: DirectionOver},
	}
	standings := midSeasonStandings()

	full := Aggregate(picks, standings, ModeHistorical, 162)
	counts := Tally(picks, standings, ModeHistorical, 162)

	if counts.Wins != full.Wins || counts.Losses != full.Losses || counts.Pushes != full.Pushes || counts.Total != full.Total || counts.MissingSnapshots != full.MissingSnapshots {
		t.Errorf("Tally = %+v, Aggregate counters = %d/%d/%d total %d missing %d", counts, full.Wins, full.Losses, full.Pushes, full.Total, full.MissingSnapshots)
	}
}

func TestAggregate_EmptyPicks(t *testing.T) {
	tally := Aggregate(nil, midSeasonStandings(), ModeHistorical, 162)

	if tally.Total != 0 || len(tally.Results) != 0 {
		t.Errorf("empty sheet tally = %+v, want all zeros", tally)
	}
}
