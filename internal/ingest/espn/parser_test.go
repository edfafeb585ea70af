package espn

import "testing"

func standingsPayload(entries ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"children": []interface{}{
			map[string]interface{}{
				"name": "American League",
				"standings": map[string]interface{}{
					"entries": entries,
				},
			},
		},
	}
}

func teamEntry(id, abbr, location, name string, stats ...map[string]interface{}) map[string]interface{} {
	statList := make([]interface{}, 0, len(stats))
	for _, s := range stats {
		statList = append(statList, s)
	}
	return map[string]interface{}{
		"team": map[string]interface{}{
			"id":           id,
			"abbreviation": abbr,
			"location":     location,
			"name":         name,
		},
		"stats": statList,
	}
}

func stat(name string, value float64) map[string]interface{} {
	return map[string]interface{}{"name": name, "value": value}
}

func TestParseStandings(t *testing.T) {
	payload := standingsPayload(
		teamEntry("10", "NYY", "New York", "Yankees",
			stat("wins", 45),
			stat("losses", 36),
			stat("gamesPlayed", 81),
			stat("pointsFor", 420),
			stat("pointsAgainst", 380),
			map[string]interface{}{"name": "streak", "displayValue": "W3"},
		),
	)

	rows, err := ParseStandings(payload)
	if err != nil {
		t.Fatalf("ParseStandings() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ParseStandings() returned %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.Team.ESPNID != "10" || row.Team.Abbreviation != "NYY" {
		t.Errorf("team = %+v, want id=10 abbr=NYY", row.Team)
	}
	if row.Wins != 45 || row.Losses != 36 || row.GamesPlayed != 81 {
		t.Errorf("record = %d-%d in %d games, want 45-36 in 81", row.Wins, row.Losses, row.GamesPlayed)
	}
	if row.RunsScored != 420 || row.RunsAllowed != 380 {
		t.Errorf("runs = %d/%d, want 420/380", row.RunsScored, row.RunsAllowed)
	}
	if row.Streak != "W3" {
		t.Errorf("streak = %q, want W3", row.Streak)
	}
}

func TestParseStandingsGamesPlayedFallback(t *testing.T) {
	payload := standingsPayload(
		teamEntry("19", "LAD", "Los Angeles", "Dodgers",
			stat("wins", 50),
			stat("losses", 30),
		),
	)

	rows, err := ParseStandings(payload)
	if err != nil {
		t.Fatalf("ParseStandings() error = %v", err)
	}
	if got := rows[0].GamesPlayed; got != 80 {
		t.Errorf("GamesPlayed = %d, want wins+losses = 80", got)
	}
}

func TestParseStandingsSkipsEntriesWithoutTeam(t *testing.T) {
	payload := standingsPayload(
		map[string]interface{}{"stats": []interface{}{}},
		teamEntry("30", "TB", "Tampa Bay", "Rays",
			stat("wins", 40),
			stat("losses", 41),
		),
	)

	rows, err := ParseStandings(payload)
	if err != nil {
		t.Fatalf("ParseStandings() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ParseStandings() returned %d rows, want 1 (entry without team skipped)", len(rows))
	}
	if rows[0].Team.Abbreviation != "TB" {
		t.Errorf("kept entry = %s, want TB", rows[0].Team.Abbreviation)
	}
}

func TestParseStandingsFlatPayload(t *testing.T) {
	// Some dates return a flat object with no league children.
	payload := map[string]interface{}{
		"standings": map[string]interface{}{
			"entries": []interface{}{
				teamEntry("12", "SEA", "Seattle", "Mariners",
					stat("wins", 20),
					stat("losses", 15),
				),
			},
		},
	}

	rows, err := ParseStandings(payload)
	if err != nil {
		t.Fatalf("ParseStandings() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Team.Abbreviation != "SEA" {
		t.Fatalf("ParseStandings() = %v, want one SEA row", rows)
	}
}

func TestParseStandingsEmptyPayload(t *testing.T) {
	if _, err := ParseStandings(map[string]interface{}{}); err == nil {
		t.Error("ParseStandings() on empty payload should error")
	}
}
