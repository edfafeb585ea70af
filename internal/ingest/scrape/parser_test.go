package scrape

import "testing"

const standingsTableHTML = `
<html><body>
<table>
  <thead>
    <tr><th>AL East</th><th>W</th><th>L</th><th>PCT</th><th>RS</th><th>RA</th><th>STRK</th></tr>
  </thead>
  <tbody>
    <tr><th>New York Yankees</th><td>45</td><td>36</td><td>.556</td><td>420</td><td>380</td><td>W3</td></tr>
    <tr><th>Tampa Bay Rays</th><td>40</td><td>41</td><td>.494</td><td>350</td><td>360</td><td>L1</td></tr>
    <tr><th></th><td></td><td></td><td></td><td></td><td></td><td></td></tr>
  </tbody>
</table>
<table>
  <thead>
    <tr><th>Injuries</th><th>Player</th></tr>
  </thead>
  <tbody>
    <tr><th>Some Player</th><td>Day-to-day</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseStandingsFromHTML(t *testing.T) {
	doc, err := ParseHTML(standingsTableHTML)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}

	rows, err := ParseStandings(doc)
	if err != nil {
		t.Fatalf("ParseStandings() error = %v", err)
	}

	// The injuries table has no W/L columns and the blank row parses to 0-0,
	// so only the two real records survive.
	if len(rows) != 2 {
		t.Fatalf("ParseStandings() returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.TeamName != "New York Yankees" {
		t.Errorf("TeamName = %q, want New York Yankees", first.TeamName)
	}
	if first.Wins != 45 || first.Losses != 36 {
		t.Errorf("record = %d-%d, want 45-36", first.Wins, first.Losses)
	}
	if first.RunsScored != 420 || first.RunsAllowed != 380 {
		t.Errorf("runs = %d/%d, want 420/380", first.RunsScored, first.RunsAllowed)
	}
	if first.Streak != "W3" {
		t.Errorf("streak = %q, want W3", first.Streak)
	}
}

func TestMatchTeam(t *testing.T) {
	lookup := map[string]string{
		"new york yankees": "nyy",
		"yankees":          "nyy",
		"nyy":              "nyy",
		"tampa bay rays":   "tb",
	}

	tests := []struct {
		name   string
		cell   string
		wantID string
		wantOK bool
	}{
		{"exact match", "New York Yankees", "nyy", true},
		{"abbreviation", "NYY", "nyy", true},
		{"clinch marker suffix", "New York Yankees - z", "nyy", true},
		{"unknown team", "Montreal Expos", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := matchTeam(lookup, tt.cell)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("matchTeam(%q) = (%q, %v), want (%q, %v)", tt.cell, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
