package espn

import (
	"fmt"
	"strconv"
)

// ESPN stat names for dynamic parsing (more robust than hardcoded indices)
const (
	statNameWins        = "wins"
	statNameLosses      = "losses"
	statNameGamesPlayed = "gamesPlayed"
	statNamePointsFor   = "pointsFor"
	statNamePointsAgnst = "pointsAgainst"
	statNameStreak      = "streak"
)

// ParseStandings extracts every team's record from a standings payload. The
// payload groups teams under league "children"; rows with no team block are
// skipped with a warning rather than failing the whole day.
func ParseStandings(standingsData map[string]interface{}) ([]*StandingRow, error) {
	var rows []*StandingRow

	groups := extractArray(standingsData, "children")
	if len(groups) == 0 {
		// Some season dates return a flat standings object.
		if entries := standingsEntries(standingsData); len(entries) > 0 {
			groups = []interface{}{standingsData}
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("standings payload has no children")
	}

	for _, groupInterface := range groups {
		group, ok := groupInterface.(map[string]interface{})
		if !ok {
			continue
		}

		for _, entryInterface := range standingsEntries(group) {
			entry, ok := entryInterface.(map[string]interface{})
			if !ok {
				continue
			}

			row, err := parseStandingEntry(entry)
			if err != nil {
				fmt.Printf("[parser] Warning: Skipping standings entry: %v\n", err)
				continue
			}
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("standings payload contained no entries")
	}

	return rows, nil
}

func standingsEntries(group map[string]interface{}) []interface{} {
	return extractArray(extractMap(group, "standings"), "entries")
}

func parseStandingEntry(entry map[string]interface{}) (*StandingRow, error) {
	team := extractMap(entry, "team")
	if len(team) == 0 {
		return nil, fmt.Errorf("entry has no team block")
	}

	row := &StandingRow{
		Team: TeamMeta{
			ESPNID:       extractString(team, "id"),
			Abbreviation: extractString(team, "abbreviation"),
			Location:     extractString(team, "location"),
			Name:         extractString(team, "name"),
		},
	}
	if row.Team.ESPNID == "" && row.Team.Abbreviation == "" {
		return nil, fmt.Errorf("team block has no identifiers")
	}

	for _, statInterface := range extractArray(entry, "stats") {
		stat, ok := statInterface.(map[string]interface{})
		if !ok {
			continue
		}

		switch extractString(stat, "name") {
		case statNameWins:
			row.Wins = extractInt(stat, "value")
		case statNameLosses:
			row.Losses = extractInt(stat, "value")
		case statNameGamesPlayed:
			row.GamesPlayed = extractInt(stat, "value")
		case statNamePointsFor:
			row.RunsScored = extractInt(stat, "value")
		case statNamePointsAgnst:
			row.RunsAllowed = extractInt(stat, "value")
		case statNameStreak:
			row.Streak = extractString(stat, "displayValue")
		}
	}

	// gamesPlayed is sometimes absent early in the season.
	if row.GamesPlayed == 0 {
		row.GamesPlayed = row.Wins + row.Losses
	}

	return row, nil
}

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case string:
			return val
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}
