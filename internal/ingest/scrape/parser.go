package scrape

import (
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StandingRow is one team's record scraped from the standings table.
type StandingRow struct {
	TeamName    string
	Wins        int
	Losses      int
	RunsScored  int
	RunsAllowed int
	Streak      string
}

// standings table column headers we care about
const (
	colWins        = "W"
	colLosses      = "L"
	colRunsScored  = "RS"
	colRunsAllowed = "RA"
	colStreak      = "STRK"
)

// ParseStandings extracts team records from the rendered standings page.
// The page renders one table per division; rows that don't yield a team
// name and a win/loss record are skipped.
func ParseStandings(doc *goquery.Document) ([]StandingRow, error) {
	var rows []StandingRow

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		columns := headerColumns(table)
		if len(columns) == 0 {
			return
		}

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			row := parseStandingsRow(tr, columns)
			if row != nil {
				rows = append(rows, *row)
			}
		})
	})

	log.Printf("[scrape] Parsed %d standings rows", len(rows))
	return rows, nil
}

// headerColumns maps header labels to cell indices for one table
func headerColumns(table *goquery.Selection) map[string]int {
	columns := map[string]int{}
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		label := strings.ToUpper(strings.TrimSpace(th.Text()))
		if label != "" {
			columns[label] = i
		}
	})

	// A usable table needs at least wins and losses.
	if _, ok := columns[colWins]; !ok {
		return nil
	}
	if _, ok := columns[colLosses]; !ok {
		return nil
	}
	return columns
}

func parseStandingsRow(tr *goquery.Selection, columns map[string]int) *StandingRow {
	cells := tr.Find("th, td")
	if cells.Length() < 3 {
		return nil
	}

	row := &StandingRow{
		// The team cell carries extra markup; the visible text starts
		// with the team name.
		TeamName: strings.TrimSpace(cells.First().Text()),
	}
	if row.TeamName == "" {
		return nil
	}

	cellInt := func(label string) int {
		idx, ok := columns[label]
		if !ok || idx >= cells.Length() {
			return 0
		}
		val, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(idx).Text()))
		return val
	}

	row.Wins = cellInt(colWins)
	row.Losses = cellInt(colLosses)
	row.RunsScored = cellInt(colRunsScored)
	row.RunsAllowed = cellInt(colRunsAllowed)

	if idx, ok := columns[colStreak]; ok && idx < cells.Length() {
		row.Streak = strings.TrimSpace(cells.Eq(idx).Text())
	}

	if row.Wins == 0 && row.Losses == 0 {
		return nil
	}

	return row
}
