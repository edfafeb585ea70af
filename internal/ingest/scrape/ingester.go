package scrape

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// Ingester persists scraped standings as snapshots. Used as the fallback
// source when the primary provider is unavailable; run totals may lag a day
// behind the provider's.
type Ingester struct {
	client        *Client
	db            *store.Database
	standingsRepo *repository.StandingsRepository
	teamRepo      *repository.TeamRepository

	mu        sync.Mutex
	teamsByName map[string]string
}

// NewIngester creates a new scrape ingester
func NewIngester(db *store.Database) (*Ingester, error) {
	client, err := NewClient()
	if err != nil {
		return nil, err
	}

	return &Ingester{
		client:        client,
		db:            db,
		standingsRepo: repository.NewStandingsRepository(db),
		teamRepo:      repository.NewTeamRepository(db),
	}, nil
}

// Close releases browser resources
func (i *Ingester) Close() {
	if i.client != nil {
		i.client.Close()
	}
}

// IngestStandings scrapes and persists one full day of snapshots in a
// single transaction. Returns the number of teams written.
func (i *Ingester) IngestStandings(ctx context.Context, seasonYear int, date time.Time) (int, error) {
	html, err := i.client.FetchStandingsPage(ctx, seasonYear)
	if err != nil {
		return 0, fmt.Errorf("fetching standings page: %w", err)
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return 0, err
	}

	rows, err := ParseStandings(doc)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("standings page contained no rows")
	}

	lookup, err := i.teams(ctx)
	if err != nil {
		return 0, err
	}

	snapshots := make([]*store.StandingsSnapshot, 0, len(rows))
	for _, row := range rows {
		teamID, ok := matchTeam(lookup, row.TeamName)
		if !ok {
			log.Printf("[scrape] Warning: no team mapping for %q, skipping", row.TeamName)
			continue
		}

		snapshots = append(snapshots, &store.StandingsSnapshot{
			TeamID:       teamID,
			SeasonYear:   seasonYear,
			SnapshotDate: date,
			Wins:         row.Wins,
			Losses:       row.Losses,
			GamesPlayed:  row.Wins + row.Losses,
			RunsScored:   row.RunsScored,
			RunsAllowed:  row.RunsAllowed,
			Streak:       sql.NullString{String: row.Streak, Valid: row.Streak != ""},
		})
	}

	if len(snapshots) == 0 {
		return 0, fmt.Errorf("no scraped rows mapped to known teams")
	}

	if err := i.standingsRepo.UpsertDay(ctx, snapshots); err != nil {
		return 0, fmt.Errorf("persisting snapshots: %w", err)
	}

	log.Printf("[scrape] Ingested %d team snapshots for %s", len(snapshots), date.Format("2006-01-02"))
	return len(snapshots), nil
}

// teams loads and caches a lowercase name lookup
func (i *Ingester) teams(ctx context.Context) (map[string]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.teamsByName != nil {
		return i.teamsByName, nil
	}

	teams, err := i.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	lookup := make(map[string]string, len(teams)*3)
	for _, team := range teams {
		lookup[strings.ToLower(team.DisplayName())] = team.TeamID
		lookup[strings.ToLower(team.Name)] = team.TeamID
		lookup[strings.ToLower(team.Abbreviation)] = team.TeamID
	}

	i.teamsByName = lookup
	return lookup, nil
}

// matchTeam resolves a scraped cell to a team ID. Cells sometimes prepend
// rank numbers or append clinch markers, so fall back to a contains match.
func matchTeam(lookup map[string]string, cell string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(cell))
	if id, ok := lookup[name]; ok {
		return id, true
	}

	for key, id := range lookup {
		if len(key) > 3 && strings.Contains(name, key) {
			return id, true
		}
	}

	return "", false
}
