package espn

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

// Ingester handles the ingestion of ESPN standings into the database.
type Ingester struct {
	client        *Client
	db            *store.Database
	standingsRepo *repository.StandingsRepository
	teamRepo      *repository.TeamRepository

	mu        sync.Mutex
	teamCache *teamLookup
}

type teamLookup struct {
	byAbbr map[string]string
	byESPN map[string]string
}

// NewIngester creates a new ESPN standings ingester using the default API base.
func NewIngester(db *store.Database) *Ingester {
	return NewIngesterWithBaseURL(db, "")
}

// NewIngesterWithBaseURL creates an ingester overriding the ESPN base URL.
func NewIngesterWithBaseURL(db *store.Database, baseURL string) *Ingester {
	var client *Client
	if strings.TrimSpace(baseURL) != "" {
		client = New(baseURL)
	} else {
		client = NewClient()
	}

	return &Ingester{
		client:        client,
		db:            db,
		standingsRepo: repository.NewStandingsRepository(db),
		teamRepo:      repository.NewTeamRepository(db),
	}
}

// IngestStandings fetches and persists one full day of snapshots. The whole
// day is written in a single transaction so concurrent readers never see a
// partially-ingested date. Returns the number of teams written.
func (i *Ingester) IngestStandings(ctx context.Context, seasonYear int, date time.Time) (int, error) {
	data, err := i.client.FetchStandings(ctx, BaseballMLB, seasonYear, date)
	if err != nil {
		return 0, fmt.Errorf("fetching standings: %w", err)
	}

	rows, err := ParseStandings(data)
	if err != nil {
		return 0, fmt.Errorf("parsing standings: %w", err)
	}

	snapshots, err := i.toSnapshots(ctx, rows, seasonYear, date)
	if err != nil {
		return 0, err
	}

	if err := i.standingsRepo.UpsertDay(ctx, snapshots); err != nil {
		return 0, fmt.Errorf("persisting snapshots: %w", err)
	}

	log.Printf("[espn] Ingested %d team snapshots for %s", len(snapshots), date.Format("2006-01-02"))
	return len(snapshots), nil
}

func (i *Ingester) toSnapshots(ctx context.Context, rows []*StandingRow, seasonYear int, date time.Time) ([]*store.StandingsSnapshot, error) {
	lookup, err := i.teams(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*store.StandingsSnapshot, 0, len(rows))
	for _, row := range rows {
		teamID, ok := lookup.byESPN[row.Team.ESPNID]
		if !ok {
			teamID, ok = lookup.byAbbr[strings.ToUpper(row.Team.Abbreviation)]
		}
		if !ok {
			log.Printf("[espn] Warning: no team mapping for %s (%s %s), skipping", row.Team.Abbreviation, row.Team.Location, row.Team.Name)
			continue
		}

		snapshots = append(snapshots, &store.StandingsSnapshot{
			TeamID:       teamID,
			SeasonYear:   seasonYear,
			SnapshotDate: date,
			Wins:         row.Wins,
			Losses:       row.Losses,
			GamesPlayed:  row.GamesPlayed,
			RunsScored:   row.RunsScored,
			RunsAllowed:  row.RunsAllowed,
			Streak:       sql.NullString{String: row.Streak, Valid: row.Streak != ""},
		})
	}

	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no standings rows mapped to known teams")
	}

	return snapshots, nil
}

// teams loads and caches the team ID lookup tables.
func (i *Ingester) teams(ctx context.Context) (*teamLookup, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.teamCache != nil {
		return i.teamCache, nil
	}

	teams, err := i.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	lookup := &teamLookup{
		byAbbr: make(map[string]string, len(teams)),
		byESPN: make(map[string]string, len(teams)),
	}
	for _, team := range teams {
		lookup.byAbbr[strings.ToUpper(team.Abbreviation)] = team.TeamID
		if team.ExternalID.Valid {
			lookup.byESPN[team.ExternalID.String] = team.TeamID
		}
	}

	i.teamCache = lookup
	return lookup, nil
}
