package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/ingest/espn"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/ingest/scrape"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/publisher"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
)

// StandingsIngester handles daily standings ingestion with fallback logic
// Primary: ESPN API (structured, authoritative)
// Fallback: scraped standings page (survives provider outages)
type StandingsIngester struct {
	espnIngester   *espn.Ingester
	scrapeIngester *scrape.Ingester
	publisher      *publisher.RedisPublisher
	db             *store.Database
}

// NewStandingsIngester creates a new standings ingester with fallback support
func NewStandingsIngester(db *store.Database, pub *publisher.RedisPublisher, espnBaseURL string) *StandingsIngester {
	scrapeIngester, err := scrape.NewIngester(db)
	if err != nil {
		log.Printf("Warning: Failed to initialize scrape ingester: %v", err)
		// Continue without the scraper - ESPN will be the only source
		scrapeIngester = nil
	}

	return &StandingsIngester{
		espnIngester:   espn.NewIngesterWithBaseURL(db, espnBaseURL),
		scrapeIngester: scrapeIngester,
		publisher:      pub,
		db:             db,
	}
}

// Close releases resources
func (si *StandingsIngester) Close() {
	if si.scrapeIngester != nil {
		si.scrapeIngester.Close()
	}
}

// IngestDay ingests one calendar date's standings, trying ESPN first and
// falling back to the scraper. On success it publishes a standings-ingested
// event so consumers can drop stale leaderboards.
func (si *StandingsIngester) IngestDay(ctx context.Context, seasonYear int, date time.Time) (int, error) {
	count, espnErr := si.espnIngester.IngestStandings(ctx, seasonYear, date)
	source := "espn"

	if espnErr != nil {
		log.Printf("⚠️  ESPN ingestion failed: %v (falling back to scraper)", espnErr)

		if si.scrapeIngester == nil {
			return 0, fmt.Errorf("espn ingestion failed and no scraper available: %w", espnErr)
		}

		var scrapeErr error
		count, scrapeErr = si.scrapeIngester.IngestStandings(ctx, seasonYear, date)
		if scrapeErr != nil {
			return 0, fmt.Errorf("both sources failed: espn: %v; scrape: %w", espnErr, scrapeErr)
		}
		source = "scrape"
	}

	if si.publisher != nil {
		event := publisher.StandingsIngestedEvent{
			SeasonYear: seasonYear,
			Date:       date.Format("2006-01-02"),
			TeamCount:  count,
			Source:     source,
		}
		if err := si.publisher.PublishStandingsIngested(ctx, event); err != nil {
			log.Printf("Error publishing standings event: %v", err)
		}
	}

	return count, nil
}
