package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/cache"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/ingest"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/publisher"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/service"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// Orchestrator manages scheduled standings ingestion
type Orchestrator struct {
	db          *store.Database
	cache       *cache.RedisCache
	publisher   *publisher.RedisPublisher
	config      *Config
	ingester    *ingest.StandingsIngester
	leaderboard *service.LeaderboardService
	groupRepo   *repository.GroupRepository
	cancel      context.CancelFunc

	dailyCtx    context.Context
	dailyCancel context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	DailyIngestionHour   int           // Default: 6 (6 AM, after west-coast finals)
	SeasonYear           int           // e.g., 2025
	ESPNBaseURL          string        // empty for the default
	EnableDailyIngestion bool          // Default: true
	MaxRetries           int           // Default: 3
	RetryDelay           time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyIngestionHour:   6,
		SeasonYear:           time.Now().Year(),
		EnableDailyIngestion: true,
		MaxRetries:           3,
		RetryDelay:           5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(db *store.Database, redisCache *cache.RedisCache, redisPublisher *publisher.RedisPublisher, config *Config) (*Orchestrator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		db:          db,
		cache:       redisCache,
		publisher:   redisPublisher,
		config:      config,
		ingester:    ingest.NewStandingsIngester(db, redisPublisher, config.ESPNBaseURL),
		leaderboard: service.NewLeaderboardService(db, redisCache),
		groupRepo:   repository.NewGroupRepository(db),
	}, nil
}

// Start begins all scheduled tasks
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("Standings scheduler starting")
	log.Printf("Daily ingestion: %v (at %02d:00)", o.config.EnableDailyIngestion, o.config.DailyIngestionHour)
	log.Printf("Season: %d", o.config.SeasonYear)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableDailyIngestion {
		o.dailyCtx, o.dailyCancel = context.WithCancel(ctx)
		go o.runDailyIngestion(o.dailyCtx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
	o.ingester.Close()
}

// Stop cancels all scheduled tasks
func (o *Orchestrator) Stop() {
	if o.dailyCancel != nil {
		o.dailyCancel()
	}
	if o.cancel != nil {
		o.cancel()
	}
}

// runDailyIngestion waits for the configured hour each day and ingests
func (o *Orchestrator) runDailyIngestion(ctx context.Context) {
	log.Printf("→ Daily ingestion scheduler started (runs at %02d:00 daily)", o.config.DailyIngestionHour)

	for {
		// Calculate time until next run
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyIngestionHour, 0, 0, 0, now.Location())

		// If we've passed today's run time, schedule for tomorrow
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next daily ingestion: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Daily ingestion scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println("═══ Daily Ingestion Starting ═══")
			o.runDailyIngestionTask(ctx)
			log.Println("═══ Daily Ingestion Complete ═══")
		}
	}
}

// runDailyIngestionTask ingests the prior day's standings with retries.
// Yesterday rather than today: the provider has complete finals by morning.
func (o *Orchestrator) runDailyIngestionTask(ctx context.Context) {
	startTime := time.Now()
	date := time.Now().Add(-24 * time.Hour).Truncate(24 * time.Hour)

	// After the season ends, clamp to the final day so post-season runs
	// keep the final snapshot fresh instead of fetching empty dates.
	if season, err := o.groupRepo.GetSeason(ctx, o.config.SeasonYear); err != nil {
		log.Printf("  ⚠️  Season lookup failed: %v (ingesting %s as-is)", err, date.Format("2006-01-02"))
	} else if date.After(season.EndDate) {
		date = season.EndDate.Truncate(24 * time.Hour)
		log.Printf("Season %d is over; re-syncing final standings", o.config.SeasonYear)
	}

	log.Printf("Ingesting standings for %s", date.Format("2006-01-02"))

	var count int
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		count, err = o.ingester.IngestDay(ctx, o.config.SeasonYear, date)
		if err == nil {
			break
		}

		log.Printf("  ⚠️  Ingestion attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)
		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}
	if err != nil {
		log.Printf("❌ Daily ingestion failed after %d attempts: %v", o.config.MaxRetries, err)
		return
	}

	// Fresh standings make every cached leaderboard for the season stale.
	if err := o.leaderboard.InvalidateSeason(ctx, o.config.SeasonYear); err != nil {
		log.Printf("  ⚠️  Failed to invalidate leaderboard caches: %v", err)
	}
	if o.publisher != nil {
		if err := o.publisher.PublishLeaderboardsDirty(ctx, o.config.SeasonYear); err != nil {
			log.Printf("  ⚠️  Failed to publish leaderboards-dirty event: %v", err)
		}
	}

	log.Printf("✓ Daily ingestion complete: %d teams in %v", count, time.Since(startTime).Round(time.Second))
}
