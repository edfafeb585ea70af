package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names shared with consumers.
const (
	StandingsStream   = "standings.ingested.mlb"
	LeaderboardStream = "leaderboards.dirty"
)

// StandingsIngestedEvent announces that one full day of snapshots landed.
type StandingsIngestedEvent struct {
	SeasonYear int    `json:"season_year"`
	Date       string `json:"date"`
	TeamCount  int    `json:"team_count"`
	Source     string `json:"source"`
}

// RedisPublisher publishes ingestion events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishStandingsIngested publishes a standings-ingested event to the stream
func (rp *RedisPublisher) PublishStandingsIngested(ctx context.Context, event StandingsIngestedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StandingsStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishLeaderboardsDirty signals that cached leaderboards for a season are
// stale and clients should re-fetch.
func (rp *RedisPublisher) PublishLeaderboardsDirty(ctx context.Context, seasonYear int) error {
	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: LeaderboardStream,
		Values: map[string]interface{}{
			"season_year": seasonYear,
			"timestamp":   time.Now().Unix(),
		},
	}).Err()
}
