package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/publisher"
)

// Relay tails the ingestion event streams and pushes change notices to
// connected clients. Clients re-fetch affected leaderboards over REST.
type Relay struct {
	client *redis.Client
	hub    *Hub
	cancel context.CancelFunc
}

// NewRelay creates a relay reading from the given Redis client
func NewRelay(client *redis.Client, hub *Hub) *Relay {
	return &Relay{client: client, hub: hub}
}

// Run blocks, tailing both streams until the context is cancelled
func (r *Relay) Run(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	// Only events published after startup matter to live clients.
	lastIDs := map[string]string{
		publisher.StandingsStream:   "$",
		publisher.LeaderboardStream: "$",
	}

	for {
		if ctx.Err() != nil {
			return
		}

		streams := []string{
			publisher.StandingsStream, publisher.LeaderboardStream,
			lastIDs[publisher.StandingsStream], lastIDs[publisher.LeaderboardStream],
		}

		results, err := r.client.XRead(ctx, &redis.XReadArgs{
			Streams: streams,
			Block:   5 * time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Relay stream read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastIDs[stream.Stream] = msg.ID
				r.forward(stream.Stream, msg)
			}
		}
	}
}

// Stop cancels the relay loop
func (r *Relay) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Relay) forward(stream string, msg redis.XMessage) {
	notice := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	switch stream {
	case publisher.StandingsStream:
		notice["type"] = "standings_ingested"
		if raw, ok := msg.Values["data"].(string); ok {
			var event publisher.StandingsIngestedEvent
			if err := json.Unmarshal([]byte(raw), &event); err == nil {
				notice["season_year"] = event.SeasonYear
				notice["date"] = event.Date
				notice["team_count"] = event.TeamCount
				notice["source"] = event.Source
			}
		}
	case publisher.LeaderboardStream:
		notice["type"] = "leaderboards_dirty"
		if year, ok := msg.Values["season_year"]; ok {
			notice["season_year"] = year
		}
	default:
		return
	}

	data, err := json.Marshal(notice)
	if err != nil {
		log.Printf("Relay marshal error: %v", err)
		return
	}

	r.hub.Broadcast(data)
}
