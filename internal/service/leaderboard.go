package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/cache"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/engine"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

const (
	finalLeaderboardTTL      = time.Minute
	historicalLeaderboardTTL = 10 * time.Minute
)

// LeaderboardService builds ranked group leaderboards. Output is a pure
// function of (group, mode, date), so entries are cached in Redis under that
// key; the viewer flag is stamped after any cache load.
type LeaderboardService struct {
	groupRepo *repository.GroupRepository
	sheetRepo *repository.SheetRepository
	standings *StandingsService
	cache     *cache.RedisCache
	now       func() time.Time
}

// NewLeaderboardService creates a new leaderboard service. cache may be nil
// to disable caching.
func NewLeaderboardService(db *store.Database, redisCache *cache.RedisCache) *LeaderboardService {
	return &LeaderboardService{
		groupRepo: repository.NewGroupRepository(db),
		sheetRepo: repository.NewSheetRepository(db),
		standings: NewStandingsService(db),
		cache:     redisCache,
		now:       time.Now,
	}
}

// GetLeaderboard returns the ranked leaderboard for a group. Historical mode
// when date is non-nil, final mode otherwise.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, groupID, viewerID string, date *time.Time) ([]engine.LeaderboardEntry, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.Locked(s.now()) {
		return nil, ErrGroupNotLocked
	}

	key, ttl := leaderboardCacheKey(groupID, date)
	if s.cache != nil {
		var cached []engine.LeaderboardEntry
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("[leaderboard] cache read failed for %s: %v", key, err)
		} else if hit {
			return stampViewer(cached, viewerID), nil
		}
	}

	season, err := s.groupRepo.GetSeason(ctx, group.SeasonYear)
	if err != nil {
		return nil, err
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	groupPicks, err := s.sheetRepo.GetGroupPicks(ctx, groupID)
	if err != nil {
		return nil, err
	}

	standings, mode, err := s.standings.Resolve(ctx, group.SeasonYear, date)
	if err != nil {
		return nil, err
	}

	engineMembers := make([]engine.Member, 0, len(members))
	for _, m := range members {
		engineMembers = append(engineMembers, engine.Member{UserID: m.UserID, DisplayName: m.DisplayName})
	}

	picksByUser := make(map[string][]engine.Pick, len(members))
	for _, row := range groupPicks {
		picksByUser[row.UserID] = append(picksByUser[row.UserID], engine.Pick{
			TeamID:    row.TeamID,
			TeamName:  row.TeamCity + " " + row.TeamName,
			Line:      row.Line,
			Direction: engine.Direction(row.Direction),
		})
	}

	// Built viewer-free so the cached value serves every viewer.
	entries := engine.BuildLeaderboard(engineMembers, picksByUser, standings, mode, season.TotalGames, "")

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, entries, ttl); err != nil {
			log.Printf("[leaderboard] cache write failed for %s: %v", key, err)
		}
	}

	return stampViewer(entries, viewerID), nil
}

// InvalidateSeason drops cached leaderboards for every group playing a
// season. Called after a day's standings land.
func (s *LeaderboardService) InvalidateSeason(ctx context.Context, seasonYear int) error {
	if s.cache == nil {
		return nil
	}

	groupIDs, err := s.groupRepo.GetGroupsForSeason(ctx, seasonYear)
	if err != nil {
		return err
	}

	for _, groupID := range groupIDs {
		if err := s.cache.DeleteByPrefix(ctx, "leaderboard:"+groupID+":"); err != nil {
			return fmt.Errorf("invalidating leaderboard cache for group %s: %w", groupID, err)
		}
	}

	return nil
}

func leaderboardCacheKey(groupID string, date *time.Time) (string, time.Duration) {
	if date != nil {
		return fmt.Sprintf("leaderboard:%s:historical:%s", groupID, date.Format("2006-01-02")), historicalLeaderboardTTL
	}
	return fmt.Sprintf("leaderboard:%s:final", groupID), finalLeaderboardTTL
}

func stampViewer(entries []engine.LeaderboardEntry, viewerID string) []engine.LeaderboardEntry {
	for i := range entries {
		entries[i].IsCurrentUser = viewerID != "" && entries[i].UserID == viewerID
	}
	return entries
}
