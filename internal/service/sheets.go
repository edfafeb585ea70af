package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mrandyclark/spreads-on-toast-sub000/internal/engine"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store"
	"github.com/mrandyclark/spreads-on-toast-sub000/internal/store/repository"
)

// ErrGroupNotLocked is returned when settlement is requested before the
// group's lock date.
var ErrGroupNotLocked = errors.New("group picks are not locked yet")

// ErrGroupLocked is returned when a pick mutation is attempted after lock.
var ErrGroupLocked = errors.New("group picks are locked")

// ErrInvalidDirection is returned for a direction outside over/under/unset.
var ErrInvalidDirection = errors.New("invalid pick direction")

// ErrSheetExists is returned when a user already has a sheet in a group.
var ErrSheetExists = errors.New("sheet already exists")

// SheetService settles individual sheets and manages pick mutations.
type SheetService struct {
	groupRepo *repository.GroupRepository
	sheetRepo *repository.SheetRepository
	standings *StandingsService
	now       func() time.Time
}

// NewSheetService creates a new sheet service
func NewSheetService(db *store.Database) *SheetService {
	return &SheetService{
		groupRepo: repository.NewGroupRepository(db),
		sheetRepo: repository.NewSheetRepository(db),
		standings: NewStandingsService(db),
		now:       time.Now,
	}
}

// GetSheetResults aggregates one user's sheet against the standings.
// Historical mode when date is non-nil, final mode otherwise.
func (s *SheetService) GetSheetResults(ctx context.Context, groupID, userID string, date *time.Time) (*engine.SheetTally, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.Locked(s.now()) {
		return nil, ErrGroupNotLocked
	}

	season, err := s.groupRepo.GetSeason(ctx, group.SeasonYear)
	if err != nil {
		return nil, err
	}

	sheet, err := s.sheetRepo.GetByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	sheetPicks, err := s.sheetRepo.GetSheetPicks(ctx, sheet.SheetID)
	if err != nil {
		return nil, err
	}

	standings, mode, err := s.standings.Resolve(ctx, group.SeasonYear, date)
	if err != nil {
		return nil, err
	}

	tally := engine.Aggregate(toEnginePicks(sheetPicks), standings, mode, season.TotalGames)
	if tally.MissingSnapshots > 0 {
		// Missing snapshots settle against zero wins by policy; worth
		// watching because it silently turns every over on that team
		// into a loss.
		log.Printf("[sheets] group %s user %s: %d picks settled with no snapshot (%s mode)", groupID, userID, tally.MissingSnapshots, mode)
	}

	return &tally, nil
}

// CreateSheet enrolls a user in a group: membership row plus a sheet seeded
// with one unset pick per lined team. Rejected after the group locks.
func (s *SheetService) CreateSheet(ctx context.Context, groupID, userID string) (*store.Sheet, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Locked(s.now()) {
		return nil, ErrGroupLocked
	}

	if _, err := s.sheetRepo.GetByGroupAndUser(ctx, groupID, userID); err == nil {
		return nil, ErrSheetExists
	} else if !errors.Is(err, repository.ErrSheetNotFound) {
		return nil, err
	}

	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return s.sheetRepo.CreateSheet(ctx, groupID, userID, group.SeasonYear)
}

// UpdatePickDirection sets a pick's direction, rejecting changes after the
// group's lock date.
func (s *SheetService) UpdatePickDirection(ctx context.Context, groupID, userID, pickID, direction string) error {
	switch engine.Direction(direction) {
	case engine.DirectionOver, engine.DirectionUnder, engine.DirectionUnset:
	default:
		return ErrInvalidDirection
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.Locked(s.now()) {
		return ErrGroupLocked
	}

	sheet, err := s.sheetRepo.GetByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return err
	}

	return s.sheetRepo.UpdatePickDirection(ctx, sheet.SheetID, pickID, direction)
}

// toEnginePicks resolves joined pick rows into the engine's fully-resolved
// pick shape. The engine only ever sees identifiers and display names.
func toEnginePicks(rows []*store.SheetPick) []engine.Pick {
	picks := make([]engine.Pick, 0, len(rows))
	for _, row := range rows {
		picks = append(picks, engine.Pick{
			TeamID:    row.TeamID,
			TeamName:  row.TeamCity + " " + row.TeamName,
			Line:      row.Line,
			Direction: engine.Direction(row.Direction),
		})
	}
	return picks
}
