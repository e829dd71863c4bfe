package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/league"
	idgen "github.com/openfantasy/rooms/internal/platform/id"
)

const firstGameweekActivationWindow = 7 * 24 * time.Hour

type CreateGameweekInput struct {
	LeagueID string
	Number   int
	Season   string
	Deadline time.Time
}

type GameweekService struct {
	gameweekRepo gameweek.Repository
	leagueRepo   league.Repository
	idGen        idgen.Generator
	now          func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	leagueRepo league.Repository,
	idGen idgen.Generator,
) *GameweekService {
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		leagueRepo:   leagueRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

func (s *GameweekService) Create(ctx context.Context, input CreateGameweekInput) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.Create")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Season = strings.TrimSpace(input.Season)
	if input.LeagueID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Number <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek number must be greater than zero", ErrInvalidInput)
	}
	if input.Season == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if input.Deadline.IsZero() {
		return gameweek.Gameweek{}, fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}

	if err := s.validateLeague(ctx, input.LeagueID); err != nil {
		return gameweek.Gameweek{}, err
	}

	gameweekID, err := s.idGen.NewID()
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("generate gameweek id: %w", err)
	}

	now := s.now().UTC()
	gw := gameweek.Gameweek{
		ID:        gameweekID,
		LeagueID:  input.LeagueID,
		Number:    input.Number,
		Season:    input.Season,
		Deadline:  input.Deadline.UTC(),
		Status:    gameweek.StatusUpcoming,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := gw.Validate(); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.gameweekRepo.Create(ctx, gw); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("create gameweek: %w", err)
	}

	return gw, nil
}

// GetCurrent returns the league's single active gameweek.
func (s *GameweekService) GetCurrent(ctx context.Context, leagueID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.GetCurrent")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameweekRepo.GetActiveByLeague(ctx, leagueID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get active gameweek: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no active gameweek for league=%s", ErrNotFound, leagueID)
	}

	return gw, nil
}

// GetNext returns the upcoming gameweek with the earliest deadline still
// in the future. Deadlines that already passed are skipped even if the
// gameweek was never activated.
func (s *GameweekService) GetNext(ctx context.Context, leagueID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.GetNext")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	upcoming, err := s.gameweekRepo.ListUpcomingByLeague(ctx, leagueID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("list upcoming gameweeks: %w", err)
	}

	now := s.now().UTC()
	var next gameweek.Gameweek
	found := false
	for _, gw := range upcoming {
		if !gw.Deadline.After(now) {
			continue
		}
		if !found || gw.Deadline.Before(next.Deadline) ||
			(gw.Deadline.Equal(next.Deadline) && gw.Number < next.Number) {
			next = gw
			found = true
		}
	}
	if !found {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no upcoming gameweek for league=%s", ErrNotFound, leagueID)
	}

	return next, nil
}

func (s *GameweekService) List(ctx context.Context, leagueID, season string) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.List")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.gameweekRepo.ListByLeague(ctx, leagueID, strings.TrimSpace(season))
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	return items, nil
}

// Activate marks the gameweek active and completes any other active
// gameweek in the same league in the same write.
func (s *GameweekService) Activate(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.Activate")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	if gameweekID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	if _, err := s.mustGetGameweek(ctx, gameweekID); err != nil {
		return gameweek.Gameweek{}, err
	}

	if err := s.gameweekRepo.Activate(ctx, gameweekID, nil); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("activate gameweek: %w", err)
	}

	gw, _, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("reload activated gameweek: %w", err)
	}

	return gw, nil
}

// ActivateFirstIfNone bootstraps a league that has gameweeks configured
// but none active yet. The lowest-numbered gameweek becomes active with
// its deadline pushed one week out so rosters can still be submitted.
func (s *GameweekService) ActivateFirstIfNone(ctx context.Context, leagueID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.ActivateFirstIfNone")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	active, exists, err := s.gameweekRepo.GetActiveByLeague(ctx, leagueID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get active gameweek: %w", err)
	}
	if exists {
		return active, nil
	}

	all, err := s.gameweekRepo.ListByLeague(ctx, leagueID, "")
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("list gameweeks: %w", err)
	}
	if len(all) == 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: league=%s", gameweek.ErrNoGameweeksConfigured, leagueID)
	}

	first := all[0]
	for _, gw := range all[1:] {
		if gw.Number < first.Number {
			first = gw
		}
	}

	deadline := s.now().UTC().Add(firstGameweekActivationWindow)
	if err := s.gameweekRepo.Activate(ctx, first.ID, &deadline); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("activate first gameweek: %w", err)
	}

	gw, _, err := s.gameweekRepo.GetByID(ctx, first.ID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("reload activated gameweek: %w", err)
	}

	return gw, nil
}

func (s *GameweekService) UpdateStatus(ctx context.Context, gameweekID string, status gameweek.Status, isActive bool) error {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.UpdateStatus")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	if gameweekID == "" {
		return fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	switch status {
	case gameweek.StatusUpcoming, gameweek.StatusActive, gameweek.StatusCompleted:
	default:
		return fmt.Errorf("%w: invalid gameweek status %q", ErrInvalidInput, status)
	}

	gw, err := s.mustGetGameweek(ctx, gameweekID)
	if err != nil {
		return err
	}

	if isActive && status == gameweek.StatusActive {
		if err := s.gameweekRepo.Activate(ctx, gw.ID, nil); err != nil {
			return fmt.Errorf("activate gameweek: %w", err)
		}
		return nil
	}

	if err := s.gameweekRepo.UpdateStatus(ctx, gw.ID, status, isActive); err != nil {
		return fmt.Errorf("update gameweek status: %w", err)
	}

	return nil
}

// IsDeadlinePassed reports whether the roster lock happened. A missing
// gameweek reports false so callers treat it as not yet locked.
func (s *GameweekService) IsDeadlinePassed(ctx context.Context, gameweekID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "GameweekService.IsDeadlinePassed")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	if gameweekID == "" {
		return false, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return false, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return false, nil
	}

	return gw.DeadlinePassed(s.now().UTC()), nil
}

func (s *GameweekService) mustGetGameweek(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	return gw, nil
}

func (s *GameweekService) validateLeague(ctx context.Context, leagueID string) error {
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return nil
}
