package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/openfantasy/rooms/internal/domain/club"
	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/player"
)

// CatalogService serves the read-only real-world catalog: leagues,
// clubs, and selectable players.
type CatalogService struct {
	leagueRepo league.Repository
	clubRepo   club.Repository
	playerRepo player.Repository
}

func NewCatalogService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	playerRepo player.Repository,
) *CatalogService {
	return &CatalogService{
		leagueRepo: leagueRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
	}
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *CatalogService) ListClubs(ctx context.Context, leagueID string) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListClubs")
	defer span.End()

	if err := s.requireLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	clubs, err := s.clubRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list clubs by league: %w", err)
	}

	return clubs, nil
}

// ListPlayers returns players of a league, optionally filtered by
// position ("" means all positions).
func (s *CatalogService) ListPlayers(ctx context.Context, leagueID string, position player.Position) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	if position != "" {
		if _, ok := player.AllPositions[position]; !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
		}
	}

	if err := s.requireLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list players by league: %w", err)
	}
	if position == "" {
		return players, nil
	}

	filtered := players[:0]
	for _, p := range players {
		if p.Position == position {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

func (s *CatalogService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *CatalogService) requireLeague(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return nil
}
