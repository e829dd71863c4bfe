package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openfantasy/rooms/internal/domain/club"
	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/player"
	clubmock "github.com/openfantasy/rooms/internal/mocks/domain/club"
	leaguemock "github.com/openfantasy/rooms/internal/mocks/domain/league"
	playermock "github.com/openfantasy/rooms/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_ListPlayers_FiltersByPositionUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	clubRepo := clubmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewCatalogService(leagueRepo, clubRepo, playerRepo)
	leagueID := "idn-liga-1-2025"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	playerRepo.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return([]player.Player{
			{ID: "idn-gk-01", LeagueID: leagueID, Position: player.PositionGoalkeeper},
			{ID: "idn-def-01", LeagueID: leagueID, Position: player.PositionDefender},
			{ID: "idn-fwd-01", LeagueID: leagueID, Position: player.PositionForward},
		}, nil).
		Once()

	got, err := service.ListPlayers(ctx, leagueID, player.PositionDefender)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected player count: got=%d want=1", len(got))
	}
	if got[0].ID != "idn-def-01" {
		t.Fatalf("unexpected player id: %s", got[0].ID)
	}
}

func TestCatalogService_ListClubs_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	clubRepo := clubmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewCatalogService(leagueRepo, clubRepo, playerRepo)
	leagueID := "idn-liga-1-2025"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	clubRepo.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return([]club.Club{
			{ID: "idn-club-01", LeagueID: leagueID, Name: "Persija Jakarta"},
			{ID: "idn-club-02", LeagueID: leagueID, Name: "Persib Bandung"},
		}, nil).
		Once()

	got, err := service.ListClubs(ctx, leagueID)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected club count: got=%d want=2", len(got))
	}
}

func TestCatalogService_ListPlayers_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	clubRepo := clubmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)

	service := NewCatalogService(leagueRepo, clubRepo, playerRepo)
	leagueID := "missing-league"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListPlayers(ctx, leagueID, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
