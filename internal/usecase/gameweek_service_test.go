package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
)

func TestGameweekService_GetNext_PicksEarliestFutureDeadline(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-x"})

	// Between week 2 and week 3 deadlines.
	service.now = func() time.Time { return time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC) }

	next, err := service.GetNext(t.Context(), memory.LeagueIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("get next gameweek failed: %v", err)
	}
	if next.ID != memory.GameweekIDLiga1Week3 {
		t.Fatalf("expected week 3, got %s", next.ID)
	}

	// After every configured deadline.
	service.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }
	_, err = service.GetNext(t.Context(), memory.LeagueIDLiga1Indonesia)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when no future deadline, got %v", err)
	}
}

func TestGameweekService_Activate_DeactivatesOthers(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-x"})

	activated, err := service.Activate(t.Context(), memory.GameweekIDLiga1Week2)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !activated.IsActive || activated.Status != gameweek.StatusActive {
		t.Fatalf("expected active gameweek, got active=%v status=%s", activated.IsActive, activated.Status)
	}

	week1, _, err := gameweekRepo.GetByID(t.Context(), memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("get week 1 failed: %v", err)
	}
	if week1.IsActive {
		t.Fatal("expected week 1 deactivated")
	}
	if week1.Status != gameweek.StatusCompleted {
		t.Fatalf("expected week 1 completed, got %s", week1.Status)
	}

	current, err := service.GetCurrent(t.Context(), memory.LeagueIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("get current failed: %v", err)
	}
	if current.ID != memory.GameweekIDLiga1Week2 {
		t.Fatalf("expected week 2 current, got %s", current.ID)
	}
}

func TestGameweekService_ActivateFirstIfNone(t *testing.T) {
	seeds := memory.SeedGameweeks()
	for i := range seeds {
		seeds[i].Status = gameweek.StatusUpcoming
		seeds[i].IsActive = false
	}
	gameweekRepo := memory.NewGameweekRepository(seeds)
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-x"})

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	activated, err := service.ActivateFirstIfNone(t.Context(), memory.LeagueIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("activate first failed: %v", err)
	}
	if activated.ID != memory.GameweekIDLiga1Week1 {
		t.Fatalf("expected lowest-numbered gameweek, got %s", activated.ID)
	}
	if !activated.Deadline.Equal(now.Add(7 * 24 * time.Hour)) {
		t.Fatalf("expected deadline pushed a week out, got %v", activated.Deadline)
	}

	// Second call is a no-op returning the already active week.
	again, err := service.ActivateFirstIfNone(t.Context(), memory.LeagueIDLiga1Indonesia)
	if err != nil {
		t.Fatalf("second activate first failed: %v", err)
	}
	if again.ID != activated.ID {
		t.Fatalf("expected same active gameweek, got %s", again.ID)
	}
}

func TestGameweekService_ActivateFirstIfNone_NoGameweeks(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository(nil)
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-x"})

	_, err := service.ActivateFirstIfNone(t.Context(), memory.LeagueIDLiga1Indonesia)
	if !errors.Is(err, gameweek.ErrNoGameweeksConfigured) {
		t.Fatalf("expected ErrNoGameweeksConfigured, got %v", err)
	}
}

func TestGameweekService_IsDeadlinePassed(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-x"})

	service.now = func() time.Time { return time.Date(2026, 2, 14, 16, 0, 0, 0, time.UTC) }
	passed, err := service.IsDeadlinePassed(t.Context(), memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("is deadline passed failed: %v", err)
	}
	if passed {
		t.Fatal("expected deadline not passed an hour before")
	}

	service.now = func() time.Time { return time.Date(2026, 2, 14, 17, 0, 0, 0, time.UTC) }
	passed, err = service.IsDeadlinePassed(t.Context(), memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("is deadline passed failed: %v", err)
	}
	if !passed {
		t.Fatal("expected deadline passed at the exact instant")
	}

	// Missing gameweek reports not passed rather than erroring.
	passed, err = service.IsDeadlinePassed(t.Context(), "gw-missing")
	if err != nil {
		t.Fatalf("is deadline passed for missing gameweek failed: %v", err)
	}
	if passed {
		t.Fatal("expected false for missing gameweek")
	}
}

func TestGameweekService_Create(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository(nil)
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewGameweekService(gameweekRepo, leagueRepo, staticIDGenerator{id: "gw-new"})

	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.Create(t.Context(), CreateGameweekInput{
		LeagueID: memory.LeagueIDLiga1Indonesia,
		Number:   1,
		Season:   "2025/2026",
		Deadline: time.Date(2026, 2, 14, 17, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create gameweek failed: %v", err)
	}
	if created.ID != "gw-new" {
		t.Fatalf("expected id gw-new, got %s", created.ID)
	}
	if created.Status != gameweek.StatusUpcoming || created.IsActive {
		t.Fatalf("expected inactive upcoming gameweek, got status=%s active=%v", created.Status, created.IsActive)
	}

	_, err = service.Create(t.Context(), CreateGameweekInput{
		LeagueID: "no-such-league",
		Number:   1,
		Season:   "2025/2026",
		Deadline: now,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown league, got %v", err)
	}
}
