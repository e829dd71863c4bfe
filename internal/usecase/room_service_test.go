package usecase

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
)

var joinCodePattern = regexp.MustCompile(`^[A-Z]+-[A-Z]+-[1-9][0-9]?$`)

func TestRoomService_Create_PrivateGetsCode(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Office League",
		Visibility:      room.VisibilityPrivate,
		MaxParticipants: 10,
	})
	if err != nil {
		t.Fatalf("create private room failed: %v", err)
	}

	if !joinCodePattern.MatchString(created.Code) {
		t.Fatalf("expected WORD-COLOR-N join code, got %q", created.Code)
	}
	if created.CurrentParticipants != 1 {
		t.Fatalf("expected creator counted as first participant, got %d", created.CurrentParticipants)
	}
	if created.Status != room.StatusUpcoming {
		t.Fatalf("expected upcoming status, got %s", created.Status)
	}

	isMember, err := roomRepo.IsMember(t.Context(), created.ID, "user-1")
	if err != nil {
		t.Fatalf("is member failed: %v", err)
	}
	if !isMember {
		t.Fatal("expected creator membership to exist")
	}
}

func TestRoomService_Create_PublicHasNoCode(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	created, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Open League",
		Visibility:      room.VisibilityPublic,
		MaxParticipants: 20,
	})
	if err != nil {
		t.Fatalf("create public room failed: %v", err)
	}
	if created.Code != "" {
		t.Fatalf("expected no join code on public room, got %q", created.Code)
	}
}

func TestRoomService_Create_UnknownLeague(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	_, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        "no-such-league",
		Name:            "Ghost League",
		Visibility:      room.VisibilityPublic,
		MaxParticipants: 10,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomService_Join_ByCodeAndGuards(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	created, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Tiny League",
		Visibility:      room.VisibilityPrivate,
		MaxParticipants: 2,
	})
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}

	joined, err := service.Join(t.Context(), JoinRoomInput{UserID: "user-2", Code: created.Code})
	if err != nil {
		t.Fatalf("join by code failed: %v", err)
	}
	if joined.CurrentParticipants != 2 {
		t.Fatalf("expected 2 participants after join, got %d", joined.CurrentParticipants)
	}

	_, err = service.Join(t.Context(), JoinRoomInput{UserID: "user-2", RoomID: created.ID})
	if !errors.Is(err, room.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}

	_, err = service.Join(t.Context(), JoinRoomInput{UserID: "user-3", RoomID: created.ID})
	if !errors.Is(err, room.ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}

	_, err = service.Join(t.Context(), JoinRoomInput{UserID: "user-4", Code: "NOPE-RED-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown code, got %v", err)
	}
}

func TestRoomService_Delete_CreatorOnlyCascade(t *testing.T) {
	roomRepo, teamRepo, standingRepo := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	created, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Doomed League",
		Visibility:      room.VisibilityPublic,
		MaxParticipants: 10,
	})
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}

	starters, bench := valid442Roster()
	seedTeam := rosterTeamFixture("user-1", memory.GameweekIDLiga1Week1, created.ID, starters, bench)
	if err := teamRepo.Upsert(t.Context(), seedTeam); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}

	if err := service.Delete(t.Context(), "user-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}

	if err := service.Delete(t.Context(), "user-1", created.ID); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}

	if _, exists, _ := roomRepo.GetByID(t.Context(), created.ID); exists {
		t.Fatal("expected room to be gone")
	}
	teams, err := teamRepo.ListByRoom(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected teams cascade-deleted, got %d", len(teams))
	}
	standings, err := standingRepo.ListByRoom(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list standings failed: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("expected standings cascade-deleted, got %d", len(standings))
	}
}

func TestRoomService_RegenerateCode(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	private, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Secret League",
		Visibility:      room.VisibilityPrivate,
		MaxParticipants: 8,
	})
	if err != nil {
		t.Fatalf("create private room failed: %v", err)
	}

	if _, err := service.RegenerateCode(t.Context(), "user-2", private.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}

	code, err := service.RegenerateCode(t.Context(), "user-1", private.ID)
	if err != nil {
		t.Fatalf("regenerate code failed: %v", err)
	}
	if !joinCodePattern.MatchString(code) {
		t.Fatalf("expected WORD-COLOR-N join code, got %q", code)
	}

	reloaded, _, err := roomRepo.GetByID(t.Context(), private.ID)
	if err != nil {
		t.Fatalf("reload room failed: %v", err)
	}
	if reloaded.Code != code {
		t.Fatalf("expected stored code %q, got %q", code, reloaded.Code)
	}

	public, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Open League",
		Visibility:      room.VisibilityPublic,
		MaxParticipants: 8,
	})
	if err != nil {
		t.Fatalf("create public room failed: %v", err)
	}
	if _, err := service.RegenerateCode(t.Context(), "user-1", public.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for public room, got %v", err)
	}
}

func TestRoomService_SharingInfo(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	current := base
	service.now = func() time.Time { return current }

	created, err := service.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   "user-1",
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Invite League",
		Visibility:      room.VisibilityPrivate,
		MaxParticipants: 10,
	})
	if err != nil {
		t.Fatalf("create room failed: %v", err)
	}

	for i, userID := range []string{"user-2", "user-3", "user-4", "user-5", "user-6", "user-7"} {
		current = base.Add(time.Duration(i+1) * time.Minute)
		if _, err := service.Join(t.Context(), JoinRoomInput{UserID: userID, RoomID: created.ID}); err != nil {
			t.Fatalf("join %s failed: %v", userID, err)
		}
	}

	info, err := service.SharingInfo(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("sharing info failed: %v", err)
	}
	if info.Code != created.Code {
		t.Fatalf("expected code %q, got %q", created.Code, info.Code)
	}
	if info.MemberCount != 7 {
		t.Fatalf("expected 7 members, got %d", info.MemberCount)
	}
	if len(info.RecentMembers) != 5 {
		t.Fatalf("expected 5 recent members, got %d", len(info.RecentMembers))
	}
	if info.RecentMembers[0].UserID != "user-7" {
		t.Fatalf("expected most recent joiner first, got %s", info.RecentMembers[0].UserID)
	}
}

func TestRoomService_EnsureDefaultRoom_Idempotent(t *testing.T) {
	roomRepo, _, _ := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	service := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	first, err := service.EnsureDefaultRoom(t.Context(), "user-1", "")
	if err != nil {
		t.Fatalf("ensure default room failed: %v", err)
	}
	if first.LeagueID != memory.LeagueIDLiga1Indonesia {
		t.Fatalf("expected default league, got %s", first.LeagueID)
	}
	if first.Visibility != room.VisibilityPublic {
		t.Fatalf("expected public default room, got %s", first.Visibility)
	}

	second, err := service.EnsureDefaultRoom(t.Context(), "user-1", "")
	if err != nil {
		t.Fatalf("ensure default room second call failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same room on repeat call, got %s vs %s", second.ID, first.ID)
	}
}
