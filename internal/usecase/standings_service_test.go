package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
	"github.com/openfantasy/rooms/internal/platform/logging"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) PublishStandingsUpdated(_ context.Context, roomID, gameweekID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, roomID+"/"+gameweekID)
	return nil
}

type standingsFixture struct {
	service  *StandingsService
	roomRepo *memory.RoomRepository
	teamRepo *memory.TeamRepository
	notifier *recordingNotifier
	room     room.Room
}

func newStandingsFixture(t *testing.T, memberIDs []string) standingsFixture {
	t.Helper()

	roomRepo, teamRepo, standingRepo := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())

	roomService := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})
	created, err := roomService.Create(t.Context(), CreateRoomInput{
		CreatorUserID:   memberIDs[0],
		LeagueID:        memory.LeagueIDLiga1Indonesia,
		Name:            "Standings League",
		Visibility:      room.VisibilityPublic,
		MaxParticipants: 10,
	})
	if err != nil {
		t.Fatalf("create fixture room failed: %v", err)
	}
	for _, userID := range memberIDs[1:] {
		if _, err := roomService.Join(t.Context(), JoinRoomInput{UserID: userID, RoomID: created.ID}); err != nil {
			t.Fatalf("join fixture room failed: %v", err)
		}
	}

	notifier := &recordingNotifier{}
	service := NewStandingsService(standingRepo, roomRepo, teamRepo, gameweekRepo, notifier, logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 2, 15, 20, 0, 0, 0, time.UTC) }

	return standingsFixture{
		service:  service,
		roomRepo: roomRepo,
		teamRepo: teamRepo,
		notifier: notifier,
		room:     created,
	}
}

func (f standingsFixture) seedTeam(t *testing.T, userID, gameweekID string, points int) {
	t.Helper()

	starters, bench := valid442Roster()
	team := rosterTeamFixture(userID, gameweekID, f.room.ID, starters, bench)
	team.ID = "team-" + userID + "-" + gameweekID
	team.GameweekPoints = points
	if err := f.teamRepo.Upsert(t.Context(), team); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}
}

func TestStandingsService_Recompute_RanksAndMirrors(t *testing.T) {
	f := newStandingsFixture(t, []string{"user-a", "user-b", "user-c", "user-d"})
	f.seedTeam(t, "user-a", memory.GameweekIDLiga1Week1, 30)
	f.seedTeam(t, "user-b", memory.GameweekIDLiga1Week1, 55)
	f.seedTeam(t, "user-c", memory.GameweekIDLiga1Week1, 30)
	// user-d never submitted a roster and scores zero.

	rows, err := f.service.Recompute(t.Context(), f.room.ID, memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 standings, got %d", len(rows))
	}

	wantOrder := []string{"user-b", "user-a", "user-c", "user-d"}
	for i, userID := range wantOrder {
		if rows[i].UserID != userID {
			t.Fatalf("rank %d: expected %s, got %s", i+1, userID, rows[i].UserID)
		}
		if rows[i].Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, rows[i].Rank)
		}
	}
	if rows[0].GameweekPoints != 55 || rows[0].TotalPoints != 55 {
		t.Fatalf("expected leader 55/55, got %d/%d", rows[0].GameweekPoints, rows[0].TotalPoints)
	}

	m, exists, err := f.roomRepo.GetMembership(t.Context(), f.room.ID, "user-b")
	if err != nil || !exists {
		t.Fatalf("get membership failed: exists=%v err=%v", exists, err)
	}
	if m.TotalPoints != 55 || m.Rank != 1 {
		t.Fatalf("expected membership mirror 55/rank 1, got %d/%d", m.TotalPoints, m.Rank)
	}
	if m.LastScoredGameweekID != memory.GameweekIDLiga1Week1 {
		t.Fatalf("expected last scored gameweek recorded, got %s", m.LastScoredGameweekID)
	}

	if len(f.notifier.events) != 1 {
		t.Fatalf("expected one notifier event, got %d", len(f.notifier.events))
	}
}

func TestStandingsService_Recompute_Idempotent(t *testing.T) {
	f := newStandingsFixture(t, []string{"user-a", "user-b"})
	f.seedTeam(t, "user-a", memory.GameweekIDLiga1Week1, 20)
	f.seedTeam(t, "user-b", memory.GameweekIDLiga1Week1, 10)

	first, err := f.service.Recompute(t.Context(), f.room.ID, memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	second, err := f.service.Recompute(t.Context(), f.room.ID, memory.GameweekIDLiga1Week1)
	if err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}

	for i := range first {
		if first[i].TotalPoints != second[i].TotalPoints {
			t.Fatalf("expected stable totals, got %d then %d for %s",
				first[i].TotalPoints, second[i].TotalPoints, first[i].UserID)
		}
		if first[i].Rank != second[i].Rank {
			t.Fatalf("expected stable ranks, got %d then %d for %s",
				first[i].Rank, second[i].Rank, first[i].UserID)
		}
	}
}

func TestStandingsService_Recompute_CumulativeAcrossGameweeks(t *testing.T) {
	f := newStandingsFixture(t, []string{"user-a", "user-b"})
	f.seedTeam(t, "user-a", memory.GameweekIDLiga1Week1, 20)
	f.seedTeam(t, "user-b", memory.GameweekIDLiga1Week1, 40)
	f.seedTeam(t, "user-a", memory.GameweekIDLiga1Week2, 35)
	f.seedTeam(t, "user-b", memory.GameweekIDLiga1Week2, 5)

	if _, err := f.service.Recompute(t.Context(), f.room.ID, memory.GameweekIDLiga1Week1); err != nil {
		t.Fatalf("week 1 recompute failed: %v", err)
	}
	rows, err := f.service.Recompute(t.Context(), f.room.ID, memory.GameweekIDLiga1Week2)
	if err != nil {
		t.Fatalf("week 2 recompute failed: %v", err)
	}

	// Week 2 ranks by gameweek points; totals span both weeks.
	if rows[0].UserID != "user-a" || rows[0].GameweekPoints != 35 || rows[0].TotalPoints != 55 {
		t.Fatalf("unexpected week 2 leader: %+v", rows[0])
	}
	if rows[1].UserID != "user-b" || rows[1].GameweekPoints != 5 || rows[1].TotalPoints != 45 {
		t.Fatalf("unexpected week 2 runner-up: %+v", rows[1])
	}
}

func TestStandingsService_IngestScores(t *testing.T) {
	f := newStandingsFixture(t, []string{"user-a", "user-b"})
	f.seedTeam(t, "user-a", memory.GameweekIDLiga1Week1, 0)
	f.seedTeam(t, "user-b", memory.GameweekIDLiga1Week1, 0)

	rows, err := f.service.IngestScores(t.Context(), IngestScoresInput{
		RoomID:     f.room.ID,
		GameweekID: memory.GameweekIDLiga1Week1,
		Scores: []UserScore{
			{UserID: "user-a", Points: 12},
			{UserID: "user-b", Points: 48},
		},
	})
	if err != nil {
		t.Fatalf("ingest scores failed: %v", err)
	}
	if rows[0].UserID != "user-b" || rows[0].GameweekPoints != 48 {
		t.Fatalf("expected user-b leading with 48, got %+v", rows[0])
	}

	_, err = f.service.IngestScores(t.Context(), IngestScoresInput{
		RoomID:     f.room.ID,
		GameweekID: memory.GameweekIDLiga1Week1,
		Scores:     []UserScore{{UserID: "user-z", Points: 10}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user without roster, got %v", err)
	}
}

func TestStandingsService_RecomputeAll(t *testing.T) {
	roomRepo, teamRepo, standingRepo := newMemoryRepos()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	roomService := NewRoomService(roomRepo, leagueRepo, &seqIDGenerator{prefix: "room"})

	for _, name := range []string{"League One", "League Two", "League Three"} {
		if _, err := roomService.Create(t.Context(), CreateRoomInput{
			CreatorUserID:   "user-1",
			LeagueID:        memory.LeagueIDLiga1Indonesia,
			Name:            name,
			Visibility:      room.VisibilityPublic,
			MaxParticipants: 10,
		}); err != nil {
			t.Fatalf("create room %q failed: %v", name, err)
		}
	}

	service := NewStandingsService(standingRepo, roomRepo, teamRepo, gameweekRepo, nil, logging.NewNop())

	summary, err := service.RecomputeAll(t.Context(), memory.LeagueIDLiga1Indonesia, memory.GameweekIDLiga1Week1, 8)
	if err != nil {
		t.Fatalf("recompute all failed: %v", err)
	}
	if summary.RoomCount != 3 || summary.SuccessCount != 3 || summary.FailedCount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.WorkerCount > recomputeMaxWorkers {
		t.Fatalf("expected worker cap %d, got %d", recomputeMaxWorkers, summary.WorkerCount)
	}
}
