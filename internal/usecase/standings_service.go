package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/domain/standing"
	"github.com/openfantasy/rooms/internal/platform/logging"
)

const (
	recomputeTeamLoadConcurrency = 4
	recomputeMaxWorkers          = 4
)

// StandingsNotifier publishes a standings-updated event after a
// successful recompute. Delivery is best effort.
type StandingsNotifier interface {
	PublishStandingsUpdated(ctx context.Context, roomID, gameweekID string) error
}

type UserScore struct {
	UserID string
	Points int
}

type IngestScoresInput struct {
	RoomID     string
	GameweekID string
	Scores     []UserScore
}

// RecomputeSummary reports a league-wide recompute fan-out.
type RecomputeSummary struct {
	RoomCount    int      `json:"room_count"`
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	WorkerCount  int      `json:"worker_count"`
	FailedRooms  []string `json:"failed_rooms,omitempty"`
}

type StandingsService struct {
	standingRepo standing.Repository
	roomRepo     room.Repository
	teamRepo     roster.Repository
	gameweekRepo gameweek.Repository
	notifier     StandingsNotifier
	logger       *logging.Logger
	workerCap    int
	now          func() time.Time
}

func NewStandingsService(
	standingRepo standing.Repository,
	roomRepo room.Repository,
	teamRepo roster.Repository,
	gameweekRepo gameweek.Repository,
	notifier StandingsNotifier,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		standingRepo: standingRepo,
		roomRepo:     roomRepo,
		teamRepo:     teamRepo,
		gameweekRepo: gameweekRepo,
		notifier:     notifier,
		logger:       logger,
		workerCap:    recomputeMaxWorkers,
		now:          time.Now,
	}
}

// SetRecomputeWorkerCap raises or lowers the ceiling applied to
// per-request worker counts. Values below one keep the default.
func (s *StandingsService) SetRecomputeWorkerCap(limit int) {
	if limit > 0 {
		s.workerCap = limit
	}
}

// Recompute rebuilds the room's standings for one gameweek and mirrors
// the result onto the memberships. Members without a submitted roster
// score zero. The whole pass is idempotent: cumulative totals are
// re-derived from stored rosters, never accumulated onto themselves.
func (s *StandingsService) Recompute(ctx context.Context, roomID, gameweekID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.Recompute")
	defer span.End()

	roomID = strings.TrimSpace(roomID)
	gameweekID = strings.TrimSpace(gameweekID)
	if roomID == "" || gameweekID == "" {
		return nil, fmt.Errorf("%w: room_id and gameweek_id are required", ErrInvalidInput)
	}

	if _, exists, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("get room by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}
	if _, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID); err != nil {
		return nil, fmt.Errorf("get gameweek by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}

	members, err := s.roomRepo.ListMembers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list room members: %w", err)
	}
	if len(members) == 0 {
		return []standing.Standing{}, nil
	}

	gameweekPoints, err := s.loadGameweekPoints(ctx, members, roomID, gameweekID)
	if err != nil {
		return nil, err
	}

	totals, err := s.loadCumulativeTotals(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rows := make([]standing.Standing, 0, len(members))
	for i, m := range members {
		rows = append(rows, standing.Standing{
			RoomID:         roomID,
			GameweekID:     gameweekID,
			UserID:         m.UserID,
			GameweekPoints: gameweekPoints[i],
			TotalPoints:    totals[m.UserID],
		})
	}

	// Gameweek points decide the order; equal scores fall back to the
	// user id so repeated recomputes produce identical rankings.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GameweekPoints != rows[j].GameweekPoints {
			return rows[i].GameweekPoints > rows[j].GameweekPoints
		}
		return rows[i].UserID < rows[j].UserID
	})

	now := s.now().UTC()
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].CalculatedAt = now
		rows[i].UpdatedAt = now
	}

	if err := s.standingRepo.UpsertBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("upsert standings: %w", err)
	}

	memberByUser := make(map[string]room.Membership, len(members))
	for _, m := range members {
		memberByUser[m.UserID] = m
	}
	for _, row := range rows {
		m := memberByUser[row.UserID]
		m.TotalPoints = row.TotalPoints
		m.Rank = row.Rank
		m.LastScoredGameweekID = gameweekID
		m.UpdatedAt = now
		if err := s.roomRepo.UpdateMembershipScore(ctx, m); err != nil {
			return nil, fmt.Errorf("update membership score user=%s: %w", row.UserID, err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PublishStandingsUpdated(ctx, roomID, gameweekID); err != nil {
			s.logger.WarnContext(ctx, "publish standings updated event failed",
				"room_id", roomID,
				"gameweek_id", gameweekID,
				"error", err.Error(),
			)
		}
	}

	return rows, nil
}

// RecomputeAll fans a recompute out over every room of a league.
func (s *StandingsService) RecomputeAll(ctx context.Context, leagueID, gameweekID string, maxWorkers int) (RecomputeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.RecomputeAll")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	gameweekID = strings.TrimSpace(gameweekID)
	if leagueID == "" || gameweekID == "" {
		return RecomputeSummary{}, fmt.Errorf("%w: league_id and gameweek_id are required", ErrInvalidInput)
	}

	rooms, err := s.roomRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("list rooms by league: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(maxWorkers, s.workerCap, len(rooms))
	summary := RecomputeSummary{
		RoomCount:   len(rooms),
		WorkerCount: workerCount,
	}
	if len(rooms) == 0 {
		return summary, nil
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var successCount atomic.Int32
	var failedMu sync.Mutex
	failedRooms := make([]string, 0)

	var workers sync.WaitGroup
	for _, r := range rooms {
		r := r
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			if _, recomputeErr := s.Recompute(ctx, r.ID, gameweekID); recomputeErr != nil {
				s.logger.ErrorContext(ctx, "recompute room standings failed",
					"room_id", r.ID,
					"gameweek_id", gameweekID,
					"error", recomputeErr.Error(),
				)
				failedMu.Lock()
				failedRooms = append(failedRooms, r.ID)
				failedMu.Unlock()
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			return RecomputeSummary{}, fmt.Errorf("submit room to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.Strings(failedRooms)
	summary.SuccessCount = int(successCount.Load())
	summary.FailedCount = len(failedRooms)
	summary.FailedRooms = failedRooms
	return summary, nil
}

// IngestScores records externally computed gameweek scores for room
// members and immediately recomputes the standings.
func (s *StandingsService) IngestScores(ctx context.Context, input IngestScoresInput) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.IngestScores")
	defer span.End()

	input.RoomID = strings.TrimSpace(input.RoomID)
	input.GameweekID = strings.TrimSpace(input.GameweekID)
	if input.RoomID == "" || input.GameweekID == "" {
		return nil, fmt.Errorf("%w: room_id and gameweek_id are required", ErrInvalidInput)
	}
	if len(input.Scores) == 0 {
		return nil, fmt.Errorf("%w: scores are required", ErrInvalidInput)
	}
	for _, score := range input.Scores {
		if strings.TrimSpace(score.UserID) == "" {
			return nil, fmt.Errorf("%w: score user id is required", ErrInvalidInput)
		}
		if score.Points < 0 {
			return nil, fmt.Errorf("%w: score points must not be negative", ErrInvalidInput)
		}
	}

	for _, score := range input.Scores {
		userID := strings.TrimSpace(score.UserID)
		_, exists, err := s.teamRepo.GetByUserGameweekRoom(ctx, userID, input.GameweekID, input.RoomID)
		if err != nil {
			return nil, fmt.Errorf("get team for scoring: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: no roster for user=%s in room=%s gameweek=%s", ErrNotFound, userID, input.RoomID, input.GameweekID)
		}
		if err := s.teamRepo.SetGameweekPoints(ctx, userID, input.GameweekID, input.RoomID, score.Points); err != nil {
			return nil, fmt.Errorf("set gameweek points user=%s: %w", userID, err)
		}
	}

	return s.Recompute(ctx, input.RoomID, input.GameweekID)
}

func (s *StandingsService) GetByGameweek(ctx context.Context, roomID, gameweekID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetByGameweek")
	defer span.End()

	roomID = strings.TrimSpace(roomID)
	gameweekID = strings.TrimSpace(gameweekID)
	if roomID == "" || gameweekID == "" {
		return nil, fmt.Errorf("%w: room_id and gameweek_id are required", ErrInvalidInput)
	}

	items, err := s.standingRepo.ListByRoomAndGameweek(ctx, roomID, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	return items, nil
}

func (s *StandingsService) GetSeason(ctx context.Context, roomID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetSeason")
	defer span.End()

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, fmt.Errorf("%w: room id is required", ErrInvalidInput)
	}

	items, err := s.standingRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list season standings: %w", err)
	}

	return items, nil
}

// loadGameweekPoints fetches every member's roster for the gameweek
// concurrently. The result is positionally aligned with members.
func (s *StandingsService) loadGameweekPoints(ctx context.Context, members []room.Membership, roomID, gameweekID string) ([]int, error) {
	points := make([]int, len(members))

	p := pool.New().WithErrors().WithMaxGoroutines(recomputeTeamLoadConcurrency)
	for i, m := range members {
		i, m := i, m
		p.Go(func() error {
			team, exists, err := s.teamRepo.GetByUserGameweekRoom(ctx, m.UserID, gameweekID, roomID)
			if err != nil {
				return fmt.Errorf("get team user=%s: %w", m.UserID, err)
			}
			if exists {
				points[i] = team.GameweekPoints
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}

// loadCumulativeTotals sums stored roster points per user across every
// gameweek of the room.
func (s *StandingsService) loadCumulativeTotals(ctx context.Context, roomID string) (map[string]int, error) {
	teams, err := s.teamRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list room teams: %w", err)
	}

	totals := make(map[string]int, len(teams))
	for _, team := range teams {
		totals[team.UserID] += team.GameweekPoints
	}

	return totals, nil
}

func normalizeRecomputeWorkerCount(value, limit, roomCount int) int {
	if limit <= 0 {
		limit = recomputeMaxWorkers
	}
	if roomCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > limit {
		value = limit
	}
	if value > roomCount {
		value = roomCount
	}
	return value
}
