package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openfantasy/rooms/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	items map[string]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{items: make(map[string]standing.Standing)}
}

func (r *StandingRepository) UpsertBatch(_ context.Context, items []standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[standingKey(item.RoomID, item.GameweekID, item.UserID)] = item
	}

	return nil
}

func (r *StandingRepository) ListByRoomAndGameweek(_ context.Context, roomID, gameweekID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, item := range r.items {
		if item.RoomID == roomID && item.GameweekID == gameweekID {
			out = append(out, item)
		}
	}
	sortStandings(out)

	return out, nil
}

func (r *StandingRepository) ListByRoom(_ context.Context, roomID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, item := range r.items {
		if item.RoomID == roomID {
			out = append(out, item)
		}
	}
	sortStandings(out)

	return out, nil
}

func (r *StandingRepository) deleteByRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.RoomID == roomID {
			delete(r.items, key)
		}
	}
}

func standingKey(roomID, gameweekID, userID string) string {
	return roomID + "::" + gameweekID + "::" + userID
}

func sortStandings(items []standing.Standing) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].GameweekID != items[j].GameweekID {
			return items[i].GameweekID < items[j].GameweekID
		}
		if items[i].Rank != items[j].Rank {
			return items[i].Rank < items[j].Rank
		}
		return items[i].UserID < items[j].UserID
	})
}
