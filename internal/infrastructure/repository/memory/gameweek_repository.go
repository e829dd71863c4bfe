package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/openfantasy/rooms/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu    sync.RWMutex
	items map[string]gameweek.Gameweek
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	items := make(map[string]gameweek.Gameweek, len(gameweeks))
	for _, gw := range gameweeks {
		items[gw.ID] = gw
	}

	return &GameweekRepository{items: items}
}

func (r *GameweekRepository) Create(_ context.Context, gw gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[gw.ID]; exists {
		return fmt.Errorf("gameweek already exists: %s", gw.ID)
	}
	r.items[gw.ID] = gw

	return nil
}

func (r *GameweekRepository) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.items[gameweekID]
	if !ok {
		return gameweek.Gameweek{}, false, nil
	}

	return gw, true, nil
}

func (r *GameweekRepository) GetActiveByLeague(_ context.Context, leagueID string) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, gw := range r.items {
		if gw.LeagueID == leagueID && gw.IsActive {
			return gw, true, nil
		}
	}

	return gameweek.Gameweek{}, false, nil
}

func (r *GameweekRepository) ListByLeague(_ context.Context, leagueID, season string) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, gw := range r.items {
		if gw.LeagueID != leagueID {
			continue
		}
		if season != "" && gw.Season != season {
			continue
		}
		out = append(out, gw)
	}
	sortGameweeks(out)

	return out, nil
}

func (r *GameweekRepository) ListUpcomingByLeague(_ context.Context, leagueID string) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, gw := range r.items {
		if gw.LeagueID == leagueID && gw.Status == gameweek.StatusUpcoming {
			out = append(out, gw)
		}
	}
	sortGameweeks(out)

	return out, nil
}

// Activate deactivates every other active gameweek in the same league
// (marking them completed) before activating the target, all under one
// lock so the single-active invariant is never observable broken.
func (r *GameweekRepository) Activate(_ context.Context, gameweekID string, deadline *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.items[gameweekID]
	if !ok {
		return fmt.Errorf("activate gameweek: not found")
	}

	now := time.Now().UTC()
	for id, gw := range r.items {
		if id == gameweekID || gw.LeagueID != target.LeagueID || !gw.IsActive {
			continue
		}
		gw.IsActive = false
		gw.Status = gameweek.StatusCompleted
		gw.UpdatedAt = now
		r.items[id] = gw
	}

	target.IsActive = true
	target.Status = gameweek.StatusActive
	if deadline != nil {
		target.Deadline = *deadline
	}
	target.UpdatedAt = now
	r.items[gameweekID] = target

	return nil
}

func (r *GameweekRepository) UpdateStatus(_ context.Context, gameweekID string, status gameweek.Status, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gw, ok := r.items[gameweekID]
	if !ok {
		return fmt.Errorf("update gameweek status: not found")
	}
	gw.Status = status
	gw.IsActive = isActive
	gw.UpdatedAt = time.Now().UTC()
	r.items[gameweekID] = gw

	return nil
}

func sortGameweeks(items []gameweek.Gameweek) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
}
