package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/openfantasy/rooms/internal/domain/roster"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]roster.Team)}
}

func (r *TeamRepository) GetByUserGameweekRoom(_ context.Context, userID, gameweekID, roomID string) (roster.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamKey(userID, gameweekID, roomID)]
	if !ok {
		return roster.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) ListByRoomAndGameweek(_ context.Context, roomID, gameweekID string) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0)
	for _, item := range r.items {
		if item.RoomID == roomID && item.GameweekID == gameweekID {
			out = append(out, cloneTeam(item))
		}
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) ListByRoom(_ context.Context, roomID string) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0)
	for _, item := range r.items {
		if item.RoomID == roomID {
			out = append(out, cloneTeam(item))
		}
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, team roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[teamKey(team.UserID, team.GameweekID, team.RoomID)] = cloneTeam(team)
	return nil
}

func (r *TeamRepository) SetGameweekPoints(_ context.Context, userID, gameweekID, roomID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamKey(userID, gameweekID, roomID)
	item, ok := r.items[key]
	if !ok {
		return fmt.Errorf("set gameweek points: team not found")
	}
	item.GameweekPoints = points
	r.items[key] = item

	return nil
}

func (r *TeamRepository) deleteByRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.RoomID == roomID {
			delete(r.items, key)
		}
	}
}

func teamKey(userID, gameweekID, roomID string) string {
	return userID + "::" + gameweekID + "::" + roomID
}

func cloneTeam(item roster.Team) roster.Team {
	copied := item
	copied.Starters.DefenderIDs = append([]string(nil), item.Starters.DefenderIDs...)
	copied.Starters.MidfielderIDs = append([]string(nil), item.Starters.MidfielderIDs...)
	copied.Starters.ForwardIDs = append([]string(nil), item.Starters.ForwardIDs...)
	return copied
}

func sortTeams(items []roster.Team) {
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
}
