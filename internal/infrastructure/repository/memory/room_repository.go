package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/openfantasy/rooms/internal/domain/room"
)

// RoomRepository holds rooms and memberships under one lock so join
// and cascade-delete behave like single transactions.
type RoomRepository struct {
	mu          sync.RWMutex
	rooms       map[string]room.Room
	memberships map[string]room.Membership

	// cascade targets, shared with the team/standing repositories
	teams     *TeamRepository
	standings *StandingRepository
}

func NewRoomRepository(teams *TeamRepository, standings *StandingRepository) *RoomRepository {
	return &RoomRepository{
		rooms:       make(map[string]room.Room),
		memberships: make(map[string]room.Membership),
		teams:       teams,
		standings:   standings,
	}
}

func (r *RoomRepository) CreateWithCreator(_ context.Context, item room.Room, creator room.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[item.ID]; exists {
		return fmt.Errorf("room already exists: %s", item.ID)
	}
	if item.Code != "" {
		for _, existing := range r.rooms {
			if existing.Code == item.Code {
				return fmt.Errorf("duplicate room code: %s", item.Code)
			}
		}
	}

	r.rooms[item.ID] = item
	r.memberships[membershipKey(creator.RoomID, creator.UserID)] = creator

	return nil
}

func (r *RoomRepository) GetByID(_ context.Context, roomID string) (room.Room, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rooms[roomID]
	if !ok {
		return room.Room{}, false, nil
	}

	return item, true, nil
}

func (r *RoomRepository) GetByCode(_ context.Context, code string) (room.Room, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if code == "" {
		return room.Room{}, false, nil
	}
	for _, item := range r.rooms {
		if item.Code == code {
			return item, true, nil
		}
	}

	return room.Room{}, false, nil
}

func (r *RoomRepository) ListPublicByLeague(_ context.Context, leagueID string, limit int) ([]room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]room.Room, 0)
	for _, item := range r.rooms {
		if item.LeagueID == leagueID && item.Visibility == room.VisibilityPublic {
			out = append(out, item)
		}
	}
	sortRooms(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *RoomRepository) ListByLeague(_ context.Context, leagueID string) ([]room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]room.Room, 0)
	for _, item := range r.rooms {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sortRooms(out)

	return out, nil
}

func (r *RoomRepository) UpdateCode(_ context.Context, roomID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("update room code: not found")
	}
	for id, existing := range r.rooms {
		if id != roomID && existing.Code == code {
			return fmt.Errorf("duplicate room code: %s", code)
		}
	}
	item.Code = code
	item.UpdatedAt = time.Now().UTC()
	r.rooms[roomID] = item

	return nil
}

// Join inserts the membership and bumps the participant counter under
// one lock; capacity and duplicate checks are re-run here so the
// invariant holds even under concurrent joins.
func (r *RoomRepository) Join(_ context.Context, m room.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.rooms[m.RoomID]
	if !ok {
		return room.ErrNotFound
	}
	if _, exists := r.memberships[membershipKey(m.RoomID, m.UserID)]; exists {
		return room.ErrAlreadyMember
	}
	if item.IsFull() {
		return room.ErrRoomFull
	}

	r.memberships[membershipKey(m.RoomID, m.UserID)] = m
	item.CurrentParticipants++
	item.UpdatedAt = time.Now().UTC()
	r.rooms[m.RoomID] = item

	return nil
}

func (r *RoomRepository) IsMember(_ context.Context, roomID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.memberships[membershipKey(roomID, userID)]
	return ok, nil
}

func (r *RoomRepository) GetMembership(_ context.Context, roomID, userID string) (room.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[membershipKey(roomID, userID)]
	if !ok {
		return room.Membership{}, false, nil
	}

	return m, true, nil
}

func (r *RoomRepository) ListMembers(_ context.Context, roomID string) ([]room.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]room.Membership, 0)
	for _, m := range r.memberships {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *RoomRepository) ListMembershipsByUser(_ context.Context, userID string) ([]room.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]room.Membership, 0)
	for _, m := range r.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })

	return out, nil
}

func (r *RoomRepository) UpdateMembershipScore(_ context.Context, m room.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey(m.RoomID, m.UserID)
	existing, ok := r.memberships[key]
	if !ok {
		return fmt.Errorf("update membership score: not found")
	}
	existing.TotalPoints = m.TotalPoints
	existing.Rank = m.Rank
	existing.LastScoredGameweekID = m.LastScoredGameweekID
	existing.UpdatedAt = time.Now().UTC()
	r.memberships[key] = existing

	return nil
}

// DeleteCascade removes memberships, teams, and standings for the room
// before the room itself, all under the room lock.
func (r *RoomRepository) DeleteCascade(ctx context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomID]; !ok {
		return room.ErrNotFound
	}

	for key, m := range r.memberships {
		if m.RoomID == roomID {
			delete(r.memberships, key)
		}
	}
	if r.teams != nil {
		r.teams.deleteByRoom(roomID)
	}
	if r.standings != nil {
		r.standings.deleteByRoom(roomID)
	}
	delete(r.rooms, roomID)
	_ = ctx

	return nil
}

func membershipKey(roomID, userID string) string {
	return roomID + "::" + userID
}

func sortRooms(items []room.Room) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
