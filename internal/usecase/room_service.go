package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/room"
	idgen "github.com/openfantasy/rooms/internal/platform/id"
)

const (
	joinCodeAttempts         = 10
	defaultPublicRoomsLimit  = 20
	defaultRoomName          = "General League"
	defaultRoomMaxMembers    = 20
	sharingRecentMemberCount = 5
)

type CreateRoomInput struct {
	CreatorUserID   string
	LeagueID        string
	Name            string
	Visibility      room.Visibility
	MaxParticipants int
}

// JoinRoomInput resolves the target room by id or by join code;
// exactly one must be set.
type JoinRoomInput struct {
	UserID string
	RoomID string
	Code   string
}

type RoomWithMembers struct {
	Room    room.Room
	Members []room.Membership
}

// RoomWithMyScore pairs a room with the caller's cached score in it.
type RoomWithMyScore struct {
	Room        room.Room
	TotalPoints int
	Rank        int
}

type RoomSharingInfo struct {
	Code          string
	RoomName      string
	LeagueID      string
	CreatorUserID string
	MemberCount   int
	MaxMembers    int
	RecentMembers []room.Membership
}

type RoomService struct {
	roomRepo   room.Repository
	leagueRepo league.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewRoomService(
	roomRepo room.Repository,
	leagueRepo league.Repository,
	idGen idgen.Generator,
) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		leagueRepo: leagueRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// Create opens a room with the creator as its first member. Private
// rooms get a unique join code; public rooms carry none.
func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.Create")
	defer span.End()

	input.CreatorUserID = strings.TrimSpace(input.CreatorUserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	if input.CreatorUserID == "" {
		return room.Room{}, fmt.Errorf("%w: creator user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return room.Room{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return room.Room{}, fmt.Errorf("%w: room name is required", ErrInvalidInput)
	}
	if input.Visibility != room.VisibilityPublic && input.Visibility != room.VisibilityPrivate {
		return room.Room{}, fmt.Errorf("%w: invalid room visibility %q", ErrInvalidInput, input.Visibility)
	}
	if input.MaxParticipants <= 1 {
		return room.Room{}, fmt.Errorf("%w: max participants must be greater than one", ErrInvalidInput)
	}

	if err := s.validateLeague(ctx, input.LeagueID); err != nil {
		return room.Room{}, err
	}

	roomID, err := s.idGen.NewID()
	if err != nil {
		return room.Room{}, fmt.Errorf("generate room id: %w", err)
	}

	now := s.now().UTC()
	code := ""
	if input.Visibility == room.VisibilityPrivate {
		code, err = s.uniqueJoinCode(ctx, now)
		if err != nil {
			return room.Room{}, err
		}
	}

	r := room.Room{
		ID:                  roomID,
		LeagueID:            input.LeagueID,
		CreatorUserID:       input.CreatorUserID,
		Name:                input.Name,
		Visibility:          input.Visibility,
		Code:                code,
		MaxParticipants:     input.MaxParticipants,
		CurrentParticipants: 1,
		Status:              room.StatusUpcoming,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := r.Validate(); err != nil {
		return room.Room{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	creator := room.Membership{
		RoomID:   roomID,
		UserID:   input.CreatorUserID,
		JoinedAt: now,
	}
	if err := s.roomRepo.CreateWithCreator(ctx, r, creator); err != nil {
		return room.Room{}, fmt.Errorf("create room: %w", err)
	}

	return r, nil
}

// Join adds the user to a room addressed by id or join code. The
// membership insert and the participant counter move together; the
// repository re-checks capacity and duplicate membership atomically.
func (s *RoomService) Join(ctx context.Context, input JoinRoomInput) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.Join")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.RoomID = strings.TrimSpace(input.RoomID)
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.UserID == "" {
		return room.Room{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.RoomID == "" && input.Code == "" {
		return room.Room{}, fmt.Errorf("%w: room id or join code is required", ErrInvalidInput)
	}

	var (
		target room.Room
		exists bool
		err    error
	)
	if input.RoomID != "" {
		target, exists, err = s.roomRepo.GetByID(ctx, input.RoomID)
	} else {
		target, exists, err = s.roomRepo.GetByCode(ctx, input.Code)
	}
	if err != nil {
		return room.Room{}, fmt.Errorf("resolve room: %w", err)
	}
	if !exists {
		return room.Room{}, fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}

	m := room.Membership{
		RoomID:   target.ID,
		UserID:   input.UserID,
		JoinedAt: s.now().UTC(),
	}
	if err := s.roomRepo.Join(ctx, m); err != nil {
		return room.Room{}, fmt.Errorf("join room: %w", err)
	}

	joined, _, err := s.roomRepo.GetByID(ctx, target.ID)
	if err != nil {
		return room.Room{}, fmt.Errorf("reload joined room: %w", err)
	}

	return joined, nil
}

func (s *RoomService) GetWithMembers(ctx context.Context, roomID string) (RoomWithMembers, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.GetWithMembers")
	defer span.End()

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return RoomWithMembers{}, fmt.Errorf("%w: room id is required", ErrInvalidInput)
	}

	r, exists, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return RoomWithMembers{}, fmt.Errorf("get room by id: %w", err)
	}
	if !exists {
		return RoomWithMembers{}, fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}

	members, err := s.roomRepo.ListMembers(ctx, roomID)
	if err != nil {
		return RoomWithMembers{}, fmt.Errorf("list room members: %w", err)
	}
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := members[i].Rank, members[j].Rank
		if ri <= 0 {
			ri = int(^uint(0) >> 1)
		}
		if rj <= 0 {
			rj = int(^uint(0) >> 1)
		}
		if ri != rj {
			return ri < rj
		}
		return members[i].UserID < members[j].UserID
	})

	return RoomWithMembers{Room: r, Members: members}, nil
}

func (s *RoomService) GetByCode(ctx context.Context, code string) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.GetByCode")
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return room.Room{}, fmt.Errorf("%w: join code is required", ErrInvalidInput)
	}

	r, exists, err := s.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return room.Room{}, fmt.Errorf("get room by code: %w", err)
	}
	if !exists {
		return room.Room{}, fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}

	return r, nil
}

func (s *RoomService) ListPublic(ctx context.Context, leagueID string, limit int) ([]room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.ListPublic")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultPublicRoomsLimit
	}

	rooms, err := s.roomRepo.ListPublicByLeague(ctx, leagueID, limit)
	if err != nil {
		return nil, fmt.Errorf("list public rooms: %w", err)
	}

	return rooms, nil
}

// ListMine returns every room the user belongs to, carrying the cached
// score the standings recompute mirrored onto the membership.
func (s *RoomService) ListMine(ctx context.Context, userID string) ([]RoomWithMyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	memberships, err := s.roomRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}

	items := make([]RoomWithMyScore, 0, len(memberships))
	for _, m := range memberships {
		r, exists, err := s.roomRepo.GetByID(ctx, m.RoomID)
		if err != nil {
			return nil, fmt.Errorf("get room for membership: %w", err)
		}
		if !exists {
			continue
		}
		items = append(items, RoomWithMyScore{
			Room:        r,
			TotalPoints: m.TotalPoints,
			Rank:        m.Rank,
		})
	}

	return items, nil
}

// Delete removes the room and everything anchored to it. Creator only.
func (s *RoomService) Delete(ctx context.Context, userID, roomID string) error {
	ctx, span := startUsecaseSpan(ctx, "RoomService.Delete")
	defer span.End()

	userID = strings.TrimSpace(userID)
	roomID = strings.TrimSpace(roomID)
	if userID == "" || roomID == "" {
		return fmt.Errorf("%w: user_id and room_id are required", ErrInvalidInput)
	}

	r, exists, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("get room by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}
	if r.CreatorUserID != userID {
		return fmt.Errorf("%w: %v", ErrUnauthorized, room.ErrNotCreator)
	}

	if err := s.roomRepo.DeleteCascade(ctx, roomID); err != nil {
		return fmt.Errorf("delete room cascade: %w", err)
	}

	return nil
}

// RegenerateCode rotates a private room's join code. Creator only;
// public rooms have no code to rotate.
func (s *RoomService) RegenerateCode(ctx context.Context, userID, roomID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.RegenerateCode")
	defer span.End()

	userID = strings.TrimSpace(userID)
	roomID = strings.TrimSpace(roomID)
	if userID == "" || roomID == "" {
		return "", fmt.Errorf("%w: user_id and room_id are required", ErrInvalidInput)
	}

	r, exists, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return "", fmt.Errorf("get room by id: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}
	if r.CreatorUserID != userID {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, room.ErrNotCreator)
	}
	if r.Visibility != room.VisibilityPrivate {
		return "", fmt.Errorf("%w: public rooms have no join code", ErrInvalidInput)
	}

	code, err := s.uniqueJoinCode(ctx, s.now().UTC())
	if err != nil {
		return "", err
	}

	if err := s.roomRepo.UpdateCode(ctx, roomID, code); err != nil {
		return "", fmt.Errorf("update room code: %w", err)
	}

	return code, nil
}

// SharingInfo gathers what an invite surface needs: the join code plus
// a small sample of the most recent joiners.
func (s *RoomService) SharingInfo(ctx context.Context, roomID string) (RoomSharingInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.SharingInfo")
	defer span.End()

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return RoomSharingInfo{}, fmt.Errorf("%w: room id is required", ErrInvalidInput)
	}

	r, exists, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return RoomSharingInfo{}, fmt.Errorf("get room by id: %w", err)
	}
	if !exists {
		return RoomSharingInfo{}, fmt.Errorf("%w: %v", ErrNotFound, room.ErrNotFound)
	}
	if r.Code == "" {
		return RoomSharingInfo{}, fmt.Errorf("%w: room has no join code", ErrInvalidInput)
	}

	members, err := s.roomRepo.ListMembers(ctx, roomID)
	if err != nil {
		return RoomSharingInfo{}, fmt.Errorf("list room members: %w", err)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].JoinedAt.After(members[j].JoinedAt)
	})
	if len(members) > sharingRecentMemberCount {
		members = members[:sharingRecentMemberCount]
	}

	return RoomSharingInfo{
		Code:          r.Code,
		RoomName:      r.Name,
		LeagueID:      r.LeagueID,
		CreatorUserID: r.CreatorUserID,
		MemberCount:   r.CurrentParticipants,
		MaxMembers:    r.MaxParticipants,
		RecentMembers: members,
	}, nil
}

// EnsureDefaultRoom guarantees a new user lands in at least one room.
// Idempotent: a user with any membership keeps what they have.
func (s *RoomService) EnsureDefaultRoom(ctx context.Context, userID, leagueID string) (room.Room, error) {
	ctx, span := startUsecaseSpan(ctx, "RoomService.EnsureDefaultRoom")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return room.Room{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		def, err := s.defaultLeagueID(ctx)
		if err != nil {
			return room.Room{}, err
		}
		leagueID = def
	}

	memberships, err := s.roomRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return room.Room{}, fmt.Errorf("list memberships by user: %w", err)
	}
	if len(memberships) > 0 {
		existing, exists, err := s.roomRepo.GetByID(ctx, memberships[0].RoomID)
		if err != nil {
			return room.Room{}, fmt.Errorf("get room for membership: %w", err)
		}
		if exists {
			return existing, nil
		}
	}

	created, err := s.Create(ctx, CreateRoomInput{
		CreatorUserID:   userID,
		LeagueID:        leagueID,
		Name:            defaultRoomName,
		Visibility:      room.VisibilityPublic,
		MaxParticipants: defaultRoomMaxMembers,
	})
	if err != nil {
		return room.Room{}, err
	}

	return created, nil
}

func (s *RoomService) uniqueJoinCode(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := randomJoinCode()
		if err != nil {
			return "", err
		}
		_, exists, err := s.roomRepo.GetByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check join code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return fallbackJoinCode(now), nil
}

func (s *RoomService) defaultLeagueID(ctx context.Context) (string, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list leagues: %w", err)
	}
	for _, l := range leagues {
		if l.IsDefault {
			return l.ID, nil
		}
	}
	if len(leagues) > 0 {
		return leagues[0].ID, nil
	}
	return "", fmt.Errorf("%w: no leagues configured", ErrNotFound)
}

func (s *RoomService) validateLeague(ctx context.Context, leagueID string) error {
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return nil
}
