package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/player"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/domain/roster"
	idgen "github.com/openfantasy/rooms/internal/platform/id"
)

type SaveTeamInput struct {
	UserID     string
	GameweekID string
	RoomID     string
	Formation  roster.Formation
	Starters   roster.StartingXI
	Bench      roster.Bench

	CaptainID     string
	ViceCaptainID string
}

type UpdateCaptainsInput struct {
	UserID        string
	GameweekID    string
	RoomID        string
	CaptainID     string
	ViceCaptainID string
}

type SubstitutionInput struct {
	UserID      string
	GameweekID  string
	RoomID      string
	PlayerOutID string
	PlayerInID  string
}

type RosterService struct {
	teamRepo     roster.Repository
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	roomRepo     room.Repository
	idGen        idgen.Generator
	now          func() time.Time
}

func NewRosterService(
	teamRepo roster.Repository,
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	roomRepo room.Repository,
	idGen idgen.Generator,
) *RosterService {
	return &RosterService{
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		roomRepo:     roomRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

// Save validates and stores a roster for one (user, gameweek, room).
// Structural checks run before the deadline gate so a submitter always
// learns about a broken lineup even when the window already closed.
// Substitution tokens and accumulated points survive re-submission.
func (s *RosterService) Save(ctx context.Context, input SaveTeamInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.GameweekID = strings.TrimSpace(input.GameweekID)
	input.RoomID = strings.TrimSpace(input.RoomID)
	if input.UserID == "" {
		return roster.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.GameweekID == "" {
		return roster.Team{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if input.RoomID == "" {
		return roster.Team{}, fmt.Errorf("%w: room id is required", ErrInvalidInput)
	}

	if err := s.requireMembership(ctx, input.RoomID, input.UserID); err != nil {
		return roster.Team{}, err
	}

	lookup, err := s.playerLookup(ctx, append(input.Starters.PlayerIDs(), input.Bench.PlayerIDs()...))
	if err != nil {
		return roster.Team{}, err
	}

	if err := roster.ValidateSelection(input.Formation, input.Starters, input.Bench, input.CaptainID, input.ViceCaptainID, lookup); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now, err := s.requireOpenDeadline(ctx, input.GameweekID)
	if err != nil {
		return roster.Team{}, err
	}

	existing, hasExisting, err := s.teamRepo.GetByUserGameweekRoom(ctx, input.UserID, input.GameweekID, input.RoomID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get existing team: %w", err)
	}

	team := roster.Team{
		UserID:        input.UserID,
		GameweekID:    input.GameweekID,
		RoomID:        input.RoomID,
		Formation:     input.Formation,
		Starters:      input.Starters,
		Bench:         input.Bench,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}
	if hasExisting {
		team.ID = existing.ID
		team.SubstitutionTokensUsed = existing.SubstitutionTokensUsed
		team.GameweekPoints = existing.GameweekPoints
		team.CreatedAt = existing.CreatedAt
	} else {
		teamID, idErr := s.idGen.NewID()
		if idErr != nil {
			return roster.Team{}, fmt.Errorf("generate team id: %w", idErr)
		}
		team.ID = teamID
		team.CreatedAt = now
	}

	if err := s.teamRepo.Upsert(ctx, team); err != nil {
		return roster.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	return team, nil
}

func (s *RosterService) GetTeam(ctx context.Context, userID, gameweekID, roomID string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	gameweekID = strings.TrimSpace(gameweekID)
	roomID = strings.TrimSpace(roomID)
	if userID == "" || gameweekID == "" || roomID == "" {
		return roster.Team{}, fmt.Errorf("%w: user_id, gameweek_id, and room_id are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByUserGameweekRoom(ctx, userID, gameweekID, roomID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrNotFound, roster.ErrTeamNotFound)
	}

	return team, nil
}

// UpdateCaptains swaps captaincy on an already submitted roster without
// touching the lineup. Captaincy rules are checked before the deadline
// gate, same order as Save.
func (s *RosterService) UpdateCaptains(ctx context.Context, input UpdateCaptainsInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UpdateCaptains")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.GameweekID = strings.TrimSpace(input.GameweekID)
	input.RoomID = strings.TrimSpace(input.RoomID)
	if input.UserID == "" || input.GameweekID == "" || input.RoomID == "" {
		return roster.Team{}, fmt.Errorf("%w: user_id, gameweek_id, and room_id are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByUserGameweekRoom(ctx, input.UserID, input.GameweekID, input.RoomID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrNotFound, roster.ErrTeamNotFound)
	}

	if err := roster.ValidateCaptaincy(team.Starters, input.CaptainID, input.ViceCaptainID); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now, err := s.requireOpenDeadline(ctx, input.GameweekID)
	if err != nil {
		return roster.Team{}, err
	}

	team.CaptainID = input.CaptainID
	team.ViceCaptainID = input.ViceCaptainID
	team.UpdatedAt = now

	if err := s.teamRepo.Upsert(ctx, team); err != nil {
		return roster.Team{}, fmt.Errorf("update captains: %w", err)
	}

	return team, nil
}

// ApplySubstitution spends one token to swap a rostered player for a
// catalog player of the same position. Captaincy follows the outgoing
// player onto the incoming one so the captain always stays in the
// starting XI. Eligibility and token checks run first, the deadline
// gate last, matching Save; once the gameweek locks the roster is
// frozen.
func (s *RosterService) ApplySubstitution(ctx context.Context, input SubstitutionInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ApplySubstitution")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.GameweekID = strings.TrimSpace(input.GameweekID)
	input.RoomID = strings.TrimSpace(input.RoomID)
	input.PlayerOutID = strings.TrimSpace(input.PlayerOutID)
	input.PlayerInID = strings.TrimSpace(input.PlayerInID)
	if input.UserID == "" || input.GameweekID == "" || input.RoomID == "" {
		return roster.Team{}, fmt.Errorf("%w: user_id, gameweek_id, and room_id are required", ErrInvalidInput)
	}
	if input.PlayerOutID == "" || input.PlayerInID == "" {
		return roster.Team{}, fmt.Errorf("%w: player_out_id and player_in_id are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByUserGameweekRoom(ctx, input.UserID, input.GameweekID, input.RoomID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrNotFound, roster.ErrTeamNotFound)
	}

	playerOut, exists, err := s.playerRepo.GetByID(ctx, input.PlayerOutID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get outgoing player: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerOutID)
	}
	playerIn, exists, err := s.playerRepo.GetByID(ctx, input.PlayerInID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get incoming player: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerInID)
	}

	if err := roster.ValidateSubstitution(team, playerOut, playerIn); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now, err := s.requireOpenDeadline(ctx, input.GameweekID)
	if err != nil {
		return roster.Team{}, err
	}

	swapRosterPlayer(&team, playerOut.ID, playerIn.ID)
	if team.CaptainID == playerOut.ID {
		team.CaptainID = playerIn.ID
	}
	if team.ViceCaptainID == playerOut.ID {
		team.ViceCaptainID = playerIn.ID
	}
	team.SubstitutionTokensUsed++
	team.UpdatedAt = now

	if err := s.teamRepo.Upsert(ctx, team); err != nil {
		return roster.Team{}, fmt.Errorf("apply substitution: %w", err)
	}

	return team, nil
}

// requireOpenDeadline loads the gameweek and rejects the write once its
// deadline has passed. Returns the clock reading used for the check so
// callers stamp timestamps consistently.
func (s *RosterService) requireOpenDeadline(ctx context.Context, gameweekID string) (time.Time, error) {
	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return time.Time{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return time.Time{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}

	now := s.now().UTC()
	if gw.DeadlinePassed(now) {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrDeadlinePassed)
	}

	return now, nil
}

func (s *RosterService) requireMembership(ctx context.Context, roomID, userID string) error {
	_, exists, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("get room by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: room=%s", ErrNotFound, roomID)
	}

	isMember, err := s.roomRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return fmt.Errorf("check room member: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: you are not a member of this room", ErrUnauthorized)
	}

	return nil
}

func (s *RosterService) playerLookup(ctx context.Context, playerIDs []string) (roster.PlayerLookup, error) {
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	return func(playerID string) (player.Player, bool) {
		p, ok := byID[playerID]
		return p, ok
	}, nil
}

func swapRosterPlayer(team *roster.Team, outID, inID string) {
	if team.Starters.GoalkeeperID == outID {
		team.Starters.GoalkeeperID = inID
		return
	}
	if replaceID(team.Starters.DefenderIDs, outID, inID) {
		return
	}
	if replaceID(team.Starters.MidfielderIDs, outID, inID) {
		return
	}
	if replaceID(team.Starters.ForwardIDs, outID, inID) {
		return
	}
	switch outID {
	case team.Bench.GoalkeeperID:
		team.Bench.GoalkeeperID = inID
	case team.Bench.DefenderID:
		team.Bench.DefenderID = inID
	case team.Bench.MidfielderID:
		team.Bench.MidfielderID = inID
	case team.Bench.ForwardID:
		team.Bench.ForwardID = inID
	}
}

func replaceID(ids []string, outID, inID string) bool {
	for i, id := range ids {
		if id == outID {
			ids[i] = inID
			return true
		}
	}
	return false
}
