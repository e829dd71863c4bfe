package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/openfantasy/rooms/internal/domain/club"
	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/player"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/domain/standing"
	"github.com/openfantasy/rooms/internal/platform/logging"
	"github.com/openfantasy/rooms/internal/usecase"
)

type Handler struct {
	roomService      *usecase.RoomService
	rosterService    *usecase.RosterService
	gameweekService  *usecase.GameweekService
	standingsService *usecase.StandingsService
	catalogService   *usecase.CatalogService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	roomService *usecase.RoomService,
	rosterService *usecase.RosterService,
	gameweekService *usecase.GameweekService,
	standingsService *usecase.StandingsService,
	catalogService *usecase.CatalogService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		roomService:      roomService,
		rosterService:    rosterService,
		gameweekService:  gameweekService,
		standingsService: standingsService,
		catalogService:   catalogService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createRoomRequest struct {
	LeagueID        string `json:"league_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=120"`
	Visibility      string `json:"visibility" validate:"required,oneof=public private"`
	MaxParticipants int    `json:"max_participants" validate:"required,gt=1,lte=1000"`
}

type joinRoomRequest struct {
	RoomID string `json:"room_id" validate:"required_without=Code,omitempty"`
	Code   string `json:"code" validate:"required_without=RoomID,omitempty,min=6,max=32"`
}

type saveTeamRequest struct {
	GameweekID        string   `json:"gameweek_id" validate:"required"`
	RoomID            string   `json:"room_id" validate:"required"`
	Formation         string   `json:"formation" validate:"required"`
	GoalkeeperID      string   `json:"goalkeeper_id" validate:"required"`
	DefenderIDs       []string `json:"defender_ids" validate:"required,min=3,max=5,dive,required"`
	MidfielderIDs     []string `json:"midfielder_ids" validate:"required,min=3,max=5,dive,required"`
	ForwardIDs        []string `json:"forward_ids" validate:"required,min=1,max=3,dive,required"`
	BenchGoalkeeperID string   `json:"bench_goalkeeper_id" validate:"required"`
	BenchDefenderID   string   `json:"bench_defender_id" validate:"required"`
	BenchMidfielderID string   `json:"bench_midfielder_id" validate:"required"`
	BenchForwardID    string   `json:"bench_forward_id" validate:"required"`
	CaptainID         string   `json:"captain_id" validate:"required"`
	ViceCaptainID     string   `json:"vice_captain_id" validate:"required"`
}

type updateCaptainsRequest struct {
	GameweekID    string `json:"gameweek_id" validate:"required"`
	RoomID        string `json:"room_id" validate:"required"`
	CaptainID     string `json:"captain_id" validate:"required"`
	ViceCaptainID string `json:"vice_captain_id" validate:"required"`
}

type substitutionRequest struct {
	GameweekID  string `json:"gameweek_id" validate:"required"`
	RoomID      string `json:"room_id" validate:"required"`
	PlayerOutID string `json:"player_out_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
}

type createGameweekRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
	Number   int    `json:"number" validate:"required,gt=0"`
	Season   string `json:"season" validate:"required,max=20"`
	Deadline string `json:"deadline" validate:"required"`
}

type bootstrapGameweekRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type ingestScoresRequest struct {
	RoomID     string                  `json:"room_id" validate:"required"`
	GameweekID string                  `json:"gameweek_id" validate:"required"`
	Scores     []ingestUserScoreRecord `json:"scores" validate:"required,min=1,dive"`
}

type ingestUserScoreRecord struct {
	UserID string `json:"user_id" validate:"required"`
	Points int    `json:"points" validate:"gte=0"`
}

type recomputeAllRequest struct {
	LeagueID   string `json:"league_id" validate:"required"`
	GameweekID string `json:"gameweek_id" validate:"required"`
	MaxWorkers int    `json:"max_workers" validate:"gte=0,lte=64"`
}

type roomDTO struct {
	ID                  string `json:"id"`
	LeagueID            string `json:"league_id"`
	CreatorUserID       string `json:"creator_user_id"`
	Name                string `json:"name"`
	Visibility          string `json:"visibility"`
	Code                string `json:"code,omitempty"`
	MaxParticipants     int    `json:"max_participants"`
	CurrentParticipants int    `json:"current_participants"`
	Status              string `json:"status"`
	CreatedAtUTC        string `json:"created_at_utc"`
	UpdatedAtUTC        string `json:"updated_at_utc"`
}

type roomMemberDTO struct {
	UserID               string `json:"user_id"`
	TotalPoints          int    `json:"total_points"`
	Rank                 int    `json:"rank"`
	LastScoredGameweekID string `json:"last_scored_gameweek_id,omitempty"`
	JoinedAtUTC          string `json:"joined_at_utc"`
}

type roomDetailDTO struct {
	Room    roomDTO         `json:"room"`
	Members []roomMemberDTO `json:"members"`
}

type myRoomDTO struct {
	Room        roomDTO `json:"room"`
	TotalPoints int     `json:"total_points"`
	Rank        int     `json:"rank"`
}

type roomSharingDTO struct {
	Code          string          `json:"code"`
	RoomName      string          `json:"room_name"`
	LeagueID      string          `json:"league_id"`
	CreatorUserID string          `json:"creator_user_id"`
	MemberCount   int             `json:"member_count"`
	MaxMembers    int             `json:"max_members"`
	RecentMembers []roomMemberDTO `json:"recent_members"`
}

type teamDTO struct {
	ID                     string   `json:"id"`
	UserID                 string   `json:"userId"`
	GameweekID             string   `json:"gameweekId"`
	RoomID                 string   `json:"roomId"`
	Formation              string   `json:"formation"`
	GoalkeeperID           string   `json:"goalkeeperId"`
	DefenderIDs            []string `json:"defenderIds"`
	MidfielderIDs          []string `json:"midfielderIds"`
	ForwardIDs             []string `json:"forwardIds"`
	BenchGoalkeeperID      string   `json:"benchGoalkeeperId"`
	BenchDefenderID        string   `json:"benchDefenderId"`
	BenchMidfielderID      string   `json:"benchMidfielderId"`
	BenchForwardID         string   `json:"benchForwardId"`
	CaptainID              string   `json:"captainId"`
	ViceCaptainID          string   `json:"viceCaptainId"`
	SubstitutionTokensUsed int      `json:"substitutionTokensUsed"`
	GameweekPoints         int      `json:"gameweekPoints"`
	SubmittedAt            string   `json:"submittedAt"`
	UpdatedAt              string   `json:"updatedAt"`
}

type gameweekDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"league_id"`
	Number    int    `json:"number"`
	Season    string `json:"season"`
	Deadline  string `json:"deadline"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	UpdatedAt string `json:"updated_at"`
}

type standingDTO struct {
	RoomID         string `json:"room_id"`
	GameweekID     string `json:"gameweek_id"`
	UserID         string `json:"user_id"`
	GameweekPoints int    `json:"gameweek_points"`
	TotalPoints    int    `json:"total_points"`
	Rank           int    `json:"rank"`
	CalculatedAt   string `json:"calculated_at"`
}

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Season      string `json:"season"`
	IsDefault   bool   `json:"is_default"`
}

type clubDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"league_id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type playerDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"league_id"`
	ClubID       string `json:"club_id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	IsInjured    bool   `json:"is_injured"`
	IsSuspended  bool   `json:"is_suspended"`
	SeasonPoints int    `json:"season_points"`
}

func roomToDTO(ctx context.Context, v room.Room) roomDTO {
	ctx, span := startSpan(ctx, "httpapi.roomToDTO")
	defer span.End()

	return roomDTO{
		ID:                  v.ID,
		LeagueID:            v.LeagueID,
		CreatorUserID:       v.CreatorUserID,
		Name:                v.Name,
		Visibility:          string(v.Visibility),
		Code:                v.Code,
		MaxParticipants:     v.MaxParticipants,
		CurrentParticipants: v.CurrentParticipants,
		Status:              string(v.Status),
		CreatedAtUTC:        v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:        v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func membershipToDTO(ctx context.Context, v room.Membership) roomMemberDTO {
	ctx, span := startSpan(ctx, "httpapi.membershipToDTO")
	defer span.End()

	return roomMemberDTO{
		UserID:               v.UserID,
		TotalPoints:          v.TotalPoints,
		Rank:                 v.Rank,
		LastScoredGameweekID: v.LastScoredGameweekID,
		JoinedAtUTC:          v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func roomDetailToDTO(ctx context.Context, v usecase.RoomWithMembers) roomDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.roomDetailToDTO")
	defer span.End()

	members := make([]roomMemberDTO, 0, len(v.Members))
	for _, member := range v.Members {
		members = append(members, membershipToDTO(ctx, member))
	}

	return roomDetailDTO{
		Room:    roomToDTO(ctx, v.Room),
		Members: members,
	}
}

func myRoomToDTO(ctx context.Context, v usecase.RoomWithMyScore) myRoomDTO {
	ctx, span := startSpan(ctx, "httpapi.myRoomToDTO")
	defer span.End()

	return myRoomDTO{
		Room:        roomToDTO(ctx, v.Room),
		TotalPoints: v.TotalPoints,
		Rank:        v.Rank,
	}
}

func sharingInfoToDTO(ctx context.Context, v usecase.RoomSharingInfo) roomSharingDTO {
	ctx, span := startSpan(ctx, "httpapi.sharingInfoToDTO")
	defer span.End()

	recent := make([]roomMemberDTO, 0, len(v.RecentMembers))
	for _, member := range v.RecentMembers {
		recent = append(recent, membershipToDTO(ctx, member))
	}

	return roomSharingDTO{
		Code:          v.Code,
		RoomName:      v.RoomName,
		LeagueID:      v.LeagueID,
		CreatorUserID: v.CreatorUserID,
		MemberCount:   v.MemberCount,
		MaxMembers:    v.MaxMembers,
		RecentMembers: recent,
	}
}

func teamToDTO(ctx context.Context, v roster.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:                     v.ID,
		UserID:                 v.UserID,
		GameweekID:             v.GameweekID,
		RoomID:                 v.RoomID,
		Formation:              string(v.Formation),
		GoalkeeperID:           v.Starters.GoalkeeperID,
		DefenderIDs:            append([]string(nil), v.Starters.DefenderIDs...),
		MidfielderIDs:          append([]string(nil), v.Starters.MidfielderIDs...),
		ForwardIDs:             append([]string(nil), v.Starters.ForwardIDs...),
		BenchGoalkeeperID:      v.Bench.GoalkeeperID,
		BenchDefenderID:        v.Bench.DefenderID,
		BenchMidfielderID:      v.Bench.MidfielderID,
		BenchForwardID:         v.Bench.ForwardID,
		CaptainID:              v.CaptainID,
		ViceCaptainID:          v.ViceCaptainID,
		SubstitutionTokensUsed: v.SubstitutionTokensUsed,
		GameweekPoints:         v.GameweekPoints,
		SubmittedAt:            v.SubmittedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func gameweekToDTO(ctx context.Context, v gameweek.Gameweek) gameweekDTO {
	ctx, span := startSpan(ctx, "httpapi.gameweekToDTO")
	defer span.End()

	return gameweekDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		Number:    v.Number,
		Season:    v.Season,
		Deadline:  v.Deadline.UTC().Format(time.RFC3339),
		Status:    string(v.Status),
		IsActive:  v.IsActive,
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func standingToDTO(ctx context.Context, v standing.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		RoomID:         v.RoomID,
		GameweekID:     v.GameweekID,
		UserID:         v.UserID,
		GameweekPoints: v.GameweekPoints,
		TotalPoints:    v.TotalPoints,
		Rank:           v.Rank,
		CalculatedAt:   v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		CountryCode: v.CountryCode,
		Season:      v.Season,
		IsDefault:   v.IsDefault,
	}
}

func clubToDTO(ctx context.Context, v club.Club) clubDTO {
	ctx, span := startSpan(ctx, "httpapi.clubToDTO")
	defer span.End()

	return clubDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		Name:      v.Name,
		ShortName: v.ShortName,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		ClubID:       v.ClubID,
		Name:         v.Name,
		Position:     string(v.Position),
		IsInjured:    v.IsInjured,
		IsSuspended:  v.IsSuspended,
		SeasonPoints: v.SeasonPoints,
	}
}
