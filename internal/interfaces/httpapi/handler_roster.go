package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/usecase"
)

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req saveTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.rosterService.Save(ctx, usecase.SaveTeamInput{
		UserID:     principal.UserID,
		GameweekID: req.GameweekID,
		RoomID:     req.RoomID,
		Formation:  roster.Formation(req.Formation),
		Starters: roster.StartingXI{
			GoalkeeperID:  req.GoalkeeperID,
			DefenderIDs:   req.DefenderIDs,
			MidfielderIDs: req.MidfielderIDs,
			ForwardIDs:    req.ForwardIDs,
		},
		Bench: roster.Bench{
			GoalkeeperID: req.BenchGoalkeeperID,
			DefenderID:   req.BenchDefenderID,
			MidfielderID: req.BenchMidfielderID,
			ForwardID:    req.BenchForwardID,
		},
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "user_id", principal.UserID, "gameweek_id", req.GameweekID, "room_id", req.RoomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, saved))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	roomID := strings.TrimSpace(r.PathValue("roomID"))
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	team, err := h.rosterService.GetTeam(ctx, principal.UserID, gameweekID, roomID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "gameweek_id", gameweekID, "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) UpdateCaptains(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCaptains")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateCaptainsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.UpdateCaptains(ctx, usecase.UpdateCaptainsInput{
		UserID:        principal.UserID,
		GameweekID:    req.GameweekID,
		RoomID:        req.RoomID,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update captains failed", "user_id", principal.UserID, "gameweek_id", req.GameweekID, "room_id", req.RoomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, updated))
}

func (h *Handler) ApplySubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplySubstitution")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req substitutionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.ApplySubstitution(ctx, usecase.SubstitutionInput{
		UserID:      principal.UserID,
		GameweekID:  req.GameweekID,
		RoomID:      req.RoomID,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply substitution failed", "user_id", principal.UserID, "gameweek_id", req.GameweekID, "room_id", req.RoomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, updated))
}
