package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/usecase"
)

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRoom")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createRoomRequest
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

	created, err := h.roomService.Create(ctx, usecase.CreateRoomInput{
		CreatorUserID:   principal.UserID,
		LeagueID:        req.LeagueID,
		Name:            req.Name,
		Visibility:      room.Visibility(req.Visibility),
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create room failed", "user_id", principal.UserID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roomToDTO(ctx, created))
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinRoom")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinRoomRequest
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

	joined, err := h.roomService.Join(ctx, usecase.JoinRoomInput{
		UserID: principal.UserID,
		RoomID: req.RoomID,
		Code:   req.Code,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join room failed", "user_id", principal.UserID, "room_id", req.RoomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(ctx, joined))
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoom")
	defer span.End()

	roomID := strings.TrimSpace(r.PathValue("roomID"))

	detail, err := h.roomService.GetWithMembers(ctx, roomID)
	if err != nil {
		h.logger.WarnContext(ctx, "get room failed", "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomDetailToDTO(ctx, detail))
}

func (h *Handler) GetRoomByCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoomByCode")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))

	found, err := h.roomService.GetByCode(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "get room by code failed", "code", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(ctx, found))
}

func (h *Handler) ListPublicRooms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublicRooms")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	rooms, err := h.roomService.ListPublic(ctx, leagueID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list public rooms failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roomDTO, 0, len(rooms))
	for _, item := range rooms {
		items = append(items, roomToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyRooms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyRooms")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	rooms, err := h.roomService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my rooms failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]myRoomDTO, 0, len(rooms))
	for _, item := range rooms {
		items = append(items, myRoomToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRoom")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	roomID := strings.TrimSpace(r.PathValue("roomID"))

	if err := h.roomService.Delete(ctx, principal.UserID, roomID); err != nil {
		h.logger.WarnContext(ctx, "delete room failed", "user_id", principal.UserID, "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) RegenerateRoomCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegenerateRoomCode")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	roomID := strings.TrimSpace(r.PathValue("roomID"))

	code, err := h.roomService.RegenerateCode(ctx, principal.UserID, roomID)
	if err != nil {
		h.logger.WarnContext(ctx, "regenerate room code failed", "user_id", principal.UserID, "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"code": code})
}

func (h *Handler) GetRoomSharingInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoomSharingInfo")
	defer span.End()

	roomID := strings.TrimSpace(r.PathValue("roomID"))

	info, err := h.roomService.SharingInfo(ctx, roomID)
	if err != nil {
		h.logger.WarnContext(ctx, "get room sharing info failed", "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sharingInfoToDTO(ctx, info))
}

func (h *Handler) EnsureDefaultRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnsureDefaultRoom")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))

	ensured, err := h.roomService.EnsureDefaultRoom(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "ensure default room failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(ctx, ensured))
}
