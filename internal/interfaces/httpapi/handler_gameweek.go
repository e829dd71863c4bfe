package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/usecase"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))
	season := strings.TrimSpace(r.URL.Query().Get("season"))

	gameweeks, err := h.gameweekService.List(ctx, leagueID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweeks failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekDTO, 0, len(gameweeks))
	for _, item := range gameweeks {
		items = append(items, gameweekToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweek")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))

	current, err := h.gameweekService.GetCurrent(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get current gameweek failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, current))
}

func (h *Handler) GetNextGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextGameweek")
	defer span.End()

	leagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))

	next, err := h.gameweekService.GetNext(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get next gameweek failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, next))
}

func (h *Handler) CreateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameweek")
	defer span.End()

	var req createGameweekRequest
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

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: deadline must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.gameweekService.Create(ctx, usecase.CreateGameweekInput{
		LeagueID: req.LeagueID,
		Number:   req.Number,
		Season:   req.Season,
		Deadline: deadline,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create gameweek failed", "league_id", req.LeagueID, "number", req.Number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameweekToDTO(ctx, created))
}

func (h *Handler) ActivateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	activated, err := h.gameweekService.Activate(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "activate gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, activated))
}

// BootstrapGameweek activates the first configured gameweek of a league
// when none is active yet. Safe to call repeatedly.
func (h *Handler) BootstrapGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BootstrapGameweek")
	defer span.End()

	var req bootstrapGameweekRequest
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

	activated, err := h.gameweekService.ActivateFirstIfNone(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "bootstrap gameweek failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, activated))
}
