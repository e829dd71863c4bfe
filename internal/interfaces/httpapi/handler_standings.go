package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/openfantasy/rooms/internal/domain/standing"
)

func (h *Handler) GetGameweekStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekStandings")
	defer span.End()

	roomID := strings.TrimSpace(r.PathValue("roomID"))
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	standings, err := h.standingsService.GetByGameweek(ctx, roomID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek standings failed", "room_id", roomID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(ctx, standings))
}

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	roomID := strings.TrimSpace(r.PathValue("roomID"))

	standings, err := h.standingsService.GetSeason(ctx, roomID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season standings failed", "room_id", roomID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(ctx, standings))
}

func (h *Handler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStandings")
	defer span.End()

	roomID := strings.TrimSpace(r.PathValue("roomID"))
	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	standings, err := h.standingsService.Recompute(ctx, roomID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute standings failed", "room_id", roomID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(ctx, standings))
}

func standingsToDTOs(ctx context.Context, standings []standing.Standing) []standingDTO {
	items := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		items = append(items, standingToDTO(ctx, item))
	}
	return items
}
