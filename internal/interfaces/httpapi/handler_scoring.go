package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/usecase"
)

// IngestScores is the external scoring feed boundary: it accepts
// per-user gameweek point totals for one room and recomputes that
// room's standings.
func (h *Handler) IngestScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestScores")
	defer span.End()

	var req ingestScoresRequest
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

	scores := make([]usecase.UserScore, 0, len(req.Scores))
	for _, record := range req.Scores {
		scores = append(scores, usecase.UserScore{
			UserID: record.UserID,
			Points: record.Points,
		})
	}

	standings, err := h.standingsService.IngestScores(ctx, usecase.IngestScoresInput{
		RoomID:     req.RoomID,
		GameweekID: req.GameweekID,
		Scores:     scores,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest scores failed", "room_id", req.RoomID, "gameweek_id", req.GameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "scores ingested",
		"room_id", req.RoomID,
		"gameweek_id", req.GameweekID,
		"score_count", len(scores),
	)
	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(ctx, standings))
}

// RecomputeAllStandings fans out a recompute over every room following
// a league for one gameweek.
func (h *Handler) RecomputeAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeAllStandings")
	defer span.End()

	var req recomputeAllRequest
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

	summary, err := h.standingsService.RecomputeAll(ctx, req.LeagueID, req.GameweekID, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute all standings failed", "league_id", req.LeagueID, "gameweek_id", req.GameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "league standings recomputed",
		"league_id", req.LeagueID,
		"gameweek_id", req.GameweekID,
		"room_count", summary.RoomCount,
		"failed_count", summary.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}
