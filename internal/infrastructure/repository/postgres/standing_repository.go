package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/openfantasy/rooms/internal/domain/standing"
	qb "github.com/openfantasy/rooms/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// UpsertBatch writes the recomputed rows for one (room, gameweek) pass
// in a single transaction so readers never see a half-applied table.
func (r *StandingRepository) UpsertBatch(ctx context.Context, items []standing.Standing) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := standingInsertModel{
			RoomID:         item.RoomID,
			GameweekID:     item.GameweekID,
			UserID:         item.UserID,
			GameweekPoints: item.GameweekPoints,
			TotalPoints:    item.TotalPoints,
			Rank:           item.Rank,
			CalculatedAt:   item.CalculatedAt,
		}
		query, args, err := qb.InsertModel("room_standings", insertModel, `ON CONFLICT (room_public_id, gameweek_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    gameweek_points = EXCLUDED.gameweek_points,
    total_points = EXCLUDED.total_points,
    rank = EXCLUDED.rank,
    calculated_at = EXCLUDED.calculated_at,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert standings tx: %w", err)
	}

	return nil
}

func (r *StandingRepository) ListByRoomAndGameweek(ctx context.Context, roomID, gameweekID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("room_standings").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.Eq("gameweek_public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings by gameweek query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings by gameweek: %w", err)
	}

	return standingsFromRows(rows), nil
}

func (r *StandingRepository) ListByRoom(ctx context.Context, roomID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("room_standings").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("gameweek_public_id ASC", "rank ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings by room query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings by room: %w", err)
	}

	return standingsFromRows(rows), nil
}

func standingsFromRows(rows []standingTableModel) []standing.Standing {
	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			RoomID:         row.RoomID,
			GameweekID:     row.GameweekID,
			UserID:         row.UserID,
			GameweekPoints: row.GameweekPoints,
			TotalPoints:    row.TotalPoints,
			Rank:           row.Rank,
			CalculatedAt:   row.CalculatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return out
}
