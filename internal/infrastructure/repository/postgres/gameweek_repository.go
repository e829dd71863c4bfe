package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/openfantasy/rooms/internal/domain/gameweek"
	qb "github.com/openfantasy/rooms/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) Create(ctx context.Context, gw gameweek.Gameweek) error {
	insertModel := gameweekInsertModel{
		PublicID: gw.ID,
		LeagueID: gw.LeagueID,
		Number:   gw.Number,
		Season:   gw.Season,
		Deadline: gw.Deadline,
		Status:   string(gw.Status),
		IsActive: gw.IsActive,
	}
	query, args, err := qb.InsertModel("gameweeks", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create gameweek query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create gameweek: %w", err)
	}

	return nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek by id query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek by id: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

func (r *GameweekRepository) GetActiveByLeague(ctx context.Context, leagueID string) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get active gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get active gameweek: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

func (r *GameweekRepository) ListByLeague(ctx context.Context, leagueID string, season string) ([]gameweek.Gameweek, error) {
	conditions := []qb.Condition{
		qb.Eq("league_public_id", leagueID),
		qb.IsNull("deleted_at"),
	}
	if season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	query, args, err := qb.Select("*").From("gameweeks").
		Where(conditions...).
		OrderBy("number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	return gameweeksFromRows(rows), nil
}

func (r *GameweekRepository) ListUpcomingByLeague(ctx context.Context, leagueID string) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("status", string(gameweek.StatusUpcoming)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list upcoming gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list upcoming gameweeks: %w", err)
	}

	return gameweeksFromRows(rows), nil
}

// Activate completes every other active gameweek in the same league
// before activating the target, in one transaction, so at most one
// gameweek per league is ever active.
func (r *GameweekRepository) Activate(ctx context.Context, gameweekID string, deadline *time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx activate gameweek: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	targetQuery, targetArgs, err := qb.Select("*").From("gameweeks").
		Where(
			qb.Eq("public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate gameweek target query: %w", err)
	}
	var target gameweekTableModel
	if err := tx.GetContext(ctx, &target, targetQuery, targetArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("activate gameweek: not found")
		}
		return fmt.Errorf("activate gameweek target: %w", err)
	}

	completeQuery, completeArgs, err := qb.Update("gameweeks").
		Set("is_active", false).
		Set("status", string(gameweek.StatusCompleted)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", target.LeagueID),
			qb.Eq("is_active", true),
			qb.Expr("public_id <> ?", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate gameweek complete others query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, completeQuery, completeArgs...); err != nil {
		return fmt.Errorf("activate gameweek complete others: %w", err)
	}

	activateBuilder := qb.Update("gameweeks").
		Set("is_active", true).
		Set("status", string(gameweek.StatusActive)).
		SetExpr("updated_at", "NOW()")
	if deadline != nil {
		activateBuilder = activateBuilder.Set("deadline", *deadline)
	}
	activateQuery, activateArgs, err := activateBuilder.
		Where(
			qb.Eq("public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate gameweek query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, activateQuery, activateArgs...); err != nil {
		return fmt.Errorf("activate gameweek: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate gameweek tx: %w", err)
	}

	return nil
}

func (r *GameweekRepository) UpdateStatus(ctx context.Context, gameweekID string, status gameweek.Status, isActive bool) error {
	query, args, err := qb.Update("gameweeks").
		Set("status", string(status)).
		Set("is_active", isActive).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update gameweek status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update gameweek status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update gameweek status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update gameweek status: not found")
	}

	return nil
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		Number:    row.Number,
		Season:    row.Season,
		Deadline:  row.Deadline,
		Status:    gameweek.Status(row.Status),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func gameweeksFromRows(rows []gameweekTableModel) []gameweek.Gameweek {
	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out
}
