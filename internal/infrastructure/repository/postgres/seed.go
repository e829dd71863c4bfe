package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the starter catalog into an empty database.
// A database that already has leagues is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, name, country_code, season, is_default)
VALUES (:public_id, :name, :country_code, :season, :is_default)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    l.ID,
			"name":         l.Name,
			"country_code": l.CountryCode,
			"season":       l.Season,
			"is_default":   l.IsDefault,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, c := range memory.SeedClubs() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (public_id, league_public_id, name, short_name)
VALUES (:public_id, :league_public_id, :name, :short_name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        c.ID,
			"league_public_id": c.LeagueID,
			"name":             c.Name,
			"short_name":       c.ShortName,
		})
		if err != nil {
			return fmt.Errorf("bind seed club %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed club %s: %w", c.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, league_public_id, club_public_id, name, position, is_injured, is_suspended, season_points)
VALUES (:public_id, :league_public_id, :club_public_id, :name, :position, :is_injured, :is_suspended, :season_points)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        p.ID,
			"league_public_id": p.LeagueID,
			"club_public_id":   p.ClubID,
			"name":             p.Name,
			"position":         string(p.Position),
			"is_injured":       p.IsInjured,
			"is_suspended":     p.IsSuspended,
			"season_points":    p.SeasonPoints,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, gw := range memory.SeedGameweeks() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO gameweeks (public_id, league_public_id, number, season, deadline, status, is_active)
VALUES (:public_id, :league_public_id, :number, :season, :deadline, :status, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        gw.ID,
			"league_public_id": gw.LeagueID,
			"number":           gw.Number,
			"season":           gw.Season,
			"deadline":         gw.Deadline,
			"status":           string(gw.Status),
			"is_active":        gw.IsActive,
		})
		if err != nil {
			return fmt.Errorf("bind seed gameweek %s query: %w", gw.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed gameweek %s: %w", gw.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
