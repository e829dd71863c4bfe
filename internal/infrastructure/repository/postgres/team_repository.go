package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/openfantasy/rooms/internal/domain/roster"
	qb "github.com/openfantasy/rooms/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByUserGameweekRoom(ctx context.Context, userID, gameweekID, roomID string) (roster.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("gameweek_public_id", gameweekID),
			qb.Eq("room_public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return roster.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Team{}, false, nil
		}
		return roster.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByRoomAndGameweek(ctx context.Context, roomID, gameweekID string) ([]roster.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.Eq("gameweek_public_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by room and gameweek query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by room and gameweek: %w", err)
	}

	return teamsFromRows(rows), nil
}

func (r *TeamRepository) ListByRoom(ctx context.Context, roomID string) ([]roster.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("gameweek_public_id ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by room query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by room: %w", err)
	}

	return teamsFromRows(rows), nil
}

// Upsert overwrites the full roster snapshot for the (user, gameweek,
// room) key. Substitution tokens and points are written as given; the
// usecase carries them across re-submissions.
func (r *TeamRepository) Upsert(ctx context.Context, team roster.Team) error {
	insertModel := teamInsertModel{
		PublicID:               team.ID,
		UserID:                 team.UserID,
		GameweekID:             team.GameweekID,
		RoomID:                 team.RoomID,
		Formation:              string(team.Formation),
		GoalkeeperID:           team.Starters.GoalkeeperID,
		DefenderIDs:            pq.StringArray(team.Starters.DefenderIDs),
		MidfielderIDs:          pq.StringArray(team.Starters.MidfielderIDs),
		ForwardIDs:             pq.StringArray(team.Starters.ForwardIDs),
		BenchGoalkeeperID:      team.Bench.GoalkeeperID,
		BenchDefenderID:        team.Bench.DefenderID,
		BenchMidfielderID:      team.Bench.MidfielderID,
		BenchForwardID:         team.Bench.ForwardID,
		CaptainID:              team.CaptainID,
		ViceCaptainID:          team.ViceCaptainID,
		SubstitutionTokensUsed: team.SubstitutionTokensUsed,
		GameweekPoints:         team.GameweekPoints,
		SubmittedAt:            team.SubmittedAt,
	}
	query, args, err := qb.InsertModel("fantasy_teams", insertModel, `ON CONFLICT (user_id, gameweek_public_id, room_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    formation = EXCLUDED.formation,
    goalkeeper_player_public_id = EXCLUDED.goalkeeper_player_public_id,
    defender_player_ids = EXCLUDED.defender_player_ids,
    midfielder_player_ids = EXCLUDED.midfielder_player_ids,
    forward_player_ids = EXCLUDED.forward_player_ids,
    bench_goalkeeper_player_public_id = EXCLUDED.bench_goalkeeper_player_public_id,
    bench_defender_player_public_id = EXCLUDED.bench_defender_player_public_id,
    bench_midfielder_player_public_id = EXCLUDED.bench_midfielder_player_public_id,
    bench_forward_player_public_id = EXCLUDED.bench_forward_player_public_id,
    captain_player_public_id = EXCLUDED.captain_player_public_id,
    vice_captain_player_public_id = EXCLUDED.vice_captain_player_public_id,
    substitution_tokens_used = EXCLUDED.substitution_tokens_used,
    gameweek_points = EXCLUDED.gameweek_points,
    submitted_at = EXCLUDED.submitted_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) SetGameweekPoints(ctx context.Context, userID, gameweekID, roomID string, points int) error {
	query, args, err := qb.Update("fantasy_teams").
		Set("gameweek_points", points).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("gameweek_public_id", gameweekID),
			qb.Eq("room_public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set gameweek points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set gameweek points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set gameweek points: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set gameweek points: team not found")
	}

	return nil
}

func teamFromRow(row teamTableModel) roster.Team {
	return roster.Team{
		ID:         row.PublicID,
		UserID:     row.UserID,
		GameweekID: row.GameweekID,
		RoomID:     row.RoomID,
		Formation:  roster.Formation(row.Formation),
		Starters: roster.StartingXI{
			GoalkeeperID:  row.GoalkeeperID,
			DefenderIDs:   []string(row.DefenderIDs),
			MidfielderIDs: []string(row.MidfielderIDs),
			ForwardIDs:    []string(row.ForwardIDs),
		},
		Bench: roster.Bench{
			GoalkeeperID: row.BenchGoalkeeperID,
			DefenderID:   row.BenchDefenderID,
			MidfielderID: row.BenchMidfielderID,
			ForwardID:    row.BenchForwardID,
		},
		CaptainID:              row.CaptainID,
		ViceCaptainID:          row.ViceCaptainID,
		SubstitutionTokensUsed: row.SubstitutionTokensUsed,
		GameweekPoints:         row.GameweekPoints,
		SubmittedAt:            row.SubmittedAt,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}

func teamsFromRows(rows []teamTableModel) []roster.Team {
	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out
}
