package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/openfantasy/rooms/internal/domain/room"
	qb "github.com/openfantasy/rooms/internal/platform/querybuilder"
)

// RoomRepository persists rooms and memberships. Room rows carry the
// participant counter; membership rows carry the mirrored score cache.
type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) CreateWithCreator(ctx context.Context, item room.Room, creator room.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create room: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	roomInsert := roomInsertModel{
		PublicID:            item.ID,
		LeagueID:            item.LeagueID,
		CreatorUserID:       item.CreatorUserID,
		Name:                item.Name,
		Visibility:          string(item.Visibility),
		Code:                toNullString(item.Code),
		MaxParticipants:     item.MaxParticipants,
		CurrentParticipants: item.CurrentParticipants,
		Status:              string(item.Status),
	}
	roomQuery, roomArgs, err := qb.InsertModel("rooms", roomInsert, "")
	if err != nil {
		return fmt.Errorf("build create room query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, roomQuery, roomArgs...); err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	memberQuery, memberArgs, err := qb.InsertModel("room_members", roomMemberInsertModel{
		RoomID:               creator.RoomID,
		UserID:               creator.UserID,
		TotalPoints:          creator.TotalPoints,
		Rank:                 creator.Rank,
		LastScoredGameweekID: toNullString(creator.LastScoredGameweekID),
		JoinedAt:             creator.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create room creator membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("create room creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create room tx: %w", err)
	}

	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID string) (room.Room, bool, error) {
	query, args, err := qb.Select("*").From("rooms").
		Where(
			qb.Eq("public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build get room by id query: %w", err)
	}

	var row roomTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Room{}, false, nil
		}
		return room.Room{}, false, fmt.Errorf("get room by id: %w", err)
	}

	return roomFromRow(row), true, nil
}

func (r *RoomRepository) GetByCode(ctx context.Context, code string) (room.Room, bool, error) {
	if code == "" {
		return room.Room{}, false, nil
	}

	query, args, err := qb.Select("*").From("rooms").
		Where(
			qb.Eq("code", code),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build get room by code query: %w", err)
	}

	var row roomTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Room{}, false, nil
		}
		return room.Room{}, false, fmt.Errorf("get room by code: %w", err)
	}

	return roomFromRow(row), true, nil
}

func (r *RoomRepository) ListPublicByLeague(ctx context.Context, leagueID string, limit int) ([]room.Room, error) {
	builder := qb.Select("*").From("rooms").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("visibility", string(room.VisibilityPublic)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list public rooms query: %w", err)
	}

	var rows []roomTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list public rooms: %w", err)
	}

	return roomsFromRows(rows), nil
}

func (r *RoomRepository) ListByLeague(ctx context.Context, leagueID string) ([]room.Room, error) {
	query, args, err := qb.Select("*").From("rooms").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rooms by league query: %w", err)
	}

	var rows []roomTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms by league: %w", err)
	}

	return roomsFromRows(rows), nil
}

func (r *RoomRepository) UpdateCode(ctx context.Context, roomID, code string) error {
	query, args, err := qb.Update("rooms").
		Set("code", code).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update room code query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update room code: %w", err)
	}
	if affected == 0 {
		return room.ErrNotFound
	}

	return nil
}

// Join bumps the participant counter with a capacity guard and inserts
// the membership in one transaction, so concurrent joins cannot push a
// room past capacity.
func (r *RoomRepository) Join(ctx context.Context, m room.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx join room: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	memberQuery, memberArgs, err := qb.Select("1").
		From("room_members").
		Where(
			qb.Eq("room_public_id", m.RoomID),
			qb.Eq("user_id", m.UserID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build join membership check query: %w", err)
	}
	var one int
	if err := tx.GetContext(ctx, &one, memberQuery, memberArgs...); err == nil {
		return room.ErrAlreadyMember
	} else if !isNotFound(err) {
		return fmt.Errorf("join membership check: %w", err)
	}

	incrementQuery, incrementArgs, err := qb.Update("rooms").
		SetExpr("current_participants", "current_participants + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", m.RoomID),
			qb.Expr("current_participants < max_participants"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build join increment query: %w", err)
	}
	result, err := tx.ExecContext(ctx, incrementQuery, incrementArgs...)
	if err != nil {
		return fmt.Errorf("join increment participants: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected join increment: %w", err)
	}
	if affected == 0 {
		existsQuery, existsArgs, err := qb.Select("1").From("rooms").
			Where(
				qb.Eq("public_id", m.RoomID),
				qb.IsNull("deleted_at"),
			).
			Limit(1).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build join room exists query: %w", err)
		}
		if err := tx.GetContext(ctx, &one, existsQuery, existsArgs...); err != nil {
			if isNotFound(err) {
				return room.ErrNotFound
			}
			return fmt.Errorf("join room exists: %w", err)
		}
		return room.ErrRoomFull
	}

	insertQuery, insertArgs, err := qb.InsertModel("room_members", roomMemberInsertModel{
		RoomID:               m.RoomID,
		UserID:               m.UserID,
		TotalPoints:          m.TotalPoints,
		Rank:                 m.Rank,
		LastScoredGameweekID: toNullString(m.LastScoredGameweekID),
		JoinedAt:             m.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build join membership insert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return room.ErrAlreadyMember
		}
		return fmt.Errorf("join membership insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit join room tx: %w", err)
	}

	return nil
}

func (r *RoomRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	query, args, err := qb.Select("1").
		From("room_members").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build is member query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("is member: %w", err)
	}

	return true, nil
}

func (r *RoomRepository) GetMembership(ctx context.Context, roomID, userID string) (room.Membership, bool, error) {
	query, args, err := qb.Select("*").
		From("room_members").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return room.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row roomMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Membership{}, false, nil
		}
		return room.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *RoomRepository) ListMembers(ctx context.Context, roomID string) ([]room.Membership, error) {
	query, args, err := qb.Select("*").
		From("room_members").
		Where(
			qb.Eq("room_public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []roomMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]room.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *RoomRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]room.Membership, error) {
	query, args, err := qb.Select("*").
		From("room_members").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("room_public_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by user query: %w", err)
	}

	var rows []roomMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}

	out := make([]room.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *RoomRepository) UpdateMembershipScore(ctx context.Context, m room.Membership) error {
	query, args, err := qb.Update("room_members").
		Set("total_points", m.TotalPoints).
		Set("rank", m.Rank).
		Set("last_scored_gameweek_public_id", toNullString(m.LastScoredGameweekID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("room_public_id", m.RoomID),
			qb.Eq("user_id", m.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update membership score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update membership score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update membership score: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update membership score: not found")
	}

	return nil
}

// DeleteCascade soft deletes memberships, teams, and standings for the
// room before the room itself, all in one transaction.
func (r *RoomRepository) DeleteCascade(ctx context.Context, roomID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete room: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	roomQuery, roomArgs, err := qb.Update("rooms").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", roomID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete room query: %w", err)
	}
	result, err := tx.ExecContext(ctx, roomQuery, roomArgs...)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete room: %w", err)
	}
	if affected == 0 {
		return room.ErrNotFound
	}

	for _, table := range []string{"room_members", "fantasy_teams", "room_standings"} {
		query, args, err := qb.Update(table).
			SetExpr("deleted_at", "NOW()").
			Where(
				qb.Eq("room_public_id", roomID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete room tx: %w", err)
	}

	return nil
}

func roomFromRow(row roomTableModel) room.Room {
	return room.Room{
		ID:                  row.PublicID,
		LeagueID:            row.LeagueID,
		CreatorUserID:       row.CreatorUserID,
		Name:                row.Name,
		Visibility:          room.Visibility(row.Visibility),
		Code:                nullStringToString(row.Code),
		MaxParticipants:     row.MaxParticipants,
		CurrentParticipants: row.CurrentParticipants,
		Status:              room.Status(row.Status),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

func roomsFromRows(rows []roomTableModel) []room.Room {
	out := make([]room.Room, 0, len(rows))
	for _, row := range rows {
		out = append(out, roomFromRow(row))
	}
	return out
}

func membershipFromRow(row roomMemberTableModel) room.Membership {
	return room.Membership{
		RoomID:               row.RoomID,
		UserID:               row.UserID,
		TotalPoints:          row.TotalPoints,
		Rank:                 row.Rank,
		LastScoredGameweekID: nullStringToString(row.LastScoredGameweekID),
		JoinedAt:             row.JoinedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}
