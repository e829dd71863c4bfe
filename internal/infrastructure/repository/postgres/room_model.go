package postgres

import (
	"database/sql"
	"time"
)

type roomTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	LeagueID            string         `db:"league_public_id"`
	CreatorUserID       string         `db:"creator_user_id"`
	Name                string         `db:"name"`
	Visibility          string         `db:"visibility"`
	Code                sql.NullString `db:"code"`
	MaxParticipants     int            `db:"max_participants"`
	CurrentParticipants int            `db:"current_participants"`
	Status              string         `db:"status"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	DeletedAt           *time.Time     `db:"deleted_at"`
}

type roomInsertModel struct {
	PublicID            string         `db:"public_id"`
	LeagueID            string         `db:"league_public_id"`
	CreatorUserID       string         `db:"creator_user_id"`
	Name                string         `db:"name"`
	Visibility          string         `db:"visibility"`
	Code                sql.NullString `db:"code"`
	MaxParticipants     int            `db:"max_participants"`
	CurrentParticipants int            `db:"current_participants"`
	Status              string         `db:"status"`
}

type roomMemberTableModel struct {
	ID                   int64          `db:"id"`
	RoomID               string         `db:"room_public_id"`
	UserID               string         `db:"user_id"`
	TotalPoints          int            `db:"total_points"`
	Rank                 int            `db:"rank"`
	LastScoredGameweekID sql.NullString `db:"last_scored_gameweek_public_id"`
	JoinedAt             time.Time      `db:"joined_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
	DeletedAt            *time.Time     `db:"deleted_at"`
}

type roomMemberInsertModel struct {
	RoomID               string         `db:"room_public_id"`
	UserID               string         `db:"user_id"`
	TotalPoints          int            `db:"total_points"`
	Rank                 int            `db:"rank"`
	LastScoredGameweekID sql.NullString `db:"last_scored_gameweek_public_id"`
	JoinedAt             time.Time      `db:"joined_at"`
}
