package postgres

import (
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID                     int64          `db:"id"`
	PublicID               string         `db:"public_id"`
	UserID                 string         `db:"user_id"`
	GameweekID             string         `db:"gameweek_public_id"`
	RoomID                 string         `db:"room_public_id"`
	Formation              string         `db:"formation"`
	GoalkeeperID           string         `db:"goalkeeper_player_public_id"`
	DefenderIDs            pq.StringArray `db:"defender_player_ids"`
	MidfielderIDs          pq.StringArray `db:"midfielder_player_ids"`
	ForwardIDs             pq.StringArray `db:"forward_player_ids"`
	BenchGoalkeeperID      string         `db:"bench_goalkeeper_player_public_id"`
	BenchDefenderID        string         `db:"bench_defender_player_public_id"`
	BenchMidfielderID      string         `db:"bench_midfielder_player_public_id"`
	BenchForwardID         string         `db:"bench_forward_player_public_id"`
	CaptainID              string         `db:"captain_player_public_id"`
	ViceCaptainID          string         `db:"vice_captain_player_public_id"`
	SubstitutionTokensUsed int            `db:"substitution_tokens_used"`
	GameweekPoints         int            `db:"gameweek_points"`
	SubmittedAt            time.Time      `db:"submitted_at"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
	DeletedAt              *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID               string         `db:"public_id"`
	UserID                 string         `db:"user_id"`
	GameweekID             string         `db:"gameweek_public_id"`
	RoomID                 string         `db:"room_public_id"`
	Formation              string         `db:"formation"`
	GoalkeeperID           string         `db:"goalkeeper_player_public_id"`
	DefenderIDs            pq.StringArray `db:"defender_player_ids"`
	MidfielderIDs          pq.StringArray `db:"midfielder_player_ids"`
	ForwardIDs             pq.StringArray `db:"forward_player_ids"`
	BenchGoalkeeperID      string         `db:"bench_goalkeeper_player_public_id"`
	BenchDefenderID        string         `db:"bench_defender_player_public_id"`
	BenchMidfielderID      string         `db:"bench_midfielder_player_public_id"`
	BenchForwardID         string         `db:"bench_forward_player_public_id"`
	CaptainID              string         `db:"captain_player_public_id"`
	ViceCaptainID          string         `db:"vice_captain_player_public_id"`
	SubstitutionTokensUsed int            `db:"substitution_tokens_used"`
	GameweekPoints         int            `db:"gameweek_points"`
	SubmittedAt            time.Time      `db:"submitted_at"`
}
