package postgres

import "time"

type standingTableModel struct {
	ID             int64      `db:"id"`
	RoomID         string     `db:"room_public_id"`
	GameweekID     string     `db:"gameweek_public_id"`
	UserID         string     `db:"user_id"`
	GameweekPoints int        `db:"gameweek_points"`
	TotalPoints    int        `db:"total_points"`
	Rank           int        `db:"rank"`
	CalculatedAt   time.Time  `db:"calculated_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type standingInsertModel struct {
	RoomID         string    `db:"room_public_id"`
	GameweekID     string    `db:"gameweek_public_id"`
	UserID         string    `db:"user_id"`
	GameweekPoints int       `db:"gameweek_points"`
	TotalPoints    int       `db:"total_points"`
	Rank           int       `db:"rank"`
	CalculatedAt   time.Time `db:"calculated_at"`
}
