package postgres

import "time"

type gameweekTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	Number    int        `db:"number"`
	Season    string     `db:"season"`
	Deadline  time.Time  `db:"deadline"`
	Status    string     `db:"status"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type gameweekInsertModel struct {
	PublicID string    `db:"public_id"`
	LeagueID string    `db:"league_public_id"`
	Number   int       `db:"number"`
	Season   string    `db:"season"`
	Deadline time.Time `db:"deadline"`
	Status   string    `db:"status"`
	IsActive bool      `db:"is_active"`
}
