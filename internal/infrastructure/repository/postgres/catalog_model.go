package postgres

import "time"

type leagueTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	CountryCode string     `db:"country_code"`
	Season      string     `db:"season"`
	IsDefault   bool       `db:"is_default"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type clubTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	Name      string     `db:"name"`
	ShortName string     `db:"short_name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	LeagueID     string     `db:"league_public_id"`
	ClubID       string     `db:"club_public_id"`
	Name         string     `db:"name"`
	Position     string     `db:"position"`
	IsInjured    bool       `db:"is_injured"`
	IsSuspended  bool       `db:"is_suspended"`
	SeasonPoints int        `db:"season_points"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
