package standing

import "time"

// Standing is a derived per-(room, gameweek, user) score record. Rows
// are fully recomputed by the aggregator and are never a source of
// truth; the membership row mirrors the latest cumulative total.
type Standing struct {
	RoomID         string
	GameweekID     string
	UserID         string
	GameweekPoints int
	TotalPoints    int
	Rank           int
	CalculatedAt   time.Time
	UpdatedAt      time.Time
}
