package gameweek

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a scoring window.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var (
	ErrNotFound                = errors.New("gameweek not found")
	ErrNoGameweeksConfigured   = errors.New("no gameweeks configured for league")
	ErrInvalidStatusTransition = errors.New("invalid gameweek status transition")
)

// Gameweek is one scoring window for a real-world league season.
// At most one gameweek per league carries IsActive at any time.
type Gameweek struct {
	ID        string
	LeagueID  string
	Number    int
	Season    string
	Deadline  time.Time
	Status    Status
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g Gameweek) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("gameweek id is required")
	}
	if g.LeagueID == "" {
		return fmt.Errorf("gameweek league id is required")
	}
	if g.Number <= 0 {
		return fmt.Errorf("gameweek number must be greater than zero")
	}
	if g.Season == "" {
		return fmt.Errorf("gameweek season is required")
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("gameweek deadline is required")
	}
	switch g.Status {
	case StatusUpcoming, StatusActive, StatusCompleted:
	default:
		return fmt.Errorf("invalid gameweek status: %s", g.Status)
	}

	return nil
}

// DeadlinePassed compares the roster-lock deadline against the given instant.
func (g Gameweek) DeadlinePassed(now time.Time) bool {
	return !now.Before(g.Deadline)
}
