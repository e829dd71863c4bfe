package player

import "fmt"

// Position represents football position categories used in roster rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a selectable athlete from the real-world catalog. Identity is
// immutable; availability flags and season totals change over time.
type Player struct {
	ID           string
	LeagueID     string
	ClubID       string
	Name         string
	Position     Position
	IsInjured    bool
	IsSuspended  bool
	SeasonPoints int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// IsAvailable reports whether the player can be picked this gameweek.
func (p Player) IsAvailable() bool {
	return !p.IsInjured && !p.IsSuspended
}
