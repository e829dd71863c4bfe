package roster

import "time"

// StartingXI partitions the eleven starters into position groups.
type StartingXI struct {
	GoalkeeperID  string
	DefenderIDs   []string
	MidfielderIDs []string
	ForwardIDs    []string
}

// PlayerIDs returns the starters in pitch order: GK, DEF, MID, FWD.
func (s StartingXI) PlayerIDs() []string {
	out := make([]string, 0, 1+len(s.DefenderIDs)+len(s.MidfielderIDs)+len(s.ForwardIDs))
	out = append(out, s.GoalkeeperID)
	out = append(out, s.DefenderIDs...)
	out = append(out, s.MidfielderIDs...)
	out = append(out, s.ForwardIDs...)
	return out
}

// Bench holds the four substitutes, one per position group.
type Bench struct {
	GoalkeeperID string
	DefenderID   string
	MidfielderID string
	ForwardID    string
}

func (b Bench) PlayerIDs() []string {
	return []string{b.GoalkeeperID, b.DefenderID, b.MidfielderID, b.ForwardID}
}

// Team is one user's roster snapshot for one (gameweek, room) pair.
// Exactly one row exists per (user, gameweek, room); saves overwrite.
type Team struct {
	ID            string
	UserID        string
	GameweekID    string
	RoomID        string
	Formation     Formation
	Starters      StartingXI
	Bench         Bench
	CaptainID     string
	ViceCaptainID string

	// Carried across re-submissions, never reset by a save.
	SubstitutionTokensUsed int
	GameweekPoints         int

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllPlayerIDs returns the full fifteen: starters then bench.
func (t Team) AllPlayerIDs() []string {
	return append(t.Starters.PlayerIDs(), t.Bench.PlayerIDs()...)
}

// HasPlayer reports whether the given player is anywhere in the fifteen.
func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.AllPlayerIDs() {
		if id == playerID {
			return true
		}
	}
	return false
}
