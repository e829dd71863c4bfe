package room

import (
	"errors"
	"fmt"
	"time"
)

// Visibility controls whether a room is joinable without a code.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Status is the competition lifecycle state of a room.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var (
	ErrNotFound      = errors.New("room not found")
	ErrAlreadyMember = errors.New("user is already a member of this room")
	ErrRoomFull      = errors.New("room is full")
	ErrNotCreator    = errors.New("only the room creator may perform this action")
)

// Room is a named fantasy competition instance users join directly or
// via a join code. Codes exist only for private rooms.
type Room struct {
	ID                  string
	LeagueID            string
	CreatorUserID       string
	Name                string
	Visibility          Visibility
	Code                string
	MaxParticipants     int
	CurrentParticipants int
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r Room) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("room id is required")
	}
	if r.LeagueID == "" {
		return fmt.Errorf("room league id is required")
	}
	if r.CreatorUserID == "" {
		return fmt.Errorf("room creator user id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("room name is required")
	}
	switch r.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		return fmt.Errorf("invalid room visibility: %s", r.Visibility)
	}
	if r.Visibility == VisibilityPrivate && r.Code == "" {
		return fmt.Errorf("private room requires a join code")
	}
	if r.MaxParticipants <= 0 {
		return fmt.Errorf("room capacity must be greater than zero")
	}
	if r.CurrentParticipants > r.MaxParticipants {
		return fmt.Errorf("room participants exceed capacity: %d > %d", r.CurrentParticipants, r.MaxParticipants)
	}

	return nil
}

// IsFull reports whether another join would exceed capacity.
func (r Room) IsFull() bool {
	return r.CurrentParticipants >= r.MaxParticipants
}

// Membership is a (user, room) pair carrying the derived cumulative
// score cache mirrored from standings. At most one row per pair.
type Membership struct {
	RoomID               string
	UserID               string
	TotalPoints          int
	Rank                 int
	LastScoredGameweekID string
	JoinedAt             time.Time
	UpdatedAt            time.Time
}
