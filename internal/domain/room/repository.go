package room

import "context"

// Repository exposes room and membership persistence operations.
//
// CreateWithCreator, Join, and DeleteCascade are single atomic writes:
// membership rows and the participant counter must never be observable
// out of step, and room deletion must never leave orphaned memberships,
// teams, or standings behind.
type Repository interface {
	CreateWithCreator(ctx context.Context, r Room, creator Membership) error
	GetByID(ctx context.Context, roomID string) (Room, bool, error)
	GetByCode(ctx context.Context, code string) (Room, bool, error)
	ListPublicByLeague(ctx context.Context, leagueID string, limit int) ([]Room, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Room, error)
	UpdateCode(ctx context.Context, roomID, code string) error

	// Join inserts the membership and increments the participant count
	// in one transaction.
	Join(ctx context.Context, m Membership) error
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	GetMembership(ctx context.Context, roomID, userID string) (Membership, bool, error)
	ListMembers(ctx context.Context, roomID string) ([]Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
	UpdateMembershipScore(ctx context.Context, m Membership) error

	// DeleteCascade removes memberships, teams, and standings for the
	// room before removing the room itself.
	DeleteCascade(ctx context.Context, roomID string) error
}
