package roster

import "context"

// Repository exposes roster snapshot persistence operations. Upsert is
// keyed by (user, gameweek, room); re-submission overwrites.
type Repository interface {
	GetByUserGameweekRoom(ctx context.Context, userID, gameweekID, roomID string) (Team, bool, error)
	ListByRoomAndGameweek(ctx context.Context, roomID, gameweekID string) ([]Team, error)
	ListByRoom(ctx context.Context, roomID string) ([]Team, error)
	Upsert(ctx context.Context, team Team) error
	SetGameweekPoints(ctx context.Context, userID, gameweekID, roomID string, points int) error
}
