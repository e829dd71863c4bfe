package standing

import "context"

// Repository exposes standings persistence. UpsertBatch is keyed by
// (room, gameweek, user) so recomputation stays idempotent.
type Repository interface {
	UpsertBatch(ctx context.Context, items []Standing) error
	ListByRoomAndGameweek(ctx context.Context, roomID, gameweekID string) ([]Standing, error)
	ListByRoom(ctx context.Context, roomID string) ([]Standing, error)
}
