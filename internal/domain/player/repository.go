package player

import "context"

// Repository describes player catalog reads needed by use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
