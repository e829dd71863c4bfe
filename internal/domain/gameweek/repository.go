package gameweek

import (
	"context"
	"time"
)

// Repository exposes gameweek persistence operations.
//
// Activate must be a single atomic write: it clears the active flag on
// every other gameweek of the same league (marking them completed)
// before activating the target, optionally overriding the deadline.
// Downstream lookups rely on the at-most-one-active invariant this
// preserves.
type Repository interface {
	Create(ctx context.Context, gw Gameweek) error
	GetByID(ctx context.Context, gameweekID string) (Gameweek, bool, error)
	GetActiveByLeague(ctx context.Context, leagueID string) (Gameweek, bool, error)
	ListByLeague(ctx context.Context, leagueID string, season string) ([]Gameweek, error)
	ListUpcomingByLeague(ctx context.Context, leagueID string) ([]Gameweek, error)
	Activate(ctx context.Context, gameweekID string, deadline *time.Time) error
	UpdateStatus(ctx context.Context, gameweekID string, status Status, isActive bool) error
}
