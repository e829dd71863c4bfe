package club

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Club, error)
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
}
