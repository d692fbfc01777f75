package analytics

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for play events.
type Repository interface {
	Record(ctx context.Context, gameID uuid.UUID) error
	TotalPlays(ctx context.Context) (int, error)
	PlaysByDay(ctx context.Context, days int) ([]DailyPlays, error)
	TopGames(ctx context.Context, limit int) ([]GamePlays, error)
}
