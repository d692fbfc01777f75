package analytics

import (
	"time"

	"github.com/google/uuid"
)

// PlayEvent records a single game launch. Events are append-only and
// anonymous; no visitor identity is stored.
type PlayEvent struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyPlays is the play count for one calendar day.
type DailyPlays struct {
	Day   time.Time `json:"day"`
	Plays int       `json:"plays"`
}

// GamePlays is an aggregate play count for one game.
type GamePlays struct {
	GameID uuid.UUID `json:"game_id"`
	Title  string    `json:"title"`
	Slug   string    `json:"slug"`
	Plays  int       `json:"plays"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	TotalPlays int          `json:"total_plays"`
	PlaysByDay []DailyPlays `json:"plays_by_day"`
	TopGames   []GamePlays  `json:"top_games"`
}
