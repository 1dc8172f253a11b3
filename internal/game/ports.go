package game

import (
	"context"

	"gameshow-service/internal/commentary"
	"gameshow-service/internal/domain"
)

// Pick identifies the usage scope of an item selection: repeats are avoided
// per guild and per session.
type Pick struct {
	GuildID   string
	SessionID string
	Mode      domain.Mode
}

// ItemSource hands out the next question or word for a scope. Selection and
// its usage-counter increments must be atomic as a unit; implementations
// serialize access to the pool (mutex in-process, row locks in SQL).
type ItemSource interface {
	Next(ctx context.Context, pick Pick) (domain.Item, error)
}

// ScoreKeeper persists points and serves leaderboard views. AwardPoints is
// at-least-once: failures are logged by callers and never block a round.
type ScoreKeeper interface {
	AwardPoints(ctx context.Context, guildID, participantID, displayName string, points int, mode domain.Mode) error
	Leaderboard(ctx context.Context, guildID string, mode domain.Mode, limit int) ([]domain.ScoreEntry, error)
	Rank(ctx context.Context, guildID, participantID string, mode domain.Mode) (domain.Rank, error)
}

// Announcer delivers outgoing text to a chat channel. Best-effort; the game
// never waits on delivery.
type Announcer interface {
	Post(ctx context.Context, scope domain.Scope, text string)
}

// Generator aliases the commentary contract for wiring convenience.
type Generator = commentary.Generator
