package domain

import "errors"

var (
	// ErrInvalidRounds is returned when a start request asks for a round count outside [5, 100].
	ErrInvalidRounds = errors.New("round count must be between 5 and 100")
	// ErrInvalidMode is returned when a start request names an unknown game mode.
	ErrInvalidMode = errors.New("unknown game mode")
	// ErrGameInProgress is returned when a session already runs in the requested channel.
	ErrGameInProgress = errors.New("a game is already running in this channel")
	// ErrNoGameRunning is returned when a stop request finds nothing to stop.
	ErrNoGameRunning = errors.New("no game running in this channel")
	// ErrPoolExhausted indicates the item pool has no approved items at all.
	ErrPoolExhausted = errors.New("item pool has no approved items")
	// ErrParticipantUnknown indicates a rank lookup for someone who never scored.
	ErrParticipantUnknown = errors.New("participant not on the leaderboard")
)
