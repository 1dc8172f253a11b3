// Package commentary produces the non-essential flavor lines a game posts
// alongside hints, timeouts, and scoreboards. Everything here is best-effort:
// an empty line is always a valid reply and callers must carry on without one.
package commentary

import "context"

// Event names the situation a line is requested for.
type Event string

const (
	EventMention      Event = "mention"
	EventHint3        Event = "hint_3"
	EventNoAnswer     Event = "no_answer"
	EventMidRoundQuip Event = "mid_round_quip"
)

// Context carries whatever the generator may want to riff on: mode, round,
// answer, scores. Generators must treat every key as optional.
type Context map[string]any

// Generator is the narrow contract to an external text-generation collaborator.
// Implementations may be slow or flaky; callers sanitize and cap the result.
type Generator interface {
	GenerateLine(ctx context.Context, event Event, data Context) (string, error)
}
