package game

import "time"

// Timings holds every delay the scheduler and resolver sleep on. Tests swap
// in millisecond profiles; production uses DefaultTimings.
type Timings struct {
	// Trivia ladder: initial delay, spacing between the three hints, and the
	// wait after the last hint before the round times out.
	HintDelay    time.Duration
	HintInterval time.Duration
	FinalWait    time.Duration

	// Scramble ladder: two hints, then the final wait.
	ScrambleHintDelay time.Duration
	ScrambleFinalWait time.Duration

	// GraceWindow is how long the resolver waits for near-simultaneous
	// correct answers before committing a winner.
	GraceWindow time.Duration
	// TransitionDelay is the pause between a closed round and the next item.
	TransitionDelay time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		HintDelay:         25 * time.Second,
		HintInterval:      20 * time.Second,
		FinalWait:         10 * time.Second,
		ScrambleHintDelay: 20 * time.Second,
		ScrambleFinalWait: 20 * time.Second,
		GraceWindow:       800 * time.Millisecond,
		TransitionDelay:   time.Second,
	}
}

const (
	minRounds = 5
	maxRounds = 100

	// Mid-game commentary only fires for sessions at least this long.
	quipMinRounds = 15

	// Commentary lines are capped before posting.
	maxLineLength = 200
)
