package game

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gameshow-service/internal/answer"
	"gameshow-service/internal/domain"
)

// noWinner marks a round that closed by timeout. Distinct from "" (unset).
const noWinner = "<nobody>"

// Session is the authoritative in-memory record of one running game in one
// channel. Every mutable field below mu is guarded by it; the scheduler,
// resolver, and submission paths all check-then-act under that single lock,
// so whichever path first observes an unset winnerID wins the round.
type Session struct {
	scope     domain.Scope
	mode      domain.Mode
	sessionID string
	maxRounds int

	mu           sync.Mutex
	round        int
	current      domain.Item
	scrambled    string
	winnerID     string
	scores       map[string]int
	names        map[string]string
	candidates   []domain.Candidate
	inProgress   bool
	resolving    bool
	midpointDone bool
}

func newSession(scope domain.Scope, mode domain.Mode, rounds int, sessionID string) *Session {
	return &Session{
		scope:      scope,
		mode:       mode,
		sessionID:  sessionID,
		maxRounds:  rounds,
		scores:     make(map[string]int),
		names:      make(map[string]string),
		inProgress: true,
	}
}

func (s *Session) Scope() domain.Scope { return s.scope }
func (s *Session) Mode() domain.Mode   { return s.mode }
func (s *Session) MaxRounds() int      { return s.maxRounds }

func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

func (s *Session) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inProgress
}

// beginRound opens the next round with the given item and returns its number,
// or 0 when the session stopped while the item was being drawn.
func (s *Session) beginRound(item domain.Item, scrambled string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inProgress {
		return 0
	}
	s.round++
	s.current = item
	s.scrambled = scrambled
	s.winnerID = ""
	s.candidates = nil
	s.resolving = false
	return s.round
}

// openItem returns the current item if the given round is still open.
func (s *Session) openItem(round int) (domain.Item, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inProgress || s.current == nil || s.round != round || s.winnerID != "" {
		return nil, "", false
	}
	return s.current, s.scrambled, true
}

// roundInvalid is the scheduler's checkpoint: true once the session stopped,
// a winner committed, or the round moved on.
func (s *Session) roundInvalid(round int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.inProgress || s.winnerID != "" || s.round != round
}

func (s *Session) isResolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolving
}

// recordSubmission classifies a submission against the open round. When it is
// the first correct candidate, the caller must arm the resolver for the
// returned round number.
func (s *Session) recordSubmission(participantID, displayName, messageID, text string, at time.Time) (arm bool, round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inProgress || s.current == nil || s.winnerID != "" {
		return false, 0
	}

	correct := false
	switch item := s.current.(type) {
	case domain.Question:
		correct = answer.IsCorrect(text, item.Answers)
	case domain.Word:
		correct = strings.EqualFold(strings.TrimSpace(text), item.Text)
	}
	if !correct {
		return false, 0
	}

	s.candidates = append(s.candidates, domain.Candidate{
		ParticipantID: participantID,
		DisplayName:   displayName,
		MessageID:     messageID,
		SubmittedAt:   at,
	})
	if len(s.candidates) == 1 && !s.resolving {
		s.resolving = true
		return true, s.round
	}
	return false, 0
}

// commitWinner picks the earliest-timestamped candidate and closes the round.
// It reports the committed candidate, whether a midpoint quip should fire,
// and ok=false when another path already closed the round.
func (s *Session) commitWinner(round int) (winner domain.Candidate, total int, quip bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inProgress || s.current == nil || s.winnerID != "" || s.round != round {
		s.resolving = false
		return domain.Candidate{}, 0, false, false
	}
	if len(s.candidates) == 0 {
		s.resolving = false
		return domain.Candidate{}, 0, false, false
	}

	// Earliest timestamp wins; ties keep arrival order (stable).
	winner = s.candidates[0]
	for _, c := range s.candidates[1:] {
		if c.SubmittedAt.Before(winner.SubmittedAt) {
			winner = c
		}
	}

	s.winnerID = winner.ParticipantID
	s.scores[winner.ParticipantID]++
	s.names[winner.ParticipantID] = winner.DisplayName
	total = s.scores[winner.ParticipantID]

	if s.maxRounds >= quipMinRounds && s.round == s.maxRounds/2 && !s.midpointDone {
		s.midpointDone = true
		quip = true
	}

	s.candidates = nil
	s.resolving = false
	return winner, total, quip, true
}

// closeTimeout locks the round with the no-winner sentinel. Reports false if
// the round was already closed by another path.
func (s *Session) closeTimeout(round int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inProgress || s.winnerID != "" || s.round != round {
		return false
	}
	s.winnerID = noWinner
	s.candidates = nil
	return true
}

// stop flips the session out of progress; reports whether it was running.
func (s *Session) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inProgress {
		return false
	}
	s.inProgress = false
	return true
}

// finish tears the session down and returns the final standings.
func (s *Session) finish() domain.ScoreSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inProgress = false
	s.current = nil
	s.candidates = nil
	s.resolving = false

	entries := make([]domain.ScoreEntry, 0, len(s.scores))
	for id, points := range s.scores {
		entries = append(entries, domain.ScoreEntry{
			ParticipantID: id,
			DisplayName:   s.names[id],
			Points:        points,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	return domain.ScoreSummary{
		Scope:   s.scope,
		Mode:    s.mode,
		Rounds:  s.round,
		Entries: entries,
	}
}

// scoreboard is a quip-friendly snapshot of the running scores.
func (s *Session) scoreboard() []domain.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]domain.ScoreEntry, 0, len(s.scores))
	for id, points := range s.scores {
		entries = append(entries, domain.ScoreEntry{
			ParticipantID: id,
			DisplayName:   s.names[id],
			Points:        points,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Points > entries[j].Points })
	return entries
}
