package game

import (
	"context"
	"fmt"
	"log"
	"time"
)

// resolveWinner runs once per round, armed by the first correct submission.
// It waits a short grace window so near-simultaneous answers can accumulate,
// then commits the earliest-timestamped candidate and advances the session.
func (s *Service) resolveWinner(sess *Session, round int) {
	time.Sleep(s.timings.GraceWindow)

	quip, ok := s.commit(sess, round)
	if !ok {
		// Another path closed the round first; expected, not an error.
		return
	}

	if quip {
		go s.midgameQuip(sess)
	}

	time.Sleep(s.timings.TransitionDelay)

	// An explicit stop during the transition already tore the session down.
	if !sess.InProgress() {
		return
	}
	if round >= sess.MaxRounds() {
		s.endGame(context.Background(), sess)
	} else {
		s.askNextRound(context.Background(), sess)
	}
}

// commit closes the round for the winning candidate, persists the point, and
// announces the result. Persistence failures are logged and never block.
func (s *Service) commit(sess *Session, round int) (quip, ok bool) {
	item, _, open := sess.openItem(round)
	if !open {
		return false, false
	}
	cand, _, quip, ok := sess.commitWinner(round)
	if !ok {
		return false, false
	}

	scope := sess.Scope()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.scores.AwardPoints(ctx, scope.GuildID, cand.ParticipantID, cand.DisplayName, 1, sess.Mode()); err != nil {
		log.Printf("award points for %s in %s failed: %v", cand.ParticipantID, scope.GuildID, err)
	}

	s.posts.Post(context.Background(), scope, fmt.Sprintf(
		"✅ %s got it right. Correct answer: **%s**.", cand.DisplayName, item.Answer()))

	return quip, true
}

// midgameQuip fires the once-per-session midpoint commentary. Fire-and-forget:
// its failure or silence is unobservable to the round state machine.
func (s *Service) midgameQuip(sess *Session) {
	entries := sess.scoreboard()
	if len(entries) == 0 {
		return
	}
	s.postQuip(sess, entries)
}
