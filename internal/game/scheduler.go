package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gameshow-service/internal/commentary"
	"gameshow-service/internal/domain"
)

// watchRound drives one round's hint/timeout timeline. There is no cancel
// signal: each checkpoint re-reads the session and the goroutine falls off
// silently once the session stopped, a winner committed, or the round moved
// on. The resolver and this ladder race; whichever closes the round first
// wins and the loser becomes a no-op.
func (s *Service) watchRound(sess *Session, round int) {
	item, _, ok := sess.openItem(round)
	if !ok {
		return
	}

	switch it := item.(type) {
	case domain.Question:
		s.runTriviaLadder(sess, round, it)
	case domain.Word:
		s.runScrambleLadder(sess, round, it)
	}
}

func (s *Service) runTriviaLadder(sess *Session, round int, q domain.Question) {
	answer := q.Answer()
	if answer == "" {
		return
	}
	scope := sess.Scope()
	noHints := singleCharAnswer(q.Answers)

	time.Sleep(s.timings.HintDelay)

	for level := 1; level <= 3; level++ {
		if sess.roundInvalid(round) {
			return
		}

		switch {
		case noHints:
			s.posts.Post(context.Background(), scope, fmt.Sprintf("💡 **Hint %d/3:** `No hints for single-character answers.`", level))
		case level < 3:
			s.posts.Post(context.Background(), scope, fmt.Sprintf("💡 **Hint %d/3:** `%s`", level, buildHint(answer, level)))
		default:
			hint := buildHint(answer, level)
			line := s.requestLine(commentary.EventHint3, commentary.Context{
				"mode":       string(sess.Mode()),
				"answer":     answer,
				"question":   q.Text,
				"round":      round,
				"max_rounds": sess.MaxRounds(),
				"hint":       hint,
			}, answer)
			if line != "" {
				s.posts.Post(context.Background(), scope, fmt.Sprintf("💡 **Hint 3/3:** `%s`\n> %s", hint, line))
			} else {
				s.posts.Post(context.Background(), scope, fmt.Sprintf("💡 **Hint 3/3:** `%s`", hint))
			}
		}

		if level < 3 {
			time.Sleep(s.timings.HintInterval)
		}
	}

	time.Sleep(s.timings.FinalWait)
	s.timeOutRound(sess, round, q.Text, answer)
}

func (s *Service) runScrambleLadder(sess *Session, round int, w domain.Word) {
	scope := sess.Scope()

	time.Sleep(s.timings.ScrambleHintDelay)
	if sess.roundInvalid(round) {
		return
	}
	s.posts.Post(context.Background(), scope, "💡 **Hint 1:** "+scrambleFirstHint(w.Text))

	time.Sleep(s.timings.ScrambleHintDelay)
	if sess.roundInvalid(round) {
		return
	}
	s.posts.Post(context.Background(), scope, fmt.Sprintf("💡 **Hint 2:** `%s`", scrambleSecondHint(w.Text)))

	time.Sleep(s.timings.ScrambleFinalWait)
	s.timeOutRound(sess, round, "", w.Text)
}

// timeOutRound closes an unanswered round and advances the session. When a
// resolution is in flight at the deadline, it yields one extra grace window
// so an answer that landed just in time still wins.
func (s *Service) timeOutRound(sess *Session, round int, questionText, answer string) {
	if sess.isResolving() {
		time.Sleep(s.timings.GraceWindow + 100*time.Millisecond)
	}

	if !sess.closeTimeout(round) {
		return
	}

	scope := sess.Scope()
	msg := fmt.Sprintf("⏰ Time's up. No one got it.\nThe correct answer was: **%s**.", answer)
	if sess.Mode() == domain.ModeScramble {
		msg = fmt.Sprintf("⏰ Time's up! The correct word was **%s**.", strings.ToUpper(answer))
	}
	if line := s.requestLine(commentary.EventNoAnswer, commentary.Context{
		"mode":       string(sess.Mode()),
		"answer":     answer,
		"question":   questionText,
		"round":      round,
		"max_rounds": sess.MaxRounds(),
	}, ""); line != "" {
		msg += "\n> " + line
	}
	s.posts.Post(context.Background(), scope, msg)

	if !sess.InProgress() {
		return
	}
	if round >= sess.MaxRounds() {
		s.endGame(context.Background(), sess)
	} else {
		s.askNextRound(context.Background(), sess)
	}
}
