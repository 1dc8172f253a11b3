// Package game runs timed trivia and scramble sessions inside chat channels:
// one session per channel, one open round at a time, exactly one winner per
// round no matter how close the answers land.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gameshow-service/internal/commentary"
	"gameshow-service/internal/domain"
)

// Service owns the session directory and drives every game round through its
// collaborators: the item pool, the scoreboard, the commentary generator, and
// the chat announcer.
type Service struct {
	directory *Directory
	items     ItemSource
	scores    ScoreKeeper
	lines     Generator
	posts     Announcer
	timings   Timings
}

// Config wires a Service. Zero Timings fall back to defaults; a nil Lines
// generator falls back to the static one.
type Config struct {
	Directory *Directory
	Items     ItemSource
	Scores    ScoreKeeper
	Lines     Generator
	Posts     Announcer
	Timings   Timings
}

func New(cfg Config) *Service {
	if cfg.Directory == nil {
		cfg.Directory = NewDirectory()
	}
	if cfg.Lines == nil {
		cfg.Lines = commentary.NewStatic()
	}
	if cfg.Timings == (Timings{}) {
		cfg.Timings = DefaultTimings()
	}
	return &Service{
		directory: cfg.Directory,
		items:     cfg.Items,
		scores:    cfg.Scores,
		lines:     cfg.Lines,
		posts:     cfg.Posts,
		timings:   cfg.Timings,
	}
}

// Start begins a new session in the channel and asks the first item.
func (s *Service) Start(ctx context.Context, scope domain.Scope, mode domain.Mode, rounds int) error {
	if rounds < minRounds || rounds > maxRounds {
		return domain.ErrInvalidRounds
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	sess := newSession(scope, mode, rounds, uuid.NewString())
	if err := s.directory.Add(sess); err != nil {
		return err
	}

	switch mode {
	case domain.ModeScramble:
		s.posts.Post(ctx, scope, fmt.Sprintf("Starting a scramble game with **%d words.** Unscramble them faster than everyone else.", rounds))
	default:
		s.posts.Post(ctx, scope, fmt.Sprintf("Starting a trivia game with **%d questions.** First correct answer wins each round.", rounds))
	}

	s.askNextRound(ctx, sess)
	return nil
}

// Stop halts a running session of the given mode and reports final scores.
// Stopping an idle channel is a no-op returning ErrNoGameRunning.
func (s *Service) Stop(ctx context.Context, scope domain.Scope, mode domain.Mode) (domain.ScoreSummary, error) {
	sess, ok := s.directory.Get(scope)
	if !ok || sess.Mode() != mode || !sess.InProgress() {
		return domain.ScoreSummary{}, domain.ErrNoGameRunning
	}
	if !sess.stop() {
		return domain.ScoreSummary{}, domain.ErrNoGameRunning
	}

	s.posts.Post(ctx, scope, fmt.Sprintf("⛔ **%s game stopped.**", capitalize(string(mode))))
	return s.endGame(ctx, sess), nil
}

// Submit feeds one inbound chat message into the channel's open round. It has
// no return value; a correct submission is recorded as a candidate and the
// first one arms the winner resolver.
func (s *Service) Submit(_ context.Context, scope domain.Scope, participantID, displayName, messageID, text string, at time.Time) {
	sess, ok := s.directory.Get(scope)
	if !ok {
		return
	}
	arm, round := sess.recordSubmission(participantID, displayName, messageID, text, at)
	if arm {
		go s.resolveWinner(sess, round)
	}
}

// Mention posts a commentary reply when someone addresses the bot outside a
// round. Failure is silent; a bot with nothing to say is still a bot.
func (s *Service) Mention(ctx context.Context, scope domain.Scope, text string) {
	line := s.requestLine(commentary.EventMention, commentary.Context{"text": text}, "")
	if line == "" {
		return
	}
	s.posts.Post(ctx, scope, line)
}

// Active reports whether a game is currently running in the channel.
func (s *Service) Active(scope domain.Scope) bool {
	sess, ok := s.directory.Get(scope)
	return ok && sess.InProgress()
}

// Leaderboard returns the persistent top scorers for a guild and mode.
func (s *Service) Leaderboard(ctx context.Context, guildID string, mode domain.Mode, limit int) ([]domain.ScoreEntry, error) {
	return s.scores.Leaderboard(ctx, guildID, mode, limit)
}

// Rank returns one participant's persistent standing in a guild.
func (s *Service) Rank(ctx context.Context, guildID, participantID string, mode domain.Mode) (domain.Rank, error) {
	return s.scores.Rank(ctx, guildID, participantID, mode)
}

// askNextRound draws the next item and opens a round, or ends the session
// when the pool runs dry.
func (s *Service) askNextRound(ctx context.Context, sess *Session) {
	scope := sess.Scope()
	item, err := s.items.Next(ctx, Pick{
		GuildID:   scope.GuildID,
		SessionID: sess.sessionID,
		Mode:      sess.Mode(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrPoolExhausted) {
			log.Printf("item selection failed for %s/%s: %v", scope.GuildID, scope.ChannelID, err)
		}
		if sess.Mode() == domain.ModeScramble {
			s.posts.Post(ctx, scope, "I ran out of scramble words. This is awkward.")
		} else {
			s.posts.Post(ctx, scope, "I ran out of questions. Blame whoever configured me.")
		}
		sess.stop()
		s.endGame(ctx, sess)
		return
	}

	var scrambled string
	if w, ok := item.(domain.Word); ok {
		scrambled = shuffleWord(w.Text)
	}
	round := sess.beginRound(item, scrambled)
	if round == 0 {
		// Stopped while the item was drawn; the stop path already reported.
		return
	}

	switch it := item.(type) {
	case domain.Question:
		s.posts.Post(ctx, scope, fmt.Sprintf("❓ **Question %d of %d**\n%s", round, sess.MaxRounds(), it.Text))
	case domain.Word:
		s.posts.Post(ctx, scope, fmt.Sprintf("🔀 **Scramble %d of %d**\n\n**%s**\n\nGo.", round, sess.MaxRounds(), strings.ToUpper(scrambled)))
	}

	go s.watchRound(sess, round)
}

// endGame finalizes a session, posts the scoreboard, and frees the channel.
func (s *Service) endGame(ctx context.Context, sess *Session) domain.ScoreSummary {
	summary := sess.finish()
	s.directory.Remove(sess.Scope())

	if len(summary.Entries) == 0 {
		s.posts.Post(ctx, sess.Scope(), "🎮 **Game over.** Nobody scored anything. Impressive, in a tragic way.")
	} else {
		lines := make([]string, 0, len(summary.Entries))
		for i, entry := range summary.Entries {
			lines = append(lines, fmt.Sprintf("**%d. %s** — %d point(s)", i+1, entry.DisplayName, entry.Points))
		}
		s.posts.Post(ctx, sess.Scope(), "🎮 **Game over.** Here's the damage:\n"+strings.Join(lines, "\n"))
	}

	if sess.MaxRounds() >= quipMinRounds && len(summary.Entries) > 0 {
		go s.postQuip(sess, summary.Entries)
	}
	return summary
}

// postQuip fires a scoreboard quip without blocking the round state machine.
func (s *Service) postQuip(sess *Session, entries []domain.ScoreEntry) {
	scores := make([]commentary.Context, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, commentary.Context{"display_name": e.DisplayName, "score": e.Points})
	}
	line := s.requestLine(commentary.EventMidRoundQuip, commentary.Context{
		"mode":       string(sess.Mode()),
		"round":      sess.Round(),
		"max_rounds": sess.MaxRounds(),
		"scores":     scores,
	}, "")
	if line == "" {
		return
	}
	s.posts.Post(context.Background(), sess.Scope(), line)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// requestLine calls the commentary collaborator with a deadline and sanitizes
// the result. A non-empty forbidden string replaces leaking replies with a
// neutral fallback; every reply is capped at maxLineLength.
func (s *Service) requestLine(event commentary.Event, data commentary.Context, forbidden string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	line, err := s.lines.GenerateLine(ctx, event, data)
	if err != nil {
		log.Printf("commentary %s failed: %v", event, err)
		return ""
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if forbidden != "" && strings.Contains(strings.ToLower(line), strings.ToLower(forbidden)) {
		return "Yeah… that was dangerously close."
	}
	if runes := []rune(line); len(runes) > maxLineLength {
		line = string(runes[:maxLineLength])
	}
	return line
}
