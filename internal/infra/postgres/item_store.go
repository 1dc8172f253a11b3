// Package postgres backs the shared item pool with a database, so multiple
// service processes can draw from one pool. Selection locks the chosen row
// (FOR UPDATE SKIP LOCKED) and increments usage counters in the same
// transaction, which keeps "pick + count" atomic across processes.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gameshow-service/internal/domain"
	"gameshow-service/internal/game"
)

const pickQuestionSQL = `
SELECT q.id, q.question, q.correct_answers
FROM questions q
WHERE q.approved = TRUE
  AND NOT EXISTS (
    SELECT 1
    FROM session_items s
    WHERE s.guild_id = $1
      AND s.session_id = $2
      AND s.mode = 'trivia'
      AND s.item_id = q.id
  )
ORDER BY
  (
    SELECT COALESCE(u.times_asked, 0)
    FROM question_usage u
    WHERE u.question_id = q.id
      AND u.guild_id = $1
  ) ASC,
  q.times_asked ASC,
  RANDOM()
LIMIT 1
FOR UPDATE OF q SKIP LOCKED
`

// Once a session has seen every question, selection relaxes to recycling the
// least-used approved ones instead of failing.
const pickQuestionRelaxedSQL = `
SELECT q.id, q.question, q.correct_answers
FROM questions q
WHERE q.approved = TRUE
ORDER BY
  (
    SELECT COALESCE(u.times_asked, 0)
    FROM question_usage u
    WHERE u.question_id = q.id
      AND u.guild_id = $1
  ) ASC,
  q.times_asked ASC,
  RANDOM()
LIMIT 1
FOR UPDATE OF q SKIP LOCKED
`

const pickWordSQL = `
SELECT w.id, w.word
FROM scramble_words w
WHERE w.approved = TRUE
  AND NOT EXISTS (
    SELECT 1
    FROM session_items s
    WHERE s.guild_id = $1
      AND s.session_id = $2
      AND s.mode = 'scramble'
      AND s.item_id = w.id
  )
  AND NOT EXISTS (
    SELECT 1
    FROM scramble_usage u
    WHERE u.guild_id = $1
      AND u.word_id = w.id
      AND u.last_asked_at > NOW() - INTERVAL '30 minutes'
  )
ORDER BY
  (
    SELECT COALESCE(u.times_asked, 0)
    FROM scramble_usage u
    WHERE u.word_id = w.id
      AND u.guild_id = $1
  ) ASC,
  w.times_asked ASC,
  RANDOM()
LIMIT 1
FOR UPDATE OF w SKIP LOCKED
`

const pickWordRelaxedSQL = `
SELECT w.id, w.word
FROM scramble_words w
WHERE w.approved = TRUE
ORDER BY
  (
    SELECT COALESCE(u.times_asked, 0)
    FROM scramble_usage u
    WHERE u.word_id = w.id
      AND u.guild_id = $1
  ) ASC,
  w.times_asked ASC,
  RANDOM()
LIMIT 1
FOR UPDATE OF w SKIP LOCKED
`

const markSessionSQL = `
INSERT INTO session_items (guild_id, session_id, mode, item_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING
`

// ItemStore selects questions and words from Postgres.
type ItemStore struct {
	pool *pgxpool.Pool
}

func NewItemStore(pool *pgxpool.Pool) *ItemStore {
	return &ItemStore{pool: pool}
}

func (s *ItemStore) Next(ctx context.Context, pick game.Pick) (domain.Item, error) {
	var item domain.Item
	err := s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		var err error
		switch pick.Mode {
		case domain.ModeScramble:
			item, err = s.pickWord(ctx, tx, pick)
		default:
			item, err = s.pickQuestion(ctx, tx, pick)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemStore) pickQuestion(ctx context.Context, tx pgx.Tx, pick game.Pick) (domain.Item, error) {
	var (
		id   int64
		text string
		raw  []byte
	)
	err := tx.QueryRow(ctx, pickQuestionSQL, pick.GuildID, pick.SessionID).Scan(&id, &text, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, pickQuestionRelaxedSQL, pick.GuildID).Scan(&id, &text, &raw)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPoolExhausted
	}
	if err != nil {
		return nil, fmt.Errorf("pick question: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE questions SET times_asked = times_asked + 1 WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("bump question: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO question_usage (guild_id, question_id, times_asked, last_asked_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (guild_id, question_id)
		DO UPDATE SET times_asked = question_usage.times_asked + 1, last_asked_at = NOW()`,
		pick.GuildID, id); err != nil {
		return nil, fmt.Errorf("bump question usage: %w", err)
	}
	if _, err := tx.Exec(ctx, markSessionSQL, pick.GuildID, pick.SessionID, string(domain.ModeTrivia), id); err != nil {
		return nil, fmt.Errorf("mark session question: %w", err)
	}

	return domain.Question{ID: id, Text: text, Answers: parseAnswers(raw)}, nil
}

func (s *ItemStore) pickWord(ctx context.Context, tx pgx.Tx, pick game.Pick) (domain.Item, error) {
	var (
		id   int64
		word string
	)
	err := tx.QueryRow(ctx, pickWordSQL, pick.GuildID, pick.SessionID).Scan(&id, &word)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, pickWordRelaxedSQL, pick.GuildID).Scan(&id, &word)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPoolExhausted
	}
	if err != nil {
		return nil, fmt.Errorf("pick word: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE scramble_words SET times_asked = times_asked + 1 WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("bump word: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO scramble_usage (guild_id, word_id, times_asked, last_asked_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (guild_id, word_id)
		DO UPDATE SET times_asked = scramble_usage.times_asked + 1, last_asked_at = NOW()`,
		pick.GuildID, id); err != nil {
		return nil, fmt.Errorf("bump word usage: %w", err)
	}
	if _, err := tx.Exec(ctx, markSessionSQL, pick.GuildID, pick.SessionID, string(domain.ModeScramble), id); err != nil {
		return nil, fmt.Errorf("mark session word: %w", err)
	}

	return domain.Word{ID: id, Text: word}, nil
}

// parseAnswers tolerates the shapes the loaders have historically written:
// a JSON array, a JSON string, or bare text.
func parseAnswers(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return []string{string(raw)}
}
