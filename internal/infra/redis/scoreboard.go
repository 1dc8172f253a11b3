// Package redis persists the leaderboard in Redis sorted sets.
//
// Layout:
//
//	ZINCRBY scores:{guildID}:{mode} {points} {participantID}
//	HSET    names:{guildID} {participantID} {displayName}
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"gameshow-service/internal/domain"
)

// Scoreboard implements the game's ScoreKeeper on a Redis client. Concurrent
// leaderboard reads for the same guild are collapsed with singleflight; the
// board changes at most once per round, so one query can serve a burst.
type Scoreboard struct {
	client *redis.Client
	sf     singleflight.Group
}

func NewScoreboard(client *redis.Client) *Scoreboard {
	return &Scoreboard{client: client}
}

func (s *Scoreboard) AwardPoints(ctx context.Context, guildID, participantID, displayName string, points int, mode domain.Mode) error {
	pipe := s.client.Pipeline()
	pipe.ZIncrBy(ctx, scoresKey(guildID, mode), float64(points), participantID)
	if displayName != "" {
		pipe.HSet(ctx, namesKey(guildID), participantID, displayName)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("award points: %w", err)
	}
	return nil
}

func (s *Scoreboard) Leaderboard(ctx context.Context, guildID string, mode domain.Mode, limit int) ([]domain.ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("%s|%d", scoresKey(guildID, mode), limit)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.fetchLeaderboard(ctx, guildID, mode, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.ScoreEntry), nil
}

func (s *Scoreboard) fetchLeaderboard(ctx context.Context, guildID string, mode domain.Mode, limit int) ([]domain.ScoreEntry, error) {
	scores, err := s.client.ZRevRangeWithScores(ctx, scoresKey(guildID, mode), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	if len(scores) == 0 {
		return []domain.ScoreEntry{}, nil
	}

	names, err := s.client.HGetAll(ctx, namesKey(guildID)).Result()
	if err != nil {
		names = map[string]string{}
	}

	entries := make([]domain.ScoreEntry, 0, len(scores))
	for _, z := range scores {
		id, _ := z.Member.(string)
		entries = append(entries, domain.ScoreEntry{
			ParticipantID: id,
			DisplayName:   names[id],
			Points:        int(z.Score),
		})
	}
	return entries, nil
}

func (s *Scoreboard) Rank(ctx context.Context, guildID, participantID string, mode domain.Mode) (domain.Rank, error) {
	key := scoresKey(guildID, mode)
	pos, err := s.client.ZRevRank(ctx, key, participantID).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Rank{}, domain.ErrParticipantUnknown
	}
	if err != nil {
		return domain.Rank{}, fmt.Errorf("rank: %w", err)
	}
	score, err := s.client.ZScore(ctx, key, participantID).Result()
	if err != nil {
		return domain.Rank{}, fmt.Errorf("rank score: %w", err)
	}
	return domain.Rank{Position: int(pos) + 1, Points: int(score)}, nil
}

func scoresKey(guildID string, mode domain.Mode) string {
	return "scores:" + guildID + ":" + string(mode)
}

func namesKey(guildID string) string {
	return "names:" + guildID
}
