package memory

import (
	"context"
	"sort"
	"sync"

	"gameshow-service/internal/domain"
)

type boardKey struct {
	guildID string
	mode    domain.Mode
}

// Scoreboard accumulates persistent points in memory. Awarding is idempotent
// over totals in the sense the game requires: points only ever add up.
type Scoreboard struct {
	mu     sync.RWMutex
	totals map[boardKey]map[string]int
	names  map[string]string
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		totals: make(map[boardKey]map[string]int),
		names:  make(map[string]string),
	}
}

func (s *Scoreboard) AwardPoints(_ context.Context, guildID, participantID, displayName string, points int, mode domain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := boardKey{guildID, mode}
	if s.totals[key] == nil {
		s.totals[key] = make(map[string]int)
	}
	s.totals[key][participantID] += points
	if displayName != "" {
		s.names[participantID] = displayName
	}
	return nil
}

func (s *Scoreboard) Leaderboard(_ context.Context, guildID string, mode domain.Mode, limit int) ([]domain.ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesLocked(boardKey{guildID, mode})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Scoreboard) Rank(_ context.Context, guildID, participantID string, mode domain.Mode) (domain.Rank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesLocked(boardKey{guildID, mode})
	for i, e := range entries {
		if e.ParticipantID == participantID {
			return domain.Rank{Position: i + 1, Points: e.Points}, nil
		}
	}
	return domain.Rank{}, domain.ErrParticipantUnknown
}

func (s *Scoreboard) entriesLocked(key boardKey) []domain.ScoreEntry {
	entries := make([]domain.ScoreEntry, 0, len(s.totals[key]))
	for id, points := range s.totals[key] {
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
		return entries[i].ParticipantID < entries[j].ParticipantID
	})
	return entries
}
