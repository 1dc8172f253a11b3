// Package memory provides in-process implementations of the game's storage
// ports, used for single-node runs and tests.
package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gameshow-service/internal/domain"
	"gameshow-service/internal/game"
)

// DefaultScrambleCooldown keeps a word out of a guild's rotation after use.
const DefaultScrambleCooldown = 30 * time.Minute

type poolKey struct {
	mode domain.Mode
	id   int64
}

type entry struct {
	item        domain.Item
	approved    bool
	globalTimes int
}

type usage struct {
	times     int
	lastAsked time.Time
}

// ItemStore is a mutex-serialized item pool shared by every session in the
// process. Selection and its counter increments happen as one critical
// section, so two concurrent picks can never both see the same item as
// unused.
type ItemStore struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	now         func() time.Time
	cooldown    time.Duration
	pools       map[domain.Mode][]*entry
	guildUse    map[string]map[poolKey]*usage
	sessionUsed map[string]map[poolKey]bool
}

func NewItemStore(questions []domain.Question, words []domain.Word) *ItemStore {
	return NewItemStoreWithClock(questions, words, time.Now)
}

// NewItemStoreWithClock allows deterministic time in tests.
func NewItemStoreWithClock(questions []domain.Question, words []domain.Word, now func() time.Time) *ItemStore {
	s := &ItemStore{
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         now,
		cooldown:    DefaultScrambleCooldown,
		pools:       make(map[domain.Mode][]*entry),
		guildUse:    make(map[string]map[poolKey]*usage),
		sessionUsed: make(map[string]map[poolKey]bool),
	}
	for _, q := range questions {
		s.pools[domain.ModeTrivia] = append(s.pools[domain.ModeTrivia], &entry{item: q, approved: true})
	}
	for _, w := range words {
		s.pools[domain.ModeScramble] = append(s.pools[domain.ModeScramble], &entry{item: w, approved: true})
	}
	return s
}

// Next picks the least-used approved item not yet seen by the session,
// relaxing to recycled items once the session has seen everything.
func (s *ItemStore) Next(_ context.Context, pick game.Pick) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	approved := make([]*entry, 0)
	for _, e := range s.pools[pick.Mode] {
		if e.approved {
			approved = append(approved, e)
		}
	}
	if len(approved) == 0 {
		return nil, domain.ErrPoolExhausted
	}

	eligible := make([]*entry, 0, len(approved))
	for _, e := range approved {
		key := poolKey{pick.Mode, e.item.ItemID()}
		if s.sessionUsed[pick.SessionID][key] {
			continue
		}
		if pick.Mode == domain.ModeScramble && s.inCooldown(pick.GuildID, key) {
			continue
		}
		eligible = append(eligible, e)
	}
	if len(eligible) == 0 {
		// Everything was seen; silently start recycling the least-used items.
		eligible = approved
	}

	s.rnd.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	sort.SliceStable(eligible, func(i, j int) bool {
		gi := s.guildTimes(pick.GuildID, poolKey{pick.Mode, eligible[i].item.ItemID()})
		gj := s.guildTimes(pick.GuildID, poolKey{pick.Mode, eligible[j].item.ItemID()})
		if gi != gj {
			return gi < gj
		}
		return eligible[i].globalTimes < eligible[j].globalTimes
	})

	chosen := eligible[0]
	key := poolKey{pick.Mode, chosen.item.ItemID()}
	chosen.globalTimes++
	s.bumpGuild(pick.GuildID, key)
	s.markSession(pick.SessionID, key)
	return chosen.item, nil
}

func (s *ItemStore) inCooldown(guildID string, key poolKey) bool {
	if s.cooldown <= 0 {
		return false
	}
	u, ok := s.guildUse[guildID][key]
	if !ok {
		return false
	}
	return s.now().Sub(u.lastAsked) < s.cooldown
}

func (s *ItemStore) guildTimes(guildID string, key poolKey) int {
	if u, ok := s.guildUse[guildID][key]; ok {
		return u.times
	}
	return 0
}

func (s *ItemStore) bumpGuild(guildID string, key poolKey) {
	if s.guildUse[guildID] == nil {
		s.guildUse[guildID] = make(map[poolKey]*usage)
	}
	u, ok := s.guildUse[guildID][key]
	if !ok {
		u = &usage{}
		s.guildUse[guildID][key] = u
	}
	u.times++
	u.lastAsked = s.now()
}

func (s *ItemStore) markSession(sessionID string, key poolKey) {
	if s.sessionUsed[sessionID] == nil {
		s.sessionUsed[sessionID] = make(map[poolKey]bool)
	}
	s.sessionUsed[sessionID][key] = true
}
