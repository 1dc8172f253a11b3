package game

import (
	"sync"

	"gameshow-service/internal/domain"
)

// Directory is the process-wide registry of running sessions, keyed by
// (guild, channel). Absence means no active game in that channel.
type Directory struct {
	mu       sync.RWMutex
	sessions map[domain.Scope]*Session
}

func NewDirectory() *Directory {
	return &Directory{sessions: make(map[domain.Scope]*Session)}
}

// Add registers a new session for its scope. It fails with ErrGameInProgress
// while a running session occupies the key; ended leftovers are replaced.
func (d *Directory) Add(sess *Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.sessions[sess.Scope()]; ok && existing.InProgress() {
		return domain.ErrGameInProgress
	}
	d.sessions[sess.Scope()] = sess
	return nil
}

func (d *Directory) Get(scope domain.Scope) (*Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sess, ok := d.sessions[scope]
	return sess, ok
}

func (d *Directory) Remove(scope domain.Scope) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, scope)
}

// Len reports how many sessions are registered (running or not yet removed).
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
