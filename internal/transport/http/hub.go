package http

import (
	"context"
	"sync"

	"gameshow-service/internal/domain"
)

// Hub fans game announcements out to every websocket connection watching a
// channel. It implements game.Announcer; Post never blocks the game on a
// slow client.
type Hub struct {
	mu   sync.Mutex
	subs map[domain.Scope]map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[domain.Scope]map[chan string]struct{})}
}

// Post broadcasts a line to the channel's subscribers. Slow subscribers lose
// their oldest pending line rather than stalling the broadcast.
func (h *Hub) Post(_ context.Context, scope domain.Scope, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[scope] {
		select {
		case ch <- text:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- text
		}
	}
}

func (h *Hub) subscribe(scope domain.Scope) (<-chan string, func()) {
	ch := make(chan string, 16)

	h.mu.Lock()
	if h.subs[scope] == nil {
		h.subs[scope] = make(map[chan string]struct{})
	}
	h.subs[scope][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[scope][ch]; ok {
			delete(h.subs[scope], ch)
			if len(h.subs[scope]) == 0 {
				delete(h.subs, scope)
			}
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}
