package http

import (
	"context"
	"fmt"
	"testing"

	"gameshow-service/internal/domain"
)

func TestHubBroadcastsToScopeSubscribers(t *testing.T) {
	hub := NewHub()
	scope := domain.Scope{GuildID: "g1", ChannelID: "c1"}
	other := domain.Scope{GuildID: "g1", ChannelID: "c2"}

	ch, cancel := hub.subscribe(scope)
	defer cancel()
	otherCh, otherCancel := hub.subscribe(other)
	defer otherCancel()

	hub.Post(context.Background(), scope, "hello c1")

	if got := <-ch; got != "hello c1" {
		t.Fatalf("expected broadcast, got %q", got)
	}
	select {
	case leaked := <-otherCh:
		t.Fatalf("c2 received c1 traffic: %q", leaked)
	default:
	}
}

func TestHubDropsOldestForSlowSubscribers(t *testing.T) {
	hub := NewHub()
	scope := domain.Scope{GuildID: "g1", ChannelID: "c1"}

	ch, cancel := hub.subscribe(scope)
	defer cancel()

	for i := 0; i < 20; i++ {
		hub.Post(context.Background(), scope, fmt.Sprintf("line-%d", i))
	}

	// Buffer holds 16; the four oldest lines were dropped, the newest kept.
	if got := <-ch; got != "line-4" {
		t.Fatalf("expected line-4 first after drops, got %q", got)
	}
	last := ""
	for i := 0; i < 15; i++ {
		last = <-ch
	}
	if last != "line-19" {
		t.Fatalf("expected line-19 last, got %q", last)
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	scope := domain.Scope{GuildID: "g1", ChannelID: "c1"}

	ch, cancel := hub.subscribe(scope)
	cancel()
	cancel() // second cancel is a no-op

	if _, open := <-ch; open {
		t.Fatalf("expected subscription channel closed")
	}

	// Posting into a scope with no subscribers must not panic or block.
	hub.Post(context.Background(), scope, "into the void")
}
