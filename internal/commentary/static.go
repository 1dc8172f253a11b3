package commentary

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var tones = []string{
	"Relax",
	"Calm down",
	"Slow your neurons",
	"Wow okay",
	"Take a deep breath",
	"Hold up",
	"Easy there",
}

var targets = []string{
	"champ",
	"speedrunner",
	"quiz goblin",
	"keyboard athlete",
	"big brain",
	"warrior of knowledge",
}

var addons = map[Event][]string{
	EventHint3: {
		"this is the last hint because I refuse to hold your hands any further.",
		"if you don't get it after this, I'm filing a complaint.",
		"final hint. Good luck, you'll need it.",
		"this is basically the full answer at this point.",
	},
	EventNoAnswer: {
		"absolutely no one got it. Inspirational.",
		"not a single neuron fired today.",
		"impressive teamwork. Every one of you got it wrong.",
		"the bar was low, and yet here we are.",
		"phenomenal failure. truly beautiful.",
	},
	EventMidRoundQuip: {
		"halfway there and the scoreboard is already a tragedy.",
		"someone is carrying this lobby and it shows.",
		"the gap at the top is getting embarrassing.",
	},
	EventMention: {
		"I'm awake. Unfortunately.",
		"yes? I was busy judging the scoreboard.",
		"you rang, and I already regret it.",
	},
}

// Static composes lines from fixed word banks. It is the fallback Generator
// used when no richer collaborator is configured.
type Static struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewStatic() *Static {
	return &Static{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewStaticWithSeed is for deterministic tests.
func NewStaticWithSeed(seed int64) *Static {
	return &Static{rnd: rand.New(rand.NewSource(seed))}
}

func (s *Static) GenerateLine(_ context.Context, event Event, _ Context) (string, error) {
	lines, ok := addons[event]
	if !ok || len(lines) == 0 {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tone := tones[s.rnd.Intn(len(tones))]
	target := targets[s.rnd.Intn(len(targets))]
	addon := lines[s.rnd.Intn(len(lines))]
	return fmt.Sprintf("%s, %s, %s", tone, target, addon), nil
}

// Silent never says anything. Useful when commentary is disabled outright.
type Silent struct{}

func (Silent) GenerateLine(context.Context, Event, Context) (string, error) {
	return "", nil
}
