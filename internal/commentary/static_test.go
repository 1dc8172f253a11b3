package commentary

import (
	"context"
	"testing"
)

func TestStaticCoversKnownEvents(t *testing.T) {
	gen := NewStaticWithSeed(1)
	for _, event := range []Event{EventMention, EventHint3, EventNoAnswer, EventMidRoundQuip} {
		line, err := gen.GenerateLine(context.Background(), event, nil)
		if err != nil {
			t.Fatalf("%s: %v", event, err)
		}
		if line == "" {
			t.Fatalf("%s: expected a line", event)
		}
	}
}

func TestStaticUnknownEventStaysQuiet(t *testing.T) {
	gen := NewStaticWithSeed(1)
	line, err := gen.GenerateLine(context.Background(), Event("eclipse"), nil)
	if err != nil || line != "" {
		t.Fatalf("unknown events must yield nothing, got %q err=%v", line, err)
	}
}

func TestStaticIsDeterministicPerSeed(t *testing.T) {
	a, _ := NewStaticWithSeed(7).GenerateLine(context.Background(), EventNoAnswer, nil)
	b, _ := NewStaticWithSeed(7).GenerateLine(context.Background(), EventNoAnswer, nil)
	if a != b {
		t.Fatalf("same seed must compose the same line: %q vs %q", a, b)
	}
}

func TestSilentGeneratorSaysNothing(t *testing.T) {
	line, err := Silent{}.GenerateLine(context.Background(), EventMention, nil)
	if err != nil || line != "" {
		t.Fatalf("silent generator spoke: %q err=%v", line, err)
	}
}
