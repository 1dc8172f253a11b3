package game

import (
	"sort"
	"strings"
	"testing"
)

func TestShuffleWordDiffersFromOriginal(t *testing.T) {
	for _, word := range []string{"planet", "ox", "scramble", "aab"} {
		for i := 0; i < 50; i++ {
			got := shuffleWord(word)
			if got == word {
				t.Fatalf("shuffleWord(%q) returned the original", word)
			}
			if sortLetters(got) != sortLetters(word) {
				t.Fatalf("shuffleWord(%q) = %q changed the letters", word, got)
			}
		}
	}
}

func TestShuffleWordUniformLettersFallsBackToReverse(t *testing.T) {
	// "ab" has one non-identity permutation; "aa" has none and passes through
	// the reverse fallback untouched by letter content.
	if got := shuffleWord("ab"); got != "ba" {
		t.Fatalf("shuffleWord(\"ab\") = %q, want \"ba\"", got)
	}
}

func TestShuffleWordShortInputsPassThrough(t *testing.T) {
	if got := shuffleWord("a"); got != "a" {
		t.Fatalf("single letters cannot scramble, got %q", got)
	}
	if got := shuffleWord(""); got != "" {
		t.Fatalf("empty input should pass through, got %q", got)
	}
}

func sortLetters(s string) string {
	parts := strings.Split(s, "")
	sort.Strings(parts)
	return strings.Join(parts, "")
}
