package game

import "testing"

func TestBuildHintRevealsProgressively(t *testing.T) {
	cases := []struct {
		answer string
		level  int
		want   string
	}{
		{"Paris", 1, "P••••"},
		{"Paris", 2, "Pa•••"},
		{"Paris", 3, "Par••"},
		{"The Beatles", 1, "T•• B••••••"},
		{"The Beatles", 3, "T•• Beatl••"},
		{"ox", 2, "o•"},
	}
	for _, tc := range cases {
		if got := buildHint(tc.answer, tc.level); got != tc.want {
			t.Fatalf("buildHint(%q, %d) = %q, want %q", tc.answer, tc.level, got, tc.want)
		}
	}
}

func TestScrambleHints(t *testing.T) {
	if got := scrambleFirstHint("planet"); got != "Starts with **P** (6 letters)" {
		t.Fatalf("first hint: got %q", got)
	}
	if got := scrambleSecondHint("planet"); got != "P _ _ _ E _" {
		t.Fatalf("second hint: got %q", got)
	}
	if got := scrambleSecondHint("ox"); got != "O X" {
		t.Fatalf("two-letter second hint: got %q", got)
	}
}

func TestSingleCharAnswerDetection(t *testing.T) {
	if !singleCharAnswer([]string{"Alpha", "b"}) {
		t.Fatalf("a lone-character answer should disable hints")
	}
	if singleCharAnswer([]string{"ab", "cd"}) {
		t.Fatalf("multi-character answers should keep hints on")
	}
}
