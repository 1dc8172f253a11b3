package answer

import "testing"

func TestIsCorrect(t *testing.T) {
	cases := []struct {
		name       string
		submission string
		expected   []string
		want       bool
	}{
		{"numeric match", "42", []string{"42", "43"}, true},
		{"numeric with leading zero", "042", []string{"42"}, true},
		{"numeric rejects words", "forty-two", []string{"42"}, false},
		{"numeric rejects negative", "-42", []string{"42"}, false},

		{"single char case-insensitive", "a", []string{"A", "B"}, true},
		{"single char no fuzz", "ab", []string{"A", "B"}, false},
		{"single char trims", " b ", []string{"A", "B"}, true},

		{"exact text", "paris", []string{"Paris"}, true},
		{"exact with punctuation", "Paris!", []string{"paris"}, true},
		{"near miss below threshold", "pari", []string{"paris"}, false},
		{"typo within threshold", "pariss", []string{"paris"}, true},
		{"short answer ratio below bar", "mars", []string{"mar"}, false},
		{"short answer first char must match", "ove", []string{"love"}, false},

		{"multi-word token sets equal", "york new", []string{"new york"}, true},
		{"multi-word superset rejected", "new york", []string{"new york city"}, false},
		{"multi-word subset rejected", "new york city", []string{"new york"}, false},
		{"stop words ignored in sets", "the beatles", []string{"beatles"}, true},

		{"stop words only rejected", "the", []string{"the rolling stones"}, false},
		{"empty submission", "", []string{"paris"}, false},
		{"empty expected", "paris", nil, false},
		{"abbreviation rejected", "pneumonia", []string{"pneu"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCorrect(tc.submission, tc.expected); got != tc.want {
				t.Fatalf("IsCorrect(%q, %v) = %v, want %v", tc.submission, tc.expected, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  The Beatles!  "); got != "the beatles" {
		t.Fatalf("normalize: got %q", got)
	}
	if got := Normalize("don't... stop?"); got != "dont stop" {
		t.Fatalf("normalize punctuation: got %q", got)
	}
	if got := Normalize("a   lot\tof   space"); got != "a lot of space" {
		t.Fatalf("normalize whitespace: got %q", got)
	}
}

func TestRatioProperties(t *testing.T) {
	if r := Ratio("paris", "paris"); r != 1.0 {
		t.Fatalf("identical strings must score 1.0, got %f", r)
	}
	if r := Ratio("abc", "xyz"); r != 0.0 {
		t.Fatalf("disjoint strings must score 0.0, got %f", r)
	}
	if Ratio("pari", "paris") != Ratio("paris", "pari") {
		t.Fatalf("ratio must be symmetric")
	}
	// "pari" vs "paris": LCS 4, ratio 8/9, below the 0.9 single-word bar.
	if r := Ratio("pari", "paris"); r >= 0.9 {
		t.Fatalf("expected pari/paris below 0.9, got %f", r)
	}
	if r := Ratio("", ""); r != 1.0 {
		t.Fatalf("two empty strings are identical, got %f", r)
	}
}
