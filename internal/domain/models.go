package domain

import "time"

// Mode selects which game a session runs.
type Mode string

const (
	ModeTrivia   Mode = "trivia"
	ModeScramble Mode = "scramble"
)

// Valid reports whether the mode is one of the supported games.
func (m Mode) Valid() bool {
	return m == ModeTrivia || m == ModeScramble
}

// Scope identifies the chat channel a session runs in.
type Scope struct {
	GuildID   string
	ChannelID string
}

// Item is a playable pool entry: either a trivia Question or a scramble Word.
type Item interface {
	ItemID() int64
	// Answer returns the primary expected answer, used for hints and reveals.
	Answer() string
}

// Question is a trivia item with one or more accepted answers.
type Question struct {
	ID      int64
	Text    string
	Answers []string
}

func (q Question) ItemID() int64 { return q.ID }

func (q Question) Answer() string {
	if len(q.Answers) == 0 {
		return ""
	}
	return q.Answers[0]
}

// Word is a scramble item.
type Word struct {
	ID   int64
	Text string
}

func (w Word) ItemID() int64  { return w.ID }
func (w Word) Answer() string { return w.Text }

// Candidate is a correctly-classified submission awaiting winner resolution.
// MessageID is an opaque back-reference to the originating chat message.
type Candidate struct {
	ParticipantID string
	DisplayName   string
	MessageID     string
	SubmittedAt   time.Time
}

// ScoreEntry is one participant's total in a scoreboard view.
type ScoreEntry struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Points        int    `json:"points"`
}

// ScoreSummary captures the final standings of a session.
type ScoreSummary struct {
	Scope   Scope        `json:"-"`
	Mode    Mode         `json:"mode"`
	Rounds  int          `json:"rounds"`
	Entries []ScoreEntry `json:"entries"`
}

// Rank is a single participant's position on the persistent leaderboard.
type Rank struct {
	Position int `json:"position"`
	Points   int `json:"points"`
}
