package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gameshow-service/internal/commentary"
	"gameshow-service/internal/domain"
	"gameshow-service/internal/game"
	"gameshow-service/internal/infra/memory"
)

func TestWebSocketGameFlow(t *testing.T) {
	hub := NewHub()
	service := game.New(game.Config{
		Items: memory.NewItemStore([]domain.Question{
			{ID: 1, Text: "What is 2 + 2?", Answers: []string{"4"}},
			{ID: 2, Text: "What is 3 + 3?", Answers: []string{"6"}},
			{ID: 3, Text: "What is 4 + 4?", Answers: []string{"8"}},
			{ID: 4, Text: "What is 5 + 5?", Answers: []string{"10"}},
			{ID: 5, Text: "What is 6 + 6?", Answers: []string{"12"}},
		}, nil),
		Scores: memory.NewScoreboard(),
		Lines:  commentary.Silent{},
		Posts:  hub,
		Timings: game.Timings{
			HintDelay:         time.Second,
			HintInterval:      time.Second,
			FinalWait:         time.Second,
			ScrambleHintDelay: time.Second,
			ScrambleFinalWait: time.Second,
			GraceWindow:       10 * time.Millisecond,
			TransitionDelay:   time.Millisecond,
		},
	})
	handler := NewGatewayHandler(service, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?guildId=g1&channelId=c1&userId=u1&name=Alice"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if typ, _ := readNext(conn, t); typ != "joined" {
		t.Fatalf("expected joined first, got %s", typ)
	}

	writeMsg(conn, t, map[string]any{
		"type":    "start",
		"payload": map[string]any{"mode": "trivia", "rounds": 5},
	})
	waitForPost(conn, t, "Question 1 of 5")

	writeMsg(conn, t, map[string]any{
		"type":    "message",
		"payload": map[string]any{"messageId": "m1", "text": "4"},
	})
	won := waitForPost(conn, t, "got it right")
	if !strings.Contains(won, "Alice") {
		t.Fatalf("expected Alice announced as winner, got %q", won)
	}

	writeMsg(conn, t, map[string]any{
		"type":    "stop",
		"payload": map[string]any{"mode": "trivia"},
	})
	scores := waitForType(conn, t, "scores")
	entries, ok := scores["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one scoreboard entry, got %v", scores["entries"])
	}

	// Stopping again reports that nothing is running.
	writeMsg(conn, t, map[string]any{
		"type":    "stop",
		"payload": map[string]any{"mode": "trivia"},
	})
	errPayload := waitForType(conn, t, "error")
	if msg, _ := errPayload["message"].(string); !strings.Contains(msg, "no game") {
		t.Fatalf("expected a no-game error, got %v", errPayload)
	}
}

func TestWebSocketRejectsIncompleteIdentity(t *testing.T) {
	handler := NewGatewayHandler(game.New(game.Config{
		Items:  memory.NewItemStore(nil, nil),
		Scores: memory.NewScoreboard(),
		Lines:  commentary.Silent{},
		Posts:  NewHub(),
	}), NewHub())

	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	defer server.Close()

	resp, err := http.Get(server.URL + "?guildId=g1&channelId=c1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing identity, got %d", resp.StatusCode)
	}
}

func writeMsg(conn *websocket.Conn, t *testing.T, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %v: %v", msg["type"], err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}

// waitForPost drains gateway traffic until a post containing substr arrives.
// Acks and interleaved posts from the game's own goroutines are skipped.
func waitForPost(conn *websocket.Conn, t *testing.T, substr string) string {
	t.Helper()
	for i := 0; i < 20; i++ {
		typ, payload := readNext(conn, t)
		if typ != "post" {
			continue
		}
		text, _ := payload["text"].(string)
		if strings.Contains(text, substr) {
			return text
		}
	}
	t.Fatalf("no post containing %q arrived", substr)
	return ""
}

func waitForType(conn *websocket.Conn, t *testing.T, want string) map[string]any {
	t.Helper()
	for i := 0; i < 20; i++ {
		typ, payload := readNext(conn, t)
		if typ == want {
			return payload
		}
	}
	t.Fatalf("no %q message arrived", want)
	return nil
}
