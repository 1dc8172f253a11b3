// Package http is the chat gateway: it upgrades websocket connections and
// translates gateway messages into game operations. Everything the game says
// back flows through the Hub as plain posted lines.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"gameshow-service/internal/domain"
	"gameshow-service/internal/game"
)

// mentionPrefix marks a chat message addressed to the host bot.
const mentionPrefix = "@quizhost"

type GatewayHandler struct {
	service  *game.Service
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewGatewayHandler(service *game.Service, hub *Hub) *GatewayHandler {
	return &GatewayHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode   string `json:"mode"`
	Rounds int    `json:"rounds"`
}

type stopPayload struct {
	Mode string `json:"mode"`
}

type chatPayload struct {
	MessageID string `json:"messageId"`
	Text      string `json:"text"`
}

type boardPayload struct {
	Mode  string `json:"mode"`
	Limit int    `json:"limit"`
}

type postPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS attaches one chat participant to a channel. The connection both
// receives everything the game posts to that channel and feeds the
// participant's messages into the running round.
func (h *GatewayHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	guildID := r.URL.Query().Get("guildId")
	channelID := r.URL.Query().Get("channelId")
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if guildID == "" || channelID == "" || userID == "" || displayName == "" {
		http.Error(w, "missing guildId, channelId, userId, or name", http.StatusBadRequest)
		return
	}
	scope := domain.Scope{GuildID: guildID, ChannelID: channelID}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	posts, cancel := h.hub.subscribe(scope)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	postsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(postsDone)
		for {
			select {
			case text, ok := <-posts:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "post", Payload: postPayload{Text: text}}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "joined", Payload: map[string]string{"guildId": guildID, "channelId": channelID}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r, scope, userID, displayName, inbound, send)
	}

	close(closeSignals)
	<-postsDone
	close(send)
	<-writerDone
}

func (h *GatewayHandler) dispatch(r *http.Request, scope domain.Scope, userID, displayName string, inbound inboundMessage, send chan<- outboundMessage[any]) {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- errorMsg("invalid start payload")
			return
		}
		if err := h.service.Start(r.Context(), scope, domain.Mode(payload.Mode), payload.Rounds); err != nil {
			send <- errorMsg(err.Error())
			return
		}
		send <- outboundMessage[any]{Type: "ack", Payload: map[string]string{"action": "start"}}

	case "stop":
		var payload stopPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- errorMsg("invalid stop payload")
			return
		}
		summary, err := h.service.Stop(r.Context(), scope, domain.Mode(payload.Mode))
		if err != nil {
			send <- errorMsg(err.Error())
			return
		}
		send <- outboundMessage[any]{Type: "scores", Payload: summary}

	case "message":
		var payload chatPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- errorMsg("invalid message payload")
			return
		}
		// Arrival time is stamped here, at ingestion, so the resolver compares
		// submission order as this gateway observed it.
		at := time.Now()
		if !h.service.Active(scope) && strings.HasPrefix(strings.ToLower(strings.TrimSpace(payload.Text)), mentionPrefix) {
			text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(payload.Text), mentionPrefix))
			h.service.Mention(r.Context(), scope, text)
			return
		}
		h.service.Submit(r.Context(), scope, userID, displayName, payload.MessageID, payload.Text, at)

	case "leaderboard":
		var payload boardPayload
		_ = json.Unmarshal(inbound.Payload, &payload)
		entries, err := h.service.Leaderboard(r.Context(), scope.GuildID, leaderboardMode(payload.Mode), payload.Limit)
		if err != nil {
			send <- errorMsg(err.Error())
			return
		}
		send <- outboundMessage[any]{Type: "leaderboard", Payload: entries}

	case "rank":
		var payload boardPayload
		_ = json.Unmarshal(inbound.Payload, &payload)
		rank, err := h.service.Rank(r.Context(), scope.GuildID, userID, leaderboardMode(payload.Mode))
		if err != nil {
			send <- errorMsg(err.Error())
			return
		}
		send <- outboundMessage[any]{Type: "rank", Payload: rank}

	default:
		send <- errorMsg("unsupported message type")
	}
}

func leaderboardMode(raw string) domain.Mode {
	mode := domain.Mode(raw)
	if !mode.Valid() {
		return domain.ModeTrivia
	}
	return mode
}

func errorMsg(text string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: text}}
}
