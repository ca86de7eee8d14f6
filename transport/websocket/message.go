package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	eventJoinRoom    = "join-room"
	eventPlayerReady = "player-ready"
	eventMakeMove    = "make-move"
	eventResetGame   = "reset-game"
	eventJoinError   = "join-error"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId"`
	Password   string `json:"password"`
	PlayerName string `json:"playerName"`
}

type makeMoveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type roomPayload struct {
	Participants []entity.Participant `json:"participants"`
	GameState    entity.GameState     `json:"gameState"`
}

type gameUpdatePayload struct {
	GameState entity.GameState `json:"gameState"`
}

type gameEndPayload struct {
	Winner    *entity.Cell     `json:"winner"`
	GameState entity.GameState `json:"gameState"`
}

type joinErrorPayload struct {
	Message string `json:"message"`
}

func encodeEvent(event *entity.Event) ([]byte, error) {
	switch event.Kind {
	case entity.EventRoomUpdate, entity.EventGameStart:
		return encode(string(event.Kind), roomPayload{Participants: event.Participants, GameState: event.State})
	case entity.EventGameUpdate:
		return encode(string(event.Kind), gameUpdatePayload{GameState: event.State})
	case entity.EventGameEnd:
		return encode(string(event.Kind), gameEndPayload{Winner: event.State.Winner, GameState: event.State})
	default:
		return nil, fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
