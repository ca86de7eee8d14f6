package entity

import "time"

type EventKind string

const (
	EventRoomUpdate EventKind = "room-update"
	EventGameStart  EventKind = "game-start"
	EventGameUpdate EventKind = "game-update"
	EventGameEnd    EventKind = "game-end"
)

// GameState is a detached copy of a room's game fields.
type GameState struct {
	Board         Board `json:"board"`
	CurrentPlayer Cell  `json:"currentPlayer"`
	IsStarted     bool  `json:"isGameStarted"`
	Winner        *Cell `json:"winner"`
}

// Event is the broadcast a room operation produces. It shares no memory with
// the room, so it can be encoded after the room lock is released.
type Event struct {
	Kind         EventKind
	RoomID       string
	Participants []Participant
	State        GameState
}

// RoomSnapshot is the public view of a room published to the room directory.
type RoomSnapshot struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	State        GameState     `json:"gameState"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (that *RoomSnapshot) IsFull() bool {
	return len(that.Participants) >= MaxParticipants
}
