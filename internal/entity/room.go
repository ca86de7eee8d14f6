package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const MaxParticipants = 2

// Room is one two-player game session. It is not safe for concurrent use; the
// caller serializes access per room.
//
// Player identity comes from join order: participants[0] is PlayerOne and
// participants[1] is PlayerTwo. Nothing reorders participants, and removing
// the first one promotes the second to PlayerOne.
type Room struct {
	ID         string
	passphrase string

	participants []*Participant

	board         Board
	currentPlayer Cell
	isStarted     bool
	winner        Cell
}

func NewRoom(id, passphrase string) *Room {
	return &Room{
		ID:            id,
		passphrase:    passphrase,
		board:         NewBoard(),
		currentPlayer: PlayerOne,
	}
}

func (that *Room) IsEmpty() bool {
	return len(that.participants) == 0
}

func (that *Room) ParticipantCount() int {
	return len(that.participants)
}

// PlayerOf returns the player identity of connID derived from its join position.
func (that *Room) PlayerOf(connID string) (Cell, bool) {
	for i, participant := range that.participants {
		if participant.ID == connID {
			return Cell(i + 1), true
		}
	}

	return Empty, false
}

func (that *Room) Join(connID, passphrase, name string) (*Event, error) {
	if that.passphrase != passphrase {
		return nil, apperror.ErrPassphraseMismatch
	}

	if _, ok := that.PlayerOf(connID); ok {
		return nil, apperror.ErrAlreadyInRoom
	}

	if len(that.participants) >= MaxParticipants {
		return nil, apperror.ErrRoomFull
	}

	that.participants = append(that.participants, &Participant{ID: connID, Name: name})

	return that.event(EventRoomUpdate), nil
}

func (that *Room) SetReady(connID string) (*Event, error) {
	participant := that.participant(connID)
	if participant == nil {
		return nil, apperror.ErrNotParticipant
	}

	participant.IsReady = true

	if !that.allReady() {
		return that.event(EventRoomUpdate), nil
	}

	that.board = NewBoard()
	that.currentPlayer = PlayerOne
	that.winner = Empty
	that.isStarted = true

	return that.event(EventGameStart), nil
}

func (that *Room) MakeMove(connID string, row, col int) (*Event, error) {
	if !that.isStarted {
		return nil, apperror.ErrGameIsNotStarted
	}

	if that.winner != Empty {
		return nil, apperror.ErrGameFinished
	}

	player, ok := that.PlayerOf(connID)
	if !ok {
		return nil, apperror.ErrNotParticipant
	}

	if player != that.currentPlayer {
		return nil, apperror.ErrNotYourTurn
	}

	board, err := that.board.Place(row, col, player)
	if err != nil {
		return nil, fmt.Errorf("invalid move: %w", err)
	}

	that.board = board

	if that.board.CheckWin(row, col, player) {
		that.winner = player
		return that.event(EventGameEnd), nil
	}

	that.currentPlayer = player.Opponent()

	return that.event(EventGameUpdate), nil
}

// Reset returns the game to its initial state, keeping participants and their order.
func (that *Room) Reset() *Event {
	that.board = NewBoard()
	that.currentPlayer = PlayerOne
	that.winner = Empty
	that.isStarted = false

	for _, participant := range that.participants {
		participant.IsReady = false
	}

	return that.event(EventRoomUpdate)
}

// Leave removes connID. The returned event is nil when the room became empty.
func (that *Room) Leave(connID string) (*Event, error) {
	for i, participant := range that.participants {
		if participant.ID != connID {
			continue
		}

		that.participants = append(that.participants[:i], that.participants[i+1:]...)

		if that.IsEmpty() {
			return nil, nil
		}

		return that.event(EventRoomUpdate), nil
	}

	return nil, apperror.ErrNotParticipant
}

func (that *Room) Snapshot() *RoomSnapshot {
	return &RoomSnapshot{
		ID:           that.ID,
		Participants: that.copyParticipants(),
		State:        that.state(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func (that *Room) participant(connID string) *Participant {
	for _, participant := range that.participants {
		if participant.ID == connID {
			return participant
		}
	}

	return nil
}

func (that *Room) allReady() bool {
	if len(that.participants) != MaxParticipants {
		return false
	}

	for _, participant := range that.participants {
		if !participant.IsReady {
			return false
		}
	}

	return true
}

func (that *Room) event(kind EventKind) *Event {
	return &Event{
		Kind:         kind,
		RoomID:       that.ID,
		Participants: that.copyParticipants(),
		State:        that.state(),
	}
}

func (that *Room) copyParticipants() []Participant {
	participants := make([]Participant, 0, len(that.participants))
	for _, participant := range that.participants {
		participants = append(participants, *participant)
	}

	return participants
}

func (that *Room) state() GameState {
	state := GameState{
		Board:         that.board,
		CurrentPlayer: that.currentPlayer,
		IsStarted:     that.isStarted,
	}

	if that.winner != Empty {
		winner := that.winner
		state.Winner = &winner
	}

	return state
}
