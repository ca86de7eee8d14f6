package apperror

import "errors"

var (
	ErrPassphraseMismatch = errors.New("wrong password")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyInRoom      = errors.New("already in a room")
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotParticipant     = errors.New("not a participant of the room")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrInvalidPosition    = errors.New("invalid board position")
	ErrCellOccupied       = errors.New("cell is already occupied")
)

var reported = []error{ErrPassphraseMismatch, ErrRoomFull, ErrAlreadyInRoom}

// Reported returns the sentinel behind err that must be sent back to the caller,
// or nil when err belongs to the silently dropped kind.
func Reported(err error) error {
	for _, target := range reported {
		if errors.Is(err, target) {
			return target
		}
	}

	return nil
}
