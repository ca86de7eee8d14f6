package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize = 15
	WinLength = 5
)

// Cell is the content of one board intersection. PlayerOne and PlayerTwo
// double as the player identities.
type Cell int

const (
	Empty Cell = iota
	PlayerOne
	PlayerTwo
)

// Opponent returns the other player.
func (that Cell) Opponent() Cell {
	if that == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal ↘
	{1, -1}, // diagonal ↗
}

// Board is a value type: assigning or returning it copies every cell.
type Board [BoardSize][BoardSize]Cell

func NewBoard() Board {
	return Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Place returns a copy of the board with the cell at (row, col) set to player.
func (that Board) Place(row, col int, player Cell) (Board, error) {
	if !InBounds(row, col) {
		return that, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidPosition, row, col)
	}

	if that[row][col] != Empty {
		return that, fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that[row][col] = player

	return that, nil
}

// CheckWin reports whether the stone just placed at (row, col) completes a run
// of WinLength for player. It only looks at lines through (row, col).
func (that Board) CheckWin(row, col int, player Cell) bool {
	for _, axis := range axes {
		count := 1
		count += that.countDirection(row, col, axis[0], axis[1], player)
		count += that.countDirection(row, col, -axis[0], -axis[1], player)

		if count >= WinLength {
			return true
		}
	}

	return false
}

func (that Board) countDirection(row, col, dRow, dCol int, player Cell) int {
	count := 0

	for i := 1; i < WinLength; i++ {
		r, c := row+dRow*i, col+dCol*i
		if !InBounds(r, c) || that[r][c] != player {
			break
		}
		count++
	}

	return count
}
