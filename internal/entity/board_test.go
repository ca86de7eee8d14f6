package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

func placeAll(t *testing.T, board Board, player Cell, cells ...[2]int) Board {
	t.Helper()

	var err error
	for _, cell := range cells {
		board, err = board.Place(cell[0], cell[1], player)
		require.NoError(t, err)
	}

	return board
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a stone on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: PlayerOne places at (7, 7)
		placed, err := board.Place(7, 7, PlayerOne)

		// Then: only that cell changes and the original board is untouched
		require.NoError(t, err)
		assert.Equal(t, PlayerOne, placed[7][7])
		assert.Equal(t, Empty, board[7][7])

		placed[7][7] = Empty
		assert.Equal(t, NewBoard(), placed)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with a PlayerOne stone at (3, 4)
		board := placeAll(t, NewBoard(), PlayerOne, [2]int{3, 4})

		// When: PlayerTwo places on the same cell
		after, err := board.Place(3, 4, PlayerTwo)

		// Then: ErrCellOccupied is returned and the stone stays
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, PlayerOne, after[3][4])
	})

	t.Run("Rejects out of range positions", func(t *testing.T) {
		board := NewBoard()

		for _, pos := range [][2]int{{-1, 0}, {0, -1}, {BoardSize, 0}, {0, BoardSize}, {100, 100}} {
			_, err := board.Place(pos[0], pos[1], PlayerOne)
			assert.ErrorIs(t, err, apperror.ErrInvalidPosition, "position %v", pos)
		}
	})
}

func TestBoard_CheckWin(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
		last  [2]int
	}{
		{
			name:  "horizontal",
			cells: [][2]int{{7, 3}, {7, 4}, {7, 5}, {7, 6}, {7, 7}},
			last:  [2]int{7, 7},
		},
		{
			name:  "vertical",
			cells: [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
			last:  [2]int{0, 0},
		},
		{
			name:  "diagonal down-right",
			cells: [][2]int{{10, 10}, {11, 11}, {12, 12}, {13, 13}, {14, 14}},
			last:  [2]int{14, 14},
		},
		{
			name:  "diagonal up-right",
			cells: [][2]int{{4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}},
			last:  [2]int{2, 2},
		},
		{
			name:  "stone closing the middle of a line",
			cells: [][2]int{{5, 1}, {5, 2}, {5, 4}, {5, 5}, {5, 3}},
			last:  [2]int{5, 3},
		},
	}

	for _, tt := range tests {
		t.Run("Detects a "+tt.name+" run of five", func(t *testing.T) {
			// Given: five PlayerTwo stones on one line
			board := placeAll(t, NewBoard(), PlayerTwo, tt.cells...)

			// When: checking the win at the last stone
			won := board.CheckWin(tt.last[0], tt.last[1], PlayerTwo)

			// Then: it is a win for PlayerTwo only
			assert.True(t, won)
			assert.False(t, board.CheckWin(tt.last[0], tt.last[1], PlayerOne))
		})
	}

	t.Run("Counts a run longer than five as a win", func(t *testing.T) {
		board := placeAll(t, NewBoard(), PlayerOne,
			[2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 4}, [2]int{2, 5}, [2]int{2, 6}, [2]int{2, 3})

		assert.True(t, board.CheckWin(2, 3, PlayerOne))
	})

	t.Run("Four in a row capped by the opponent is not a win", func(t *testing.T) {
		// Given: four PlayerOne stones with PlayerTwo on one end and an empty cell on the other
		board := placeAll(t, NewBoard(), PlayerOne, [2]int{9, 1}, [2]int{9, 2}, [2]int{9, 3}, [2]int{9, 4})
		board = placeAll(t, board, PlayerTwo, [2]int{9, 5})

		// When / Then: no axis reaches five
		assert.False(t, board.CheckWin(9, 4, PlayerOne))
		assert.False(t, board.CheckWin(9, 1, PlayerOne))
	})

	t.Run("Four in a row along the edge is not a win", func(t *testing.T) {
		board := placeAll(t, NewBoard(), PlayerOne, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})

		assert.False(t, board.CheckWin(0, 3, PlayerOne))
	})

	t.Run("Stones split by a gap are not a win", func(t *testing.T) {
		board := placeAll(t, NewBoard(), PlayerOne,
			[2]int{6, 0}, [2]int{6, 1}, [2]int{6, 2}, [2]int{6, 4}, [2]int{6, 5})

		assert.False(t, board.CheckWin(6, 2, PlayerOne))
		assert.False(t, board.CheckWin(6, 4, PlayerOne))
	})
}
