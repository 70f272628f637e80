package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer(t *testing.T) {
	t.Run("Other flips between the two players", func(t *testing.T) {
		assert.Equal(t, PlayerTwo, PlayerOne.Other())
		assert.Equal(t, PlayerOne, PlayerTwo.Other())
	})

	t.Run("String is one-based", func(t *testing.T) {
		assert.Equal(t, "Player 1", PlayerOne.String())
		assert.Equal(t, "Player 2", PlayerTwo.String())
	})

	t.Run("Only two players are valid", func(t *testing.T) {
		assert.True(t, PlayerOne.Valid())
		assert.True(t, PlayerTwo.Valid())
		assert.False(t, Player(2).Valid())
		assert.False(t, Player(-1).Valid())
	})
}

func TestNewBoard(t *testing.T) {
	// When: a 4x4 board is created
	board := NewBoard(4)

	// Then: every cell is empty
	require.Equal(t, 4, board.Size())
	for _, row := range board {
		require.Len(t, row, 4)
		for _, cell := range row {
			assert.True(t, cell.IsEmpty())
		}
	}

	assert.Equal(t, 0, board.Claimed())
	assert.False(t, board.IsFull())
}

func TestBoard_Contains(t *testing.T) {
	board := NewBoard(3)

	assert.True(t, board.Contains(0, 0))
	assert.True(t, board.Contains(2, 2))
	assert.False(t, board.Contains(3, 0))
	assert.False(t, board.Contains(0, -1))
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one claimed cell
	board := NewBoard(3)
	board[1][1] = CellOf(PlayerTwo)

	// When: the board is cloned and the clone is modified
	clone := board.Clone()
	clone[0][0] = CellOf(PlayerOne)

	// Then: the original stays untouched
	assert.True(t, board[0][0].IsEmpty())
	assert.Equal(t, board[1][1], clone[1][1])
}

func TestCell_Player(t *testing.T) {
	player, ok := CellOf(PlayerTwo).Player()
	require.True(t, ok)
	assert.Equal(t, PlayerTwo, player)

	_, ok = EmptyCell.Player()
	assert.False(t, ok)
}

func TestScore_Credit(t *testing.T) {
	t.Run("Centre cell counts towards both diagonals", func(t *testing.T) {
		// Given: an empty 3x3 score
		score := NewScore(3)

		// When: the centre is credited
		score.Credit(1, 1, 3)

		// Then: row, column and both diagonals grow
		assert.Equal(t, []int{0, 1, 0}, score.Rows)
		assert.Equal(t, []int{0, 1, 0}, score.Cols)
		assert.Equal(t, 1, score.Diag)
		assert.Equal(t, 1, score.InvDiag)
	})

	t.Run("Edge cell touches no diagonal", func(t *testing.T) {
		score := NewScore(3)

		score.Credit(0, 1, 3)

		assert.Equal(t, 0, score.Diag)
		assert.Equal(t, 0, score.InvDiag)
		assert.Equal(t, 1, score.Max())
	})

	t.Run("Anti-diagonal on an even board", func(t *testing.T) {
		score := NewScore(4)

		score.Credit(0, 3, 4)
		score.Credit(3, 0, 4)

		assert.Equal(t, 0, score.Diag)
		assert.Equal(t, 2, score.InvDiag)
	})
}

func TestScore_Max(t *testing.T) {
	score := Score{
		Rows:    []int{1, 0, 2},
		Cols:    []int{0, 3, 0},
		Diag:    1,
		InvDiag: 2,
	}

	assert.Equal(t, 3, score.Max())
	assert.Equal(t, 0, NewScore(5).Max())
}

func TestGameState_Clone(t *testing.T) {
	// Given: a state with some progress
	state := NewGameState(3)
	state.Board[0][0] = CellOf(PlayerOne)
	state.Score[0].Credit(0, 0, 3)

	// When: the clone is mutated
	clone := state.Clone()
	clone.Score[0].Rows[0] = 3
	clone.Board[2][2] = CellOf(PlayerTwo)

	// Then: the original is unaffected
	assert.Equal(t, 1, state.Score[0].Rows[0])
	assert.True(t, state.Board[2][2].IsEmpty())
}

func TestGameState_Validate(t *testing.T) {
	t.Run("Fresh state is valid", func(t *testing.T) {
		require.NoError(t, NewGameState(3).Validate())
	})

	t.Run("Empty board", func(t *testing.T) {
		err := GameState{}.Validate()
		require.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Ragged board", func(t *testing.T) {
		state := NewGameState(3)
		state.Board[1] = state.Board[1][:2]

		require.ErrorIs(t, state.Validate(), apperror.ErrInvalidState)
	})

	t.Run("Unknown cell occupant", func(t *testing.T) {
		state := NewGameState(3)
		state.Board[0][0] = Cell(5)

		require.ErrorIs(t, state.Validate(), apperror.ErrInvalidState)
	})

	t.Run("Unknown current player", func(t *testing.T) {
		state := NewGameState(3)
		state.CurrentPlayer = Player(7)

		require.ErrorIs(t, state.Validate(), apperror.ErrInvalidState)
	})

	t.Run("Score of wrong size", func(t *testing.T) {
		state := NewGameState(3)
		state.Score[1] = NewScore(4)

		require.ErrorIs(t, state.Validate(), apperror.ErrInvalidState)
	})
}
