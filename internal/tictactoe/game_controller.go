package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

// GameController owns the state of a single game: whose turn it is, which
// cells are claimed and how far each player got on every line.
type GameController struct {
	size  int
	state entity.GameState
}

func NewGameController(boardSize int) (*GameController, error) {
	if boardSize <= 0 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, boardSize)
	}

	controller := &GameController{size: boardSize}
	controller.Reset()

	return controller, nil
}

// Restore - rebuilds a controller around a previously saved state.
func Restore(state entity.GameState) (*GameController, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("could not restore game: %w", err)
	}

	return &GameController{
		size:  state.Size(),
		state: state.Clone(),
	}, nil
}

// HandleCellClick - claims (row, col) for the player to move. Clicking a
// claimed cell does nothing.
func (that *GameController) HandleCellClick(row, col int) error {
	if !that.state.Board.Contains(row, col) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d board", apperror.ErrInvalidCoordinate, row, col, that.size, that.size)
	}

	if !that.state.Board[row][col].IsEmpty() {
		return nil
	}

	mover := that.state.CurrentPlayer
	that.state.Board[row][col] = entity.CellOf(mover)

	// the mover is credited, never the player whose turn comes next
	that.state.Score[mover].Credit(row, col, that.size)
	that.state.CurrentPlayer = mover.Other()

	return nil
}

// CheckWinner - the first player, in index order, holding a complete line.
func (that *GameController) CheckWinner() (entity.Player, bool) {
	scores := that.MaxScores()
	for _, player := range entity.Players {
		if scores[player] == that.size {
			return player, true
		}
	}

	return 0, false
}

// MaxScores - per player, the longest partial line.
func (that *GameController) MaxScores() [2]int {
	return [2]int{
		that.state.Score[entity.PlayerOne].Max(),
		that.state.Score[entity.PlayerTwo].Max(),
	}
}

func (that *GameController) Reset() {
	that.state = entity.NewGameState(that.size)
}

// Status - derived outcome; a full board without a winner is a draw.
func (that *GameController) Status() string {
	if _, ok := that.CheckWinner(); ok {
		return entity.StatusWon
	}

	if that.state.Board.IsFull() {
		return entity.StatusDraw
	}

	return entity.StatusOngoing
}

func (that *GameController) Cell(row, col int) (entity.Cell, error) {
	if !that.state.Board.Contains(row, col) {
		return entity.EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return that.state.Board[row][col], nil
}

func (that *GameController) CurrentPlayer() entity.Player {
	return that.state.CurrentPlayer
}

func (that *GameController) Size() int {
	return that.size
}

func (that *GameController) IsFull() bool {
	return that.state.Board.IsFull()
}

// State - a copy of the game state, safe to hand to viewers.
func (that *GameController) State() entity.GameState {
	return that.state.Clone()
}
