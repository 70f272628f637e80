package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const DefaultBoardSize = 3

// Cell holds the claiming player, or EmptyCell.
type Cell int8

const EmptyCell Cell = -1

func CellOf(player Player) Cell {
	return Cell(player)
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// Player - the occupant of the cell; false when the cell is empty.
func (that Cell) Player() (Player, bool) {
	if that.IsEmpty() {
		return 0, false
	}
	return Player(that), true
}

func (that Cell) valid() bool {
	return that == EmptyCell || Player(that).Valid()
}

// Board is a square grid of cells stored row by row.
type Board [][]Cell

func NewBoard(size int) Board {
	board := make(Board, size)
	for row := range board {
		board[row] = make([]Cell, size)
		for col := range board[row] {
			board[row][col] = EmptyCell
		}
	}

	return board
}

func (that Board) Size() int {
	return len(that)
}

func (that Board) Contains(row, col int) bool {
	return row >= 0 && row < len(that) && col >= 0 && col < len(that)
}

// Claimed - number of cells occupied by any player.
func (that Board) Claimed() int {
	claimed := 0
	for _, row := range that {
		for _, cell := range row {
			if !cell.IsEmpty() {
				claimed++
			}
		}
	}

	return claimed
}

func (that Board) IsFull() bool {
	return that.Claimed() == len(that)*len(that)
}

func (that Board) Clone() Board {
	board := make(Board, len(that))
	for row := range that {
		board[row] = append([]Cell(nil), that[row]...)
	}

	return board
}

// Score counts, per line, how many cells of that line a player holds.
type Score struct {
	Rows    []int `json:"rows"`
	Cols    []int `json:"cols"`
	Diag    int   `json:"diag"`
	InvDiag int   `json:"inv_diag"`
}

func NewScore(size int) Score {
	return Score{
		Rows: make([]int, size),
		Cols: make([]int, size),
	}
}

// Credit - records a claim at (row, col) on a board of the given size.
func (that *Score) Credit(row, col, size int) {
	that.Rows[row]++
	that.Cols[col]++

	if row == col {
		that.Diag++
	}

	if row+col == size-1 {
		that.InvDiag++
	}
}

// Max - the highest count over all lines.
func (that Score) Max() int {
	maxScore := max(that.Diag, that.InvDiag)
	for _, count := range that.Rows {
		maxScore = max(maxScore, count)
	}
	for _, count := range that.Cols {
		maxScore = max(maxScore, count)
	}

	return maxScore
}

func (that Score) Clone() Score {
	return Score{
		Rows:    append([]int(nil), that.Rows...),
		Cols:    append([]int(nil), that.Cols...),
		Diag:    that.Diag,
		InvDiag: that.InvDiag,
	}
}

// GameState is the whole mutable state of one game.
type GameState struct {
	CurrentPlayer Player   `json:"current_player"`
	Board         Board    `json:"board"`
	Score         [2]Score `json:"score"`
}

func NewGameState(size int) GameState {
	return GameState{
		CurrentPlayer: PlayerOne,
		Board:         NewBoard(size),
		Score:         [2]Score{NewScore(size), NewScore(size)},
	}
}

func (that GameState) Size() int {
	return that.Board.Size()
}

func (that GameState) Clone() GameState {
	return GameState{
		CurrentPlayer: that.CurrentPlayer,
		Board:         that.Board.Clone(),
		Score:         [2]Score{that.Score[0].Clone(), that.Score[1].Clone()},
	}
}

// Validate - checks the shape of a state restored from outside the controller.
func (that GameState) Validate() error {
	size := that.Size()
	if size == 0 {
		return fmt.Errorf("%w: empty board", apperror.ErrInvalidState)
	}

	if !that.CurrentPlayer.Valid() {
		return fmt.Errorf("%w: unknown player %d", apperror.ErrInvalidState, that.CurrentPlayer)
	}

	for row, cells := range that.Board {
		if len(cells) != size {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidState, row, len(cells))
		}

		for col, cell := range cells {
			if !cell.valid() {
				return fmt.Errorf("%w: cell (%d, %d) holds %d", apperror.ErrInvalidState, row, col, cell)
			}
		}
	}

	for _, player := range Players {
		score := that.Score[player]
		if len(score.Rows) != size || len(score.Cols) != size {
			return fmt.Errorf("%w: score of %s does not match board size", apperror.ErrInvalidState, player)
		}
	}

	return nil
}

// Celebration marks a running victory animation; the seed makes its frames reproducible.
type Celebration struct {
	Winner    Player    `json:"winner"`
	StartedAt time.Time `json:"started_at"`
	Seed      int64     `json:"seed"`
}

// Session is a stored hot-seat game.
type Session struct {
	ID          string       `json:"id"`
	State       GameState    `json:"state"`
	Celebration *Celebration `json:"celebration,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
