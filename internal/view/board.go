package view

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const emptyMark = "."

// BoardView draws the grid with one mark per cell.
type BoardView struct {
	source Source
	marks  [][]string
}

func NewBoardView() *BoardView {
	return &BoardView{}
}

func (that *BoardView) Attach(source Source) {
	that.source = source
}

func (that *BoardView) Draw() {
	that.marks = nil

	if that.source == nil {
		return
	}

	board := that.source.State().Board
	that.marks = make([][]string, len(board))
	for row, cells := range board {
		that.marks[row] = make([]string, len(cells))
		for col, cell := range cells {
			that.marks[row][col] = Mark(cell)
		}
	}
}

// Marks - the result of the last Draw, row by row.
func (that *BoardView) Marks() [][]string {
	marks := make([][]string, len(that.marks))
	for row := range that.marks {
		marks[row] = append([]string(nil), that.marks[row]...)
	}

	return marks
}

func (that *BoardView) Render() string {
	var builder strings.Builder
	for _, row := range that.marks {
		builder.WriteString(strings.Join(row, " "))
		builder.WriteByte('\n')
	}

	return builder.String()
}

func Mark(cell entity.Cell) string {
	player, ok := cell.Player()
	if !ok {
		return emptyMark
	}

	return player.Mark()
}
