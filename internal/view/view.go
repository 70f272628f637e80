// Package view turns game state into something a client can display.
package view

import "github.com/rocketscienceinc/tictactoe-board/internal/entity"

// Source is what a view reads from. Views keep it as a plain reference for
// pulling state; they never own or mutate it.
type Source interface {
	State() entity.GameState
	MaxScores() [2]int
	CheckWinner() (entity.Player, bool)
}

type View interface {
	Attach(source Source)
	Draw()
}
