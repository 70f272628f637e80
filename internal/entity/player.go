package entity

import "fmt"

// Player identifies one of the two sides of a game.
type Player int

const (
	PlayerOne Player = 0
	PlayerTwo Player = 1
)

// Players lists both players in evaluation order.
var Players = [2]Player{PlayerOne, PlayerTwo}

func (that Player) Valid() bool {
	return that == PlayerOne || that == PlayerTwo
}

// Other - returns the opponent.
func (that Player) Other() Player {
	if that == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Mark - the symbol drawn for the player: a circle for the first one, a cross for the second.
func (that Player) Mark() string {
	if that == PlayerOne {
		return "O"
	}
	return "X"
}

// String - human-readable, one-based name.
func (that Player) String() string {
	return fmt.Sprintf("Player %d", int(that)+1)
}
