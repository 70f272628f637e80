package main

import "github.com/rocketscienceinc/tictactoe-board/internal/cli"

func main() {
	cli.Execute()
}
