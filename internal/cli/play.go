package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-board/internal"
	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/scene"
)

func newPlayCmd(configPath *string) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		Long: `Play a hot-seat game in the terminal.

Enter "row col" (zero-based) to claim a cell, "r" to start over and "q" to quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if size <= 0 {
				size = conf.Game.BoardSize
			}

			controller, err := scene.New(size, application.SceneOptions(conf))
			if err != nil {
				return fmt.Errorf("failed to start game: %w", err)
			}

			return newHotSeat(controller, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now).run()
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 0, "Board size (default from config)")

	return cmd
}

// loadConfig - the config file when present, defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.MustLoad(path), nil
	}

	return config.Default()
}

type hotSeat struct {
	controller *scene.Controller
	in         *bufio.Scanner
	out        io.Writer
	now        func() time.Time
}

func newHotSeat(controller *scene.Controller, in io.Reader, out io.Writer, now func() time.Time) *hotSeat {
	return &hotSeat{
		controller: controller,
		in:         bufio.NewScanner(in),
		out:        out,
		now:        now,
	}
}

func (that *hotSeat) run() error {
	that.print()

	for that.in.Scan() {
		line := strings.TrimSpace(that.in.Text())

		switch line {
		case "":
			continue
		case "q":
			return nil
		case "r":
			that.reset()
		default:
			that.click(line)
		}
	}

	if err := that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *hotSeat) reset() {
	if err := that.controller.Reset(that.now()); err != nil {
		that.printf("%s, try again in a moment\n", err)
		return
	}

	that.print()
}

func (that *hotSeat) click(line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		that.printf("enter \"row col\", \"r\" or \"q\"\n")
		return
	}

	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		that.printf("row and col must be numbers\n")
		return
	}

	move, err := that.controller.HandleCellClick(row, col, that.now())
	switch {
	case errors.Is(err, apperror.ErrInvalidCoordinate):
		that.printf("(%d, %d) is off the board\n", row, col)
		return
	case errors.Is(err, apperror.ErrGameFinished):
		that.printf("the game is over, press r to play again\n")
		return
	case err != nil:
		that.printf("%s\n", err)
		return
	}

	if !move.Claimed {
		that.printf("(%d, %d) is taken\n", row, col)
		return
	}

	that.print()
}

func (that *hotSeat) print() {
	snapshot := that.controller.Snapshot(that.now())

	that.printf("\n%s", that.controller.BoardText())
	for _, line := range snapshot.ScoreLines {
		that.printf("%s\n", line.Text)
	}

	switch {
	case snapshot.Winner != nil:
		that.printf("press r to play again, q to quit\n")
	case snapshot.Status == entity.StatusDraw:
		that.printf("draw, press r to play again\n")
	default:
		that.printf("%s (%s) to move\n", snapshot.CurrentPlayer, snapshot.CurrentPlayer.Mark())
	}
}

func (that *hotSeat) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
