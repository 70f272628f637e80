// Package scene pairs the game controller with the views that display it and
// the victory celebration. It adds the interactive rules on top of the core:
// no more claims once somebody has won, and no reset while the celebration is
// still playing.
package scene

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/animation"
	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/theme"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-board/internal/view"
)

const (
	SoundHit  = "hit"
	HitVolume = 0.15
)

type Options struct {
	Theme       theme.Theme
	Celebration animation.CelebrationOptions
	// Seed picks the randomness of a new celebration; defaults to the clock.
	Seed func(now time.Time) int64
}

func DefaultOptions() Options {
	return Options{
		Theme:       theme.Default(),
		Celebration: animation.DefaultCelebrationOptions(),
	}
}

// Move describes what a click did.
type Move struct {
	Row                int            `json:"row"`
	Col                int            `json:"col"`
	Player             entity.Player  `json:"player"`
	Claimed            bool           `json:"claimed"`
	Sound              string         `json:"sound,omitempty"`
	Winner             *entity.Player `json:"winner,omitempty"`
	CelebrationStarted bool           `json:"celebration_started"`
}

type Snapshot struct {
	Size          int            `json:"size"`
	CurrentPlayer entity.Player  `json:"current_player"`
	Board         [][]string     `json:"board"`
	Scores        [2]int         `json:"scores"`
	ScoreLines    []view.Line    `json:"score_lines"`
	Winner        *entity.Player `json:"winner,omitempty"`
	Status        string         `json:"status"`
	Celebrating   bool           `json:"celebrating"`
}

type Controller struct {
	options     Options
	game        *tictactoe.GameController
	board       *view.BoardView
	score       *view.ScoreView
	views       []view.View
	celebration *entity.Celebration
}

func New(boardSize int, options Options) (*Controller, error) {
	game, err := tictactoe.NewGameController(boardSize)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	return newController(game, nil, options), nil
}

// Restore - continues a saved game, including a celebration that may still be running.
func Restore(state entity.GameState, celebration *entity.Celebration, options Options) (*Controller, error) {
	game, err := tictactoe.Restore(state)
	if err != nil {
		return nil, err
	}

	return newController(game, celebration, options), nil
}

func newController(game *tictactoe.GameController, celebration *entity.Celebration, options Options) *Controller {
	controller := &Controller{
		options: options,
		game:    game,
		board:   view.NewBoardView(),
		score:   view.NewScoreView(options.Theme),
	}

	if celebration != nil {
		record := *celebration
		controller.celebration = &record
	}

	controller.views = []view.View{controller.board, controller.score}
	for _, v := range controller.views {
		v.Attach(controller)
	}

	controller.DrawAll()

	return controller
}

// HandleCellClick - claims a cell unless it is taken or the game is already won.
func (that *Controller) HandleCellClick(row, col int, now time.Time) (Move, error) {
	cell, err := that.game.Cell(row, col)
	if err != nil {
		return Move{}, fmt.Errorf("could not handle click: %w", err)
	}

	move := Move{
		Row:    row,
		Col:    col,
		Player: that.game.CurrentPlayer(),
	}

	if !cell.IsEmpty() {
		return move, nil
	}

	if _, ok := that.game.CheckWinner(); ok {
		return move, apperror.ErrGameFinished
	}

	if err = that.game.HandleCellClick(row, col); err != nil {
		return Move{}, fmt.Errorf("could not handle click: %w", err)
	}

	move.Claimed = true
	move.Sound = SoundHit

	that.DrawAll()

	if winner, ok := that.game.CheckWinner(); ok {
		move.Winner = &winner
		move.CelebrationStarted = that.startCelebration(winner, now)
	}

	return move, nil
}

// Reset - starts over, unless the victory celebration is still playing.
func (that *Controller) Reset(now time.Time) error {
	if that.Celebrating(now) {
		return apperror.ErrCelebrationInProgress
	}

	that.game.Reset()
	that.celebration = nil
	that.DrawAll()

	return nil
}

func (that *Controller) DrawAll() {
	for _, v := range that.views {
		v.Draw()
	}
}

func (that *Controller) Celebrating(now time.Time) bool {
	celebration := that.Celebration()
	return celebration != nil && celebration.Busy(now)
}

// Celebration - the current victory celebration, nil before anybody won.
func (that *Controller) Celebration() *animation.Celebration {
	if that.celebration == nil {
		return nil
	}

	return animation.NewCelebration(*that.celebration, that.options.Celebration, that.options.Theme)
}

func (that *Controller) CelebrationRecord() *entity.Celebration {
	if that.celebration == nil {
		return nil
	}

	record := *that.celebration
	return &record
}

func (that *Controller) State() entity.GameState {
	return that.game.State()
}

func (that *Controller) MaxScores() [2]int {
	return that.game.MaxScores()
}

func (that *Controller) CheckWinner() (entity.Player, bool) {
	return that.game.CheckWinner()
}

func (that *Controller) Size() int {
	return that.game.Size()
}

func (that *Controller) BoardText() string {
	return that.board.Render()
}

func (that *Controller) Snapshot(now time.Time) Snapshot {
	snapshot := Snapshot{
		Size:          that.game.Size(),
		CurrentPlayer: that.game.CurrentPlayer(),
		Board:         that.board.Marks(),
		Scores:        that.game.MaxScores(),
		ScoreLines:    that.score.Lines(),
		Status:        that.game.Status(),
		Celebrating:   that.Celebrating(now),
	}

	if winner, ok := that.game.CheckWinner(); ok {
		snapshot.Winner = &winner
	}

	return snapshot
}

func (that *Controller) startCelebration(winner entity.Player, now time.Time) bool {
	if that.celebration != nil {
		return false
	}

	seed := now.UnixNano()
	if that.options.Seed != nil {
		seed = that.options.Seed(now)
	}

	that.celebration = &entity.Celebration{
		Winner:    winner,
		StartedAt: now,
		Seed:      seed,
	}

	return true
}
