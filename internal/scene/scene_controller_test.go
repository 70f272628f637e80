package scene

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newScene(t *testing.T) *Controller {
	t.Helper()

	options := DefaultOptions()
	options.Seed = func(time.Time) int64 { return 42 }

	controller, err := New(3, options)
	require.NoError(t, err)

	return controller
}

func winLeftColumn(t *testing.T, controller *Controller) Move {
	t.Helper()

	var move Move
	for _, c := range [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}} {
		var err error
		move, err = controller.HandleCellClick(c[0], c[1], start)
		require.NoError(t, err)
	}

	return move
}

func TestNew(t *testing.T) {
	t.Run("Views are drawn on creation", func(t *testing.T) {
		controller := newScene(t)

		snapshot := controller.Snapshot(start)

		assert.Equal(t, 3, snapshot.Size)
		assert.Equal(t, entity.PlayerOne, snapshot.CurrentPlayer)
		assert.Equal(t, entity.StatusOngoing, snapshot.Status)
		assert.Len(t, snapshot.ScoreLines, 2)
		assert.Equal(t, ". . .\n. . .\n. . .\n", controller.BoardText())
		assert.Nil(t, snapshot.Winner)
		assert.False(t, snapshot.Celebrating)
	})

	t.Run("Invalid board size", func(t *testing.T) {
		_, err := New(0, DefaultOptions())

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}

func TestController_HandleCellClick(t *testing.T) {
	t.Run("Claim plays the hit sound and redraws", func(t *testing.T) {
		// Given: a new scene
		controller := newScene(t)

		// When: the first player clicks a corner
		move, err := controller.HandleCellClick(0, 2, start)

		// Then: the move is reported and views show it
		require.NoError(t, err)
		assert.True(t, move.Claimed)
		assert.Equal(t, SoundHit, move.Sound)
		assert.Equal(t, entity.PlayerOne, move.Player)
		assert.Nil(t, move.Winner)
		assert.Equal(t, ". . O\n. . .\n. . .\n", controller.BoardText())
		assert.Equal(t, [2]int{1, 0}, controller.Snapshot(start).Scores)
	})

	t.Run("Claimed cell is ignored", func(t *testing.T) {
		controller := newScene(t)
		_, err := controller.HandleCellClick(1, 1, start)
		require.NoError(t, err)

		move, err := controller.HandleCellClick(1, 1, start)

		require.NoError(t, err)
		assert.False(t, move.Claimed)
		assert.Empty(t, move.Sound)
		assert.Equal(t, entity.PlayerTwo, controller.Snapshot(start).CurrentPlayer)
	})

	t.Run("Winning move starts the celebration", func(t *testing.T) {
		// Given: a new scene
		controller := newScene(t)

		// When: the first player completes the left column
		move := winLeftColumn(t, controller)

		// Then: the winner is reported and the celebration runs
		require.NotNil(t, move.Winner)
		assert.Equal(t, entity.PlayerOne, *move.Winner)
		assert.True(t, move.CelebrationStarted)

		snapshot := controller.Snapshot(start.Add(time.Second))
		assert.True(t, snapshot.Celebrating)
		assert.Equal(t, entity.StatusWon, snapshot.Status)
		assert.Equal(t, "Player 1 wins!", snapshot.ScoreLines[2].Text)

		record := controller.CelebrationRecord()
		require.NotNil(t, record)
		assert.Equal(t, entity.Celebration{Winner: entity.PlayerOne, StartedAt: start, Seed: 42}, *record)
	})

	t.Run("No claims after a win", func(t *testing.T) {
		// Given: a won game
		controller := newScene(t)
		winLeftColumn(t, controller)
		before := controller.State()

		// When: an empty cell is clicked
		_, err := controller.HandleCellClick(2, 2, start)

		// Then: ErrGameFinished and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, controller.State())
	})

	t.Run("Out of range click", func(t *testing.T) {
		controller := newScene(t)

		_, err := controller.HandleCellClick(3, 0, start)

		require.ErrorIs(t, err, apperror.ErrInvalidCoordinate)
	})
}

func TestController_Reset(t *testing.T) {
	t.Run("Reset is refused while celebrating", func(t *testing.T) {
		// Given: a game that was just won
		controller := newScene(t)
		winLeftColumn(t, controller)

		// When: reset is requested during the celebration
		err := controller.Reset(start.Add(time.Second))

		// Then: it is refused and the game stays won
		require.ErrorIs(t, err, apperror.ErrCelebrationInProgress)
		_, ok := controller.CheckWinner()
		assert.True(t, ok)
	})

	t.Run("Reset after the celebration", func(t *testing.T) {
		controller := newScene(t)
		winLeftColumn(t, controller)

		err := controller.Reset(start.Add(3 * time.Second))

		require.NoError(t, err)
		assert.Equal(t, entity.NewGameState(3), controller.State())
		assert.Nil(t, controller.CelebrationRecord())
		assert.Nil(t, controller.Celebration())
		assert.Equal(t, []string{"Player 1: 0", "Player 2: 0"}, lineTexts(controller.Snapshot(start).ScoreLines))
	})

	t.Run("Reset of a game in progress", func(t *testing.T) {
		controller := newScene(t)
		_, err := controller.HandleCellClick(0, 0, start)
		require.NoError(t, err)

		require.NoError(t, controller.Reset(start))
		assert.Equal(t, entity.NewGameState(3), controller.State())
	})
}

func TestRestore(t *testing.T) {
	// Given: a won game with a running celebration
	original := newScene(t)
	winLeftColumn(t, original)

	// When: it is restored from its state and celebration record
	restored, err := Restore(original.State(), original.CelebrationRecord(), DefaultOptions())
	require.NoError(t, err)

	// Then: the celebration is still running and frames match
	assert.True(t, restored.Celebrating(start.Add(time.Second)))
	assert.Equal(t, original.Celebration().Frame(time.Second).Banner, restored.Celebration().Frame(time.Second).Banner)
	assert.Equal(t, original.Snapshot(start), restored.Snapshot(start))
}

func lineTexts(lines []view.Line) []string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}

	return texts
}
