package apperror

import "errors"

var (
	ErrInvalidCoordinate     = errors.New("invalid cell coordinate")
	ErrInvalidBoardSize      = errors.New("board size must be positive")
	ErrInvalidState          = errors.New("invalid game state")
	ErrGameFinished          = errors.New("game is already finished")
	ErrCelebrationInProgress = errors.New("victory celebration is still playing")
	ErrSessionNotFound       = errors.New("session not found")
)
