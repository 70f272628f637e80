package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	codeInvalidRequest       = "INVALID_REQUEST"
	codeInvalidCoordinate    = "INVALID_COORDINATE"
	codeInvalidBoardSize     = "INVALID_BOARD_SIZE"
	codeSessionNotFound      = "SESSION_NOT_FOUND"
	codeGameFinished         = "GAME_FINISHED"
	codeCelebrationInProcess = "CELEBRATION_IN_PROGRESS"
	codeInternal             = "INTERNAL_ERROR"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

var errInvalidRequest = errors.New("invalid request")

// toAPIError - maps application errors to a status and a stable error code.
func toAPIError(err error) (int, apiError) {
	switch {
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, apiError{codeInvalidRequest, err.Error()}
	case errors.Is(err, apperror.ErrInvalidCoordinate):
		return http.StatusBadRequest, apiError{codeInvalidCoordinate, apperror.ErrInvalidCoordinate.Error()}
	case errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest, apiError{codeInvalidBoardSize, apperror.ErrInvalidBoardSize.Error()}
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound, apiError{codeSessionNotFound, apperror.ErrSessionNotFound.Error()}
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict, apiError{codeGameFinished, apperror.ErrGameFinished.Error()}
	case errors.Is(err, apperror.ErrCelebrationInProgress):
		return http.StatusConflict, apiError{codeCelebrationInProcess, apperror.ErrCelebrationInProgress.Error()}
	default:
		return http.StatusInternalServerError, apiError{codeInternal, "Internal Server Error"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
