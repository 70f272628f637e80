package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type createRequest struct {
	Size int `json:"size"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Create handles POST /api/v1/games; the body is optional.
func (that *handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, "Create", fmt.Errorf("%w: malformed body", errInvalidRequest))
		return
	}

	game, err := that.games.CreateSession(r.Context(), req.Size)
	if err != nil {
		that.writeError(w, "Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

// Get handles GET /api/v1/games/{id}
func (that *handlers) Get(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "Get", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Click handles POST /api/v1/games/{id}/cells/{row}/{col}
func (that *handlers) Click(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		that.writeError(w, "Click", fmt.Errorf("%w: row must be a number", errInvalidRequest))
		return
	}

	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		that.writeError(w, "Click", fmt.Errorf("%w: col must be a number", errInvalidRequest))
		return
	}

	game, err := that.games.Click(r.Context(), vars["id"], row, col)
	if err != nil {
		that.writeError(w, "Click", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Reset handles POST /api/v1/games/{id}/reset
func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "Reset", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Celebration handles GET /api/v1/games/{id}/celebration?elapsed=<ms>.
// Without elapsed the frame for the current moment is returned; 204 before anybody has won.
func (that *handlers) Celebration(w http.ResponseWriter, r *http.Request) {
	elapsed := time.Duration(-1)

	if raw := r.URL.Query().Get("elapsed"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			that.writeError(w, "Celebration", fmt.Errorf("%w: elapsed must be a non-negative number of milliseconds", errInvalidRequest))
			return
		}

		elapsed = time.Duration(ms) * time.Millisecond
	}

	frame, err := that.games.Celebration(r.Context(), mux.Vars(r)["id"], elapsed)
	if err != nil {
		that.writeError(w, "Celebration", err)
		return
	}

	if frame == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, frame)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status, body := toAPIError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: body})
}
