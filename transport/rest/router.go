package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-board/internal/animation"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

type gameUseCase interface {
	CreateSession(ctx context.Context, boardSize int) (*usecase.Game, error)
	GetSession(ctx context.Context, id string) (*usecase.Game, error)
	Click(ctx context.Context, id string, row, col int) (*usecase.Game, error)
	Reset(ctx context.Context, id string) (*usecase.Game, error)
	Celebration(ctx context.Context, id string, elapsed time.Duration) (*animation.CelebrationFrame, error)
}

// NewRouter - REST API over the hosted games.
func NewRouter(logger *slog.Logger, games gameUseCase) http.Handler {
	h := newHandlers(logger, games)

	r := mux.NewRouter()
	r.Use(recovery(h.logger))
	r.Use(logging(h.logger))

	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/games").Subrouter()
	api.HandleFunc("", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/{id}/cells/{row}/{col}", h.Click).Methods(http.MethodPost)
	api.HandleFunc("/{id}/reset", h.Reset).Methods(http.MethodPost)
	api.HandleFunc("/{id}/celebration", h.Celebration).Methods(http.MethodGet)

	return r
}
