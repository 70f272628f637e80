package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-board/pkg/identifier"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	CreateSession(ctx context.Context, boardSize int) (*usecase.Game, error)
	GetSession(ctx context.Context, id string) (*usecase.Game, error)
	Click(ctx context.Context, id string, row, col int) (*usecase.Game, error)
	Reset(ctx context.Context, id string) (*usecase.Game, error)
}

type Server struct {
	logger *slog.Logger
	games  gameUseCase

	handlers map[string]func(ctx context.Context, message *Message, c *client) error

	subscribersMutex sync.RWMutex
	subscribers      map[string]map[*client]struct{}
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,

		handlers:    make(map[string]func(context.Context, *Message, *client) error),
		subscribers: make(map[string]map[*client]struct{}),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionState] = server.handleState
	server.handlers[actionClick] = server.handleClick
	server.handlers[actionReset] = server.handleReset

	return server
}

// Handler - serves the upgrade endpoint at /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already cancelled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	key := req.Header.Get("Sec-WebSocket-Key")
	if !strings.EqualFold(req.Header.Get("Upgrade"), "websocket") || key == "" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking")
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	// deadlines set by the http server must not outlive the handshake
	_ = conn.SetDeadline(time.Time{})

	handshake := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + identifier.GenerateAcceptKey(key) + "\r\n\r\n"

	if _, err = bufrw.WriteString(handshake); err != nil {
		log.Error("failed to write handshake", "error", err)
		return
	}

	if err = bufrw.Flush(); err != nil {
		log.Error("failed to flush handshake", "error", err)
		return
	}

	log.Info("WebSocket connection established")

	c := newClient(bufrw)
	defer that.unsubscribe(c)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		reqBody, err := c.readMessage()
		if errors.Is(err, errConnectionClosed) {
			log.Info("client closed connection")
			return nil
		}

		if err != nil {
			return fmt.Errorf("error reading message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			_ = c.send(actionError, Payload{Error: "malformed message"})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			_ = c.send(message.Action, Payload{Error: "unknown action"})
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// subscribe - c follows one game at a time and receives every update to it.
func (that *Server) subscribe(sessionID string, c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	if c.sessionID != "" && c.sessionID != sessionID {
		that.removeLocked(c)
	}

	clients, ok := that.subscribers[sessionID]
	if !ok {
		clients = make(map[*client]struct{})
		that.subscribers[sessionID] = clients
	}

	clients[c] = struct{}{}
	c.sessionID = sessionID
}

func (that *Server) unsubscribe(c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	that.removeLocked(c)
}

func (that *Server) removeLocked(c *client) {
	clients, ok := that.subscribers[c.sessionID]
	if !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(that.subscribers, c.sessionID)
	}

	c.sessionID = ""
}

// broadcast - sends the game to everybody watching it.
func (that *Server) broadcast(action string, game *usecase.Game) {
	log := that.logger.With("method", "broadcast", "session", game.ID)

	that.subscribersMutex.RLock()
	clients := make([]*client, 0, len(that.subscribers[game.ID]))
	for c := range that.subscribers[game.ID] {
		clients = append(clients, c)
	}
	that.subscribersMutex.RUnlock()

	for _, c := range clients {
		if err := c.send(action, Payload{SessionID: game.ID, Game: game}); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}
