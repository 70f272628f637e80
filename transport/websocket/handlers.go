package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

const (
	actionNewGame = "game:new"
	actionState   = "game:state"
	actionClick   = "game:click"
	actionReset   = "game:reset"
	actionError   = "error"
)

type Payload struct {
	SessionID string        `json:"session_id,omitempty"`
	Size      int           `json:"size,omitempty"`
	Row       *int          `json:"row,omitempty"`
	Col       *int          `json:"col,omitempty"`
	Game      *usecase.Game `json:"game,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	game, err := that.games.CreateSession(ctx, payloadReq.Size)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	that.subscribe(game.ID, c)

	if err = c.send(msg.Action, Payload{SessionID: game.ID, Game: game}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game created", "session", game.ID)

	return nil
}

func (that *Server) handleState(ctx context.Context, msg *Message, c *client) error {
	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	if payloadReq.SessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errSessionRequired)
	}

	game, err := that.games.GetSession(ctx, payloadReq.SessionID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	that.subscribe(game.ID, c)

	if err = c.send(msg.Action, Payload{SessionID: game.ID, Game: game}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleClick(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleClick")

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	if payloadReq.SessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errSessionRequired)
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendErrorResponse(c, msg.Action, errCellRequired)
	}

	game, err := that.games.Click(ctx, payloadReq.SessionID, *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	that.subscribe(game.ID, c)
	that.broadcast(msg.Action, game)

	log.Debug("cell clicked", "session", game.ID, "row", *payloadReq.Row, "col", *payloadReq.Col)

	return nil
}

// handleReset - the "r" key of the board.
func (that *Server) handleReset(ctx context.Context, msg *Message, c *client) error {
	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	if payloadReq.SessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errSessionRequired)
	}

	game, err := that.games.Reset(ctx, payloadReq.SessionID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err)
	}

	that.subscribe(game.ID, c)
	that.broadcast(msg.Action, game)

	return nil
}

var (
	errMalformedPayload = errors.New("malformed payload")
	errSessionRequired  = errors.New("session_id is required")
	errCellRequired     = errors.New("row and col are required")
)

func unmarshalPayload(msg *Message, payload *Payload) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return fmt.Errorf("%w: %w", errMalformedPayload, err)
	}

	return nil
}

// clientError - the text a client may see for err.
func clientError(err error) string {
	for _, known := range []error{
		errMalformedPayload,
		errSessionRequired,
		errCellRequired,
		apperror.ErrInvalidCoordinate,
		apperror.ErrInvalidBoardSize,
		apperror.ErrSessionNotFound,
		apperror.ErrGameFinished,
		apperror.ErrCelebrationInProgress,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}

func (that *Server) sendErrorResponse(c *client, action string, err error) error {
	if clientError(err) == "internal error" {
		that.logger.Error("request failed", "action", action, "error", err)
	}

	if sendErr := c.send(action, Payload{Error: clientError(err)}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	return nil
}
