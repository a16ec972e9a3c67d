package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/usecase"
)

// playerErrors are shown to the client as they are. Anything else is reported generically.
var playerErrors = []error{
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNoActiveGames,
	apperror.ErrInvalidPosition,
	apperror.ErrCellOccupied,
	apperror.ErrIllegalMove,
	usecase.ErrUnknownOpponent,
}

func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		c.sendError(msg.Action, "malformed payload")
		return err
	}

	if payloadReq.SessionID != "" && payloadReq.SessionID != c.sessionID {
		session, err := that.uGame.GetOrCreateSession(ctx, payloadReq.SessionID)
		if err != nil {
			c.sendError(msg.Action, "failed to get session")
			return fmt.Errorf("failed to get session: %w", err)
		}

		c.sessionID = session.ID
	}

	session, err := that.uGame.GetOrCreateSession(ctx, c.sessionID)
	if err != nil {
		c.sendError(msg.Action, "failed to get session")
		return fmt.Errorf("failed to get session: %w", err)
	}

	payloadResp := ResponsePayload{Session: session}

	if session.GameID != "" {
		game, err := that.uGame.GetGameBySessionID(ctx, session.ID)
		if err != nil {
			log.Warn("failed to restore game", "sessionID", session.ID, "error", err)
		} else {
			payloadResp.Game = game
		}
	}

	c.sendMessage(msg.Action, payloadResp)

	log.Info("session connected", "sessionID", session.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		c.sendError(msg.Action, "malformed payload")
		return err
	}

	if payloadReq.Opponent == "" {
		c.sendError(msg.Action, "opponent is required")
		return nil
	}

	game, err := that.uGame.CreateGame(ctx, c.sessionID, payloadReq.Opponent)
	if err != nil {
		c.sendError(msg.Action, clientError(err, "failed to create a new game"))
		return fmt.Errorf("failed to create game: %w", err)
	}

	c.sendMessage(msg.Action, ResponsePayload{Game: game})

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		c.sendError(msg.Action, "malformed payload")
		return err
	}

	if payloadReq.Position == nil {
		c.sendError(msg.Action, "position is required")
		return nil
	}

	game, err := that.uGame.MakeTurn(ctx, c.sessionID, *payloadReq.Position)
	if err != nil {
		c.sendError(msg.Action, clientError(err, "failed to make turn"))
		return fmt.Errorf("failed to make turn: %w", err)
	}

	c.sendMessage(msg.Action, ResponsePayload{Game: game})

	return nil
}

func (that *Server) handleGameMoves(ctx context.Context, c *client, msg *Message) error {
	moves, err := that.uGame.ValidMoves(ctx, c.sessionID)
	if err != nil {
		c.sendError(msg.Action, clientError(err, "failed to list moves"))
		return fmt.Errorf("failed to list moves: %w", err)
	}

	if moves == nil {
		moves = []entity.Position{}
	}

	c.sendMessage(msg.Action, MovesPayload{Moves: moves})

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, c *client, msg *Message) error {
	game, err := that.uGame.LeaveGame(ctx, c.sessionID)
	if err != nil {
		c.sendError(msg.Action, clientError(err, "failed to leave game"))
		return fmt.Errorf("failed to leave game: %w", err)
	}

	c.sendMessage(msg.Action, ResponsePayload{Game: game})

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

func clientError(err error, fallback string) string {
	for _, known := range playerErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return fallback
}
