package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGames keeps hot seat games in memory.
type fakeGames struct {
	mu         sync.Mutex
	controller *othello.GameController
	sessions   map[string]*entity.Session
	games      map[string]*entity.Game
}

func newFakeGames(t *testing.T) *fakeGames {
	t.Helper()

	engine, err := othello.New(othello.DefaultRules())
	require.NoError(t, err)

	return &fakeGames{
		controller: othello.NewGameController(engine),
		sessions:   make(map[string]*entity.Session),
		games:      make(map[string]*entity.Game),
	}
}

func (that *fakeGames) GetOrCreateSession(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if session, ok := that.sessions[id]; ok {
		return session, nil
	}

	if id == "" {
		id = fmt.Sprintf("session-%d", len(that.sessions)+1)
	}

	that.sessions[id] = &entity.Session{ID: id}

	return that.sessions[id], nil
}

func (that *fakeGames) CreateGame(_ context.Context, sessionID string, opponent entity.ControllerKind) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := that.controller.NewGame("game-"+sessionID, sessionID, opponent)
	that.games[game.ID] = game
	that.sessions[sessionID].GameID = game.ID

	return game, nil
}

func (that *fakeGames) GetGameBySessionID(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameOf(sessionID)
}

func (that *fakeGames) ValidMoves(_ context.Context, sessionID string) ([]entity.Position, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameOf(sessionID)
	if err != nil {
		return nil, err
	}

	return that.controller.ValidMoves(game), nil
}

func (that *fakeGames) MakeTurn(_ context.Context, sessionID string, pos entity.Position) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameOf(sessionID)
	if err != nil {
		return nil, err
	}

	if _, err = that.controller.MakeTurn(game, game.Turn, pos); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *fakeGames) LeaveGame(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameOf(sessionID)
	if err != nil {
		return nil, err
	}

	delete(that.games, game.ID)
	that.sessions[sessionID].GameID = ""

	return game, nil
}

func (that *fakeGames) gameOf(sessionID string) (*entity.Game, error) {
	session, ok := that.sessions[sessionID]
	if !ok || session.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.games[session.GameID], nil
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	return dialWith(t, newFakeGames(t))
}

func dialWith(t *testing.T, uGame gameUseCase) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(New(logger, uGame).Handler(ctx))
	t.Cleanup(server.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	defer resp.Body.Close()

	require.NotEmpty(t, resp.Cookies())
	assert.Equal(t, sessionCookie, resp.Cookies()[0].Name)

	return conn
}

// reply holds any server payload along with its raw fields.
type reply struct {
	ResponsePayload
	MovesPayload

	fields map[string]json.RawMessage
}

func exchange(t *testing.T, conn *websocket.Conn, action string, payload any) (string, reply) {
	t.Helper()

	message := Message{Action: action}
	if payload != nil {
		message.Payload = mustMarshal(payload)
	}

	require.NoError(t, conn.WriteJSON(message))

	var response Message
	require.NoError(t, conn.ReadJSON(&response))

	var result reply
	require.NoError(t, json.Unmarshal(response.Payload, &result.ResponsePayload))
	require.NoError(t, json.Unmarshal(response.Payload, &result.MovesPayload))
	require.NoError(t, json.Unmarshal(response.Payload, &result.fields))

	return response.Action, result
}

// stuckGames reports no legal moves for any game.
type stuckGames struct {
	*fakeGames
}

func (that stuckGames) ValidMoves(context.Context, string) ([]entity.Position, error) {
	return nil, nil
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t)

	// Given: a connected client
	action, resp := exchange(t, conn, actionConnect, nil)
	require.Equal(t, actionConnect, action)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "session-1", resp.Session.ID)
	assert.Nil(t, resp.Game)

	// When: it starts a hot seat game
	action, resp = exchange(t, conn, actionGameNew, Payload{Opponent: entity.HumanPlayer})

	// Then: black is to move
	require.Equal(t, actionGameNew, action)
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Game)
	assert.Equal(t, entity.ColorBlack, resp.Game.Turn)

	// When: it asks for the moves
	_, resp = exchange(t, conn, actionGameMoves, nil)

	// Then: the four openings are listed
	assert.ElementsMatch(t, []entity.Position{{X: 3, Y: 5}, {X: 5, Y: 3}, {X: 4, Y: 2}, {X: 2, Y: 4}}, resp.Moves)

	// When: black plays
	_, resp = exchange(t, conn, actionGameTurn, Payload{Position: &entity.Position{X: 5, Y: 3}})

	// Then: white is to move
	require.Empty(t, resp.Error)
	assert.Equal(t, entity.ColorWhite, resp.Game.Turn)

	// When: the game is left
	_, resp = exchange(t, conn, actionGameLeave, nil)

	// Then: its last state is sent and there is nothing left to play
	require.NotNil(t, resp.Game)
	_, resp = exchange(t, conn, actionGameMoves, nil)
	assert.Equal(t, apperror.ErrNoActiveGames.Error(), resp.Error)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	_, resp := exchange(t, conn, actionGameNew, Payload{Opponent: entity.AIPlayerRandom})
	require.Empty(t, resp.Error)

	t.Run("Illegal move", func(t *testing.T) {
		_, resp := exchange(t, conn, actionGameTurn, Payload{Position: &entity.Position{X: 0, Y: 0}})

		assert.Equal(t, apperror.ErrIllegalMove.Error(), resp.Error)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		_, resp := exchange(t, conn, actionGameTurn, Payload{Position: &entity.Position{X: 3, Y: 3}})

		assert.Equal(t, apperror.ErrCellOccupied.Error(), resp.Error)
	})

	t.Run("Missing position", func(t *testing.T) {
		_, resp := exchange(t, conn, actionGameTurn, Payload{})

		assert.Equal(t, "position is required", resp.Error)
	})

	t.Run("Missing opponent", func(t *testing.T) {
		_, resp := exchange(t, conn, actionGameNew, Payload{})

		assert.Equal(t, "opponent is required", resp.Error)
	})

	t.Run("Unknown action", func(t *testing.T) {
		action, resp := exchange(t, conn, "game:join", nil)

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", resp.Error)
	})
}

func TestServer_NoMoves(t *testing.T) {
	// Given: a game where the seat to move cannot play
	conn := dialWith(t, stuckGames{fakeGames: newFakeGames(t)})
	_, resp := exchange(t, conn, actionGameNew, Payload{Opponent: entity.HumanPlayer})
	require.Empty(t, resp.Error)

	// When: the client asks for the moves
	action, resp := exchange(t, conn, actionGameMoves, nil)

	// Then: the reply carries an empty moves list
	assert.Equal(t, actionGameMoves, action)
	require.Contains(t, resp.fields, "moves")
	assert.JSONEq(t, "[]", string(resp.fields["moves"]))
	assert.Empty(t, resp.Moves)
}
