package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	sessionCookie   = "user_session"
	idlePing        = 30 * time.Second
	sendBuffer      = 16
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)

	CreateGame(ctx context.Context, sessionID string, opponent entity.ControllerKind) (*entity.Game, error)
	GetGameBySessionID(ctx context.Context, sessionID string) (*entity.Game, error)
	ValidMoves(ctx context.Context, sessionID string) ([]entity.Position, error)

	MakeTurn(ctx context.Context, sessionID string, pos entity.Position) (*entity.Game, error)
	LeaveGame(ctx context.Context, sessionID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	uGame    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame gameUseCase) *Server {
	server := &Server{
		logger: logger,
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:   server.handleConnect,
		actionGameNew:   server.handleNewGame,
		actionGameTurn:  server.handleGameTurn,
		actionGameMoves: server.handleGameMoves,
		actionGameLeave: server.handleGameLeave,
	}

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return r
}

// Start - starts WebSocket server and stops it when ctx is canceled.
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

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - binds the request to a session and upgrades the connection.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	var sessionID string
	if cookie, err := req.Cookie(sessionCookie); err == nil {
		sessionID = cookie.Value
	}

	session, err := that.uGame.GetOrCreateSession(req.Context(), sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	header := http.Header{}
	header.Add("Set-Cookie", (&http.Cookie{
		Name:    sessionCookie,
		Value:   session.ID,
		Expires: time.Now().Add(24 * time.Hour),
		Path:    "/ws",
	}).String())

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn:      conn,
		sessionID: session.ID,
		send:      make(chan []byte, sendBuffer),
	}

	log.Info("WebSocket connection established", "sessionID", session.ID)

	go func() {
		if err := c.writeWithHeartbeat(); err != nil {
			log.Debug("writer stopped", "error", err)
			_ = conn.Close()

			// unblock the reader until it notices the closed connection
			for range c.send {
			}
		}
	}()

	if err = that.handleMessages(ctx, c); err != nil {
		log.Info("connection closed", "sessionID", c.sessionID, "error", err)
	}

	close(c.send)
	_ = conn.Close()
}

// handleMessages - processes messages from the client until the connection drops.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			c.sendError("", "malformed message")

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			c.sendError(message.Action, "unknown action")

			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

type client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

func (that *client) sendMessage(action string, payload any) {
	that.send <- mustMarshal(Message{
		Action:  action,
		Payload: mustMarshal(payload),
	})
}

func (that *client) sendError(action, errorMsg string) {
	that.sendMessage(action, ResponsePayload{Error: errorMsg})
}

// writeWithHeartbeat - writes queued messages and pings an idle connection.
func (that *client) writeWithHeartbeat() error {
	ticker := time.NewTicker(idlePing)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-that.send:
			if !ok {
				return nil
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return fmt.Errorf("failed to ping: %w", err)
			}
		}
	}
}
