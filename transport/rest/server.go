package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
)

const shutdownTimeout = 5 * time.Second

type gameReader interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type rulesEngine interface {
	ValidMoves(board *entity.Board, color entity.Color) []entity.Position
	CheckTerminalState(board *entity.Board) othello.Result
}

type Server struct {
	logger *slog.Logger
	router chi.Router
}

func New(logger *slog.Logger, games gameReader, engine rulesEngine) *Server {
	handler := &gameHandler{
		logger: logger,
		games:  games,
		engine: engine,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/ping", NewPingHandler().PingHandler)

	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", handler.GetGame)
		r.Get("/moves", handler.GetMoves)
		r.Get("/score", handler.GetScore)
	})

	return &Server{
		logger: logger,
		router: r,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
