package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"github.com/rocketscienceinc/othello-backend/internal/repository"
)

type MovesResponse struct {
	Color entity.Color      `json:"color"`
	Moves []entity.Position `json:"moves"`
}

type ScoreResponse struct {
	Counts       map[entity.Color]int `json:"counts"`
	HasEmptyCell bool                 `json:"has_empty_cell"`
	Outcome      string               `json:"outcome"`
	Winner       entity.Color         `json:"winner,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type gameHandler struct {
	logger *slog.Logger
	games  gameReader
	engine rulesEngine
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := that.loadGame(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// GetMoves lists the distinct valid moves of ?color=, or of the seat to move when omitted.
func (that *gameHandler) GetMoves(w http.ResponseWriter, r *http.Request) {
	game, ok := that.loadGame(w, r)
	if !ok {
		return
	}

	color := entity.Color(r.URL.Query().Get("color"))
	if color.IsEmpty() {
		color = game.Turn
	}

	if game.PlayerByColor(color) == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "color is not seated in this game"})
		return
	}

	moves := []entity.Position{}
	if game.IsOngoing() {
		moves = othello.DistinctMoves(that.engine.ValidMoves(game.Board, color))
	}

	writeJSON(w, http.StatusOK, MovesResponse{Color: color, Moves: moves})
}

func (that *gameHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	game, ok := that.loadGame(w, r)
	if !ok {
		return
	}

	result := that.engine.CheckTerminalState(game.Board)

	writeJSON(w, http.StatusOK, ScoreResponse{
		Counts:       othello.CountByColor(game.Board),
		HasEmptyCell: othello.HasEmptyCell(game.Board),
		Outcome:      result.Outcome.String(),
		Winner:       result.Winner,
	})
}

func (that *gameHandler) loadGame(w http.ResponseWriter, r *http.Request) (*entity.Game, bool) {
	id := chi.URLParam(r, "id")

	game, err := that.games.GetGameByID(r.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "game not found"})
		return nil, false
	}

	if err != nil {
		that.logger.Error("failed to get game", "gameID", id, "requestID", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})

		return nil, false
	}

	return game, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
