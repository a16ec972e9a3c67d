package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/bot"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"github.com/rocketscienceinc/othello-backend/internal/repository"
	"golang.org/x/exp/rand"
)

var ErrUnknownOpponent = errors.New("unknown opponent kind")

type sessionRepoDep interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepoDep
	gameRepo    gameRepoDep
	controller  *othello.GameController

	// guards every change of a session's game, so placement cycles never overlap
	mu sync.Mutex

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// NewGameManager wires the use case. A zero seed seeds the bots from the clock.
func NewGameManager(logger *slog.Logger, sessionRepo sessionRepoDep, gameRepo gameRepoDep, controller *othello.GameController, seed uint64) *GameManager {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &GameManager{
		logger: logger,

		sessionRepo: sessionRepo,
		gameRepo:    gameRepo,
		controller:  controller,

		seeds: rand.New(rand.NewSource(seed)),
	}
}

// GetOrCreateSession returns the session with the given id. An empty id or an id the store
// no longer knows gets a fresh session.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id != "" {
		session, err := that.sessionRepo.GetByID(ctx, id)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session by id: %w", err)
		}
	}

	session := &entity.Session{ID: generateSessionID()}
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// CreateGame starts a new game for the session, replacing the one it was playing. The old
// game is dropped only after the new one is stored.
func (that *GameManager) CreateGame(ctx context.Context, sessionID string, opponent entity.ControllerKind) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame", "sessionID", sessionID)

	if !opponent.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, opponent)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	game := that.controller.NewGame(generateGameID(), session.ID, opponent)

	if err = that.playBots(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	previousGameID := session.GameID

	session.GameID = game.ID
	if err = that.updateSession(ctx, session); err != nil {
		session.GameID = previousGameID
		that.deleteGame(ctx, game.ID)

		return nil, err
	}

	if previousGameID != "" {
		that.deleteGame(ctx, previousGameID)
	}

	log.Info("game created", "gameID", game.ID, "opponent", opponent)

	return game, nil
}

func (that *GameManager) GetGameBySessionID(ctx context.Context, sessionID string) (*entity.Game, error) {
	session, err := that.getSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.GetGameByID(ctx, session.GameID)
}

func (that *GameManager) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ValidMoves lists the distinct cells the seat to move may play in the session's game.
func (that *GameManager) ValidMoves(ctx context.Context, sessionID string) ([]entity.Position, error) {
	game, err := that.GetGameBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return that.controller.ValidMoves(game), nil
}

// MakeTurn plays the human move at pos and then every bot move that follows it. When the
// game ends the session is released and the final state is returned.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, pos entity.Position) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.GetGameByID(ctx, session.GameID)
	if err != nil {
		return nil, err
	}

	if player := game.CurrentPlayer(); player != nil && player.IsBot() {
		return nil, apperror.ErrNotYourTurn
	}

	if _, err = that.controller.MakeTurn(game, game.Turn, pos); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.playBots(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		session.GameID = ""
		if err = that.updateSession(ctx, session); err != nil {
			return nil, err
		}

		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

// LeaveGame drops the session's game and returns its last state.
func (that *GameManager) LeaveGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	log := that.logger.With("method", "LeaveGame", "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.GetGameByID(ctx, session.GameID)
	if err != nil {
		return nil, err
	}

	that.deleteGame(ctx, game.ID)

	session.GameID = ""
	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	log.Info("session left game", "gameID", game.ID)

	return game, nil
}

// playBots moves for computer seats until a human is to move or the game is over.
func (that *GameManager) playBots(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "playBots", "gameID", game.ID)
	engine := that.controller.Engine()

	for game.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("bot turn interrupted: %w", err)
		}

		player := game.CurrentPlayer()
		if player == nil || !player.IsBot() {
			return nil
		}

		strategy, err := bot.ForPlayer(engine, player, rand.NewSource(that.nextSeed()))
		if err != nil {
			return fmt.Errorf("failed to pick bot strategy: %w", err)
		}

		move, err := strategy.ChooseMove(engine.ValidMoves(game.Board, player.Color), game.Board)
		if err != nil {
			return fmt.Errorf("bot failed to choose move: %w", err)
		}

		if _, err = that.controller.MakeTurn(game, player.Color, move); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		log.Debug("bot made turn", "color", player.Color, "kind", player.Kind, "position", move.String())
	}

	return nil
}

func (that *GameManager) nextSeed() uint64 {
	that.seedMu.Lock()
	defer that.seedMu.Unlock()

	return that.seeds.Uint64()
}

func (that *GameManager) getSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, id string) {
	log := that.logger.With("method", "deleteGame", "gameID", id)

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}
