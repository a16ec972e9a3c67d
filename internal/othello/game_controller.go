package othello

import (
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// TurnResult describes one completed placement.
type TurnResult struct {
	Color    entity.Color      `json:"color"`
	Position entity.Position   `json:"position"`
	Captures []entity.Position `json:"captures"`
	Skipped  []entity.Color    `json:"skipped,omitempty"`
}

// GameController runs placement cycles on a game: place, capture, check the end and
// hand the turn to the next seat that can move.
type GameController struct {
	engine *Engine
}

func NewGameController(engine *Engine) *GameController {
	return &GameController{engine: engine}
}

func (that *GameController) Engine() *Engine {
	return that.engine
}

// NewGame seats a human with black against an opponent of the given kind with white.
// Black moves first.
func (that *GameController) NewGame(id, ownerID string, opponent entity.ControllerKind) *entity.Game {
	players := []*entity.Player{
		{Color: entity.ColorBlack, Kind: entity.HumanPlayer},
		{Color: entity.ColorWhite, Kind: opponent},
	}

	game := entity.NewGame(id, ownerID, that.engine.NewBoard(entity.ColorBlack, entity.ColorWhite), players)
	game.AddMessage(turnMessage(game.Turn))

	return game
}

// ValidMoves returns the distinct valid moves of the seat to move.
func (that *GameController) ValidMoves(game *entity.Game) []entity.Position {
	if !game.IsOngoing() {
		return []entity.Position{}
	}

	return DistinctMoves(that.engine.ValidMoves(game.Board, game.Turn))
}

func (that *GameController) MakeTurn(game *entity.Game, color entity.Color, pos entity.Position) (*TurnResult, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if err := that.validateMove(game, color, pos); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	captures, err := that.engine.PlaceCounter(game.Board, color, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	game.AddMessage(fmt.Sprintf("Player %s placed counter at %s", color, pos))
	game.AddMessage(captureMessage(color, len(captures)))

	return &TurnResult{
		Color:    color,
		Position: pos,
		Captures: captures,
		Skipped:  that.updateGameStatus(game, color),
	}, nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(game *entity.Game, color entity.Color, pos entity.Position) error {
	if game.Turn != color {
		return apperror.ErrNotYourTurn
	}

	cell, err := game.Board.Cell(pos)
	if err != nil {
		return err
	}

	if !cell.IsEmpty() {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	valid, err := that.engine.IsValidMove(game.Board, color, pos)
	if err != nil {
		return err
	}

	if !valid {
		return fmt.Errorf("%w: %s", apperror.ErrIllegalMove, pos)
	}

	return nil
}

// updateGameStatus - finishes the game or passes the turn on, skipping seats without a
// valid move. It returns the skipped colors.
func (that *GameController) updateGameStatus(game *entity.Game, color entity.Color) []entity.Color {
	if result := that.engine.CheckTerminalState(game.Board); result.IsFinished() {
		finish(game, result)
		return nil
	}

	var skipped []entity.Color

	next := color
	for range game.Players {
		next = game.NextColor(next)

		if len(that.engine.ValidMoves(game.Board, next)) > 0 {
			for _, c := range skipped {
				game.AddMessage(fmt.Sprintf("Skip Turn for player %s", c))
			}

			game.Turn = next
			game.AddMessage(turnMessage(next))

			return skipped
		}

		skipped = append(skipped, next)
	}

	// nobody can move on a board that still has space
	game.AddMessage("No valid moves left")
	finish(game, ScoreByMajority(CountByColor(game.Board)))

	return skipped
}

func finish(game *entity.Game, result Result) {
	if result.Outcome == Win {
		game.Finish(result.Winner)
		game.AddMessage(fmt.Sprintf("Player %s Is the Winner!", result.Winner))

		return
	}

	game.Finish(entity.Tie)
	game.AddMessage("Game is a Draw!")
}

func turnMessage(color entity.Color) string {
	return fmt.Sprintf("Current Turn: %s", color)
}

func captureMessage(color entity.Color, count int) string {
	if count == 1 {
		return fmt.Sprintf("Player %s captured 1 counter", color)
	}

	return fmt.Sprintf("Player %s captured %d counters", color, count)
}
