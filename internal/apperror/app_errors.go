package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoActiveGames    = errors.New("no active games")
	ErrInvalidPosition  = errors.New("position is outside the board")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellEmpty        = errors.New("cell is empty")
	ErrCellNotOwned     = errors.New("cell is not owned by player")
	ErrIllegalMove      = errors.New("move does not outflank any counter")
	ErrNoCandidateMoves = errors.New("no candidate moves")
)
