package othello

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	DefaultBoardSize                   = 8
	DefaultWinningSequenceLength       = 5
	DefaultMinLengthCheckingValidMoves = 3
)

var ErrInvalidRules = errors.New("invalid rules")

// Rules holds the board size and thresholds of one game instance.
type Rules struct {
	Width                       int
	Height                      int
	WinningSequenceLength       int
	MinLengthCheckingValidMoves int
}

func DefaultRules() Rules {
	return Rules{
		Width:                       DefaultBoardSize,
		Height:                      DefaultBoardSize,
		WinningSequenceLength:       DefaultWinningSequenceLength,
		MinLengthCheckingValidMoves: DefaultMinLengthCheckingValidMoves,
	}
}

func (that Rules) Validate() error {
	if that.Width < 2 || that.Height < 2 {
		return fmt.Errorf("%w: board %dx%d is too small", ErrInvalidRules, that.Width, that.Height)
	}

	if that.WinningSequenceLength < 1 {
		return fmt.Errorf("%w: winning sequence length %d", ErrInvalidRules, that.WinningSequenceLength)
	}

	if that.MinLengthCheckingValidMoves < 1 {
		return fmt.Errorf("%w: min length checking valid moves %d", ErrInvalidRules, that.MinLengthCheckingValidMoves)
	}

	return nil
}

// Engine evaluates placements, captures and game end for boards built under its rules.
type Engine struct {
	rules Rules
}

func New(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	return &Engine{rules: rules}, nil
}

func (that *Engine) Rules() Rules {
	return that.rules
}

// NewBoard returns the starting board: the 2x2 center holds first on one diagonal and
// second on the other.
func (that *Engine) NewBoard(first, second entity.Color) *entity.Board {
	board := entity.NewBoard(that.rules.Width, that.rules.Height)

	cx, cy := that.rules.Width/2, that.rules.Height/2
	board.Cells[cy-1][cx-1] = first
	board.Cells[cy][cx] = first
	board.Cells[cy-1][cx] = second
	board.Cells[cy][cx-1] = second

	return board
}
