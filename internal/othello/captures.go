package othello

import (
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

type captureCandidate struct {
	sequence Sequence
	index    int
}

// ResolveCaptures returns the opponent counters that a counter of color at pos flips.
// The counter must already be on the board; nothing is changed.
func (that *Engine) ResolveCaptures(board *entity.Board, color entity.Color, pos entity.Position) ([]entity.Position, error) {
	cell, err := board.Cell(pos)
	if err != nil {
		return nil, err
	}

	if cell.IsEmpty() || cell != color {
		return nil, fmt.Errorf("%w: %s is %q", apperror.ErrCellNotOwned, pos, cell)
	}

	// every candidate comes from the same snapshot, taken before any flip
	var candidates []captureCandidate
	for sequence := range SequencesContaining(board, pos) {
		i := sequence.IndexOf(pos)
		if isOpponent(sequence, i-1, color) || isOpponent(sequence, i+1, color) {
			candidates = append(candidates, captureCandidate{sequence: sequence, index: i})
		}
	}

	captures := make([]entity.Position, 0)
	for _, candidate := range candidates {
		for _, step := range directions {
			captures = append(captures, bracketed(candidate.sequence, candidate.index, step, color)...)
		}
	}

	return captures, nil
}

// ApplyCaptures flips every counter ResolveCaptures finds and returns them.
func (that *Engine) ApplyCaptures(board *entity.Board, color entity.Color, pos entity.Position) ([]entity.Position, error) {
	captures, err := that.ResolveCaptures(board, color, pos)
	if err != nil {
		return nil, err
	}

	for _, capture := range captures {
		if err = board.Flip(capture, color); err != nil {
			return nil, fmt.Errorf("failed to flip counter: %w", err)
		}
	}

	return captures, nil
}

// PlaceCounter puts a counter of color on an empty cell and flips what it captures.
func (that *Engine) PlaceCounter(board *entity.Board, color entity.Color, pos entity.Position) ([]entity.Position, error) {
	if err := board.Place(pos, color); err != nil {
		return nil, fmt.Errorf("failed to place counter: %w", err)
	}

	return that.ApplyCaptures(board, color, pos)
}

// CaptureCount returns how many counters a counter of color would capture if placed on
// the empty cell pos. The board is not changed.
func (that *Engine) CaptureCount(board *entity.Board, color entity.Color, pos entity.Position) (int, error) {
	cell, err := board.Cell(pos)
	if err != nil {
		return 0, err
	}

	if !cell.IsEmpty() {
		return 0, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	count := 0
	for sequence := range SequencesContaining(board, pos) {
		i := sequence.IndexOf(pos)
		for _, step := range directions {
			count += len(bracketed(sequence, i, step, color))
		}
	}

	return count, nil
}

// bracketed collects the opponent counters next to index i in the given direction when
// a counter of color closes the run. An empty cell or the end of the sequence leaves
// the run open and nothing is returned.
func bracketed(sequence Sequence, i, step int, color entity.Color) []entity.Position {
	var stack []entity.Position

	for p := i + step; p >= 0 && p < len(sequence); p += step {
		switch cell := sequence[p].Cell; {
		case cell.IsEmpty():
			return nil
		case cell == color:
			return stack
		default:
			stack = append(stack, sequence[p].Position())
		}
	}

	return nil
}
