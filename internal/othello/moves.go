package othello

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// directions are the two ways to walk along a sequence.
var directions = [2]int{-1, 1}

// ValidMoves returns every empty cell the player can outflank into. A cell reachable
// along several sequences is listed once per sequence; use DistinctMoves for a set.
func (that *Engine) ValidMoves(board *entity.Board, color entity.Color) []entity.Position {
	moves := make([]entity.Position, 0)

	occurrences := FilterContainingEmpty(
		FilterByMinLength(SequencesByPlayer(board, color), that.rules.MinLengthCheckingValidMoves),
	)

	for occurrence := range occurrences {
		n := occurrence.Sequence.IndexOf(occurrence.Location)

		for _, step := range directions {
			if pos, ok := outflank(occurrence.Sequence, n, step, color); ok {
				moves = append(moves, pos)
			}
		}
	}

	return moves
}

// IsValidMove reports whether pos is among the player's valid moves.
func (that *Engine) IsValidMove(board *entity.Board, color entity.Color, pos entity.Position) (bool, error) {
	if !board.InBounds(pos) {
		return false, fmt.Errorf("%w: %s", apperror.ErrInvalidPosition, pos)
	}

	return slices.Contains(that.ValidMoves(board, color), pos), nil
}

// DistinctMoves removes repeated positions, keeping the first occurrence of each.
func DistinctMoves(moves []entity.Position) []entity.Position {
	seen := make(map[entity.Position]struct{}, len(moves))
	distinct := make([]entity.Position, 0, len(moves))

	for _, move := range moves {
		if _, ok := seen[move]; ok {
			continue
		}

		seen[move] = struct{}{}
		distinct = append(distinct, move)
	}

	return distinct
}

// outflank walks from index n across a run of opponent counters and returns the empty
// cell that ends the run. A counter of color or the end of the sequence ends the walk
// with nothing.
func outflank(sequence Sequence, n, step int, color entity.Color) (entity.Position, bool) {
	i := n + step
	if !isOpponent(sequence, i, color) {
		return entity.Position{}, false
	}

	for i += step; i >= 0 && i < len(sequence); i += step {
		switch cell := sequence[i].Cell; {
		case cell.IsEmpty():
			return sequence[i].Position(), true
		case cell == color:
			return entity.Position{}, false
		}
	}

	return entity.Position{}, false
}

func isOpponent(sequence Sequence, i int, color entity.Color) bool {
	return i >= 0 && i < len(sequence) && !sequence[i].Cell.IsEmpty() && sequence[i].Cell != color
}
