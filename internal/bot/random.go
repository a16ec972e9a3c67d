package bot

import (
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"golang.org/x/exp/rand"
)

// RandomChoice plays a uniformly random candidate.
type RandomChoice struct {
	picker *picker
}

func NewRandomChoice(src rand.Source) *RandomChoice {
	return &RandomChoice{picker: newPicker(src)}
}

// ChooseMove picks one of the candidates. With a board given, every candidate must lie on it.
func (that *RandomChoice) ChooseMove(candidates []entity.Position, board *entity.Board) (entity.Position, error) {
	if len(candidates) == 0 {
		return entity.Position{}, apperror.ErrNoCandidateMoves
	}

	if board != nil {
		for _, pos := range candidates {
			if !board.InBounds(pos) {
				return entity.Position{}, fmt.Errorf("%w: %s", apperror.ErrInvalidPosition, pos)
			}
		}
	}

	return candidates[that.picker.intn(len(candidates))], nil
}
