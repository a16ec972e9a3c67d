package bot

import (
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"golang.org/x/exp/rand"
)

// GreedyCapture plays the candidate that flips the most counters. Equal ranks are broken
// at random.
type GreedyCapture struct {
	engine *othello.Engine
	color  entity.Color
	picker *picker
}

func NewGreedyCapture(engine *othello.Engine, color entity.Color, src rand.Source) *GreedyCapture {
	return &GreedyCapture{
		engine: engine,
		color:  color,
		picker: newPicker(src),
	}
}

func (that *GreedyCapture) ChooseMove(candidates []entity.Position, board *entity.Board) (entity.Position, error) {
	if len(candidates) == 0 {
		return entity.Position{}, apperror.ErrNoCandidateMoves
	}

	best := -1
	var top []entity.Position

	for _, candidate := range candidates {
		rank, err := that.engine.CaptureCount(board, that.color, candidate)
		if err != nil {
			return entity.Position{}, fmt.Errorf("failed to rank candidate %s: %w", candidate, err)
		}

		switch {
		case rank > best:
			best = rank
			top = append(top[:0], candidate)
		case rank == best:
			top = append(top, candidate)
		}
	}

	return top[that.picker.intn(len(top))], nil
}
