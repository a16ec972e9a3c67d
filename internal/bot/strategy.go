package bot

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"golang.org/x/exp/rand"
)

var ErrNotABot = errors.New("player is not controlled by a bot")

// Strategy picks the move of a computer-controlled seat from the candidates it is given.
type Strategy interface {
	ChooseMove(candidates []entity.Position, board *entity.Board) (entity.Position, error)
}

// ForPlayer returns the strategy that plays for the given seat.
func ForPlayer(engine *othello.Engine, player *entity.Player, src rand.Source) (Strategy, error) {
	switch player.Kind {
	case entity.AIPlayerRandom:
		return NewRandomChoice(src), nil
	case entity.AIPlayerMostCaptures:
		return NewGreedyCapture(engine, player.Color, src), nil
	case entity.HumanPlayer:
		return nil, fmt.Errorf("%w: %s", ErrNotABot, player.Color)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrNotABot, player.Kind)
	}
}

// picker is a rand.Rand safe for use by several games at once.
type picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newPicker(src rand.Source) *picker {
	return &picker{rnd: rand.New(src)}
}

func (that *picker) intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}
