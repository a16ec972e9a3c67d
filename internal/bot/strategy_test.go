package bot

import (
	"testing"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestEngine(t *testing.T) *othello.Engine {
	t.Helper()

	engine, err := othello.New(othello.DefaultRules())
	require.NoError(t, err)

	return engine
}

// twoOffersBoard lets white capture three counters at (0,0) and one at (1,2).
func twoOffersBoard() *entity.Board {
	board := entity.NewBoard(8, 8)

	for x := 1; x <= 3; x++ {
		board.Cells[0][x] = entity.ColorBlack
	}
	board.Cells[0][4] = entity.ColorWhite
	board.Cells[2][2] = entity.ColorBlack
	board.Cells[2][3] = entity.ColorWhite

	return board
}

func TestForPlayer(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		player   *entity.Player
		expected Strategy
		err      error
	}{
		{
			name:     "Random bot",
			player:   &entity.Player{Color: entity.ColorWhite, Kind: entity.AIPlayerRandom},
			expected: &RandomChoice{},
		},
		{
			name:     "Greedy bot",
			player:   &entity.Player{Color: entity.ColorWhite, Kind: entity.AIPlayerMostCaptures},
			expected: &GreedyCapture{},
		},
		{
			name:   "Human seat",
			player: &entity.Player{Color: entity.ColorBlack, Kind: entity.HumanPlayer},
			err:    ErrNotABot,
		},
		{
			name:   "Unknown kind",
			player: &entity.Player{Color: entity.ColorBlack, Kind: "alien"},
			err:    ErrNotABot,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			strategy, err := ForPlayer(engine, test.player, rand.NewSource(1))

			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				assert.Nil(t, strategy)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, test.expected, strategy)
		})
	}

	t.Run("Greedy bot plays its own color", func(t *testing.T) {
		strategy, err := ForPlayer(engine, &entity.Player{Color: entity.ColorWhite, Kind: entity.AIPlayerMostCaptures}, rand.NewSource(1))
		require.NoError(t, err)

		greedy, ok := strategy.(*GreedyCapture)
		require.True(t, ok)
		assert.Equal(t, entity.ColorWhite, greedy.color)
	})
}

func TestRandomChoice_ChooseMove(t *testing.T) {
	candidates := []entity.Position{{X: 0, Y: 0}, {X: 3, Y: 5}, {X: 7, Y: 2}}

	t.Run("Always returns one of the candidates and reaches each of them", func(t *testing.T) {
		strategy := NewRandomChoice(rand.NewSource(42))
		seen := make(map[entity.Position]int)

		for range 200 {
			move, err := strategy.ChooseMove(candidates, nil)
			require.NoError(t, err)
			require.Contains(t, candidates, move)
			seen[move]++
		}

		assert.Len(t, seen, len(candidates))
	})

	t.Run("Same seed gives the same choices", func(t *testing.T) {
		first := NewRandomChoice(rand.NewSource(7))
		second := NewRandomChoice(rand.NewSource(7))

		for range 20 {
			a, err := first.ChooseMove(candidates, nil)
			require.NoError(t, err)
			b, err := second.ChooseMove(candidates, nil)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		}
	})

	t.Run("Error on empty candidates", func(t *testing.T) {
		strategy := NewRandomChoice(rand.NewSource(1))

		_, err := strategy.ChooseMove(nil, nil)

		require.ErrorIs(t, err, apperror.ErrNoCandidateMoves)
	})

	t.Run("Error on position outside the board", func(t *testing.T) {
		// Given: a candidate that is not on the board
		strategy := NewRandomChoice(rand.NewSource(1))
		outside := []entity.Position{{X: 3, Y: 5}, {X: 42, Y: -3}}

		// When: choosing among the candidates
		for range 10 {
			_, err := strategy.ChooseMove(outside, entity.NewBoard(8, 8))

			// Then: the whole list is rejected whichever candidate would be drawn
			require.ErrorIs(t, err, apperror.ErrInvalidPosition)
		}
	})
}

func TestGreedyCapture_ChooseMove(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("Picks the candidate with the most captures", func(t *testing.T) {
		// Given: candidates capturing 1, 3 and 0 counters
		board := twoOffersBoard()
		before := board.Clone()
		candidates := []entity.Position{{X: 1, Y: 2}, {X: 0, Y: 0}, {X: 7, Y: 7}}

		for seed := range uint64(20) {
			strategy := NewGreedyCapture(engine, entity.ColorWhite, rand.NewSource(seed))

			// When: choosing a move
			move, err := strategy.ChooseMove(candidates, board)

			// Then: the three-counter capture wins every time and the board is untouched
			require.NoError(t, err)
			assert.Equal(t, entity.Position{X: 0, Y: 0}, move)
		}

		assert.Equal(t, before, board)
	})

	t.Run("Breaks ties at random", func(t *testing.T) {
		// Given: two candidates that capture nothing
		board := twoOffersBoard()
		candidates := []entity.Position{{X: 7, Y: 7}, {X: 6, Y: 7}}
		seen := make(map[entity.Position]int)

		// When: choosing with many seeds
		for seed := range uint64(50) {
			strategy := NewGreedyCapture(engine, entity.ColorWhite, rand.NewSource(seed))

			move, err := strategy.ChooseMove(candidates, board)
			require.NoError(t, err)
			seen[move]++
		}

		// Then: both of them come up
		assert.Len(t, seen, 2)
	})

	t.Run("Ranks for its own color", func(t *testing.T) {
		// Given: black would capture nothing at (0,0)
		board := twoOffersBoard()
		strategy := NewGreedyCapture(engine, entity.ColorBlack, rand.NewSource(3))

		// When: black ranks it against (4,2) which captures (3,2)
		move, err := strategy.ChooseMove([]entity.Position{{X: 0, Y: 0}, {X: 4, Y: 2}}, board)

		// Then: the capturing move is chosen
		require.NoError(t, err)
		assert.Equal(t, entity.Position{X: 4, Y: 2}, move)
	})

	t.Run("Error on empty candidates", func(t *testing.T) {
		strategy := NewGreedyCapture(engine, entity.ColorWhite, rand.NewSource(1))

		_, err := strategy.ChooseMove([]entity.Position{}, twoOffersBoard())

		require.ErrorIs(t, err, apperror.ErrNoCandidateMoves)
	})

	t.Run("Error on an occupied candidate", func(t *testing.T) {
		strategy := NewGreedyCapture(engine, entity.ColorWhite, rand.NewSource(1))

		_, err := strategy.ChooseMove([]entity.Position{{X: 1, Y: 0}}, twoOffersBoard())

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}
