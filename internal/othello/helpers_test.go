package othello

import (
	"testing"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from rows of 'B' (black), 'W' (white) and '.' (empty).
func boardFrom(t *testing.T, rows ...string) *entity.Board {
	t.Helper()

	require.NotEmpty(t, rows)
	board := entity.NewBoard(len(rows[0]), len(rows))

	for y, row := range rows {
		require.Len(t, row, board.Width, "row %d", y)

		for x, c := range row {
			switch c {
			case 'B':
				board.Cells[y][x] = entity.ColorBlack
			case 'W':
				board.Cells[y][x] = entity.ColorWhite
			case '.':
			default:
				t.Fatalf("unexpected cell %q at %d,%d", c, x, y)
			}
		}
	}

	return board
}

func newTestEngine(t *testing.T, width, height int) *Engine {
	t.Helper()

	rules := DefaultRules()
	rules.Width, rules.Height = width, height

	engine, err := New(rules)
	require.NoError(t, err)

	return engine
}

func pos(x, y int) entity.Position {
	return entity.Position{X: x, Y: y}
}
