package othello

import (
	"testing"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(rules *Rules)
		wantErr bool
	}{
		{name: "Default rules", modify: func(*Rules) {}},
		{name: "Rectangular board", modify: func(rules *Rules) { rules.Width, rules.Height = 10, 6 }},
		{name: "Board too narrow", modify: func(rules *Rules) { rules.Width = 1 }, wantErr: true},
		{name: "Board too short", modify: func(rules *Rules) { rules.Height = 0 }, wantErr: true},
		{name: "Zero winning length", modify: func(rules *Rules) { rules.WinningSequenceLength = 0 }, wantErr: true},
		{name: "Zero minimum length", modify: func(rules *Rules) { rules.MinLengthCheckingValidMoves = 0 }, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rules := DefaultRules()
			test.modify(&rules)

			err := rules.Validate()

			if test.wantErr {
				require.ErrorIs(t, err, ErrInvalidRules)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("Keeps the rules", func(t *testing.T) {
		engine, err := New(DefaultRules())

		require.NoError(t, err)
		assert.Equal(t, Rules{
			Width:                       8,
			Height:                      8,
			WinningSequenceLength:       5,
			MinLengthCheckingValidMoves: 3,
		}, engine.Rules())
	})

	t.Run("Rejects invalid rules", func(t *testing.T) {
		rules := DefaultRules()
		rules.Width = -3

		engine, err := New(rules)

		require.ErrorIs(t, err, ErrInvalidRules)
		assert.Nil(t, engine)
	})
}

func TestEngine_NewBoard(t *testing.T) {
	t.Run("Standard board", func(t *testing.T) {
		engine := newTestEngine(t, 8, 8)

		board := engine.NewBoard(entity.ColorBlack, entity.ColorWhite)

		assert.Equal(t, boardFrom(t,
			"........",
			"........",
			"........",
			"...BW...",
			"...WB...",
			"........",
			"........",
			"........",
		), board)
	})

	t.Run("Small board", func(t *testing.T) {
		engine := newTestEngine(t, 4, 4)

		board := engine.NewBoard(entity.ColorWhite, entity.ColorBlack)

		assert.Equal(t, boardFrom(t,
			"....",
			".WB.",
			".BW.",
			"....",
		), board)
	})

	t.Run("Odd sized board", func(t *testing.T) {
		engine := newTestEngine(t, 5, 3)

		board := engine.NewBoard(entity.ColorBlack, entity.ColorWhite)

		assert.Equal(t, boardFrom(t,
			".BW..",
			".WB..",
			".....",
		), board)
	})
}
