package entity

import "fmt"

// Color is the ownership key of a counter. Two counters belong to the same owner only if
// their colors are equal.
type Color string

const (
	ColorBlack Color = "black"
	ColorWhite Color = "white"

	EmptyCell Color = ""
)

// ControllerKind tells who moves for a seat. It never takes part in rule decisions.
type ControllerKind string

const (
	HumanPlayer          ControllerKind = "human"
	AIPlayerRandom       ControllerKind = "ai-random"
	AIPlayerMostCaptures ControllerKind = "ai-most-captures"
)

// Player is one seat at the table.
type Player struct {
	Color Color          `json:"color"`
	Kind  ControllerKind `json:"kind"`
}

// Session is the client that drives a game. It controls every human seat of that game.
type Session struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Color) IsEmpty() bool {
	return that == EmptyCell
}

func (that Color) Opponent() Color {
	switch that {
	case ColorBlack:
		return ColorWhite
	case ColorWhite:
		return ColorBlack
	default:
		return EmptyCell
	}
}

func (that *Player) IsBot() bool {
	return that.Kind != HumanPlayer
}

func (that Position) String() string {
	return fmt.Sprintf("%d, %d", that.X, that.Y)
}

func (that ControllerKind) IsValid() bool {
	switch that {
	case HumanPlayer, AIPlayerRandom, AIPlayerMostCaptures:
		return true
	default:
		return false
	}
}
