package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameMoves = "game:moves"
	actionGameLeave = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is what clients send.
type Payload struct {
	SessionID string                `json:"session_id,omitempty"`
	Opponent  entity.ControllerKind `json:"opponent,omitempty"`
	Position  *entity.Position      `json:"position,omitempty"`
}

// ResponsePayload is what the server sends back.
type ResponsePayload struct {
	Session *entity.Session `json:"session,omitempty"`
	Game    *entity.Game    `json:"game,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// MovesPayload answers game:moves. Moves is always present, empty when the seat cannot move.
type MovesPayload struct {
	Moves []entity.Position `json:"moves"`
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}
