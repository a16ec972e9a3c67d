package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// Tie is stored as the winner of a drawn game.
	Tie Color = "-"

	MaxMessageCount = 13
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"owner_id"`
	Board    *Board    `json:"board"`
	Players  []*Player `json:"players"`
	Turn     Color     `json:"turn"`
	Winner   Color     `json:"winner"`
	Status   string    `json:"status"`
	Messages []string  `json:"messages"`
}

func NewGame(id, ownerID string, board *Board, players []*Player) *Game {
	var turn Color
	if len(players) > 0 {
		turn = players[0].Color
	}

	return &Game{
		ID:       id,
		OwnerID:  ownerID,
		Board:    board,
		Players:  players,
		Turn:     turn,
		Status:   StatusOngoing,
		Messages: []string{},
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == Tie
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Finish ends the game. A Tie winner marks a draw.
func (that *Game) Finish(winner Color) {
	that.Winner = winner
	that.Status = StatusFinished
	that.Turn = EmptyCell
}

func (that *Game) PlayerByColor(color Color) *Player {
	for _, player := range that.Players {
		if player.Color == color {
			return player
		}
	}

	return nil
}

func (that *Game) CurrentPlayer() *Player {
	return that.PlayerByColor(that.Turn)
}

// NextColor returns the color seated after the given one.
func (that *Game) NextColor(color Color) Color {
	for i, player := range that.Players {
		if player.Color == color {
			return that.Players[(i+1)%len(that.Players)].Color
		}
	}

	return EmptyCell
}

// AddMessage appends to the status log, skipping a repeat of the last line and keeping
// at most MaxMessageCount lines.
func (that *Game) AddMessage(message string) {
	if n := len(that.Messages); n > 0 && that.Messages[n-1] == message {
		return
	}

	that.Messages = append(that.Messages, message)
	if len(that.Messages) > MaxMessageCount {
		that.Messages = that.Messages[len(that.Messages)-MaxMessageCount:]
	}
}
