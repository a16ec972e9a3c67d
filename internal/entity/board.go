package entity

import (
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
)

// Board is a rectangular grid of cells addressed as Cells[y][x].
type Board struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Cells  [][]Color `json:"cells"`
}

func NewBoard(width, height int) *Board {
	cells := make([][]Color, height)
	for y := range cells {
		cells[y] = make([]Color, width)
	}

	return &Board{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

func (that *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < that.Width && pos.Y >= 0 && pos.Y < that.Height
}

// Cell returns the content of the cell at pos.
func (that *Board) Cell(pos Position) (Color, error) {
	if !that.InBounds(pos) {
		return EmptyCell, fmt.Errorf("%w: %s", apperror.ErrInvalidPosition, pos)
	}

	return that.Cells[pos.Y][pos.X], nil
}

// Place puts a counter of the given color on an empty cell.
func (that *Board) Place(pos Position, color Color) error {
	current, err := that.Cell(pos)
	if err != nil {
		return err
	}

	if !current.IsEmpty() {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	that.Cells[pos.Y][pos.X] = color

	return nil
}

// Flip hands an occupied cell over to a new owner.
func (that *Board) Flip(pos Position, color Color) error {
	current, err := that.Cell(pos)
	if err != nil {
		return err
	}

	if current.IsEmpty() {
		return fmt.Errorf("%w: %s", apperror.ErrCellEmpty, pos)
	}

	that.Cells[pos.Y][pos.X] = color

	return nil
}

func (that *Board) Clone() *Board {
	clone := NewBoard(that.Width, that.Height)
	for y := range that.Cells {
		copy(clone.Cells[y], that.Cells[y])
	}

	return clone
}
