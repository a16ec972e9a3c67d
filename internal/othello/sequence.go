package othello

import (
	"iter"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// SequenceEntry is a coordinate paired with the content the cell had when the board was
// decomposed. It is never re-read from the live board.
type SequenceEntry struct {
	X    int          `json:"x"`
	Y    int          `json:"y"`
	Cell entity.Color `json:"cell"`
}

func (that SequenceEntry) Position() entity.Position {
	return entity.Position{X: that.X, Y: that.Y}
}

// Sequence is one full row, column or maximal diagonal, in board order.
type Sequence []SequenceEntry

// PlayerSequence is a sequence together with the location of one of the player's
// counters in it.
type PlayerSequence struct {
	Sequence Sequence
	Location entity.Position
}

type sequencer interface {
	Entries() Sequence
}

func (that Sequence) Entries() Sequence {
	return that
}

func (that PlayerSequence) Entries() Sequence {
	return that.Sequence
}

// IndexOf returns the index of pos in the sequence, or -1.
func (that Sequence) IndexOf(pos entity.Position) int {
	for i, entry := range that {
		if entry.X == pos.X && entry.Y == pos.Y {
			return i
		}
	}

	return -1
}

func (that Sequence) HasEmpty() bool {
	for _, entry := range that {
		if entry.Cell.IsEmpty() {
			return true
		}
	}

	return false
}

type line struct {
	x, y   int
	dx, dy int
}

// lines lists the start and direction of every row, column, descending (\) diagonal and
// ascending (/) diagonal of a width x height board.
func lines(width, height int) []line {
	out := make([]line, 0, width+height+2*(width+height-1))

	for y := 0; y < height; y++ {
		out = append(out, line{x: 0, y: y, dx: 1})
	}

	for x := 0; x < width; x++ {
		out = append(out, line{x: x, y: 0, dy: 1})
	}

	for x := width - 1; x >= 0; x-- {
		out = append(out, line{x: x, y: 0, dx: 1, dy: 1})
	}
	for y := 1; y < height; y++ {
		out = append(out, line{x: 0, y: y, dx: 1, dy: 1})
	}

	for x := 0; x < width; x++ {
		out = append(out, line{x: x, y: 0, dx: -1, dy: 1})
	}
	for y := 1; y < height; y++ {
		out = append(out, line{x: width - 1, y: y, dx: -1, dy: 1})
	}

	return out
}

func walk(board *entity.Board, l line) Sequence {
	var sequence Sequence

	for x, y := l.x, l.y; board.InBounds(entity.Position{X: x, Y: y}); x, y = x+l.dx, y+l.dy {
		sequence = append(sequence, SequenceEntry{X: x, Y: y, Cell: board.Cells[y][x]})
	}

	return sequence
}

// Decompose converts every row, column and diagonal of the board into a sequence.
// The board is copied when Decompose is called, so ranging over the result any number
// of times reflects the board as it was at that moment.
func Decompose(board *entity.Board) iter.Seq[Sequence] {
	snapshot := board.Clone()

	return func(yield func(Sequence) bool) {
		for _, l := range lines(snapshot.Width, snapshot.Height) {
			if !yield(walk(snapshot, l)) {
				return
			}
		}
	}
}

// SequencesContaining yields the sequences passing through pos.
func SequencesContaining(board *entity.Board, pos entity.Position) iter.Seq[Sequence] {
	sequences := Decompose(board)

	return func(yield func(Sequence) bool) {
		for sequence := range sequences {
			if sequence.IndexOf(pos) >= 0 && !yield(sequence) {
				return
			}
		}
	}
}

// SequencesByPlayer yields one PlayerSequence for every counter of the given color in
// every sequence.
func SequencesByPlayer(board *entity.Board, color entity.Color) iter.Seq[PlayerSequence] {
	sequences := Decompose(board)

	return func(yield func(PlayerSequence) bool) {
		for sequence := range sequences {
			for _, entry := range sequence {
				if entry.Cell.IsEmpty() || entry.Cell != color {
					continue
				}

				if !yield(PlayerSequence{Sequence: sequence, Location: entry.Position()}) {
					return
				}
			}
		}
	}
}

// FilterByMinLength drops sequences shorter than n.
func FilterByMinLength[S sequencer](sequences iter.Seq[S], n int) iter.Seq[S] {
	return func(yield func(S) bool) {
		for s := range sequences {
			if len(s.Entries()) >= n && !yield(s) {
				return
			}
		}
	}
}

// FilterContainingEmpty keeps sequences with at least one empty entry.
func FilterContainingEmpty[S sequencer](sequences iter.Seq[S]) iter.Seq[S] {
	return func(yield func(S) bool) {
		for s := range sequences {
			if s.Entries().HasEmpty() && !yield(s) {
				return
			}
		}
	}
}
