package othello

import "github.com/rocketscienceinc/othello-backend/internal/entity"

type Outcome int

const (
	NotFinished Outcome = iota
	Win
	Draw
)

func (that Outcome) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "not finished"
	}
}

// Result is the terminal state of a board. Winner is set only for a Win.
type Result struct {
	Outcome Outcome
	Winner  entity.Color
}

func (that Result) IsFinished() bool {
	return that.Outcome != NotFinished
}

// CheckTerminalState reports a win by an unbroken run of WinningSequenceLength counters
// along any line. Failing that, a full board is scored by majority.
func (that *Engine) CheckTerminalState(board *entity.Board) Result {
	if winner, ok := that.winningRun(board); ok {
		return Result{Outcome: Win, Winner: winner}
	}

	if HasEmptyCell(board) {
		return Result{Outcome: NotFinished}
	}

	return ScoreByMajority(CountByColor(board))
}

func (that *Engine) winningRun(board *entity.Board) (entity.Color, bool) {
	length := that.rules.WinningSequenceLength

	for sequence := range FilterByMinLength(Decompose(board), length) {
		// a sequence with fewer counters than the run length cannot hold a run
		if len(sequence)-countEmpty(sequence) < length {
			continue
		}

		for i := 0; i+length <= len(sequence); i++ {
			color := sequence[i].Cell
			if color.IsEmpty() {
				continue
			}

			if ownedBy(sequence[i:i+length], color) {
				return color, true
			}
		}
	}

	return entity.EmptyCell, false
}

// ScoreByMajority picks the color with strictly the most counters. A shared top count
// is a draw.
func ScoreByMajority(counts map[entity.Color]int) Result {
	var (
		best entity.Color
		top  int
		ties int
	)

	for color, count := range counts {
		switch {
		case count > top:
			best, top, ties = color, count, 0
		case count == top:
			ties++
		}
	}

	if top == 0 || ties > 0 {
		return Result{Outcome: Draw}
	}

	return Result{Outcome: Win, Winner: best}
}

// CountByColor counts the counters of every color on the board.
func CountByColor(board *entity.Board) map[entity.Color]int {
	counts := make(map[entity.Color]int)

	for _, row := range board.Cells {
		for _, cell := range row {
			if !cell.IsEmpty() {
				counts[cell]++
			}
		}
	}

	return counts
}

func HasEmptyCell(board *entity.Board) bool {
	for _, row := range board.Cells {
		for _, cell := range row {
			if cell.IsEmpty() {
				return true
			}
		}
	}

	return false
}

func countEmpty(sequence Sequence) int {
	count := 0
	for _, entry := range sequence {
		if entry.Cell.IsEmpty() {
			count++
		}
	}

	return count
}

func ownedBy(entries Sequence, color entity.Color) bool {
	for _, entry := range entries {
		if entry.Cell != color {
			return false
		}
	}

	return true
}
