package board

import "fmt"

// A Position is a (row, col) coordinate on the 10x10 grid. Only the dark
// squares, those where row+col is odd, are playable; there are 50 of them
// and they carry the standard numbering 1..50, row-major.
type Position struct {
	Row, Col int
}

func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < Dim && p.Col >= 0 && p.Col < Dim
}

func (p Position) Playable() bool {
	return p.OnBoard() && (p.Row+p.Col)%2 == 1
}

// Square returns the 1-based playable-square number for this position, or 0
// if the position is not playable.
func (p Position) Square() int {
	if !p.Playable() {
		return 0
	}
	return p.Row*(Dim/2) + p.Col/2 + 1
}

func (p Position) String() string {
	if sq := p.Square(); sq != 0 {
		return fmt.Sprintf("%d", sq)
	}
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// FromSquare converts a 1-based playable-square number back to a grid
// position. The second return value is false for numbers outside 1..50.
func FromSquare(sq int) (Position, bool) {
	if sq < 1 || sq > NumPlayable {
		return Position{}, false
	}
	sq--
	row := sq / (Dim / 2)
	col := (sq % (Dim / 2)) * 2
	if row%2 == 0 {
		col++
	}
	return Position{Row: row, Col: col}, true
}
