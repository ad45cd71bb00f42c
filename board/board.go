// Package board implements the 10x10 international draughts board. It owns
// grid state only; rule logic lives in the movegen package.
package board

import (
	"strings"

	"github.com/cespare/xxhash"
)

const (
	// Dim is the board dimension.
	Dim = 10
	// NumPlayable is the number of dark (playable) squares.
	NumPlayable = Dim * Dim / 2
	// StartingRows is how many rows of pawns each side starts with.
	StartingRows = 4
)

// Board is a 10x10 grid of pieces. Every mutating method enforces the
// playable-square invariant: light squares stay empty, and writes to them
// (or off the board) are absorbed, returning false rather than panicking,
// since coordinates at this layer are always engine-internal.
type Board struct {
	squares [Dim * Dim]Piece
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

func idx(p Position) int {
	return p.Row*Dim + p.Col
}

// SetupInitialPosition clears the board and places the FMJD starting
// position: 20 black pawns on rows 0..3, 20 white pawns on rows 6..9.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for row := 0; row < StartingRows; row++ {
		for col := 0; col < Dim; col++ {
			pos := Pos(row, col)
			if pos.Playable() {
				b.squares[idx(pos)] = BlackPawn
			}
		}
	}
	for row := Dim - StartingRows; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			pos := Pos(row, col)
			if pos.Playable() {
				b.squares[idx(pos)] = WhitePawn
			}
		}
	}
}

func (b *Board) Clear() {
	for i := range b.squares {
		b.squares[i] = Empty
	}
}

// PieceAt returns the piece at pos, or Empty for unplayable or off-board
// positions.
func (b *Board) PieceAt(pos Position) Piece {
	if !pos.Playable() {
		return Empty
	}
	return b.squares[idx(pos)]
}

// SetPiece places a piece. Returns false without mutating anything if the
// target is not a playable square.
func (b *Board) SetPiece(pos Position, p Piece) bool {
	if !pos.Playable() {
		return false
	}
	b.squares[idx(pos)] = p
	return true
}

// RemovePiece empties a square. Returns false if the square was not
// playable or already empty.
func (b *Board) RemovePiece(pos Position) bool {
	if !pos.Playable() || b.squares[idx(pos)] == Empty {
		return false
	}
	b.squares[idx(pos)] = Empty
	return true
}

// MovePiece relocates the piece on from to to. It fails silently (returns
// false) if the source is empty, the destination is occupied, or either
// square is unplayable.
func (b *Board) MovePiece(from, to Position) bool {
	if !from.Playable() || !to.Playable() {
		return false
	}
	if b.squares[idx(from)] == Empty || b.squares[idx(to)] != Empty {
		return false
	}
	b.squares[idx(to)] = b.squares[idx(from)]
	b.squares[idx(from)] = Empty
	return true
}

// Promote turns the pawn on pos into a king in place. Fails if the square
// holds no piece or the piece is already a king.
func (b *Board) Promote(pos Position) bool {
	if !pos.Playable() {
		return false
	}
	p := b.squares[idx(pos)]
	if p == Empty || p.IsKing() {
		return false
	}
	b.squares[idx(pos)] = MakePiece(p.Color(), King)
	return true
}

// PiecesOf enumerates the positions of all pieces of the given color in a
// stable row-major scan order.
func (b *Board) PiecesOf(c Color) []Position {
	positions := make([]Position, 0, 20)
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			pos := Pos(row, col)
			if !pos.Playable() {
				continue
			}
			p := b.squares[idx(pos)]
			if p != Empty && p.Color() == c {
				positions = append(positions, pos)
			}
		}
	}
	return positions
}

// Count returns the number of pieces of the given color.
func (b *Board) Count(c Color) int {
	n := 0
	for _, p := range b.squares {
		if p != Empty && p.Color() == c {
			n++
		}
	}
	return n
}

// CountKind returns the number of pieces of the given color and kind.
func (b *Board) CountKind(c Color, k Kind) int {
	n := 0
	for _, p := range b.squares {
		if p != Empty && p.Color() == c && p.Kind() == k {
			n++
		}
	}
	return n
}

// TotalPieces counts all pieces on the board.
func (b *Board) TotalPieces() int {
	n := 0
	for _, p := range b.squares {
		if p != Empty {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{}
	nb.squares = b.squares
	return nb
}

// CopyFrom copies the contents of another board into this one.
func (b *Board) CopyFrom(other *Board) {
	b.squares = other.squares
}

// Equals reports whether two boards hold identical positions.
func (b *Board) Equals(other *Board) bool {
	return b.squares == other.squares
}

// CompactString renders the 50 playable squares in row-major order, one
// codec character per square. This is the board portion of the position
// encoding and also the preimage of Fingerprint.
func (b *Board) CompactString() string {
	var sb strings.Builder
	sb.Grow(NumPlayable)
	for sq := 1; sq <= NumPlayable; sq++ {
		pos, _ := FromSquare(sq)
		sb.WriteRune(b.squares[idx(pos)].Rune())
	}
	return sb.String()
}

// SetFromCompactString loads the board from a 50-character compact string.
// The board is only mutated if the whole string parses.
func (b *Board) SetFromCompactString(s string) bool {
	runes := []rune(s)
	if len(runes) != NumPlayable {
		return false
	}
	var squares [Dim * Dim]Piece
	for i, r := range runes {
		p, ok := PieceFromRune(r)
		if !ok {
			return false
		}
		pos, _ := FromSquare(i + 1)
		squares[idx(pos)] = p
	}
	b.squares = squares
	return true
}

// Fingerprint returns a 64-bit digest of the occupancy of every playable
// square. Distinct boards collide only if xxhash collides, which is
// practically impossible within a transposition table's working set.
func (b *Board) Fingerprint() uint64 {
	var buf [NumPlayable]byte
	for sq := 1; sq <= NumPlayable; sq++ {
		pos, _ := FromSquare(sq)
		buf[sq-1] = byte(b.squares[idx(pos)].Rune())
	}
	return xxhash.Sum64(buf[:])
}

// ToDisplayText renders the board for terminal display, white side at the
// bottom, with playable-square numbers along the right edge of each row.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	str.WriteString("\n    " + strings.Repeat("--", Dim) + "-\n")
	for row := 0; row < Dim; row++ {
		str.WriteString("   |")
		for col := 0; col < Dim; col++ {
			pos := Pos(row, col)
			if !pos.Playable() {
				str.WriteString("  ")
				continue
			}
			str.WriteRune(' ')
			p := b.squares[idx(pos)]
			if p == Empty {
				str.WriteRune('.')
			} else {
				str.WriteRune(p.Rune())
			}
		}
		first := Pos(row, 0)
		if !first.Playable() {
			first = Pos(row, 1)
		}
		str.WriteString(" |")
		str.WriteString(
			"  " + first.String() + "-" + Pos(row, Dim-1-((row+Dim)%2)).String())
		str.WriteRune('\n')
	}
	str.WriteString("    " + strings.Repeat("--", Dim) + "-\n")
	return str.String()
}
