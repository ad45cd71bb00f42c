package board

// Color of a piece, or of the side owning it. White sits on the high rows
// and advances toward row 0; Black advances toward row 9.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

type Kind int8

const (
	Pawn Kind = iota
	King
)

// Piece packs color and kind into a single signed byte: 0 is an empty
// square, positive is White, negative is Black, and the magnitude encodes
// the kind (1 = pawn, 2 = king). This keeps the board a flat copyable
// array.
type Piece int8

const (
	Empty     Piece = 0
	WhitePawn Piece = 1
	WhiteKing Piece = 2
	BlackPawn Piece = -1
	BlackKing Piece = -2
)

func MakePiece(c Color, k Kind) Piece {
	p := Piece(k) + 1
	if c == Black {
		return -p
	}
	return p
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) Color() Color {
	if p < 0 {
		return Black
	}
	return White
}

func (p Piece) Kind() Kind {
	if p < 0 {
		p = -p
	}
	return Kind(p - 1)
}

func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

// Rune returns the position-codec character for this piece: 'w'/'W' for a
// white pawn/king, 'b'/'B' for a black pawn/king, '.' when empty.
func (p Piece) Rune() rune {
	switch p {
	case WhitePawn:
		return 'w'
	case WhiteKing:
		return 'W'
	case BlackPawn:
		return 'b'
	case BlackKing:
		return 'B'
	}
	return '.'
}

// PieceFromRune is the inverse of Rune. The second value is false for any
// character that is not part of the codec alphabet.
func PieceFromRune(r rune) (Piece, bool) {
	switch r {
	case 'w':
		return WhitePawn, true
	case 'W':
		return WhiteKing, true
	case 'b':
		return BlackPawn, true
	case 'B':
		return BlackKing, true
	case '.':
		return Empty, true
	}
	return Empty, false
}
