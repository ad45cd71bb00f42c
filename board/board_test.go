package board

import (
	"testing"

	"github.com/matryer/is"
)

type squareTestStruct struct {
	row    int
	col    int
	square int
}

var squareTests = []squareTestStruct{
	{0, 1, 1},
	{0, 9, 5},
	{1, 0, 6},
	{1, 8, 10},
	{2, 5, 13},
	{6, 1, 31},
	{9, 8, 50},
}

func TestSquareNumbering(t *testing.T) {
	for _, tc := range squareTests {
		calc := Pos(tc.row, tc.col).Square()
		if calc != tc.square {
			t.Errorf("For row=%v col=%v got square %v, expected %v",
				tc.row, tc.col, calc, tc.square)
		}
	}
}

func TestFromSquareRoundTrip(t *testing.T) {
	is := is.New(t)
	for sq := 1; sq <= NumPlayable; sq++ {
		pos, ok := FromSquare(sq)
		is.True(ok)
		is.True(pos.Playable())
		is.Equal(pos.Square(), sq)
	}
	_, ok := FromSquare(0)
	is.True(!ok)
	_, ok = FromSquare(51)
	is.True(!ok)
}

func TestInitialSetup(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetupInitialPosition()
	is.Equal(b.Count(White), 20)
	is.Equal(b.Count(Black), 20)
	is.Equal(b.CountKind(White, King), 0)
	is.Equal(b.CountKind(Black, King), 0)
	// Blacks occupy squares 1..20, whites 31..50.
	for sq := 1; sq <= 20; sq++ {
		pos, _ := FromSquare(sq)
		is.Equal(b.PieceAt(pos), BlackPawn)
	}
	for sq := 21; sq <= 30; sq++ {
		pos, _ := FromSquare(sq)
		is.Equal(b.PieceAt(pos), Empty)
	}
	for sq := 31; sq <= 50; sq++ {
		pos, _ := FromSquare(sq)
		is.Equal(b.PieceAt(pos), WhitePawn)
	}
}

func TestUnplayableSquaresAbsorbed(t *testing.T) {
	is := is.New(t)
	b := New()
	is.True(!b.SetPiece(Pos(0, 0), WhitePawn)) // light square
	is.True(!b.SetPiece(Pos(-1, 3), WhitePawn))
	is.True(!b.SetPiece(Pos(3, 10), WhitePawn))
	is.Equal(b.PieceAt(Pos(0, 0)), Empty)
	is.Equal(b.PieceAt(Pos(12, 12)), Empty)
	is.Equal(b.TotalPieces(), 0)
}

func TestMovePiece(t *testing.T) {
	is := is.New(t)
	b := New()
	from, _ := FromSquare(31)
	to, _ := FromSquare(26)
	is.True(b.SetPiece(from, WhitePawn))
	is.True(b.MovePiece(from, to))
	is.Equal(b.PieceAt(from), Empty)
	is.Equal(b.PieceAt(to), WhitePawn)
	// source now empty; second move fails silently
	is.True(!b.MovePiece(from, to))
	// occupied destination fails
	other, _ := FromSquare(36)
	b.SetPiece(other, BlackPawn)
	is.True(!b.MovePiece(to, to))
	is.True(!b.MovePiece(other, to))
}

func TestPromote(t *testing.T) {
	is := is.New(t)
	b := New()
	pos, _ := FromSquare(3)
	is.True(!b.Promote(pos)) // nothing there
	b.SetPiece(pos, WhitePawn)
	is.True(b.Promote(pos))
	is.Equal(b.PieceAt(pos), WhiteKing)
	is.True(!b.Promote(pos)) // already a king
}

func TestPiecesOfScanOrder(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetupInitialPosition()
	blacks := b.PiecesOf(Black)
	is.Equal(len(blacks), 20)
	for i, pos := range blacks {
		is.Equal(pos.Square(), i+1)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetupInitialPosition()
	c := b.Copy()
	is.True(b.Equals(c))
	pos, _ := FromSquare(31)
	c.RemovePiece(pos)
	is.True(!b.Equals(c))
	is.Equal(b.PieceAt(pos), WhitePawn)
}

func TestCompactStringRoundTrip(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetupInitialPosition()
	pos, _ := FromSquare(28)
	b.SetPiece(pos, WhiteKing)
	s := b.CompactString()
	is.Equal(len(s), NumPlayable)
	c := New()
	is.True(c.SetFromCompactString(s))
	is.True(b.Equals(c))

	is.True(!c.SetFromCompactString("too short"))
	is.True(!c.SetFromCompactString(s[:49]+"x"))
	// failed parses must not mutate
	is.True(b.Equals(c))
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetupInitialPosition()
	c := b.Copy()
	is.Equal(b.Fingerprint(), c.Fingerprint())
	pos, _ := FromSquare(31)
	c.RemovePiece(pos)
	is.True(b.Fingerprint() != c.Fingerprint())
	// kings and pawns on the same square hash differently
	d := b.Copy()
	d.Promote(pos)
	is.True(b.Fingerprint() != d.Fingerprint())
}
