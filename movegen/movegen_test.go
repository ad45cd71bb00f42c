package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/move"
)

func sq(t *testing.T, n int) board.Position {
	t.Helper()
	pos, ok := board.FromSquare(n)
	if !ok {
		t.Fatalf("bad square %d", n)
	}
	return pos
}

// place sets up a board from square-number lists, one per piece type.
func place(t *testing.T, whitePawns, whiteKings, blackPawns, blackKings []int) *board.Board {
	t.Helper()
	b := board.New()
	for _, n := range whitePawns {
		b.SetPiece(sq(t, n), board.MakePiece(board.White, board.Pawn))
	}
	for _, n := range whiteKings {
		b.SetPiece(sq(t, n), board.MakePiece(board.White, board.King))
	}
	for _, n := range blackPawns {
		b.SetPiece(sq(t, n), board.MakePiece(board.Black, board.Pawn))
	}
	for _, n := range blackKings {
		b.SetPiece(sq(t, n), board.MakePiece(board.Black, board.King))
	}
	return b
}

func TestInitialPositionMoveCount(t *testing.T) {
	is := is.New(t)
	b := board.New()
	b.SetupInitialPosition()
	gen := NewGenerator(FMJDRules())

	white := gen.GenAll(b, board.White)
	is.Equal(len(white), 9)
	for _, m := range white {
		is.True(!m.IsCapture())
	}
	black := gen.GenAll(b, board.Black)
	is.Equal(len(black), 9)
}

func TestCaptureIsMandatory(t *testing.T) {
	is := is.New(t)
	// White pawn on 28 must take the black pawn on 22; the pawn on 45
	// has quiet moves but they are all suppressed.
	b := place(t, []int{28, 45}, nil, []int{22}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].From, sq(t, 28))
	is.Equal(moves[0].To, sq(t, 17))
	is.Equal(len(moves[0].Captures), 1)
	is.Equal(moves[0].Captures[0], sq(t, 22))
}

func TestMajorityCapturePoolsAcrossPieces(t *testing.T) {
	is := is.New(t)
	// The pawn on 28 can take one piece, the pawn on 33 can take two.
	// Only the longer sequence survives, even though it belongs to a
	// different piece.
	b := place(t, []int{28, 33}, nil, []int{22, 29, 19}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.Equal(m.From, sq(t, 33))
	is.Equal(m.To, sq(t, 13))
	is.Equal(len(m.Captures), 2)
	is.Equal(m.ShortDescription(), "33x24x13")
}

func TestEqualMaximalCapturesBothLegal(t *testing.T) {
	is := is.New(t)
	b := place(t, []int{28}, nil, []int{22, 23}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 2)
	for _, m := range moves {
		is.Equal(len(m.Captures), 1)
		is.Equal(m.From, sq(t, 28))
	}
}

func TestCaptureLandingOnBackRowPromotes(t *testing.T) {
	is := is.New(t)
	b := place(t, []int{13}, nil, []int{8}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].To, sq(t, 2))
	is.True(moves[0].IsPromotion)
}

func TestPassingOverBackRowDoesNotPromote(t *testing.T) {
	is := is.New(t)
	// 13x2x11: the pawn touches the back row mid-sequence but must keep
	// capturing as a pawn, so it does not promote.
	b := place(t, []int{13}, nil, []int{8, 7}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.Equal(m.To, sq(t, 11))
	is.Equal(len(m.Captures), 2)
	is.True(!m.IsPromotion)
}

func TestCircularCaptureCannotRetakeSamePiece(t *testing.T) {
	is := is.New(t)
	// Four black pawns ring the white pawn on 28. The full tour returns
	// to the starting square, which counts as vacated, and the pieces
	// already taken stay on the board but cannot be taken twice.
	b := place(t, []int{28}, nil, []int{22, 12, 13, 23}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 2) // clockwise and counterclockwise
	for _, m := range moves {
		is.Equal(m.From, sq(t, 28))
		is.Equal(m.To, sq(t, 28))
		is.Equal(len(m.Captures), 4)
	}
}

func TestPawnCapturesBackward(t *testing.T) {
	is := is.New(t)
	// The black pawn on 22 sits behind the white pawn on 17 relative to
	// White's direction of travel; pawns still capture it.
	b := place(t, []int{17}, nil, []int{22}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].To, sq(t, 28))
	is.Equal(len(moves[0].Captures), 1)
}

func TestFlyingKingLandingChoices(t *testing.T) {
	is := is.New(t)
	// King on 46, lone black pawn on 32 along the long ray: the king may
	// stop on any of the six free squares past the victim.
	b := place(t, nil, []int{46}, []int{32}, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 6)
	for _, m := range moves {
		is.Equal(len(m.Captures), 1)
		is.Equal(m.Captures[0], sq(t, 32))
	}
}

func TestFlyingKingQuietMoves(t *testing.T) {
	is := is.New(t)
	b := place(t, nil, []int{28}, nil, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 17)
}

func TestPawnQuietMovePromotes(t *testing.T) {
	is := is.New(t)
	b := place(t, []int{7}, nil, nil, nil)
	gen := NewGenerator(FMJDRules())

	moves := gen.GenAll(b, board.White)
	is.Equal(len(moves), 2)
	for _, m := range moves {
		is.True(m.IsPromotion)
	}
}

func TestNoLegalMovesWhenBlocked(t *testing.T) {
	is := is.New(t)
	// White pawn on 46 in the corner, boxed in by a black pawn on 41
	// with black support behind it on 37, so the capture landing is
	// occupied too.
	b := place(t, []int{46}, nil, []int{41, 37}, nil)
	gen := NewGenerator(FMJDRules())

	is.True(!gen.HasLegalMoves(b, board.White))
}

func TestResolveMinimalMove(t *testing.T) {
	is := is.New(t)
	b := place(t, []int{33}, nil, []int{29, 19}, nil)
	gen := NewGenerator(FMJDRules())

	m, ok := gen.Resolve(b, board.White, sq(t, 33), sq(t, 13))
	is.True(ok)
	is.Equal(len(m.Captures), 2)

	_, ok = gen.Resolve(b, board.White, sq(t, 33), sq(t, 28))
	is.True(!ok)
}

func TestIsLegalMatchesByEndpoints(t *testing.T) {
	is := is.New(t)
	b := place(t, []int{28}, nil, []int{22}, nil)
	gen := NewGenerator(FMJDRules())

	capture, err := move.FromNotation("28x17")
	is.NoErr(err)
	is.True(gen.IsLegal(b, board.White, capture))

	quiet, err := move.FromNotation("28-23")
	is.NoErr(err)
	is.True(!gen.IsLegal(b, board.White, quiet))
}
