package search

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/eval"
	"github.com/GhislainBO/dames-backend-web-sub001/game"
)

func position(t *testing.T, whitePawns, whiteKings, blackPawns, blackKings []int,
	marker string, clock int) *game.Game {
	t.Helper()
	b := board.New()
	set := func(squares []int, p board.Piece) {
		for _, n := range squares {
			pos, ok := board.FromSquare(n)
			if !ok {
				t.Fatalf("bad square %d", n)
			}
			b.SetPiece(pos, p)
		}
	}
	set(whitePawns, board.MakePiece(board.White, board.Pawn))
	set(whiteKings, board.MakePiece(board.White, board.King))
	set(blackPawns, board.MakePiece(board.Black, board.Pawn))
	set(blackKings, board.MakePiece(board.Black, board.King))

	g, err := game.FromPosition(b.CompactString() + " " + marker + " " + strconv.Itoa(clock))
	if err != nil {
		t.Fatalf("bad position: %v", err)
	}
	return g
}

// refMinimax is an unpruned, untabled reference search used to verify that
// alpha-beta and the transposition table change only the node count, never
// the score.
func refMinimax(eng *game.Game, depth int) int {
	if !eng.Playing() {
		return terminalScore(eng, depth)
	}
	if depth <= 0 {
		return eval.Evaluate(eng.Board())
	}
	maximizing := eng.OnTurn() == board.White
	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, m := range eng.LegalMoves() {
		child := eng.Clone()
		if _, err := child.ApplyMove(m); err != nil {
			continue
		}
		val := refMinimax(child, depth-1)
		if maximizing && val > best {
			best = val
		}
		if !maximizing && val < best {
			best = val
		}
	}
	return best
}

func TestDepthOneInitialPosition(t *testing.T) {
	is := is.New(t)
	s := NewSolver()
	g := game.NewGame()

	scored, err := s.SearchMoves(context.Background(), g, 1, 0, 0)
	is.NoErr(err)
	is.Equal(len(scored), 9)
	for _, sm := range scored {
		is.True(!sm.Move.IsCapture())
	}

	best, _, err := s.BestMove(context.Background(), g, 1, 0, 0)
	is.NoErr(err)
	is.True(g.Generator().IsLegal(g.Board(), board.White, best))
}

func TestForcedCaptureIsReturned(t *testing.T) {
	is := is.New(t)
	s := NewSolver()
	g := position(t, []int{28, 45}, nil, []int{22, 6}, nil, "W", 0)

	best, _, err := s.BestMove(context.Background(), g, 3, 2, 0)
	is.NoErr(err)
	is.Equal(best.ShortDescription(), "28x17")
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	// steer into a midgame-ish position with capture tension
	for _, notation := range []string{"32-28", "19-23", "28x19", "14x23"} {
		_, err := g.ApplyNotation(notation)
		is.NoErr(err)
	}

	const depth = 3
	s := NewSolver()
	scored, err := s.SearchMoves(context.Background(), g, depth, 0, 0)
	is.NoErr(err)
	is.True(len(scored) > 0)

	mover := g.OnTurn()
	for _, sm := range scored {
		child := g.Clone()
		_, err := child.ApplyMove(sm.Move)
		is.NoErr(err)
		want := refMinimax(child, depth-1)
		if mover == board.Black {
			want = -want
		}
		is.Equal(sm.Score, want)
	}
}

func TestSearchAvoidsHangingPawn(t *testing.T) {
	is := is.New(t)
	s := NewSolver()
	// 28-22 and 29-23 both walk into a jump; 28-23 and 29-24 are safe
	// because the landing square behind stays covered or out of reach.
	g := position(t, []int{28, 29}, nil, []int{18}, nil, "W", 0)

	best, score, err := s.BestMove(context.Background(), g, 2, 0, 0)
	is.NoErr(err)
	desc := best.ShortDescription()
	is.True(desc == "28-23" || desc == "29-24")
	is.True(score > 0) // still a piece up in every safe line
}

func TestMateShadingPrefersFasterWin(t *testing.T) {
	is := is.New(t)
	g := position(t, []int{28}, nil, []int{22}, nil, "W", 0)
	_, err := g.ApplyNotation("28x17")
	is.NoErr(err)

	// Deeper remaining depth means the win was reached sooner.
	is.True(terminalScore(g, 5) > terminalScore(g, 1))
	is.True(terminalScore(g, 1) > eval.WinScore/2)
}

func TestTimeBudgetAborts(t *testing.T) {
	is := is.New(t)
	s := NewSolver()
	g := game.NewGame()

	start := time.Now()
	_, err := s.SearchMoves(context.Background(), g, 12, 4, time.Millisecond)
	is.NoErr(err)
	is.True(s.Aborted())
	is.True(time.Since(start) < 5*time.Second)

	// BestMove still produces a legal move under extreme time pressure.
	best, _, err := s.BestMove(context.Background(), g, 12, 4, time.Millisecond)
	is.NoErr(err)
	is.True(g.Generator().IsLegal(g.Board(), board.White, best))
}

func TestSearchOnFinishedGameFails(t *testing.T) {
	is := is.New(t)
	s := NewSolver()
	g := game.NewGame()
	is.NoErr(g.Resign(board.White))

	_, err := s.SearchMoves(context.Background(), g, 3, 0, 0)
	is.Equal(err, ErrNoLegalMoves)
}

func TestMoveOrderingPutsHeaviestCaptureFirst(t *testing.T) {
	is := is.New(t)
	g := position(t, []int{28, 33}, nil, []int{22, 29, 19}, nil, "W", 0)
	// majority filtering already leaves only the double capture; order a
	// mixed list manually instead.
	b := g.Board()
	moves := g.Generator().GenAll(b, board.White)
	is.Equal(len(moves), 1)
	is.Equal(moveOrderScore(b, moves[0]) >= 2000, true)
}
