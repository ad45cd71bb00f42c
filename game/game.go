// Package game encapsulates the draughts state machine: turn order, move
// application, terminal detection, draw rules, and a compact position codec.
// It is the source of truth for a game in progress; the search packages only
// ever operate on clones of it.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/move"
	"github.com/GhislainBO/dames-backend-web-sub001/movegen"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game is over")
	ErrMalformedPosition = errors.New("malformed position")
)

// MaxHalfMoveClock is the no-progress limit: this many consecutive
// half-moves without a capture or pawn advance draws the game.
const MaxHalfMoveClock = 50

// RepetitionLimit draws the game once the same position (with the same
// side to move) has occurred this many times.
const RepetitionLimit = 3

type Result int

const (
	Ongoing Result = iota
	WhiteWon
	BlackWon
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWon:
		return "white wins"
	case BlackWon:
		return "black wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// Reason explains how a terminal result came about.
type Reason int

const (
	NoReason Reason = iota
	// NoPieces: the losing side ran out of pieces entirely.
	NoPieces
	// Blocked: the losing side still has pieces but no legal move.
	Blocked
	FiftyMoveRule
	ThreefoldRepetition
	Resignation
	Agreement
)

func (r Reason) String() string {
	switch r {
	case NoPieces:
		return "no pieces left"
	case Blocked:
		return "blocked"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case Resignation:
		return "resignation"
	case Agreement:
		return "draw agreed"
	}
	return ""
}

// Game is the authoritative state of one draughts game. It owns its board;
// callers mutate it only through ApplyMove and friends.
type Game struct {
	board  *board.Board
	onturn board.Color
	gen    *movegen.Generator

	history       []move.Move
	fingerprints  []uint64
	halfMoveClock int

	result Result
	reason Reason

	captures   [2]int
	promotions [2]int
}

// NewGame starts a fresh game from the initial position, White to move.
func NewGame() *Game {
	b := board.New()
	b.SetupInitialPosition()
	g := &Game{
		board:  b,
		onturn: board.White,
		gen:    movegen.NewGenerator(movegen.FMJDRules()),
	}
	g.fingerprints = append(g.fingerprints, g.fingerprint())
	return g
}

// Board exposes the live board for reading. Mutating it directly corrupts
// the history and fingerprint bookkeeping; use ApplyMove.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) OnTurn() board.Color {
	return g.onturn
}

func (g *Game) Result() Result {
	return g.result
}

func (g *Game) Reason() Reason {
	return g.reason
}

func (g *Game) Playing() bool {
	return g.result == Ongoing
}

func (g *Game) HalfMoveClock() int {
	return g.halfMoveClock
}

// Generator returns the move generator, for callers that want to probe
// hypothetical positions under the same rules.
func (g *Game) Generator() *movegen.Generator {
	return g.gen
}

// LegalMoves returns every legal move for the side on turn, or an empty
// list once the game is over.
func (g *Game) LegalMoves() []move.Move {
	if g.result != Ongoing {
		return nil
	}
	return g.gen.GenAll(g.board, g.onturn)
}

// ApplyMove validates candidate against the current legal moves, matching
// by endpoints only, and applies the fully detailed legal move it resolves
// to. The caller may therefore submit a bare from/to pair; the returned
// move carries the true capture and path data.
func (g *Game) ApplyMove(candidate move.Move) (move.Move, error) {
	if g.result != Ongoing {
		return move.Move{}, ErrGameOver
	}
	m, ok := g.gen.Resolve(g.board, g.onturn, candidate.From, candidate.To)
	if !ok {
		return move.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, candidate.ShortDescription())
	}
	movedPawn := !g.board.PieceAt(m.From).IsKing()

	// A circular capture sequence ends on its own starting square; the
	// piece then simply stays put.
	if m.From != m.To {
		g.board.MovePiece(m.From, m.To)
	}
	for _, c := range m.Captures {
		g.board.RemovePiece(c)
	}
	if m.IsPromotion {
		g.board.Promote(m.To)
	}

	if m.IsCapture() || movedPawn {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}
	g.captures[g.onturn] += len(m.Captures)
	if m.IsPromotion {
		g.promotions[g.onturn]++
	}
	g.history = append(g.history, m.Copy())
	g.onturn = g.onturn.Other()
	g.fingerprints = append(g.fingerprints, g.fingerprint())

	g.checkTerminal()
	return m, nil
}

// ApplyNotation parses s ("32-28" or "32x21x12") and applies it.
func (g *Game) ApplyNotation(s string) (move.Move, error) {
	m, err := move.FromNotation(s)
	if err != nil {
		return move.Move{}, err
	}
	return g.ApplyMove(m)
}

// Resign ends the game immediately in favor of the other side.
func (g *Game) Resign(side board.Color) error {
	if g.result != Ongoing {
		return ErrGameOver
	}
	if side == board.White {
		g.result = BlackWon
	} else {
		g.result = WhiteWon
	}
	g.reason = Resignation
	log.Debug().Str("side", side.String()).Msg("resignation")
	return nil
}

// DeclareDraw ends the game as a draw by agreement.
func (g *Game) DeclareDraw() error {
	if g.result != Ongoing {
		return ErrGameOver
	}
	g.result = Draw
	g.reason = Agreement
	return nil
}

// checkTerminal runs the end-of-game checks in order; the first that fires
// wins. Called with the side to move already flipped to the player who
// must now respond.
func (g *Game) checkTerminal() {
	if !g.gen.HasLegalMoves(g.board, g.onturn) {
		if g.onturn == board.White {
			g.result = BlackWon
		} else {
			g.result = WhiteWon
		}
		if g.board.Count(g.onturn) == 0 {
			g.reason = NoPieces
		} else {
			g.reason = Blocked
		}
		return
	}
	if g.halfMoveClock >= MaxHalfMoveClock {
		g.result = Draw
		g.reason = FiftyMoveRule
		return
	}
	if g.repetitionCount() >= RepetitionLimit {
		g.result = Draw
		g.reason = ThreefoldRepetition
	}
}

// fingerprint hashes the board together with the side to move; two
// positions only repeat if the same player is on turn in both.
func (g *Game) fingerprint() uint64 {
	marker := byte('W')
	if g.onturn == board.Black {
		marker = 'B'
	}
	return xxhash.Sum64(append([]byte(g.board.CompactString()), marker))
}

func (g *Game) repetitionCount() int {
	cur := g.fingerprints[len(g.fingerprints)-1]
	n := 0
	for _, f := range g.fingerprints {
		if f == cur {
			n++
		}
	}
	return n
}

// History returns a copy of the moves played so far.
func (g *Game) History() []move.Move {
	out := make([]move.Move, len(g.history))
	for i, m := range g.history {
		out[i] = m.Copy()
	}
	return out
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (move.Move, bool) {
	if len(g.history) == 0 {
		return move.Move{}, false
	}
	return g.history[len(g.history)-1].Copy(), true
}

// Clone returns a fully independent copy. The generator is stateless and
// shared.
func (g *Game) Clone() *Game {
	c := &Game{
		board:         g.board.Copy(),
		onturn:        g.onturn,
		gen:           g.gen,
		halfMoveClock: g.halfMoveClock,
		result:        g.result,
		reason:        g.reason,
		captures:      g.captures,
		promotions:    g.promotions,
	}
	c.history = make([]move.Move, len(g.history))
	for i, m := range g.history {
		c.history[i] = m.Copy()
	}
	c.fingerprints = make([]uint64, len(g.fingerprints))
	copy(c.fingerprints, g.fingerprints)
	return c
}

// Stats is a plain snapshot of game counters for outside collaborators.
type Stats struct {
	Moves           int
	WhiteCaptures   int
	BlackCaptures   int
	WhitePromotions int
	BlackPromotions int
	HalfMoveClock   int
	PiecesOnBoard   int
	Result          Result
	Reason          Reason
}

func (g *Game) Stats() Stats {
	return Stats{
		Moves:           len(g.history),
		WhiteCaptures:   g.captures[board.White],
		BlackCaptures:   g.captures[board.Black],
		WhitePromotions: g.promotions[board.White],
		BlackPromotions: g.promotions[board.Black],
		HalfMoveClock:   g.halfMoveClock,
		PiecesOnBoard:   g.board.TotalPieces(),
		Result:          g.result,
		Reason:          g.reason,
	}
}

// ToDisplayText renders the board with a one-line status footer.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	if g.result == Ongoing {
		fmt.Fprintf(&sb, "%s to move (clock %d)\n", g.onturn, g.halfMoveClock)
	} else {
		fmt.Fprintf(&sb, "Game over: %s (%s)\n", g.result, g.reason)
	}
	return sb.String()
}
