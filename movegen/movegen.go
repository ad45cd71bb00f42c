// Package movegen contains all the move-generating functions for draughts.
// Given a board and a side it produces the complete rule-correct move list,
// including the recursive enumeration of capture chains and the mandatory
// and majority capture policies.
package movegen

import (
	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/move"
)

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Generator generates legal moves under a rule configuration. It holds no
// board state; the same generator can serve any number of boards.
type Generator struct {
	rules RuleConfig
}

func NewGenerator(rules RuleConfig) *Generator {
	return &Generator{rules: rules}
}

func (g *Generator) Rules() RuleConfig {
	return g.rules
}

// forwardDir is the row delta of a pawn advance: White climbs toward row 0,
// Black descends toward row Dim-1.
func forwardDir(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

// PromotionRow is the opponent's back row for the given color.
func PromotionRow(c board.Color) int {
	if c == board.White {
		return 0
	}
	return board.Dim - 1
}

// GenAll returns every legal move for side on b. If any capture sequence
// exists and captures are mandatory, only captures are returned, reduced to
// the maximal-count subset when majority capture is on. Otherwise simple
// moves are generated. A side with no legal actions yields an empty list.
func (g *Generator) GenAll(b *board.Board, side board.Color) []move.Move {
	captures := g.genAllCaptures(b, side)
	if len(captures) > 0 {
		if g.rules.MajorityCapture {
			captures = filterMajority(captures)
		}
		if g.rules.MandatoryCapture {
			return captures
		}
		return append(captures, g.genSimpleMoves(b, side)...)
	}
	return g.genSimpleMoves(b, side)
}

// HasLegalMoves reports whether the side can act at all. It re-derives the
// full legal set; the board is small enough that this stays cheap.
func (g *Generator) HasLegalMoves(b *board.Board, side board.Color) bool {
	return len(g.GenAll(b, side)) > 0
}

// IsLegal reports whether candidate matches a currently legal move, by
// endpoint-and-capture-count equivalence.
func (g *Generator) IsLegal(b *board.Board, side board.Color, candidate move.Move) bool {
	for _, m := range g.GenAll(b, side) {
		if m.Equals(candidate) {
			return true
		}
	}
	return false
}

// Resolve finds the fully detailed legal move running between the given
// endpoints, so that a caller may submit a minimal move description. The
// second value is false when no legal move matches.
func (g *Generator) Resolve(b *board.Board, side board.Color, from, to board.Position) (move.Move, bool) {
	for _, m := range g.GenAll(b, side) {
		if m.MatchesEndpoints(from, to) {
			return m, true
		}
	}
	return move.Move{}, false
}

func (g *Generator) genAllCaptures(b *board.Board, side board.Color) []move.Move {
	var out []move.Move
	for _, pos := range b.PiecesOf(side) {
		isKing := b.PieceAt(pos).IsKing()
		g.extendCapture(b, side, isKing, pos, pos, nil, nil, &out)
	}
	return out
}

// extendCapture recursively extends a capture sequence from cur. The
// captured and path slices are value-copied on every branch, never shared,
// so sibling branches cannot contaminate each other. A captured piece is
// never lifted off the board mid-sequence: it keeps blocking passage and is
// excluded from re-capture through the captured set instead.
func (g *Generator) extendCapture(b *board.Board, side board.Color, isKing bool,
	origin, cur board.Position, captured, path []board.Position, out *[]move.Move) {

	extended := false
	for _, d := range diagonals {
		if !isKing && !g.rules.BackwardCapture && d[0] != forwardDir(side) {
			continue
		}
		var targets []captureHop
		if isKing && g.rules.FlyingKings {
			targets = g.flyingHops(b, side, origin, cur, d, captured)
		} else {
			targets = g.shortHops(b, side, origin, cur, d, captured)
		}
		for _, hop := range targets {
			for _, landing := range hop.landings {
				extended = true
				g.extendCapture(b, side, isKing, origin, landing,
					appendCopy(captured, hop.enemy),
					appendCopy(path, landing), out)
			}
		}
	}
	if extended || len(captured) == 0 {
		return
	}
	m := move.Move{
		From:     origin,
		To:       cur,
		Captures: captured,
		Path:     path,
	}
	if !isKing {
		m.IsPromotion = g.promotes(side, path)
	}
	*out = append(*out, m)
}

type captureHop struct {
	enemy    board.Position
	landings []board.Position
}

// free reports whether the mover may pass through or land on pos. The
// mover's own origin square counts as free once vacated.
func free(b *board.Board, origin, pos board.Position) bool {
	if !pos.Playable() {
		return false
	}
	return pos == origin || b.PieceAt(pos) == board.Empty
}

func isEnemyAt(b *board.Board, side board.Color, origin, pos board.Position) bool {
	if !pos.Playable() || pos == origin {
		return false
	}
	p := b.PieceAt(pos)
	return p != board.Empty && p.Color() != side
}

// shortHops finds the single adjacent-capture hop in direction d, if any:
// an enemy piece next to cur with the square beyond it free.
func (g *Generator) shortHops(b *board.Board, side board.Color,
	origin, cur board.Position, d [2]int, captured []board.Position) []captureHop {

	enemy := board.Pos(cur.Row+d[0], cur.Col+d[1])
	landing := board.Pos(cur.Row+2*d[0], cur.Col+2*d[1])
	if !isEnemyAt(b, side, origin, enemy) || containsPos(captured, enemy) {
		return nil
	}
	if !free(b, origin, landing) {
		return nil
	}
	return []captureHop{{enemy: enemy, landings: []board.Position{landing}}}
}

// flyingHops scans the diagonal ray in direction d for exactly one enemy
// piece followed by a run of free squares; every square of that run is a
// possible landing. A piece already captured in this sequence blocks the
// ray outright.
func (g *Generator) flyingHops(b *board.Board, side board.Color,
	origin, cur board.Position, d [2]int, captured []board.Position) []captureHop {

	pos := board.Pos(cur.Row+d[0], cur.Col+d[1])
	for pos.OnBoard() && free(b, origin, pos) {
		pos = board.Pos(pos.Row+d[0], pos.Col+d[1])
	}
	if !isEnemyAt(b, side, origin, pos) || containsPos(captured, pos) {
		return nil
	}
	hop := captureHop{enemy: pos}
	landing := board.Pos(pos.Row+d[0], pos.Col+d[1])
	for landing.OnBoard() && free(b, origin, landing) {
		hop.landings = append(hop.landings, landing)
		landing = board.Pos(landing.Row+d[0], landing.Col+d[1])
	}
	if len(hop.landings) == 0 {
		return nil
	}
	return []captureHop{hop}
}

func (g *Generator) genSimpleMoves(b *board.Board, side board.Color) []move.Move {
	var out []move.Move
	for _, pos := range b.PiecesOf(side) {
		piece := b.PieceAt(pos)
		if piece.IsKing() {
			out = append(out, g.kingMoves(b, pos)...)
			continue
		}
		dr := forwardDir(side)
		for _, dc := range []int{-1, 1} {
			to := board.Pos(pos.Row+dr, pos.Col+dc)
			if to.Playable() && b.PieceAt(to) == board.Empty {
				out = append(out, move.NewSimple(pos, to, to.Row == PromotionRow(side)))
			}
		}
	}
	return out
}

func (g *Generator) kingMoves(b *board.Board, pos board.Position) []move.Move {
	var out []move.Move
	for _, d := range diagonals {
		to := board.Pos(pos.Row+d[0], pos.Col+d[1])
		for to.Playable() && b.PieceAt(to) == board.Empty {
			out = append(out, move.NewSimple(pos, to, false))
			if !g.rules.FlyingKings {
				break
			}
			to = board.Pos(to.Row+d[0], to.Col+d[1])
		}
	}
	return out
}

// promotes decides the promotion flag for a pawn capture sequence. Under
// landing-only promotion just the final square matters; otherwise any
// visited landing square on the back row promotes.
func (g *Generator) promotes(side board.Color, path []board.Position) bool {
	if len(path) == 0 {
		return false
	}
	if g.rules.PromotionOnLandingOnly {
		return path[len(path)-1].Row == PromotionRow(side)
	}
	for _, pos := range path {
		if pos.Row == PromotionRow(side) {
			return true
		}
	}
	return false
}

// filterMajority keeps only the sequences whose capture count equals the
// maximum across the whole side. Several maximal sequences may survive;
// this is a tie-break, not a scoring step.
func filterMajority(moves []move.Move) []move.Move {
	maxCaptures := 0
	for _, m := range moves {
		if len(m.Captures) > maxCaptures {
			maxCaptures = len(m.Captures)
		}
	}
	filtered := moves[:0]
	for _, m := range moves {
		if len(m.Captures) == maxCaptures {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func appendCopy(s []board.Position, p board.Position) []board.Position {
	out := make([]board.Position, len(s)+1)
	copy(out, s)
	out[len(s)] = p
	return out
}

func containsPos(s []board.Position, p board.Position) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}
