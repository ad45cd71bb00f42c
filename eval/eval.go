// Package eval scores draughts positions. Scores are signed integers in
// centipawn-like units, positive favoring White, and never depend on whose
// turn it is.
package eval

import (
	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/movegen"
)

// WinScore dominates every positional term; a side with no pieces left
// loses by this margin.
const WinScore = 1_000_000

// Tunable term weights. Retuning these changes playing strength, not
// correctness.
const (
	pawnValue = 100
	kingValue = 350

	centerWeight     = 4
	edgePenalty      = 6
	backRowBonus     = 8
	guardedBonus     = 5
	threatPenalty    = 30
	connectedBonus   = 4
	isolationPenalty = 10
	triangleBonus    = 6
	mobilityWeight   = 2
	captureMobility  = 5
	longDiagWeight   = 3

	endgamePieceLimit    = 8
	endgameKingAdvantage = 40
	endgameKingCentral   = 3
)

// advancementBonus rewards pawn progress toward promotion, rising sharply
// on the last few rows. Indexed by rows advanced from the pawn's own back
// row (0..9).
var advancementBonus = [board.Dim]int{0, 2, 4, 6, 9, 13, 18, 26, 38, 0}

var gen = movegen.NewGenerator(movegen.FMJDRules())

// Evaluate scores the board from White's point of view. It is a total
// function: any board yields a score.
func Evaluate(b *board.Board) int {
	whites := b.PiecesOf(board.White)
	blacks := b.PiecesOf(board.Black)
	if len(whites) == 0 {
		return -WinScore
	}
	if len(blacks) == 0 {
		return WinScore
	}

	score := 0
	for _, pos := range whites {
		score += pieceScore(b, pos, board.White)
	}
	for _, pos := range blacks {
		score -= pieceScore(b, pos, board.Black)
	}

	score += mobility(b, board.White) - mobility(b, board.Black)
	score += longDiagWeight * diagonalControl(b)

	if len(whites)+len(blacks) <= endgamePieceLimit {
		score += endgame(b, whites, blacks)
	}
	return score
}

// pieceScore accumulates the per-piece terms for one piece of the given
// color, always as a positive contribution for that color.
func pieceScore(b *board.Board, pos board.Position, c board.Color) int {
	p := b.PieceAt(pos)
	score := pawnValue
	if p.IsKing() {
		score = kingValue
	}

	score += centerWeight * centrality(pos)
	if pos.Col == 0 || pos.Col == board.Dim-1 {
		score -= edgePenalty
	}
	if !p.IsKing() {
		score += advancementBonus[rowsAdvanced(pos, c)]
		if pos.Row == homeRow(c) {
			score += backRowBonus
		}
	}

	score += safety(b, pos, c)
	score += structure(b, pos, c)
	return score
}

// centrality is higher toward the middle of the board, 0 at the rim.
func centrality(pos board.Position) int {
	rowDist := pos.Row
	if d := board.Dim - 1 - pos.Row; d < rowDist {
		rowDist = d
	}
	colDist := pos.Col
	if d := board.Dim - 1 - pos.Col; d < colDist {
		colDist = d
	}
	if colDist < rowDist {
		return colDist
	}
	return rowDist
}

func homeRow(c board.Color) int {
	if c == board.White {
		return board.Dim - 1
	}
	return 0
}

func rowsAdvanced(pos board.Position, c board.Color) int {
	if c == board.White {
		return board.Dim - 1 - pos.Row
	}
	return pos.Row
}

// safety rewards a piece guarded from behind and penalizes one an adjacent
// enemy could jump into an empty landing square.
func safety(b *board.Board, pos board.Position, c board.Color) int {
	score := 0
	behind := 1
	if c == board.White {
		behind = -1
	}
	for _, dc := range []int{-1, 1} {
		g := board.Pos(pos.Row-behind, pos.Col+dc)
		if g.Playable() {
			if p := b.PieceAt(g); p != board.Empty && p.Color() == c {
				score += guardedBonus
			}
		}
	}
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		attacker := board.Pos(pos.Row+d[0], pos.Col+d[1])
		landing := board.Pos(pos.Row-d[0], pos.Col-d[1])
		if !attacker.Playable() || !landing.Playable() {
			continue
		}
		p := b.PieceAt(attacker)
		if p != board.Empty && p.Color() != c && b.PieceAt(landing) == board.Empty {
			score -= threatPenalty
		}
	}
	return score
}

// structure rewards diagonal connectivity and the classic two-supporters
// triangle, and penalizes fully isolated pieces.
func structure(b *board.Board, pos board.Position, c board.Color) int {
	neighbors := 0
	supporters := 0
	behind := 1
	if c == board.White {
		behind = -1
	}
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		n := board.Pos(pos.Row+d[0], pos.Col+d[1])
		if !n.Playable() {
			continue
		}
		if p := b.PieceAt(n); p != board.Empty && p.Color() == c {
			neighbors++
			if d[0] == -behind {
				supporters++
			}
		}
	}
	score := connectedBonus * neighbors
	if neighbors == 0 {
		score -= isolationPenalty
	}
	if supporters == 2 {
		score += triangleBonus
	}
	return score
}

// mobility counts legal moves for a side, weighting captures extra.
func mobility(b *board.Board, c board.Color) int {
	moves := gen.GenAll(b, c)
	score := mobilityWeight * len(moves)
	for _, m := range moves {
		score += captureMobility * len(m.Captures)
	}
	return score
}

// diagonalControl is the White-minus-Black occupancy balance on the long
// diagonal (46-5) and the two tric-trac diagonals flanking it.
func diagonalControl(b *board.Board) int {
	balance := 0
	count := func(pos board.Position) {
		if !pos.Playable() {
			return
		}
		p := b.PieceAt(pos)
		if p == board.Empty {
			return
		}
		if p.Color() == board.White {
			balance++
		} else {
			balance--
		}
	}
	for row := 0; row < board.Dim; row++ {
		count(board.Pos(row, board.Dim-1-row))
		count(board.Pos(row, row+1))
		count(board.Pos(row, row-1))
	}
	return balance
}

// endgame adds king-advantage and king-centralization terms once few
// pieces remain.
func endgame(b *board.Board, whites, blacks []board.Position) int {
	score := 0
	wk := b.CountKind(board.White, board.King)
	bk := b.CountKind(board.Black, board.King)
	score += endgameKingAdvantage * (wk - bk)

	for _, pos := range whites {
		if b.PieceAt(pos).IsKing() {
			score += endgameKingCentral * centrality(pos)
		}
	}
	for _, pos := range blacks {
		if b.PieceAt(pos).IsKing() {
			score -= endgameKingCentral * centrality(pos)
		}
	}
	return score
}
