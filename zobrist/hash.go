package zobrist

import (
	"lukechampine.com/frand"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
)

const bignum = 1<<63 - 2

// numPieceKinds covers white pawn, white king, black pawn, black king.
const numPieceKinds = 4

// Zobrist generates hashes for draughts positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	theirTurn uint64

	posTable [board.Dim * board.Dim][numPieceKinds]uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < board.Dim*board.Dim; i++ {
		for j := 0; j < numPieceKinds; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func pieceIndex(p board.Piece) int {
	idx := 0
	if p.Color() == board.Black {
		idx += 2
	}
	if p.IsKing() {
		idx++
	}
	return idx
}

// Hash computes the full hash of a position from scratch.
func (z *Zobrist) Hash(b *board.Board, onturn board.Color) uint64 {
	key := uint64(0)
	for row := 0; row < board.Dim; row++ {
		for col := 0; col < board.Dim; col++ {
			pos := board.Pos(row, col)
			if !pos.Playable() {
				continue
			}
			p := b.PieceAt(pos)
			if p == board.Empty {
				continue
			}
			key ^= z.posTable[row*board.Dim+col][pieceIndex(p)]
		}
	}
	if onturn == board.Black {
		key ^= z.theirTurn
	}
	return key
}
