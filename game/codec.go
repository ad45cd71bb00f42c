package game

import (
	"strconv"
	"strings"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
)

// Export encodes the position as "<50 board chars> <W|B> <half-move clock>",
// one character per playable square in row-major order.
func (g *Game) Export() string {
	marker := "W"
	if g.onturn == board.Black {
		marker = "B"
	}
	return g.board.CompactString() + " " + marker + " " + strconv.Itoa(g.halfMoveClock)
}

// Import replaces the game state with the encoded position. The result is
// reset to Ongoing and the histories are cleared: an imported position is
// assumed still playable. On any malformed input the game is left exactly
// as it was.
func (g *Game) Import(encoded string) error {
	fields := strings.Fields(encoded)
	if len(fields) != 3 {
		return ErrMalformedPosition
	}
	var onturn board.Color
	switch fields[1] {
	case "W":
		onturn = board.White
	case "B":
		onturn = board.Black
	default:
		return ErrMalformedPosition
	}
	clock, err := strconv.Atoi(fields[2])
	if err != nil || clock < 0 {
		return ErrMalformedPosition
	}
	b := board.New()
	if !b.SetFromCompactString(fields[0]) {
		return ErrMalformedPosition
	}

	g.board = b
	g.onturn = onturn
	g.halfMoveClock = clock
	g.result = Ongoing
	g.reason = NoReason
	g.history = nil
	g.fingerprints = []uint64{g.fingerprint()}
	g.captures = [2]int{}
	g.promotions = [2]int{}
	return nil
}

// FromPosition builds a game from an encoded position string.
func FromPosition(encoded string) (*Game, error) {
	g := NewGame()
	if err := g.Import(encoded); err != nil {
		return nil, err
	}
	return g, nil
}
