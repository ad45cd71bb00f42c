package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
)

var notationRegex = regexp.MustCompile(`^(\d{1,2}-\d{1,2}|\d{1,2}(x\d{1,2})+)$`)

var ErrBadNotation = errors.New("cannot parse move notation")

// FromNotation parses numeric notation into a minimal move: only From, To
// and the capture flag are known; the path and the captured squares are
// resolved later against the current legal-move list. Accepts "32-28",
// "32x21" and chained multi-captures like "32x21x12" (the endpoints are
// the first and last squares of the chain).
func FromNotation(notation string) (Move, error) {
	notation = strings.TrimSpace(notation)
	if !notationRegex.MatchString(notation) {
		return Move{}, fmt.Errorf("%w: %q", ErrBadNotation, notation)
	}
	isCapture := strings.Contains(notation, "x")
	sep := "-"
	if isCapture {
		sep = "x"
	}
	parts := strings.Split(notation, sep)
	squares := make([]board.Position, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q", ErrBadNotation, notation)
		}
		pos, ok := board.FromSquare(n)
		if !ok {
			return Move{}, fmt.Errorf("%w: square %d out of range", ErrBadNotation, n)
		}
		squares[i] = pos
	}
	m := Move{
		From: squares[0],
		To:   squares[len(squares)-1],
	}
	if isCapture {
		// Capture count is one per hop; a minimal capture move only knows
		// the hops the notation spells out.
		m.Captures = make([]board.Position, len(squares)-1)
		m.Path = squares[1:]
	} else {
		m.Path = squares[1:]
	}
	return m, nil
}
