// Package move defines the Move type for draughts plays, and the standard
// numeric notation over the 1..50 playable-square numbering.
package move

import (
	"strconv"
	"strings"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
)

// A Move describes one play: a simple diagonal step or a capture sequence.
// Captures holds the squares of every captured piece, in capture order;
// Path holds every landing square visited after From (so Path's last
// element equals To). A move is immutable once generated; the engine never
// mutates it afterwards.
type Move struct {
	From        board.Position
	To          board.Position
	Captures    []board.Position
	Path        []board.Position
	IsPromotion bool
}

// NewSimple makes a plain (non-capturing) move.
func NewSimple(from, to board.Position, promotion bool) Move {
	return Move{
		From:        from,
		To:          to,
		Path:        []board.Position{to},
		IsPromotion: promotion,
	}
}

func (m Move) IsCapture() bool {
	return len(m.Captures) > 0
}

// Equals is the legality-matching equivalence: two moves are the same play
// if they share endpoints and capture count. The path is deliberately
// ignored so that a minimal caller-supplied move matches a fully detailed
// generated one, and so that several capture sequences landing on the same
// destination with the same count are interchangeable.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && len(m.Captures) == len(o.Captures)
}

// MatchesEndpoints reports whether this move runs from from to to, however
// many captures it makes along the way.
func (m Move) MatchesEndpoints(from, to board.Position) bool {
	return m.From == from && m.To == to
}

// ShortDescription renders the move in numeric notation: "32-28" for a
// simple move, "32x21" for a capture, with every intermediate landing
// square chained for multi-captures ("32x21x12").
func (m Move) ShortDescription() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(m.From.Square()))
	if !m.IsCapture() {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(m.To.Square()))
		return sb.String()
	}
	if len(m.Path) > 1 {
		for _, landing := range m.Path {
			sb.WriteByte('x')
			sb.WriteString(strconv.Itoa(landing.Square()))
		}
		return sb.String()
	}
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(m.To.Square()))
	return sb.String()
}

func (m Move) String() string {
	return m.ShortDescription()
}

// Copy returns a deep copy; the slices of the original and the copy do not
// alias.
func (m Move) Copy() Move {
	c := m
	c.Captures = append([]board.Position(nil), m.Captures...)
	c.Path = append([]board.Position(nil), m.Path...)
	return c
}
