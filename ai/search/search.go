// Package search implements the draughts AI's minimax search: alpha-beta
// pruning over cloned game states, a transposition table, quiescence
// extension for capture sequences, and a cooperative wall-clock budget.
package search

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/GhislainBO/dames-backend-web-sub001/board"
	"github.com/GhislainBO/dames-backend-web-sub001/eval"
	"github.com/GhislainBO/dames-backend-web-sub001/game"
	"github.com/GhislainBO/dames-backend-web-sub001/move"
	"github.com/GhislainBO/dames-backend-web-sub001/zobrist"
)

// Infinity bounds the alpha-beta window; it exceeds any mate-shaded score.
const Infinity = 2_000_000

// mateShadePerPly separates faster forced wins from slower ones.
const mateShadePerPly = 1000

// nodeCheckInterval is how often (in visited nodes) the wall clock is
// sampled for the time budget.
const nodeCheckInterval = 1024

// maxQuiescenceMoves bounds branching inside the quiescence search.
const maxQuiescenceMoves = 4

// DefaultTableSizeExp gives a 2^20-entry transposition table.
const DefaultTableSizeExp = 20

var ErrNoLegalMoves = errors.New("no legal moves to search")

// ScoredMove pairs a root move with its search score from the mover's
// perspective.
type ScoredMove struct {
	Move  move.Move
	Score int
}

// Solver runs searches. It is single-threaded: one search at a time, the
// transposition table shared across that search's whole tree.
type Solver struct {
	zobrist *zobrist.Zobrist
	tt      *TranspositionTable

	nodes   atomic.Uint64
	aborted bool

	timed    bool
	deadline time.Time

	startTime time.Time
	elapsed   time.Duration
}

func NewSolver() *Solver {
	z := &zobrist.Zobrist{}
	z.Initialize()
	tt := &TranspositionTable{}
	tt.ResetTo(DefaultTableSizeExp)
	return &Solver{zobrist: z, tt: tt}
}

// TT exposes the transposition table for diagnostics (size, occupancy,
// clearing).
func (s *Solver) TT() *TranspositionTable {
	return s.tt
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Aborted reports whether the last search ran out of time before scoring
// every root move.
func (s *Solver) Aborted() bool {
	return s.aborted
}

func (s *Solver) Elapsed() time.Duration {
	return s.elapsed
}

// SearchMoves scores every legal root move to the given depth, returning
// mover-perspective scores in no particular order. On timeout it returns
// the moves scored so far; Aborted tells the caller the list is partial.
func (s *Solver) SearchMoves(ctx context.Context, eng *game.Game, depth, qdepth int,
	budget time.Duration) ([]ScoredMove, error) {

	moves := eng.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}

	s.aborted = false
	s.nodes.Store(0)
	s.startTime = time.Now()
	s.timed = false
	if budget > 0 {
		s.timed = true
		s.deadline = s.startTime.Add(budget)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (!s.timed || ctxDeadline.Before(s.deadline)) {
		s.timed = true
		s.deadline = ctxDeadline
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logGroup := errgroup.Group{}
	if log.Debug().Enabled() {
		logGroup.Go(func() error {
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					log.Debug().Uint64("nodes", s.nodes.Load()).
						Int("tt-occupancy", s.tt.Occupancy()).
						Msg("search-progress")
				}
			}
		})
	}

	orderMoves(eng.Board(), moves)
	mover := eng.OnTurn()
	scored := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		child := eng.Clone()
		if _, err := child.ApplyMove(m); err != nil {
			// the legal move list and the engine disagree; skip it
			log.Error().Err(err).Str("move", m.ShortDescription()).Msg("unappliable root move")
			continue
		}
		val := s.minimax(child, depth-1, -Infinity, Infinity, qdepth)
		if s.aborted {
			break
		}
		if mover == board.Black {
			val = -val
		}
		scored = append(scored, ScoredMove{Move: m, Score: val})
	}

	cancel()
	_ = logGroup.Wait()
	s.elapsed = time.Since(s.startTime)
	return scored, nil
}

// BestMove runs SearchMoves and returns the single best move and its
// score.
func (s *Solver) BestMove(ctx context.Context, eng *game.Game, depth, qdepth int,
	budget time.Duration) (move.Move, int, error) {

	scored, err := s.SearchMoves(ctx, eng, depth, qdepth, budget)
	if err != nil {
		return move.Move{}, 0, err
	}
	if len(scored) == 0 {
		// timed out before scoring anything; fall back to the first
		// legal move rather than failing.
		return eng.LegalMoves()[0], 0, nil
	}
	SortScored(scored)
	return scored[0].Move, scored[0].Score, nil
}

// SortScored orders best-first from the mover's perspective.
func SortScored(scored []ScoredMove) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// checkAbort counts a node and samples the clock periodically. The abort
// flag is sticky: once set, every frame still on the stack unwinds fast.
func (s *Solver) checkAbort() bool {
	if s.aborted {
		return true
	}
	n := s.nodes.Add(1)
	if s.timed && n%nodeCheckInterval == 0 && time.Now().After(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// minimax returns the White-perspective score of the position to the given
// remaining depth. White maximizes, Black minimizes.
func (s *Solver) minimax(eng *game.Game, depth, alpha, beta, qdepth int) int {
	if s.checkAbort() {
		return 0
	}
	if !eng.Playing() {
		return terminalScore(eng, depth)
	}

	alphaOrig := alpha
	betaOrig := beta
	hash := s.zobrist.Hash(eng.Board(), eng.OnTurn())
	if entry := s.tt.lookup(hash); entry.valid() && entry.depth() >= depth {
		score := entry.score64()
		switch entry.flag() {
		case TTExact:
			return score
		case TTLower:
			if score > alpha {
				alpha = score
			}
		case TTUpper:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return score
		}
	}

	moves := eng.LegalMoves()
	if depth <= 0 {
		if qdepth > 0 && hasCapture(moves) {
			return s.quiescence(eng, alpha, beta, qdepth)
		}
		val := eval.Evaluate(eng.Board())
		s.tt.store(hash, newTableEntry(val, TTExact, 0))
		return val
	}

	orderMoves(eng.Board(), moves)
	maximizing := eng.OnTurn() == board.White
	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, m := range moves {
		child := eng.Clone()
		if _, err := child.ApplyMove(m); err != nil {
			continue
		}
		val := s.minimax(child, depth-1, alpha, beta, qdepth)
		if s.aborted {
			return 0
		}
		if maximizing {
			if val > best {
				best = val
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if val < best {
				best = val
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			break
		}
	}

	var flag uint8
	if best <= alphaOrig {
		flag = TTUpper
	} else if best >= betaOrig {
		flag = TTLower
	} else {
		flag = TTExact
	}
	s.tt.store(hash, newTableEntry(best, flag, depth))
	return best
}

// quiescence extends the search through capture moves only, using the
// static evaluation as a stand-pat baseline so quiet positions terminate
// immediately.
func (s *Solver) quiescence(eng *game.Game, alpha, beta, qdepth int) int {
	if s.checkAbort() {
		return 0
	}
	if !eng.Playing() {
		return terminalScore(eng, 0)
	}

	standPat := eval.Evaluate(eng.Board())
	maximizing := eng.OnTurn() == board.White
	if maximizing {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return standPat
		}
		if standPat < beta {
			beta = standPat
		}
	}
	if qdepth <= 0 {
		return standPat
	}

	captures := lo.Filter(eng.LegalMoves(), func(m move.Move, _ int) bool {
		return m.IsCapture()
	})
	if len(captures) == 0 {
		return standPat
	}
	sort.SliceStable(captures, func(i, j int) bool {
		return len(captures[i].Captures) > len(captures[j].Captures)
	})
	if len(captures) > maxQuiescenceMoves {
		captures = captures[:maxQuiescenceMoves]
	}

	best := standPat
	for _, m := range captures {
		child := eng.Clone()
		if _, err := child.ApplyMove(m); err != nil {
			continue
		}
		val := s.quiescence(child, alpha, beta, qdepth-1)
		if s.aborted {
			return 0
		}
		if maximizing {
			if val > best {
				best = val
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if val < best {
				best = val
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// terminalScore maps a finished game to a White-perspective score, shaded
// by remaining depth so that faster forced results score larger.
func terminalScore(eng *game.Game, depth int) int {
	switch eng.Result() {
	case game.WhiteWon:
		return eval.WinScore + depth*mateShadePerPly
	case game.BlackWon:
		return -(eval.WinScore + depth*mateShadePerPly)
	default:
		return 0
	}
}

func hasCapture(moves []move.Move) bool {
	return len(moves) > 0 && moves[0].IsCapture()
}

// orderMoves sorts for alpha-beta cutoff rate: heaviest captures first,
// then promotions, king captures, and a small center-proximity bonus for
// the destination. Ordering never changes the final score.
func orderMoves(b *board.Board, moves []move.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moveOrderScore(b, moves[i]) > moveOrderScore(b, moves[j])
	})
}

func moveOrderScore(b *board.Board, m move.Move) int {
	score := 1000 * len(m.Captures)
	if m.IsPromotion {
		score += 100
	}
	for _, c := range m.Captures {
		if b.PieceAt(c).IsKing() {
			score += 50
		}
	}
	// destination center proximity, 0 at the rim up to 4 in the middle
	rowDist := m.To.Row
	if d := board.Dim - 1 - m.To.Row; d < rowDist {
		rowDist = d
	}
	colDist := m.To.Col
	if d := board.Dim - 1 - m.To.Col; d < colDist {
		colDist = d
	}
	if colDist < rowDist {
		return score + colDist
	}
	return score + rowDist
}
