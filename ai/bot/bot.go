// Package bot wraps the search in difficulty profiles: depth and time
// limits plus deliberate imperfection (random moves, evaluation noise, and
// top-N pool picks) so weaker levels feel like weaker players rather than
// slower ones.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/GhislainBO/dames-backend-web-sub001/game"
	"github.com/GhislainBO/dames-backend-web-sub001/move"
	"github.com/GhislainBO/dames-backend-web-sub001/ai/search"
)

// Level names a difficulty tier.
type Level string

const (
	Beginner Level = "beginner"
	Easy     Level = "easy"
	Medium   Level = "medium"
	Hard     Level = "hard"
	Expert   Level = "expert"
)

// Profile tunes one difficulty tier.
type Profile struct {
	Depth           int
	QuiescenceDepth int
	// Randomness is the probability of the imperfect behavior for the
	// tier: playing an outright random move at Beginner, or picking from
	// the top-N pool instead of the single best move elsewhere.
	Randomness     float64
	NoiseMagnitude int
	TopPool        int
	TimeBudget     time.Duration
}

var Profiles = map[Level]Profile{
	Beginner: {Depth: 1, QuiescenceDepth: 0, Randomness: 0.5, NoiseMagnitude: 60, TopPool: 3, TimeBudget: time.Second},
	Easy:     {Depth: 2, QuiescenceDepth: 1, Randomness: 0.35, NoiseMagnitude: 40, TopPool: 3, TimeBudget: 2 * time.Second},
	Medium:   {Depth: 4, QuiescenceDepth: 2, Randomness: 0.2, NoiseMagnitude: 20, TopPool: 2, TimeBudget: 3 * time.Second},
	Hard:     {Depth: 6, QuiescenceDepth: 3, Randomness: 0.08, NoiseMagnitude: 8, TopPool: 2, TimeBudget: 5 * time.Second},
	Expert:   {Depth: 8, QuiescenceDepth: 4, Randomness: 0, NoiseMagnitude: 0, TopPool: 1, TimeBudget: 8 * time.Second},
}

// Levels lists the tiers weakest first.
func Levels() []Level {
	return []Level{Beginner, Easy, Medium, Hard, Expert}
}

// Bot plays moves for one difficulty tier, reusing a single solver (and
// its transposition table) across the whole game.
type Bot struct {
	level   Level
	profile Profile
	solver  *search.Solver
}

func New(level Level) (*Bot, error) {
	profile, ok := Profiles[level]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty level %q", level)
	}
	return &Bot{
		level:   level,
		profile: profile,
		solver:  search.NewSolver(),
	}, nil
}

func (b *Bot) Level() Level {
	return b.level
}

func (b *Bot) Profile() Profile {
	return b.profile
}

func (b *Bot) Solver() *search.Solver {
	return b.solver
}

// MoveChoice is the bot's answer plus search diagnostics.
type MoveChoice struct {
	Move    move.Move
	Score   int
	Nodes   uint64
	Depth   int
	Elapsed time.Duration
	// Random is set when the move was picked without (or despite) the
	// search: the weak-player behaviors and the timeout fallback.
	Random bool
}

// ChooseMove picks a move for the side on turn under the bot's profile.
func (b *Bot) ChooseMove(ctx context.Context, g *game.Game) (MoveChoice, error) {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return MoveChoice{}, search.ErrNoLegalMoves
	}
	if len(moves) == 1 {
		// only move: play it without searching
		return MoveChoice{Move: moves[0]}, nil
	}
	if b.level == Beginner && frand.Float64() < b.profile.Randomness {
		return MoveChoice{Move: moves[frand.Intn(len(moves))], Random: true}, nil
	}

	scored, err := b.solver.SearchMoves(ctx, g, b.profile.Depth,
		b.profile.QuiescenceDepth, b.profile.TimeBudget)
	if err != nil {
		return MoveChoice{}, err
	}
	if len(scored) == 0 {
		// timed out before any root move was scored
		log.Warn().Str("level", string(b.level)).Msg("search timed out with no result, playing random move")
		return MoveChoice{Move: moves[frand.Intn(len(moves))], Random: true}, nil
	}

	for i := range scored {
		scored[i].Score += noise(b.profile.NoiseMagnitude)
	}
	search.SortScored(scored)

	pick := 0
	if b.profile.TopPool > 1 && frand.Float64() < b.profile.Randomness {
		pool := b.profile.TopPool
		if pool > len(scored) {
			pool = len(scored)
		}
		pick = frand.Intn(pool)
	}

	choice := MoveChoice{
		Move:    scored[pick].Move,
		Score:   scored[pick].Score,
		Nodes:   b.solver.Nodes(),
		Depth:   b.profile.Depth,
		Elapsed: b.solver.Elapsed(),
	}
	log.Debug().Str("level", string(b.level)).
		Str("move", choice.Move.ShortDescription()).
		Int("score", choice.Score).
		Uint64("nodes", choice.Nodes).
		Dur("elapsed", choice.Elapsed).
		Bool("aborted", b.solver.Aborted()).
		Msg("bot-move")
	return choice, nil
}

// noise returns a symmetric, roughly bell-shaped integer in
// [-magnitude, magnitude], the sum of two uniform draws.
func noise(magnitude int) int {
	if magnitude <= 0 {
		return 0
	}
	return int((frand.Float64() + frand.Float64() - 1) * float64(magnitude))
}
