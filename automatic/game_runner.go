// Package automatic plays bot-vs-bot games, for exercising the engine and
// comparing difficulty tiers.
package automatic

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/GhislainBO/dames-backend-web-sub001/ai/bot"
	"github.com/GhislainBO/dames-backend-web-sub001/game"
)

// maxGameMoves caps runaway games; anything this long is declared drawn.
const maxGameMoves = 300

// GameRunner drives one bot-vs-bot game at a time. It is not safe for
// concurrent use; CompareBots creates one runner per worker.
type GameRunner struct {
	bots [2]*bot.Bot
}

// NewGameRunner pairs a White bot against a Black bot.
func NewGameRunner(whiteLevel, blackLevel bot.Level) (*GameRunner, error) {
	white, err := bot.New(whiteLevel)
	if err != nil {
		return nil, err
	}
	black, err := bot.New(blackLevel)
	if err != nil {
		return nil, err
	}
	return &GameRunner{bots: [2]*bot.Bot{white, black}}, nil
}

// PlayGame runs a single game to completion and returns the finished
// engine state.
func (r *GameRunner) PlayGame(ctx context.Context) (*game.Game, error) {
	g := game.NewGame()
	for g.Playing() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(g.History()) >= maxGameMoves {
			if err := g.DeclareDraw(); err != nil {
				return nil, err
			}
			break
		}
		mover := r.bots[g.OnTurn()]
		choice, err := mover.ChooseMove(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("choosing move %d: %w", len(g.History())+1, err)
		}
		if _, err := g.ApplyMove(choice.Move); err != nil {
			return nil, fmt.Errorf("applying %s: %w", choice.Move.ShortDescription(), err)
		}
	}
	log.Debug().Str("result", g.Result().String()).
		Str("reason", g.Reason().String()).
		Int("moves", len(g.History())).
		Msg("selfplay-game-over")
	return g, nil
}

// CompareStats aggregates results across a series of games.
type CompareStats struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Moves      int
	Captures   int
	Promotions int
}

func (s CompareStats) String() string {
	return fmt.Sprintf("games %d: white %d, black %d, draws %d (%d moves, %d captures, %d promotions)",
		s.Games, s.WhiteWins, s.BlackWins, s.Draws, s.Moves, s.Captures, s.Promotions)
}

// CompareBots plays n games of whiteLevel vs blackLevel, up to concurrency
// at a time, each worker with its own runner so no solver state is shared.
func CompareBots(ctx context.Context, whiteLevel, blackLevel bot.Level,
	n, concurrency int) (CompareStats, error) {

	if concurrency < 1 {
		concurrency = 1
	}
	var mu sync.Mutex
	var stats CompareStats

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			runner, err := NewGameRunner(whiteLevel, blackLevel)
			if err != nil {
				return err
			}
			g, err := runner.PlayGame(ctx)
			if err != nil {
				return err
			}
			st := g.Stats()

			mu.Lock()
			defer mu.Unlock()
			stats.Games++
			switch g.Result() {
			case game.WhiteWon:
				stats.WhiteWins++
			case game.BlackWon:
				stats.BlackWins++
			default:
				stats.Draws++
			}
			stats.Moves += st.Moves
			stats.Captures += st.WhiteCaptures + st.BlackCaptures
			stats.Promotions += st.WhitePromotions + st.BlackPromotions
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}
