// selfplay runs a headless bot-vs-bot series and prints the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GhislainBO/dames-backend-web-sub001/ai/bot"
	"github.com/GhislainBO/dames-backend-web-sub001/automatic"
	"github.com/GhislainBO/dames-backend-web-sub001/config"
)

var (
	whiteLevel = flag.String("white", "medium", "difficulty for White")
	blackLevel = flag.String("black", "medium", "difficulty for Black")
	games      = flag.Int("games", 0, "number of games (0 = from config)")
	debug      = flag.Bool("debug", false, "debug logging")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	n := cfg.SelfplayGames
	if *games > 0 {
		n = *games
	}

	start := time.Now()
	stats, err := automatic.CompareBots(context.Background(),
		bot.Level(*whiteLevel), bot.Level(*blackLevel), n, cfg.SelfplayConcurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}
	fmt.Printf("%s vs %s: %s in %s\n", *whiteLevel, *blackLevel, stats, time.Since(start))
}
