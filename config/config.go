// Package config loads runtime settings from the environment and an
// optional config file, with sane defaults for interactive play.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Debug switches the logger to debug level with console output.
	Debug bool
	// DefaultLevel is the bot difficulty the shell starts with.
	DefaultLevel string
	// TTFractionOfMemory sizes the transposition table as a fraction of
	// system memory; 0 keeps the built-in default size.
	TTFractionOfMemory float64
	// AITimeBudget overrides every difficulty profile's time budget when
	// positive.
	AITimeBudget time.Duration
	// SelfplayGames is the number of games per bot pairing in selfplay.
	SelfplayGames int
	// SelfplayConcurrency is how many selfplay games run at once.
	SelfplayConcurrency int
}

// Load reads DAMES_* environment variables and, if present, a dames.yaml
// config file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("dames")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("default-level", "medium")
	v.SetDefault("tt-fraction-of-memory", 0.0)
	v.SetDefault("ai-time-budget", time.Duration(0))
	v.SetDefault("selfplay-games", 20)
	v.SetDefault("selfplay-concurrency", 4)

	v.SetConfigName("dames")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		Debug:               v.GetBool("debug"),
		DefaultLevel:        v.GetString("default-level"),
		TTFractionOfMemory:  v.GetFloat64("tt-fraction-of-memory"),
		AITimeBudget:        v.GetDuration("ai-time-budget"),
		SelfplayGames:       v.GetInt("selfplay-games"),
		SelfplayConcurrency: v.GetInt("selfplay-concurrency"),
	}, nil
}
