// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
	"time"

	"github.com/okian/podium/internal/domain/scoring"
)

// ScoringSection mirrors the scoring contract in the config file. It is kept
// separate from scoring.Config so the engine package stays free of loader
// concerns; ToEngine converts it.
type ScoringSection struct {
	Mode            string                  `koanf:"mode"`
	Points          scoring.RoundPoints     `koanf:"points"`
	ExactScoreBonus scoring.ExactScoreBonus `koanf:"exact_score_bonus"`
	Brier           scoring.BrierParams     `koanf:"brier"`

	// KnockoutCutoff is an RFC3339 instant; games scheduled on or after it
	// classify as knockout round when nothing else matched. Empty disables
	// the fallback.
	KnockoutCutoff string `koanf:"knockout_cutoff"`
}

// ToEngine converts the section into the engine's immutable config. An
// unparseable cutoff date degrades to "no cutoff" rather than failing the
// whole boot; the classifier treats a zero time as disabled.
func (s ScoringSection) ToEngine() scoring.Config {
	cfg := scoring.Config{
		Mode:            scoring.Mode(s.Mode),
		Points:          s.Points,
		ExactScoreBonus: s.ExactScoreBonus,
		Brier:           s.Brier,
	}
	if s.KnockoutCutoff != "" {
		if t, err := time.Parse(time.RFC3339, s.KnockoutCutoff); err == nil {
			cfg.KnockoutCutoff = t
		}
	}
	return cfg.Normalized()
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// GamesFile points at the JSON game feed fixture.
	GamesFile string `koanf:"games_file"`

	// PicksFile optionally seeds the pick store at boot.
	PicksFile string `koanf:"picks_file"`

	// FeedRefreshSeconds sets the feed polling interval.
	FeedRefreshSeconds int `koanf:"feed_refresh_seconds"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of submission workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the pick store shards.
	ShardCount int `koanf:"shard_count"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// IncludeLiveGames makes provisional scores for in-progress games count
	// by default; requests can override per call.
	IncludeLiveGames bool `koanf:"include_live_games"`

	// Scoring holds the scoring contract handed to the engine.
	Scoring ScoringSection `koanf:"scoring"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		GamesFile:           "fixtures/games.json",
		FeedRefreshSeconds:  30,
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		ShardCount:          8,
		MaxLeaderboardLimit: 100,
		Scoring: ScoringSection{
			Mode:   string(scoring.ModeClassic),
			Points: scoring.Default().Points,
			Brier:  scoring.Default().Brier,
		},
	}
}

// FeedRefreshInterval returns the polling interval as a duration.
func (c *Config) FeedRefreshInterval() time.Duration {
	return time.Duration(c.FeedRefreshSeconds) * time.Second
}
