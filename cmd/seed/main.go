package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/podium/internal/seeder"
	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumGames   = 40
	defaultNumPlayers = 25
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		gamesFile  = flag.String("games", "fixtures/games.json", "Output file for the generated game feed")
		picksFile  = flag.String("picks", "fixtures/picks.json", "Output file for generated picks")
		baseURL    = flag.String("url", "", "Base URL of a running service; when set, picks are POSTed instead of written")
		numGames   = flag.Int("num-games", defaultNumGames, "Number of games to generate")
		numPlayers = flag.Int("num-players", defaultNumPlayers, "Number of players to generate picks for")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout when submitting")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seeder.Config{
		GamesFile:  *gamesFile,
		PicksFile:  *picksFile,
		BaseURL:    *baseURL,
		NumGames:   *numGames,
		NumPlayers: *numPlayers,
		Timeout:    *timeout,
	}

	if err := seeder.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
