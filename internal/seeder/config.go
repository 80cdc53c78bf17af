// Package seeder generates tournament fixtures: a games feed file and a
// matching set of picks, either written to disk or submitted against a
// running service.
package seeder

import "time"

// Config controls fixture generation.
type Config struct {
	// GamesFile is where the generated game feed is written.
	GamesFile string

	// PicksFile is where generated picks are written. Ignored when BaseURL
	// is set.
	PicksFile string

	// BaseURL, when set, submits generated picks to a running service via
	// POST /picks instead of writing PicksFile.
	BaseURL string

	// NumGames is the number of games in the generated tournament.
	NumGames int

	// NumPlayers is the number of players generating picks. Each player
	// picks every game.
	NumPlayers int

	// Timeout bounds each HTTP request when submitting.
	Timeout time.Duration
}
