package pickstore

import "errors"

// Sentinel kinds for pick store errors.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidPick    = errors.New("invalid pick")
)
