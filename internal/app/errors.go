package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotConfigured = errors.New("service not configured")
	ErrFeedStart     = errors.New("feed start failed")
	ErrSeedPicks     = errors.New("seed picks failed")
)
