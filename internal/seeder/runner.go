package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/okian/podium/pkg/logger"
)

// Run generates the fixtures described by cfg. The games file is always
// written; picks are either written next to it or submitted to a running
// service when BaseURL is set.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("seeder")

	games := generateGames(cfg)
	if err := writeJSONFile(cfg.GamesFile, games); err != nil {
		return fmt.Errorf("write games file: %w", err)
	}
	log.Info(ctx, "wrote games fixture",
		logger.String("file", cfg.GamesFile),
		logger.Int("games", len(games)),
	)

	picks := generatePicks(games, cfg)
	if cfg.BaseURL == "" {
		if err := writeJSONFile(cfg.PicksFile, picks); err != nil {
			return fmt.Errorf("write picks file: %w", err)
		}
		log.Info(ctx, "wrote picks fixture",
			logger.String("file", cfg.PicksFile),
			logger.Int("picks", len(picks)),
		)
		return nil
	}

	submitted, err := submitPicks(ctx, cfg, picks)
	log.Info(ctx, "submitted picks",
		logger.String("url", cfg.BaseURL),
		logger.Int("submitted", submitted),
		logger.Int("total", len(picks)),
	)
	return err
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// submitPicks posts each pick to the service. Submission stops at the first
// transport error; HTTP-level rejections are counted and skipped.
func submitPicks(ctx context.Context, cfg *Config, picks []pickRecord) (int, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	url := cfg.BaseURL + "/picks"

	submitted := 0
	for _, pick := range picks {
		body, err := json.Marshal(pick)
		if err != nil {
			return submitted, fmt.Errorf("marshal pick: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return submitted, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return submitted, fmt.Errorf("post pick: %w", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusOK {
			submitted++
		}
	}
	return submitted, nil
}
