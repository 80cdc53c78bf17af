package scoring

import (
	"sort"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// RankPlayers sorts player summaries and assigns dense competition ranks.
// Sort order: total points descending, correct picks descending, then player
// name ascending case-insensitively as the final deterministic tie-break.
//
// Ranks are dense competition ranks: the first player is rank 1; a player
// whose total equals the previous player's total shares that rank; a player
// with a strictly lower total takes their 1-based position in the sorted
// list, not previous rank plus one. Sorting an already-ranked leaderboard
// reproduces the same order and ranks.
func RankPlayers(players []PlayerSummary) []PlayerSummary {
	ranked := make([]PlayerSummary, len(players))
	copy(ranked, players)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CorrectPicks != b.CorrectPicks {
			return a.CorrectPicks > b.CorrectPicks
		}
		return strings.ToLower(a.PlayerName) < strings.ToLower(b.PlayerName)
	})

	for i := range ranked {
		if i > 0 && ranked[i].TotalPoints == ranked[i-1].TotalPoints {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}

// BuildLeaderboard groups picks by player, aggregates each player, and ranks
// the result. This is the single entry point shared by every caller so the
// formula cannot drift between surfaces.
func BuildLeaderboard(picks []model.Pick, games []model.Game, cfg Config, opts AggregateOptions) []PlayerSummary {
	cfg = cfg.Normalized()
	byID := make(map[string]model.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	byPlayer := make(map[string][]model.Pick)
	order := make([]string, 0)
	for _, p := range picks {
		if _, seen := byPlayer[p.PlayerID]; !seen {
			order = append(order, p.PlayerID)
		}
		byPlayer[p.PlayerID] = append(byPlayer[p.PlayerID], p)
	}

	summaries := make([]PlayerSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, AggregatePlayer(byPlayer[id], byID, cfg, opts))
	}
	return RankPlayers(summaries)
}
