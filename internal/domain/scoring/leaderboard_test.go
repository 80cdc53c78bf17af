package scoring_test

import (
	"fmt"
	"testing"

	"github.com/okian/podium/internal/domain/model"
	scoring "github.com/okian/podium/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregatePlayer(t *testing.T) {
	cfg := scoring.Default()

	Convey("Given a player with a mixed bag of picks", t, func() {
		games := map[string]model.Game{
			"g1": finalGame("g1", 3, 1),
			"g2": finalGame("g2", 0, 2),
			"g3": {ID: "g3", State: model.StateScheduled},
			"g4": {ID: "g4", State: model.StateInProgress, ScoreA: model.IntPtr(1), ScoreB: model.IntPtr(0)},
		}
		picks := []model.Pick{
			{PlayerID: "p1", PlayerName: "Ada", GameID: "g1", PredictedScoreA: 2, PredictedScoreB: 1}, // correct
			{PlayerID: "p1", PlayerName: "Ada", GameID: "g2", PredictedScoreA: 1, PredictedScoreB: 0}, // wrong
			{PlayerID: "p1", PlayerName: "Ada", GameID: "g3", PredictedScoreA: 1, PredictedScoreB: 1}, // not started
			{PlayerID: "p1", PlayerName: "Ada", GameID: "gone", PredictedScoreA: 1, PredictedScoreB: 0},
		}

		Convey("When aggregating without live games", func() {
			s := scoring.AggregatePlayer(picks, games, cfg, scoring.AggregateOptions{})

			Convey("Then only scoreable final games count", func() {
				So(s.PlayerID, ShouldEqual, "p1")
				So(s.PlayerName, ShouldEqual, "Ada")
				So(s.TotalPicks, ShouldEqual, 4)
				So(s.ScoredGames, ShouldEqual, 2)
				So(s.CorrectPicks, ShouldEqual, 1)
				So(s.TotalPoints, ShouldEqual, 1)
				So(s.SkippedPicks, ShouldEqual, 2)
			})

			Convey("And accuracy is one decimal", func() {
				So(s.Accuracy, ShouldEqual, "50.0")
			})

			Convey("And the unknown game id did not abort the aggregation", func() {
				So(s.Rank, ShouldEqual, 0) // rank is the ranker's job
			})
		})

		Convey("When aggregating with live games included", func() {
			livePicks := append(picks, model.Pick{
				PlayerID: "p1", PlayerName: "Ada", GameID: "g4",
				PredictedScoreA: 2, PredictedScoreB: 0,
			})
			s := scoring.AggregatePlayer(livePicks, games, cfg, scoring.AggregateOptions{IncludeLive: true})

			Convey("Then the in-progress game scores provisionally", func() {
				So(s.ScoredGames, ShouldEqual, 3)
				So(s.CorrectPicks, ShouldEqual, 2)
			})
		})

		Convey("When the player has no scoreable games at all", func() {
			s := scoring.AggregatePlayer(
				[]model.Pick{{PlayerID: "p2", PlayerName: "Bo", GameID: "g3"}},
				games, cfg, scoring.AggregateOptions{},
			)

			Convey("Then accuracy reads 0.0 instead of dividing by zero", func() {
				So(s.ScoredGames, ShouldEqual, 0)
				So(s.Accuracy, ShouldEqual, "0.0")
			})
		})

		Convey("When the picks span multiple round buckets", func() {
			medal := finalGame("m1", 2, 1)
			medal.Name = "Gold Medal Game"
			games["m1"] = medal
			bucketPicks := append(picks, model.Pick{
				PlayerID: "p1", PlayerName: "Ada", GameID: "m1",
				PredictedScoreA: 1, PredictedScoreB: 0,
			})
			s := scoring.AggregatePlayer(bucketPicks, games, cfg, scoring.AggregateOptions{})

			Convey("Then the per-round breakdown tracks each bucket", func() {
				So(s.Rounds.GroupStage.Total, ShouldEqual, 2)
				So(s.Rounds.GroupStage.Correct, ShouldEqual, 1)
				So(s.Rounds.GroupStage.Points, ShouldEqual, 1)
				So(s.Rounds.MedalRound.Total, ShouldEqual, 1)
				So(s.Rounds.MedalRound.Correct, ShouldEqual, 1)
				So(s.Rounds.MedalRound.Points, ShouldEqual, 3)
				So(s.TotalPoints, ShouldEqual, 4)
			})
		})
	})
}

func TestRankPlayers(t *testing.T) {
	Convey("Given players with ties on points and correct picks", t, func() {
		players := []scoring.PlayerSummary{
			{PlayerID: "p1", PlayerName: "zoe", TotalPoints: 10, CorrectPicks: 5},
			{PlayerID: "p2", PlayerName: "Abe", TotalPoints: 10, CorrectPicks: 5},
			{PlayerID: "p3", PlayerName: "Cam", TotalPoints: 7, CorrectPicks: 6},
			{PlayerID: "p4", PlayerName: "Dee", TotalPoints: 7, CorrectPicks: 4},
			{PlayerID: "p5", PlayerName: "Eli", TotalPoints: 3, CorrectPicks: 2},
		}

		Convey("When ranking them", func() {
			ranked := scoring.RankPlayers(players)

			Convey("Then ties order by name ascending, case-insensitively", func() {
				So(ranked[0].PlayerName, ShouldEqual, "Abe")
				So(ranked[1].PlayerName, ShouldEqual, "zoe")
			})

			Convey("And tied totals share a rank", func() {
				So(ranked[0].Rank, ShouldEqual, 1)
				So(ranked[1].Rank, ShouldEqual, 1)
			})

			Convey("And the next distinct total takes its 1-based position", func() {
				So(ranked[2].PlayerName, ShouldEqual, "Cam")
				So(ranked[2].Rank, ShouldEqual, 3) // position, not sharedRank+1
				So(ranked[3].Rank, ShouldEqual, 3) // same total as Cam, more correct picks first
				So(ranked[4].Rank, ShouldEqual, 5)
			})

			Convey("And equal points with different correct picks still share the rank", func() {
				So(ranked[2].CorrectPicks, ShouldEqual, 6)
				So(ranked[3].CorrectPicks, ShouldEqual, 4)
				So(ranked[2].Rank, ShouldEqual, ranked[3].Rank)
			})
		})

		Convey("When ranking an already-ranked leaderboard", func() {
			once := scoring.RankPlayers(players)
			twice := scoring.RankPlayers(once)

			Convey("Then the operation is idempotent", func() {
				So(twice, ShouldResemble, once)
			})
		})
	})

	Convey("Given no players", t, func() {
		Convey("Then ranking yields an empty leaderboard", func() {
			So(scoring.RankPlayers(nil), ShouldBeEmpty)
		})
	})
}

// TestBuildLeaderboard_EndToEnd covers the classic-mode tournament scenario:
// 4 players, 20 games (12 group, 6 knockout, 2 medal), points {1,2,3},
// no exact-score bonus.
func TestBuildLeaderboard_EndToEnd(t *testing.T) {
	cfg := scoring.Default()

	games := make([]model.Game, 0, 20)
	for i := 0; i < 12; i++ {
		g := finalGame(fmt.Sprintf("grp-%d", i), 2, 1)
		g.Name = fmt.Sprintf("Group A Game %d", i)
		games = append(games, g)
	}
	for i := 0; i < 6; i++ {
		g := finalGame(fmt.Sprintf("ko-%d", i), 2, 1)
		g.Name = fmt.Sprintf("Quarterfinal %d", i)
		games = append(games, g)
	}
	for i := 0; i < 2; i++ {
		g := finalGame(fmt.Sprintf("med-%d", i), 2, 1)
		g.Name = "Gold Medal Game"
		games = append(games, g)
	}

	// correctCounts[player] = correct picks per bucket {group, knockout, medal}.
	correctCounts := map[string][3]int{
		"alice": {12, 6, 2}, // 12 + 12 + 6 = 30
		"bob":   {10, 4, 1}, // 10 + 8 + 3 = 21
		"cara":  {12, 3, 1}, // 12 + 6 + 3 = 21
		"dan":   {2, 1, 0},  // 2 + 2 + 0 = 4
	}

	picks := make([]model.Pick, 0, 80)
	for _, name := range []string{"alice", "bob", "cara", "dan"} {
		counts := correctCounts[name]
		for gi, g := range games {
			var bucket, idx int
			switch {
			case gi < 12:
				bucket, idx = 0, gi
			case gi < 18:
				bucket, idx = 1, gi-12
			default:
				bucket, idx = 2, gi-18
			}
			p := model.Pick{PlayerID: name, PlayerName: name, GameID: g.ID}
			if idx < counts[bucket] {
				p.PredictedScoreA, p.PredictedScoreB = 3, 0 // win_a, correct
			} else {
				p.PredictedScoreA, p.PredictedScoreB = 0, 3 // win_b, wrong
			}
			picks = append(picks, p)
		}
	}

	Convey("Given the full 4-player, 20-game classic tournament", t, func() {
		Convey("When building the leaderboard", func() {
			board := scoring.BuildLeaderboard(picks, games, cfg, scoring.AggregateOptions{})

			Convey("Then totals are per-round correct counts times point values", func() {
				So(board, ShouldHaveLength, 4)
				So(board[0].PlayerName, ShouldEqual, "alice")
				So(board[0].TotalPoints, ShouldEqual, 30)
				So(board[3].PlayerName, ShouldEqual, "dan")
				So(board[3].TotalPoints, ShouldEqual, 4)
			})

			Convey("And the points tie breaks on correct picks then name", func() {
				// bob and cara both total 21; cara has 16 correct, bob 15.
				So(board[1].PlayerName, ShouldEqual, "cara")
				So(board[2].PlayerName, ShouldEqual, "bob")
			})

			Convey("And ranks are dense with position-based skips", func() {
				So(board[0].Rank, ShouldEqual, 1)
				So(board[1].Rank, ShouldEqual, 2)
				So(board[2].Rank, ShouldEqual, 2)
				So(board[3].Rank, ShouldEqual, 4)
			})

			Convey("And every player scored all twenty games", func() {
				for _, p := range board {
					So(p.ScoredGames, ShouldEqual, 20)
					So(p.TotalPicks, ShouldEqual, 20)
				}
			})
		})

		Convey("When building the leaderboard twice from the same inputs", func() {
			first := scoring.BuildLeaderboard(picks, games, cfg, scoring.AggregateOptions{})
			second := scoring.BuildLeaderboard(picks, games, cfg, scoring.AggregateOptions{})

			Convey("Then the output is byte-identical; determinism is load-bearing", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}
