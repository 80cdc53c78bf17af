package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/pickstore"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDeps struct {
	seen map[string]bool

	enqueueSuccess bool
	enqueued       []model.PickSubmission

	board    []types.Entry
	boardErr error

	player    types.Entry
	playerErr error

	games    []types.Game
	gamesErr error

	lastLimit       int
	lastIncludeLive *bool
}

func (m *mockDeps) SeenAndRecord(_ context.Context, id string) bool {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(_ context.Context, id string) {
	delete(m.seen, id)
}

func (m *mockDeps) Size() int64 {
	return int64(len(m.seen))
}

func (m *mockDeps) Enqueue(_ context.Context, sub model.PickSubmission) bool {
	if !m.enqueueSuccess {
		return false
	}
	m.enqueued = append(m.enqueued, sub)
	return true
}

func (m *mockDeps) Leaderboard(_ context.Context, limit int, includeLive *bool) ([]types.Entry, error) {
	m.lastLimit = limit
	m.lastIncludeLive = includeLive
	if m.boardErr != nil {
		return nil, m.boardErr
	}
	if limit > 0 && limit < len(m.board) {
		return m.board[:limit], nil
	}
	return m.board, nil
}

func (m *mockDeps) Player(_ context.Context, playerID string, includeLive *bool) (types.Entry, error) {
	m.lastIncludeLive = includeLive
	if m.playerErr != nil {
		return types.Entry{}, m.playerErr
	}
	return m.player, nil
}

func (m *mockDeps) Games(_ context.Context) ([]types.Game, error) {
	if m.gamesErr != nil {
		return nil, m.gamesErr
	}
	return m.games, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{enqueueSuccess: true}
		mux := newMux(deps)

		Convey("Then the health endpoint is accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint is accessible", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "started")
		})

		Convey("And unknown paths fall through to not found", func() {
			req := httptest.NewRequest("GET", "/unknown", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPicksEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{enqueueSuccess: true}
		mux := newMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/picks", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		validBody := `{
			"submission_id": "sub-1",
			"player_id": "alice",
			"player_name": "Alice",
			"game_id": "game-1",
			"predicted_score_a": 3,
			"predicted_score_b": 1
		}`

		Convey("When posting a valid pick", func() {
			w := post(validBody)

			Convey("Then it is accepted and enqueued", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].PlayerID, ShouldEqual, "alice")
				So(deps.enqueued[0].PredictedScoreA, ShouldEqual, 3)

				var ack map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["status"], ShouldEqual, "accepted")
				So(ack["duplicate"], ShouldEqual, false)
			})
		})

		Convey("When posting the same submission twice", func() {
			first := post(validBody)
			second := post(validBody)

			Convey("Then the replay is acknowledged as a duplicate", func() {
				So(first.Code, ShouldEqual, http.StatusAccepted)
				So(second.Code, ShouldEqual, http.StatusOK)
				So(second.Body.String(), ShouldContainSubstring, "duplicate")
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When posting malformed JSON", func() {
			w := post(`{not json`)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When required fields are missing", func() {
			w := post(`{"player_id": "alice"}`)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "submission_id")
			})
		})

		Convey("When the predicted result is not a known outcome", func() {
			w := post(`{
				"submission_id": "sub-2",
				"player_id": "alice",
				"game_id": "game-1",
				"predicted_result": "win_c"
			}`)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an explicit confidence is supplied", func() {
			w := post(`{
				"submission_id": "sub-3",
				"player_id": "alice",
				"game_id": "game-1",
				"predicted_result": "win_a",
				"confidence": 0.8
			}`)

			Convey("Then the submission carries it through", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].Confidence, ShouldNotBeNil)
				So(*deps.enqueued[0].Confidence, ShouldEqual, 0.8)
			})
		})

		Convey("When the queue is saturated", func() {
			deps.enqueueSuccess = false
			w := post(validBody)

			Convey("Then backpressure is signalled and the id released", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.Size(), ShouldEqual, 0)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest("GET", "/picks", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a board with three players", t, func() {
		deps := &mockDeps{
			board: []types.Entry{
				{Rank: 1, PlayerID: "alice", TotalPoints: 9},
				{Rank: 2, PlayerID: "bob", TotalPoints: 6},
				{Rank: 3, PlayerID: "cara", TotalPoints: 3},
			},
		}
		mux := newMux(deps)

		get := func(path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When requesting without a limit", func() {
			w := get("/leaderboard")

			Convey("Then the default limit applies", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 100)

				var entries []types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].PlayerID, ShouldEqual, "alice")
			})
		})

		Convey("When requesting with a limit", func() {
			w := get("/leaderboard?limit=2")

			Convey("Then the board is truncated", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var entries []types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			w := get("/leaderboard?limit=101")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
			})
		})

		Convey("When the limit is not a number", func() {
			w := get("/leaderboard?limit=abc")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When include_live is passed", func() {
			w := get("/leaderboard?include_live=true")

			Convey("Then the override reaches the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastIncludeLive, ShouldNotBeNil)
				So(*deps.lastIncludeLive, ShouldBeTrue)
			})
		})

		Convey("When include_live is garbage", func() {
			w := get("/leaderboard?include_live=maybe")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the service fails", func() {
			deps.boardErr = fmt.Errorf("board unavailable")
			w := get("/leaderboard")

			Convey("Then the failure maps to 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})

	Convey("Given an empty board", t, func() {
		deps := &mockDeps{}
		mux := newMux(deps)

		Convey("When requesting the leaderboard", func() {
			req := httptest.NewRequest("GET", "/leaderboard", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then an empty array is returned, not null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}

func TestPlayerEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{
			player: types.Entry{Rank: 2, PlayerID: "bob", PlayerName: "Bob", Accuracy: "50.0"},
		}
		mux := newMux(deps)

		Convey("When requesting a known player", func() {
			req := httptest.NewRequest("GET", "/players/bob", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the entry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var entry types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &entry), ShouldBeNil)
				So(entry.PlayerID, ShouldEqual, "bob")
				So(entry.Rank, ShouldEqual, 2)
			})
		})

		Convey("When the player is unknown", func() {
			deps.playerErr = fmt.Errorf("%w: nobody", pickstore.ErrPlayerNotFound)
			req := httptest.NewRequest("GET", "/players/nobody", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it maps to 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the path has no player id", func() {
			req := httptest.NewRequest("GET", "/players/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestGamesEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{
			games: []types.Game{
				{ID: "game-1", State: "final", Round: "group_stage", TeamA: "Falcons", TeamB: "Bears"},
				{ID: "game-2", State: "scheduled", Round: "medal_round", TeamA: "Falcons", TeamB: "Otters"},
			},
		}
		mux := newMux(deps)

		Convey("When listing games", func() {
			req := httptest.NewRequest("GET", "/games", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the snapshot is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var games []types.Game
				So(json.Unmarshal(w.Body.Bytes(), &games), ShouldBeNil)
				So(games, ShouldHaveLength, 2)
				So(games[0].Round, ShouldEqual, "group_stage")
			})
		})

		Convey("When the feed is empty", func() {
			deps.games = nil
			req := httptest.NewRequest("GET", "/games", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then an empty array is returned, not null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}
