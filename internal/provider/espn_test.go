package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/huangsam/gridiron/internal/iocache"
	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const rosterJSON = `{
  "athletes": [
    {"position": "offense", "items": [
      {"id": "3139477", "displayName": "Patrick Mahomes", "jersey": "15", "age": 30,
       "position": {"abbreviation": "QB"}, "headshot": {"href": "https://img/3139477.png"}, "experience": {"years": 9}},
      {"id": "15847", "fullName": "Travis Kelce", "jersey": "87",
       "position": {"abbreviation": "TE"}, "experience": {"years": 13}},
      {"id": "4241474", "firstName": "Isiah", "lastName": "Pacheco",
       "position": {"abbreviation": "RB"}},
      {"id": "4362628", "displayName": "Hollywood Brown", "position": {"abbreviation": "WR"}},
      {"id": "3046779", "displayName": "Joe Thuney", "position": {"abbreviation": "G"}}
    ]},
    {"position": "specialTeam", "items": [
      {"id": "15683", "displayName": "Harrison Butker", "position": {"abbreviation": "PK"}}
    ]}
  ]
}`

const webStatsJSON = `{
  "categories": [
    {"name": "passing", "displayName": "Passing",
     "names": ["gamesPlayed", "completions", "passingAttempts", "passingYards", "passingTouchdowns"],
     "seasonTypes": [{"categories": [
       {"season": {"year": 2016}, "stats": ["1", "6", "35", "66", "0"]},
       {"season": {"year": 2023}, "stats": ["16", "401", "597", "4,183", "27"]},
       {"displayName": "2024", "stats": ["16", "392", "581", "3928", "26"]}
     ]}]},
    {"name": "rushing", "displayName": "Rushing",
     "names": ["rushingAttempts", "rushingYards"],
     "seasonTypes": [{"categories": [
       {"season": {"year": 2024}, "stats": ["58", "307"]}
     ]}]}
  ]
}`

func newTestESPN(t *testing.T, handler http.Handler) *ESPNClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewESPNClient(Options{})
	c.coreURL = srv.URL + "/core"
	c.siteURL = srv.URL + "/site"
	c.webURL = srv.URL + "/web"
	return c
}

func TestFetchRoster(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/site/teams/12/roster", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "gridiron")
		_, _ = fmt.Fprint(w, rosterJSON)
	}))

	players, err := c.FetchRoster(context.Background(), "kc")
	require.NoError(t, err)
	require.Len(t, players, 4)

	assert.Equal(t, "Patrick Mahomes", players[0].Name)
	assert.Equal(t, schema.QB, players[0].Position)
	assert.Equal(t, "KC", players[0].Team)
	assert.Equal(t, "https://img/3139477.png", players[0].Headshot)
	assert.Equal(t, 30, players[0].Age)
	assert.Equal(t, 9, players[0].Experience)

	assert.Equal(t, "Isiah Pacheco", players[1].Name)
	assert.Equal(t, HeadshotURL("4241474"), players[1].Headshot)
	assert.Equal(t, schema.WR, players[2].Position)
	assert.Equal(t, "Travis Kelce", players[3].Name)
}

func TestFetchRoster_UnknownTeam(t *testing.T) {
	c := NewESPNClient(Options{})
	_, err := c.FetchRoster(context.Background(), "XYZ")
	assert.ErrorContains(t, err, `unknown team "XYZ"`)
}

func TestFetchRoster_Alias(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/site/teams/28/roster", r.URL.Path)
		_, _ = fmt.Fprint(w, `{"athletes": []}`)
	}))
	players, err := c.FetchRoster(context.Background(), "WSH")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestFetchPlayerStats_WebStats(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/web/athletes/3139477/stats", r.URL.Path)
		_, _ = fmt.Fprint(w, webStatsJSON)
	}))

	seasons, err := c.FetchPlayerStats(context.Background(), "3139477")
	require.NoError(t, err)
	require.Len(t, seasons, 2, "seasons before 2017 are skipped")

	assert.Equal(t, "4,183", seasons[2023]["passingYards"])
	assert.Equal(t, "3928", seasons[2024]["passingYards"])
	assert.Equal(t, "58", seasons[2024]["rushingAttempts"])
}

func TestFetchPlayerStats_OverviewFallback(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/athletes/1/stats":
			_, _ = fmt.Fprint(w, `{"categories": []}`)
		case "/web/athletes/1/overview":
			_, _ = fmt.Fprint(w, `{"statistics": [
				{"season": {"year": 2024}, "names": ["gamesPlayed", "receptions"], "stats": ["17", "95"]},
				{"season": 2023, "stats": {"gamesPlayed": 12, "receivingYards": 880}},
				{"season": 2015, "labels": ["GP"], "stats": ["16"]}
			]}`)
		default:
			t.Fatalf("unexpected request %s", r.URL.Path)
		}
	}))

	seasons, err := c.FetchPlayerStats(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "95", seasons[2024]["receptions"])
	assert.Equal(t, float64(880), seasons[2023]["receivingYards"])
}

func TestFetchPlayerStats_CoreFallback(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/web/"):
			http.NotFound(w, r)
		case r.URL.Path == "/core/seasons/2024/types/2/athletes/2/statistics":
			_, _ = fmt.Fprint(w, `{"splits": {"categories": [
				{"name": "general", "stats": [{"name": "gamesPlayed", "value": 15}, {"name": "fumbles", "value": 2}]},
				{"name": "rushing", "stats": [{"name": "rushingYards", "value": 1012}, {"name": "fumbles", "value": 0}]},
				{"name": "receiving", "stats": [{"name": "receptions", "value": 0}, {"name": "receptions", "value": 31}, {"name": "targets", "value": null}]}
			]}}`)
		default:
			http.NotFound(w, r)
		}
	}))

	seasons, err := c.FetchPlayerStats(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, seasons, 1)

	bag := seasons[2024]
	assert.Equal(t, float64(15), bag["gamesPlayed"])
	assert.Equal(t, float64(2), bag["fumbles"], "zero never overwrites a non-zero value")
	assert.Equal(t, float64(31), bag["receptions"], "non-zero replaces an earlier zero")
	assert.NotContains(t, bag, "targets")
}

func TestFetchPlayerStats_AllSourcesFail(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.FetchPlayerStats(context.Background(), "3")
	require.Error(t, err)

	var statusErr *StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestFetchPlayerStats_InvalidID(t *testing.T) {
	c := NewESPNClient(Options{})
	_, err := c.FetchPlayerStats(context.Background(), "../etc")
	assert.ErrorContains(t, err, "invalid athlete id")
}

func TestFetchStandings(t *testing.T) {
	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/site/standings", r.URL.Path)
		require.Equal(t, "2024", r.URL.Query().Get("season"))
		_, _ = fmt.Fprint(w, `{"children": [
			{"standings": {"entries": [
				{"team": {"abbreviation": "DET"}, "stats": [{"name": "wins", "value": 15}, {"name": "losses", "value": 2}]},
				{"team": {"abbreviation": "WSH"}, "stats": [{"abbreviation": "W", "value": 12}, {"abbreviation": "L", "value": 5}]}
			]}},
			{"children": [{"standings": {"entries": [
				{"team": {"abbreviation": "KC"}, "stats": [{"name": "wins", "value": 15}]},
				{"team": {"abbreviation": "NYG"}, "stats": [{"name": "pointsFor", "value": 273}]}
			]}}]}
		]}`)
	}))

	standings, err := c.FetchStandings(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, schema.Standings{
		"DET": {Wins: 15, Losses: 2},
		"WAS": {Wins: 12, Losses: 5},
		"KC":  {Wins: 15, Losses: 0},
	}, standings)
}

func TestFetchStandings_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, `{"standings": {"entries": [{"team": {"abbreviation": "BUF"}, "stats": [{"name": "wins", "value": 13}]}]}}`)
	}))
	t.Cleanup(srv.Close)

	store, err := iocache.NewCacheStore("provider_cache", schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	c := NewESPNClient(Options{Cache: store})
	c.siteURL = srv.URL

	for range 3 {
		standings, err := c.FetchStandings(context.Background(), 2024)
		require.NoError(t, err)
		assert.Equal(t, 13, standings["BUF"].Wins)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchStandings_StaleCacheRefetches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, `{"standings": {"entries": []}}`)
	}))
	t.Cleanup(srv.Close)

	store := &iocache.MockCacheStore{}
	store.On("Get", "standings:2024").Return([]byte(`{"BUF":{"wins":1,"losses":0}}`), cacheVersion, int64(0), nil)
	store.On("Set", "standings:2024", mock.Anything, cacheVersion, mock.AnythingOfType("int64")).Return(nil)

	c := NewESPNClient(Options{Cache: store})
	c.siteURL = srv.URL

	standings, err := c.FetchStandings(context.Background(), 2024)
	require.NoError(t, err)
	assert.Empty(t, standings)
	assert.Equal(t, int32(1), hits.Load())
	store.AssertExpectations(t)
}

func TestFetchRoster_CacheMissOnStoreError(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", "roster:KC").Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", "roster:KC", mock.Anything, cacheVersion, mock.AnythingOfType("int64")).Return(errors.New("disk full"))

	c := newTestESPN(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, rosterJSON)
	}))
	c.f.cache = store

	players, err := c.FetchRoster(context.Background(), "KC")
	require.NoError(t, err, "cache write failures are not fatal")
	assert.Len(t, players, 4)
	store.AssertExpectations(t)
}
