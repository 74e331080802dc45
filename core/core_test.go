package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/iocache"
	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const leagueFile = "../testdata/league.json"

func testConfig() *contract.Config {
	return &contract.Config{
		Format:       schema.DefaultFormat,
		Position:     schema.AllPositions,
		ResultLimit:  50,
		Workers:      2,
		Teams:        slices.Clone(schema.NFLTeams),
		Season:       2024,
		SnapshotFile: leagueFile,
		Consensus:    true,
		Precision:    1,
		Output:       schema.JSONOut,
	}
}

func quietContext() context.Context {
	return WithSuppressHeader(context.Background())
}

func TestGetRankingResults(t *testing.T) {
	ranked, err := GetRankingResults(quietContext(), testConfig(), nil)
	require.NoError(t, err)
	require.Len(t, ranked, 14)

	for i, p := range ranked {
		assert.Equal(t, i+1, p.Rank)
		assert.Equal(t, schema.GetTier(i+1), p.Tier)
		if i > 0 {
			assert.LessOrEqual(t, p.Projection, ranked[i-1].Projection, "sorted by projection")
		}
		assert.LessOrEqual(t, p.Floor, p.Ceiling)
	}

	rookie, err := findRanked(ranked, "5000001")
	require.NoError(t, err)
	assert.False(t, rookie.HasData)
	assert.Equal(t, 0.3, rookie.Confidence)

	gibbs, err := findRanked(ranked, "4429795")
	require.NoError(t, err)
	require.NotNil(t, gibbs.Consensus)
	assert.Equal(t, 3, gibbs.Consensus.Sleeper)
}

func TestGetRankingResults_Filters(t *testing.T) {
	cfg := testConfig()
	cfg.Position = schema.WR
	cfg.ResultLimit = 3

	ranked, err := GetRankingResults(quietContext(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	for i, p := range ranked {
		assert.Equal(t, schema.WR, p.Position)
		assert.Equal(t, "WR"+string(rune('1'+i)), p.PosRank, "positional ranks survive filtering")
	}
}

func TestGetRankingResults_TeamFilter(t *testing.T) {
	cfg := testConfig()
	cfg.Teams = []string{"BUF"}

	ranked, err := GetRankingResults(quietContext(), cfg, nil)
	require.NoError(t, err)
	assert.Len(t, ranked, 4)
	for _, p := range ranked {
		assert.Equal(t, "BUF", p.Team)
	}

	cfg.Teams = []string{"NYJ"}
	_, err = GetRankingResults(quietContext(), cfg, nil)
	assert.ErrorContains(t, err, "no players for teams")
}

func TestGetRankingResults_FormatChangesPoints(t *testing.T) {
	cfg := testConfig()
	ppr, err := GetRankingResults(quietContext(), cfg, nil)
	require.NoError(t, err)

	cfg.Format = schema.ScoringFormat{Scoring: schema.PPR, TDPts: 6}
	six, err := GetRankingResults(quietContext(), cfg, nil)
	require.NoError(t, err)

	mahomesPPR, err := findRanked(ppr, "3139477")
	require.NoError(t, err)
	mahomesSix, err := findRanked(six, "3139477")
	require.NoError(t, err)
	assert.Equal(t, mahomesPPR.RecentStats.Fpts+2*mahomesPPR.RecentStats.PassTD, mahomesSix.RecentStats.Fpts)
}

func TestGetRankingResults_Tracking(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginRun", mock.AnythingOfType("time.Time"), schema.DefaultFormat, mock.Anything).Return(int64(7), nil)
	store.On("RecordPlayerScore", int64(7), mock.AnythingOfType("schema.RankedPlayer")).Return(nil)
	store.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 14).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(store)

	cfg := testConfig()
	cfg.ResultLimit = 5
	ranked, err := GetRankingResults(quietContext(), cfg, mgr)
	require.NoError(t, err)
	assert.Len(t, ranked, 5)

	store.AssertNumberOfCalls(t, "RecordPlayerScore", 14)
	store.AssertExpectations(t)
}

func TestGetRankingResults_TrackingFailureIsNotFatal(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginRun", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db locked"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetAnalysisStore").Return(store)

	ranked, err := GetRankingResults(quietContext(), testConfig(), mgr)
	require.NoError(t, err)
	assert.Len(t, ranked, 14)
	store.AssertNotCalled(t, "RecordPlayerScore", mock.Anything, mock.Anything)
}

func TestGetPlayerResult(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr string
	}{
		{"by id", "15847", "15847", ""},
		{"by name", "amon-ra st. brown", "4374302", ""},
		{"by name without punctuation", "Amon-Ra St Brown", "4374302", ""},
		{"unknown", "Tom Brady", "", `player "Tom Brady" not found`},
		{"empty", "  ", "", "player id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.PlayerID = tt.query
			got, err := GetPlayerResult(quietContext(), cfg, nil)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.NotEmpty(t, got.Note)
			assert.NotEmpty(t, got.Role)
		})
	}
}

func TestFindRanked_Ambiguous(t *testing.T) {
	players := []schema.RankedPlayer{
		{ScoredPlayer: schema.ScoredPlayer{RawPlayer: schema.RawPlayer{ID: "1", Name: "Mike Williams", Position: schema.WR}}},
		{ScoredPlayer: schema.ScoredPlayer{RawPlayer: schema.RawPlayer{ID: "2", Name: "Mike Williams", Position: schema.WR}}},
	}
	_, err := findRanked(players, "Mike Williams")
	assert.ErrorContains(t, err, "ambiguous")
}

func TestLoadLeague_ContextSnapshot(t *testing.T) {
	snap := &schema.LeagueSnapshot{Players: []schema.RawPlayer{{ID: "1", Name: "A", Position: schema.WR, Team: "KC"}}}
	ctx := WithSnapshot(quietContext(), snap)

	got, err := LoadLeague(ctx, testConfig(), nil)
	require.NoError(t, err)
	assert.Same(t, snap, got)
}

func TestLoadLeague_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	standings := filepath.Join(dir, "standings.yaml")
	require.NoError(t, os.WriteFile(standings, []byte("KC: {wins: 4, losses: 13}\n"), 0o644))

	cfg := testConfig()
	cfg.StandingsFile = standings
	cfg.Consensus = false

	snap, err := LoadLeague(quietContext(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.Standings{"KC": {Wins: 4, Losses: 13}}, snap.Standings)
	assert.Nil(t, snap.Consensus)
	assert.NotEmpty(t, snap.DepthCharts)
}

func TestLoadLeague_Live(t *testing.T) {
	p := &contract.MockProvider{}
	p.On("FetchRoster", mock.Anything, "KC").Return([]schema.RawPlayer{{ID: "15847", Name: "Travis Kelce", Position: schema.TE, Team: "KC"}}, nil)
	p.On("FetchPlayerStats", mock.Anything, "15847").Return(map[int]schema.RawStatsBag{
		2024: {"gamesPlayed": 17, "receptions": 97, "receivingYards": 823},
	}, nil)
	p.On("FetchStandings", mock.Anything, 2024).Return(schema.Standings{"KC": {Wins: 15, Losses: 2}}, nil)

	cacheStore := &iocache.MockCacheStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetProviderStore").Return(cacheStore)

	orig := newUpstream
	t.Cleanup(func() { newUpstream = orig })
	newUpstream = func(_ *contract.Config, store contract.CacheStore) (contract.Provider, []contract.RankSource) {
		assert.Same(t, cacheStore, store)
		return p, nil
	}

	cfg := testConfig()
	cfg.SnapshotFile = ""
	cfg.Teams = []string{"KC"}
	cfg.Consensus = false

	snap, err := LoadLeague(quietContext(), cfg, mgr)
	require.NoError(t, err)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, float64(17), snap.Stats["15847"][2024].GP)
	p.AssertExpectations(t)
}

func TestExecuteRankings_JSONFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rankings.json")
	cfg := testConfig()
	cfg.OutputFile = out
	cfg.ResultLimit = 4

	require.NoError(t, ExecuteRankings(quietContext(), cfg, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var players []schema.RankedPlayer
	require.NoError(t, json.Unmarshal(data, &players))
	require.Len(t, players, 4)
	assert.Equal(t, 1, players[0].Rank)
}

func TestExecuteRecompute_CSVFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "recompute.csv")
	cfg := testConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = out
	cfg.Format = schema.ScoringFormat{Scoring: schema.Standard, TDPts: 6}

	require.NoError(t, ExecuteRecompute(quietContext(), cfg, nil))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Patrick Mahomes")
	assert.Contains(t, string(data), "std/6pt")
}

func TestExecuteWeights(t *testing.T) {
	out := filepath.Join(t.TempDir(), "weights.json")
	cfg := testConfig()
	cfg.OutputFile = out

	require.NoError(t, ExecuteWeights(quietContext(), cfg, nil))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"projection"`)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	_, ok := getRunID(ctx)
	assert.False(t, ok)
	assert.Nil(t, snapshotFromContext(ctx))

	ctx = withRunID(WithSuppressHeader(ctx), 42)
	assert.True(t, shouldSuppressHeader(ctx))
	runID, ok := getRunID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), runID)
}
