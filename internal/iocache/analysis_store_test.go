package iocache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedStart = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func samplePlayer(id string, rank int) schema.RankedPlayer {
	return schema.RankedPlayer{
		Rank:    rank,
		PosRank: "WR1",
		Tier:    schema.GetTier(rank),
		ScoredPlayer: schema.ScoredPlayer{
			RawPlayer:   schema.RawPlayer{ID: id, Name: "Player " + id, Position: schema.WR, Team: "DET"},
			Usage:       0.9,
			HighValue:   0.7,
			Efficiency:  0.6,
			Recency:     0.8,
			Environment: 0.75,
			Matchup:     0.5,
			Projection:  0.78,
			Floor:       0.7,
			Ceiling:     0.74,
			Confidence:  0.85,
			Volatility:  0.1,
			BoomPct:     28,
			BustPct:     12,
			Role:        "Alpha WR",
		},
	}
}

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), schema.DefaultFormat, map[string]any{"limit": 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, time.Now(), 10))
	assert.NoError(t, store.RecordPlayerScore(1, samplePlayer("1", 1)))

	runs, err := store.GetAllRankingRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestAnalysisStore_UnsupportedBackend(t *testing.T) {
	_, err := NewAnalysisStore(schema.RedisBackend, "redis://localhost:6379")
	assert.ErrorContains(t, err, "unsupported analysis backend")
}

func TestAnalysisStore_SQLiteLifecycle(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	format := schema.ScoringFormat{Scoring: schema.HalfPPR, TDPts: 6}
	runID, err := store.BeginRun(fixedStart, format, map[string]any{"position": "WR", "limit": 2})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordPlayerScore(runID, samplePlayer("100", 1)))
	require.NoError(t, store.RecordPlayerScore(runID, samplePlayer("200", 2)))
	require.NoError(t, store.EndRun(runID, fixedStart.Add(250*time.Millisecond), 2))

	runs, err := store.GetAllRankingRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Len(t, run.RunKey, 36)
	assert.Equal(t, "half/6pt", run.ScoringFormat)
	assert.True(t, fixedStart.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(250), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.PlayersScored)

	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "WR", params["position"])

	scores, err := store.GetAllPlayerScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "100", scores[0].PlayerID)
	assert.Equal(t, int32(1), scores[0].RankOverall)
	assert.Equal(t, "WR", scores[0].Position)
	assert.InDelta(t, 0.78, scores[0].Projection, 1e-9)
	assert.Equal(t, int32(28), scores[0].BoomPct)
	assert.Equal(t, "Alpha WR", scores[0].Role)
	assert.Equal(t, "200", scores[1].PlayerID)
}

func TestAnalysisStore_DuplicatePlayerRejected(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(fixedStart, schema.DefaultFormat, nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordPlayerScore(runID, samplePlayer("1", 1)))
	err = store.RecordPlayerScore(runID, samplePlayer("1", 1))
	assert.ErrorContains(t, err, "failed to insert player score for 1")
}

func TestAnalysisStore_EndRunUnknown(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.EndRun(999, time.Now(), 0)
	assert.ErrorContains(t, err, "failed to get start_time for run 999")
}

func TestAnalysisStore_GetStatus(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[rankingRunsTable])

	var lastID int64
	for i := range 3 {
		start := fixedStart.Add(time.Duration(i) * time.Hour)
		lastID, err = store.BeginRun(start, schema.DefaultFormat, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordPlayerScore(lastID, samplePlayer("p", 1)))
		require.NoError(t, store.EndRun(lastID, start.Add(time.Second), 5))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, fixedStart.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, fixedStart.Equal(status.OldestRunTime))
	assert.Equal(t, 15, status.TotalPlayersScored)
	assert.Equal(t, int64(3), status.TableSizes[rankingRunsTable])
	assert.Equal(t, int64(3), status.TableSizes[playerScoresTable])
}

func TestCreatePlayerScoresQuery(t *testing.T) {
	mysqlQuery := getCreatePlayerScoresQuery(schema.MySQLBackend)
	assert.Contains(t, mysqlQuery, "`gridiron_player_scores`")
	assert.Contains(t, mysqlQuery, "usage_score DOUBLE NOT NULL")
	assert.Contains(t, mysqlQuery, "player_id VARCHAR(32)")

	pgQuery := getCreatePlayerScoresQuery(schema.PostgreSQLBackend)
	assert.Contains(t, pgQuery, `"gridiron_player_scores"`)
	assert.Contains(t, pgQuery, "DOUBLE PRECISION")

	assert.Contains(t, getCreateRankingRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRankingRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRankingRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
}
