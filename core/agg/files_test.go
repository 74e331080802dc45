package agg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDepthCharts(t *testing.T) {
	charts, err := LoadDepthCharts("testdata/depth_charts.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"3139477", "3046439"}, charts["KC"][schema.QB])
	assert.Equal(t, []string{"15847"}, charts["KC"][schema.TE])
	assert.Len(t, charts["BUF"][schema.WR], 4)
	assert.NotContains(t, charts, "kc")
}

func TestLoadStandings(t *testing.T) {
	standings, err := LoadStandings("testdata/standings.json")
	require.NoError(t, err)
	assert.Equal(t, schema.Standings{
		"KC":  {Wins: 15, Losses: 2},
		"BUF": {Wins: 13, Losses: 4},
		"NYG": {Wins: 3, Losses: 14},
	}, standings)
}

func TestLoadStandings_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"negative", "neg.yaml", "KC: {wins: -1, losses: 2}\n", "invalid record for KC"},
		{"malformed json", "bad.json", "{", "failed to parse"},
		{"malformed yaml", "bad.yml", "KC: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadStandings(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := LoadStandings(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.json")
	snap := &schema.LeagueSnapshot{
		FetchedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Season:    2024,
		Players:   []schema.RawPlayer{kelce, allen},
		Stats: schema.StatsCache{
			kelce.ID: {2024: {GP: 17, Rec: 97, RecYd: 823, RecTD: 3, Tgt: 133, Fpts: 198}},
			allen.ID: {},
		},
		DepthCharts: schema.DepthCharts{"KC": {schema.TE: {kelce.ID}}},
		Standings:   schema.Standings{"KC": {Wins: 15, Losses: 2}},
		Consensus:   map[string]schema.ConsensusRank{kelce.ID: {Sleeper: 40}},
	}

	require.NoError(t, SaveSnapshot(path, snap))
	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"season": 2024, "players": []}`), 0o644))

	_, err := LoadSnapshot(empty)
	assert.ErrorContains(t, err, "has no players")

	noStats := filepath.Join(dir, "nostats.json")
	require.NoError(t, os.WriteFile(noStats, []byte(`{"players": [{"id": "1", "name": "A", "position": "WR", "team": "KC"}]}`), 0o644))
	snap, err := LoadSnapshot(noStats)
	require.NoError(t, err)
	assert.NotNil(t, snap.Stats)
}
