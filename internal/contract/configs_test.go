package contract

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/gridiron/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Format:       "ppr",
		TDPts:        4,
		Position:     "all",
		Limit:        50,
		Workers:      4,
		Season:       2024,
		Precision:    1,
		Output:       "text",
		Color:        "no",
		LogLevel:     "warn",
		Rate:         5,
		CacheBackend: "sqlite",
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "half ppr six point", mutate: func(in *ConfigRawInput) { in.Format = "HALF"; in.TDPts = 6 }},
		{name: "empty format defaults to ppr", mutate: func(in *ConfigRawInput) { in.Format = ""; in.TDPts = 0 }},
		{name: "invalid format", mutate: func(in *ConfigRawInput) { in.Format = "superflex" }, expectError: true},
		{name: "invalid td points", mutate: func(in *ConfigRawInput) { in.TDPts = 5 }, expectError: true},
		{name: "negative td points", mutate: func(in *ConfigRawInput) { in.TDPts = -4 }, expectError: true},
		{name: "invalid position", mutate: func(in *ConfigRawInput) { in.Position = "K" }, expectError: true},
		{name: "invalid limit (zero)", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (too large)", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "season too early", mutate: func(in *ConfigRawInput) { in.Season = 2010 }, expectError: true},
		{name: "invalid rate", mutate: func(in *ConfigRawInput) { in.Rate = 0 }, expectError: true},
		{name: "invalid precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "out.parquet" }},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "unknown team", mutate: func(in *ConfigRawInput) { in.Teams = "KC,XYZ" }, expectError: true},
		{name: "blank team list entries", mutate: func(in *ConfigRawInput) { in.Teams = " , " }, expectError: true},
		{name: "invalid cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mongo" }, expectError: true},
		{name: "redis analysis backend", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "redis"; in.AnalysisDBConnect = "redis://localhost:6379/0" }, expectError: true},
		{name: "redis cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis"; in.CacheDBConnect = "redis://localhost:6379/0" }},
		{name: "same sqlite default paths are distinct", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "sqlite" }},
		{
			name: "same sqlite explicit path",
			mutate: func(in *ConfigRawInput) {
				in.CacheDBConnect = "/tmp/g.db"
				in.AnalysisBackend = "sqlite"
				in.AnalysisDBConnect = "/tmp/g.db"
			},
			expectError: true,
		},
		{
			name: "custom weights not summing to one",
			mutate: func(in *ConfigRawInput) {
				in.Weights.Floor = &BlendWeightsRaw{Usage: floatPtr(0.5), Efficiency: floatPtr(0.2)}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.Format = "std"
	input.TDPts = 6
	input.Position = "wr"
	input.Teams = "kc, buf,KC"
	input.LogLevel = "debug"
	input.PlayerID = " 3139477 "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.ScoringFormat{Scoring: schema.Standard, TDPts: 6}, cfg.Format)
	assert.Equal(t, schema.WR, cfg.Position)
	assert.Equal(t, []string{"KC", "BUF"}, cfg.Teams)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "3139477", cfg.PlayerID)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.False(t, cfg.UseColors)
}

func TestProcessAndValidateDefaultTeams(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))
	assert.Len(t, cfg.Teams, 32)
	assert.Equal(t, schema.AllPositions, cfg.Position)
}

func TestProcessCustomWeights(t *testing.T) {
	input := validInput()
	input.Weights.Ceiling = &BlendWeightsRaw{
		HighValue:   floatPtr(0.6),
		Usage:       floatPtr(0.3),
		Environment: floatPtr(0.1),
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	ceiling := cfg.ComputedWeights[schema.CeilingBlend]
	assert.Len(t, ceiling, 3)
	assert.InDelta(t, 0.6, ceiling[schema.ComponentHighValue], 1e-9)
	_, hasEfficiency := ceiling[schema.ComponentEfficiency]
	assert.False(t, hasEfficiency, "custom table replaces the default")

	assert.Equal(t, schema.GetDefaultWeights(schema.ProjectionBlend), cfg.ComputedWeights[schema.ProjectionBlend])
	assert.Equal(t, schema.GetDefaultWeights(schema.FloorBlend), cfg.ComputedWeights[schema.FloorBlend])
}

func TestProcessWeightsRawInput(t *testing.T) {
	t.Run("negative weight rejected", func(t *testing.T) {
		_, err := ProcessWeightsRawInput(WeightsRawInput{
			Projection: &BlendWeightsRaw{Usage: floatPtr(1.2), Matchup: floatPtr(-0.2)},
		}, true)
		assert.Error(t, err)
	})

	t.Run("sum not validated", func(t *testing.T) {
		got, err := ProcessWeightsRawInput(WeightsRawInput{
			Floor: &BlendWeightsRaw{Usage: floatPtr(0.4)},
		}, false)
		require.NoError(t, err)
		assert.Equal(t, map[schema.ComponentKey]float64{schema.ComponentUsage: 0.4}, got[schema.FloorBlend])
	})

	t.Run("empty blend skipped", func(t *testing.T) {
		got, err := ProcessWeightsRawInput(WeightsRawInput{Floor: &BlendWeightsRaw{}}, true)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/gridiron", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/gridiron", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=gridiron", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"redis valid", schema.RedisBackend, "redis://localhost:6379/0", false},
		{"redis tls valid", schema.RedisBackend, "rediss://cache.internal:6380", false},
		{"redis wrong scheme", schema.RedisBackend, "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Teams:           []string{"KC"},
		ComputedWeights: ComputeWeights(nil),
	}
	clone := cfg.Clone()
	clone.Teams[0] = "BUF"
	clone.ComputedWeights[schema.FloorBlend][schema.ComponentUsage] = 0

	assert.Equal(t, "KC", cfg.Teams[0])
	assert.InDelta(t, 0.5, cfg.ComputedWeights[schema.FloorBlend][schema.ComponentUsage], 1e-9)
	assert.Nil(t, clone.CustomWeights)
}

func TestCloneWithQuery(t *testing.T) {
	base := &Config{
		Format:      schema.DefaultFormat,
		Position:    schema.AllPositions,
		ResultLimit: 50,
	}

	got, err := base.CloneWithQuery("half", 6, "te", 10)
	require.NoError(t, err)
	assert.Equal(t, schema.ScoringFormat{Scoring: schema.HalfPPR, TDPts: 6}, got.Format)
	assert.Equal(t, schema.TE, got.Position)
	assert.Equal(t, 10, got.ResultLimit)
	assert.Equal(t, schema.DefaultFormat, base.Format)

	same, err := base.CloneWithQuery("", 0, "", 0)
	require.NoError(t, err)
	assert.Equal(t, base.ResultLimit, same.ResultLimit)


	invalid := []struct {
		name     string
		scoring  string
		tdPts    int
		position string
		limit    int
		want     string
	}{
		{"bad format", "bogus", 0, "", 0, "invalid format"},
		{"odd td points", "", 3, "", 0, "td-pts must be 4 or 6 (received 3)"},
		{"negative td points", "", -4, "", 0, "td-pts must be 4 or 6 (received -4)"},
		{"bad position", "", 0, "k", 0, "position"},
		{"negative limit", "", 0, "", -1, "limit must be greater than 0"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := base.CloneWithQuery(tt.scoring, tt.tdPts, tt.position, tt.limit)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSQLiteDefaultPathsDiffer(t *testing.T) {
	assert.NotEqual(t, filepath.Base(GetCacheDBFilePath()), filepath.Base(GetAnalysisDBFilePath()))
}
