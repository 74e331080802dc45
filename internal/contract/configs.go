package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gridiron/schema"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultSeason      = 2024
	DefaultRate        = 5.0
	DefaultAddr        = "127.0.0.1:8080"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// BlendWeightsRaw holds the custom weights for a single blend (e.g. 'floor').
// Pointers distinguish a missing component from an explicit zero.
type BlendWeightsRaw struct {
	Usage       *float64 `mapstructure:"usage"`
	HighValue   *float64 `mapstructure:"high_value"`
	Efficiency  *float64 `mapstructure:"efficiency"`
	Recency     *float64 `mapstructure:"recency"`
	Environment *float64 `mapstructure:"environment"`
	Matchup     *float64 `mapstructure:"matchup"`
}

// WeightsRawInput holds all custom blend definitions from the YAML config file.
type WeightsRawInput struct {
	Projection *BlendWeightsRaw `mapstructure:"projection"`
	Floor      *BlendWeightsRaw `mapstructure:"floor"`
	Ceiling    *BlendWeightsRaw `mapstructure:"ceiling"`
}

// Config holds the runtime configuration for a ranking run.
// This struct is the "final, validated" config.
type Config struct {
	PlayerID    string
	Format      schema.ScoringFormat
	Position    schema.Position
	ResultLimit int
	Workers     int
	Teams       []string
	Season      int

	SnapshotFile    string
	DepthChartsFile string
	StandingsFile   string
	Consensus       bool

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	LogLevel logrus.Level
	Rate     float64 // Provider requests per second
	Addr     string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// CustomWeights is a mapping of [BlendMode][ComponentKey] = Weight
	CustomWeights map[schema.BlendMode]map[schema.ComponentKey]float64

	// ComputedWeights is the final weights map for each blend.
	// A custom table replaces the default table of its blend entirely.
	ComputedWeights map[schema.BlendMode]map[schema.ComponentKey]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PlayerID string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format            string  `mapstructure:"format"`
	TDPts             int     `mapstructure:"td-pts"`
	Position          string  `mapstructure:"position"`
	Limit             int     `mapstructure:"limit"`
	Workers           int     `mapstructure:"workers"`
	Teams             string  `mapstructure:"teams"`
	Season            int     `mapstructure:"season"`
	Snapshot          string  `mapstructure:"snapshot"`
	DepthCharts       string  `mapstructure:"depth-charts"`
	Standings         string  `mapstructure:"standings"`
	Consensus         bool    `mapstructure:"consensus"`
	Precision         int     `mapstructure:"precision"`
	Output            string  `mapstructure:"output"`
	OutputFile        string  `mapstructure:"output-file"`
	Width             int     `mapstructure:"width"`
	Color             string  `mapstructure:"color"`
	LogLevel          string  `mapstructure:"log-level"`
	Rate              float64 `mapstructure:"rate"`
	Addr              string  `mapstructure:"addr"`
	CacheBackend      string  `mapstructure:"cache-backend"`
	CacheDBConnect    string  `mapstructure:"cache-db-connect"`
	AnalysisBackend   string  `mapstructure:"analysis-backend"`
	AnalysisDBConnect string  `mapstructure:"analysis-db-connect"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Teams != nil {
		clone.Teams = slices.Clone(c.Teams)
	}
	clone.CustomWeights = cloneWeights(c.CustomWeights)
	clone.ComputedWeights = cloneWeights(c.ComputedWeights)
	return &clone
}

func cloneWeights(src map[schema.BlendMode]map[schema.ComponentKey]float64) map[schema.BlendMode]map[schema.ComponentKey]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[schema.BlendMode]map[schema.ComponentKey]float64, len(src))
	for mode, modeMap := range src {
		dst[mode] = make(map[schema.ComponentKey]float64, len(modeMap))
		maps.Copy(dst[mode], modeMap)
	}
	return dst
}

// CloneWithQuery creates a copy of the Config with per-request ranking overrides.
// Empty strings and zero numbers keep the existing values.
func (c *Config) CloneWithQuery(scoring string, tdPts int, position string, limit int) (*Config, error) {
	clone := c.Clone()
	if scoring != "" {
		s := schema.Scoring(strings.ToLower(scoring))
		if _, ok := schema.ValidScorings[s]; !ok {
			return nil, fmt.Errorf("invalid format '%s'. must be ppr, half, std", scoring)
		}
		clone.Format.Scoring = s
	}
	if tdPts != 0 {
		if _, ok := schema.ValidTDPoints[tdPts]; !ok {
			return nil, fmt.Errorf("td-pts must be 4 or 6 (received %d)", tdPts)
		}
		clone.Format.TDPts = tdPts
	}
	if position != "" {
		pos, err := parsePosition(position)
		if err != nil {
			return nil, err
		}
		clone.Position = pos
	}
	if limit != 0 {
		if limit < 0 || limit > MaxResultLimit {
			return nil, fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, limit)
		}
		clone.ResultLimit = limit
	}
	return clone, nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFormat(cfg, input); err != nil {
		return err
	}
	if err := processTeams(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with 'redis://' or 'rediss://'")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidAnalysisBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Both SQLite stores must not resolve to the same file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PlayerID = strings.TrimSpace(input.PlayerID)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SnapshotFile = input.Snapshot
	cfg.DepthChartsFile = input.DepthCharts
	cfg.StandingsFile = input.Standings
	cfg.Consensus = input.Consensus
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	levelStr := input.LogLevel
	if levelStr == "" {
		levelStr = logrus.WarnLevel.String()
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Position Validation ---
	pos, err := parsePosition(input.Position)
	if err != nil {
		return err
	}
	cfg.Position = pos

	// --- 4. Season and Rate Validation ---
	if input.Season < schema.MinSeason || input.Season > time.Now().Year()+1 {
		return fmt.Errorf("season must be between %d and %d (received %d)", schema.MinSeason, time.Now().Year()+1, input.Season)
	}
	cfg.Season = input.Season

	if input.Rate <= 0 {
		return fmt.Errorf("rate must be greater than 0 (received %.2f)", input.Rate)
	}
	cfg.Rate = input.Rate

	// --- 5. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 6. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processFormat validates the scoring variant and passing touchdown value.
func processFormat(cfg *Config, input *ConfigRawInput) error {
	scoring := schema.Scoring(strings.ToLower(input.Format))
	if scoring == "" {
		scoring = schema.PPR
	}
	if _, ok := schema.ValidScorings[scoring]; !ok {
		return fmt.Errorf("invalid format '%s'. must be ppr, half, std", input.Format)
	}

	tdPts := input.TDPts
	if tdPts == 0 {
		tdPts = schema.DefaultFormat.TDPts
	}
	if _, ok := schema.ValidTDPoints[tdPts]; !ok {
		return fmt.Errorf("td-pts must be 4 or 6 (received %d)", input.TDPts)
	}

	cfg.Format = schema.ScoringFormat{Scoring: scoring, TDPts: tdPts}
	return nil
}

// processTeams parses the comma-separated team filter. Empty means all teams.
func processTeams(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.Teams) == "" {
		cfg.Teams = slices.Clone(schema.NFLTeams)
		return nil
	}

	cfg.Teams = nil
	for p := range strings.SplitSeq(input.Teams, ",") {
		team := strings.ToUpper(strings.TrimSpace(p))
		if team == "" {
			continue
		}
		if !slices.Contains(schema.NFLTeams, team) {
			return fmt.Errorf("unknown team '%s'", team)
		}
		if !slices.Contains(cfg.Teams, team) {
			cfg.Teams = append(cfg.Teams, team)
		}
	}
	if len(cfg.Teams) == 0 {
		return fmt.Errorf("teams must name at least one franchise")
	}
	return nil
}

func parsePosition(s string) (schema.Position, error) {
	if s == "" {
		return schema.AllPositions, nil
	}
	pos := schema.Position(strings.ToUpper(s))
	if _, ok := schema.ValidPositions[pos]; !ok {
		return "", fmt.Errorf("invalid position '%s'. must be all, QB, RB, WR, TE", s)
	}
	return pos, nil
}

// ProcessWeightsRawInput converts WeightsRawInput into the final weights map.
// If validateSum is true, it validates that weights for each blend sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (map[schema.BlendMode]map[schema.ComponentKey]float64, error) {
	result := make(map[schema.BlendMode]map[schema.ComponentKey]float64)

	blendWeights := map[schema.BlendMode]*BlendWeightsRaw{
		schema.ProjectionBlend: weights.Projection,
		schema.FloorBlend:      weights.Floor,
		schema.CeilingBlend:    weights.Ceiling,
	}

	for _, mode := range schema.AllBlendModes {
		raw := blendWeights[mode]
		if raw == nil {
			continue
		}

		fields := map[schema.ComponentKey]*float64{
			schema.ComponentUsage:       raw.Usage,
			schema.ComponentHighValue:   raw.HighValue,
			schema.ComponentEfficiency:  raw.Efficiency,
			schema.ComponentRecency:     raw.Recency,
			schema.ComponentEnvironment: raw.Environment,
			schema.ComponentMatchup:     raw.Matchup,
		}

		modeMap := make(map[schema.ComponentKey]float64)
		sum := 0.0
		for _, key := range schema.AllComponents {
			v := fields[key]
			if v == nil {
				continue
			}
			if *v < 0 {
				return nil, fmt.Errorf("custom weight %s for blend %s must not be negative, got %.3f", key, mode, *v)
			}
			modeMap[key] = *v
			sum += *v
		}

		if len(modeMap) > 0 {
			if validateSum && (sum < 0.999 || sum > 1.001) {
				return nil, fmt.Errorf("custom weights for blend %s must sum to 1.0, got %.3f", mode, sum)
			}
			result[mode] = modeMap
		}
	}

	return result, nil
}

// processCustomWeights converts the raw input into cfg.CustomWeights and
// computes cfg.ComputedWeights for every blend.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights
	cfg.ComputedWeights = ComputeWeights(weights)
	return nil
}

// ComputeWeights resolves the weight table of each blend from custom overrides and defaults.
func ComputeWeights(custom map[schema.BlendMode]map[schema.ComponentKey]float64) map[schema.BlendMode]map[schema.ComponentKey]float64 {
	computed := make(map[schema.BlendMode]map[schema.ComponentKey]float64, len(schema.AllBlendModes))
	for _, mode := range schema.AllBlendModes {
		modeWeights := make(map[schema.ComponentKey]float64)
		if customModeWeights, ok := custom[mode]; ok {
			maps.Copy(modeWeights, customModeWeights)
		} else {
			maps.Copy(modeWeights, schema.GetDefaultWeights(mode))
		}
		computed[mode] = modeWeights
	}
	return computed
}
