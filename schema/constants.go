package schema

// Custom string types for type safety.
type (
	// Position represents an offensive fantasy position.
	Position string

	// Scoring represents the reception-scoring variant of a league.
	Scoring string

	// ComponentKey represents one of the six component scores.
	ComponentKey string

	// BlendMode represents one of the three blended outputs.
	BlendMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All fantasy positions supported.
const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"

	// AllPositions is the position filter value that disables filtering.
	AllPositions Position = "ALL"
)

// All scoring variants supported.
const (
	PPR      Scoring = "ppr" // default
	HalfPPR  Scoring = "half"
	Standard Scoring = "std"
)

// Component keys used in the blend weights.
const (
	ComponentUsage       ComponentKey = "usage"
	ComponentHighValue   ComponentKey = "high_value"
	ComponentEfficiency  ComponentKey = "efficiency"
	ComponentRecency     ComponentKey = "recency"
	ComponentEnvironment ComponentKey = "environment"
	ComponentMatchup     ComponentKey = "matchup"
)

// All blend modes supported.
const (
	ProjectionBlend BlendMode = "projection"
	FloorBlend      BlendMode = "floor"
	CeilingBlend    BlendMode = "ceiling"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// MinSeason is the earliest season the providers parse.
const MinSeason = 2017

// NFLTeams lists the franchise abbreviations in alphabetical order.
var NFLTeams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

// FantasyPositions lists the scored positions in display order.
var FantasyPositions = []Position{QB, RB, WR, TE}

// AllComponents lists the component keys in display order.
var AllComponents = []ComponentKey{
	ComponentUsage,
	ComponentHighValue,
	ComponentEfficiency,
	ComponentRecency,
	ComponentEnvironment,
	ComponentMatchup,
}

// AllBlendModes returns a list of all supported blend modes.
var AllBlendModes = []BlendMode{ProjectionBlend, FloorBlend, CeilingBlend}

// ValidPositions lists all valid position filters.
var ValidPositions = map[Position]struct{}{
	QB:           {},
	RB:           {},
	WR:           {},
	TE:           {},
	AllPositions: {},
}

// ValidScorings lists all valid scoring variants.
var ValidScorings = map[Scoring]struct{}{
	PPR:      {},
	HalfPPR:  {},
	Standard: {},
}

// ValidTDPoints lists the allowed passing touchdown values.
var ValidTDPoints = map[int]struct{}{
	4: {},
	6: {},
}

// ValidBlendModes lists all valid blend modes.
var ValidBlendModes = map[BlendMode]struct{}{
	ProjectionBlend: {},
	FloorBlend:      {},
	CeilingBlend:    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidAnalysisBackends lists the backends that can hold ranking runs.
var ValidAnalysisBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default weight map for a given blend.
// The floor recency term is scaled by confidence when blended.
func GetDefaultWeights(mode BlendMode) map[ComponentKey]float64 {
	switch mode {
	case FloorBlend:
		return map[ComponentKey]float64{
			ComponentUsage:       0.50,
			ComponentEfficiency:  0.20,
			ComponentRecency:     0.15,
			ComponentEnvironment: 0.15,
		}
	case CeilingBlend:
		return map[ComponentKey]float64{
			ComponentUsage:       0.25,
			ComponentHighValue:   0.45,
			ComponentEfficiency:  0.20,
			ComponentEnvironment: 0.10,
		}
	default: // ProjectionBlend
		return map[ComponentKey]float64{
			ComponentUsage:       0.35,
			ComponentHighValue:   0.20,
			ComponentEfficiency:  0.15,
			ComponentRecency:     0.15,
			ComponentEnvironment: 0.10,
			ComponentMatchup:     0.05,
		}
	}
}
