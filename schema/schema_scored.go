package schema

// ScoredPlayer is the engine output for one player.
type ScoredPlayer struct {
	RawPlayer

	Usage       float64 `json:"usage"`
	HighValue   float64 `json:"high_value"`
	Efficiency  float64 `json:"efficiency"`
	Recency     float64 `json:"recency"`
	Environment float64 `json:"environment"`
	Matchup     float64 `json:"matchup"`

	Projection float64 `json:"projection"`
	Floor      float64 `json:"floor"`
	Ceiling    float64 `json:"ceiling"`
	Confidence float64 `json:"confidence"`
	Volatility float64 `json:"volatility"`
	BoomPct    int     `json:"boom_pct"`
	BustPct    int     `json:"bust_pct"`

	Role        string      `json:"role"`
	Note        string      `json:"note"`
	HasData     bool        `json:"has_data"`
	RecentYear  int         `json:"recent_year,omitempty"`
	RecentStats *SeasonStat `json:"recent_stats,omitempty"`
}

// Component returns the component score for key, or 0 for unknown keys.
func (p ScoredPlayer) Component(key ComponentKey) float64 {
	switch key {
	case ComponentUsage:
		return p.Usage
	case ComponentHighValue:
		return p.HighValue
	case ComponentEfficiency:
		return p.Efficiency
	case ComponentRecency:
		return p.Recency
	case ComponentEnvironment:
		return p.Environment
	case ComponentMatchup:
		return p.Matchup
	}
	return 0
}

// Blend returns the score for a blend mode.
func (p ScoredPlayer) Blend(mode BlendMode) float64 {
	switch mode {
	case FloorBlend:
		return p.Floor
	case CeilingBlend:
		return p.Ceiling
	default:
		return p.Projection
	}
}
