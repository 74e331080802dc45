package algo

import (
	"slices"

	"github.com/huangsam/gridiron/schema"
)

// Minimum games played when picking a player's best season.
const (
	distributionMinGP = 4
	scoringMinGP      = 3
)

// PositionDistribution holds ascending reference populations per metric.
type PositionDistribution map[MetricKey][]float64

// Distributions is the league-wide reference data for percentile scoring.
type Distributions struct {
	Positions   map[schema.Position]PositionDistribution `json:"positions"`
	TeamTargets map[string]float64                       `json:"team_targets"`
	TeamRush    map[string]float64                       `json:"team_rush"`
}

// percentile ranks value for a position metric. Unknown positions or metrics are neutral.
func (d *Distributions) percentile(pos schema.Position, key MetricKey, value float64) float64 {
	if d == nil {
		return neutralPercentile
	}
	arr, ok := d.Positions[pos][key]
	if !ok {
		return neutralPercentile
	}
	return PercentileRank(arr, value)
}

// BestSeason returns the most recent season with at least minGP games, falling back
// to the most recent season of any length. ok is false when there are no seasons.
func BestSeason(seasons schema.PlayerSeasons, minGP float64) (stat schema.SeasonStat, year int, ok bool) {
	years := seasons.YearsDesc()
	for _, y := range years {
		if seasons[y].GP >= minGP {
			return seasons[y], y, true
		}
	}
	if len(years) > 0 {
		return seasons[years[0]], years[0], true
	}
	return schema.SeasonStat{}, 0, false
}

// BuildDistributions collects per-position metric populations from each player's
// best season, along with team target and rush totals. Team totals count every
// tracked player; the populations only count players with a qualifying season.
func BuildDistributions(players []schema.RawPlayer, cache schema.StatsCache) *Distributions {
	d := &Distributions{
		Positions:   make(map[schema.Position]PositionDistribution, len(strategies)),
		TeamTargets: make(map[string]float64),
		TeamRush:    make(map[string]float64),
	}
	for pos, strat := range strategies {
		pd := make(PositionDistribution, len(strat.metrics))
		for _, key := range strat.metrics {
			pd[key] = []float64{}
		}
		d.Positions[pos] = pd
	}

	for _, p := range players {
		s, _, ok := BestSeason(cache[p.ID], distributionMinGP)
		if !ok {
			continue
		}
		d.TeamTargets[p.Team] += s.Tgt
		d.TeamRush[p.Team] += s.RushAtt
	}

	for _, p := range players {
		strat, known := strategies[p.Position]
		if !known {
			continue
		}
		s, _, ok := BestSeason(cache[p.ID], distributionMinGP)
		if !ok || s.GP < distributionMinGP {
			continue
		}
		in := newMetricInput(s, d.TeamTargets[p.Team], d.TeamRush[p.Team])
		pd := d.Positions[p.Position]
		for _, key := range strat.metrics {
			pd[key] = append(pd[key], extractors[key](in))
		}
	}

	for _, pd := range d.Positions {
		for _, arr := range pd {
			slices.Sort(arr)
		}
	}
	return d
}
