package algo

import "github.com/huangsam/gridiron/schema"

// MetricKey names a per-game or per-opportunity rate in a position distribution.
type MetricKey string

// Metrics collected into position distributions.
const (
	MetricAttPG        MetricKey = "att_pg"
	MetricFptsPG       MetricKey = "fpts_pg"
	MetricFptsPerAtt   MetricKey = "fpts_per_att"
	MetricPassTDPG     MetricKey = "pass_td_pg"
	MetricRushYdPG     MetricKey = "rush_yd_pg"
	MetricTouchesPG    MetricKey = "touches_pg"
	MetricFptsPerTouch MetricKey = "fpts_per_touch"
	MetricRushTDPG     MetricKey = "rush_td_pg"
	MetricRecPG        MetricKey = "rec_pg"
	MetricRushShare    MetricKey = "rush_share"
	MetricTgtPG        MetricKey = "tgt_pg"
	MetricFptsPerTgt   MetricKey = "fpts_per_tgt"
	MetricRecYdPerTgt  MetricKey = "rec_yd_per_tgt"
	MetricRecTDPG      MetricKey = "rec_td_pg"
	MetricTgtShare     MetricKey = "tgt_share"
)

// metricInput is the context a metric is computed from.
type metricInput struct {
	stat        schema.SeasonStat
	gp          float64 // games played, at least 1
	teamTargets float64
	teamRush    float64
}

func newMetricInput(s schema.SeasonStat, teamTargets, teamRush float64) metricInput {
	return metricInput{stat: s, gp: max(s.GP, 1), teamTargets: teamTargets, teamRush: teamRush}
}

// extractors compute each metric. Per-opportunity rates are zero below a minimum
// opportunity count to keep tiny samples out of the population.
var extractors = map[MetricKey]func(in metricInput) float64{
	MetricAttPG:    func(in metricInput) float64 { return safeDiv(in.stat.PassAtt, in.gp, 0) },
	MetricFptsPG:   func(in metricInput) float64 { return safeDiv(in.stat.Fpts, in.gp, 0) },
	MetricPassTDPG: func(in metricInput) float64 { return safeDiv(in.stat.PassTD, in.gp, 0) },
	MetricRushYdPG: func(in metricInput) float64 { return safeDiv(in.stat.RushYd, in.gp, 0) },
	MetricFptsPerAtt: func(in metricInput) float64 {
		if in.stat.PassAtt > 10 {
			return safeDiv(in.stat.Fpts, in.stat.PassAtt, 0)
		}
		return 0
	},
	MetricTouchesPG: func(in metricInput) float64 { return safeDiv(in.stat.Touches(), in.gp, 0) },
	MetricRushTDPG:  func(in metricInput) float64 { return safeDiv(in.stat.RushTD, in.gp, 0) },
	MetricRecPG:     func(in metricInput) float64 { return safeDiv(in.stat.Rec, in.gp, 0) },
	MetricFptsPerTouch: func(in metricInput) float64 {
		if t := in.stat.Touches(); t > 4 {
			return safeDiv(in.stat.Fpts, t, 0)
		}
		return 0
	},
	MetricRushShare: func(in metricInput) float64 { return safeDiv(in.stat.RushAtt, in.teamRush, 0) },
	MetricTgtPG:     func(in metricInput) float64 { return safeDiv(in.stat.Tgt, in.gp, 0) },
	MetricRecTDPG:   func(in metricInput) float64 { return safeDiv(in.stat.RecTD, in.gp, 0) },
	MetricFptsPerTgt: func(in metricInput) float64 {
		if in.stat.Tgt > 2 {
			return safeDiv(in.stat.Fpts, in.stat.Tgt, 0)
		}
		return 0
	},
	MetricRecYdPerTgt: func(in metricInput) float64 {
		if in.stat.Tgt > 2 {
			return safeDiv(in.stat.RecYd, in.stat.Tgt, 0)
		}
		return 0
	},
	MetricTgtShare: func(in metricInput) float64 { return safeDiv(in.stat.Tgt, in.teamTargets, 0) },
}

type weightedMetric struct {
	key    MetricKey
	weight float64
}

// positionStrategy ties a position to the metrics behind its component scores.
type positionStrategy struct {
	metrics    []MetricKey // collected into the distribution
	usage      MetricKey
	efficiency MetricKey
	highValue  []weightedMetric
}

var receiverMetrics = []MetricKey{
	MetricTgtPG, MetricFptsPG, MetricFptsPerTgt, MetricRecYdPerTgt, MetricRecTDPG, MetricTgtShare,
}

var strategies = map[schema.Position]positionStrategy{
	schema.QB: {
		metrics:    []MetricKey{MetricAttPG, MetricFptsPG, MetricFptsPerAtt, MetricPassTDPG, MetricRushYdPG},
		usage:      MetricAttPG,
		efficiency: MetricFptsPerAtt,
		highValue: []weightedMetric{
			{MetricPassTDPG, 0.70},
			{MetricRushYdPG, 0.30},
		},
	},
	schema.RB: {
		metrics:    []MetricKey{MetricTouchesPG, MetricFptsPG, MetricFptsPerTouch, MetricRushTDPG, MetricRecPG, MetricRushShare},
		usage:      MetricTouchesPG,
		efficiency: MetricFptsPerTouch,
		highValue: []weightedMetric{
			{MetricRushTDPG, 0.40},
			{MetricRecPG, 0.35},
			{MetricRushShare, 0.25},
		},
	},
	schema.WR: {
		metrics:    receiverMetrics,
		usage:      MetricTgtPG,
		efficiency: MetricFptsPerTgt,
		highValue: []weightedMetric{
			{MetricRecTDPG, 0.30},
			{MetricRecYdPerTgt, 0.40},
			{MetricTgtShare, 0.30},
		},
	},
	// TE leans harder on touchdown rate than WR does.
	schema.TE: {
		metrics:    receiverMetrics,
		usage:      MetricTgtPG,
		efficiency: MetricFptsPerTgt,
		highValue: []weightedMetric{
			{MetricRecTDPG, 0.45},
			{MetricRecYdPerTgt, 0.30},
			{MetricTgtShare, 0.25},
		},
	},
}
