package algo

import (
	"math"
	"slices"

	"github.com/huangsam/gridiron/schema"
)

const (
	noDataConfidence = 0.3
	defaultTeamWins  = 8
	matchupBaseline  = 5.0
	volatilityMinGP  = 4
	recencyMinGP     = 2
)

// recencyWeights apply to the three most recent seasons, newest first.
var recencyWeights = [3]float64{0.55, 0.30, 0.15}

// depthScores maps depth rank to its environment score. Unlisted players sit
// above third-string because many charts are incomplete.
var depthScores = map[int]float64{
	1: 8.0,
	2: 5.0,
	3: 2.5,
}

const unlistedDepthScore = 4.5

// Confidence maps games played to a [0.3, 1] reliability factor.
func Confidence(gp float64) float64 {
	return clamp(gp/12, 0.30, 1.0)
}

// shrink pulls a percentile toward the neutral midpoint by (1 - conf).
func shrink(pct, conf float64) float64 {
	return pct*conf + neutralPercentile*(1-conf)
}

// WeightedFptsPerGame averages points per game over the three most recent
// seasons, skipping seasons under two games. Returns 0 without a usable season.
func WeightedFptsPerGame(seasons schema.PlayerSeasons) float64 {
	years := seasons.YearsDesc()
	var total, wsum float64
	for i := 0; i < min(len(years), len(recencyWeights)); i++ {
		s := seasons[years[i]]
		if s.GP < recencyMinGP {
			continue
		}
		total += recencyWeights[i] * s.Fpts / max(s.GP, 1)
		wsum += recencyWeights[i]
	}
	return safeDiv(total, wsum, 0)
}

// Volatility scales the coefficient of variation of points per game across
// seasons with at least four games to [0, 10]. Fewer than two seasons gives 5.
func Volatility(seasons schema.PlayerSeasons) float64 {
	years := seasons.YearsDesc()
	slices.Reverse(years)

	var fpg []float64
	for _, y := range years {
		if s := seasons[y]; s.GP >= volatilityMinGP {
			fpg = append(fpg, safeDiv(s.Fpts, max(s.GP, 1), 0))
		}
	}
	if len(fpg) < 2 {
		return 5.0
	}

	var sum float64
	for _, v := range fpg {
		sum += v
	}
	mean := sum / float64(len(fpg))
	var sq float64
	for _, v := range fpg {
		sq += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(sq / float64(len(fpg)))
	cv := safeDiv(stdDev, mean, 0)
	return round2(clamp(cv*16, 0, 10))
}

// DepthScore returns the environment depth score for a rank in 0..3.
func DepthScore(depthRank int) float64 {
	if v, ok := depthScores[depthRank]; ok {
		return v
	}
	return unlistedDepthScore
}

// TeamScore converts a win total to [1, 10]. Nil means unknown and uses the league-average 8.
// A recorded winless season scores the minimum.
func TeamScore(teamWins *int) float64 {
	wins := defaultTeamWins
	if teamWins != nil {
		wins = *teamWins
	}
	return clamp(float64(wins)*10/17, 1, 10)
}

// blend combines component scores with weights in a fixed order so float sums
// are reproducible. recencyScale multiplies the recency term.
func blend(weights map[schema.ComponentKey]float64, p *schema.ScoredPlayer, recencyScale float64) float64 {
	var total float64
	for _, key := range schema.AllComponents {
		w, ok := weights[key]
		if !ok || w == 0 {
			continue
		}
		term := w * p.Component(key)
		if key == schema.ComponentRecency {
			term *= recencyScale
		}
		total += term
	}
	return round2(clamp(total, 0, 10))
}

// ScorePlayer scores one player with the default blend weights.
func ScorePlayer(player schema.RawPlayer, seasons schema.PlayerSeasons, dist *Distributions, depthRank int, teamWins *int) schema.ScoredPlayer {
	return Engine{}.ScorePlayer(player, seasons, dist, depthRank, teamWins)
}

// ScorePlayer computes component scores, blends and descriptors for one player.
// It never fails: missing stats, charts or standings fall back to neutral values.
func (e Engine) ScorePlayer(player schema.RawPlayer, seasons schema.PlayerSeasons, dist *Distributions, depthRank int, teamWins *int) schema.ScoredPlayer {
	best, year, hasData := BestSeason(seasons, scoringMinGP)
	var s *schema.SeasonStat
	gp := 1.0
	conf := noDataConfidence
	if hasData {
		s = &best
		gp = max(best.GP, 1)
		conf = Confidence(best.GP)
	}

	out := schema.ScoredPlayer{
		RawPlayer:  player,
		HasData:    hasData,
		RecentYear: year,
		Matchup:    matchupBaseline,
	}
	if hasData {
		recent := best
		out.RecentStats = &recent
	}

	pos := player.Position
	var teamTargets, teamRush float64
	if dist != nil {
		teamTargets, teamRush = dist.TeamTargets[player.Team], dist.TeamRush[player.Team]
	}
	value := func(key MetricKey) float64 {
		if s == nil {
			return 0
		}
		return extractors[key](newMetricInput(*s, teamTargets, teamRush))
	}

	usagePct, hvPct, effPct := neutralPercentile, neutralPercentile, neutralPercentile
	if strat, ok := strategies[pos]; ok {
		usagePct = dist.percentile(pos, strat.usage, value(strat.usage))
		hvPct = 0
		for _, wm := range strat.highValue {
			hvPct += wm.weight * dist.percentile(pos, wm.key, value(wm.key))
		}
		effPct = dist.percentile(pos, strat.efficiency, value(strat.efficiency))
	}
	out.Usage = To10(usagePct)
	out.HighValue = To10(hvPct)
	out.Efficiency = To10(shrink(effPct, conf))

	recencyPct := neutralPercentile
	if wfpg := WeightedFptsPerGame(seasons); wfpg > 0 {
		recencyPct = dist.percentile(pos, MetricFptsPG, wfpg)
	}
	out.Recency = To10(shrink(recencyPct, conf))

	out.Environment = round2(0.60*DepthScore(depthRank) + 0.40*TeamScore(teamWins))

	out.Projection = blend(e.weights(schema.ProjectionBlend), &out, 1)
	out.Floor = blend(e.weights(schema.FloorBlend), &out, conf)
	out.Ceiling = blend(e.weights(schema.CeilingBlend), &out, 1)
	// The floor blend leans on usage and the ceiling blend on high-value work, so for
	// most players the floor lands above the ceiling and is clamped to it. Floor and
	// BustPct then track the ceiling.
	out.Floor = min(out.Floor, out.Ceiling)
	out.Confidence = round2(conf)
	out.Volatility = Volatility(seasons)
	out.BoomPct = int(roundHalfUp(clamp((out.Ceiling-5)*20, 0, 90)))
	out.BustPct = int(roundHalfUp(clamp((5-out.Floor)*20, 0, 90)))

	out.Role = Role(pos, s, gp)
	out.Note = GenerateNote(player, s, gp, depthRank, teamWins, out.Role)
	return out
}
