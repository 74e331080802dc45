package algo

import "github.com/huangsam/gridiron/schema"

// FantasyPoints returns the season point total for format, rounded to a whole number.
func FantasyPoints(s schema.SeasonStat, format schema.ScoringFormat) float64 {
	return roundHalfUp(s.PassYd*0.04 +
		s.PassTD*format.PassingTDPoints() +
		s.PassInt*-2 +
		s.RushYd*0.1 +
		s.RushTD*6 +
		s.Rec*format.ReceptionPoints() +
		s.RecYd*0.1 +
		s.RecTD*6 +
		s.Fum*-2)
}

// RecomputeStatsCache returns a new cache with every season's points rederived
// under format. The input cache is not modified and shares no maps with the output.
func RecomputeStatsCache(cache schema.StatsCache, format schema.ScoringFormat) schema.StatsCache {
	if cache == nil {
		return nil
	}
	out := make(schema.StatsCache, len(cache))
	for id, seasons := range cache {
		if seasons == nil {
			out[id] = nil
			continue
		}
		fresh := make(schema.PlayerSeasons, len(seasons))
		for year, s := range seasons {
			s.Fpts = FantasyPoints(s, format)
			fresh[year] = s
		}
		out[id] = fresh
	}
	return out
}
