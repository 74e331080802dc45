package algo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/gridiron/schema"
)

// fieldSynonyms lists provider field names per canonical field, in priority order.
var fieldSynonyms = []struct {
	set   func(*schema.SeasonStat, float64)
	names []string
}{
	{func(s *schema.SeasonStat, v float64) { s.GP = v }, []string{"gamesPlayed"}},
	{func(s *schema.SeasonStat, v float64) { s.PassYd = v }, []string{"passingYards", "netPassingYards"}},
	{func(s *schema.SeasonStat, v float64) { s.PassTD = v }, []string{"passingTouchdowns"}},
	{func(s *schema.SeasonStat, v float64) { s.PassInt = v }, []string{"interceptions"}},
	{func(s *schema.SeasonStat, v float64) { s.PassCmp = v }, []string{"completions"}},
	{func(s *schema.SeasonStat, v float64) { s.PassAtt = v }, []string{"passingAttempts", "netPassingAttempts"}},
	{func(s *schema.SeasonStat, v float64) { s.PassRat = v }, []string{"QBRating", "quarterbackRating", "ESPNQBRating"}},
	{func(s *schema.SeasonStat, v float64) { s.RushYd = v }, []string{"rushingYards"}},
	{func(s *schema.SeasonStat, v float64) { s.RushTD = v }, []string{"rushingTouchdowns"}},
	{func(s *schema.SeasonStat, v float64) { s.RushAtt = v }, []string{"rushingAttempts"}},
	{func(s *schema.SeasonStat, v float64) { s.Rec = v }, []string{"receptions"}},
	{func(s *schema.SeasonStat, v float64) { s.RecYd = v }, []string{"receivingYards"}},
	{func(s *schema.SeasonStat, v float64) { s.RecTD = v }, []string{"receivingTouchdowns"}},
	{func(s *schema.SeasonStat, v float64) { s.Tgt = v }, []string{"receivingTargets"}},
	{func(s *schema.SeasonStat, v float64) { s.Fum = v }, []string{
		"fumblesLost", "passingFumblesLost", "rushingFumblesLost", "receivingFumblesLost", "fumbles",
	}},
}

// toFloat coerces a raw provider value to a finite number.
// The second return is false for nil, non-numeric or non-finite values.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// lookup returns the first synonym present in raw with a usable value.
func lookup(raw schema.RawStatsBag, names []string) float64 {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}
	return 0
}

// NormalizeSeason maps a raw provider stat bag to a SeasonStat and computes fantasy
// points for format. The second return is false when the season shows no activity.
func NormalizeSeason(raw schema.RawStatsBag, format schema.ScoringFormat) (schema.SeasonStat, bool) {
	var s schema.SeasonStat
	for _, field := range fieldSynonyms {
		field.set(&s, lookup(raw, field.names))
	}
	if s.GP < 0 {
		s.GP = 0
	}
	s.Fpts = FantasyPoints(s, format)

	if s.GP > 0 || s.PassYd > 0 || s.RushYd > 0 || s.RecYd > 0 || s.Fpts > 0 {
		return s, true
	}
	return schema.SeasonStat{}, false
}

// NormalizeSeasons normalizes every season of one player, dropping inactive ones.
func NormalizeSeasons(seasons map[int]schema.RawStatsBag, format schema.ScoringFormat) schema.PlayerSeasons {
	out := make(schema.PlayerSeasons, len(seasons))
	for year, raw := range seasons {
		if s, ok := NormalizeSeason(raw, format); ok {
			out[year] = s
		}
	}
	return out
}
