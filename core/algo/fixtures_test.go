package algo

import (
	"fmt"

	"github.com/huangsam/gridiron/schema"
)

var fixtureTeams = []string{"KC", "BUF", "PHI", "DET", "SF", "MIA", "CIN", "BAL"}

// syntheticLeague builds a deterministic league of n players. Every eleventh
// player has no stats and every seventh has an injury-shortened latest season.
func syntheticLeague(n int) ([]schema.RawPlayer, schema.StatsCache) {
	players := make([]schema.RawPlayer, 0, n)
	cache := make(schema.StatsCache, n)
	for i := range n {
		pos := schema.FantasyPositions[i%len(schema.FantasyPositions)]
		p := schema.RawPlayer{
			ID:       fmt.Sprintf("p%03d", i),
			Name:     fmt.Sprintf("Player %d", i),
			Position: pos,
			Team:     fixtureTeams[i%len(fixtureTeams)],
		}
		players = append(players, p)
		if i%11 == 0 {
			continue
		}
		seasons := make(schema.PlayerSeasons)
		for year := 2022; year <= 2024; year++ {
			scale := float64((i*7+year)%9 + 1)
			gp := 17.0
			if year == 2024 && i%7 == 0 {
				gp = 3
			}
			s := fixtureSeason(pos, scale, gp)
			s.Fpts = FantasyPoints(s, schema.DefaultFormat)
			seasons[year] = s
		}
		cache[p.ID] = seasons
	}
	return players, cache
}

func fixtureSeason(pos schema.Position, scale, gp float64) schema.SeasonStat {
	f := gp / 17
	switch pos {
	case schema.QB:
		return schema.SeasonStat{
			GP: gp, PassAtt: (380 + scale*25) * f, PassCmp: (250 + scale*15) * f,
			PassYd: (2800 + scale*180) * f, PassTD: (14 + scale*2) * f, PassInt: (12 - scale/2) * f,
			RushAtt: (30 + scale*6) * f, RushYd: (90 + scale*45) * f, RushTD: scale / 3 * f,
		}
	case schema.RB:
		return schema.SeasonStat{
			GP: gp, RushAtt: (90 + scale*22) * f, RushYd: (380 + scale*95) * f, RushTD: (2 + scale) * f,
			Rec: (15 + scale*5) * f, Tgt: (20 + scale*6) * f, RecYd: (100 + scale*40) * f, RecTD: scale / 4 * f,
			Fum: 1 * f,
		}
	default:
		return schema.SeasonStat{
			GP: gp, Tgt: (40 + scale*12) * f, Rec: (26 + scale*8) * f,
			RecYd: (300 + scale*110) * f, RecTD: (1 + scale*0.8) * f,
		}
	}
}
