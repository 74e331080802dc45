package algo

import "github.com/huangsam/gridiron/schema"

// Role labels a player's usage pattern. Thresholds are checked top to bottom and
// the first match wins. gp should already be at least 1.
func Role(pos schema.Position, s *schema.SeasonStat, gp float64) string {
	if s == nil {
		if pos == schema.QB {
			return "Signal Caller"
		}
		return "Depth"
	}
	g := max(gp, 1)

	switch pos {
	case schema.QB:
		attPG := safeDiv(s.PassAtt, g, 0)
		switch {
		case safeDiv(s.RushYd, g, 0) >= 35:
			return "Rushing Threat"
		case attPG >= 36:
			return "Volume Passer"
		case attPG >= 28:
			return "Pocket Passer"
		default:
			return "Game Manager"
		}
	case schema.RB:
		touchesPG := safeDiv(s.Touches(), g, 0)
		switch {
		case touchesPG >= 18:
			return "Workhorse"
		case safeDiv(s.Rec, g, 0) >= 4.5:
			return "Pass-Game Back"
		case safeDiv(s.RushTD, g, 0) >= 0.5:
			return "Red-Zone Back"
		case touchesPG >= 10:
			return "Featured Back"
		default:
			return "Change of Pace"
		}
	case schema.WR:
		tgtPG := safeDiv(s.Tgt, g, 0)
		switch {
		case tgtPG >= 8:
			return "Alpha WR"
		case safeDiv(s.RecYd, max(s.Tgt, 1), 0) >= 14:
			return "Deep Threat"
		case safeDiv(s.RecTD, g, 0) >= 0.5:
			return "Red-Zone WR"
		case tgtPG >= 5:
			return "WR2 / Flex"
		default:
			return "Depth WR"
		}
	case schema.TE:
		tgtPG := safeDiv(s.Tgt, g, 0)
		switch {
		case tgtPG >= 6:
			return "Receiving TE"
		case safeDiv(s.RecTD, g, 0) >= 0.4:
			return "Red-Zone TE"
		case tgtPG >= 3:
			return "Flex TE"
		default:
			return "Blocking TE"
		}
	}
	return "Role Player"
}
