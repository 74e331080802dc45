package algo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/gridiron/schema"
)

func fmt1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// GenerateNote builds a short rationale from the usage clause, then optional
// depth-chart and team-context clauses. Clauses without a trigger are omitted.
func GenerateNote(player schema.RawPlayer, s *schema.SeasonStat, gp float64, depthRank int, teamWins *int, role string) string {
	if s == nil {
		return player.Name + " has limited historical data available."
	}
	g := max(gp, 1)
	var parts []string

	switch player.Position {
	case schema.QB:
		parts = append(parts, fmt.Sprintf("%s averaging %s att/g with %s TDs.",
			role, fmt1(safeDiv(s.PassAtt, g, 0)), strconv.FormatFloat(s.PassTD, 'f', -1, 64)))
	case schema.RB:
		clause := fmt.Sprintf("%s: %s touches/g", role, fmt1(safeDiv(s.Touches(), g, 0)))
		if s.RushAtt > 5 {
			clause += fmt.Sprintf(", %s yds/carry", fmt1(safeDiv(s.RushYd, s.RushAtt, 0)))
		}
		parts = append(parts, clause+".")
	default:
		clause := fmt.Sprintf("%s: %s tgt/g", role, fmt1(safeDiv(s.Tgt, g, 0)))
		if s.Tgt > 2 {
			clause += fmt.Sprintf(", %s yds/tgt", fmt1(safeDiv(s.RecYd, s.Tgt, 0)))
		}
		parts = append(parts, clause+".")
	}

	switch depthRank {
	case 1:
		parts = append(parts, "Confirmed starter.")
	case 2:
		parts = append(parts, "Listed as backup; value depends on injuries.")
	}

	if teamWins != nil {
		switch w := *teamWins; {
		case w >= 12:
			parts = append(parts, fmt.Sprintf("Strong offense (%dW team) boosts ceiling.", w))
		case w <= 5:
			parts = append(parts, fmt.Sprintf("Weak team context (%dW) limits floor.", w))
		}
	}

	return strings.Join(parts, " ")
}
