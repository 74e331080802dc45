package schema

import "strconv"

// RankedPlayer adds presentation data to a ScoredPlayer.
type RankedPlayer struct {
	Rank      int            `json:"rank"`
	PosRank   string         `json:"pos_rank"`
	Tier      string         `json:"tier"`
	Consensus *ConsensusRank `json:"consensus,omitempty"`
	ScoredPlayer
}

// GetTier returns the draft tier for an overall rank.
func GetTier(rank int) string {
	switch {
	case rank <= 5:
		return "S"
	case rank <= 15:
		return "A"
	case rank <= 30:
		return "B"
	case rank <= 60:
		return "C"
	default:
		return "D"
	}
}

// EnrichPlayers adds overall rank, positional rank and tier to an already sorted list.
// Consensus ranks are attached when present in the lookup.
func EnrichPlayers(players []ScoredPlayer, consensus map[string]ConsensusRank) []RankedPlayer {
	output := make([]RankedPlayer, len(players))
	seen := make(map[Position]int)
	for i, p := range players {
		seen[p.Position]++
		rp := RankedPlayer{
			Rank:         i + 1,
			PosRank:      string(p.Position) + strconv.Itoa(seen[p.Position]),
			Tier:         GetTier(i + 1),
			ScoredPlayer: p,
		}
		if c, ok := consensus[p.ID]; ok {
			rp.Consensus = &c
		}
		output[i] = rp
	}
	return output
}
