package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/gridiron/core/algo"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// ErrPlayerNotFound is wrapped by lookups that match no player.
var ErrPlayerNotFound = errors.New("not found")

// newEngine configures the scoring engine from cfg.
func newEngine(cfg *contract.Config) algo.Engine {
	return algo.Engine{Weights: cfg.ComputedWeights, Workers: cfg.Workers}
}

// rankLeague scores every player of snap under cfg.Format. Overall and
// positional ranks come from the full list before any filtering.
func rankLeague(snap *schema.LeagueSnapshot, cfg *contract.Config) []schema.RankedPlayer {
	scored := newEngine(cfg).Rank(snap.Players, snap.Stats, snap.DepthCharts, snap.Standings, cfg.Format)
	return schema.EnrichPlayers(scored, snap.Consensus)
}

// findRanked looks a player up by id, then by normalized name.
func findRanked(players []schema.RankedPlayer, query string) (schema.RankedPlayer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return schema.RankedPlayer{}, fmt.Errorf("player id is required")
	}
	for _, p := range players {
		if p.ID == query {
			return p, nil
		}
	}
	name := schema.NormalizeName(query)
	var matches []schema.RankedPlayer
	for _, p := range players {
		if schema.NormalizeName(p.Name) == name {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return schema.RankedPlayer{}, fmt.Errorf("player %q %w", query, ErrPlayerNotFound)
	case 1:
		return matches[0], nil
	default:
		return schema.RankedPlayer{}, fmt.Errorf("player name %q is ambiguous (%d matches), use the id", query, len(matches))
	}
}
