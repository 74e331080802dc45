package algo

import (
	"sort"
	"sync"

	"github.com/huangsam/gridiron/schema"
)

// Engine scores and ranks players. The zero value uses the default blend
// weights and scores on the calling goroutine.
type Engine struct {
	// Weights overrides the blend weights per mode; missing modes use defaults.
	Weights map[schema.BlendMode]map[schema.ComponentKey]float64

	// Workers above 1 scores players concurrently.
	Workers int
}

func (e Engine) weights(mode schema.BlendMode) map[schema.ComponentKey]float64 {
	if w, ok := e.Weights[mode]; ok && len(w) > 0 {
		return w
	}
	return schema.GetDefaultWeights(mode)
}

// BuildDepthRanks maps player id to depth rank 1..3, or 0 when unlisted.
// Players deeper than third-string count as unlisted.
func BuildDepthRanks(players []schema.RawPlayer, charts schema.DepthCharts) map[string]int {
	ranks := make(map[string]int, len(players))
	for _, p := range players {
		ranks[p.ID] = 0
		order := charts[p.Team][p.Position]
		for i, id := range order {
			if id == p.ID {
				if i < 3 {
					ranks[p.ID] = i + 1
				}
				break
			}
		}
	}
	return ranks
}

// TeamWins returns the team's wins, or nil when the team is missing from the
// standings or has not played yet.
func TeamWins(standings schema.Standings, team string) *int {
	rec, ok := standings[team]
	if !ok || (rec.Wins == 0 && rec.Losses == 0) {
		return nil
	}
	wins := rec.Wins
	return &wins
}

// RankPlayers scores every player with the default engine. See Engine.Rank.
func RankPlayers(players []schema.RawPlayer, cache schema.StatsCache, charts schema.DepthCharts, standings schema.Standings, format schema.ScoringFormat) []schema.ScoredPlayer {
	return Engine{}.Rank(players, cache, charts, standings, format)
}

// Rank scores every player and sorts by projection, highest first. Ties keep
// input order. The cache is expected to hold default-format points and is
// recomputed into a copy for any other format.
func (e Engine) Rank(players []schema.RawPlayer, cache schema.StatsCache, charts schema.DepthCharts, standings schema.Standings, format schema.ScoringFormat) []schema.ScoredPlayer {
	if !format.IsDefault() {
		cache = RecomputeStatsCache(cache, format)
	}
	dist := BuildDistributions(players, cache)
	depthRanks := BuildDepthRanks(players, charts)

	scored := make([]schema.ScoredPlayer, len(players))
	score := func(i int) {
		p := players[i]
		scored[i] = e.ScorePlayer(p, cache[p.ID], dist, depthRanks[p.ID], TeamWins(standings, p.Team))
	}

	if e.Workers > 1 && len(players) > 1 {
		indexes := make(chan int, len(players))
		var wg sync.WaitGroup
		for range min(e.Workers, len(players)) {
			wg.Go(func() {
				for i := range indexes {
					score(i)
				}
			})
		}
		for i := range players {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	} else {
		for i := range players {
			score(i)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Projection > scored[j].Projection
	})
	return scored
}

// FilterPlayers keeps players at pos (or all for AllPositions) and returns the
// first limit of them. A non-positive limit keeps everything.
func FilterPlayers[T interface{ GetPosition() schema.Position }](players []T, pos schema.Position, limit int) []T {
	out := players
	if pos != "" && pos != schema.AllPositions {
		out = make([]T, 0, len(players))
		for _, p := range players {
			if p.GetPosition() == pos {
				out = append(out, p)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		return out[:limit]
	}
	return out
}
