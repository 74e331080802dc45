// Package agg assembles league snapshots from upstream providers and local files.
package agg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/gridiron/core/algo"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/provider"
	"github.com/huangsam/gridiron/schema"
	"github.com/sirupsen/logrus"
)

// statsBatchSize caps the number of concurrent player stats requests.
const statsBatchSize = 8

// BuildSnapshot fetches everything a ranking run needs for cfg.Teams.
// Per-player stats are best effort: a failed fetch is logged and the player
// keeps an empty record. Rank sources are only consulted when cfg.Consensus is set.
func BuildSnapshot(ctx context.Context, cfg *contract.Config, p contract.Provider, sources ...contract.RankSource) (*schema.LeagueSnapshot, error) {
	log := contract.Logger()
	start := time.Now()

	// 1. Rosters
	players, err := fetchRosters(ctx, cfg, p)
	if err != nil {
		return nil, err
	}

	// 2. Per-player stats
	stats, err := fetchAllStats(ctx, cfg, p, players)
	if err != nil {
		return nil, err
	}

	// 3. Standings and depth charts
	standings, err := resolveStandings(ctx, cfg, p)
	if err != nil {
		return nil, err
	}
	var charts schema.DepthCharts
	if cfg.DepthChartsFile != "" {
		if charts, err = LoadDepthCharts(cfg.DepthChartsFile); err != nil {
			return nil, err
		}
	}

	snap := &schema.LeagueSnapshot{
		FetchedAt:   time.Now().UTC(),
		Season:      cfg.Season,
		Players:     players,
		Stats:       stats,
		DepthCharts: charts,
		Standings:   standings,
	}

	// 4. Consensus ranks
	if cfg.Consensus {
		snap.Consensus = fetchConsensus(ctx, players, sources)
	}

	log.WithFields(logrus.Fields{
		"players": len(players),
		"teams":   len(cfg.Teams),
		"elapsed": time.Since(start).String(),
	}).Info("Built league snapshot")
	return snap, nil
}

// fetchRosters loads every configured team. A failing team is skipped with a
// warning; it is an error only when no team produced players.
func fetchRosters(ctx context.Context, cfg *contract.Config, p contract.Provider) ([]schema.RawPlayer, error) {
	var (
		players []schema.RawPlayer
		errs    []error
	)
	for _, team := range cfg.Teams {
		roster, err := p.FetchRoster(ctx, team)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			contract.LogWarn(fmt.Sprintf("Roster fetch failed for %s", team), err)
			errs = append(errs, err)
			continue
		}
		players = append(players, roster...)
	}
	if len(players) == 0 {
		if len(errs) > 0 {
			return nil, fmt.Errorf("no rosters could be fetched: %w", errors.Join(errs...))
		}
		return nil, errors.New("no players found for the selected teams")
	}
	return players, nil
}

type statsResult struct {
	id      string
	seasons schema.PlayerSeasons
}

// fetchAllStats fetches and normalizes stats for every player with a bounded
// worker pool. Missing or failed stats become empty records.
func fetchAllStats(ctx context.Context, cfg *contract.Config, p contract.Provider, players []schema.RawPlayer) (schema.StatsCache, error) {
	idCh := make(chan string, len(players))
	resultCh := make(chan statsResult, len(players))
	var wg sync.WaitGroup

	workers := max(1, min(cfg.Workers, statsBatchSize))
	for range workers {
		wg.Go(func() {
			for id := range idCh {
				resultCh <- fetchStats(ctx, p, id)
			}
		})
	}

	for _, pl := range players {
		idCh <- pl.ID
	}
	close(idCh)

	wg.Wait()
	close(resultCh)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cache := make(schema.StatsCache, len(players))
	for r := range resultCh {
		cache[r.id] = r.seasons
	}
	return cache, nil
}

func fetchStats(ctx context.Context, p contract.Provider, id string) statsResult {
	if ctx.Err() != nil {
		return statsResult{id: id, seasons: schema.PlayerSeasons{}}
	}
	raw, err := p.FetchPlayerStats(ctx, id)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Stats fetch failed for player %s", id), err)
		return statsResult{id: id, seasons: schema.PlayerSeasons{}}
	}
	return statsResult{id: id, seasons: algo.NormalizeSeasons(raw, schema.DefaultFormat)}
}

// resolveStandings prefers a standings file and falls back to the provider.
// A provider failure leaves standings empty so team scores use the neutral default.
func resolveStandings(ctx context.Context, cfg *contract.Config, p contract.Provider) (schema.Standings, error) {
	if cfg.StandingsFile != "" {
		return LoadStandings(cfg.StandingsFile)
	}
	standings, err := p.FetchStandings(ctx, cfg.Season)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		contract.LogWarn(fmt.Sprintf("Standings fetch failed for %d", cfg.Season), err)
		return nil, nil
	}
	return standings, nil
}

// fetchConsensus resolves each player against every rank source. A failed
// source is logged and contributes no ranks.
func fetchConsensus(ctx context.Context, players []schema.RawPlayer, sources []contract.RankSource) map[string]schema.ConsensusRank {
	bySource := make(map[string]map[string]int, len(sources))
	for _, src := range sources {
		ranks, err := src.FetchRanks(ctx)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Consensus source %s unavailable", src.Name()), err)
			continue
		}
		bySource[src.Name()] = ranks
	}
	if len(bySource) == 0 {
		return nil
	}

	consensus := make(map[string]schema.ConsensusRank)
	for _, pl := range players {
		rank := schema.ConsensusRank{
			Sleeper: provider.LookupRank(bySource["sleeper"], pl),
			ESPN:    provider.LookupRank(bySource["espn"], pl),
		}
		if rank.Sleeper > 0 || rank.ESPN > 0 {
			consensus[pl.ID] = rank
		}
	}
	return consensus
}
