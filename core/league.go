package core

import (
	"context"
	"fmt"
	"slices"

	"github.com/huangsam/gridiron/core/agg"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/provider"
	"github.com/huangsam/gridiron/schema"
)

// newUpstream builds the roster/stats provider and the consensus rank sources.
var newUpstream = func(cfg *contract.Config, store contract.CacheStore) (contract.Provider, []contract.RankSource) {
	opts := provider.Options{Rate: cfg.Rate, Cache: store, Logger: contract.Logger()}
	return provider.NewESPNClient(opts), []contract.RankSource{
		provider.NewSleeperSource(opts),
		provider.NewESPNFantasySource(opts),
	}
}

// LoadLeague returns the league snapshot for a run. A snapshot attached to ctx
// wins, then cfg.SnapshotFile, then a live fetch through the provider cache.
func LoadLeague(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.LeagueSnapshot, error) {
	if snap := snapshotFromContext(ctx); snap != nil {
		return snap, nil
	}
	if cfg.SnapshotFile != "" {
		return loadSnapshotFile(cfg)
	}
	return fetchLeague(ctx, cfg, mgr)
}

// fetchLeague always goes to the provider, ignoring cfg.SnapshotFile.
func fetchLeague(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.LeagueSnapshot, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetProviderStore()
	}
	p, sources := newUpstream(cfg, store)
	return agg.BuildSnapshot(ctx, cfg, p, sources...)
}

// loadSnapshotFile reads the snapshot and applies the team filter and any
// standings or depth chart files on top of it.
func loadSnapshotFile(cfg *contract.Config) (*schema.LeagueSnapshot, error) {
	snap, err := agg.LoadSnapshot(cfg.SnapshotFile)
	if err != nil {
		return nil, err
	}

	if len(cfg.Teams) > 0 && len(cfg.Teams) < len(schema.NFLTeams) {
		snap.Players = slices.DeleteFunc(snap.Players, func(p schema.RawPlayer) bool {
			return !slices.Contains(cfg.Teams, p.Team)
		})
		if len(snap.Players) == 0 {
			return nil, fmt.Errorf("snapshot %s has no players for teams %v", cfg.SnapshotFile, cfg.Teams)
		}
	}

	if cfg.StandingsFile != "" {
		if snap.Standings, err = agg.LoadStandings(cfg.StandingsFile); err != nil {
			return nil, err
		}
	}
	if cfg.DepthChartsFile != "" {
		if snap.DepthCharts, err = agg.LoadDepthCharts(cfg.DepthChartsFile); err != nil {
			return nil, err
		}
	}
	if !cfg.Consensus {
		snap.Consensus = nil
	}
	return snap, nil
}
