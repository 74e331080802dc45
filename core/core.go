// Package core has the orchestration for ranking, scoring and recomputing players.
package core

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/huangsam/gridiron/core/algo"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/outwriter"
	"github.com/huangsam/gridiron/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteRankings ranks the league and writes the filtered list.
// It serves as the main entry point for the 'rank' command.
func ExecuteRankings(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	ranked, err := GetRankingResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteRankings(ranked, cfg, time.Since(start))
}

// ExecutePlayer ranks the league and writes the breakdown of cfg.PlayerID.
func ExecutePlayer(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	player, err := GetPlayerResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WritePlayer(player, cfg)
}

// ExecuteRecompute rederives every season's points under cfg.Format and writes
// them next to the default-format points.
func ExecuteRecompute(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.WriteHeader(os.Stderr, cfg)
	}
	snap, err := LoadLeague(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	recomputed := algo.RecomputeStatsCache(snap.Stats, cfg.Format)
	rows := outwriter.BuildRecomputeRows(snap.Players, snap.Stats, recomputed, cfg.Position)
	return outwriter.WriteRecompute(rows, cfg)
}

// ExecuteSnapshot fetches a fresh league snapshot and writes it as JSON so later
// runs can work offline with --snapshot.
func ExecuteSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.WriteHeader(os.Stderr, cfg)
	}
	snap, err := fetchLeague(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSnapshot(snap, cfg)
}

// ExecuteWeights displays the blend weights in effect.
// This is a static display that does not need league data.
func ExecuteWeights(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.WriteWeights(cfg.ComputedWeights, cfg)
}

// GetRankingResults ranks the league and returns the players that pass the
// position and limit filters. The run is tracked when an analysis store is configured.
func GetRankingResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.RankedPlayer, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.WriteHeader(os.Stderr, cfg)
	}

	snap, err := LoadLeague(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	if len(snap.Players) == 0 {
		return nil, errors.New("no players to rank")
	}

	ctx = beginRunTracking(ctx, cfg, mgr, start)
	ranked := rankLeague(snap, cfg)
	finishRunTracking(ctx, mgr, ranked)

	return algo.FilterPlayers(ranked, cfg.Position, cfg.ResultLimit), nil
}

// GetPlayerResult ranks the league and returns the entry for cfg.PlayerID,
// which may be an id or a full name.
func GetPlayerResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.RankedPlayer, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.WriteHeader(os.Stderr, cfg)
	}
	snap, err := LoadLeague(ctx, cfg, mgr)
	if err != nil {
		return schema.RankedPlayer{}, err
	}
	return findRanked(rankLeague(snap, cfg), cfg.PlayerID)
}
