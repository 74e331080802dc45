package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// analysisStore returns the configured analysis store, or nil when tracking is off.
func analysisStore(mgr contract.CacheManager) contract.AnalysisStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetAnalysisStore()
}

// beginRunTracking opens a ranking run and stores its id in the returned context.
// Tracking failures are logged and never fail the ranking.
func beginRunTracking(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, start time.Time) context.Context {
	store := analysisStore(mgr)
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"format":         cfg.Format.String(),
		"position":       string(cfg.Position),
		"result_limit":   cfg.ResultLimit,
		"teams":          len(cfg.Teams),
		"season":         cfg.Season,
		"consensus":      cfg.Consensus,
		"snapshot":       cfg.SnapshotFile,
		"workers":        cfg.Workers,
		"custom_weights": len(cfg.CustomWeights) > 0,
	}
	runID, err := store.BeginRun(start, cfg.Format, configParams)
	if err != nil {
		contract.LogWarn("Ranking run tracking initialization failed", err)
		return ctx
	}
	if runID <= 0 {
		return ctx
	}
	return withRunID(ctx, runID)
}

// finishRunTracking records every ranked player and closes the run.
func finishRunTracking(ctx context.Context, mgr contract.CacheManager, players []schema.RankedPlayer) {
	runID, ok := getRunID(ctx)
	store := analysisStore(mgr)
	if !ok || store == nil {
		return
	}
	for _, p := range players {
		if err := store.RecordPlayerScore(runID, p); err != nil {
			logTrackingError("RecordPlayerScore", p.ID, err)
		}
	}
	if err := store.EndRun(runID, time.Now(), len(players)); err != nil {
		contract.LogWarn("Failed to finalize ranking run tracking", err)
	}
}

func logTrackingError(operation, playerID string, err error) {
	contract.LogWarn(fmt.Sprintf("Run tracking failed for %s on player %s", operation, playerID), err)
}
