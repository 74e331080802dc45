package core

import (
	"context"

	"github.com/huangsam/gridiron/schema"
)

// Context keys for ranking options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	runIDKey          contextKey = "runID"
	snapshotKey       contextKey = "snapshot"
)

// WithSuppressHeader disables the progress header, for servers and nested runs.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

func shouldSuppressHeader(ctx context.Context) bool {
	suppress, ok := ctx.Value(suppressHeaderKey).(bool)
	return ok && suppress
}

// withRunID sets the ranking run being tracked
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the tracked ranking run, if any
func getRunID(ctx context.Context) (int64, bool) {
	runID, ok := ctx.Value(runIDKey).(int64)
	return runID, ok
}

// WithSnapshot makes LoadLeague return snap instead of reading a file or the network.
// Long-running servers load the league once and attach it to every request.
func WithSnapshot(ctx context.Context, snap *schema.LeagueSnapshot) context.Context {
	return context.WithValue(ctx, snapshotKey, snap)
}

func snapshotFromContext(ctx context.Context) *schema.LeagueSnapshot {
	snap, _ := ctx.Value(snapshotKey).(*schema.LeagueSnapshot)
	return snap
}
