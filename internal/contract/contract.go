// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gridiron/schema"
)

// Provider defines the upstream operations needed to assemble a league snapshot.
// This allows the aggregation logic to be tested without network access.
type Provider interface {
	// FetchRoster returns the offensive players of one team, by abbreviation.
	FetchRoster(ctx context.Context, team string) ([]schema.RawPlayer, error)

	// FetchPlayerStats returns raw stat bags keyed by season year.
	FetchPlayerStats(ctx context.Context, playerID string) (map[int]schema.RawStatsBag, error)

	// FetchStandings returns win/loss records keyed by team abbreviation.
	FetchStandings(ctx context.Context, season int) (schema.Standings, error)
}

// RankSource supplies consensus ranks keyed by normalized name keys.
type RankSource interface {
	Name() string
	FetchRanks(ctx context.Context) (map[string]int, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetProviderStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking ranking runs and storing scores.
type AnalysisStore interface {
	// BeginRun creates a new ranking run and returns its unique ID
	BeginRun(startTime time.Time, format schema.ScoringFormat, configParams map[string]any) (int64, error)

	// EndRun updates the ranking run with completion data
	EndRun(runID int64, endTime time.Time, playersScored int) error

	// RecordPlayerScore stores the scored output of one ranked player
	RecordPlayerScore(runID int64, player schema.RankedPlayer) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllRankingRuns returns every stored run ordered by ID
	GetAllRankingRuns() ([]schema.RankingRunRecord, error)

	// GetAllPlayerScores returns every stored player score ordered by run and rank
	GetAllPlayerScores() ([]schema.PlayerScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
