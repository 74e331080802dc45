package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis store.
type AnalysisStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalRuns          int              `json:"total_runs"`
	LastRunID          int64            `json:"last_run_id"`
	LastRunTime        time.Time        `json:"last_run_time"`
	OldestRunTime      time.Time        `json:"oldest_run_time"`
	TotalPlayersScored int              `json:"total_players_scored"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}

// RankingRunRecord represents a row from the ranking_runs table.
type RankingRunRecord struct {
	RunID         int64
	RunKey        string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	PlayersScored int32
	ScoringFormat string
	ConfigParams  *string
}

// PlayerScoreRecord represents a row from the player_scores table.
type PlayerScoreRecord struct {
	RunID       int64
	PlayerID    string
	PlayerName  string
	Position    string
	Team        string
	RankOverall int32
	Usage       float64
	HighValue   float64
	Efficiency  float64
	Recency     float64
	Environment float64
	Matchup     float64
	Projection  float64
	Floor       float64
	Ceiling     float64
	Confidence  float64
	Volatility  float64
	BoomPct     int32
	BustPct     int32
	Role        string
}
