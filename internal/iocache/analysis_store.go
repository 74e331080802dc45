package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// Table names for ranking-run tracking.
const (
	rankingRunsTable  = "gridiron_ranking_runs"
	playerScoresTable = "gridiron_player_scores"
)

// playerScoreColumns lists the insert/select order of the player scores table.
const playerScoreColumns = `run_id, player_id, player_name, position, team, rank_overall,
	usage_score, high_value_score, efficiency_score, recency_score, environment_score, matchup_score,
	projection, floor_score, ceiling_score, confidence, volatility, boom_pct, bust_pct, role`

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	switch backend {
	case schema.NoneBackend:
		// No-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported analysis backend: %s", backend)
	}

	db, err := openSQL(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables creates the ranking-run tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{rankingRunsTable, getCreateRankingRunsQuery(backend)},
		{playerScoresTable, getCreatePlayerScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRankingRunsQuery returns the CREATE TABLE query for gridiron_ranking_runs.
func getCreateRankingRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(rankingRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_key CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				players_scored INT NOT NULL DEFAULT 0,
				scoring_format VARCHAR(16) NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_key TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				players_scored INT NOT NULL DEFAULT 0,
				scoring_format TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_key TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				players_scored INTEGER NOT NULL DEFAULT 0,
				scoring_format TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreatePlayerScoresQuery returns the CREATE TABLE query for gridiron_player_scores.
func getCreatePlayerScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(playerScoresTable, backend)

	realType, textType, keyType, intType := "REAL", "TEXT", "TEXT", "INTEGER"
	switch backend {
	case schema.MySQLBackend:
		realType, textType, keyType, intType = "DOUBLE", "VARCHAR(100)", "VARCHAR(32)", "INT"
	case schema.PostgreSQLBackend:
		realType, intType = "DOUBLE PRECISION", "INT"
	}

	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			run_id BIGINT NOT NULL,
			player_id %[3]s NOT NULL,
			player_name %[2]s NOT NULL,
			position %[3]s NOT NULL,
			team %[3]s NOT NULL,
			rank_overall %[4]s NOT NULL,
			usage_score %[5]s NOT NULL,
			high_value_score %[5]s NOT NULL,
			efficiency_score %[5]s NOT NULL,
			recency_score %[5]s NOT NULL,
			environment_score %[5]s NOT NULL,
			matchup_score %[5]s NOT NULL,
			projection %[5]s NOT NULL,
			floor_score %[5]s NOT NULL,
			ceiling_score %[5]s NOT NULL,
			confidence %[5]s NOT NULL,
			volatility %[5]s NOT NULL,
			boom_pct %[4]s NOT NULL,
			bust_pct %[4]s NOT NULL,
			role %[2]s NOT NULL,
			PRIMARY KEY (run_id, player_id)
		);
	`, quotedTableName, textType, keyType, intType, realType)
}

// BeginRun creates a new ranking run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginRun(startTime time.Time, format schema.ScoringFormat, configParams map[string]any) (int64, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(rankingRunsTable, as.backend)
	runKey := uuid.NewString()
	args := []any{runKey, formatTime(startTime, as.backend), format.String(), string(configJSON)}

	var runID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_key, start_time, scoring_format, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = as.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_key, start_time, scoring_format, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert ranking run: %w", err)
	}
	return runID, nil
}

// EndRun updates the ranking run with completion data.
func (as *AnalysisStoreImpl) EndRun(runID int64, endTime time.Time, playersScored int) error {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(rankingRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(as.backend, 1))
	row := as.db.QueryRow(query, runID)

	startTime, err := as.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, players_scored = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3), placeholder(as.backend, 4))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, playersScored, runID); err != nil {
		return fmt.Errorf("failed to update ranking run: %w", err)
	}
	return nil
}

// RecordPlayerScore stores the scored output of one ranked player.
func (as *AnalysisStoreImpl) RecordPlayerScore(runID int64, p schema.RankedPlayer) error {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(playerScoresTable, as.backend), playerScoreColumns, placeholderList(as.backend, 20))
	args := []any{
		runID, p.ID, p.Name, string(p.Position), p.Team, p.Rank,
		p.Usage, p.HighValue, p.Efficiency, p.Recency, p.Environment, p.Matchup,
		p.Projection, p.Floor, p.Ceiling, p.Confidence, p.Volatility, p.BoomPct, p.BustPct, p.Role,
	}

	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert player score for %s: %w", p.ID, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	runs := quoteTableName(rankingRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := as.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		lastTime, err := as.scanTime(row, &status.LastRunID)
		if err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastTime

		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		oldestTime, err := as.scanTime(row)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestTime

		scoredQuery := fmt.Sprintf("SELECT COALESCE(SUM(players_scored), 0) FROM %s", runs)
		if err := as.db.QueryRow(scoredQuery).Scan(&status.TotalPlayersScored); err != nil {
			return status, fmt.Errorf("failed to get total players scored: %w", err)
		}
	}

	for _, table := range []string{rankingRunsTable, playerScoresTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRankingRuns retrieves all ranking runs from the store.
func (as *AnalysisStoreImpl) GetAllRankingRuns() ([]schema.RankingRunRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_key, start_time, end_time, run_duration_ms, players_scored, scoring_format, config_params
		FROM %s ORDER BY run_id`, quoteTableName(rankingRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RankingRunRecord
	for rows.Next() {
		var record schema.RankingRunRecord

		if as.backend == schema.SQLiteBackend {
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.RunKey, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.PlayersScored, &record.ScoringFormat, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan ranking run: %w", err)
			}
			if record.StartTime, err = parseSQLiteTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseSQLiteTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		} else if err := rows.Scan(&record.RunID, &record.RunKey, &record.StartTime, &record.EndTime, &record.RunDurationMs,
			&record.PlayersScored, &record.ScoringFormat, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan ranking run: %w", err)
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking runs: %w", err)
	}
	return results, nil
}

// GetAllPlayerScores retrieves all player scores from the store.
func (as *AnalysisStoreImpl) GetAllPlayerScores() ([]schema.PlayerScoreRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY run_id, rank_overall`,
		playerScoreColumns, quoteTableName(playerScoresTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query player scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PlayerScoreRecord
	for rows.Next() {
		var r schema.PlayerScoreRecord
		if err := rows.Scan(&r.RunID, &r.PlayerID, &r.PlayerName, &r.Position, &r.Team, &r.RankOverall,
			&r.Usage, &r.HighValue, &r.Efficiency, &r.Recency, &r.Environment, &r.Matchup,
			&r.Projection, &r.Floor, &r.Ceiling, &r.Confidence, &r.Volatility, &r.BoomPct, &r.BustPct, &r.Role); err != nil {
			return nil, fmt.Errorf("failed to scan player score: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player scores: %w", err)
	}
	return results, nil
}

// scanTime scans leading destinations followed by one time column,
// handling the text encoding SQLite uses.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row, leading ...any) (time.Time, error) {
	if as.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(append(leading, &s)...); err != nil {
			return time.Time{}, err
		}
		return parseSQLiteTime(s)
	}
	var t time.Time
	if err := row.Scan(append(leading, &t)...); err != nil {
		return time.Time{}, err
	}
	return t, nil
}
