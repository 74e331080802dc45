// Package parquet provides row types and writers for exporting rankings
// and ranking-run history using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gridiron/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRun maps to the gridiron_ranking_runs database table.
type RankingRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	RunKey        string     `parquet:"run_key,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	PlayersScored int32      `parquet:"players_scored,snappy"`

	// ScoringFormat is rendered as "ppr/4pt"
	ScoringFormat string `parquet:"scoring_format,dict,snappy"`

	// ConfigParams contains the JSON-encoded query parameters
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PlayerScore maps to the gridiron_player_scores database table.
type PlayerScore struct {
	RunID       int64   `parquet:"run_id,snappy"`
	PlayerID    string  `parquet:"player_id,snappy"`
	PlayerName  string  `parquet:"player_name,snappy"`
	Position    string  `parquet:"position,dict,snappy"`
	Team        string  `parquet:"team,dict,snappy"`
	RankOverall int32   `parquet:"rank_overall,snappy"`
	Usage       float64 `parquet:"usage,snappy"`
	HighValue   float64 `parquet:"high_value,snappy"`
	Efficiency  float64 `parquet:"efficiency,snappy"`
	Recency     float64 `parquet:"recency,snappy"`
	Environment float64 `parquet:"environment,snappy"`
	Matchup     float64 `parquet:"matchup,snappy"`
	Projection  float64 `parquet:"projection,snappy"`
	Floor       float64 `parquet:"floor,snappy"`
	Ceiling     float64 `parquet:"ceiling,snappy"`
	Confidence  float64 `parquet:"confidence,snappy"`
	Volatility  float64 `parquet:"volatility,snappy"`
	BoomPct     int32   `parquet:"boom_pct,snappy"`
	BustPct     int32   `parquet:"bust_pct,snappy"`
	Role        string  `parquet:"role,dict,snappy"`
}

// RankedRow is one line of a rankings export.
type RankedRow struct {
	Rank        int32   `parquet:"rank,snappy"`
	PosRank     string  `parquet:"pos_rank,snappy"`
	Tier        string  `parquet:"tier,dict,snappy"`
	PlayerID    string  `parquet:"player_id,snappy"`
	PlayerName  string  `parquet:"player_name,snappy"`
	Position    string  `parquet:"position,dict,snappy"`
	Team        string  `parquet:"team,dict,snappy"`
	Projection  float64 `parquet:"projection,snappy"`
	Floor       float64 `parquet:"floor,snappy"`
	Ceiling     float64 `parquet:"ceiling,snappy"`
	Confidence  float64 `parquet:"confidence,snappy"`
	Volatility  float64 `parquet:"volatility,snappy"`
	BoomPct     int32   `parquet:"boom_pct,snappy"`
	BustPct     int32   `parquet:"bust_pct,snappy"`
	Role        string  `parquet:"role,dict,snappy"`
	Note        string  `parquet:"note,snappy"`
	SleeperRank *int32  `parquet:"sleeper_rank,optional,snappy"`
	ESPNRank    *int32  `parquet:"espn_rank,optional,snappy"`
}

// writeRows encodes rows with a schema inferred from the row struct tags.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows into it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRankingRunsParquet writes ranking runs to a Parquet file.
func WriteRankingRunsParquet(data []RankingRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePlayerScoresParquet writes player scores to a Parquet file.
func WritePlayerScoresParquet(data []PlayerScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRankedRows writes rankings to w. Parquet needs a seekable footer
// so callers should pass a file rather than a terminal.
func WriteRankedRows(w io.Writer, data []RankedRow) error {
	return writeRows(w, data)
}

// ConvertRankingRunRecords converts store records for Parquet export.
func ConvertRankingRunRecords(records []schema.RankingRunRecord) []RankingRun {
	result := make([]RankingRun, len(records))
	for i, record := range records {
		result[i] = RankingRun{
			RunID:         record.RunID,
			RunKey:        record.RunKey,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			PlayersScored: record.PlayersScored,
			ScoringFormat: record.ScoringFormat,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPlayerScoreRecords converts store records for Parquet export.
func ConvertPlayerScoreRecords(records []schema.PlayerScoreRecord) []PlayerScore {
	result := make([]PlayerScore, len(records))
	for i, r := range records {
		result[i] = PlayerScore{
			RunID:       r.RunID,
			PlayerID:    r.PlayerID,
			PlayerName:  r.PlayerName,
			Position:    r.Position,
			Team:        r.Team,
			RankOverall: r.RankOverall,
			Usage:       r.Usage,
			HighValue:   r.HighValue,
			Efficiency:  r.Efficiency,
			Recency:     r.Recency,
			Environment: r.Environment,
			Matchup:     r.Matchup,
			Projection:  r.Projection,
			Floor:       r.Floor,
			Ceiling:     r.Ceiling,
			Confidence:  r.Confidence,
			Volatility:  r.Volatility,
			BoomPct:     r.BoomPct,
			BustPct:     r.BustPct,
			Role:        r.Role,
		}
	}
	return result
}

// ConvertRankedPlayers flattens ranked players into export rows.
func ConvertRankedPlayers(players []schema.RankedPlayer) []RankedRow {
	result := make([]RankedRow, len(players))
	for i, p := range players {
		row := RankedRow{
			Rank:       int32(p.Rank),
			PosRank:    p.PosRank,
			Tier:       p.Tier,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   string(p.Position),
			Team:       p.Team,
			Projection: p.Projection,
			Floor:      p.Floor,
			Ceiling:    p.Ceiling,
			Confidence: p.Confidence,
			Volatility: p.Volatility,
			BoomPct:    int32(p.BoomPct),
			BustPct:    int32(p.BustPct),
			Role:       p.Role,
			Note:       p.Note,
		}
		if p.Consensus != nil {
			row.SleeperRank = optionalRank(p.Consensus.Sleeper)
			row.ESPNRank = optionalRank(p.Consensus.ESPN)
		}
		result[i] = row
	}
	return result
}

func optionalRank(rank int) *int32 {
	if rank <= 0 {
		return nil
	}
	r := int32(rank)
	return &r
}
