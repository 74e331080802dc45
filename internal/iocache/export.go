package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/gridiron/internal/parquet"
)

// ExecuteAnalysisExport exports ranking-run history to a pair of Parquet files
// named after outputFile.
func ExecuteAnalysisExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no ranking runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total ranking runs: %d\n", status.TotalRuns)
	fmt.Printf("Total player records: %d\n", status.TableSizes[playerScoresTable])

	runs, err := store.GetAllRankingRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking runs: %w", err)
	}
	scores, err := store.GetAllPlayerScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve player scores: %w", err)
	}

	runRows := parquet.ConvertRankingRunRecords(runs)
	runsFile := outputFile + ".ranking_runs.parquet"
	if err := parquet.WriteRankingRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write ranking runs: %w", err)
	}
	fmt.Printf("Exported %d ranking runs to: %s\n", len(runRows), runsFile)

	scoreRows := parquet.ConvertPlayerScoreRecords(scores)
	scoresFile := outputFile + ".player_scores.parquet"
	if err := parquet.WritePlayerScoresParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write player scores: %w", err)
	}
	fmt.Printf("Exported %d player score records to: %s\n", len(scoreRows), scoresFile)

	return nil
}
