package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/iocache"
	"github.com/huangsam/gridiron/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadAnalysisBackend reads and validates the analysis backend settings.
func loadAnalysisBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := backendFromViper("analysis-backend")
	connStr := viper.GetString("analysis-db-connect")
	if backend == schema.RedisBackend {
		return "", "", fmt.Errorf("redis is not supported as an analysis backend")
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
func analysisSetup() error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	// No provider cache for analysis commands
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup does NOT initialize stores or create tables,
// so migrations can run on a fresh database.
func analysisMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}
	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisCmd focused on ranking-run history.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage ranking-run tracking and exports",
	Long: `Manage the history of ranking runs.

When --analysis-backend is set, every ranking run stores:
- Run metadata (run key, timestamps, duration, format, parameters)
- Every player's components, blends and role

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show tracking statistics
  export  - Export runs and player scores to Parquet
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Track runs in the default SQLite file
  gridiron rank --analysis-backend sqlite

  # Export for pandas or DuckDB
  gridiron analysis export --analysis-backend sqlite --output-file runs`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all ranking-run history",
	Long: `Delete all stored ranking runs and player scores.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: analysisSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		iocache.CloseCaching()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			return fmt.Errorf("failed to clear analysis data: %w", err)
		}
		fmt.Println("Analysis data cleared successfully.")
		return nil
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display ranking-run statistics and connection details",
	Long: `Show the backend, number of stored runs, newest and oldest run times,
players scored across all runs and table sizes.`,
	PreRunE: analysisSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.PrintAnalysisStatus(os.Stdout, iocache.Manager.GetAnalysisStore())
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranking runs and player scores to Parquet",
	Long: `Export all stored runs to two Parquet files:
- <output-file>.ranking_runs.parquet
- <output-file>.player_scores.parquet

Requires: --output-file parameter

Examples:
  gridiron analysis export --output-file history
  duckdb -c "SELECT name, avg(projection) FROM 'history.player_scores.parquet' GROUP BY name"`,
	PreRunE: analysisSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.ExecuteAnalysisExport(cfg.OutputFile)
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the ranking-run store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gridiron analysis migrate --analysis-backend sqlite

  # Rollback to the initial state
  gridiron analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, viper.GetInt("target-version"))
	},
}
