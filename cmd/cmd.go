// Package cmd defines the command-line interface for gridiron.
package cmd

import (
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	flags := rootCmd.PersistentFlags()
	flags.String("format", string(schema.PPR), "Scoring format: ppr or half or std")
	flags.Int("td-pts", schema.DefaultFormat.TDPts, "Points per passing touchdown: 4 or 6")
	flags.StringP("position", "p", string(schema.AllPositions), "Position filter: all or QB or RB or WR or TE")
	flags.IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	flags.Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	flags.String("teams", "", "Comma-separated team abbreviations to include (default all 32)")
	flags.Int("season", contract.DefaultSeason, "Season used for team standings")
	flags.String("snapshot", "", "League snapshot file to rank offline instead of fetching")
	flags.String("depth-charts", "", "YAML or JSON depth chart file (team -> position -> ordered player ids)")
	flags.String("standings", "", "YAML or JSON standings file (team -> wins and losses)")
	flags.Bool("consensus", false, "Fetch and show Sleeper and ESPN consensus ranks")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	flags.String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	flags.String("log-level", "warn", "Log level: debug or info or warn or error")
	flags.Float64("rate", contract.DefaultRate, "Maximum provider requests per second")
	flags.String("addr", contract.DefaultAddr, "Listen address for the HTTP API")
	flags.String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	flags.String("cache-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., user:pass@tcp(host:port)/dbname)")
	flags.String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	flags.String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	flags.String("profile", "", "Enable profiling and write profiles to files with this prefix")
	flags.String("config", "", "Path to config file")
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
