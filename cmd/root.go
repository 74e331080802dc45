package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/iocache"
	"github.com/huangsam/gridiron/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager

// profileConfig holds the CPU and heap profiling settings.
type profileConfig struct {
	Enabled bool
	Prefix  string
}

var profile = &profileConfig{}

// startProfiling starts CPU profiling if a prefix was given.
func startProfiling(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || profile.Enabled {
		return nil
	}
	cpuFile, err := os.Create(prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		_ = cpuFile.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", prefix, prefix)
	return err
}

// stopProfiling stops profiling and writes the heap profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}
	pprof.StopCPUProfile()
	profile.Enabled = false

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "gridiron",
	Short: "Project and rank fantasy football players from real NFL stats.",
	Long: `Gridiron turns season stats, depth charts and team strength into
position-relative projections with floor, ceiling and confidence.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setConfigSearch points viper at an explicit file or the default locations.
func setConfigSearch() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".gridiron")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSearch()

	viper.SetEnvPrefix("GRIDIRON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("format", string(schema.PPR))
	viper.SetDefault("td-pts", schema.DefaultFormat.TDPts)
	viper.SetDefault("position", string(schema.AllPositions))
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("season", contract.DefaultSeason)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("rate", contract.DefaultRate)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("cache-backend", string(schema.SQLiteBackend))
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("analysis-backend", "")
	viper.SetDefault("analysis-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "warn")
}

// loadConfigFile reads the config file when one exists.
func loadConfigFile() error {
	setConfigSearch()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := startProfiling(viper.GetString("profile")); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.PlayerID = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	contract.SetLogLevel(cfg.LogLevel)
	color.NoColor = !cfg.UseColors

	// 5. Initialize persistence layer with validated config. A snapshot run
	// never calls the provider, so it skips the provider cache.
	cacheBackend := cfg.CacheBackend
	if cfg.SnapshotFile != "" {
		cacheBackend = ""
	}
	if err := iocache.InitCaching(cacheBackend, cfg.CacheDBConnect, cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// backendFromViper reads a backend key, treating an empty value as none.
func backendFromViper(key string) schema.DatabaseBackend {
	value := strings.ToLower(strings.TrimSpace(viper.GetString(key)))
	if value == "" {
		return schema.NoneBackend
	}
	return schema.DatabaseBackend(value)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if err := stopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}
