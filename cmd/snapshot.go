package cmd

import (
	"github.com/huangsam/gridiron/core"
	"github.com/spf13/cobra"
)

// snapshotCmd saves a league snapshot for offline runs.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch the league and save it as a snapshot file.",
	Long: `Fetch rosters, season stats, standings and (with --consensus) consensus
ranks, then write them as JSON. Pass the file to --snapshot later to
rank without network access.

Examples:
  gridiron snapshot --output-file league.json
  gridiron snapshot --teams KC,BUF,DET --season 2024 --output-file afc.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteSnapshot),
}
