package cmd

import (
	"github.com/huangsam/gridiron/core"
	"github.com/spf13/cobra"
)

// weightsCmd shows the blend weights in effect.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the projection, floor and ceiling blend weights.",
	Long: `Display the component weights behind each blend, including any
custom weights from the config file, plus the depth chart scores.

Custom weights go under the weights key of .gridiron.yaml:

  weights:
    floor:
      usage: 0.6
      environment: 0.4

Each custom blend replaces its default table and must sum to 1.0.

Examples:
  gridiron weights
  gridiron weights --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteWeights),
}
