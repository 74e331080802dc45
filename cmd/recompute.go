package cmd

import (
	"github.com/huangsam/gridiron/core"
	"github.com/spf13/cobra"
)

// recomputeCmd rederives fantasy points under another scoring format.
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute season fantasy points under a scoring format.",
	Long: `Rederive every cached season's fantasy points under --format and
--td-pts and compare them with the default PPR 4-point numbers.

Examples:
  gridiron recompute --format std --td-pts 6 --position QB
  gridiron recompute --snapshot league.json --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteRecompute),
}
