package cmd

import (
	"github.com/huangsam/gridiron/core"
	"github.com/spf13/cobra"
)

// playerCmd explains the score of one player.
var playerCmd = &cobra.Command{
	Use:   "player <id-or-name>",
	Short: "Show the component breakdown for one player.",
	Long: `Rank the league, then print one player's components, blends,
role and most recent qualifying season.

The argument is an ESPN player id or a full name. Names are matched
ignoring case and punctuation.

Examples:
  gridiron player 4429795
  gridiron player "Amon-Ra St. Brown" --format std --td-pts 6`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecutePlayer),
}
