package cmd

import (
	"github.com/huangsam/gridiron/core"
	"github.com/spf13/cobra"
)

// runExecutor adapts a core executor to a cobra RunE.
func runExecutor(fn core.ExecutorFunc) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return fn(rootCtx, cfg, cacheManager)
	}
}

// rankCmd ranks every rostered skill player.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank players by projected weekly fantasy points.",
	Long: `Score every QB, RB, WR and TE against their position peers and rank
the league by projection.

Each player gets six component scores on a 0-10 scale:
- usage: per-game opportunity volume
- high_value: touchdown-heavy and big-play opportunity share
- efficiency: points per touch, shrunk toward neutral for small samples
- recency: recent seasons weighted heaviest
- environment: depth chart slot and team strength
- matchup: neutral until schedule data is wired

Projection, floor and ceiling blend those components. Confidence comes
from games played and scales the final numbers.

Examples:
  # Top 25 in half PPR
  gridiron rank --format half --limit 25

  # Wide receivers only, with consensus ranks
  gridiron rank --position WR --consensus

  # Offline from a saved snapshot
  gridiron rank --snapshot league.json

  # Export to CSV
  gridiron rank --output csv --output-file rankings.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteRankings),
}
