package cmd

import (
	"github.com/huangsam/gridiron/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gridiron MCP server",
	Long: `Launch an MCP server on stdio so AI agents can rank and score players
through the rank_players, score_player and get_weights tools.

The league is loaded once at startup (from --snapshot when given) and shared
by every tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
