// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gridiron/core"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer configures the Gridiron MCP server without starting it.
// A non-nil snap is shared by every tool call instead of loading the league per call.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, snap *schema.LeagueSnapshot) *server.MCPServer {
	s := server.NewMCPServer(
		"Gridiron Projection Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		snap:    snap,
	}

	s.AddTool(mcp.NewTool("rank_players",
		mcp.WithDescription("Rank fantasy football players by projected weekly value."),
		mcp.WithString("format", mcp.Description("Scoring format. Defaults to 'ppr'."), mcp.Enum("ppr", "half", "std")),
		mcp.WithNumber("td_pts", mcp.Description("Points per passing touchdown (4 or 6).")),
		mcp.WithString("position", mcp.Description("Position filter. Defaults to all."), mcp.Enum("all", "QB", "RB", "WR", "TE")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of players returned.")),
	), h.handleRankPlayers)

	s.AddTool(mcp.NewTool("score_player",
		mcp.WithDescription("Show the component scores, floor, ceiling and note for one player."),
		mcp.WithString("player_id", mcp.Description("Player id or full name."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Scoring format."), mcp.Enum("ppr", "half", "std")),
		mcp.WithNumber("td_pts", mcp.Description("Points per passing touchdown (4 or 6).")),
	), h.handleScorePlayer)

	s.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Describe the blend weights used for projection, floor and ceiling."),
	), h.handleGetWeights)

	return s
}

// StartMCPServer loads the league once and serves tools over stdio.
func StartMCPServer(ctx context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	snap, err := core.LoadLeague(core.WithSuppressHeader(ctx), baseCfg, mgr)
	if err != nil {
		return err
	}
	s := NewMCPServer(baseCfg, mgr, snap)
	return server.ServeStdio(s)
}
