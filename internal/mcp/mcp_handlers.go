package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gridiron/core"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/outwriter"
	"github.com/huangsam/gridiron/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	snap    *schema.LeagueSnapshot
}

// context returns ctx with the header suppressed and the shared league attached.
func (h *toolHandler) context(ctx context.Context) context.Context {
	return core.WithSnapshot(core.WithSuppressHeader(ctx), h.snap)
}

func (h *toolHandler) handleRankPlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.baseCfg.CloneWithQuery(
		request.GetString("format", ""),
		request.GetInt("td_pts", 0),
		request.GetString("position", ""),
		request.GetInt("limit", 0),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	ranked, err := core.GetRankingResults(h.context(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(ranked)
}

func (h *toolHandler) handleScorePlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.baseCfg.CloneWithQuery(
		request.GetString("format", ""),
		request.GetInt("td_pts", 0),
		"",
		0,
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.PlayerID = request.GetString("player_id", "")

	player, err := core.GetPlayerResult(h.context(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(player)
}

func (h *toolHandler) handleGetWeights(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(outwriter.BuildWeightsRenderModel(h.baseCfg.ComputedWeights, h.baseCfg.Format))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
