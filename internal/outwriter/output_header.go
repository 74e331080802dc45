package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// WriteHeader prints a short summary of what a run is about to rank.
func WriteHeader(w io.Writer, cfg *contract.Config) {
	pos := cfg.Position
	if pos == "" {
		pos = schema.AllPositions
	}
	fmt.Fprintf(w, "🏈 Format: %s (Position: %s)\n", cfg.Format, pos)

	teams := fmt.Sprintf("%d teams", len(cfg.Teams))
	if len(cfg.Teams) == 0 || len(cfg.Teams) == len(schema.NFLTeams) {
		teams = "all teams"
	} else if len(cfg.Teams) <= 4 {
		teams = fmt.Sprint(cfg.Teams)
	}
	fmt.Fprintf(w, "📅 Season: %d (%s)\n", cfg.Season, teams)

	if cfg.SnapshotFile != "" {
		fmt.Fprintf(w, "📦 Source: %s\n", cfg.SnapshotFile)
	} else {
		fmt.Fprintf(w, "📡 Source: live (cache: %s)\n", cfg.CacheBackend)
	}
}
