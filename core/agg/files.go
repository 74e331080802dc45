package agg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/gridiron/schema"
	"gopkg.in/yaml.v3"
)

// decodeFile reads path as YAML when it has a .yaml/.yml extension and as JSON otherwise.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadDepthCharts reads team -> position -> ordered player ids.
// Team and position keys are upper-cased.
func LoadDepthCharts(path string) (schema.DepthCharts, error) {
	var raw map[string]map[string][]string
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	charts := make(schema.DepthCharts, len(raw))
	for team, byPos := range raw {
		team = strings.ToUpper(strings.TrimSpace(team))
		if charts[team] == nil {
			charts[team] = make(map[schema.Position][]string, len(byPos))
		}
		for pos, ids := range byPos {
			charts[team][schema.Position(strings.ToUpper(strings.TrimSpace(pos)))] = ids
		}
	}
	return charts, nil
}

// LoadStandings reads team -> {wins, losses}.
func LoadStandings(path string) (schema.Standings, error) {
	var raw schema.Standings
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	standings := make(schema.Standings, len(raw))
	for team, rec := range raw {
		if rec.Wins < 0 || rec.Losses < 0 {
			return nil, fmt.Errorf("invalid record for %s: %d-%d", team, rec.Wins, rec.Losses)
		}
		standings[strings.ToUpper(strings.TrimSpace(team))] = rec
	}
	return standings, nil
}

// LoadSnapshot reads a league snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*schema.LeagueSnapshot, error) {
	var snap schema.LeagueSnapshot
	if err := decodeFile(path, &snap); err != nil {
		return nil, err
	}
	if len(snap.Players) == 0 {
		return nil, fmt.Errorf("snapshot %s has no players", path)
	}
	if snap.Stats == nil {
		snap.Stats = make(schema.StatsCache)
	}
	return &snap, nil
}

// SaveSnapshot writes snap as indented JSON.
func SaveSnapshot(path string, snap *schema.LeagueSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
