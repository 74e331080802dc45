package provider

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

const (
	sleeperPlayersURL = "https://api.sleeper.app/v1/players/nfl"
	espnFantasyURL    = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl/seasons/2025/players" +
		"?view=kona_player_info&scoringPeriodId=0&limit=2000"

	// sleeperUnranked is the search_rank Sleeper assigns to unranked players.
	sleeperUnranked = 9999999
)

// espnFantasyPositions maps defaultPositionId to a fantasy position.
var espnFantasyPositions = map[int]schema.Position{1: schema.QB, 2: schema.RB, 3: schema.WR, 4: schema.TE}

// setRank keeps the best (lowest) rank seen for key.
func setRank(ranks map[string]int, key string, rank int) {
	if prev, ok := ranks[key]; !ok || rank < prev {
		ranks[key] = rank
	}
}

// SleeperSource reads search_rank from the public Sleeper players dump.
type SleeperSource struct {
	f   *fetcher
	url string
}

var _ contract.RankSource = &SleeperSource{} // Compile-time check

// NewSleeperSource creates a Sleeper rank source.
func NewSleeperSource(opts Options) *SleeperSource {
	return &SleeperSource{f: newFetcher("sleeper", opts), url: sleeperPlayersURL}
}

// Name implements contract.RankSource.
func (s *SleeperSource) Name() string { return "sleeper" }

type sleeperPlayer struct {
	FantasyPositions []string `json:"fantasy_positions"`
	Position         string   `json:"position"`
	SearchRank       *int     `json:"search_rank"`
	Team             string   `json:"team"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
}

// FetchRanks returns ranks keyed by both the team and no-team name keys.
func (s *SleeperSource) FetchRanks(ctx context.Context) (map[string]int, error) {
	return cached(s.f, "sleeper:ranks", sleeperTTL, func() (map[string]int, error) {
		var players map[string]sleeperPlayer
		if err := s.f.getJSON(ctx, s.url, &players); err != nil {
			return nil, err
		}
		return parseSleeper(players), nil
	})
}

func parseSleeper(players map[string]sleeperPlayer) map[string]int {
	ranks := make(map[string]int)
	for _, p := range players {
		pos := p.Position
		if len(p.FantasyPositions) > 0 {
			pos = p.FantasyPositions[0]
		}
		position := schema.Position(pos)
		if !slices.Contains(schema.FantasyPositions, position) {
			continue
		}
		if p.SearchRank == nil || *p.SearchRank <= 0 || *p.SearchRank >= sleeperUnranked {
			continue
		}
		name := cmp.Or(p.FullName, strings.TrimSpace(p.FirstName+" "+p.LastName))
		if name == "" {
			continue
		}
		setRank(ranks, schema.NameKey(name, position, p.Team), *p.SearchRank)
		setRank(ranks, schema.NameKeyNoTeam(name, position), *p.SearchRank)
	}
	return ranks
}

// ESPNFantasySource reads draft ranks from the ESPN fantasy player pool.
type ESPNFantasySource struct {
	f   *fetcher
	url string
}

var _ contract.RankSource = &ESPNFantasySource{} // Compile-time check

// NewESPNFantasySource creates an ESPN fantasy rank source.
func NewESPNFantasySource(opts Options) *ESPNFantasySource {
	return &ESPNFantasySource{f: newFetcher("espn-fantasy", opts), url: espnFantasyURL}
}

// Name implements contract.RankSource.
func (s *ESPNFantasySource) Name() string { return "espn" }

type espnFantasyPlayer struct {
	FullName          string `json:"fullName"`
	Name              string `json:"name"`
	DefaultPositionID int    `json:"defaultPositionId"`
}

type espnFantasyEntry struct {
	DraftRanksByRankType map[string]struct {
		Rank int `json:"rank"`
	} `json:"draftRanksByRankType"`
	PlayerPoolEntry *struct {
		Player *espnFantasyPlayer `json:"player"`
	} `json:"playerPoolEntry"`
	Player *espnFantasyPlayer `json:"player"`
}

// FetchRanks returns ranks keyed by the no-team name key. PPR ranks are
// preferred, then standard, then half PPR.
func (s *ESPNFantasySource) FetchRanks(ctx context.Context) (map[string]int, error) {
	return cached(s.f, "espnfantasy:ranks", espnFantasyTTL, func() (map[string]int, error) {
		body, err := s.f.get(ctx, s.url)
		if err != nil {
			return nil, err
		}
		entries, err := decodeFantasyEntries(body)
		if err != nil {
			return nil, err
		}
		return parseESPNFantasy(entries), nil
	})
}

// decodeFantasyEntries accepts either a bare array or an object with a players array.
func decodeFantasyEntries(body []byte) ([]espnFantasyEntry, error) {
	var entries []espnFantasyEntry
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode ESPN fantasy players: %w", err)
		}
	} else {
		var wrapped struct {
			Players []espnFantasyEntry `json:"players"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode ESPN fantasy players: %w", err)
		}
		entries = wrapped.Players
	}
	if len(entries) == 0 {
		return nil, errors.New("empty ESPN fantasy response")
	}
	return entries, nil
}

func parseESPNFantasy(entries []espnFantasyEntry) map[string]int {
	ranks := make(map[string]int)
	for _, e := range entries {
		var rank int
		for _, rankType := range []string{"PPR", "STANDARD", "HALF"} {
			if r := e.DraftRanksByRankType[rankType].Rank; r > 0 {
				rank = r
				break
			}
		}
		if rank == 0 {
			continue
		}

		player := e.Player
		if e.PlayerPoolEntry != nil && e.PlayerPoolEntry.Player != nil {
			player = e.PlayerPoolEntry.Player
		}
		if player == nil {
			continue
		}
		name := cmp.Or(player.FullName, player.Name)
		pos, ok := espnFantasyPositions[player.DefaultPositionID]
		if name == "" || !ok {
			continue
		}
		setRank(ranks, schema.NameKeyNoTeam(name, pos), rank)
	}
	return ranks
}

// LookupRank resolves a player's rank from a source map, trying the team key first.
func LookupRank(ranks map[string]int, p schema.RawPlayer) int {
	if r, ok := ranks[schema.NameKey(p.Name, p.Position, p.Team)]; ok {
		return r
	}
	return ranks[schema.NameKeyNoTeam(p.Name, p.Position)]
}
