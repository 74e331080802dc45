package provider

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
)

// ESPN API roots.
const (
	espnCoreURL  = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"
	espnSiteURL  = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	espnWebURL   = "https://site.web.api.espn.com/apis/common/v3/sports/football/nfl"
	headshotBase = "https://a.espncdn.com/i/headshots/nfl/players/full/"
)

// coreSeasons are the years probed by the per-season statistics fallback.
var coreSeasons = []int{2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025}

// espnTeamIDs maps franchise abbreviations to ESPN team ids.
var espnTeamIDs = map[string]int{
	"ATL": 1, "BUF": 2, "CHI": 3, "CIN": 4, "CLE": 5, "DAL": 6, "DEN": 7, "DET": 8,
	"GB": 9, "TEN": 10, "IND": 11, "KC": 12, "LV": 13, "LAR": 14, "MIA": 15, "MIN": 16,
	"NE": 17, "NO": 18, "NYG": 19, "NYJ": 20, "PHI": 21, "ARI": 22, "PIT": 23, "LAC": 24,
	"SF": 25, "SEA": 26, "TB": 27, "WAS": 28, "CAR": 29, "JAX": 30, "BAL": 33, "HOU": 34,
}

// teamAliases maps ESPN display abbreviations onto the canonical ones.
var teamAliases = map[string]string{"WSH": "WAS", "JAC": "JAX"}

func canonicalTeam(abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if alias, ok := teamAliases[abbr]; ok {
		return alias
	}
	return abbr
}

// ESPNClient implements contract.Provider over the public ESPN APIs.
type ESPNClient struct {
	f       *fetcher
	coreURL string
	siteURL string
	webURL  string
}

var _ contract.Provider = &ESPNClient{} // Compile-time check

// NewESPNClient creates a new ESPN API client.
func NewESPNClient(opts Options) *ESPNClient {
	return &ESPNClient{
		f:       newFetcher("espn", opts),
		coreURL: espnCoreURL,
		siteURL: espnSiteURL,
		webURL:  espnWebURL,
	}
}

// HeadshotURL returns the CDN headshot for an athlete id.
func HeadshotURL(id string) string {
	return headshotBase + id + ".png"
}

type rosterAthlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Jersey      string `json:"jersey"`
	Age         int    `json:"age"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	Headshot struct {
		Href string `json:"href"`
	} `json:"headshot"`
	Experience struct {
		Years int `json:"years"`
	} `json:"experience"`
}

type rosterResponse struct {
	Athletes []struct {
		Items []rosterAthlete `json:"items"`
	} `json:"athletes"`
}

// FetchRoster returns the QB/RB/WR/TE players of team sorted by position then name.
func (c *ESPNClient) FetchRoster(ctx context.Context, team string) ([]schema.RawPlayer, error) {
	team = canonicalTeam(team)
	tid, ok := espnTeamIDs[team]
	if !ok {
		return nil, fmt.Errorf("unknown team %q", team)
	}

	return cached(c.f, "roster:"+team, rosterTTL, func() ([]schema.RawPlayer, error) {
		var resp rosterResponse
		if err := c.f.getJSON(ctx, fmt.Sprintf("%s/teams/%d/roster", c.siteURL, tid), &resp); err != nil {
			return nil, err
		}
		return parseRoster(resp, team), nil
	})
}

func parseRoster(resp rosterResponse, team string) []schema.RawPlayer {
	var players []schema.RawPlayer
	for _, group := range resp.Athletes {
		for _, a := range group.Items {
			pos := schema.Position(a.Position.Abbreviation)
			if !slices.Contains(schema.FantasyPositions, pos) || a.ID == "" {
				continue
			}
			name := cmp.Or(a.DisplayName, a.FullName, strings.TrimSpace(a.FirstName+" "+a.LastName))
			players = append(players, schema.RawPlayer{
				ID:         a.ID,
				Name:       name,
				Position:   pos,
				Team:       team,
				Jersey:     a.Jersey,
				Headshot:   cmp.Or(a.Headshot.Href, HeadshotURL(a.ID)),
				Age:        a.Age,
				Experience: a.Experience.Years,
			})
		}
	}
	SortRoster(players)
	return players
}

// SortRoster orders players by QB/RB/WR/TE and then by name.
func SortRoster(players []schema.RawPlayer) {
	slices.SortStableFunc(players, func(a, b schema.RawPlayer) int {
		return cmp.Or(
			cmp.Compare(slices.Index(schema.FantasyPositions, a.Position), slices.Index(schema.FantasyPositions, b.Position)),
			strings.Compare(a.Name, b.Name),
		)
	})
}

// FetchPlayerStats returns raw stat bags per season for an athlete. It tries the
// web stats endpoint, then the overview, then per-season core statistics.
// An error is returned only when every source fails.
func (c *ESPNClient) FetchPlayerStats(ctx context.Context, playerID string) (map[int]schema.RawStatsBag, error) {
	if _, err := strconv.Atoi(playerID); err != nil {
		return nil, fmt.Errorf("invalid athlete id %q", playerID)
	}

	return cached(c.f, "athlete:"+playerID, athleteTTL, func() (map[int]schema.RawStatsBag, error) {
		var errs []error

		var web webStatsResponse
		err := c.f.getJSON(ctx, fmt.Sprintf("%s/athletes/%s/stats", c.webURL, playerID), &web)
		if err == nil {
			if seasons := parseWebStats(web); len(seasons) > 0 {
				return seasons, nil
			}
		} else {
			errs = append(errs, err)
		}

		var overview map[string]any
		err = c.f.getJSON(ctx, fmt.Sprintf("%s/athletes/%s/overview", c.webURL, playerID), &overview)
		if err == nil {
			if seasons := parseOverviewStats(overview); len(seasons) > 0 {
				return seasons, nil
			}
		} else {
			errs = append(errs, err)
		}

		seasons, err := c.fetchCoreSeasons(ctx, playerID)
		if err != nil {
			errs = append(errs, err)
		}
		if len(seasons) == 0 && len(errs) == 3 {
			return nil, errors.Join(errs...)
		}
		return seasons, nil
	})
}

// fetchCoreSeasons fetches regular-season statistics for each year concurrently.
// It errors only when every year failed for a reason other than ErrNotFound.
func (c *ESPNClient) fetchCoreSeasons(ctx context.Context, playerID string) (map[int]schema.RawStatsBag, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		seasons  = make(map[int]schema.RawStatsBag)
		failures []error
	)
	for _, year := range coreSeasons {
		wg.Go(func() {
			url := fmt.Sprintf("%s/seasons/%d/types/2/athletes/%s/statistics", c.coreURL, year, playerID)
			var resp coreStatsResponse
			err := c.f.getJSON(ctx, url, &resp)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					failures = append(failures, err)
				}
				return
			}
			if raw := parseCoreStats(resp); len(raw) > 0 {
				seasons[year] = raw
			}
		})
	}
	wg.Wait()

	if len(seasons) == 0 && len(failures) == len(coreSeasons) {
		return nil, errors.Join(failures...)
	}
	return seasons, nil
}

// FetchStandings returns win/loss records for a season.
func (c *ESPNClient) FetchStandings(ctx context.Context, season int) (schema.Standings, error) {
	key := fmt.Sprintf("standings:%d", season)
	return cached(c.f, key, standingsTTL, func() (schema.Standings, error) {
		var resp standingsGroup
		if err := c.f.getJSON(ctx, fmt.Sprintf("%s/standings?season=%d", c.siteURL, season), &resp); err != nil {
			return nil, err
		}
		standings := make(schema.Standings)
		collectStandings(resp, standings)
		return standings, nil
	})
}
