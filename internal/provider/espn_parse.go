package provider

import (
	"strconv"

	"github.com/huangsam/gridiron/schema"
)

type webStatsResponse struct {
	Categories []struct {
		Name        string   `json:"name"`
		DisplayName string   `json:"displayName"`
		Names       []string `json:"names"`
		SeasonTypes []struct {
			Categories []struct {
				Season struct {
					Year int `json:"year"`
				} `json:"season"`
				DisplayName string `json:"displayName"`
				Stats       []any  `json:"stats"`
			} `json:"categories"`
		} `json:"seasonTypes"`
	} `json:"categories"`
}

// parseWebStats flattens the category rows of the web stats endpoint into one
// bag per season. Names are category specific so there are no collisions.
func parseWebStats(resp webStatsResponse) map[int]schema.RawStatsBag {
	seasons := make(map[int]schema.RawStatsBag)
	for _, cat := range resp.Categories {
		for _, st := range cat.SeasonTypes {
			for _, sc := range st.Categories {
				year := sc.Season.Year
				if year == 0 {
					year, _ = strconv.Atoi(sc.DisplayName)
				}
				if year < schema.MinSeason {
					continue
				}
				bag := seasons[year]
				if bag == nil {
					bag = make(schema.RawStatsBag)
					seasons[year] = bag
				}
				for i := 0; i < len(cat.Names) && i < len(sc.Stats); i++ {
					bag[cat.Names[i]] = sc.Stats[i]
				}
			}
		}
	}
	return seasons
}

// parseOverviewStats walks the loosely shaped overview payload looking for
// season rows under the keys ESPN has used over time.
func parseOverviewStats(data map[string]any) map[int]schema.RawStatsBag {
	var sections []any
	for _, key := range []string{"stats", "statistics", "seasonStats"} {
		sections = append(sections, data[key])
	}
	for _, parent := range []string{"player", "athlete"} {
		if m, ok := data[parent].(map[string]any); ok {
			sections = append(sections, m["stats"])
		}
	}

	seasons := make(map[int]schema.RawStatsBag)
	for _, section := range sections {
		items, ok := section.([]any)
		if !ok {
			continue
		}
		for _, it := range items {
			item, ok := it.(map[string]any)
			if !ok || item["season"] == nil || item["stats"] == nil {
				continue
			}
			year := overviewYear(item["season"])
			if year < schema.MinSeason {
				continue
			}
			bag := seasons[year]
			if bag == nil {
				bag = make(schema.RawStatsBag)
				seasons[year] = bag
			}
			switch stats := item["stats"].(type) {
			case []any:
				names := stringSlice(item["names"])
				if len(names) == 0 {
					names = stringSlice(item["labels"])
				}
				for i := 0; i < len(names) && i < len(stats); i++ {
					bag[names[i]] = stats[i]
				}
			case map[string]any:
				for k, v := range stats {
					bag[k] = v
				}
			}
		}
	}

	for year, bag := range seasons {
		if len(bag) == 0 {
			delete(seasons, year)
		}
	}
	return seasons
}

func overviewYear(v any) int {
	switch s := v.(type) {
	case map[string]any:
		return overviewYear(s["year"])
	case float64:
		return int(s)
	case string:
		year, _ := strconv.Atoi(s)
		return year
	}
	return 0
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, _ := it.(string)
		out = append(out, s)
	}
	return out
}

type coreCategory struct {
	Stats []struct {
		Name  string   `json:"name"`
		Value *float64 `json:"value"`
	} `json:"stats"`
}

type coreStatsResponse struct {
	Splits struct {
		Categories []coreCategory `json:"categories"`
	} `json:"splits"`
	Categories []coreCategory `json:"categories"`
}

// parseCoreStats merges every category of one season. A non-zero value is
// never replaced by a zero from a later category.
func parseCoreStats(resp coreStatsResponse) schema.RawStatsBag {
	cats := resp.Splits.Categories
	if len(cats) == 0 {
		cats = resp.Categories
	}

	raw := make(schema.RawStatsBag)
	for _, cat := range cats {
		for _, s := range cat.Stats {
			if s.Name == "" || s.Value == nil {
				continue
			}
			if _, seen := raw[s.Name]; *s.Value != 0 || !seen {
				raw[s.Name] = *s.Value
			}
		}
	}
	return raw
}

type standingsEntry struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Stats []struct {
		Name         string  `json:"name"`
		Abbreviation string  `json:"abbreviation"`
		Value        float64 `json:"value"`
	} `json:"stats"`
}

type standingsGroup struct {
	Standings struct {
		Entries []standingsEntry `json:"entries"`
	} `json:"standings"`
	Children []standingsGroup `json:"children"`
}

// collectStandings reads every entry of g and its nested children into out.
func collectStandings(g standingsGroup, out schema.Standings) {
	for _, e := range g.Standings.Entries {
		if e.Team.Abbreviation == "" {
			continue
		}
		var rec schema.TeamRecord
		found := false
		for _, s := range e.Stats {
			switch {
			case s.Name == "wins" || s.Abbreviation == "W":
				rec.Wins = int(s.Value)
				found = true
			case s.Name == "losses" || s.Abbreviation == "L":
				rec.Losses = int(s.Value)
			}
		}
		if found {
			out[canonicalTeam(e.Team.Abbreviation)] = rec
		}
	}
	for _, child := range g.Children {
		collectStandings(child, out)
	}
}
