package schema

import (
	"fmt"
	"slices"
	"time"
)

// ScoringFormat describes how fantasy points are awarded.
type ScoringFormat struct {
	Scoring Scoring `json:"scoring"`
	TDPts   int     `json:"td_pts"`
}

// DefaultFormat is full PPR with 4-point passing touchdowns.
var DefaultFormat = ScoringFormat{Scoring: PPR, TDPts: 4}

// IsDefault reports whether the format matches DefaultFormat.
func (f ScoringFormat) IsDefault() bool {
	return f.Scoring == DefaultFormat.Scoring && f.PassingTDPoints() == float64(DefaultFormat.TDPts)
}

// ReceptionPoints returns the points awarded per catch.
func (f ScoringFormat) ReceptionPoints() float64 {
	switch f.Scoring {
	case PPR:
		return 1
	case HalfPPR:
		return 0.5
	default:
		return 0
	}
}

// PassingTDPoints returns the points awarded per passing touchdown.
func (f ScoringFormat) PassingTDPoints() float64 {
	if f.TDPts == 6 {
		return 6
	}
	return 4
}

// String renders the format as "ppr/4pt".
func (f ScoringFormat) String() string {
	return fmt.Sprintf("%s/%dpt", f.Scoring, int(f.PassingTDPoints()))
}

// RawPlayer is the roster identity of a player.
type RawPlayer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Position   Position `json:"position"`
	Team       string   `json:"team"`
	Jersey     string   `json:"jersey,omitempty"`
	Headshot   string   `json:"headshot,omitempty"`
	Age        int      `json:"age,omitempty"`
	Experience int      `json:"experience,omitempty"`
}

// GetPosition returns the roster position. ScoredPlayer and RankedPlayer inherit it.
func (p RawPlayer) GetPosition() Position { return p.Position }

// SeasonStat holds regular-season totals for one player and year.
type SeasonStat struct {
	GP      float64 `json:"gp"`
	PassYd  float64 `json:"pass_yd"`
	PassTD  float64 `json:"pass_td"`
	PassInt float64 `json:"pass_int"`
	PassCmp float64 `json:"pass_cmp"`
	PassAtt float64 `json:"pass_att"`
	PassRat float64 `json:"pass_rat"`
	RushYd  float64 `json:"rush_yd"`
	RushTD  float64 `json:"rush_td"`
	RushAtt float64 `json:"rush_att"`
	Rec     float64 `json:"rec"`
	RecYd   float64 `json:"rec_yd"`
	RecTD   float64 `json:"rec_td"`
	Tgt     float64 `json:"tgt"`
	Fum     float64 `json:"fum"`
	Fpts    float64 `json:"fpts"`
}

// Touches is rushing attempts plus receptions.
func (s SeasonStat) Touches() float64 {
	return s.RushAtt + s.Rec
}

// RawStatsBag maps provider field names to values for one season.
// Values are usually numbers but may arrive as strings.
type RawStatsBag map[string]any

// PlayerSeasons maps season year to totals.
type PlayerSeasons map[int]SeasonStat

// YearsDesc returns the tracked years, most recent first.
func (p PlayerSeasons) YearsDesc() []int {
	years := make([]int, 0, len(p))
	for y := range p {
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// StatsCache maps player id to season totals.
type StatsCache map[string]PlayerSeasons

// DepthCharts maps team to position to player ids in starter order.
type DepthCharts map[string]map[Position][]string

// TeamRecord is a team's win-loss record.
type TeamRecord struct {
	Wins   int `json:"wins" yaml:"wins"`
	Losses int `json:"losses" yaml:"losses"`
}

// Standings maps team abbreviation to record.
type Standings map[string]TeamRecord

// ConsensusRank holds third-party overall ranks for a player, 0 when unknown.
type ConsensusRank struct {
	Sleeper int `json:"sleeper,omitempty"`
	ESPN    int `json:"espn,omitempty"`
}

// LeagueSnapshot is everything the engine needs for one ranking run.
type LeagueSnapshot struct {
	FetchedAt   time.Time                `json:"fetched_at"`
	Season      int                      `json:"season"`
	Players     []RawPlayer              `json:"players"`
	Stats       StatsCache               `json:"stats"`
	DepthCharts DepthCharts              `json:"depth_charts,omitempty"`
	Standings   Standings                `json:"standings,omitempty"`
	Consensus   map[string]ConsensusRank `json:"consensus,omitempty"`
}

// FindPlayer returns the roster entry for id.
func (s *LeagueSnapshot) FindPlayer(id string) (RawPlayer, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return RawPlayer{}, false
}
