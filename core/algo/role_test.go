package algo

import (
	"testing"

	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	tests := []struct {
		name string
		pos  schema.Position
		stat *schema.SeasonStat
		want string
	}{
		{"qb without stats", schema.QB, nil, "Signal Caller"},
		{"rb without stats", schema.RB, nil, "Depth"},
		{"rushing qb beats volume", schema.QB, &schema.SeasonStat{PassAtt: 40 * 10, RushYd: 40 * 10}, "Rushing Threat"},
		{"volume passer", schema.QB, &schema.SeasonStat{PassAtt: 37 * 10}, "Volume Passer"},
		{"pocket passer", schema.QB, &schema.SeasonStat{PassAtt: 30 * 10}, "Pocket Passer"},
		{"game manager", schema.QB, &schema.SeasonStat{PassAtt: 20 * 10}, "Game Manager"},
		{"workhorse", schema.RB, &schema.SeasonStat{RushAtt: 160, Rec: 30}, "Workhorse"},
		{"pass-game back", schema.RB, &schema.SeasonStat{RushAtt: 60, Rec: 50}, "Pass-Game Back"},
		{"red-zone back", schema.RB, &schema.SeasonStat{RushAtt: 60, Rec: 10, RushTD: 6}, "Red-Zone Back"},
		{"featured back", schema.RB, &schema.SeasonStat{RushAtt: 90, Rec: 20}, "Featured Back"},
		{"change of pace", schema.RB, &schema.SeasonStat{RushAtt: 40, Rec: 10}, "Change of Pace"},
		{"alpha wr", schema.WR, &schema.SeasonStat{Tgt: 90, RecYd: 1500}, "Alpha WR"},
		{"deep threat", schema.WR, &schema.SeasonStat{Tgt: 50, RecYd: 800}, "Deep Threat"},
		{"red-zone wr", schema.WR, &schema.SeasonStat{Tgt: 40, RecYd: 400, RecTD: 5}, "Red-Zone WR"},
		{"wr2 flex", schema.WR, &schema.SeasonStat{Tgt: 60, RecYd: 600}, "WR2 / Flex"},
		{"depth wr", schema.WR, &schema.SeasonStat{Tgt: 20, RecYd: 200}, "Depth WR"},
		{"receiving te", schema.TE, &schema.SeasonStat{Tgt: 70}, "Receiving TE"},
		{"red-zone te", schema.TE, &schema.SeasonStat{Tgt: 40, RecTD: 4}, "Red-Zone TE"},
		{"flex te", schema.TE, &schema.SeasonStat{Tgt: 35}, "Flex TE"},
		{"blocking te", schema.TE, &schema.SeasonStat{Tgt: 10}, "Blocking TE"},
		{"kicker", "K", &schema.SeasonStat{}, "Role Player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Role(tt.pos, tt.stat, 10))
		})
	}
}

func TestRoleGamesFloor(t *testing.T) {
	// zero games is treated as one game
	assert.Equal(t, "Alpha WR", Role(schema.WR, &schema.SeasonStat{Tgt: 9}, 0))
}

func TestGenerateNote(t *testing.T) {
	rb := schema.RawPlayer{Name: "Back", Position: schema.RB}
	wr := schema.RawPlayer{Name: "Wide", Position: schema.WR}
	te := schema.RawPlayer{Name: "Tight", Position: schema.TE}

	tests := []struct {
		name   string
		player schema.RawPlayer
		stat   *schema.SeasonStat
		gp     float64
		depth  int
		wins   *int
		want   string
	}{
		{"no stats", rb, nil, 1, 1, intPtr(14), "Back has limited historical data available."},
		{"rb with carries", rb, &schema.SeasonStat{RushAtt: 200, RushYd: 900, Rec: 40}, 16, 0, nil, "Featured Back: 15.0 touches/g, 4.5 yds/carry."},
		{"rb few carries", rb, &schema.SeasonStat{RushAtt: 5, Rec: 20}, 10, 0, nil, "Change of Pace: 2.5 touches/g."},
		{"wr few targets", wr, &schema.SeasonStat{Tgt: 2, RecYd: 30}, 2, 0, nil, "Deep Threat: 1.0 tgt/g."},
		{"te with targets", te, &schema.SeasonStat{Tgt: 100, RecYd: 850}, 17, 2, nil, "Flex TE: 5.9 tgt/g, 8.5 yds/tgt. Listed as backup; value depends on injuries."},
		{"middling wins add nothing", wr, &schema.SeasonStat{Tgt: 10, RecYd: 100}, 10, 3, intPtr(9), "Depth WR: 1.0 tgt/g, 10.0 yds/tgt."},
		{"twelve wins", wr, &schema.SeasonStat{Tgt: 10, RecYd: 100}, 10, 0, intPtr(12), "Depth WR: 1.0 tgt/g, 10.0 yds/tgt. Strong offense (12W team) boosts ceiling."},
		{"five wins", wr, &schema.SeasonStat{Tgt: 10, RecYd: 100}, 10, 0, intPtr(5), "Depth WR: 1.0 tgt/g, 10.0 yds/tgt. Weak team context (5W) limits floor."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role := Role(tt.player.Position, tt.stat, tt.gp)
			assert.Equal(t, tt.want, GenerateNote(tt.player, tt.stat, tt.gp, tt.depth, tt.wins, role))
		})
	}
}
