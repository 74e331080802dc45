package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// componentLabels are the display names of the component scores.
var componentLabels = map[schema.ComponentKey]string{
	schema.ComponentUsage:       "Usage",
	schema.ComponentHighValue:   "High value",
	schema.ComponentEfficiency:  "Efficiency",
	schema.ComponentRecency:     "Recency",
	schema.ComponentEnvironment: "Environment",
	schema.ComponentMatchup:     "Matchup",
}

// WritePlayer outputs the full breakdown of one ranked player.
func WritePlayer(p schema.RankedPlayer, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, p)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePlayerCSV(w, p, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		return WriteRankings([]schema.RankedPlayer{p}, cfg, 0)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePlayerText(w, p, fmtFloat, intFmt)
		}, "Wrote text")
	}
}

// writePlayerText prints the identity line, component and blend tables,
// the note and the season the scores came from.
func writePlayerText(w io.Writer, p schema.RankedPlayer, fmtFloat func(float64) string, intFmt string) error {
	fmt.Fprintf(w, "🏈 %s (%s, %s) #%d overall, %s, tier %s\n",
		p.Name, p.Position, p.Team, p.Rank, p.PosRank, contract.GetColorTier(p.Tier))
	if p.Consensus != nil {
		fmt.Fprintf(w, "📋 Consensus: Sleeper %s, ESPN %s\n",
			orDash(formatRank(p.Consensus.Sleeper)), orDash(formatRank(p.Consensus.ESPN)))
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for _, key := range schema.AllComponents {
		rows = append(rows, []string{componentLabels[key], fmtFloat(p.Component(key))})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	blends := tablewriter.NewWriter(w)
	blends.Header([]string{"Projection", "Floor", "Ceiling", "Confidence", "Volatility", "Boom", "Bust"})
	blends.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := blends.Bulk([][]string{{
		fmtFloat(p.Projection),
		fmtFloat(p.Floor),
		fmtFloat(p.Ceiling),
		fmt.Sprintf("%.2f", p.Confidence),
		fmt.Sprintf("%.2f", p.Volatility),
		fmt.Sprintf(intFmt+"%%", p.BoomPct),
		fmt.Sprintf(intFmt+"%%", p.BustPct),
	}}); err != nil {
		return err
	}
	if err := blends.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "🎭 Role: %s\n", p.Role)
	fmt.Fprintf(w, "📝 %s\n", p.Note)
	if p.HasData && p.RecentStats != nil {
		fmt.Fprintf(w, "📊 %d: %s\n", p.RecentYear, statLine(p.Position, p.RecentStats))
	} else {
		fmt.Fprintln(w, "📊 No qualifying season on record")
	}
	return nil
}

// statLine summarizes the counting stats that matter for pos.
func statLine(pos schema.Position, s *schema.SeasonStat) string {
	parts := []string{fmt.Sprintf("%.0f gp", s.GP)}
	switch pos {
	case schema.QB:
		parts = append(parts,
			fmt.Sprintf("%.0f pass yd", s.PassYd),
			fmt.Sprintf("%.0f pass td", s.PassTD),
			fmt.Sprintf("%.0f int", s.PassInt),
			fmt.Sprintf("%.0f rush yd", s.RushYd))
	case schema.RB:
		parts = append(parts,
			fmt.Sprintf("%.0f rush yd", s.RushYd),
			fmt.Sprintf("%.0f rush td", s.RushTD),
			fmt.Sprintf("%.0f rec", s.Rec),
			fmt.Sprintf("%.0f rec yd", s.RecYd))
	default:
		parts = append(parts,
			fmt.Sprintf("%.0f tgt", s.Tgt),
			fmt.Sprintf("%.0f rec", s.Rec),
			fmt.Sprintf("%.0f rec yd", s.RecYd),
			fmt.Sprintf("%.0f rec td", s.RecTD))
	}
	parts = append(parts, fmt.Sprintf("%.0f fpts", s.Fpts))
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writePlayerCSV writes the ranking columns plus every component score.
func writePlayerCSV(w io.Writer, p schema.RankedPlayer, fmtFloat func(float64) string, intFmt string) error {
	header := append([]string{}, rankingsCSVHeader...)
	for _, key := range schema.AllComponents {
		header = append(header, string(key))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		record := rankedRecord(p, fmtFloat, intFmt)
		for _, key := range schema.AllComponents {
			record = append(record, fmtFloat(p.Component(key)))
		}
		return cw.Write(record)
	})
}
