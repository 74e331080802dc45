package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/parquet"
	"github.com/huangsam/gridiron/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankings outputs ranked players, dispatching on the configured output format.
func WriteRankings(players []schema.RankedPlayer, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, players)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsCSV(w, players, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRankedRows(w, parquet.ConvertRankedPlayers(players))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsTable(w, players, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeRankingsTable renders the human-readable rankings table and a summary.
func writeRankingsTable(w io.Writer, players []schema.RankedPlayer, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Player", "Pos", "Team", "Tier", "Proj", "Floor", "Ceil", "Conf", "Boom", "Bust", "Role"}
	if cfg.Consensus {
		headers = append(headers, "Sleeper", "ESPN")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	withStats := 0
	var data [][]string
	for _, p := range players {
		if p.HasData {
			withStats++
		}
		name := p.Name
		if len([]rune(name)) > nameWidth {
			name = schema.AbbreviateName(name)
		}
		row := []string{
			strconv.Itoa(p.Rank),
			contract.TruncateText(name, nameWidth),
			p.PosRank,
			p.Team,
			contract.GetColorTier(p.Tier),
			fmtFloat(p.Projection),
			fmtFloat(p.Floor),
			fmtFloat(p.Ceiling),
			fmt.Sprintf("%.2f", p.Confidence),
			fmt.Sprintf(intFmt+"%%", p.BoomPct),
			fmt.Sprintf(intFmt+"%%", p.BustPct),
			p.Role,
		}
		if cfg.Consensus {
			var sleeper, espn int
			if p.Consensus != nil {
				sleeper, espn = p.Consensus.Sleeper, p.Consensus.ESPN
			}
			row = append(row, formatRank(sleeper), formatRank(espn))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d players (%d with stats, format %s)\n", len(players), withStats, cfg.Format); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranked in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// rankingsCSVHeader lists the columns shared by rankings CSV output.
var rankingsCSVHeader = []string{
	"rank",
	"pos_rank",
	"tier",
	"player_id",
	"name",
	"position",
	"team",
	"projection",
	"floor",
	"ceiling",
	"confidence",
	"volatility",
	"boom_pct",
	"bust_pct",
	"role",
	"sleeper_rank",
	"espn_rank",
	"note",
}

// writeRankingsCSV writes one row per ranked player.
func writeRankingsCSV(w io.Writer, players []schema.RankedPlayer, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, rankingsCSVHeader, func(cw *csv.Writer) error {
		for _, p := range players {
			if err := cw.Write(rankedRecord(p, fmtFloat, intFmt)); err != nil {
				return err
			}
		}
		return nil
	})
}

func rankedRecord(p schema.RankedPlayer, fmtFloat func(float64) string, intFmt string) []string {
	var sleeper, espn int
	if p.Consensus != nil {
		sleeper, espn = p.Consensus.Sleeper, p.Consensus.ESPN
	}
	return []string{
		strconv.Itoa(p.Rank),
		p.PosRank,
		p.Tier,
		p.ID,
		p.Name,
		string(p.Position),
		p.Team,
		fmtFloat(p.Projection),
		fmtFloat(p.Floor),
		fmtFloat(p.Ceiling),
		fmt.Sprintf("%.2f", p.Confidence),
		fmt.Sprintf("%.2f", p.Volatility),
		fmt.Sprintf(intFmt, p.BoomPct),
		fmt.Sprintf(intFmt, p.BustPct),
		p.Role,
		formatRank(sleeper),
		formatRank(espn),
		p.Note,
	}
}
