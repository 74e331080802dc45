package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// RecomputeRow compares one player season under the default and requested formats.
type RecomputeRow struct {
	PlayerID    string          `json:"player_id"`
	Name        string          `json:"name"`
	Position    schema.Position `json:"position"`
	Team        string          `json:"team"`
	Season      int             `json:"season"`
	GP          float64         `json:"gp"`
	DefaultFpts float64         `json:"default_fpts"`
	Fpts        float64         `json:"fpts"`
	Delta       float64         `json:"delta"`
}

// BuildRecomputeRows pairs every season in original with its recomputed points.
// Rows are ordered newest season first, then by recomputed points.
func BuildRecomputeRows(players []schema.RawPlayer, original, recomputed schema.StatsCache, pos schema.Position) []RecomputeRow {
	var rows []RecomputeRow
	for _, p := range players {
		if pos != "" && pos != schema.AllPositions && p.Position != pos {
			continue
		}
		for year, s := range original[p.ID] {
			fresh := recomputed[p.ID][year]
			rows = append(rows, RecomputeRow{
				PlayerID:    p.ID,
				Name:        p.Name,
				Position:    p.Position,
				Team:        p.Team,
				Season:      year,
				GP:          s.GP,
				DefaultFpts: s.Fpts,
				Fpts:        fresh.Fpts,
				Delta:       fresh.Fpts - s.Fpts,
			})
		}
	}
	slices.SortStableFunc(rows, func(a, b RecomputeRow) int {
		if c := cmp.Compare(b.Season, a.Season); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Fpts, a.Fpts); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	return rows
}

// WriteRecompute outputs recompute rows, dispatching on the configured output format.
func WriteRecompute(rows []RecomputeRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	format := cfg.Format.String()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Format string         `json:"format"`
				Rows   []RecomputeRow `json:"rows"`
			}{format, rows})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"player_id", "name", "position", "team", "season", "gp", "default_fpts", "fpts", "delta", "format"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{
						r.PlayerID,
						r.Name,
						string(r.Position),
						r.Team,
						strconv.Itoa(r.Season),
						fmt.Sprintf("%.0f", r.GP),
						fmtFloat(r.DefaultFpts),
						fmtFloat(r.Fpts),
						fmtFloat(r.Delta),
						format,
					}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("recompute does not support %s output", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecomputeTable(w, rows, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeRecomputeTable(w io.Writer, rows []RecomputeRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Season", "Player", "Pos", "Team", "GP", schema.DefaultFormat.String(), cfg.Format.String(), "Delta"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.Season),
			contract.TruncateText(r.Name, nameWidth),
			string(r.Position),
			r.Team,
			fmt.Sprintf("%.0f", r.GP),
			fmtFloat(r.DefaultFpts),
			fmtFloat(r.Fpts),
			fmt.Sprintf("%+.*f", cfg.Precision, r.Delta),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Recomputed %d player seasons under %s\n", len(rows), cfg.Format)
	return err
}
