// Package outwriter renders rankings, player breakdowns and weight tables.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/gridiron/internal/contract"
	"golang.org/x/term"
)

// errParquetNeedsFile is returned when parquet output would go to stdout.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeWithFile opens outputFile (or stdout when empty), hands it to writer
// and reports where the output went.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes header followed by whatever writeRows emits.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// createFormatters returns a float formatter honoring precision and the integer verb.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, intFmt
}

// formatRank renders a consensus rank, leaving unranked cells blank.
func formatRank(rank int) string {
	if rank <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", rank)
}

// terminalWidth returns cfg.Width, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// getMaxTableNameWidth sizes the player column from the space the fixed
// ranking columns leave over.
func getMaxTableNameWidth(cfg *contract.Config) int {
	// Rank, Pos, Team, Tier, four scores, Boom/Bust and Role with borders
	baseWidth := 95
	if cfg.Consensus {
		baseWidth += 20
	}
	available := terminalWidth(cfg) - baseWidth
	if available < 12 {
		return 12
	}
	if available > 28 {
		return 28
	}
	return available
}
