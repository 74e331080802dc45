package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output, keyed by draft tier.
var (
	STierColor = color.New(color.FgRed, color.Bold)
	ATierColor = color.New(color.FgMagenta, color.Bold)
	BTierColor = color.New(color.FgYellow)
	CTierColor = color.New(color.FgCyan)
)

// GetColorTier returns a colored tier label for console output (table).
func GetColorTier(tier string) string {
	switch tier {
	case "S":
		return STierColor.Sprint(tier)
	case "A":
		return ATierColor.Sprint(tier)
	case "B":
		return BTierColor.Sprint(tier)
	case "C":
		return CTierColor.Sprint(tier)
	default:
		return tier
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for provider cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gridiron_cache.db"
	}
	return filepath.Join(homeDir, ".gridiron_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for ranking runs.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gridiron_analysis.db"
	}
	return filepath.Join(homeDir, ".gridiron_analysis.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// maxWidth must exceed 3 to leave room for content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
