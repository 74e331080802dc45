package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var nameSuffix = regexp.MustCompile(`(?i)\s+(jr\.?|sr\.?|ii|iii|iv)$`)

// NormalizeName lowercases a player name and strips suffixes and punctuation
// so names from different providers can be matched.
func NormalizeName(name string) string {
	n := strings.ToLower(name)
	n = nameSuffix.ReplaceAllString(n, "")
	n = strings.NewReplacer(".", "", "'", "").Replace(n)
	return strings.TrimSpace(n)
}

// NameKey is the primary cross-provider key, including team.
func NameKey(fullName string, pos Position, team string) string {
	return NormalizeName(fullName) + "|" + string(pos) + "|" + strings.ToUpper(team)
}

// NameKeyNoTeam is the fallback cross-provider key for traded players.
func NameKeyNoTeam(fullName string, pos Position) string {
	return NormalizeName(fullName) + "|" + string(pos)
}

// getInitial extracts the first rune, for Unicode safety.
func getInitial(first string) string {
	rr := []rune(first)
	if len(rr) > 0 {
		return string(rr[0])
	}
	return ""
}

// AbbreviateName formats "Patrick Mahomes" to "P. Mahomes".
// Everything after the first name is kept so "Amon-Ra St. Brown" becomes "A. St. Brown".
// Single-word names are returned unchanged.
func AbbreviateName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.TrimSpace(name)
	}
	initial := getInitial(strings.TrimLeftFunc(parts[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if initial == "" {
		return strings.Join(parts[1:], " ")
	}
	return initial + ". " + strings.Join(parts[1:], " ")
}
