// Package names turns raw form input into card names and download filenames.
package names

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"cardrender/internal/domain"
)

// DefaultPrefix is prepended to per-card filenames.
const DefaultPrefix = "Invitation_Card_"

// Parse splits multi-line input into names, one per line. Lines are trimmed
// and blank lines dropped.
func Parse(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return FromValues(strings.Split(input, "\n"))
}

// FromValues trims every value and drops the blank ones, keeping order.
func FromValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate enforces the per-request limits. A zero limit disables the check.
func Validate(list []string, maxNames, maxRunes int) error {
	if len(list) == 0 {
		return domain.ErrEmptyInput
	}
	if maxNames > 0 && len(list) > maxNames {
		return domain.ErrTooManyNames
	}
	if maxRunes > 0 {
		for _, n := range list {
			if utf8.RuneCountInString(n) > maxRunes {
				return domain.ErrNameTooLong
			}
		}
	}
	return nil
}

// CardFilename builds "<prefix><name>.png". Path separators and control
// characters in name are replaced with underscores.
func CardFilename(prefix, name string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + sanitize(name) + ".png"
}

// UniqueFilenames returns one filename per name. Repeated names get a numeric
// suffix, so "Ali", "Ali" become "..._Ali.png" and "..._Ali_2.png".
func UniqueFilenames(prefix string, list []string) []string {
	out := make([]string, len(list))
	taken := make(map[string]bool, len(list))
	suffix := make(map[string]int)
	for i, n := range list {
		base := strings.TrimSuffix(CardFilename(prefix, n), ".png")
		name := base + ".png"
		for taken[name] {
			if suffix[base] == 0 {
				suffix[base] = 1
			}
			suffix[base]++
			name = base + "_" + strconv.Itoa(suffix[base]) + ".png"
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
