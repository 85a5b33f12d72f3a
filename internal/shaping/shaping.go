// Package shaping prepares names for glyph-by-glyph drawing: Arabic letters
// are replaced by their contextual presentation forms and the text is
// reordered from logical to visual order.
package shaping

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Prepare shapes s and reorders it for left-to-right drawing.
func Prepare(s string) string {
	return Visual(Reshape(s))
}

// Reshape replaces Arabic letters with the presentation form matching how
// they join their neighbours, and merges lam-alef pairs into ligatures.
// Text without Arabic letters is returned unchanged.
func Reshape(s string) string {
	if !hasArabic(s) {
		return s
	}

	in := []rune(s)
	runes := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == lam && i+1 < len(in) {
			if lig, ok := lamAlef[in[i+1]]; ok {
				runes = append(runes, lig)
				i++
				continue
			}
		}
		runes = append(runes, in[i])
	}

	out := make([]rune, len(runes))
	for i, r := range runes {
		f, ok := letters[r]
		if !ok {
			out[i] = r
			continue
		}
		joinPrev := f.joinsPrev() && prevJoins(runes, i)
		joinNext := f.joinsNext() && nextJoins(runes, i)
		switch {
		case joinPrev && joinNext:
			out[i] = f[formMedi]
		case joinPrev:
			out[i] = f[formFina]
		case joinNext:
			out[i] = f[formInit]
		default:
			out[i] = f[formIsol]
		}
	}
	return string(out)
}

// prevJoins reports whether the nearest non-transparent rune before i
// connects forward.
func prevJoins(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		r := runes[j]
		if transparent(r) {
			continue
		}
		if r == zwj {
			return true
		}
		f, ok := letters[r]
		return ok && f.joinsNext()
	}
	return false
}

// nextJoins reports whether the nearest non-transparent rune after i
// connects backward.
func nextJoins(runes []rune, i int) bool {
	for j := i + 1; j < len(runes); j++ {
		r := runes[j]
		if transparent(r) {
			continue
		}
		if r == zwj {
			return true
		}
		f, ok := letters[r]
		return ok && f.joinsPrev()
	}
	return false
}

func hasArabic(s string) bool {
	for _, r := range s {
		if (r >= 0x0600 && r <= 0x06FF) || (r >= 0x0750 && r <= 0x077F) {
			return true
		}
	}
	return false
}

// Visual reorders s from logical to visual order using the Unicode
// bidirectional algorithm. The paragraph direction follows the first strong
// character. Strings without right-to-left characters are returned as is.
func Visual(s string) string {
	base, ok := baseDirection(s)
	if !ok || !hasRTL(s) {
		return s
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(base)); err != nil {
		return s
	}
	order, err := p.Order()
	if err != nil {
		return s
	}

	parts := make([]string, 0, order.NumRuns())
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = bidi.ReverseString(text)
		}
		parts = append(parts, text)
	}
	if base == bidi.RightToLeft {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	return strings.Join(parts, "")
}

// baseDirection applies rules P2 and P3: the first strong character decides.
func baseDirection(s string) (bidi.Direction, bool) {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return bidi.LeftToRight, true
		case bidi.R, bidi.AL:
			return bidi.RightToLeft, true
		}
	}
	return bidi.LeftToRight, false
}

func hasRTL(s string) bool {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		if c := props.Class(); c == bidi.R || c == bidi.AL {
			return true
		}
	}
	return false
}
