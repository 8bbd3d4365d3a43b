package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// segment is a word together with the whitespace that preceded it.
type segment struct {
	gap  string
	word string
}

// splitWords breaks s into segments, keeping inner whitespace so that a word
// that stays on the same line keeps its original spacing.
func splitWords(s string) []segment {
	var (
		segs []segment
		gap  strings.Builder
		word strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			segs = append(segs, segment{gap: gap.String(), word: word.String()})
			gap.Reset()
			word.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			if word.Len() > 0 {
				flush()
			}
			gap.WriteRune(r)
			continue
		}
		word.WriteRune(r)
	}
	flush()
	return segs
}

// wrap fills segments into lines of at most width display columns using
// greedy first fit. Continuation lines start with indent. Whitespace at a
// break is dropped. A word wider than a whole line is split across lines.
func wrap(segs []segment, width int, indent string) []string {
	indentWidth := runewidth.StringWidth(indent)

	var (
		lines []string
		line  strings.Builder
		used  int
		fresh = true // nothing but indent on the current line
	)
	newLine := func() {
		lines = append(lines, line.String())
		line.Reset()
		line.WriteString(indent)
		used = indentWidth
		fresh = true
	}

	for _, s := range segs {
		ww := runewidth.StringWidth(s.word)

		if !fresh {
			gw := runewidth.StringWidth(s.gap)
			if used+gw+ww <= width {
				line.WriteString(s.gap)
				line.WriteString(s.word)
				used += gw + ww
				continue
			}
			newLine()
		}

		if used+ww <= width {
			line.WriteString(s.word)
			used += ww
			fresh = false
			continue
		}

		// Overlong word: emit it in chunks that each fill a line.
		for _, r := range s.word {
			rw := runewidth.RuneWidth(r)
			if !fresh && used+rw > width {
				newLine()
			}
			line.WriteRune(r)
			used += rw
			fresh = false
		}
	}

	return append(lines, line.String())
}
