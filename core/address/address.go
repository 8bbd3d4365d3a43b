// Package address parses chapter/verse address tokens such as "3", "3-5",
// "3:16" and "3:16-18" into zero-based Address values.
//
// Parsing is pure: it performs no I/O and knows nothing about the corpus.
// Bounds are checked later, against a concrete book, by package render.
package address

import (
	"strconv"
	"strings"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Kind identifies the shape of an Address.
type Kind int

const (
	// WholeBook selects every chapter of the book.
	WholeBook Kind = iota
	// SingleChapter selects every verse of one chapter.
	SingleChapter
	// SingleVerse selects one verse of one chapter.
	SingleVerse
	// VerseRange selects an inclusive run of verses within one chapter.
	VerseRange
	// ChapterRange selects an inclusive run of whole chapters.
	ChapterRange
)

func (k Kind) String() string {
	switch k {
	case WholeBook:
		return "whole-book"
	case SingleChapter:
		return "chapter"
	case SingleVerse:
		return "verse"
	case VerseRange:
		return "verse-range"
	case ChapterRange:
		return "chapter-range"
	}
	return "unknown"
}

// Address is a parsed, not yet validated, reference into one book.
// All indices are zero-based; range ends are inclusive.
type Address struct {
	Kind Kind

	// Chapter is the chapter index, or the first chapter of a ChapterRange.
	Chapter int
	// ChapterEnd is the last chapter of a ChapterRange.
	ChapterEnd int

	// Verse is the verse index, or the first verse of a VerseRange.
	Verse int
	// VerseEnd is the last verse of a VerseRange.
	VerseEnd int
}

// Book returns the whole-book address.
func Book() Address { return Address{Kind: WholeBook} }

// Chapter returns the address of chapter c.
func Chapter(c int) Address { return Address{Kind: SingleChapter, Chapter: c} }

// Verse returns the address of verse v in chapter c.
func Verse(c, v int) Address { return Address{Kind: SingleVerse, Chapter: c, Verse: v} }

// Verses returns the address of verses lo..=hi in chapter c.
func Verses(c, lo, hi int) Address {
	return Address{Kind: VerseRange, Chapter: c, Verse: lo, VerseEnd: hi}
}

// Chapters returns the address of chapters lo..=hi.
func Chapters(lo, hi int) Address {
	return Address{Kind: ChapterRange, Chapter: lo, ChapterEnd: hi}
}

// String formats the address the way a user would type it (one-based).
func (a Address) String() string {
	switch a.Kind {
	case SingleChapter:
		return strconv.Itoa(a.Chapter + 1)
	case SingleVerse:
		return strconv.Itoa(a.Chapter+1) + ":" + strconv.Itoa(a.Verse+1)
	case VerseRange:
		return strconv.Itoa(a.Chapter+1) + ":" + strconv.Itoa(a.Verse+1) + "-" + strconv.Itoa(a.VerseEnd+1)
	case ChapterRange:
		return strconv.Itoa(a.Chapter+1) + "-" + strconv.Itoa(a.ChapterEnd+1)
	}
	return ""
}

// Parse parses an address token.
//
//	""        whole book
//	"3"       chapter 3
//	"3-5"     chapters 3 through 5
//	"3:16"    chapter 3, verse 16
//	"3:16-18" chapter 3, verses 16 through 18
//
// A ':' takes precedence over '-': in "3:1-2" the dash belongs to the verses.
func Parse(token string) (Address, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Book(), nil
	}

	if ch, verses, ok := strings.Cut(token, ":"); ok {
		chapter, err := parseNumber(ch)
		if err != nil {
			return Address{}, err
		}
		return parseVerses(chapter, verses)
	}

	if low, high, ok := strings.Cut(token, "-"); ok {
		lo, err := parseNumber(low)
		if err != nil {
			return Address{}, err
		}
		hi, err := parseNumber(high)
		if err != nil {
			return Address{}, err
		}
		if lo > hi {
			return Address{}, &apperrors.InvalidInputError{Token: token}
		}
		return Chapters(lo, hi), nil
	}

	chapter, err := parseNumber(token)
	if err != nil {
		return Address{}, err
	}
	return Chapter(chapter), nil
}

// parseVerses parses the part after ':'.
func parseVerses(chapter int, s string) (Address, error) {
	low, high, ok := strings.Cut(s, "-")
	if !ok {
		verse, err := parseNumber(s)
		if err != nil {
			return Address{}, err
		}
		return Verse(chapter, verse), nil
	}

	lo, errLo := parseNumber(low)
	hi, errHi := parseNumber(high)
	if errLo != nil || errHi != nil || lo >= hi {
		return Address{}, &apperrors.InvalidVerseRangeError{Token: s}
	}
	return Verses(chapter, lo, hi), nil
}

// parseNumber converts a one-based number to a zero-based index.
func parseNumber(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil || n == 0 {
		return 0, &apperrors.InvalidInputError{Token: s}
	}
	return int(n) - 1, nil
}
