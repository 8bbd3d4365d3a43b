// Package render validates an address against a book and formats the
// selected verses as tagged, word-wrapped lines.
//
// Each verse is written as
//
//	[Gen 1:1]  In the beginning God created the heaven and the earth.
//
// The tag is padded to the alias length plus eight columns, followed by one
// space and the verse text. Lines wrap at Width display columns and
// continuation lines are indented by the alias length plus nine.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/FocuswithJustin/rsb-cli/core/address"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// DefaultWidth is the wrap width used by Render.
const DefaultWidth = 80

// Renderer writes verses to an io.Writer.
type Renderer struct {
	// Width is the wrap width in display columns; zero means DefaultWidth.
	Width int

	// Tag, when set, styles the verse tag after layout is computed.
	// It must not change the display width of the text it is given.
	Tag func(tag string) string
}

// Render formats the verses selected by addr at DefaultWidth.
func Render(addr address.Address, alias string, book *corpus.Book) (string, error) {
	var sb strings.Builder
	if err := (Renderer{}).Write(&sb, addr, alias, book); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// span is a validated selection: chapters [chLo, chHi] and, when one chapter
// is selected with a verse bound, verses [vLo, vHi].
type span struct {
	chLo, chHi int
	vLo, vHi   int // vHi < 0 means the whole chapter
}

// Resolve checks addr against book and returns the number of verses it
// selects. Nothing is written.
func Resolve(addr address.Address, book *corpus.Book) (int, error) {
	sp, err := resolve(addr, book)
	if err != nil {
		return 0, err
	}
	n := 0
	for c := sp.chLo; c <= sp.chHi; c++ {
		if sp.vHi >= 0 {
			n += sp.vHi - sp.vLo + 1
		} else {
			n += len(book.Chapter(c))
		}
	}
	return n, nil
}

func resolve(addr address.Address, book *corpus.Book) (span, error) {
	checkChapter := func(c int) error {
		if c < 0 || c >= book.Len() {
			return &apperrors.InvalidChapterError{Num: c, Title: book.Title, Chapters: book.Len()}
		}
		return nil
	}
	checkVerse := func(c, v int) error {
		n := len(book.Chapter(c))
		if v < 0 || v >= n {
			return &apperrors.InvalidVerseError{Num: v, Title: book.Title, Chapter: c, Verses: n}
		}
		return nil
	}

	switch addr.Kind {
	case address.WholeBook:
		return span{chLo: 0, chHi: book.Len() - 1, vHi: -1}, nil

	case address.SingleChapter:
		if err := checkChapter(addr.Chapter); err != nil {
			return span{}, err
		}
		return span{chLo: addr.Chapter, chHi: addr.Chapter, vHi: -1}, nil

	case address.SingleVerse:
		if err := checkChapter(addr.Chapter); err != nil {
			return span{}, err
		}
		if err := checkVerse(addr.Chapter, addr.Verse); err != nil {
			return span{}, err
		}
		return span{chLo: addr.Chapter, chHi: addr.Chapter, vLo: addr.Verse, vHi: addr.Verse}, nil

	case address.VerseRange:
		if addr.Verse > addr.VerseEnd {
			return span{}, &apperrors.InvalidVerseRangeError{
				Token: fmt.Sprintf("%d-%d", addr.Verse+1, addr.VerseEnd+1),
			}
		}
		if err := checkChapter(addr.Chapter); err != nil {
			return span{}, err
		}
		if err := checkVerse(addr.Chapter, addr.Verse); err != nil {
			return span{}, err
		}
		if err := checkVerse(addr.Chapter, addr.VerseEnd); err != nil {
			return span{}, err
		}
		return span{chLo: addr.Chapter, chHi: addr.Chapter, vLo: addr.Verse, vHi: addr.VerseEnd}, nil

	case address.ChapterRange:
		if addr.Chapter > addr.ChapterEnd {
			return span{}, &apperrors.InvalidInputError{Token: addr.String()}
		}
		if err := checkChapter(addr.Chapter); err != nil {
			return span{}, err
		}
		if err := checkChapter(addr.ChapterEnd); err != nil {
			return span{}, err
		}
		return span{chLo: addr.Chapter, chHi: addr.ChapterEnd, vHi: -1}, nil
	}

	return span{}, &apperrors.InvalidInputError{Token: addr.Kind.String()}
}

// Write validates addr and writes the selected verses to w in ascending
// order. Validation completes before the first byte is written, so an
// invalid address produces no output. Write failures are reported as
// FormattingError.
func (r Renderer) Write(w io.Writer, addr address.Address, alias string, book *corpus.Book) error {
	sp, err := resolve(addr, book)
	if err != nil {
		return err
	}

	for c := sp.chLo; c <= sp.chHi; c++ {
		verses := book.Chapter(c)
		lo, hi := 0, len(verses)-1
		if sp.vHi >= 0 {
			lo, hi = sp.vLo, sp.vHi
		}
		for v := lo; v <= hi; v++ {
			if err := r.writeVerse(w, alias, c, v, verses[v]); err != nil {
				return &apperrors.FormattingError{Err: err}
			}
		}
	}
	return nil
}

// Verse formats a single verse, including its trailing newline.
func (r Renderer) Verse(alias string, chapter, verse int, text string) string {
	var sb strings.Builder
	_ = r.writeVerse(&sb, alias, chapter, verse, text)
	return sb.String()
}

func (r Renderer) writeVerse(w io.Writer, alias string, chapter, verse int, text string) error {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}

	aliasWidth := runewidth.StringWidth(alias)
	tag := fmt.Sprintf("[%s %d:%d]", alias, chapter+1, verse+1)

	gap := " "
	if pad := aliasWidth + 8 - runewidth.StringWidth(tag); pad > 0 {
		gap = strings.Repeat(" ", pad+1)
	}

	segs := append([]segment{{word: tag}}, splitWords(text)...)
	if len(segs) > 1 {
		segs[1].gap = gap
	}

	lines := wrap(segs, width, strings.Repeat(" ", aliasWidth+9))
	if r.Tag != nil && strings.HasPrefix(lines[0], tag) {
		lines[0] = r.Tag(tag) + lines[0][len(tag):]
	}

	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
