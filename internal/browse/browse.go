// Package browse implements the interactive book, chapter and verse picker.
//
// The picker reads one answer per line. At each level an empty line or "q"
// goes back up one level; at the book level it ends the session, as does
// end of input. "?" lists the choices of the current level.
package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/rsb-cli/core/canon"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	"github.com/FocuswithJustin/rsb-cli/core/render"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
	"github.com/FocuswithJustin/rsb-cli/internal/theme"
)

// Browser walks a Document through its read-only accessors.
type Browser struct {
	doc      *corpus.Document
	canon    *canon.Canon
	renderer render.Renderer
	theme    theme.Theme

	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// New returns a Browser reading answers from in and writing to out.
func New(doc *corpus.Document, c *canon.Canon, r render.Renderer, t theme.Theme, in io.Reader, out io.Writer) *Browser {
	if c == nil {
		c = canon.Synodal()
	}
	return &Browser{doc: doc, canon: c, renderer: r, theme: t, in: bufio.NewScanner(in), out: out}
}

// errDone ends the session.
var errDone = io.EOF

// Run drives the picker until the user quits or input ends. Write failures
// are returned; bad answers are reported and asked again.
func (b *Browser) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		book, err := b.pickBook()
		if err == errDone {
			return nil
		}
		if err != nil {
			return err
		}
		if err := b.browseBook(ctx, book); err != nil && err != errDone {
			return err
		}
	}
}

func (b *Browser) browseBook(ctx context.Context, book int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		chapter, err := b.pickNumber(theme.ChapterPrompt, "Chapter", b.doc.ChapterCount(book))
		if err != nil {
			return err
		}
		if err := b.browseChapter(book, chapter); err != nil && err != errDone {
			return err
		}
	}
}

func (b *Browser) browseChapter(book, chapter int) error {
	alias := b.alias(book)
	verses := b.doc.Verses(book, chapter)
	for {
		answer, ok := b.ask(theme.VersePrompt, fmt.Sprintf("Verse (1-%d, * for all)", len(verses)))
		if !ok || answer == "" || answer == "q" {
			return errDone
		}
		switch answer {
		case "*":
			for v, text := range verses {
				if err := b.write(b.renderer.Verse(alias, chapter, v, text)); err != nil {
					return err
				}
			}
			continue
		case "?":
			b.writeList(len(verses), func(i int) string { return verses[i] })
			continue
		}
		v, err := choose(answer, len(verses))
		if err != nil {
			b.complain(err)
			continue
		}
		if err := b.write(b.renderer.Verse(alias, chapter, v, b.doc.Verse(book, chapter, v))); err != nil {
			return err
		}
	}
}

// pickBook accepts a canon alias, title or zero-based number.
func (b *Browser) pickBook() (int, error) {
	for {
		answer, ok := b.ask(theme.BookPrompt, "Book")
		if !ok || answer == "" || answer == "q" {
			return 0, errDone
		}
		if answer == "?" {
			b.listBooks()
			continue
		}
		entry, err := b.canon.Lookup(answer)
		if err == nil && entry.Index >= b.doc.Len() {
			err = fmt.Errorf("book %s is not in the corpus", entry.Alias)
		}
		if err != nil {
			b.complain(err)
			continue
		}
		return entry.Index, nil
	}
}

// pickNumber asks for a one-based number in 1..n and returns it zero-based.
func (b *Browser) pickNumber(p theme.Prompt, label string, n int) (int, error) {
	for {
		answer, ok := b.ask(p, fmt.Sprintf("%s (1-%d)", label, n))
		if !ok || answer == "" || answer == "q" {
			return 0, errDone
		}
		i, err := choose(answer, n)
		if err != nil {
			b.complain(err)
			continue
		}
		return i, nil
	}
}

func choose(answer string, n int) (int, error) {
	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("enter a number from 1 to %d", n)
	}
	return i - 1, nil
}

// ask prompts and reads one answer. Once input has ended every call fails
// without prompting again.
func (b *Browser) ask(p theme.Prompt, text string) (string, bool) {
	if b.eof {
		return "", false
	}
	fmt.Fprint(b.out, b.theme.Prompt(p, text))
	if !b.in.Scan() {
		b.eof = true
		if err := b.in.Err(); err != nil {
			logging.Warn("browser input failed", "error", err)
		}
		fmt.Fprintln(b.out)
		return "", false
	}
	return strings.TrimSpace(b.in.Text()), true
}

func (b *Browser) alias(book int) string {
	if e, ok := b.canon.Entry(book); ok {
		return e.Alias
	}
	return "Book" + strconv.Itoa(book+1)
}

func (b *Browser) listBooks() {
	n := min(b.doc.Len(), b.canon.Len())
	for i := 0; i < n; i++ {
		fmt.Fprintf(b.out, "%3d  %-8s %s\n", i, b.alias(i), b.doc.Title(i))
	}
}

func (b *Browser) writeList(n int, item func(int) string) {
	for i := 0; i < n; i++ {
		text := item(i)
		if r := []rune(text); len(r) > 60 {
			text = string(r[:60]) + "…"
		}
		fmt.Fprintf(b.out, "%3d  %s\n", i+1, text)
	}
}

func (b *Browser) complain(err error) {
	fmt.Fprintln(b.out, b.theme.Error(err.Error()))
}

func (b *Browser) write(s string) error {
	_, err := io.WriteString(b.out, s)
	return err
}
