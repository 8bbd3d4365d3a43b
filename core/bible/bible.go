// Package bible is the query entry point used by the command line and the
// interactive browser. It ties the corpus loader, the canon table and the
// renderer together.
package bible

import (
	"context"
	"io"
	"strings"

	"github.com/FocuswithJustin/rsb-cli/core/address"
	"github.com/FocuswithJustin/rsb-cli/core/canon"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/core/render"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
)

// Bible answers address queries against a lazily loaded corpus.
type Bible struct {
	loader   *corpus.Loader
	canon    *canon.Canon
	renderer render.Renderer
}

// Options configures a Bible. Zero values select the Synodal canon and the
// default renderer.
type Options struct {
	Canon    *canon.Canon
	Renderer render.Renderer
}

// New returns a Bible reading from loader.
func New(loader *corpus.Loader, opts Options) *Bible {
	c := opts.Canon
	if c == nil {
		c = canon.Synodal()
	}
	return &Bible{loader: loader, canon: c, renderer: opts.Renderer}
}

// Canon returns the book table used to resolve selectors.
func (b *Bible) Canon() *canon.Canon { return b.canon }

// Document returns the loaded corpus, loading it on first use.
func (b *Bible) Document() (*corpus.Document, error) {
	return b.loader.Document()
}

// Resolve maps a book selector to its canon entry and corpus book.
func (b *Bible) Resolve(selector string) (canon.Entry, *corpus.Book, error) {
	entry, err := b.canon.Lookup(selector)
	if err != nil {
		return canon.Entry{}, nil, err
	}
	doc, err := b.loader.Document()
	if err != nil {
		return canon.Entry{}, nil, err
	}
	if entry.Index >= doc.Len() {
		return canon.Entry{}, nil, &apperrors.NotFoundError{
			Resource: "book",
			ID:       entry.Alias + " (not in corpus)",
		}
	}
	return entry, doc.Book(entry.Index), nil
}

// Lookup renders the verses that token selects in the given book.
func (b *Bible) Lookup(selector, token string) (string, error) {
	var sb strings.Builder
	if err := b.Write(context.Background(), &sb, selector, token); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// LookupReference renders a full reference such as "Gen 1:1-5".
func (b *Bible) LookupReference(ref string) (string, error) {
	var sb strings.Builder
	if err := b.WriteReference(context.Background(), &sb, ref); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write streams the verses that token selects in the given book to w.
func (b *Bible) Write(ctx context.Context, w io.Writer, selector, token string) error {
	addr, err := address.Parse(token)
	if err != nil {
		logging.QueryFailed(ctx, selector, token, err)
		return err
	}
	return b.write(ctx, w, selector, addr)
}

// WriteReference streams the verses of a full reference to w.
func (b *Bible) WriteReference(ctx context.Context, w io.Writer, ref string) error {
	parsed, err := address.ParseReference(ref)
	if err != nil {
		logging.QueryFailed(ctx, "", ref, err)
		return err
	}
	return b.write(ctx, w, parsed.Book, parsed.Address)
}

func (b *Bible) write(ctx context.Context, w io.Writer, selector string, addr address.Address) error {
	entry, book, err := b.Resolve(selector)
	if err != nil {
		logging.QueryFailed(ctx, selector, addr.String(), err)
		return err
	}
	if err := b.renderer.Write(w, addr, entry.Alias, book); err != nil {
		logging.QueryFailed(ctx, entry.Alias, addr.String(), err)
		return err
	}
	logging.DebugContext(ctx, "query served",
		"book", entry.Alias,
		"address", addr.String(),
		"kind", addr.Kind.String(),
	)
	return nil
}

// BookInfo summarizes one book for listings.
type BookInfo struct {
	Index    int    `json:"index"`
	Alias    string `json:"alias"`
	Title    string `json:"title"`
	Chapters int    `json:"chapters"`
	Verses   int    `json:"verses"`
}

// Books lists every canon book present in the corpus, in corpus order.
// Titles come from the corpus files.
func (b *Bible) Books() ([]BookInfo, error) {
	doc, err := b.loader.Document()
	if err != nil {
		return nil, err
	}

	n := min(doc.Len(), b.canon.Len())
	infos := make([]BookInfo, 0, n)
	for i := 0; i < n; i++ {
		entry, _ := b.canon.Entry(i)
		book := doc.Book(i)
		infos = append(infos, BookInfo{
			Index:    i,
			Alias:    entry.Alias,
			Title:    book.Title,
			Chapters: book.Len(),
			Verses:   book.VerseCount(),
		})
	}
	return infos, nil
}
