package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/rsb-cli/core/cache"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/core/export"
	"github.com/FocuswithJustin/rsb-cli/core/sqlite"
	"github.com/FocuswithJustin/rsb-cli/internal/browse"
	"github.com/FocuswithJustin/rsb-cli/internal/validation"
)

// ReadCmd prints the verses an address selects in one book.
type ReadCmd struct {
	Book    string `arg:"" help:"Book alias, title or zero-based number (e.g. Gen, Бытие, 0)"`
	Address string `arg:"" optional:"" help:"chapter, chapter-chapter, chapter:verse or chapter:verse-verse"`
}

func (c *ReadCmd) Run(a *app) error {
	return a.bible.Write(a.ctx, a.stdout, c.Book, c.Address)
}

// RefCmd prints a full reference given as one or more words.
type RefCmd struct {
	Reference []string `arg:"" help:"Reference such as \"Gen 1:1-5\""`
}

func (c *RefCmd) Run(a *app) error {
	return a.bible.WriteReference(a.ctx, a.stdout, strings.Join(c.Reference, " "))
}

// BooksCmd lists the canon books present in the corpus.
type BooksCmd struct {
	JSON bool `help:"Output as JSON"`
}

func (c *BooksCmd) Run(a *app) error {
	books, err := a.bible.Books()
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	for _, b := range books {
		fmt.Fprintf(a.stdout, "%3d  %-8s %s (%d chapters, %s verses)\n",
			b.Index, b.Alias, b.Title, b.Chapters, humanize.Comma(int64(b.Verses)))
	}
	return nil
}

// BrowseCmd runs the interactive picker.
type BrowseCmd struct{}

func (c *BrowseCmd) Run(a *app) error {
	doc, err := a.bible.Document()
	if err != nil {
		return err
	}
	r := browse.New(doc, a.bible.Canon(), a.renderer, a.out, a.stdin, a.stdout)
	return r.Run(a.ctx)
}

// ExportCmd writes the corpus in a derived format.
type ExportCmd struct {
	Format   string `short:"f" required:"" help:"Export format: json, osis, markdown, html or sqlite"`
	Out      string `short:"o" help:"Output file (default: stdout; required for sqlite)" type:"path"`
	Title    string `help:"Work title recorded in the export"`
	Language string `help:"Language tag recorded in the export (default: ru)"`
	ID       string `help:"Export identifier (default: a random UUID)"`
}

func (c *ExportCmd) Run(a *app) error {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	doc, err := a.bible.Document()
	if err != nil {
		return err
	}
	opts := export.Options{Canon: a.bible.Canon(), Title: c.Title, Language: c.Language, ID: c.ID}

	if c.Out == "" {
		if !f.Streamable() {
			return apperrors.NewValidation("out", fmt.Sprintf("%s exports need --out", f))
		}
		_, err := export.Write(a.ctx, a.stdout, f, doc, opts)
		return err
	}

	if err := validation.ValidateOutputPath("out", c.Out); err != nil {
		return err
	}
	m, err := export.WriteFile(a.ctx, c.Out, f, doc, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Exported %s verses as %s to %s (%s)\n",
		humanize.Comma(int64(m.Verses)), m.Format, m.Path, humanize.Bytes(uint64(m.Bytes)))
	fmt.Fprintf(a.stdout, "Export ID: %s\n", m.ID)
	return nil
}

// StatsCmd prints corpus statistics.
type StatsCmd struct {
	JSON bool `help:"Output as JSON"`
}

type statsReport struct {
	Source      string `json:"source"`
	Fingerprint string `json:"fingerprint,omitempty"`
	corpus.Stats
}

func (c *StatsCmd) Run(a *app) error {
	doc, err := a.bible.Document()
	if err != nil {
		return err
	}

	rep := statsReport{Source: a.cfg.CorpusDir, Stats: doc.Stats()}
	if a.cfg.OSISFile != "" {
		rep.Source = a.cfg.OSISFile
	} else if fp, err := corpus.Fingerprint(os.DirFS(a.cfg.CorpusDir)); err == nil {
		rep.Fingerprint = fp
	}

	if c.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(a.stdout, "%s\n", a.out.Heading("Corpus"))
	fmt.Fprintf(a.stdout, "  Source:      %s\n", rep.Source)
	if rep.Fingerprint != "" {
		fmt.Fprintf(a.stdout, "  Fingerprint: %s\n", rep.Fingerprint)
	}
	fmt.Fprintf(a.stdout, "  Books:       %s\n", humanize.Comma(int64(rep.Books)))
	fmt.Fprintf(a.stdout, "  Chapters:    %s\n", humanize.Comma(int64(rep.Chapters)))
	fmt.Fprintf(a.stdout, "  Verses:      %s\n", humanize.Comma(int64(rep.Verses)))
	fmt.Fprintf(a.stdout, "  Text:        %s\n", humanize.Bytes(uint64(rep.Bytes)))
	return nil
}

// CacheGroup contains parsed-corpus cache operations.
type CacheGroup struct {
	Clear CacheClearCmd `cmd:"" help:"Remove every cached document"`
	Info  CacheInfoCmd  `cmd:"" help:"Show cache location and size"`
}

// CacheClearCmd empties the cache.
type CacheClearCmd struct{}

func (c *CacheClearCmd) Run(a *app) error {
	store, err := requireCache(a)
	if err != nil {
		return err
	}
	n, err := store.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Removed %d cached %s from %s\n", n, plural(n, "document"), store.Path())
	return nil
}

// CacheInfoCmd reports cache statistics.
type CacheInfoCmd struct{}

func (c *CacheInfoCmd) Run(a *app) error {
	store, err := requireCache(a)
	if err != nil {
		return err
	}
	st, err := store.Info()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s\n", a.out.Heading("Cache"))
	fmt.Fprintf(a.stdout, "  Path:    %s\n", st.Path)
	fmt.Fprintf(a.stdout, "  Entries: %d\n", st.Entries)
	fmt.Fprintf(a.stdout, "  Data:    %s\n", humanize.Bytes(uint64(st.TotalBytes)))
	fmt.Fprintf(a.stdout, "  File:    %s\n", humanize.Bytes(uint64(st.FileBytes)))
	return nil
}

func requireCache(a *app) (*cache.Store, error) {
	if a.cfg.NoCache {
		return nil, apperrors.NewValidation("no_cache", "caching is disabled")
	}
	return a.cacheStore()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.stdout, "rsb version %s (sqlite driver: %s)\n", version, sqlite.DriverType())
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
