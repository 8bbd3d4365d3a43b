// Package export writes a loaded corpus to derived formats: JSON, OSIS XML,
// Markdown, HTML and SQLite. Exports are one-shot artifacts; nothing in the
// tool reads them back except the OSIS loader.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/rsb-cli/core/canon"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
)

// Format names an export format.
type Format string

// Supported formats.
const (
	JSON     Format = "json"
	OSIS     Format = "osis"
	Markdown Format = "markdown"
	HTML     Format = "html"
	SQLite   Format = "sqlite"
)

var formats = []Format{JSON, OSIS, Markdown, HTML, SQLite}

// Formats returns every supported format.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat validates a format name. "md" and "xml" are accepted as
// aliases for markdown and osis.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "md":
		return Markdown, nil
	case "xml":
		return OSIS, nil
	default:
		if slices.Contains(formats, f) {
			return f, nil
		}
	}
	return "", &apperrors.ValidationError{
		Field:   "format",
		Value:   s,
		Message: fmt.Sprintf("unknown export format %q", s),
	}
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	switch f {
	case OSIS:
		return ".osis.xml"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case SQLite:
		return ".db"
	}
	return ".json"
}

// Streamable reports whether f can be written to an io.Writer.
func (f Format) Streamable() bool {
	return f != SQLite
}

// Options controls an export.
type Options struct {
	// Canon supplies book aliases; nil selects the Synodal canon.
	Canon *canon.Canon
	// Title names the work; defaults to DefaultTitle.
	Title string
	// Language is the BCP 47 tag of the text; defaults to "ru".
	Language string
	// ID identifies the export; a random UUID when empty.
	ID string
}

// DefaultTitle is the work title used when Options.Title is empty.
const DefaultTitle = "Синодальный перевод"

// Manifest describes a finished export.
type Manifest struct {
	ID       string    `json:"id"`
	Format   Format    `json:"format"`
	Title    string    `json:"title"`
	Language string    `json:"language"`
	Created  time.Time `json:"created"`
	Books    int       `json:"books"`
	Chapters int       `json:"chapters"`
	Verses   int       `json:"verses"`
	Path     string    `json:"path,omitempty"`
	Bytes    int64     `json:"bytes,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Canon == nil {
		o.Canon = canon.Synodal()
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Language == "" {
		o.Language = "ru"
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return o
}

// bookID returns the canon alias of book i, or "BookN" past the canon.
func (o Options) bookID(i int) string {
	if e, ok := o.Canon.Entry(i); ok {
		return e.Alias
	}
	return "Book" + strconv.Itoa(i+1)
}

func newManifest(f Format, doc *corpus.Document, o Options) Manifest {
	st := doc.Stats()
	return Manifest{
		ID:       o.ID,
		Format:   f,
		Title:    o.Title,
		Language: o.Language,
		Created:  time.Now().UTC(),
		Books:    st.Books,
		Chapters: st.Chapters,
		Verses:   st.Verses,
	}
}

// Write streams doc to w in format f. SQLite cannot be streamed; use
// WriteFile.
func Write(ctx context.Context, w io.Writer, f Format, doc *corpus.Document, opts Options) (Manifest, error) {
	o := opts.withDefaults()
	m := newManifest(f, doc, o)

	var err error
	switch f {
	case JSON:
		err = writeJSON(w, doc, m, o)
	case OSIS:
		err = writeOSIS(w, doc, o)
	case Markdown:
		err = writeMarkdown(w, doc, m, o)
	case HTML:
		err = writeHTML(w, doc, o)
	case SQLite:
		return Manifest{}, apperrors.NewValidation("format", "sqlite exports need a file path")
	default:
		return Manifest{}, apperrors.NewValidation("format", fmt.Sprintf("unknown export format %q", f))
	}
	if err != nil {
		return Manifest{}, err
	}

	logging.InfoContext(ctx, "export written", "id", m.ID, "format", string(f), "verses", m.Verses)
	return m, nil
}

// WriteFile exports doc to path. Streamed formats are written to a temporary
// file in the same directory and renamed into place; a failed export leaves
// any previous file untouched.
func WriteFile(ctx context.Context, path string, f Format, doc *corpus.Document, opts Options) (Manifest, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Manifest{}, apperrors.NewIO("create directory", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return Manifest{}, apperrors.NewIO("create", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	var m Manifest
	if f == SQLite {
		tmp.Close()
		o := opts.withDefaults()
		m = newManifest(f, doc, o)
		err = writeSQLite(ctx, tmpPath, doc, m, o)
		if err == nil {
			logging.InfoContext(ctx, "export written", "id", m.ID, "format", string(f), "verses", m.Verses)
		}
	} else {
		m, err = Write(ctx, tmp, f, doc, opts)
		if cerr := tmp.Close(); err == nil && cerr != nil {
			err = apperrors.NewIO("close", path, cerr)
		}
	}
	if err != nil {
		return Manifest{}, err
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return Manifest{}, apperrors.NewIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Manifest{}, apperrors.NewIO("rename", path, err)
	}
	if fi, err := os.Stat(path); err == nil {
		m.Bytes = fi.Size()
	}
	m.Path = path
	return m, nil
}
