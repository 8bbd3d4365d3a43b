package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/yuin/goldmark"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	"github.com/FocuswithJustin/rsb-cli/core/encoding"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/core/osis"
	"github.com/FocuswithJustin/rsb-cli/core/sqlite"
)

type jsonBook struct {
	Index    int        `json:"index"`
	Alias    string     `json:"alias"`
	Title    string     `json:"title"`
	Chapters [][]string `json:"chapters"`
}

type jsonExport struct {
	Manifest Manifest   `json:"manifest"`
	Books    []jsonBook `json:"books"`
}

func writeJSON(w io.Writer, doc *corpus.Document, m Manifest, o Options) error {
	out := jsonExport{Manifest: m, Books: make([]jsonBook, doc.Len())}
	for i, b := range doc.Books {
		out.Books[i] = jsonBook{Index: i, Alias: o.bookID(i), Title: b.Title, Chapters: b.Chapters}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return apperrors.NewIO("write", "json", err)
	}
	return nil
}

func writeOSIS(w io.Writer, doc *corpus.Document, o Options) error {
	return osis.Write(w, doc, osis.Meta{
		Title:      o.Title,
		Identifier: o.ID,
		Language:   o.Language,
		BookID:     o.bookID,
	})
}

// markdownBody renders every book as a "#" heading, every chapter as "##"
// and every verse as its own paragraph led by the bold verse number.
func markdownBody(doc *corpus.Document, o Options) []byte {
	var buf bytes.Buffer
	for i, b := range doc.Books {
		fmt.Fprintf(&buf, "# %s (%s)\n\n", encoding.EscapeMarkdown(encoding.SingleLine(b.Title)), o.bookID(i))
		for c, verses := range b.Chapters {
			fmt.Fprintf(&buf, "## %s %d\n\n", o.bookID(i), c+1)
			for v, text := range verses {
				fmt.Fprintf(&buf, "**%d** %s\n\n", v+1, encoding.EscapeMarkdown(text))
			}
		}
	}
	return buf.Bytes()
}

func writeMarkdown(w io.Writer, doc *corpus.Document, m Manifest, o Options) error {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	fmt.Fprintf(&buf, "title: %s\n", encoding.QuoteYAML(o.Title))
	fmt.Fprintf(&buf, "language: %s\n", encoding.QuoteYAML(o.Language))
	fmt.Fprintf(&buf, "id: %s\n", encoding.QuoteYAML(m.ID))
	fmt.Fprintf(&buf, "date: %s\n", encoding.QuoteYAML(m.Created.Format(time.RFC3339)))
	buf.WriteString("type: \"bible\"\n")
	buf.WriteString("---\n\n")
	buf.Write(markdownBody(doc, o))

	if _, err := w.Write(buf.Bytes()); err != nil {
		return apperrors.NewIO("write", "markdown", err)
	}
	return nil
}

func writeHTML(w io.Writer, doc *corpus.Document, o Options) error {
	var body bytes.Buffer
	if err := goldmark.Convert(markdownBody(doc, o), &body); err != nil {
		return &apperrors.FormattingError{Err: err}
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&buf, "<html lang=\"%s\">\n<head>\n", encoding.EscapeHTML(o.Language))
	buf.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", encoding.EscapeHTML(o.Title))
	fmt.Fprintf(&buf, "<meta name=\"export-id\" content=\"%s\">\n", encoding.EscapeHTML(o.ID))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return apperrors.NewIO("write", "html", err)
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE books (
	id    INTEGER PRIMARY KEY,
	alias TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL
);
CREATE TABLE verses (
	book    INTEGER NOT NULL REFERENCES books(id),
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT NOT NULL,
	PRIMARY KEY (book, chapter, verse)
);
`

// writeSQLite creates the books and verses tables at path. Chapter and verse
// numbers are stored one-based, as users write them.
func writeSQLite(ctx context.Context, path string, doc *corpus.Document, m Manifest, o Options) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return apperrors.NewIO("open", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return apperrors.Wrap(err, "failed to create schema")
	}

	return sqlite.Transaction(ctx, db, func(tx *sql.Tx) error {
		meta := [][2]string{
			{"id", m.ID},
			{"title", m.Title},
			{"language", m.Language},
			{"created", m.Created.Format(time.RFC3339)},
			{"driver", sqlite.DriverType()},
		}
		for _, kv := range meta {
			if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
				return apperrors.Wrap(err, "failed to insert meta")
			}
		}

		bookStmt, err := tx.PrepareContext(ctx, `INSERT INTO books (id, alias, title) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer bookStmt.Close()

		verseStmt, err := tx.PrepareContext(ctx, `INSERT INTO verses (book, chapter, verse, text) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer verseStmt.Close()

		for i, b := range doc.Books {
			if _, err := bookStmt.ExecContext(ctx, i, o.bookID(i), b.Title); err != nil {
				return apperrors.Wrapf(err, "failed to insert book %d", i)
			}
			for c, verses := range b.Chapters {
				for v, text := range verses {
					if _, err := verseStmt.ExecContext(ctx, i, c+1, v+1, text); err != nil {
						return apperrors.Wrapf(err, "failed to insert %s %d:%d", o.bookID(i), c+1, v+1)
					}
				}
			}
		}
		return nil
	})
}
