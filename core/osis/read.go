package osis

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Compiled once; unprefixed name tests match regardless of namespace.
var (
	bookExpr    = xpath.MustCompile("//div[@type='book']")
	titleExpr   = xpath.MustCompile("title")
	chapterExpr = xpath.MustCompile("chapter")
	verseExpr   = xpath.MustCompile("verse")
)

// Read parses OSIS XML produced by Write into a Document. Books appear in
// document order. Chapters without verses are dropped, as the corpus parser
// does; a book left without any verses is an error.
func Read(r io.Reader) (*corpus.Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &apperrors.ParseError{Format: "OSIS", Message: "malformed XML", Err: err}
	}

	divs := xmlquery.QuerySelectorAll(root, bookExpr)
	if len(divs) == 0 {
		return nil, apperrors.NewParse("OSIS", "", "no book divisions")
	}

	doc := &corpus.Document{Books: make([]*corpus.Book, 0, len(divs))}
	for _, div := range divs {
		book := &corpus.Book{Title: bookTitle(div)}
		if book.Title == "" {
			return nil, apperrors.NewParse("OSIS", div.SelectAttr("osisID"), "book has no title")
		}

		for _, ch := range xmlquery.QuerySelectorAll(div, chapterExpr) {
			var verses []string
			for _, v := range xmlquery.QuerySelectorAll(ch, verseExpr) {
				verses = append(verses, strings.TrimSpace(v.InnerText()))
			}
			if len(verses) > 0 {
				book.Chapters = append(book.Chapters, verses)
			}
		}
		if book.Len() == 0 {
			return nil, apperrors.NewParse("OSIS", div.SelectAttr("osisID"), "book has no verses")
		}
		doc.Books = append(doc.Books, book)
	}
	return doc, nil
}

// ReadFile reads an OSIS file from disk.
func ReadFile(path string) (*corpus.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		var perr *apperrors.ParseError
		if apperrors.As(err, &perr) && perr.Path == "" {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// bookTitle prefers the <title> child and falls back to the osisID.
func bookTitle(div *xmlquery.Node) string {
	if t := xmlquery.QuerySelector(div, titleExpr); t != nil {
		if s := strings.TrimSpace(t.InnerText()); s != "" {
			return s
		}
	}
	return div.SelectAttr("osisID")
}
