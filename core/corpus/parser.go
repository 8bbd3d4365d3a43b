package corpus

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
)

const (
	chapterMarker = "==="
	titleMarker   = "=="
	verseSep      = " "
	numberSep     = "_"
)

// maxLineSize bounds a single corpus line (long psalms fit comfortably).
const maxLineSize = 1024 * 1024

// ParseBook parses one corpus file. name is used in error messages only.
func ParseBook(r io.Reader, name string) (*Book, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		title    string
		titled   bool
		chapters [][]string
		current  []string
		first    = true
	)

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		switch {
		case strings.HasPrefix(line, chapterMarker):
			if len(current) > 0 {
				chapters = append(chapters, current)
				current = nil
			}
		case strings.HasPrefix(line, titleMarker):
			title = strings.TrimSpace(strings.Trim(line, "="))
			titled = true
		default:
			if _, text, ok := strings.Cut(line, verseSep); ok {
				current = append(current, strings.TrimSpace(text))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &apperrors.ParseError{Format: "corpus", Path: name, Message: "read failed", Err: err}
	}

	// A trailing "===" leaves an empty buffer; it is not a chapter.
	if len(current) > 0 {
		chapters = append(chapters, current)
	}

	if !titled {
		return nil, apperrors.NewParse("corpus", name, "no book title")
	}
	if len(chapters) == 0 {
		return nil, apperrors.NewParse("corpus", name, "book has no verses")
	}

	return &Book{Title: title, Chapters: chapters}, nil
}

// BookNumber extracts the numeric prefix of a corpus file name ("05_josh.txt" -> 5).
// ok is false for files that are not part of the corpus.
func BookNumber(name string) (num int, ok bool) {
	prefix, _, found := strings.Cut(name, numberSep)
	if !found {
		return 0, false
	}
	n, err := strconv.ParseUint(prefix, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

type numberedBook struct {
	num  int
	name string
	book *Book
}

// Load parses every book file at the root of fsys into a Document.
// Book numbers must run 0..n-1 without gaps or duplicates.
func Load(fsys fs.FS) (*Document, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, apperrors.NewIO("read corpus directory", "", err)
	}

	var books []numberedBook
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		num, ok := BookNumber(name)
		if !ok {
			logging.BookSkipped(name, "no numeric prefix")
			continue
		}

		book, err := parseFile(fsys, name)
		if err != nil {
			return nil, err
		}
		books = append(books, numberedBook{num: num, name: name, book: book})
	}

	if len(books) == 0 {
		return nil, apperrors.NewNotFound("corpus", "no book files")
	}

	sort.Slice(books, func(i, j int) bool { return books[i].num < books[j].num })

	doc := &Document{Books: make([]*Book, 0, len(books))}
	for i, nb := range books {
		if nb.num != i {
			if i > 0 && books[i-1].num == nb.num {
				return nil, apperrors.NewParse("corpus", nb.name,
					fmt.Sprintf("duplicate book number %d (also %s)", nb.num, books[i-1].name))
			}
			return nil, apperrors.NewParse("corpus", nb.name,
				fmt.Sprintf("book number %d leaves a gap, expected %d", nb.num, i))
		}
		doc.Books = append(doc.Books, nb.book)
	}

	return doc, nil
}

// LoadDir loads the corpus stored in directory dir.
func LoadDir(dir string) (*Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.NewIO("open corpus directory", dir, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewValidation("corpus", dir+" is not a directory")
	}
	return Load(os.DirFS(dir))
}

func parseFile(fsys fs.FS, name string) (*Book, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, apperrors.NewIO("open", name, err)
	}
	defer f.Close()

	return ParseBook(f, name)
}
