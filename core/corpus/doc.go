// Package corpus parses the line-oriented scripture corpus into an immutable
// in-memory Document and exposes read-only accessors over it.
//
// # Source format
//
// One file per book, named "<book-number>_<anything>". Files without a numeric
// prefix (README, LICENSE, ...) are skipped. Within a file:
//
//   - a line starting with "===" marks a chapter boundary
//   - a line starting with "==" sets the book title ("== Бытие ==")
//   - any other line of the form "<number> <text>" is a verse; the number is
//     ignored and the verse takes the next position in the open chapter
//
// # Document table
//
// The Document is built once and never mutated. Chapter and verse slices handed
// out by accessors are views into it and must not be modified by callers.
// Indices are zero-based throughout this package; out-of-range indexing panics
// like any Go slice access; callers that take user input validate first (see
// package render).
//
// # Example
//
//	doc, err := corpus.Load(os.DirFS("rsb"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.Title(0), doc.ChapterCount(0))
package corpus
