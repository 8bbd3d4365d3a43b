// Package canon maps book selectors to corpus book numbers.
//
// A canon is a static table of (index, alias, title) entries. Selectors are
// matched case-insensitively against the alias or the full title, or taken as
// a zero-based book number when they are all digits.
package canon

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Entry describes one book of a canon.
type Entry struct {
	Index int    // Corpus book number
	Alias string // Short command-line name, e.g. "Gen"
	Title string // Full title, used as help text
}

// Canon is an immutable, indexed book table.
type Canon struct {
	entries []Entry
	byKey   map[string]int
}

var synodalCanon = mustNew(synodal)

// Synodal returns the 77-book Russian Synodal canon.
func Synodal() *Canon {
	return synodalCanon
}

// New builds a canon from entries. Indices must run 0..n-1 in order and
// aliases must be unique after case folding.
func New(entries []Entry) (*Canon, error) {
	c := &Canon{
		entries: make([]Entry, len(entries)),
		byKey:   make(map[string]int, 2*len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if e.Index != i {
			return nil, &apperrors.ValidationError{
				Field:   "index",
				Value:   strconv.Itoa(e.Index),
				Message: fmt.Sprintf("entry %q has index %d, expected %d", e.Alias, e.Index, i),
			}
		}
		if e.Alias == "" {
			return nil, apperrors.NewValidation("alias", fmt.Sprintf("entry %d has no alias", i))
		}
		key := fold(e.Alias)
		if prev, dup := c.byKey[key]; dup {
			return nil, &apperrors.ValidationError{
				Field:   "alias",
				Value:   e.Alias,
				Message: fmt.Sprintf("alias %q collides with entry %d", e.Alias, prev),
			}
		}
		c.byKey[key] = i
	}

	// Titles are a fallback and never shadow an alias.
	for i, e := range c.entries {
		if e.Title == "" {
			continue
		}
		if _, taken := c.byKey[fold(e.Title)]; !taken {
			c.byKey[fold(e.Title)] = i
		}
	}
	return c, nil
}

func mustNew(entries []Entry) *Canon {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of books in the canon.
func (c *Canon) Len() int { return len(c.entries) }

// Entries returns a copy of the table in index order.
func (c *Canon) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the entry for book number i.
func (c *Canon) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Lookup resolves a selector: an alias ("gen", "KING1"), a full title, or a
// zero-based book number ("0").
func (c *Canon) Lookup(selector string) (Entry, error) {
	s := strings.TrimSpace(selector)
	if s == "" {
		return Entry{}, apperrors.NewValidation("book", "empty book selector")
	}

	if n, err := strconv.Atoi(s); err == nil && isDigits(s) {
		if e, ok := c.Entry(n); ok {
			return e, nil
		}
		return Entry{}, apperrors.NewNotFound("book", selector)
	}

	if i, ok := c.byKey[fold(s)]; ok {
		return c.entries[i], nil
	}
	return Entry{}, apperrors.NewNotFound("book", selector)
}

// fold returns the case-folded form of s. A Caser holds state, so one is
// made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
