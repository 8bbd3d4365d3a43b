package address

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
)

// Reference is a book alias plus an address within that book.
type Reference struct {
	Book    string
	Address Address
}

// String returns "Book address", or just the book for a whole-book reference.
func (r Reference) String() string {
	if a := r.Address.String(); a != "" {
		return r.Book + " " + a
	}
	return r.Book
}

// referenceGrammar is the participle grammar for "Gen", "Gen 3", "Gen 3:16-18".
// The address token is handed to Parse, so the grammar only has to separate it
// from the book alias.
//
//nolint:govet // participle grammar tags are not standard struct tags
type referenceGrammar struct {
	Book    string  `parser:"@Ident"`
	Address *string `parser:"@Address?"`
}

// referenceLexer tokenizes references. Aliases start with a letter and may
// carry a digit suffix (King1, Cor2); addresses start with a digit.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `\p{L}[\p{L}\p{N}]*`},
	{Name: "Address", Pattern: `[0-9][0-9:\-]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[referenceGrammar](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// ParseReference parses a full reference such as "Gen 1:1-5".
// Syntax errors are reported as ValidationError; a malformed address yields
// the same errors as Parse.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, apperrors.NewValidation("reference", "empty reference")
	}

	parsed, err := referenceParser.ParseString("", s)
	if err != nil {
		return Reference{}, &apperrors.ValidationError{
			Field:   "reference",
			Value:   s,
			Message: "expected \"<book> [chapter[:verse[-verse]]]\"",
			Err:     err,
		}
	}

	ref := Reference{Book: parsed.Book, Address: Book()}
	if parsed.Address != nil {
		addr, err := Parse(*parsed.Address)
		if err != nil {
			return Reference{}, err
		}
		ref.Address = addr
	}
	return ref, nil
}
