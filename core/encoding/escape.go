// Package encoding provides the text escaping shared by the export writers.
package encoding

import (
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes text for HTML content and double-quoted attributes.
// Escapes: & < > "
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// markdownEscaper backslash-escapes the punctuation CommonMark could read
// as markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`, `#`, `\#`,
)

// EscapeMarkdown makes s render literally as Markdown inline text.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// QuoteYAML returns s as a double-quoted YAML scalar, for front matter.
func QuoteYAML(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// SingleLine replaces line breaks with spaces so a value fits on one line.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
