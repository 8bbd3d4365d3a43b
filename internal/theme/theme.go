// Package theme decides whether terminal output is coloured and supplies the
// prompt prefixes of the interactive browser.
package theme

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI escape sequences.
const (
	reset  = "\x1b[0m"
	bold   = "\x1b[1m"
	cyan   = "\x1b[36m"
	yellow = "\x1b[33m"
	red    = "\x1b[31m"
)

// Prompt levels of the browser.
type Prompt int

const (
	BookPrompt Prompt = iota
	ChapterPrompt
	VersePrompt
)

var prefixes = [...]string{
	BookPrompt:    "📚",
	ChapterPrompt: "📖",
	VersePrompt:   "📜",
}

// Theme styles text for one output stream.
type Theme struct {
	color bool
	emoji bool
}

// Plain is a Theme that never styles anything.
var Plain = Theme{}

// New resolves mode ("auto", "always" or "never") for f. In auto mode colour
// is enabled only when f is a terminal and NO_COLOR is unset. Emoji prompt
// prefixes follow the same terminal check.
func New(mode string, f *os.File) Theme {
	tty := f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	t := Theme{emoji: tty}
	switch strings.ToLower(mode) {
	case "always":
		t.color = true
	case "never":
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		t.color = tty && !noColor
	}
	return t
}

// Color reports whether the theme emits escape sequences.
func (t Theme) Color() bool { return t.color }

func (t Theme) style(code, s string) string {
	if !t.color {
		return s
	}
	return code + s + reset
}

// Tag styles a verse tag such as "[Gen 1:1]". It has the signature of
// render.Renderer.Tag and never changes the display width.
func (t Theme) Tag(s string) string { return t.style(bold+cyan, s) }

// Heading styles a section heading.
func (t Theme) Heading(s string) string { return t.style(bold, s) }

// Error styles an error message.
func (t Theme) Error(s string) string { return t.style(red, s) }

// Prefix returns the prompt prefix for p, or "?" when emoji are unavailable.
func (t Theme) Prefix(p Prompt) string {
	if !t.emoji || p < 0 || int(p) >= len(prefixes) {
		return "?"
	}
	return prefixes[p]
}

// Prompt formats a browser prompt line such as "📖 Chapter (1-50): ".
func (t Theme) Prompt(p Prompt, text string) string {
	return t.Prefix(p) + " " + t.style(bold, text) + t.style(yellow, ":") + " "
}
