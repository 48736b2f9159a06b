package normalize

import (
	"regexp"
	"strings"
)

// WhitespaceOptions configures [Whitespace].
type WhitespaceOptions struct {
	// CollapseSpaces turns runs of horizontal whitespace into one space.
	CollapseSpaces bool `yaml:"collapse_spaces"`

	// CollapseNewlines turns runs of two or more newlines into one newline.
	// Lines holding only horizontal whitespace are part of the run.
	CollapseNewlines bool `yaml:"collapse_newlines"`

	// PreserveParagraphs makes CollapseNewlines reduce each run to exactly one
	// blank line instead of a single newline.
	PreserveParagraphs bool `yaml:"preserve_paragraphs"`

	// Trim strips leading and trailing whitespace from the whole text.
	Trim bool `yaml:"trim"`
}

// DefaultWhitespaceOptions collapses spaces and trims, keeping newlines.
func DefaultWhitespaceOptions() WhitespaceOptions {
	return WhitespaceOptions{
		CollapseSpaces: true,
		Trim:           true,
	}
}

var (
	lineBreaks   = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n\n")
	reHorizontal = regexp.MustCompile(`[\t\v\f \p{Zs}]+`)
	reNewlineRun = regexp.MustCompile(`\n(?:[\t\v\f \p{Zs}]*\n)+`)
)

// Whitespace normalizes line endings and then applies, in order, space
// collapsing, newline collapsing and trimming.
func Whitespace(text string, opts WhitespaceOptions) string {
	text = lineBreaks.Replace(text)

	if opts.CollapseSpaces {
		text = reHorizontal.ReplaceAllString(text, " ")
	}
	if opts.CollapseNewlines {
		sep := "\n"
		if opts.PreserveParagraphs {
			sep = "\n\n"
		}
		text = reNewlineRun.ReplaceAllLiteralString(text, sep)
	}
	if opts.Trim {
		text = strings.TrimSpace(text)
	}
	return text
}
