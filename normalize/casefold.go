package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/textprep/stage"
)

// CaseOptions configures [Lower].
type CaseOptions struct {
	// Aggressive lower-cases everything. When false, acronyms are kept.
	Aggressive bool `yaml:"aggressive"`

	// Language is the BCP 47 tag selecting language-specific lowering rules.
	Language string `yaml:"language" validate:"required,bcp47_language_tag"`
}

// DefaultCaseOptions lower-cases everything with Italian rules.
func DefaultCaseOptions() CaseOptions {
	return CaseOptions{
		Aggressive: true,
		Language:   "it",
	}
}

// Validate checks the language tag.
func (o CaseOptions) Validate() error {
	return stage.Validate(o)
}

// Lower lower-cases text. With Aggressive unset, runs of two or more
// upper-case letters that are not followed by a lower-case letter are left
// as they are.
func Lower(text string, opts CaseOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	tag, err := language.Parse(opts.Language)
	if err != nil {
		return "", &stage.InvalidOptionError{Option: "language", Value: opts.Language}
	}
	caser := cases.Lower(tag)

	if opts.Aggressive {
		return caser.String(text), nil
	}

	spans := acronymSpans(text)
	if len(spans) == 0 {
		return caser.String(text), nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		b.WriteString(caser.String(text[last:sp[0]]))
		b.WriteString(text[sp[0]:sp[1]])
		last = sp[1]
	}
	b.WriteString(caser.String(text[last:]))
	return b.String(), nil
}

// acronymSpans returns byte ranges of upper-case runs of at least two letters
// not followed by a lower-case letter.
func acronymSpans(text string) [][2]int {
	var spans [][2]int
	start, count := -1, 0

	flush := func(end int, next rune) {
		if count >= 2 && !unicode.IsLower(next) {
			spans = append(spans, [2]int{start, end})
		}
		start, count = -1, 0
	}

	for i, r := range text {
		if unicode.IsUpper(r) {
			if start < 0 {
				start = i
			}
			count++
			continue
		}
		if start >= 0 {
			flush(i, r)
		}
	}
	if start >= 0 {
		flush(len(text), utf8.RuneError)
	}
	return spans
}
