package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/textprep/stage"
)

// Form names a Unicode normalization form.
type Form string

// Supported normalization forms.
const (
	NFC  Form = "NFC"
	NFD  Form = "NFD"
	NFKC Form = "NFKC"
	NFKD Form = "NFKD"
)

// DefaultCategories are the general categories kept by default: letters,
// numbers, punctuation and separators.
var DefaultCategories = []string{"L", "N", "P", "Z"}

// structural runes survive category filtering because later stages depend
// on them.
var structural = map[rune]bool{
	'\n': true, '\t': true, '\r': true, ' ': true,
	'.': true, '!': true, '?': true,
	'-': true, '\u00ad': true, '¬': true,
}

// UnicodeOptions configures [Unicode].
type UnicodeOptions struct {
	// Form is the normalization form.
	Form Form `yaml:"form"`

	// RemoveUnsupported filters characters outside AllowedCategories.
	RemoveUnsupported bool `yaml:"remove_unsupported"`

	// AllowedCategories are general-category major classes (L, N, P, Z, S, M, C).
	// Nil means DefaultCategories.
	AllowedCategories []string `yaml:"allowed_categories,omitempty" validate:"dive,oneof=L N P Z S M C"`

	// Replacement is written in place of each filtered character. Empty drops it.
	Replacement string `yaml:"replacement,omitempty"`
}

// DefaultUnicodeOptions returns NFC with filtering to DefaultCategories.
func DefaultUnicodeOptions() UnicodeOptions {
	return UnicodeOptions{
		Form:              NFC,
		RemoveUnsupported: true,
	}
}

// Validate checks the form and categories.
func (o UnicodeOptions) Validate() error {
	if _, err := o.Form.normForm(); err != nil {
		return err
	}
	return stage.Validate(o)
}

func (f Form) normForm() (norm.Form, error) {
	switch f {
	case NFC:
		return norm.NFC, nil
	case NFD:
		return norm.NFD, nil
	case NFKC:
		return norm.NFKC, nil
	case NFKD:
		return norm.NFKD, nil
	default:
		return 0, &stage.InvalidFormError{Form: string(f)}
	}
}

func (f Form) decomposed() bool {
	return f == NFD || f == NFKD
}

// Unicode normalizes text to opts.Form and, when RemoveUnsupported is set,
// filters characters whose category is not allowed. If filtering removed
// anything the text is normalized again, so the result is always in the
// requested form and a second call returns it unchanged.
func Unicode(text string, opts UnicodeOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	nf, _ := opts.Form.normForm()

	out := nf.String(text)
	if !opts.RemoveUnsupported {
		return out, nil
	}

	filtered, changed := filterRunes(out, opts.allowed(), opts.Replacement)
	if !changed {
		return out, nil
	}
	return nf.String(filtered), nil
}

// Unsupported returns the distinct characters of the normalized text that
// Unicode would filter, in order of first appearance. It returns nil when
// RemoveUnsupported is unset.
func Unsupported(text string, opts UnicodeOptions) ([]rune, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.RemoveUnsupported {
		return nil, nil
	}
	nf, _ := opts.Form.normForm()
	tables := opts.allowed()

	var out []rune
	seen := make(map[rune]bool)
	for _, r := range nf.String(text) {
		if structural[r] || unicode.IsOneOf(tables, r) || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, nil
}

func (o UnicodeOptions) allowed() []*unicode.RangeTable {
	categories := o.AllowedCategories
	if categories == nil {
		categories = DefaultCategories
	}
	tables := make([]*unicode.RangeTable, 0, len(categories)+1)
	for _, c := range categories {
		tables = append(tables, unicode.Categories[c])
	}
	// Decomposed forms carry accents as combining marks; keep them.
	if o.Form.decomposed() {
		tables = append(tables, unicode.M)
	}
	return tables
}

func filterRunes(s string, tables []*unicode.RangeTable, replacement string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	for _, r := range s {
		if structural[r] || unicode.IsOneOf(tables, r) {
			b.WriteRune(r)
			continue
		}
		changed = true
		b.WriteString(replacement)
	}
	return b.String(), changed
}
