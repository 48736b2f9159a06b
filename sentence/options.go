package sentence

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/tsawler/textprep/stage"
)

// Method selects the segmentation algorithm.
type Method string

// Segmentation methods.
const (
	Simple Method = "simple"
	Model  Method = "model"
)

// DefaultParagraphMarker separates paragraphs when KeepLineBreaks is set.
const DefaultParagraphMarker = "¶"

// Options configures [Split].
type Options struct {
	Method Method `yaml:"method"`

	// Language selects the abbreviation list (it, en, fr, de, es, la).
	Language string `yaml:"language"`

	// KeepLineBreaks emits ParagraphMarker between paragraphs.
	KeepLineBreaks bool `yaml:"keep_line_breaks"`

	// ParagraphMarker defaults to DefaultParagraphMarker when empty.
	ParagraphMarker string `yaml:"paragraph_marker"`

	// Abbreviations adds entries to the built-in lists, keyed by language.
	// A trailing period is optional; matching ignores case.
	Abbreviations map[string][]string `yaml:"abbreviations,omitempty"`

	// Segmenter is required by the model method.
	Segmenter Segmenter `yaml:"-"`
}

// DefaultOptions returns the simple method for Italian text.
func DefaultOptions() Options {
	return Options{
		Method:          Simple,
		Language:        "it",
		ParagraphMarker: DefaultParagraphMarker,
	}
}

// Validate checks the method, the language and the marker.
func (o Options) Validate() error {
	switch o.Method {
	case Simple, Model:
	default:
		return &stage.UnsupportedMethodError{Method: string(o.Method)}
	}

	if strings.ContainsAny(o.ParagraphMarker, "\r\n") {
		return &stage.InvalidOptionError{
			Option: "paragraph_marker",
			Value:  o.ParagraphMarker,
			Rule:   "no line breaks",
		}
	}

	if o.Method == Model {
		return nil
	}
	if _, ok := o.abbreviations(); !ok {
		return &stage.InvalidOptionError{
			Option:  "language",
			Value:   o.Language,
			Allowed: Languages(),
		}
	}
	return nil
}

func (o Options) marker() string {
	if o.ParagraphMarker == "" {
		return DefaultParagraphMarker
	}
	return o.ParagraphMarker
}

// abbreviations merges the built-in list for the language with the caller's
// entries. ok is false when neither exists.
func (o Options) abbreviations() (map[string]bool, bool) {
	base := baseLanguage(o.Language)
	builtin, known := builtinAbbreviations[base]

	var extra []string
	for _, key := range []string{o.Language, base} {
		if words, ok := o.Abbreviations[key]; ok {
			extra = append(extra, words...)
			known = true
		}
		if key == base {
			break
		}
	}
	if !known {
		return nil, false
	}

	set := make(map[string]bool, len(builtin)+len(extra))
	for _, w := range builtin {
		set[w] = true
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if !strings.HasSuffix(w, ".") {
			w += "."
		}
		set[w] = true
	}
	return set, true
}

// baseLanguage reduces a BCP 47 tag to its lower-case base language
// ("it-IT" becomes "it"). Unparseable tags are returned lower-cased.
func baseLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	base, _ := t.Base()
	return base.String()
}

// Languages lists the languages with a built-in abbreviation list.
func Languages() []string {
	out := make([]string, 0, len(builtinAbbreviations))
	for lang := range builtinAbbreviations {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}
