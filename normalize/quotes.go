package normalize

import (
	"maps"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"dario.cat/mergo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// QuoteOptions configures [Quotes].
type QuoteOptions struct {
	// MapSmartQuotes converts typographic double and single quotes to " and '.
	MapSmartQuotes bool `yaml:"map_smart_quotes"`

	// NormalizeApostrophes unifies apostrophe variants to U+0027.
	NormalizeApostrophes bool `yaml:"normalize_apostrophes"`

	// ASCIIFallback transliterates accented letters to ASCII.
	ASCIIFallback bool `yaml:"ascii_fallback"`

	// AccentMap overrides or extends the built-in transliteration table.
	// It is read, never modified.
	AccentMap map[string]string `yaml:"accent_map,omitempty"`
}

// DefaultQuoteOptions maps quotes and apostrophes and keeps accents.
func DefaultQuoteOptions() QuoteOptions {
	return QuoteOptions{
		MapSmartQuotes:       true,
		NormalizeApostrophes: true,
	}
}

var doubleQuotes = map[rune]bool{
	'“': true, '”': true, '„': true, '‟': true,
	'«': true, '»': true, '〝': true, '〞': true, '〟': true,
	'＂': true, '″': true,
}

var singleQuotes = map[rune]bool{
	'‘': true, '’': true, '‚': true, '‛': true,
	'‹': true, '›': true, '′': true,
}

// Always apostrophes, wherever they appear.
var apostrophes = map[rune]bool{
	'ʼ': true, '＇': true, 'ʹ': true,
}

// Apostrophes only when they follow a letter (l’uomo, po’, lui’s).
var contextualApostrophes = map[rune]bool{
	'’': true, '‘': true, '´': true, '`': true, '′': true,
}

// Quotes maps quote and apostrophe variants and optionally transliterates
// accented letters. The same input and options always give the same output.
func Quotes(text string, opts QuoteOptions) string {
	if opts.MapSmartQuotes || opts.NormalizeApostrophes {
		text = mapQuotes(text, opts)
	}
	if opts.ASCIIFallback {
		text = Transliterate(text, opts.AccentMap)
	}
	return text
}

func mapQuotes(text string, opts QuoteOptions) string {
	var b strings.Builder
	b.Grow(len(text))
	prevLetter := false
	for _, r := range text {
		out := r
		if opts.NormalizeApostrophes {
			if apostrophes[r] || (prevLetter && contextualApostrophes[r]) {
				out = '\''
			}
		}
		if out == r && opts.MapSmartQuotes {
			switch {
			case doubleQuotes[r]:
				out = '"'
			case singleQuotes[r]:
				out = '\''
			}
		}
		b.WriteRune(out)
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// defaultAccents maps precomposed Latin letters to ASCII.
var defaultAccents = buildAccentTable()

var defaultAccentReplacer = newAccentReplacer(defaultAccents)

func buildAccentTable() map[string]string {
	table := map[string]string{
		"ß": "ss", "ẞ": "SS",
		"æ": "ae", "Æ": "AE",
		"œ": "oe", "Œ": "OE",
		"ø": "o", "Ø": "O",
		"ł": "l", "Ł": "L",
		"đ": "d", "Đ": "D",
		"ð": "d", "Ð": "D",
		"þ": "th", "Þ": "Th",
		"ı": "i", "ſ": "s",
	}

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	for r := rune(0xC0); r <= 0x17F; r++ {
		if !unicode.IsLetter(r) {
			continue
		}
		s := string(r)
		if _, ok := table[s]; ok {
			continue
		}
		base, _, err := transform.String(stripMarks, s)
		if err != nil || base == s || len(base) != 1 || base[0] >= utf8.RuneSelf {
			continue
		}
		table[s] = base
	}
	return table
}

// DefaultAccentMap returns a copy of the built-in transliteration table.
func DefaultAccentMap() map[string]string {
	return maps.Clone(defaultAccents)
}

// Transliterate replaces accented letters with ASCII approximations. Entries
// in overrides take precedence over the built-in table. The text is composed
// to NFC first so decomposed accents are matched too; characters without a
// mapping pass through unchanged.
func Transliterate(text string, overrides map[string]string) string {
	text = norm.NFC.String(text)
	if len(overrides) == 0 {
		return defaultAccentReplacer.Replace(text)
	}

	merged := maps.Clone(defaultAccents)
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		// mergo only fails on mismatched types.
		maps.Copy(merged, overrides)
	}
	return newAccentReplacer(merged).Replace(text)
}

// newAccentReplacer orders keys longest first, then lexically, so overlapping
// keys resolve the same way on every run.
func newAccentReplacer(table map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(table))
	for k := range table {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, table[k])
	}
	return strings.NewReplacer(pairs...)
}
