package hyphen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/textprep/lexicon"
	"github.com/tsawler/textprep/stage"
)

// Options configures [Rejoin].
type Options struct {
	// JoinHyphenated enables rejoining.
	JoinHyphenated bool `yaml:"join_hyphenated"`

	// MaxLineGap is the number of blank lines allowed between the hyphenated
	// fragment and its continuation. 0 requires an immediate line break.
	MaxLineGap int `yaml:"max_line_gap" validate:"min=0"`

	// StripSoftHyphens removes soft hyphens (U+00AD) between two letters.
	StripSoftHyphens bool `yaml:"strip_soft_hyphens"`

	// PreserveTokens are fragments that must never be merged with the next
	// line, matched case-sensitively.
	PreserveTokens lexicon.Lookup `yaml:"-"`

	// Compounds are legitimately hyphenated words ("socio-economico").
	Compounds lexicon.Lookup `yaml:"-"`

	// Dictionary, when set, is consulted for the merged word and its halves.
	Dictionary lexicon.Lookup `yaml:"-"`
}

// DefaultOptions enables rejoining with no blank-line gap.
func DefaultOptions() Options {
	return Options{
		JoinHyphenated:   true,
		StripSoftHyphens: true,
	}
}

// Validate checks the numeric options.
func (o Options) Validate() error {
	return stage.Validate(o)
}

// Reason explains a rejoin decision.
type Reason string

// Decision reasons.
const (
	Joined         Reason = "joined"
	NoContinuation Reason = "no-continuation"
	LineGap        Reason = "gap"
	Preserved      Reason = "preserved"
	CompoundChain  Reason = "compound-chain"
	Compound       Reason = "compound"
	Capitalized    Reason = "capitalized"
	Dictionary     Reason = "dictionary"
)

// Decision describes one hyphen found at the end of a line.
type Decision struct {
	Fragment     string
	Continuation string
	Offset       int // byte offset of the hyphen
	Gap          int // blank lines between fragment and continuation
	Joined       bool
	Reason       Reason

	end int // byte offset where the continuation starts
}

// Rejoin merges eligible hyphenated line breaks. Ineligible hyphens are left
// untouched together with their line breaks.
func Rejoin(text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	out := text
	if opts.JoinHyphenated {
		decisions := analyze(text, opts)
		out = apply(text, decisions)
	}
	if opts.StripSoftHyphens {
		out = stripSoftHyphens(out)
	}
	return out, nil
}

// Analyze returns a decision for every hyphen that ends a line, in text
// order, without modifying the text.
func Analyze(text string, opts Options) ([]Decision, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return analyze(text, opts), nil
}

func analyze(text string, opts Options) []Decision {
	var decisions []Decision
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isHyphen(r) {
			if d, ok := evaluate(text, i, size, opts); ok {
				decisions = append(decisions, d)
			}
		}
		i += size
	}
	return decisions
}

func apply(text string, decisions []Decision) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, d := range decisions {
		if !d.Joined {
			continue
		}
		b.WriteString(text[last:d.Offset])
		last = d.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// evaluate inspects the hyphen at pos. ok is false when the hyphen does not
// end a line after a word fragment.
func evaluate(text string, pos, size int, opts Options) (Decision, bool) {
	fragStart := pos
	for fragStart > 0 {
		r, n := utf8.DecodeLastRuneInString(text[:fragStart])
		if !isWordRune(r) {
			break
		}
		fragStart -= n
	}
	if fragStart == pos {
		return Decision{}, false
	}

	j := skipHorizontal(text, pos+size)
	if j >= len(text) || text[j] != '\n' {
		return Decision{}, false
	}

	d := Decision{Fragment: text[fragStart:pos], Offset: pos}

	// Count blank lines up to the continuation.
	j++
	k := skipHorizontal(text, j)
	for k < len(text) && text[k] == '\n' {
		d.Gap++
		j = k + 1
		k = skipHorizontal(text, j)
	}
	d.end = k

	contEnd := k
	for contEnd < len(text) {
		r, n := utf8.DecodeRuneInString(text[contEnd:])
		if !isWordRune(r) {
			break
		}
		contEnd += n
	}
	d.Continuation = text[k:contEnd]

	d.Reason = decide(text, fragStart, d, opts)
	d.Joined = d.Reason == Joined
	return d, true
}

func decide(text string, fragStart int, d Decision, opts Options) Reason {
	if d.Continuation == "" || !startsWithLetter(d.Continuation) {
		return NoContinuation
	}
	if d.Gap > opts.MaxLineGap {
		return LineGap
	}
	if opts.PreserveTokens != nil && opts.PreserveTokens.Contains(d.Fragment) {
		return Preserved
	}
	if fragStart > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:fragStart]); isHyphen(r) {
			return CompoundChain
		}
	}
	if opts.Compounds != nil && known(opts.Compounds, d.Fragment+"-"+d.Continuation) {
		return Compound
	}
	if titleCased(d.Continuation) && !allUpper(d.Fragment) {
		return Capitalized
	}
	if opts.Dictionary != nil {
		merged := d.Fragment + d.Continuation
		if known(opts.Dictionary, merged) {
			return Joined
		}
		if known(opts.Dictionary, d.Fragment) && known(opts.Dictionary, d.Continuation) {
			return Dictionary
		}
	}
	return Joined
}

func known(dict lexicon.Lookup, word string) bool {
	return dict.Contains(word) || dict.Contains(strings.ToLower(word))
}

// isHyphen reports characters used as line-end hyphens, including the
// not-sign and double oblique hyphen found in older print.
func isHyphen(r rune) bool {
	switch r {
	case '-', '\u00ad', '\u2010', '\u2011', '¬', '\u2e17':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.M, r)
}

func isHorizontal(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || unicode.Is(unicode.Zs, r)
}

func skipHorizontal(text string, i int) int {
	for i < len(text) {
		r, n := utf8.DecodeRuneInString(text[i:])
		if !isHorizontal(r) {
			break
		}
		i += n
	}
	return i
}

func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

// titleCased reports an upper-case first letter followed by at least one
// lower-case letter.
func titleCased(s string) bool {
	first, n := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.IndexFunc(s[n:], unicode.IsLower) >= 0
}

func allUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) < 0
}

func stripSoftHyphens(text string) string {
	if !strings.ContainsRune(text, '\u00ad') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		if r == '\u00ad' {
			prev, _ := utf8.DecodeLastRuneInString(text[:i])
			next, _ := utf8.DecodeRuneInString(text[i+n:])
			if unicode.IsLetter(prev) && unicode.IsLetter(next) {
				i += n
				continue
			}
		}
		b.WriteString(text[i : i+n])
		i += n
	}
	return b.String()
}
