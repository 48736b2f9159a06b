package sentence

import (
	"context"
	"iter"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/textprep/stage"
)

// Sequence is a finite, restartable sequence of sentences.
type Sequence iter.Seq[string]

// Segment is a sentence with its position in the input.
type Segment struct {
	Text      string // whitespace-collapsed sentence
	Span      Span   // byte range in the input text
	Paragraph int    // index of the paragraph, counting non-blank ones
}

// Split segments text into sentences. Options are validated before any work
// is done. With the simple method the returned sequence scans text lazily on
// each iteration.
func Split(ctx context.Context, text string, opts Options) (Sequence, error) {
	segs, err := segments(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	return withMarkers(segs, opts.KeepLineBreaks, opts.marker()), nil
}

// Segments is Split with position metadata. Paragraph markers are not
// returned; a change of Segment.Paragraph marks their place.
func Segments(ctx context.Context, text string, opts Options) ([]Segment, error) {
	segs, err := segments(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	return slices.Collect(segs), nil
}

func segments(ctx context.Context, text string, opts Options) (iter.Seq[Segment], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Method == Model {
		segs, err := modelSegments(ctx, text, opts)
		if err != nil {
			return nil, err
		}
		return slices.Values(segs), nil
	}

	abbr, _ := opts.abbreviations()
	s := &simpleSplitter{
		abbreviations: abbr,
		ordinals:      ordinalLanguages[baseLanguage(opts.Language)],
	}
	return s.segments(text), nil
}

func withMarkers(segs iter.Seq[Segment], keep bool, marker string) Sequence {
	return func(yield func(string) bool) {
		prev := -1
		for seg := range segs {
			if keep && prev >= 0 && seg.Paragraph != prev {
				if !yield(marker) {
					return
				}
			}
			prev = seg.Paragraph
			if !yield(seg.Text) {
				return
			}
		}
	}
}

var reParagraphBreak = regexp.MustCompile(`\n(?:[\t\v\f\r \p{Zs}]*\n)+|\x{2029}`)

// paragraphs returns the spans of the non-blank paragraphs of text.
func paragraphs(text string) []Span {
	var out []Span
	start := 0
	add := func(end int) {
		if strings.TrimSpace(text[start:end]) != "" {
			out = append(out, Span{start, end})
		}
	}
	for _, loc := range reParagraphBreak.FindAllStringIndex(text, -1) {
		add(loc[0])
		start = loc[1]
	}
	add(len(text))
	return out
}

// newSegment trims the span and collapses its inner whitespace. ok is false
// for a blank span.
func newSegment(text string, sp Span, para int) (Segment, bool) {
	raw := text[sp.Start:sp.End]
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	sp.Start += len(raw) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	sp.End = sp.Start + len(trimmed)
	if trimmed == "" {
		return Segment{}, false
	}
	return Segment{
		Text:      strings.Join(strings.Fields(trimmed), " "),
		Span:      sp,
		Paragraph: para,
	}, true
}

func modelSegments(ctx context.Context, text string, opts Options) ([]Segment, error) {
	if opts.Segmenter == nil {
		return nil, &stage.CapabilityUnavailableError{Capability: "sentence segmenter", Err: errNoSegmenter}
	}

	var out []Segment
	for i, p := range paragraphs(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		para := text[p.Start:p.End]
		spans, err := opts.Segmenter.Segment(ctx, para, opts.Language)
		if err == nil {
			err = checkSpans(spans, len(para))
		}
		if err != nil {
			return nil, &stage.CapabilityUnavailableError{Capability: "sentence segmenter", Err: err}
		}
		for _, sp := range spans {
			abs := Span{Start: p.Start + sp.Start, End: p.Start + sp.End}
			if seg, ok := newSegment(text, abs, i); ok {
				out = append(out, seg)
			}
		}
	}
	return out, nil
}

type simpleSplitter struct {
	abbreviations map[string]bool
	ordinals      bool
}

func (s *simpleSplitter) segments(text string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i, p := range paragraphs(text) {
			if !s.scan(text, p, i, yield) {
				return
			}
		}
	}
}

// scan yields the sentences of paragraph p. It returns false when yield asks
// to stop.
func (s *simpleSplitter) scan(text string, p Span, para int, yield func(Segment) bool) bool {
	emit := func(start, end int) bool {
		seg, ok := newSegment(text, Span{start, end}, para)
		return !ok || yield(seg)
	}

	start := p.Start
	for i := p.Start; i < p.End; {
		r, n := utf8.DecodeRuneInString(text[i:p.End])
		if !isTerminator(r) {
			i += n
			continue
		}

		end := i + n
		single := r == '.'
		for end < p.End {
			r2, n2 := utf8.DecodeRuneInString(text[end:p.End])
			if !isTerminator(r2) {
				break
			}
			single = false
			end += n2
		}
		for end < p.End {
			r2, n2 := utf8.DecodeRuneInString(text[end:p.End])
			if !isCloser(r2) {
				break
			}
			end += n2
		}

		if s.isBoundary(text, p, i, end, single) {
			if !emit(start, end) {
				return false
			}
			start = end
		}
		i = end
	}
	return emit(start, p.End)
}

// isBoundary decides whether the punctuation run text[at:end] ends a
// sentence. single is set for a lone period.
func (s *simpleSplitter) isBoundary(text string, p Span, at, end int, single bool) bool {
	if end >= p.End {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:p.End])
	if !unicode.IsSpace(next) {
		return false
	}

	j := end
	for j < p.End {
		r, n := utf8.DecodeRuneInString(text[j:p.End])
		if !unicode.IsSpace(r) {
			break
		}
		j += n
	}
	if j >= p.End {
		return true
	}
	if r, _ := utf8.DecodeRuneInString(text[j:p.End]); unicode.IsLower(r) {
		return false
	}

	return !single || !s.abbreviated(text[p.Start:at])
}

// abbreviated reports whether the period following before belongs to an
// abbreviation, an initial or an ordinal number.
func (s *simpleSplitter) abbreviated(before string) bool {
	k := len(before)
	for k > 0 {
		r, n := utf8.DecodeLastRuneInString(before[:k])
		if !unicode.IsLetter(r) && r != '.' {
			break
		}
		k -= n
	}
	token := strings.TrimLeft(before[k:], ".")

	if token == "" {
		if !s.ordinals {
			return false
		}
		r, _ := utf8.DecodeLastRuneInString(before)
		return unicode.IsDigit(r)
	}

	if s.abbreviations[strings.ToLower(token)+"."] {
		return true
	}

	word := token[strings.LastIndex(token, ".")+1:]
	if first, n := utf8.DecodeRuneInString(word); n == len(word) && unicode.IsUpper(first) {
		return true
	}
	return word != token && s.abbreviations[strings.ToLower(word)+"."]
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', '»', '›', ')', ']', '}':
		return true
	}
	return false
}
