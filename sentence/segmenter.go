package sentence

import (
	"context"
	"errors"
	"fmt"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Segmenter is an external sentence segmentation capability used by the
// model method. Segment returns sentence spans within text, in order and
// without overlaps. It is called once per paragraph.
type Segmenter interface {
	Segment(ctx context.Context, text, language string) ([]Span, error)
}

// SegmenterFunc adapts a function to [Segmenter].
type SegmenterFunc func(ctx context.Context, text, language string) ([]Span, error)

// Segment calls f.
func (f SegmenterFunc) Segment(ctx context.Context, text, language string) ([]Span, error) {
	return f(ctx, text, language)
}

var errNoSegmenter = errors.New("no segmenter configured")

// checkSpans verifies that spans lie within a text of length n, in order and
// without overlaps.
func checkSpans(spans []Span, n int) error {
	prev := 0
	for i, sp := range spans {
		switch {
		case sp.Start < 0 || sp.End > n || sp.Start > sp.End:
			return fmt.Errorf("span %d [%d,%d) outside text of %d bytes", i, sp.Start, sp.End, n)
		case sp.Start < prev:
			return fmt.Errorf("span %d [%d,%d) overlaps or precedes previous span ending at %d", i, sp.Start, sp.End, prev)
		}
		prev = sp.End
	}
	return nil
}
