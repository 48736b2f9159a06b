package ocr

import (
	"context"
	"strings"
	"unicode"

	"github.com/tsawler/textprep/stage"
)

// Corrector repairs OCR errors in text. Implementations must keep line
// breaks in place.
type Corrector interface {
	Correct(ctx context.Context, text string, opts Options) (string, error)
}

// CorrectorFunc adapts a function to [Corrector].
type CorrectorFunc func(ctx context.Context, text string, opts Options) (string, error)

// Correct calls f.
func (f CorrectorFunc) Correct(ctx context.Context, text string, opts Options) (string, error) {
	return f(ctx, text, opts)
}

var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "st",
	"ﬆ", "st",
	"ſ", "s",
)

// lookalikes are characters misread for lower-case letters.
var lookalikes = map[rune]rune{
	'0': 'o',
	'1': 'l',
	'|': 'l',
}

// RuleCorrector corrects OCR confusions that need no model: typographic
// ligatures, the long s, and 0, 1 or | standing between two lower-case
// letters ("c0sa", "fi1o").
type RuleCorrector struct{}

// Correct applies the rules. Only the context is consulted.
func (RuleCorrector) Correct(ctx context.Context, text string, _ Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text = ligatures.Replace(text)

	runes := []rune(text)
	changed := false
	for i := 1; i+1 < len(runes); i++ {
		fix, ok := lookalikes[runes[i]]
		if !ok {
			continue
		}
		if unicode.IsLower(runes[i-1]) && unicode.IsLower(runes[i+1]) {
			runes[i] = fix
			changed = true
		}
	}
	if !changed {
		return text, nil
	}
	return string(runes), nil
}

// Switch dispatches to Remote when Options.UseRemote is set and to Local
// otherwise.
type Switch struct {
	Local  Corrector
	Remote Corrector
}

// Correct validates opts and runs the selected corrector.
func (s Switch) Correct(ctx context.Context, text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	c, name := s.Local, "local ocr corrector"
	if opts.UseRemote {
		c, name = s.Remote, "remote ocr corrector"
	}
	if c == nil {
		return "", &stage.CapabilityUnavailableError{Capability: name}
	}
	return c.Correct(ctx, text, opts)
}
