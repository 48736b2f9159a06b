package stage

// Stage identifies a pipeline step.
type Stage int

const (
	// OCR runs the injected OCR corrector.
	OCR Stage = iota
	// Unicode canonicalizes code points and filters unsupported characters.
	Unicode
	// Quotes maps typographic quotes, apostrophes and accents.
	Quotes
	// BrokenWords rejoins words hyphenated across line breaks.
	BrokenWords
	// Lowercase folds case.
	Lowercase
	// Whitespace collapses spaces and newlines.
	Whitespace
	// Split segments text into sentences. It is always the last stage.
	Split
)

// String returns the option-style name of the stage.
func (s Stage) String() string {
	switch s {
	case OCR:
		return "ocr_correction"
	case Unicode:
		return "unicode_normalize"
	case Quotes:
		return "quote_normalize"
	case BrokenWords:
		return "handle_broken"
	case Lowercase:
		return "lowercase"
	case Whitespace:
		return "whitespace_normalize"
	case Split:
		return "split_sentences"
	default:
		return "unknown"
	}
}

// Order returns the stages in execution order.
func Order() []Stage {
	return []Stage{OCR, Unicode, Quotes, BrokenWords, Lowercase, Whitespace, Split}
}
