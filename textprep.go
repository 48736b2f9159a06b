// Package textprep turns noisy OCR-derived text into a clean, ordered
// sequence of sentences.
//
// The pipeline runs up to seven stages in a fixed order: OCR correction,
// Unicode normalization, quote and accent normalization, broken-word
// rejoining, lowercasing, whitespace normalization and sentence splitting.
// Every stage can be disabled and configured independently; all options are
// validated before any stage runs.
//
// Basic usage:
//
//	sentences, warnings, err := textprep.FromText(raw).Sentences(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", textprep.FormatWarnings(warnings))
//	}
//
// With options:
//
//	sentences, _, err := textprep.FromFile("scan.hocr").
//	    Language("it").
//	    PreserveTokens("ben").
//	    SkipLowercase().
//	    Sentences(ctx)
//
// For batch use, build a Pipeline once and share it:
//
//	p, err := textprep.New(cfg, textprep.WithLogger(logger))
//	sentences, err := p.Process(ctx, raw)
//
// The stage packages (normalize, hyphen, sentence, ocr) can also be used on
// their own.
package textprep

import "io"

// FromText returns a Processor for text already in memory.
//
// Example:
//
//	sentences, _, err := textprep.FromText("Il gatto dorme. Il cane corre!").Sentences(ctx)
func FromText(text string) *Processor {
	return &Processor{
		text:    text,
		loaded:  true,
		options: defaultOptions(),
	}
}

// FromFile returns a Processor for a file. Plain text and hOCR are read
// directly; images are recognized with Tesseract when built with the "ocr"
// tag. The file is read by the terminal operation.
//
// Example:
//
//	sentences, warnings, err := textprep.FromFile("page-001.hocr").Sentences(ctx)
func FromFile(filename string) *Processor {
	return &Processor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Processor that reads plain text from r. The reader is
// consumed by the first terminal operation.
func FromReader(r io.Reader) *Processor {
	return &Processor{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	cfg := textprep.Must(textprep.LoadConfig("textprep.yaml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustSentences is a helper that wraps a call to Sentences() or Text() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	sentences := textprep.MustSentences(textprep.FromText(raw).Sentences(ctx))
func MustSentences[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
