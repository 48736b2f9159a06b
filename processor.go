package textprep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/textprep/format"
	"github.com/tsawler/textprep/hocr"
	"github.com/tsawler/textprep/ocr"
	"github.com/tsawler/textprep/sentence"
	"github.com/tsawler/textprep/stage"
)

// lowConfidence is the mean word confidence below which hOCR input is
// reported as a warning.
const lowConfidence = 60

// Processor provides a fluent interface for preprocessing a document.
// Each configuration method returns a new Processor instance, making it
// safe for concurrent use and allowing method chaining.
type Processor struct {
	// Source
	text     string
	filename string
	reader   io.Reader
	loaded   bool

	// Configuration
	options processOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Processor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (p *Processor) clone() *Processor {
	return &Processor{
		text:     p.text,
		filename: p.filename,
		reader:   p.reader,
		loaded:   p.loaded,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// load reads the source document. Image files are recognized with
// Tesseract, which needs the "ocr" build tag.
func (p *Processor) load(ctx context.Context) (string, []Warning, error) {
	if p.loaded {
		return p.text, nil, nil
	}
	if p.reader != nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return "", nil, fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil, nil
	}
	if p.filename == "" {
		return "", nil, fmt.Errorf("no input specified")
	}

	f, err := format.DetectFile(p.filename)
	if err != nil {
		return "", nil, err
	}
	switch f {
	case format.Text:
		data, err := os.ReadFile(p.filename)
		if err != nil {
			return "", nil, fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil, nil

	case format.HOCR:
		doc, err := hocr.Open(p.filename)
		if err != nil {
			return "", nil, err
		}
		var warnings []Warning
		if mean, ok := doc.MeanConfidence(); ok && mean < lowConfidence {
			warnings = append(warnings, Warning{
				Stage:   stage.OCR,
				Message: fmt.Sprintf("low mean word confidence %.1f in %s", mean, p.filename),
			})
		}
		return doc.Text(), warnings, nil

	case format.Image:
		text, err := p.recognize(ctx)
		return text, nil, err

	default:
		return "", nil, fmt.Errorf("unsupported input format: %s", p.filename)
	}
}

func (p *Processor) recognize(ctx context.Context) (string, error) {
	client, err := ocr.New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if langs := p.options.ocrLanguages; len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}

	f, err := os.Open(p.filename)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return client.Recognize(ctx, f)
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// WithConfig replaces the whole configuration.
//
// Example:
//
//	cfg, err := textprep.LoadConfig("textprep.yaml")
//	sentences, _, err := textprep.FromFile("scan.txt").WithConfig(cfg).Sentences(ctx)
func (p *Processor) WithConfig(cfg Config) *Processor {
	newProc := p.clone()
	newProc.options.config = cfg.clone()
	return newProc
}

// Corrector injects an OCR corrector and enables the OCR correction stage.
//
// Example:
//
//	sentences, _, err := textprep.FromText(raw).Corrector(ocr.RuleCorrector{}).Sentences(ctx)
func (p *Processor) Corrector(c ocr.Corrector) *Processor {
	newProc := p.clone()
	newProc.options.corrector = c
	newProc.options.config.OCRCorrection = true
	return newProc
}

// Segmenter injects an external segmenter and selects the model split
// method.
func (p *Processor) Segmenter(s sentence.Segmenter) *Processor {
	newProc := p.clone()
	newProc.options.segmenter = s
	newProc.options.config.Sentences.Method = sentence.Model
	return newProc
}

// Logger sets the logger for per-stage debug output.
func (p *Processor) Logger(l *slog.Logger) *Processor {
	newProc := p.clone()
	newProc.options.logger = l
	return newProc
}

// Observer registers a progress callback invoked after every stage.
func (p *Processor) Observer(fn func(Event)) *Processor {
	newProc := p.clone()
	newProc.options.observer = fn
	return newProc
}

// Language sets the language used for lowercasing and sentence splitting.
//
// Example:
//
//	sentences, _, err := textprep.FromText(s).Language("en").Sentences(ctx)
func (p *Processor) Language(lang string) *Processor {
	newProc := p.clone()
	newProc.options.config.Case.Language = lang
	newProc.options.config.Sentences.Language = lang
	return newProc
}

// OCRLanguages sets the Tesseract languages used for image input
// ("ita", "eng", ...).
func (p *Processor) OCRLanguages(langs ...string) *Processor {
	newProc := p.clone()
	newProc.options.ocrLanguages = append(newProc.options.ocrLanguages, langs...)
	return newProc
}

// KeepLineBreaks emits a paragraph marker between the sentences of
// consecutive paragraphs. Blank lines are kept through whitespace
// normalization so that paragraphs survive until splitting.
func (p *Processor) KeepLineBreaks() *Processor {
	newProc := p.clone()
	newProc.options.config.Sentences.KeepLineBreaks = true
	newProc.options.config.Whitespace.PreserveParagraphs = true
	return newProc
}

// PreserveTokens adds fragments that must never be joined with the next
// line. Multiple calls are cumulative.
//
// Example:
//
//	sentences, _, err := textprep.FromText(s).PreserveTokens("ben", "mal").Sentences(ctx)
func (p *Processor) PreserveTokens(tokens ...string) *Processor {
	newProc := p.clone()
	newProc.options.preserve = append(newProc.options.preserve, tokens...)
	return newProc
}

// MaxLineGap sets how many blank lines may separate a hyphenated fragment
// from its continuation.
func (p *Processor) MaxLineGap(n int) *Processor {
	newProc := p.clone()
	newProc.options.config.Broken.MaxLineGap = n
	return newProc
}

// ASCIIFallback transliterates accented letters to ASCII.
func (p *Processor) ASCIIFallback() *Processor {
	newProc := p.clone()
	newProc.options.config.Quotes.ASCIIFallback = true
	return newProc
}

// KeepAcronyms lower-cases everything except acronyms.
func (p *Processor) KeepAcronyms() *Processor {
	newProc := p.clone()
	newProc.options.config.Case.Aggressive = false
	return newProc
}

// SkipUnicode disables Unicode normalization.
func (p *Processor) SkipUnicode() *Processor {
	newProc := p.clone()
	newProc.options.config.UnicodeNormalize = false
	return newProc
}

// SkipQuotes disables quote and apostrophe normalization.
func (p *Processor) SkipQuotes() *Processor {
	newProc := p.clone()
	newProc.options.config.QuoteNormalize = false
	return newProc
}

// SkipBrokenWords disables broken-word rejoining.
func (p *Processor) SkipBrokenWords() *Processor {
	newProc := p.clone()
	newProc.options.config.HandleBroken = false
	return newProc
}

// SkipLowercase keeps the original case.
//
// Example:
//
//	sentences, _, err := textprep.FromText(s).SkipLowercase().Sentences(ctx)
func (p *Processor) SkipLowercase() *Processor {
	newProc := p.clone()
	newProc.options.config.Lowercase = false
	return newProc
}

// SkipWhitespace disables whitespace normalization.
func (p *Processor) SkipWhitespace() *Processor {
	newProc := p.clone()
	newProc.options.config.WhitespaceNormalize = false
	return newProc
}

// SkipSplit disables sentence splitting; the cleaned text is returned as a
// single sentence.
func (p *Processor) SkipSplit() *Processor {
	newProc := p.clone()
	newProc.options.config.SplitSentences = false
	return newProc
}

// SkipOCR disables OCR correction even when a corrector is set.
func (p *Processor) SkipOCR() *Processor {
	newProc := p.clone()
	newProc.options.config.OCRCorrection = false
	return newProc
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Sentences runs the pipeline and returns the sentence sequence.
// Warnings indicate non-fatal issues, such as hyphens left in place or
// characters removed by Unicode filtering.
//
// Example:
//
//	sentences, warnings, err := textprep.FromText(raw).Sentences(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", textprep.FormatWarnings(warnings))
//	}
func (p *Processor) Sentences(ctx context.Context) ([]string, []Warning, error) {
	res, err := p.run(ctx)
	if err != nil {
		return nil, res.Warnings, err
	}
	return res.Sentences, res.Warnings, nil
}

// Text runs every stage except splitting and returns the cleaned text.
func (p *Processor) Text(ctx context.Context) (string, []Warning, error) {
	res, err := p.SkipSplit().run(ctx)
	if err != nil {
		return "", res.Warnings, err
	}
	return res.Text, res.Warnings, nil
}

func (p *Processor) run(ctx context.Context) (Result, error) {
	if p.err != nil {
		return Result{}, p.err
	}

	pipe, err := p.options.pipeline()
	if err != nil {
		return Result{}, err
	}

	text, loadWarnings, err := p.load(ctx)
	if err != nil {
		return Result{Warnings: loadWarnings}, err
	}

	res, err := pipe.Run(ctx, text)
	res.Warnings = append(loadWarnings, res.Warnings...)
	return res, err
}
