package textprep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tsawler/textprep/hyphen"
	"github.com/tsawler/textprep/normalize"
	"github.com/tsawler/textprep/ocr"
	"github.com/tsawler/textprep/sentence"
	"github.com/tsawler/textprep/stage"
)

// Event reports the completion of one stage.
type Event struct {
	Stage    stage.Stage
	Skipped  bool // stage disabled
	Duration time.Duration
	Size     int // output bytes, or the sentence count for the split stage
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for per-stage debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers a progress callback invoked after every stage.
// It must be safe for concurrent use when the Pipeline is shared.
func WithObserver(fn func(Event)) Option {
	return func(p *Pipeline) {
		p.observer = fn
	}
}

// WithCorrector injects the OCR correction capability.
func WithCorrector(c ocr.Corrector) Option {
	return func(p *Pipeline) {
		p.corrector = c
	}
}

// WithSegmenter injects the segmenter used by the model split method. A
// segmenter already set in Config.Sentences takes precedence.
func WithSegmenter(s sentence.Segmenter) Option {
	return func(p *Pipeline) {
		p.segmenter = s
	}
}

// Pipeline runs the preprocessing stages in their fixed order:
// OCR correction, Unicode normalization, quote normalization, broken-word
// rejoining, lowercasing, whitespace normalization and sentence splitting.
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	cfg       Config
	corrector ocr.Corrector
	segmenter sentence.Segmenter
	logger    *slog.Logger
	observer  func(Event)
}

// Result is the output of a pipeline run.
type Result struct {
	// Sentences is the final sentence sequence.
	Sentences []string
	// Text is the cleaned text handed to the sentence splitter.
	Text     string
	Warnings []Warning
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:    cfg.clone(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.Sentences.Segmenter == nil {
		p.cfg.Sentences.Segmenter = p.segmenter
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Process runs text through a pipeline built from cfg and returns the
// sentences.
func Process(ctx context.Context, text string, cfg Config, opts ...Option) ([]string, error) {
	p, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, text)
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg.clone()
}

// Process runs text through the pipeline and returns the sentences.
func (p *Pipeline) Process(ctx context.Context, text string) ([]string, error) {
	res, err := p.Run(ctx, text)
	if err != nil {
		return nil, err
	}
	return res.Sentences, nil
}

// validate checks every enabled stage before any of them runs.
func (p *Pipeline) validate() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if p.cfg.OCRCorrection && p.corrector == nil {
		return stage.Wrap(stage.OCR, &stage.CapabilityUnavailableError{Capability: "ocr corrector"})
	}
	if p.cfg.SplitSentences && p.cfg.Sentences.Method == sentence.Model && p.cfg.Sentences.Segmenter == nil {
		return stage.Wrap(stage.Split, &stage.CapabilityUnavailableError{Capability: "sentence segmenter"})
	}
	return nil
}

type step struct {
	id      stage.Stage
	enabled bool
	run     func(ctx context.Context, text string, warn func(string, ...any)) (string, error)
}

func (p *Pipeline) steps() []step {
	cfg := p.cfg
	return []step{
		{stage.OCR, cfg.OCRCorrection, func(ctx context.Context, text string, _ func(string, ...any)) (string, error) {
			return p.corrector.Correct(ctx, text, cfg.OCR)
		}},
		{stage.Unicode, cfg.UnicodeNormalize, func(_ context.Context, text string, warn func(string, ...any)) (string, error) {
			removed, err := normalize.Unsupported(text, cfg.Unicode)
			if err != nil {
				return "", err
			}
			if len(removed) > 0 {
				warn("filtered %d distinct unsupported characters: %q", len(removed), string(removed))
			}
			return normalize.Unicode(text, cfg.Unicode)
		}},
		{stage.Quotes, cfg.QuoteNormalize, func(_ context.Context, text string, _ func(string, ...any)) (string, error) {
			return normalize.Quotes(text, cfg.Quotes), nil
		}},
		{stage.BrokenWords, cfg.HandleBroken, func(_ context.Context, text string, warn func(string, ...any)) (string, error) {
			decisions, err := hyphen.Analyze(text, cfg.Broken)
			if err != nil {
				return "", err
			}
			for _, d := range decisions {
				if !d.Joined && d.Reason != hyphen.NoContinuation && cfg.Broken.JoinHyphenated {
					warn("kept hyphen at offset %d in %q: %s", d.Offset, d.Fragment+"-"+d.Continuation, d.Reason)
				}
			}
			return hyphen.Rejoin(text, cfg.Broken)
		}},
		{stage.Lowercase, cfg.Lowercase, func(_ context.Context, text string, _ func(string, ...any)) (string, error) {
			return normalize.Lower(text, cfg.Case)
		}},
		{stage.Whitespace, cfg.WhitespaceNormalize, func(_ context.Context, text string, _ func(string, ...any)) (string, error) {
			return normalize.Whitespace(text, cfg.Whitespace), nil
		}},
	}
}

// Run runs text through the pipeline. Cancellation is checked between
// stages. Any stage failure is returned as a *stage.Error.
//
// Sentence boundaries are found on the text as it was before lowercasing,
// since the splitter relies on capitalization; the sentences are lowercased
// afterwards. Lowercasing changes neither whitespace nor boundaries, so the
// result is the same as splitting the lowercased text in stage order.
func (p *Pipeline) Run(ctx context.Context, text string) (Result, error) {
	var res Result
	cased, tracking := "", false
	for _, s := range p.steps() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if !s.enabled {
			p.observe(Event{Stage: s.id, Skipped: true, Size: len(text)})
			continue
		}
		if s.id == stage.Lowercase && p.cfg.SplitSentences {
			cased, tracking = text, true
		}

		warn := func(format string, args ...any) {
			res.Warnings = append(res.Warnings, Warning{Stage: s.id, Message: fmt.Sprintf(format, args...)})
		}
		start := time.Now()
		out, err := s.run(ctx, text, warn)
		if err != nil {
			return Result{}, stage.Wrap(s.id, err)
		}
		if tracking && s.id != stage.Lowercase {
			if cased, err = s.run(ctx, cased, func(string, ...any) {}); err != nil {
				return Result{}, stage.Wrap(s.id, err)
			}
		}
		p.finish(s.id, start, len(text), len(out))
		text = out
	}
	res.Text = text

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !p.cfg.SplitSentences {
		p.observe(Event{Stage: stage.Split, Skipped: true, Size: len(text)})
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			res.Sentences = []string{trimmed}
		}
		return res, nil
	}

	start := time.Now()
	source := text
	if tracking {
		source = cased
	}
	seq, err := sentence.Split(ctx, source, p.cfg.Sentences)
	if err != nil {
		return Result{}, stage.Wrap(stage.Split, err)
	}
	res.Sentences = slices.Collect(seq)
	if tracking {
		if err := p.lowerSentences(res.Sentences); err != nil {
			return Result{}, stage.Wrap(stage.Lowercase, err)
		}
	}
	p.finish(stage.Split, start, len(text), len(res.Sentences))
	return res, nil
}

// lowerSentences lowercases sentences in place, leaving paragraph markers
// alone.
func (p *Pipeline) lowerSentences(sentences []string) error {
	marker := p.cfg.Sentences.ParagraphMarker
	if marker == "" {
		marker = sentence.DefaultParagraphMarker
	}
	for i, s := range sentences {
		if p.cfg.Sentences.KeepLineBreaks && s == marker {
			continue
		}
		lowered, err := normalize.Lower(s, p.cfg.Case)
		if err != nil {
			return err
		}
		sentences[i] = lowered
	}
	return nil
}

func (p *Pipeline) finish(id stage.Stage, start time.Time, in, out int) {
	elapsed := time.Since(start)
	p.logger.Debug("stage complete", "stage", id.String(), "duration", elapsed, "in", in, "out", out)
	p.observe(Event{Stage: id, Duration: elapsed, Size: out})
}

func (p *Pipeline) observe(e Event) {
	if p.observer != nil {
		p.observer(e)
	}
}
