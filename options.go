package textprep

import (
	"log/slog"
	"slices"

	"github.com/tsawler/textprep/lexicon"
	"github.com/tsawler/textprep/ocr"
	"github.com/tsawler/textprep/sentence"
)

// processOptions holds the configuration accumulated by a Processor chain.
type processOptions struct {
	config Config

	// Capabilities
	corrector ocr.Corrector
	segmenter sentence.Segmenter

	// Diagnostics
	logger   *slog.Logger
	observer func(Event)

	// Extra preserve tokens added with Processor.PreserveTokens
	preserve []string

	// Tesseract languages for image sources
	ocrLanguages []string
}

// defaultOptions returns the default processing options.
func defaultOptions() processOptions {
	return processOptions{
		config: DefaultConfig(),
	}
}

// clone creates a deep copy of processOptions.
func (o processOptions) clone() processOptions {
	newOpts := o
	newOpts.config = o.config.clone()
	newOpts.preserve = slices.Clone(o.preserve)
	newOpts.ocrLanguages = slices.Clone(o.ocrLanguages)
	return newOpts
}

// pipeline builds the Pipeline described by the options.
func (o processOptions) pipeline() (*Pipeline, error) {
	cfg := o.config.clone()
	if len(o.preserve) > 0 {
		extra := lexicon.NewSet(o.preserve...)
		if lexicon.IsEmpty(cfg.Broken.PreserveTokens) {
			cfg.Broken.PreserveTokens = extra
		} else {
			base := cfg.Broken.PreserveTokens
			cfg.Broken.PreserveTokens = lexicon.Func(func(w string) bool {
				return extra.Contains(w) || base.Contains(w)
			})
		}
	}

	opts := []Option{
		WithLogger(o.logger),
		WithObserver(o.observer),
	}
	if o.corrector != nil {
		opts = append(opts, WithCorrector(o.corrector))
	}
	if o.segmenter != nil {
		opts = append(opts, WithSegmenter(o.segmenter))
	}
	return New(cfg, opts...)
}
