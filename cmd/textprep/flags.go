package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tsawler/textprep"
	"github.com/tsawler/textprep/sentence"
)

// stageFlags maps each --no-<stage> flag to the switch it clears.
var stageFlags = []struct {
	name  string
	usage string
	field func(*textprep.Config) *bool
}{
	{"ocr", "disable OCR correction", func(c *textprep.Config) *bool { return &c.OCRCorrection }},
	{"unicode", "disable Unicode normalization", func(c *textprep.Config) *bool { return &c.UnicodeNormalize }},
	{"quotes", "disable quote normalization", func(c *textprep.Config) *bool { return &c.QuoteNormalize }},
	{"broken", "disable broken-word rejoining", func(c *textprep.Config) *bool { return &c.HandleBroken }},
	{"lowercase", "keep the original case", func(c *textprep.Config) *bool { return &c.Lowercase }},
	{"whitespace", "disable whitespace normalization", func(c *textprep.Config) *bool { return &c.WhitespaceNormalize }},
	{"split", "emit the cleaned text as a single sentence", func(c *textprep.Config) *bool { return &c.SplitSentences }},
}

func addPipelineFlags(fs *pflag.FlagSet) {
	fs.StringP("language", "l", "", "language for lowercasing and splitting (BCP 47, e.g. it, en)")
	fs.String("method", "", "sentence splitting method (simple, model)")
	fs.Bool("keep-line-breaks", false, "emit a paragraph marker between paragraphs")
	fs.Int("max-line-gap", 0, "blank lines allowed between a hyphenated fragment and its continuation")
	fs.Bool("ascii", false, "transliterate accented letters to ASCII")
	fs.Bool("ocr", false, "enable OCR correction")
	for _, s := range stageFlags {
		fs.Bool("no-"+s.name, false, s.usage)
	}
}

// effectiveConfig loads --config, or the defaults, and applies the flags the
// user set explicitly.
func effectiveConfig(cmd *cobra.Command) (textprep.Config, error) {
	fs := cmd.Flags()
	path, err := fs.GetString("config")
	if err != nil {
		return textprep.Config{}, err
	}

	cfg := textprep.DefaultConfig()
	if path != "" {
		if cfg, err = textprep.LoadConfig(path); err != nil {
			return textprep.Config{}, err
		}
	}
	if err := applyPipelineFlags(&cfg, fs); err != nil {
		return textprep.Config{}, err
	}
	return cfg, nil
}

// applyPipelineFlags overrides cfg with the flags marked as changed, so
// values from the configuration file survive unless a flag is given.
func applyPipelineFlags(cfg *textprep.Config, fs *pflag.FlagSet) error {
	if fs.Changed("language") {
		lang, err := fs.GetString("language")
		if err != nil {
			return err
		}
		cfg.Case.Language = lang
		cfg.Sentences.Language = lang
	}
	if fs.Changed("method") {
		method, err := fs.GetString("method")
		if err != nil {
			return err
		}
		cfg.Sentences.Method = sentence.Method(method)
	}
	if fs.Changed("keep-line-breaks") {
		keep, err := fs.GetBool("keep-line-breaks")
		if err != nil {
			return err
		}
		cfg.Sentences.KeepLineBreaks = keep
		cfg.Whitespace.PreserveParagraphs = keep
	}
	if fs.Changed("max-line-gap") {
		gap, err := fs.GetInt("max-line-gap")
		if err != nil {
			return err
		}
		cfg.Broken.MaxLineGap = gap
	}
	if fs.Changed("ascii") {
		ascii, err := fs.GetBool("ascii")
		if err != nil {
			return err
		}
		cfg.Quotes.ASCIIFallback = ascii
	}
	if fs.Changed("ocr") {
		enable, err := fs.GetBool("ocr")
		if err != nil {
			return err
		}
		cfg.OCRCorrection = enable
	}
	for _, s := range stageFlags {
		name := "no-" + s.name
		if !fs.Changed(name) {
			continue
		}
		disable, err := fs.GetBool(name)
		if err != nil {
			return err
		}
		if disable {
			*s.field(cfg) = false
		}
	}
	return nil
}
