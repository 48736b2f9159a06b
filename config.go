package textprep

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/textprep/hyphen"
	"github.com/tsawler/textprep/lexicon"
	"github.com/tsawler/textprep/normalize"
	"github.com/tsawler/textprep/ocr"
	"github.com/tsawler/textprep/sentence"
	"github.com/tsawler/textprep/stage"
)

// Config selects the pipeline stages and their options. The zero value
// disables every stage; start from DefaultConfig.
type Config struct {
	OCRCorrection       bool `yaml:"ocr_correction"`
	UnicodeNormalize    bool `yaml:"unicode_normalize"`
	QuoteNormalize      bool `yaml:"quote_normalize"`
	HandleBroken        bool `yaml:"handle_broken"`
	Lowercase           bool `yaml:"lowercase"`
	WhitespaceNormalize bool `yaml:"whitespace_normalize"`
	SplitSentences      bool `yaml:"split_sentences"`

	OCR        ocr.Options                 `yaml:"ocr"`
	Unicode    normalize.UnicodeOptions    `yaml:"unicode"`
	Quotes     normalize.QuoteOptions      `yaml:"quotes"`
	Broken     hyphen.Options              `yaml:"broken_words"`
	Case       normalize.CaseOptions       `yaml:"case"`
	Whitespace normalize.WhitespaceOptions `yaml:"whitespace"`
	Sentences  sentence.Options            `yaml:"sentences"`

	Resources Resources `yaml:"resources"`
}

// Resources names word lists that LoadResources reads into the broken-word
// options. Relative paths are resolved against the configuration file.
type Resources struct {
	PreserveTokensFile string `yaml:"preserve_tokens_file,omitempty"`
	CompoundsFile      string `yaml:"compounds_file,omitempty"`
	DictionaryFile     string `yaml:"dictionary_file,omitempty"`
}

// DefaultConfig enables every stage except OCR correction, each with its
// default options.
func DefaultConfig() Config {
	return Config{
		UnicodeNormalize:    true,
		QuoteNormalize:      true,
		HandleBroken:        true,
		Lowercase:           true,
		WhitespaceNormalize: true,
		SplitSentences:      true,

		OCR:        ocr.DefaultOptions(),
		Unicode:    normalize.DefaultUnicodeOptions(),
		Quotes:     normalize.DefaultQuoteOptions(),
		Broken:     hyphen.DefaultOptions(),
		Case:       normalize.DefaultCaseOptions(),
		Whitespace: normalize.DefaultWhitespaceOptions(),
		Sentences:  sentence.DefaultOptions(),
	}
}

// LoadConfig reads a YAML configuration file and its word list resources.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.LoadResources(filepath.Dir(path)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig, so keys that are absent keep
// their defaults. Unknown keys are an error. Resources are not loaded.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// YAML encodes the configuration. Injected lookups and capabilities are not
// part of the output.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadResources reads the word lists named in Resources. Preserve tokens are
// case-sensitive; compounds and dictionary entries match regardless of case.
func (c *Config) LoadResources(baseDir string) error {
	load := func(name string, fn func(io.Reader) (lexicon.Lookup, error)) (lexicon.Lookup, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(baseDir, name)
		}
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening word list: %w", err)
		}
		defer f.Close()
		l, err := fn(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return l, nil
	}
	caseSensitive := func(r io.Reader) (lexicon.Lookup, error) { return lexicon.LoadSet(r) }
	folded := func(r io.Reader) (lexicon.Lookup, error) { return lexicon.LoadFoldedSet(r) }

	var err error
	if f := c.Resources.PreserveTokensFile; f != "" {
		if c.Broken.PreserveTokens, err = load(f, caseSensitive); err != nil {
			return err
		}
	}
	if f := c.Resources.CompoundsFile; f != "" {
		if c.Broken.Compounds, err = load(f, folded); err != nil {
			return err
		}
	}
	if f := c.Resources.DictionaryFile; f != "" {
		if c.Broken.Dictionary, err = load(f, folded); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the options of every enabled stage, in pipeline order.
// The first failure is returned as a *stage.Error.
func (c Config) Validate() error {
	checks := []struct {
		id      stage.Stage
		enabled bool
		check   func() error
	}{
		{stage.OCR, c.OCRCorrection, c.OCR.Validate},
		{stage.Unicode, c.UnicodeNormalize, c.Unicode.Validate},
		{stage.BrokenWords, c.HandleBroken, c.Broken.Validate},
		{stage.Lowercase, c.Lowercase, c.Case.Validate},
		{stage.Split, c.SplitSentences, c.Sentences.Validate},
	}
	for _, ch := range checks {
		if !ch.enabled {
			continue
		}
		if err := ch.check(); err != nil {
			return stage.Wrap(ch.id, err)
		}
	}
	return nil
}

// clone deep-copies the slices and maps of the configuration.
func (c Config) clone() Config {
	out := c
	out.Unicode.AllowedCategories = slices.Clone(c.Unicode.AllowedCategories)
	out.Quotes.AccentMap = maps.Clone(c.Quotes.AccentMap)
	if c.Sentences.Abbreviations != nil {
		out.Sentences.Abbreviations = make(map[string][]string, len(c.Sentences.Abbreviations))
		for k, v := range c.Sentences.Abbreviations {
			out.Sentences.Abbreviations[k] = slices.Clone(v)
		}
	}
	return out
}
