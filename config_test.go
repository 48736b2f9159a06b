package textprep

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textprep/normalize"
	"github.com/tsawler/textprep/sentence"
	"github.com/tsawler/textprep/stage"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.OCRCorrection)
	assert.True(t, cfg.UnicodeNormalize)
	assert.True(t, cfg.QuoteNormalize)
	assert.True(t, cfg.HandleBroken)
	assert.True(t, cfg.Lowercase)
	assert.True(t, cfg.WhitespaceNormalize)
	assert.True(t, cfg.SplitSentences)

	assert.Equal(t, normalize.NFC, cfg.Unicode.Form)
	assert.Equal(t, sentence.Simple, cfg.Sentences.Method)
	assert.Equal(t, "it", cfg.Sentences.Language)
	assert.Equal(t, "it", cfg.Case.Language)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "empty keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "partial override",
			yaml: "lowercase: false\nsentences:\n  language: en\n",
			check: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.Lowercase)
				assert.Equal(t, "en", cfg.Sentences.Language)
				assert.Equal(t, sentence.Simple, cfg.Sentences.Method)
				assert.Equal(t, sentence.DefaultParagraphMarker, cfg.Sentences.ParagraphMarker)
				assert.True(t, cfg.SplitSentences)
			},
		},
		{
			name: "nested options",
			yaml: `ocr_correction: true
ocr:
  device: cuda
  batch_size: 8
  timeout: 5s
unicode:
  form: NFKC
  allowed_categories: [L, N]
  replacement: " "
quotes:
  ascii_fallback: true
  accent_map:
    "è": "e'"
broken_words:
  max_line_gap: 2
sentences:
  abbreviations:
    it: [ecc]
`,
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.OCRCorrection)
				assert.Equal(t, "cuda", cfg.OCR.Device)
				assert.Equal(t, 8, cfg.OCR.BatchSize)
				assert.Equal(t, 5*time.Second, cfg.OCR.Timeout)
				assert.Equal(t, 2, cfg.OCR.MaxRetries)
				assert.Equal(t, normalize.NFKC, cfg.Unicode.Form)
				assert.Equal(t, []string{"L", "N"}, cfg.Unicode.AllowedCategories)
				assert.Equal(t, " ", cfg.Unicode.Replacement)
				assert.True(t, cfg.Quotes.ASCIIFallback)
				assert.True(t, cfg.Quotes.MapSmartQuotes)
				assert.Equal(t, map[string]string{"è": "e'"}, cfg.Quotes.AccentMap)
				assert.Equal(t, 2, cfg.Broken.MaxLineGap)
				assert.True(t, cfg.Broken.JoinHyphenated)
				assert.Equal(t, []string{"ecc"}, cfg.Sentences.Abbreviations["it"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "lowercase: true\nsplit: true\n"},
		{"unknown nested key", "unicode:\n  normal_form: NFC\n"},
		{"wrong type", "handle_broken: often\n"},
		{"bad duration", "ocr:\n  timeout: soon\n"},
		{"injected lookup", "broken_words:\n  preserve_tokens: [ben]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_InvalidValuesFailValidation(t *testing.T) {
	cfg, err := ParseConfig([]byte("unicode:\n  form: NFX\n"))
	require.NoError(t, err)

	err = cfg.Validate()
	var stageErr *stage.Error
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, stage.Unicode, stageErr.Stage)

	cfg.UnicodeNormalize = false
	assert.NoError(t, cfg.Validate())
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCRCorrection = true
	cfg.Unicode.AllowedCategories = []string{"L", "N", "P", "Z", "S"}
	cfg.Quotes.AccentMap = map[string]string{"ł": "l"}
	cfg.Sentences.KeepLineBreaks = true
	cfg.Resources.DictionaryFile = "dict.txt"

	for _, c := range []Config{DefaultConfig(), cfg} {
		data, err := c.YAML()
		require.NoError(t, err)

		back, err := ParseConfig(data)
		require.NoError(t, err, "encoded:\n%s", data)
		assert.Equal(t, c, back)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("preserve.txt", "# tokens kept as written\nben\n\nmal\n")
	write("compounds.txt", "socio-economico\n")
	write("dict.txt", "Interessante\n")
	write("textprep.yaml", `whitespace:
  collapse_newlines: true
resources:
  preserve_tokens_file: preserve.txt
  compounds_file: compounds.txt
  dictionary_file: dict.txt
`)

	cfg, err := LoadConfig(filepath.Join(dir, "textprep.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Whitespace.CollapseNewlines)
	require.NotNil(t, cfg.Broken.PreserveTokens)
	assert.True(t, cfg.Broken.PreserveTokens.Contains("ben"))
	assert.False(t, cfg.Broken.PreserveTokens.Contains("Ben"))
	assert.True(t, cfg.Broken.Compounds.Contains("Socio-Economico"))
	assert.True(t, cfg.Broken.Dictionary.Contains("interessante"))
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resources:\n  dictionary_file: nope.txt\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "opening word list")

	require.NoError(t, os.WriteFile(path, []byte("nonsense: 1\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unicode.AllowedCategories = []string{"L"}
	cfg.Sentences.Abbreviations = map[string][]string{"it": {"ecc"}}

	c := cfg.clone()
	c.Unicode.AllowedCategories[0] = "N"
	c.Sentences.Abbreviations["it"][0] = "etc"

	assert.Equal(t, "L", cfg.Unicode.AllowedCategories[0])
	assert.Equal(t, "ecc", cfg.Sentences.Abbreviations["it"][0])
}
