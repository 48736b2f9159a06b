package textprep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/textprep/lexicon"
	"github.com/tsawler/textprep/ocr"
	"github.com/tsawler/textprep/sentence"
	"github.com/tsawler/textprep/stage"
)

const lowConfidencePage = `<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><meta name="ocr-system" content="tesseract 5.3.0"/></head>
<body>
<div class="ocr_page" id="page_1" title="bbox 0 0 1000 1400">
<p class="ocr_par" id="par_1_1">
<span class="ocr_line" id="line_1_1" title="bbox 10 10 900 40">
<span class="ocrx_word" title="bbox 10 10 40 40; x_wconf 45">Il</span>
<span class="ocrx_word" title="bbox 50 10 140 40; x_wconf 50">libro</span>
<span class="ocrx_word" title="bbox 150 10 170 40; x_wconf 40">è</span>
<span class="ocrx_word" title="bbox 180 10 320 40; x_wconf 55">interes-</span>
</span>
<span class="ocr_line" id="line_1_2" title="bbox 10 50 900 80">
<span class="ocrx_word" title="bbox 10 50 120 80; x_wconf 35">sante.</span>
<span class="ocrx_word" title="bbox 130 50 200 80; x_wconf 60">Fine.</span>
</span>
</p>
</div>
</body>
</html>
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFromText(t *testing.T) {
	got, warnings, err := FromText("Il gatto dorme. Il cane corre!").Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	want := []string{"il gatto dorme.", "il cane corre!"}
	if !equalStrings(got, want) {
		t.Errorf("Sentences() = %q, want %q", got, want)
	}
}

func TestProcessorChain(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		proc *Processor
		want []string
	}{
		{
			name: "skip lowercase",
			proc: FromText("Il Gatto. Il Cane.").SkipLowercase(),
			want: []string{"Il Gatto.", "Il Cane."},
		},
		{
			name: "english abbreviations",
			proc: FromText("Dr. Smith arrived. He left.").Language("en"),
			want: []string{"dr. smith arrived.", "he left."},
		},
		{
			name: "preserve tokens",
			proc: FromText("Era ben-\nvoluto da tutti.").PreserveTokens("ben"),
			want: []string{"era ben- voluto da tutti."},
		},
		{
			name: "keep line breaks",
			proc: FromText("Uno.\n\n\n\nDue.").KeepLineBreaks(),
			want: []string{"uno.", "¶", "due."},
		},
		{
			name: "ascii fallback",
			proc: FromText("Così è.").ASCIIFallback(),
			want: []string{"cosi e."},
		},
		{
			name: "keep acronyms",
			proc: FromText("La NATO e l'ONU.").KeepAcronyms(),
			want: []string{"la NATO e l'ONU."},
		},
		{
			name: "skip broken words",
			proc: FromText("inte-\nressante").SkipBrokenWords().SkipWhitespace(),
			want: []string{"inte- ressante"},
		},
		{
			name: "max line gap",
			proc: FromText("inte-\n\nressante").MaxLineGap(1).SkipSplit(),
			want: []string{"interessante"},
		},
		{
			name: "skip split",
			proc: FromText("Uno. Due.").SkipSplit(),
			want: []string{"uno. due."},
		},
		{
			name: "corrector",
			proc: FromText("La c0sa ﬁnale.").Corrector(ocr.RuleCorrector{}),
			want: []string{"la cosa finale."},
		},
		{
			name: "corrector skipped",
			proc: FromText("La c0sa.").Corrector(ocr.RuleCorrector{}).SkipOCR(),
			want: []string{"la c0sa."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := tt.proc.Sentences(ctx)
			if err != nil {
				t.Fatalf("Sentences() error = %v", err)
			}
			if !equalStrings(got, tt.want) {
				t.Errorf("Sentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessorImmutable(t *testing.T) {
	ctx := context.Background()
	base := FromText("Il Gatto.")
	kept := base.SkipLowercase()

	got := MustSentences(base.Sentences(ctx))
	if !equalStrings(got, []string{"il gatto."}) {
		t.Errorf("base Sentences() = %q, chained options leaked into the base", got)
	}
	got = MustSentences(kept.Sentences(ctx))
	if !equalStrings(got, []string{"Il Gatto."}) {
		t.Errorf("chained Sentences() = %q", got)
	}

	a := base.PreserveTokens("ben")
	b := a.PreserveTokens("mal")
	if len(a.options.preserve) != 1 || len(b.options.preserve) != 2 {
		t.Errorf("preserve tokens shared between instances: %v %v", a.options.preserve, b.options.preserve)
	}
}

func TestProcessorPreserveTokensCombine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplitSentences = false
	cfg.Lowercase = false
	cfg.Broken.PreserveTokens = lexicon.NewSet("mal")

	withConfig := FromText("ben-\nvoluto e mal-\nvoluto").WithConfig(cfg)

	got, _, err := withConfig.Sentences(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := "benvoluto e mal-\nvoluto"; len(got) != 1 || got[0] != want {
		t.Errorf("config only: Sentences() = %q, want %q", got, want)
	}

	got, _, err = withConfig.PreserveTokens("ben").Sentences(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := "ben-\nvoluto e mal-\nvoluto"; len(got) != 1 || got[0] != want {
		t.Errorf("combined: Sentences() = %q, want %q", got, want)
	}
}

func TestProcessorSegmenter(t *testing.T) {
	seg := sentence.SegmenterFunc(func(_ context.Context, text, _ string) ([]sentence.Span, error) {
		var spans []sentence.Span
		start := 0
		for i, r := range text {
			if r == ';' {
				spans = append(spans, sentence.Span{Start: start, End: i + 1})
				start = i + 1
			}
		}
		return append(spans, sentence.Span{Start: start, End: len(text)}), nil
	})

	got, _, err := FromText("Uno; due; tre").Segmenter(seg).Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if want := []string{"uno;", "due;", "tre"}; !equalStrings(got, want) {
		t.Errorf("Sentences() = %q, want %q", got, want)
	}
}

func TestProcessorText(t *testing.T) {
	got, _, err := FromText("  L’uomo   è  inte-\nressante.  ").Text(context.Background())
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "l'uomo è interessante."; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestProcessorValidationError(t *testing.T) {
	_, _, err := FromText("x").Language("not a tag").Sentences(context.Background())
	var stageErr *stage.Error
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected *stage.Error, got %v", err)
	}
	if stageErr.Stage != stage.Lowercase {
		t.Errorf("Stage = %v, want %v", stageErr.Stage, stage.Lowercase)
	}
}

func TestFromFile(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		path := writeFile(t, "page.txt", "Il libro è interes-\nsante. Fine.\n")
		got, _, err := FromFile(path).Sentences(ctx)
		if err != nil {
			t.Fatalf("Sentences() error = %v", err)
		}
		if want := []string{"il libro è interessante.", "fine."}; !equalStrings(got, want) {
			t.Errorf("Sentences() = %q, want %q", got, want)
		}
	})

	t.Run("hocr", func(t *testing.T) {
		path := writeFile(t, "page.hocr", lowConfidencePage)
		got, warnings, err := FromFile(path).Sentences(ctx)
		if err != nil {
			t.Fatalf("Sentences() error = %v", err)
		}
		if want := []string{"il libro è interessante.", "fine."}; !equalStrings(got, want) {
			t.Errorf("Sentences() = %q, want %q", got, want)
		}
		if len(warnings) != 1 || warnings[0].Stage != stage.OCR ||
			!strings.Contains(warnings[0].Message, "low mean word confidence") {
			t.Errorf("warnings = %v, want one low confidence warning", warnings)
		}
	})

	t.Run("hocr without extension", func(t *testing.T) {
		path := writeFile(t, "page", lowConfidencePage)
		got, _, err := FromFile(path).SkipSplit().Sentences(ctx)
		if err != nil {
			t.Fatalf("Sentences() error = %v", err)
		}
		if len(got) != 1 || got[0] != "il libro è interessante. fine." {
			t.Errorf("Sentences() = %q", got)
		}
	})

	t.Run("nonexistent", func(t *testing.T) {
		_, _, err := FromFile("nonexistent.txt").Sentences(ctx)
		if err == nil {
			t.Error("expected error for nonexistent file")
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		path := writeFile(t, "archive.zip", "PK\x03\x04\x14\x00\x00\x00\x08\x00")
		_, _, err := FromFile(path).Sentences(ctx)
		if err == nil || !strings.Contains(err.Error(), "unsupported input format") {
			t.Errorf("expected unsupported format error, got %v", err)
		}
	})
}

func TestFromReader(t *testing.T) {
	got, _, err := FromReader(strings.NewReader("Primo. Secondo?")).Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if want := []string{"primo.", "secondo?"}; !equalStrings(got, want) {
		t.Errorf("Sentences() = %q, want %q", got, want)
	}
}

func TestNoInput(t *testing.T) {
	_, _, err := FromFile("").Sentences(context.Background())
	if err == nil {
		t.Error("expected error when no input is specified")
	}
}

func TestObserverAndCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events int
	_, _, err := FromText("x").Observer(func(Event) { events++ }).Sentences(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if events != 0 {
		t.Errorf("observer called %d times after cancellation", events)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(ParseConfig([]byte("bogus_key: true")))
}

func TestMustSentences(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSentences did not panic on error")
		}
	}()
	MustSentences(FromText("x").Language("??").Sentences(context.Background()))
}
