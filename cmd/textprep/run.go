package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/textprep"
	"github.com/tsawler/textprep/ocr"
)

// Output formats.
const (
	formatText  = "text"
	formatJSONL = "jsonl"
)

// stdinName stands for standard input in logs and output records.
const stdinName = "-"

type runOptions struct {
	workers        int
	format         string
	outDir         string
	ocrEndpoint    string
	ocrLanguages   []string
	preserveTokens []string
}

// record is one line of jsonl output.
type record struct {
	File     string `json:"file"`
	Index    int    `json:"index"`
	Sentence string `json:"sentence"`
}

func (a *app) runCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Preprocess files into sentences",
		Long: `Run the pipeline over each file and write the sentences one per line, or
as JSON lines with --format jsonl. Files are processed concurrently; output
keeps the order of the arguments. With --out, each input gets its own output
file in that directory. With no files, plain text is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "files processed in parallel")
	fs.StringVarP(&opts.format, "format", "f", formatText, "output format (text, jsonl)")
	fs.StringVarP(&opts.outDir, "out", "o", "", "directory for per-file output")
	fs.StringVar(&opts.ocrEndpoint, "ocr-endpoint", "", "URL of a remote OCR correction service; enables OCR correction")
	fs.StringSliceVar(&opts.ocrLanguages, "ocr-languages", nil, "Tesseract languages for image input (e.g. ita,eng)")
	fs.StringSliceVar(&opts.preserveTokens, "preserve-tokens", nil, "fragments never joined with the next line")
	addPipelineFlags(fs)
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string, opts runOptions) error {
	switch opts.format {
	case formatText, formatJSONL:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", opts.format, formatText, formatJSONL)
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	corrector := ocr.Switch{Local: ocr.RuleCorrector{}}
	if opts.ocrEndpoint != "" {
		cfg.OCRCorrection = true
		cfg.OCR.UseRemote = true
		corrector.Remote = ocr.NewRemoteCorrector(opts.ocrEndpoint, ocr.WithLogger(a.logger))
	}

	// Fail on bad options before touching any input.
	if _, err := textprep.New(cfg, textprep.WithCorrector(corrector)); err != nil {
		return err
	}

	configure := func(p *textprep.Processor) *textprep.Processor {
		p = p.WithConfig(cfg).Logger(a.logger)
		if cfg.OCRCorrection {
			p = p.Corrector(corrector)
		}
		if len(opts.preserveTokens) > 0 {
			p = p.PreserveTokens(opts.preserveTokens...)
		}
		if len(opts.ocrLanguages) > 0 {
			p = p.OCRLanguages(opts.ocrLanguages...)
		}
		return p
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	results := make([][]string, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.workers)
	for i, in := range inputs {
		g.Go(func() error {
			src := textprep.FromFile(in)
			if in == stdinName {
				src = textprep.FromReader(cmd.InOrStdin())
			}
			sentences, warnings, err := configure(src).Sentences(ctx)
			for _, w := range warnings {
				a.logger.Warn(w.Message, "file", in, "stage", w.Stage.String())
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			a.logger.Info("processed", "file", in, "sentences", len(sentences))
			results[i] = sentences
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.outDir == "" {
		w := bufio.NewWriter(cmd.OutOrStdout())
		for i, in := range inputs {
			if err := writeSentences(w, in, results[i], opts.format); err != nil {
				return err
			}
		}
		return w.Flush()
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for i, in := range inputs {
		if err := writeFile(outputPath(opts.outDir, in, opts.format), in, results[i], opts.format); err != nil {
			return err
		}
	}
	return nil
}

// outputPath names the output file for input in dir: the input's base name
// with the extension of the output format.
func outputPath(dir, input, format string) string {
	name := "stdin"
	if input != stdinName {
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ext := ".txt"
	if format == formatJSONL {
		ext = ".jsonl"
	}
	return filepath.Join(dir, name+ext)
}

func writeFile(path, input string, sentences []string, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := writeSentences(w, input, sentences, format); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSentences(w io.Writer, input string, sentences []string, format string) error {
	if format == formatText {
		for _, s := range sentences {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, s := range sentences {
		if err := enc.Encode(record{File: input, Index: i, Sentence: s}); err != nil {
			return err
		}
	}
	return nil
}
