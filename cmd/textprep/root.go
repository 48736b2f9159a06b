package main

import (
	"fmt"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands.
type app struct {
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "textprep",
		Short: "Clean OCR text and split it into sentences",
		Long: `textprep normalizes text extracted from scanned documents and splits it
into sentences ready for language-model training.

Stages run in a fixed order: OCR correction, Unicode normalization, quote
normalization, broken-word rejoining, lowercasing, whitespace normalization
and sentence splitting. Each can be disabled with its --no-<stage> flag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "YAML configuration file")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(a.runCommand(), a.configCommand())
	return root
}

// newLogger returns a slog logger backed by a charm handler writing to w.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		Prefix:          "textprep",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return slog.New(handler), nil
}
