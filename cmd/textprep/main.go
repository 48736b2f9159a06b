// Command textprep cleans OCR text and splits it into sentences.
//
// Usage:
//
//	textprep run [flags] [files...]
//	textprep config [flags]
//
// Files may be plain text, hOCR or, when built with the "ocr" tag, images.
// With no files, run reads plain text from standard input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "textprep:", err)
		os.Exit(1)
	}
}
