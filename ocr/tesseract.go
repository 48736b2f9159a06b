//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/textprep/hocr"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguage sets the Tesseract language models, e.g. "ita", "eng".
func (c *Client) SetLanguage(langs ...string) error {
	return c.client.SetLanguage(langs...)
}

// RecognizeImage performs OCR on encoded image data.
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Recognize prepares the scan in r with PrepareImage and recognizes it
// through hOCR, keeping Tesseract's line and paragraph layout.
func (c *Client) Recognize(ctx context.Context, r io.Reader) (string, error) {
	data, err := PrepareImage(r)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	out, err := c.client.HOCRText()
	if err != nil {
		return "", fmt.Errorf("recognize hocr: %w", err)
	}
	return hocr.Text(bytes.NewReader([]byte(out)))
}
