// Package format detects the kind of input handed to the preprocessing CLI.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Text indicates UTF-8 plain text.
	Text
	// HOCR indicates hOCR markup produced by an OCR engine.
	HOCR
	// Image indicates a scanned page image.
	Image
)

// headerSize is the number of leading bytes inspected by content detection.
const headerSize = 3072

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "Text"
	case HOCR:
		return "hOCR"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case HOCR:
		return ".hocr"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return Text
	case ".hocr", ".html", ".htm", ".xhtml":
		return HOCR
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif", ".webp":
		return Image
	default:
		return Unknown
	}
}

var imageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/tiff",
	"image/bmp",
	"image/gif",
	"image/webp",
}

// hOCR files declare their classes early, usually in the first page element.
var hocrMarkers = [][]byte{
	[]byte("ocr_page"),
	[]byte("ocr_line"),
	[]byte("ocrx_word"),
	[]byte("ocr-system"),
}

// DetectFromMagic inspects the leading bytes of a file.
// Returns Unknown if the format cannot be determined from content alone.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}
	if len(data) > headerSize {
		data = data[:headerSize]
	}

	mtype := mimetype.Detect(data)
	for _, m := range imageTypes {
		if mtype.Is(m) {
			return Image
		}
	}

	if !isText(mtype) {
		return Unknown
	}
	for _, marker := range hocrMarkers {
		if bytes.Contains(data, marker) {
			return HOCR
		}
	}
	if mtype.Is("text/html") || mtype.Is("application/xhtml+xml") {
		// HTML that is not hOCR.
		return Unknown
	}
	return Text
}

// isText reports whether mtype is text/plain or one of its descendants
// (HTML, XML and so on).
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// DetectFromReader reads up to the detection header from r and inspects it.
func DetectFromReader(r io.Reader) (Format, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(header[:n]), nil
}

// DetectFile detects the format of a file by content, falling back to its
// extension when the content is inconclusive.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	got, err := DetectFromReader(f)
	if err != nil {
		return Unknown, fmt.Errorf("reading %s: %w", path, err)
	}
	if got == Unknown {
		got = Detect(path)
	}
	return got, nil
}
