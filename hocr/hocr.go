package hocr

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoText is returned by Text when the document contains no words.
var ErrNoText = errors.New("hocr: no recognized text")

// Document is a parsed hOCR file.
type Document struct {
	Pages []Page
}

// Page is an ocr_page element.
type Page struct {
	ID         string
	Paragraphs []Paragraph
}

// Paragraph is an ocr_par element, or a line found outside of one.
type Paragraph struct {
	Lines []Line
}

// Line is an ocr_line or a similar line-level element (caption, header,
// text float).
type Line struct {
	Words []Word
}

// Word is an ocrx_word element.
type Word struct {
	Text       string
	BBox       image.Rectangle
	Confidence int // x_wconf, -1 when absent
}

var lineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_caption":   true,
	"ocr_header":    true,
	"ocr_textfloat": true,
}

// Open parses an hOCR file.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads hOCR markup from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}
	b := &builder{doc: &Document{}}
	b.visit(root)
	return b.doc, nil
}

// Text parses r and returns its layout-preserving text.
func Text(r io.Reader) (string, error) {
	doc, err := Parse(r)
	if err != nil {
		return "", err
	}
	text := doc.Text()
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Text joins words with spaces, lines with newlines, and paragraphs and
// pages with blank lines.
func (d *Document) Text() string {
	var paras []string
	for _, p := range d.Pages {
		for _, par := range p.Paragraphs {
			lines := make([]string, 0, len(par.Lines))
			for _, l := range par.Lines {
				lines = append(lines, l.Text())
			}
			paras = append(paras, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paras, "\n\n")
}

// Text joins the words of the line.
func (l Line) Text() string {
	words := make([]string, len(l.Words))
	for i, w := range l.Words {
		words[i] = w.Text
	}
	return strings.Join(words, " ")
}

// MeanConfidence averages the word confidences. ok is false when no word
// carries one.
func (d *Document) MeanConfidence() (mean float64, ok bool) {
	var sum, n int
	for _, p := range d.Pages {
		for _, par := range p.Paragraphs {
			for _, l := range par.Lines {
				for _, w := range l.Words {
					if w.Confidence >= 0 {
						sum += w.Confidence
						n++
					}
				}
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

type builder struct {
	doc     *Document
	inPar   bool
	inLine  bool
	autoPar bool // paragraph opened for a line outside ocr_par
}

func (b *builder) visit(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head":
			return
		}
		switch class := ocrClass(n); {
		case class == "ocr_page":
			b.doc.Pages = append(b.doc.Pages, Page{ID: attr(n, "id")})
		case class == "ocr_par":
			b.startParagraph()
			b.children(n)
			b.endParagraph()
			return
		case lineClasses[class]:
			b.startLine()
			if !hasWords(n) {
				for _, f := range strings.Fields(textContent(n)) {
					b.addWord(Word{Text: f, Confidence: -1})
				}
			} else {
				b.children(n)
			}
			b.endLine()
			return
		case class == "ocrx_word":
			text := strings.Join(strings.Fields(textContent(n)), " ")
			if text == "" {
				return
			}
			w := Word{Text: text, Confidence: -1}
			parseTitle(attr(n, "title"), &w)
			if b.inLine {
				b.addWord(w)
			} else {
				b.startLine()
				b.addWord(w)
				b.endLine()
			}
			return
		}
	}
	b.children(n)
}

func (b *builder) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.visit(c)
	}
}

func (b *builder) page() *Page {
	if len(b.doc.Pages) == 0 {
		b.doc.Pages = append(b.doc.Pages, Page{})
	}
	return &b.doc.Pages[len(b.doc.Pages)-1]
}

func (b *builder) paragraph() *Paragraph {
	p := b.page()
	return &p.Paragraphs[len(p.Paragraphs)-1]
}

func (b *builder) startParagraph() {
	p := b.page()
	p.Paragraphs = append(p.Paragraphs, Paragraph{})
	b.inPar = true
}

func (b *builder) endParagraph() {
	p := b.page()
	if last := len(p.Paragraphs) - 1; last >= 0 && len(p.Paragraphs[last].Lines) == 0 {
		p.Paragraphs = p.Paragraphs[:last]
	}
	b.inPar = false
	b.autoPar = false
}

func (b *builder) startLine() {
	if !b.inPar {
		b.startParagraph()
		b.autoPar = true
	}
	par := b.paragraph()
	par.Lines = append(par.Lines, Line{})
	b.inLine = true
}

func (b *builder) endLine() {
	par := b.paragraph()
	if last := len(par.Lines) - 1; len(par.Lines[last].Words) == 0 {
		par.Lines = par.Lines[:last]
	}
	b.inLine = false
	if b.autoPar {
		b.endParagraph()
	}
}

func (b *builder) addWord(w Word) {
	par := b.paragraph()
	l := &par.Lines[len(par.Lines)-1]
	l.Words = append(l.Words, w)
}

// ocrClass returns the first ocr_ or ocrx_ class of n.
func ocrClass(n *html.Node) string {
	for _, c := range strings.Fields(attr(n, "class")) {
		if strings.HasPrefix(c, "ocr_") || strings.HasPrefix(c, "ocrx_") {
			return c
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasWords(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (ocrClass(c) == "ocrx_word" || hasWords(c)) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parseTitle reads the bbox and x_wconf properties of an hOCR title
// attribute, e.g. "bbox 36 92 96 116; x_wconf 93".
func parseTitle(title string, w *Word) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "bbox":
			if len(fields) != 5 {
				continue
			}
			var v [4]int
			ok := true
			for i := range v {
				n, err := strconv.Atoi(fields[i+1])
				if err != nil {
					ok = false
					break
				}
				v[i] = n
			}
			if ok {
				w.BBox = image.Rect(v[0], v[1], v[2], v[3])
			}
		case "x_wconf":
			if len(fields) == 2 {
				if c, err := strconv.Atoi(fields[1]); err == nil {
					w.Confidence = c
				}
			}
		}
	}
}
