// Package hocr reads hOCR, the HTML output format of Tesseract and other OCR
// engines, and turns it into plain text that keeps the recognized layout:
// one line of text per ocr_line and a blank line between ocr_par blocks.
//
//	text, err := hocr.Text(f)
//
// Word confidences (x_wconf) and bounding boxes are available through
// [Parse].
package hocr
