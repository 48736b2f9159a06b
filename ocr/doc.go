// Package ocr provides the OCR side of the pipeline: post-correction of text
// produced by an OCR engine, and recognition of scanned page images.
//
// # Correction
//
// A [Corrector] repairs recognition errors in text. Three are provided:
//
//   - [RuleCorrector] fixes classic confusions without a model (ligatures,
//     long s, digits and bars between lower-case letters)
//   - [RemoteCorrector] sends lines in batches to an HTTP inference service
//   - [Switch] selects between a local and a remote corrector from
//     [Options.UseRemote]
//
// # Recognition
//
// [Client] wraps the Tesseract engine via gosseract. It requires Tesseract to
// be installed and the "ocr" build tag:
//
//	go build -tags ocr
//
// On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Without the tag every Client function returns [ErrOCRNotEnabled].
// [PrepareImage] is always available.
package ocr
