// Package stage names the steps of the preprocessing pipeline and defines the
// error taxonomy shared by every step.
//
// # Stages
//
// A [Stage] identifies one step of the fixed pipeline order:
//
//	OCR -> Unicode -> Quotes -> BrokenWords -> Lowercase -> Whitespace -> Split
//
// [Order] returns that sequence.
//
// # Errors
//
// Stage packages report configuration problems with typed errors so callers
// can inspect them with errors.As:
//
//   - [InvalidFormError] - Unicode normalization form outside NFC, NFD, NFKC, NFKD
//   - [UnsupportedMethodError] - unknown sentence segmentation method
//   - [InvalidOptionError] - any other option outside its legal values
//   - [CapabilityUnavailableError] - an injected OCR or segmenter capability is
//     missing or failed
//
// The orchestrator wraps whatever a step returns in an [Error] naming the
// failing stage.
//
// # Validation
//
// Option structs declare their enumerated values with `validate` struct tags.
// [Validate] runs them and reports the first failure as an [InvalidOptionError].
package stage
