package stage

import (
	"fmt"
	"strings"
)

// InvalidFormError is returned when a Unicode normalization form is not one of
// NFC, NFD, NFKC or NFKD.
type InvalidFormError struct {
	Form string
}

func (e *InvalidFormError) Error() string {
	return fmt.Sprintf("invalid unicode normalization form %q (want NFC, NFD, NFKC or NFKD)", e.Form)
}

// UnsupportedMethodError is returned for an unknown sentence segmentation method.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported sentence split method %q", e.Method)
}

// InvalidOptionError reports a stage option outside its legal values.
type InvalidOptionError struct {
	Option  string
	Value   any
	Allowed []string // empty when the rule is not an enumeration
	Rule    string
}

func (e *InvalidOptionError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid value %v for option %s (allowed: %s)",
			e.Value, e.Option, strings.Join(e.Allowed, ", "))
	}
	if e.Rule != "" {
		return fmt.Sprintf("invalid value %v for option %s (rule %s)", e.Value, e.Option, e.Rule)
	}
	return fmt.Sprintf("invalid value %v for option %s", e.Value, e.Option)
}

// CapabilityUnavailableError reports that an injected capability (OCR
// corrector, segmenter) is missing or failed.
type CapabilityUnavailableError struct {
	Capability string
	Err        error
}

func (e *CapabilityUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("capability %s unavailable", e.Capability)
	}
	return fmt.Sprintf("capability %s unavailable: %v", e.Capability, e.Err)
}

func (e *CapabilityUnavailableError) Unwrap() error {
	return e.Err
}

// Error is the terminal error returned by the pipeline. It names the stage
// that failed and wraps the stage's own error unchanged.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches a stage to err. It returns nil for a nil err.
func Wrap(s Stage, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Stage: s, Err: err}
}
