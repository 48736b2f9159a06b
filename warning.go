package textprep

import (
	"strings"

	"github.com/tsawler/textprep/stage"
)

// Warning is a non-fatal observation made while processing, such as a
// hyphen that was deliberately left in place.
type Warning struct {
	Stage   stage.Stage
	Message string
}

func (w Warning) String() string {
	return w.Stage.String() + ": " + w.Message
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
