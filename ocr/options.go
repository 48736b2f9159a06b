package ocr

import (
	"time"

	"github.com/tsawler/textprep/stage"
)

// Devices accepted by Options.Device.
const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
	DeviceMPS  = "mps"
)

// Options configures a correction run.
type Options struct {
	// ModelPath names the correction model. It is forwarded to the remote
	// service and ignored by RuleCorrector.
	ModelPath string `yaml:"model_path,omitempty"`

	Device    string `yaml:"device" validate:"oneof=cpu cuda mps"`
	BatchSize int    `yaml:"batch_size" validate:"min=1"`

	// UseRemote selects the remote corrector in a Switch.
	UseRemote bool `yaml:"use_remote"`

	// Timeout bounds each remote request. Zero means no timeout.
	Timeout    time.Duration `yaml:"timeout" validate:"min=0"`
	MaxRetries int           `yaml:"max_retries" validate:"min=0"`
}

// DefaultOptions returns local CPU correction in batches of 32 lines.
func DefaultOptions() Options {
	return Options{
		Device:     DeviceCPU,
		BatchSize:  32,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
	}
}

// Validate checks the enumerated and numeric options.
func (o Options) Validate() error {
	return stage.Validate(o)
}
