package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/tsawler/textprep/stage"
)

func TestRuleCorrector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"ligatures", "ﬁne ﬂusso eﬀetto", "fine flusso effetto"},
		{"long s", "ſcienza", "scienza"},
		{"zero between letters", "c0sa", "cosa"},
		{"one between letters", "fi1o", "filo"},
		{"bar between letters", "be|lo", "bello"},
		{"digits kept", "anno 1990, pag. 10", "anno 1990, pag. 10"},
		{"upper-case neighbours", "A1B", "A1B"},
		{"line breaks kept", "c0sa\nfi1o", "cosa\nfilo"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuleCorrector{}.Correct(context.Background(), tt.text, DefaultOptions())
			if err != nil {
				t.Fatalf("Correct() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Correct(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRuleCorrector_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (RuleCorrector{}).Correct(ctx, "x", DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("Correct() error = %v, want context.Canceled", err)
	}
}

func TestSwitch(t *testing.T) {
	local := CorrectorFunc(func(context.Context, string, Options) (string, error) { return "local", nil })
	remote := CorrectorFunc(func(context.Context, string, Options) (string, error) { return "remote", nil })
	s := Switch{Local: local, Remote: remote}

	opts := DefaultOptions()
	if got, _ := s.Correct(context.Background(), "x", opts); got != "local" {
		t.Errorf("Correct() = %q, want local", got)
	}
	opts.UseRemote = true
	if got, _ := s.Correct(context.Background(), "x", opts); got != "remote" {
		t.Errorf("Correct() = %q, want remote", got)
	}

	_, err := Switch{Local: local}.Correct(context.Background(), "x", opts)
	var unavailable *stage.CapabilityUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Correct() error = %v, want *stage.CapabilityUnavailableError", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		option string
	}{
		{"defaults", func(*Options) {}, ""},
		{"cuda", func(o *Options) { o.Device = DeviceCUDA }, ""},
		{"bad device", func(o *Options) { o.Device = "tpu" }, "device"},
		{"zero batch", func(o *Options) { o.BatchSize = 0 }, "batch_size"},
		{"negative retries", func(o *Options) { o.MaxRetries = -1 }, "max_retries"},
		{"negative timeout", func(o *Options) { o.Timeout = -1 }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.option == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var invalid *stage.InvalidOptionError
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() error = %v, want *stage.InvalidOptionError", err)
			}
			if invalid.Option != tt.option {
				t.Errorf("Option = %q, want %q", invalid.Option, tt.option)
			}
		})
	}
}
