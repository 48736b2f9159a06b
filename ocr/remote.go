package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/tsawler/textprep/stage"
)

const defaultBackoff = 200 * time.Millisecond

type correctRequest struct {
	Texts  []string `json:"texts"`
	Device string   `json:"device"`
	Model  string   `json:"model,omitempty"`
}

type correctResponse struct {
	Texts []string `json:"texts"`
}

// RemoteCorrector calls an HTTP inference service. Each batch of lines is
// POSTed as {"texts": [...], "device": ..., "model": ...} and the service
// answers {"texts": [...]} with one corrected line per input line.
type RemoteCorrector struct {
	client   *resty.Client
	endpoint string
	backoff  time.Duration
	logger   *slog.Logger
}

// RemoteOption configures a RemoteCorrector.
type RemoteOption func(*RemoteCorrector)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) RemoteOption {
	return func(r *RemoteCorrector) {
		r.client = resty.NewWithClient(hc)
	}
}

// WithBackoff sets the base delay of the exponential retry backoff.
func WithBackoff(d time.Duration) RemoteOption {
	return func(r *RemoteCorrector) {
		r.backoff = d
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *slog.Logger) RemoteOption {
	return func(r *RemoteCorrector) {
		r.logger = l
	}
}

// NewRemoteCorrector creates a corrector for the service at endpoint.
func NewRemoteCorrector(endpoint string, opts ...RemoteOption) *RemoteCorrector {
	r := &RemoteCorrector{
		client:   resty.New(),
		endpoint: endpoint,
		backoff:  defaultBackoff,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.client.
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return r
}

// Correct sends text in batches of opts.BatchSize lines. Network errors,
// 429 and 5xx responses are retried opts.MaxRetries times; once retries are
// exhausted a *stage.CapabilityUnavailableError is returned.
func (r *RemoteCorrector) Correct(ctx context.Context, text string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for batch := range slices.Chunk(lines, opts.BatchSize) {
		got, err := r.correctBatch(ctx, batch, opts)
		if err != nil {
			return "", err
		}
		out = append(out, got...)
	}
	return strings.Join(out, "\n"), nil
}

func (r *RemoteCorrector) correctBatch(ctx context.Context, batch []string, opts Options) ([]string, error) {
	backoff := retry.WithMaxRetries(uint64(opts.MaxRetries), retry.NewExponential(r.backoff)) // #nosec G115 -- validated non-negative

	var result []string
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		got, err := r.post(ctx, batch, opts)
		var transient *transientError
		if errors.As(err, &transient) {
			r.logger.Debug("ocr correction request failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		result = got
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &stage.CapabilityUnavailableError{Capability: "remote ocr corrector", Err: err}
	}
	return result, nil
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (r *RemoteCorrector) post(ctx context.Context, batch []string, opts Options) ([]string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var body correctResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(correctRequest{Texts: batch, Device: opts.Device, Model: opts.ModelPath}).
		SetResult(&body).
		Post(r.endpoint)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("post %s: %w", r.endpoint, err)}
	}

	code := resp.StatusCode()
	switch {
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return nil, &transientError{err: fmt.Errorf("post %s: status %d", r.endpoint, code)}
	case resp.IsError():
		return nil, fmt.Errorf("post %s: status %d", r.endpoint, code)
	}

	if len(body.Texts) != len(batch) {
		return nil, fmt.Errorf("service returned %d lines for %d", len(body.Texts), len(batch))
	}
	for i, line := range body.Texts {
		body.Texts[i] = strings.ReplaceAll(line, "\n", " ")
	}
	return body.Texts, nil
}
