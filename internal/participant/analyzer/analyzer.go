// Package analyzer extracts participant fields from document photos by
// calling a remote analysis service.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"realty/internal/participant/models"
	"realty/internal/platform/config"
	dErrors "realty/pkg/domain-errors"
	"realty/pkg/platform/circuit"
	"realty/pkg/platform/sentinel"
)

// ErrNotConfigured is returned when no analysis service URL is set.
var ErrNotConfigured = errors.New("document analyzer not configured")

// maxResponseBytes bounds the JSON read back from the service.
const maxResponseBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures an HTTPAnalyzer.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Breaker    *circuit.Breaker
	Logger     *slog.Logger
}

// HTTPAnalyzer posts the image to <BaseURL>/analyze and returns the
// recognized record fields.
type HTTPAnalyzer struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func New(cfg Config) *HTTPAnalyzer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = circuit.New("document-analyzer")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPAnalyzer{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

// Analyzer extracts record fields from a document image.
type Analyzer interface {
	Analyze(ctx context.Context, img models.Image) (map[string]string, error)
}

// FromConfig returns an HTTPAnalyzer, or Unconfigured when cfg has no URL.
func FromConfig(cfg config.Analyzer, logger *slog.Logger) Analyzer {
	if cfg.URL == "" {
		return Unconfigured{}
	}
	return New(Config{
		BaseURL: cfg.URL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Breaker: circuit.New("document-analyzer",
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithCooldown(cfg.Cooldown),
		),
		Logger: logger,
	})
}

// rejectedError marks answers where the service was reachable but refused
// the request. They do not count against the circuit.
type rejectedError struct {
	status int
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("analyzer rejected the request: %d", e.status)
}

func isRejected(err error) bool {
	var r *rejectedError
	return errors.As(err, &r)
}

// Analyze sends img for recognition. Only keys that name a record field are returned.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, img models.Image) (map[string]string, error) {
	if len(img.Data) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "image is empty")
	}

	var fields map[string]string
	change, err := a.breaker.Execute(func() error {
		var callErr error
		fields, callErr = a.call(ctx, img)
		return callErr
	}, isRejected)
	if change.Opened {
		a.logger.WarnContext(ctx, "document analyzer circuit opened", "breaker", a.breaker.Name())
	}
	if change.Closed {
		a.logger.InfoContext(ctx, "document analyzer circuit closed", "breaker", a.breaker.Name())
	}

	switch {
	case err == nil:
		return fields, nil
	case errors.Is(err, circuit.ErrOpen):
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "document analysis temporarily unavailable")
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "document analysis timed out")
	default:
		return nil, dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "document analysis failed")
	}
}

func (a *HTTPAnalyzer) call(ctx context.Context, img models.Image) (map[string]string, error) {
	body, contentType, err := encodeImage(img)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("analyzer unavailable: %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, &rejectedError{status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var extracted map[string]string
	if err := json.Unmarshal(raw, &extracted); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var probe models.UserRecord
	fields := make(map[string]string, len(extracted))
	for k, v := range extracted {
		if probe.HasField(k) {
			fields[k] = v
		}
	}
	return fields, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeImage(img models.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := img.Filename
	if filename == "" {
		filename = "document"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Health checks that the analysis service answers on /health.
func (a *HTTPAnalyzer) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	if a.apiKey != "" {
		req.Header.Set("X-API-Key", a.apiKey)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("analyzer health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analyzer unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// Unconfigured fails every analysis.
type Unconfigured struct{}

func (Unconfigured) Analyze(context.Context, models.Image) (map[string]string, error) {
	return nil, dErrors.Wrap(ErrNotConfigured, dErrors.CodeUnavailable, "document analysis is not configured")
}
