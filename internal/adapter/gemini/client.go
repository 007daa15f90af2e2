package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const (
	DefaultModel        = "gemini-1.5-flash"
	defaultMaxRetries   = 3
	defaultInitialDelay = time.Second
)

// Client generates summaries through the Gemini API.
type Client struct {
	models       *genai.Models
	model        string
	maxRetries   int
	initialDelay time.Duration
}

type settings struct {
	baseURL      string
	httpClient   *http.Client
	maxRetries   int
	initialDelay time.Duration
}

type Option func(*settings)

func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = strings.TrimRight(baseURL, "/") + "/" }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) { s.httpClient = httpClient }
}

// WithRetry sets the number of attempts and the first backoff delay, which
// doubles after each retry. At least one attempt is always made.
func WithRetry(maxRetries int, initialDelay time.Duration) Option {
	return func(s *settings) {
		s.maxRetries = maxRetries
		s.initialDelay = initialDelay
	}
}

// NewClient returns a client for the given key. An empty key yields a client
// that reports domain.ErrProviderNotConfigured.
func NewClient(ctx context.Context, apiKey, model string, opts ...Option) (*Client, error) {
	s := settings{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		maxRetries:   defaultMaxRetries,
		initialDelay: defaultInitialDelay,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if model == "" {
		model = DefaultModel
	}

	c := &Client{
		model:        model,
		maxRetries:   max(s.maxRetries, 1),
		initialDelay: s.initialDelay,
	}
	if apiKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  s.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.models = client.Models
	return c, nil
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.models == nil {
		return "", domain.ErrProviderNotConfigured
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.initialDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retry, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
		zap.L().Warn("gemini request failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return "", fmt.Errorf("%w: max retries (%d) exceeded: %v", domain.ErrSummaryGeneration, c.maxRetries, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, bool, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			retry := apiErr.Code >= http.StatusInternalServerError && apiErr.Code != http.StatusServiceUnavailable
			return "", retry, classify(apiErr)
		}
		return "", true, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", false, fmt.Errorf("%w: no summary generated", domain.ErrSummaryGeneration)
	}
	return text, false, nil
}

// classify maps provider failures onto the categories the API reports.
func classify(apiErr genai.APIError) error {
	reasons := []string{apiErr.Status, apiErr.Message}
	for _, detail := range apiErr.Details {
		if reason, ok := detail["reason"].(string); ok {
			reasons = append(reasons, reason)
		}
	}
	signal := strings.Join(reasons, " ")
	status := apiErr.Code

	switch {
	case strings.Contains(signal, "API_KEY_INVALID") || status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w (%d): %s", domain.ErrProviderUnauthorized, status, signal)
	case strings.Contains(signal, "QUOTA_EXCEEDED") || strings.Contains(signal, "RESOURCE_EXHAUSTED") || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w (%d): %s", domain.ErrProviderQuotaExceeded, status, signal)
	case (strings.Contains(signal, "models/") && strings.Contains(signal, "not found")) || status == http.StatusNotFound || status == http.StatusServiceUnavailable:
		return fmt.Errorf("%w (%d): %s", domain.ErrProviderModelUnavailable, status, signal)
	default:
		return fmt.Errorf("%w (%d): %s", domain.ErrSummaryGeneration, status, signal)
	}
}

var _ ports.TextGenerator = (*Client)(nil)
