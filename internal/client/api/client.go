package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/pkg/apierrors"
)

const defaultTimeout = 15 * time.Second

// Error is a non-2xx answer from the server, decoded from its error envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client talks to the task API. The bearer token is read from the session on
// every call, so a login within the same process is picked up.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
	language   string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		token:      func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, name, email, password string) (dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: name, Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var items []dto.TaskItem
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &items); err != nil {
		return nil, err
	}
	return fromTaskItems(items)
}

func (c *Client) CreateTask(ctx context.Context, draft Draft) (Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPost, "/api/tasks", draft.request(), &item); err != nil {
		return Task{}, err
	}
	return fromTaskItem(item)
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch Patch) (Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), patch.body(), &item); err != nil {
		return Task{}, err
	}
	return fromTaskItem(item)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListSummaries(ctx context.Context, limit int) ([]dto.SummaryItem, error) {
	path := "/api/summaries"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []dto.SummaryItem
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetSummary(ctx context.Context, date string) (dto.SummaryItem, error) {
	var out dto.SummaryItem
	err := c.do(ctx, http.MethodGet, "/api/summaries/"+url.PathEscape(date), nil, &out)
	return out, err
}

func (c *Client) SaveSummary(ctx context.Context, req dto.UpsertSummaryRequest) (dto.SummaryItem, error) {
	var out dto.SummaryItem
	err := c.do(ctx, http.MethodPost, "/api/summaries", req, &out)
	return out, err
}

func (c *Client) DeleteSummary(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/summaries/"+url.PathEscape(date), nil, nil)
}

func (c *Client) SummaryRange(ctx context.Context, startDate, endDate string) ([]dto.SummaryItem, error) {
	var out []dto.SummaryItem
	path := fmt.Sprintf("/api/summaries/range/%s/%s", url.PathEscape(startDate), url.PathEscape(endDate))
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GenerateSummary(ctx context.Context, date string) (dto.GeneratedSummaryItem, error) {
	var out dto.GeneratedSummaryItem
	err := c.do(ctx, http.MethodPost, "/api/summaries/generate", dto.GenerateSummaryRequest{Date: date}, &out)
	return out, err
}

func (c *Client) WeeklySummary(ctx context.Context, startDate, endDate string) (dto.WeeklySummaryItem, error) {
	var out dto.WeeklySummaryItem
	err := c.do(ctx, http.MethodPost, "/api/summaries/weekly", dto.WeeklySummaryRequest{StartDate: startDate, EndDate: endDate}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var envelope apierrors.JsonErr
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.ErrDetails.Message != "" {
		return &Error{Status: status, Message: envelope.ErrDetails.Message}
	}

	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Message: message}
}
