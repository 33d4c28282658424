package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wolfman30/lead-manager/pkg/logging"
)

const (
	restPath       = "/rest/v1"
	defaultTimeout = 30 * time.Second
)

// Config identifies a Supabase project.
type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// Client talks to a Supabase project's PostgREST endpoint.
// Build one per process and share it.
type Client struct {
	http   *resty.Client
	logger *logging.Logger
}

// APIError is a non-2xx PostgREST response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase: status %d", e.Status)
	}
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

// UserMessage is the server's own message, empty when it sent none.
func (e *APIError) UserMessage() string {
	return e.Message
}

// NewClient validates cfg and builds the shared REST client.
func NewClient(cfg Config, logger *logging.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.AnonKey)
	if base == "" || key == "" {
		return nil, errors.New("supabase: url and anon key are required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("supabase: invalid url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := resty.New().
		SetBaseURL(base+restPath).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", key).
		SetAuthToken(key).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logger}, nil
}

// Select runs GET /{table} with PostgREST query params and decodes the rows into out.
func (c *Client) Select(ctx context.Context, table string, params url.Values, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(out).
		SetError(&APIError{}).
		Get("/" + url.PathEscape(table))
	return c.check("select", table, resp, err)
}

// Insert posts rows and decodes the inserted representation into out.
func (c *Client) Insert(ctx context.Context, table string, rows any, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(rows).
		SetResult(out).
		SetError(&APIError{}).
		Post("/" + url.PathEscape(table))
	return c.check("insert", table, resp, err)
}

// Delete removes the rows matched by the filter params.
func (c *Client) Delete(ctx context.Context, table string, params url.Values) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetError(&APIError{}).
		Delete("/" + url.PathEscape(table))
	return c.check("delete", table, resp, err)
}

func (c *Client) check(op, table string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("supabase request failed", "op", op, "table", table, "error", err)
		return fmt.Errorf("supabase: %s %s: %w", op, table, err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, _ := resp.Error().(*APIError)
	if apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.Status == 0 {
		apiErr.Status = http.StatusBadGateway
	}
	c.logger.Error("supabase returned error status",
		"op", op,
		"table", table,
		"status", apiErr.Status,
		"code", apiErr.Code,
		"message", apiErr.Message,
	)
	return apiErr
}

// Eq builds a PostgREST equality filter value.
func Eq(value string) string {
	return "eq." + value
}
