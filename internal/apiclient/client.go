// Package apiclient talks to the remote booking REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	BaseURL    string        // e.g. http://localhost:8081
	Timeout    time.Duration // per request; ignored when HTTPClient is set
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client is an HTTP implementation of the booking API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// New validates the base URL and builds a Client.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url must be an absolute http(s) url, got %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: hc,
		log:        log,
	}, nil
}

// List returns every booking known to the server.
func (c *Client) List(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Booking{}
	}
	return out, nil
}

// Create submits draft and returns the booking with its server-assigned id
// and status.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Booking, error) {
	var out domain.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", draft, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

// Confirm asks the server to confirm booking id.
func (c *Client) Confirm(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	path := "/bookings/" + url.PathEscape(id) + "/confirm"
	if err := c.do(ctx, http.MethodPatch, path, struct{}{}, &out); err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

// Delete removes booking id on the server.
func (c *Client) Delete(ctx context.Context, id string) error {
	var ack struct {
		OK bool `json:"ok"`
	}
	path := "/bookings/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &ack); err != nil {
		return err
	}
	if !ack.OK {
		return &APIError{Method: http.MethodDelete, Path: path, StatusCode: http.StatusOK, Message: "delete was not acknowledged"}
	}
	return nil
}

// do sends one JSON request and decodes a 2xx answer into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &APIError{Method: method, Path: path, Message: transportMessage(err), Err: err}
		c.logFailure(apiErr, start)
		return apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("booking api call",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    failureMessage(resp),
		}
		c.logFailure(apiErr, start)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    "unexpected response from booking service",
			Err:        fmt.Errorf("decoding response: %w", err),
		}
		c.logFailure(apiErr, start)
		return apiErr
	}
	return nil
}

func (c *Client) logFailure(apiErr *APIError, start time.Time) {
	c.log.Debug("booking api call failed",
		logger.String("detail", apiErr.Detail()),
		logger.Duration("duration", time.Since(start)),
		logger.Error(apiErr.Err))
}

func failureMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		if msg := strings.TrimSpace(eb.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(eb.Message); msg != "" {
			return msg
		}
	}
	return statusMessage(resp.StatusCode)
}

func transportMessage(err error) string {
	var ne interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return "network error"
}
