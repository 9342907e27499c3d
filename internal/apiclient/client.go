package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes caps a response body. Larger bodies fail with
// ErrResponseTooLarge instead of being cut short.
const maxBodyBytes = 32 << 20 //32mb

// TokenSource hands out the bearer token attached to protected calls.
type TokenSource interface {
	GetToken() (string, error)
}

// Client talks to the single campus API host.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.SugaredLogger
	maxBody    int64
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets a client-wide timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxResponseBytes overrides the response size cap.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop().Sugar(),
		maxBody:    maxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one call against the API.
type Request struct {
	Method string
	Path   string
	// JSON is encoded as the request body when non-nil.
	JSON any
	// Form is sent url-encoded when non-nil. JSON wins if both are set.
	Form url.Values
	// Auth attaches "Authorization: Bearer <token>".
	Auth bool
}

// BaseURL returns the host the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req and decodes a 2xx body into out (when out is non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + req.Path
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", req.Method, req.Path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if req.Auth {
		token, err := c.bearer()
		if err != nil {
			return err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", req.Method, req.Path, err)
	}
	if int64(len(raw)) > c.maxBody {
		return fmt.Errorf("%s %s: %w (over %d bytes)", req.Method, req.Path, ErrResponseTooLarge, c.maxBody)
	}

	c.logger.Debugw("api call",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:  req.Method,
			Path:    req.Path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) bearer() (string, error) {
	if c.tokens == nil {
		return "", ErrMissingToken
	}
	token, err := c.tokens.GetToken()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.JSON != nil:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		return bytes.NewReader(b), "application/json", nil
	case req.Form != nil:
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", nil
	}
}

// errorMessage pulls a human message out of an error body. The API answers
// with {"detail": ...} from the framework or {"message": ...} from handlers.
func errorMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		if len(body.Detail) > 0 {
			return string(body.Detail)
		}
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// PathEscape escapes a single path segment such as a club name.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
