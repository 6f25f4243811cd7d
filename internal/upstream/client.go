package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"orderdesk/internal/metrics"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionStore is the slice of the session layer the client needs: a token
// before each call and wholesale teardown on 401/403.
type SessionStore interface {
	Token() (string, error)
	Clear() error
}

// Client wraps the restaurant API. One method per endpoint, grouped into
// per-resource files.
type Client struct {
	baseURL   string
	http      HTTPClient
	session   SessionStore
	onExpired func()
}

type Option func(*Client)

// WithExpiryHook registers a callback fired after a 401/403 teardown, used by
// the web console to force navigation to sign-in.
func WithExpiryHook(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, session SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Result     json.RawMessage `json:"result"`
}

type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	public   bool   // skip the bearer token (login, public banner listing)
	fallback string // message when the server sends none
}

// do runs one API call and unwraps the envelope into out. The token is read
// before any request is built, so a missing session fails without touching the
// network.
func (c *Client) do(ctx context.Context, req call, out any) error {
	var token string
	if !req.public {
		var err error
		token, err = c.session.Token()
		if err != nil || token == "" {
			return ErrAuthRequired
		}
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
		body = bytes.NewReader(payload)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("%s: %w", req.fallback, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(httpReq, req, out)
}

// doMultipart runs an API call with a multipart body (menu images, banner
// uploads). fields are plain form values; fileField/filePath attach a file
// when filePath is non-empty.
func (c *Client) doMultipart(ctx context.Context, req call, fields map[string]string, fileField, filePath string, out any) error {
	token, err := c.session.Token()
	if err != nil || token == "" {
		return ErrAuthRequired
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
	}
	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
		defer file.Close()
		part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%s: %w", req.fallback, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", req.fallback, err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+token)

	return c.send(httpReq, req, out)
}

func (c *Client) send(httpReq *http.Request, req call, out any) error {
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Printf("[upstream] %s %s failed: %v", req.method, req.path, err)
		metrics.UpstreamRequests.WithLabelValues(req.method, "error").Inc()
		return fmt.Errorf("%w: %s", ErrUnavailable, req.fallback)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(req.method, fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if err := c.session.Clear(); err != nil {
			log.Printf("[upstream] session teardown failed: %v", err)
		}
		if c.onExpired != nil {
			c.onExpired()
		}
		return ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: req.fallback}
		}
		return fmt.Errorf("%s: %w", req.fallback, err)
	}

	if !env.Success || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = req.fallback
		}
		code := resp.StatusCode
		if code < 300 && env.StatusCode >= 300 {
			code = env.StatusCode
		}
		return &APIError{StatusCode: code, Message: msg}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s: %w", req.fallback, err)
		}
	}
	return nil
}
