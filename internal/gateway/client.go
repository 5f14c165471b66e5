// Package gateway holds typed clients for the remote marketplace API.
// The client core depends on these contracts; the API itself, including
// all inventory and order arbitration, lives on the server.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a single-resource fetch misses.
var ErrNotFound = errors.New("resource not found")

// ErrNoCredential is returned when an authenticated call is attempted
// without a persisted credential.
var ErrNoCredential = errors.New("missing credential")

// Error carries the remote API's error surface for a failed call.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote API returned status %d", e.Status)
}

// TokenSource supplies the persisted bearer credential, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the shared transport for all gateway services.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// NewClient creates a client for the remote API rooted at baseURL.
// tokens may be nil for a client that only performs public reads.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// apiMessage is the error envelope the remote API uses for failures.
type apiMessage struct {
	Message string `json:"message"`
}

// do performs one JSON round trip. When authed is set the persisted
// credential is attached as a bearer header; the call fails with
// ErrNoCredential when none exists.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader, authed)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart performs one multipart round trip carrying a JSON payload
// field plus a file attachment.
func (c *Client) doMultipart(ctx context.Context, method, path string, payloadField string, payload any, upload *Upload, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request payload: %w", err)
	}
	if err := writer.WriteField(payloadField, string(encoded)); err != nil {
		return fmt.Errorf("write payload field: %w", err)
	}

	part, err := writer.CreateFormFile(upload.Field, upload.Filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return fmt.Errorf("copy upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf, true)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

// Upload describes a file attachment for a multipart call.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, authed bool) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		if c.tokens == nil {
			return nil, ErrNoCredential
		}
		token, ok := c.tokens.Token()
		if !ok {
			return nil, ErrNoCredential
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("remote API call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// decodeError lifts the remote API's {message} envelope into an *Error.
// A body that is not the expected envelope still yields the status.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var msg apiMessage
		if json.Unmarshal(body, &msg) == nil {
			apiErr.Message = msg.Message
		}
	}

	return apiErr
}
