// Package apiclient is the gateway to the shop's REST API. Every outbound call
// goes through Client.Request, which adds the JSON and CSRF headers and turns
// failures into *HTTPError or *NetworkError.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CSRFHeader carries the token the shop API checks on unsafe methods.
const CSRFHeader = "X-CSRFToken"

// maxErrorBody bounds how much of an error response is kept on HTTPError.
const maxErrorBody = 4 << 10

type csrfKey struct{}

// WithCSRFToken attaches the token read from the submitted form to ctx.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey{}, token)
}

// CSRFToken returns the token on ctx, or "" when none was attached.
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

// Config holds gateway settings.
type Config struct {
	// Origin is the scheme://host[:port] of the shop; requests go to Origin + "/api" + endpoint.
	Origin string

	// SessionCookie, when set, is sent verbatim as the Cookie header.
	SessionCookie string

	// Timeout bounds each request. Zero leaves the http.Client default (none).
	Timeout time.Duration
}

type Client struct {
	origin        string
	sessionCookie string
	http          *http.Client
	logger        *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		origin:        strings.TrimRight(cfg.Origin, "/"),
		sessionCookie: cfg.SessionCookie,
		http:          &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}
}

// Origin returns the configured shop origin.
func (c *Client) Origin() string {
	return c.origin
}

// Request performs method on endpoint and decodes the JSON body into out
// (skipped when out is nil). body, when non-nil, is encoded as JSON.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	raw, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("API response decode failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w: %v", method, endpoint, ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	url := c.origin + "/api" + endpoint

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CSRFHeader, CSRFToken(ctx))
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &NetworkError{Method: method, URL: url, Err: err}
		c.logger.Error("API request failed", zap.Error(netErr))
		return nil, netErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := &NetworkError{Method: method, URL: url, Err: err}
		c.logger.Error("API response read failed", zap.Error(netErr))
		return nil, netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kept := raw
		if len(kept) > maxErrorBody {
			kept = kept[:maxErrorBody]
		}
		httpErr := &HTTPError{
			Method:  method,
			URL:     url,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
			Body:    strings.TrimSpace(string(kept)),
		}
		c.logger.Error("API request failed",
			zap.Int("status", resp.StatusCode),
			zap.Error(httpErr))
		return nil, httpErr
	}

	c.logger.Debug("API request ok",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)))
	return raw, nil
}
