// Package api is the HTTP client for the mall API. Every call exchanges JSON
// with the /api base path; authenticated calls carry the session credential as
// a bearer token and a 401 reply resets the session.
package api

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
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 4 << 20
)

// Session is the credential source the Client reads and resets
type Session interface {
	Credential() string
	Logout() error
}

type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	timeout    time.Duration
	tracing    bool
}

type Option func(*Client)

// WithTimeout bounds each call; a call exceeding it fails as a transport error
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient uses a copy of hc for every call. hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracing wraps the transport with OpenTelemetry instrumentation
func WithTracing(enabled bool) Option {
	return func(c *Client) {
		c.tracing = enabled
	}
}

// New creates a Client for the API rooted at baseURL
func New(baseURL string, session Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid API base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if session == nil {
		return nil, errors.New("session is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{}
	if c.httpClient != nil {
		copied := *c.httpClient
		hc = &copied
	}
	c.httpClient = hc
	c.httpClient.Timeout = c.timeout
	if c.tracing {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.httpClient.Transport = otelhttp.NewTransport(base,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "HTTP " + r.Method + " " + r.URL.Path
			}),
		)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method   string
	path     string
	query    url.Values
	body     any
	auth     bool
	strict   bool   // body must carry success:true
	fallback string // message when the server gives none
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var credential string
	if r.auth {
		credential = c.session.Credential()
		if credential == "" {
			return &Error{Kind: KindPrecondition, Message: ErrNoCredential.Error(), Err: ErrNoCredential}
		}
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return &Error{Kind: KindPrecondition, Message: r.fallback, Err: errors.Wrap(err, "encoding request body")}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return &Error{Kind: KindPrecondition, Message: r.fallback, Err: errors.Wrap(err, "building request")}
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	logger := log.With().Str("request_id", requestID).Str("method", r.method).Str("path", r.path).Logger()
	logger.Debug().Msg("API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		wrapped := errors.Wrapf(err, "%s %s", r.method, r.path)
		logger.Err(wrapped).Msg("API transport failure")
		return &Error{Kind: KindTransport, Message: wrapped.Error(), Err: wrapped}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		wrapped := errors.Wrapf(err, "reading %s %s response", r.method, r.path)
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: wrapped.Error(), Err: wrapped}
	}

	var env envelope
	hasBody := len(bytes.TrimSpace(data)) > 0
	if hasBody {
		// A non-JSON body only matters when the caller needs the payload
		_ = json.Unmarshal(data, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized && r.auth {
		logger.Warn().Msg("401 Unauthorized, forcing logout")
		if err := c.session.Logout(); err != nil {
			logger.Err(err).Msg("Failed to reset session after 401")
		}
		return &Error{
			Kind:    KindUnauthorized,
			Status:  resp.StatusCode,
			Message: messageOr(env.Message, "session expired, please log in again"),
			Err:     ErrUnauthorized,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := messageOr(env.Message, fallbackOr(r.fallback, fmt.Sprintf("request failed with status %d", resp.StatusCode)))
		logger.Debug().Int("status", resp.StatusCode).Str("message", msg).Msg("API request rejected")
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg, Err: ErrServer}
	}

	// Strict endpoints must confirm with success:true; an empty reply is not enough
	if !r.strict && (resp.StatusCode == http.StatusNoContent || !hasBody) {
		return nil
	}

	if (env.Success != nil && !*env.Success) || (r.strict && env.Success == nil) {
		msg := messageOr(env.Message, fallbackOr(r.fallback, "request failed"))
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg, Err: ErrServer}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			wrapped := errors.Wrapf(err, "decoding %s %s response", r.method, r.path)
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: fallbackOr(r.fallback, wrapped.Error()), Err: wrapped}
		}
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}

func fallbackOr(fallback, generic string) string {
	if fallback != "" {
		return fallback
	}
	return generic
}
