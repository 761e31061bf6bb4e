// Package api is the HTTP client for the MedShare backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/existflow/medshare/internal/logger"
)

// DefaultTimeout applies to every call made by a client
const DefaultTimeout = 30 * time.Second

const maxBodySize = 10 << 20

// TokenSource supplies the bearer token for authenticated calls
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the backend. The zero policy set is the public client: no token and no
// reaction to 401. The authenticated client is built with WithTokenSource and
// WithUnauthorizedHandler.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	tracer         trace.Tracer
	metrics        *Metrics
	log            *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource attaches a bearer token to every request
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler installs the policy run whenever the backend answers 401
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for call tracing
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tracer:     otel.Tracer("medshare-api"),
		log:        logger.WithFields(logger.F("component", "api")),
	}

	if m, err := NewMetrics(); err == nil {
		c.metrics = m
	} else {
		c.log.Warn("API metrics disabled", logger.F("error", err))
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a copy of the client with extra options applied
func (c *Client) With(opts ...Option) *Client {
	clone := *c
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call is one request description
type call struct {
	op     string // span and metric name, e.g. "auth.login"
	method string
	path   string
	body   interface{}
	accept string
}

// do performs a JSON call and returns the parsed envelope
func (c *Client) do(ctx context.Context, cl call) (*Envelope, error) {
	env, _, err := c.roundTrip(ctx, cl)
	return env, err
}

// roundTrip performs the call and also returns the raw response for non-JSON payloads
func (c *Client) roundTrip(ctx context.Context, cl call) (*Envelope, *rawResponse, error) {
	ctx, span := c.tracer.Start(ctx, "medshare_api."+cl.op)
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", cl.method),
		attribute.String("api.path", cl.path),
	)

	start := time.Now()
	env, raw, err := c.send(ctx, cl)
	status := 0
	if raw != nil {
		status = raw.status
	}

	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Message(err))
	}
	c.metrics.RecordCall(ctx, cl.op, status, err, time.Since(start))

	c.log.Debug("API call",
		logger.F("op", cl.op),
		logger.F("status", status),
		logger.F("duration", time.Since(start).String()))

	return env, raw, err
}

type rawResponse struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) send(ctx context.Context, cl call) (*Envelope, *rawResponse, error) {
	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, nil, &Error{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, nil, &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if cl.accept != "" {
		req.Header.Set("Accept", cl.accept)
	} else {
		req.Header.Set("Accept", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	raw := &rawResponse{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}
	if err != nil {
		return nil, raw, &Error{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	env := parseEnvelope(body)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.log.Info("Backend rejected the session token", logger.F("op", cl.op))
		c.onUnauthorized(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return env, raw, &Error{
			Status:  resp.StatusCode,
			Message: env.Message,
			Fields:  env.Errors,
			Err:     statusError(resp.StatusCode),
		}
	}

	if env.Success != nil && !*env.Success {
		return env, raw, &Error{Status: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	return env, raw, nil
}
