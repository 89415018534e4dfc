// Package transport is the JSON-over-HTTPS primitive the gateway adapters
// talk through. Non-2xx statuses are ordinary responses; only failures to
// complete the exchange (DNS, connect, TLS, timeout) are returned as errors.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/orris-inc/momogate/internal/shared/errors"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultTimeout        = 30 * time.Second
	maxResponseBytes      = 4 << 20
)

// Request describes one call. Body is JSON-encoded when non-nil.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Query  url.Values
	Body   any
}

// Response carries the HTTP status and the body. Body is always valid JSON
// or nil: a non-JSON body is wrapped as a JSON string.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Transport performs a single request/response exchange.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport implements Transport over net/http. It is safe for
// concurrent use.
type HTTPTransport struct {
	client *http.Client

	connectTimeout time.Duration
	timeout        time.Duration
	tlsVerify      bool
	custom         bool
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying client. Timeout and TLS options are
// then ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		t.client = c
		t.custom = true
	}
}

// WithTimeout bounds the whole exchange including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithConnectTimeout bounds establishing the TCP and TLS connection.
func WithConnectTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.connectTimeout = d
		}
	}
}

// WithTLSVerify toggles server certificate verification.
func WithTLSVerify(verify bool) Option {
	return func(t *HTTPTransport) {
		t.tlsVerify = verify
	}
}

// NewHTTPTransport builds a transport with certificate verification on, a
// 10s connect timeout and a 30s total timeout unless overridden.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		connectTimeout: defaultConnectTimeout,
		timeout:        defaultTimeout,
		tlsVerify:      true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if !t.custom {
		t.client = t.buildClient()
	}
	return t
}

func (t *HTTPTransport) buildClient() *http.Client {
	dialer := &net.Dialer{Timeout: t.connectTimeout, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: t.timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: t.connectTimeout,
			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: !t.tlsVerify, //nolint:gosec // sandbox only, production forces verification
			},
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Do sends the request and reads the full response.
func (t *HTTPTransport) Do(ctx context.Context, r *Request) (*Response, error) {
	target := r.URL
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var reqBody io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.NewInternalError("marshal request body", err.Error()).WithCause(err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, reqBody)
	if err != nil {
		return nil, errors.NewInternalError("create request", err.Error()).WithCause(err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(
			fmt.Sprintf("%s %s failed", r.Method, r.URL), err.Error(),
		).WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, errors.NewTransportError(
			fmt.Sprintf("read response of %s %s", r.Method, r.URL), err.Error(),
		).WithCause(err)
	}
	if len(data) > maxResponseBytes {
		return nil, errors.NewTransportError(
			fmt.Sprintf("response of %s %s exceeds the %d MiB limit", r.Method, r.URL, maxResponseBytes>>20),
		)
	}

	return &Response{StatusCode: resp.StatusCode, Body: normalizeBody(data)}, nil
}

func normalizeBody(data []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}
