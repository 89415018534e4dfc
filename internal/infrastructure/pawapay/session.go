// Package pawapay projects canonical payment requests onto the two wire
// versions of the pawaPay HTTP API and normalizes their responses.
package pawapay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/infrastructure/transport"
	"github.com/orris-inc/momogate/internal/shared/errors"
)

// Config is the explicit configuration a Session is built from.
type Config struct {
	Environment    vo.Environment
	BaseURL        string // overrides the environment host when set
	APIToken       string
	APIVersion     vo.APIVersion
	TLSVerify      bool
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

// Session is the immutable per-process client configuration. It holds no
// mutable state, so one Session may serve concurrent calls as long as its
// transport allows it.
type Session struct {
	token     string
	baseURL   string
	tlsVerify bool
	version   vo.APIVersion
	transport transport.Transport
	now       func() time.Time
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithTransport injects the transport, typically a fake in tests.
func WithTransport(t transport.Transport) SessionOption {
	return func(s *Session) {
		s.transport = t
	}
}

// WithClock overrides the time source used for V1 customer timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession validates cfg and returns a Session. Production always
// verifies TLS certificates.
func NewSession(cfg Config, opts ...SessionOption) (*Session, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.NewValidationError("API token is required")
	}

	version := cfg.APIVersion
	if version == "" {
		version = vo.APIVersionV1
	}
	if !version.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported API version %q", cfg.APIVersion))
	}

	// An empty environment is allowed only alongside a base URL override.
	var env vo.Environment
	if cfg.Environment != "" || cfg.BaseURL == "" {
		parsed, err := vo.ParseEnvironment(cfg.Environment.String())
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		env = parsed
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = env.BaseURL()
	} else if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err.Error())
	}

	tlsVerify := cfg.TLSVerify || env.IsProduction()

	s := &Session{
		token:     cfg.APIToken,
		baseURL:   strings.TrimRight(baseURL, "/"),
		tlsVerify: tlsVerify,
		version:   version,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.transport == nil {
		s.transport = transport.NewHTTPTransport(
			transport.WithTLSVerify(tlsVerify),
			transport.WithConnectTimeout(cfg.ConnectTimeout),
			transport.WithTimeout(cfg.Timeout),
		)
	}
	return s, nil
}

// WithTransport returns a copy of the session using t.
func (s *Session) WithTransport(t transport.Transport) *Session {
	cp := *s
	cp.transport = t
	return &cp
}

func (s *Session) Version() vo.APIVersion { return s.version }
func (s *Session) BaseURL() string        { return s.baseURL }
func (s *Session) TLSVerify() bool        { return s.tlsVerify }

func (s *Session) header() http.Header {
	return http.Header{
		"Authorization": {"Bearer " + s.token},
		"Content-Type":  {"application/json"},
	}
}

func (s *Session) post(ctx context.Context, path string, body any) (*transport.Response, error) {
	return s.transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    s.baseURL + path,
		Header: s.header(),
		Body:   body,
	})
}

func (s *Session) get(ctx context.Context, path string, query url.Values) (*transport.Response, error) {
	return s.transport.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    s.baseURL + path,
		Header: s.header(),
		Query:  query,
	})
}

// customerTimestamp is the V1 server-stamped initiation time.
func (s *Session) customerTimestamp() string {
	return s.now().Format(time.RFC3339)
}

// widgetSessionPath avoids a doubled /v1 segment when the base URL already
// ends in it.
func widgetSessionPath(baseURL string) string {
	if len(baseURL) >= 2 && baseURL[len(baseURL)-2:] == "v1" {
		return "/widget/sessions"
	}
	return "/v1/widget/sessions"
}

func unsupported(version vo.APIVersion, what string) error {
	return errors.NewUnsupportedError(fmt.Sprintf("%s is not available in API %s", what, version))
}

func missingField(version vo.APIVersion, op, field string) error {
	return errors.NewValidationError(fmt.Sprintf("%s is required for %s on API %s", field, op, version))
}
