// pkg/client/client.go

// Package client provides network clients for contract bindings.
//
// Three transports are supported, all implementing contract.Client:
//
//   - RestClient talks to a node's REST API (/api/v1/...).
//   - RPCClient talks to a node's JSON-RPC 2.0 endpoint.
//   - WSClient talks to a node's WebSocket API.
//
// Transport failures are returned as *contract.SubmissionError. Errors the
// node reports in its reply envelope are returned in Response.Error without
// a Go error, and no client retries.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cosmossdk.io/log"

	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

// apiVersion is sent in request envelopes that carry a version.
const apiVersion = "1.0.0"

// Compile-time interface checks.
var (
	_ contract.Client = (*RestClient)(nil)
	_ contract.Client = (*RPCClient)(nil)
	_ contract.Client = (*WSClient)(nil)
)

// Option configures a client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     log.Logger
}

func defaultOptions() *options {
	return &options{
		timeout: DefaultTimeout,
		logger:  log.NewNopLogger(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}
	return o
}

// WithHTTPClient sets the HTTP client used by REST and JSON-RPC clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout sets the request timeout of the default HTTP client and the
// WebSocket handshake.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Dial returns a client for endpoint, chosen by URL:
//
//   - ws:// and wss:// select the WebSocket client;
//   - http(s) URLs whose path starts with /api select the REST client;
//   - any other http(s) URL selects the JSON-RPC client.
func Dial(ctx context.Context, endpoint string, opts ...Option) (contract.Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}

	switch u.Scheme {
	case "ws", "wss":
		return DialWS(ctx, endpoint, opts...)
	case "http", "https":
		if strings.HasPrefix(u.Path, "/api") {
			return NewRestClient(u.Scheme+"://"+u.Host, opts...), nil
		}
		return NewRPCClient(endpoint, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
}

// Closer is implemented by clients holding a connection.
type Closer interface {
	Close() error
}

// Close releases c if it holds a connection.
func Close(c contract.Client) error {
	if closer, ok := c.(Closer); ok {
		return closer.Close()
	}
	return nil
}
