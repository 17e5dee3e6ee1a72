// Package api provides a request facade over a resty HTTP client.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"

	"github.com/devsecops-cli/devsecops-cli/internal/logger"
)

// Logger receives one debug line per completed or failed call.
type Logger interface {
	Debugf(format string, v ...any)
}

// Client applies a base Config to every call and logs each exchange.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	base      Config
	logger    Logger
	transport *resty.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport *resty.Client
}

// WithTransport supplies a pre-built resty client instead of a fresh one.
// Every facade built on it registers two more hooks on that client, and resty
// offers no way to remove them. Each hook ignores calls from other facades,
// so sharing is correct, but a long-lived transport accumulates one pair of
// hooks per facade; build facades once and reuse them.
func WithTransport(rc *resty.Client) Option {
	return func(o *clientOptions) {
		o.transport = rc
	}
}

// New creates a facade. Without WithTransport a new resty client is created
// for this facade only; its response body size is unlimited.
func New(base Config, log Logger, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logger.Nop()
	}

	transport := o.transport
	if transport == nil {
		transport = resty.New()
		if rl, ok := log.(resty.Logger); ok {
			transport.SetLogger(rl)
		}
	}

	c := &Client{
		base:      Merge(base, Config{}),
		logger:    log,
		transport: transport,
	}
	c.installHooks()
	return c
}

type callKey struct{}

// call identifies a request issued through a specific facade.
type call struct {
	owner  *Client
	method Method
	url    string
}

func callFrom(req *resty.Request) (call, bool) {
	if req == nil {
		return call{}, false
	}
	info, ok := req.Context().Value(callKey{}).(call)
	return info, ok
}

// installHooks registers the logging interceptors. They only observe: the
// response or error reaches the caller unchanged. Calls made on a shared
// transport by anything other than this facade are ignored.
func (c *Client) installHooks() {
	c.transport.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		info, ok := callFrom(resp.Request)
		if !ok || info.owner != c {
			return nil
		}
		c.logger.Debugf("%s | %s: %d", info.method, info.url, resp.StatusCode())
		return nil
	})

	c.transport.OnError(func(req *resty.Request, err error) {
		info, ok := callFrom(req)
		if !ok || info.owner != c {
			return
		}
		status := "N/A"
		var respErr *resty.ResponseError
		if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.RawResponse != nil {
			status = strconv.Itoa(respErr.Response.StatusCode())
		}
		c.logger.Debugf("%s | %s: %s", info.method, info.url, status)
	})
}

// Describe builds the outbound descriptor for a call: base config merged
// with override, override winning per key.
func (c *Client) Describe(method Method, url string, body any, override *Config) Descriptor {
	cfg := c.base
	if override != nil {
		cfg = Merge(c.base, *override)
	}
	return Descriptor{
		Method: method,
		URL:    url,
		Body:   body,
		Config: cfg,
	}
}

// Response is a successful exchange.
type Response[T any] struct {
	Data       T
	Headers    http.Header
	StatusCode int
}

// Request issues method against url. T receives the decoded JSON or XML
// body; []byte and string receive the raw body. Non-2xx responses and
// transport failures are returned as *TransportError.
func Request[T any](ctx context.Context, c *Client, method Method, url string, body any, override *Config) (*Response[T], error) {
	if err := method.validate(); err != nil {
		return nil, err
	}
	d := c.Describe(method, url, body, override)

	params := make(map[string]string, len(d.Config.Params))
	for k, v := range d.Config.Params {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("rendering query param %q: %w", k, err)
		}
		params[k] = s
	}

	ctx = context.WithValue(ctx, callKey{}, call{owner: c, method: d.Method, url: d.URL})

	req := c.transport.R().
		SetContext(ctx).
		SetHeaders(d.Config.Headers).
		SetQueryParams(params)
	if d.Body != nil {
		req.SetBody(d.Body)
	}

	var out T
	raw := false
	switch any(&out).(type) {
	case *[]byte, *string:
		raw = true
	default:
		req.SetResult(&out)
	}

	resp, err := req.Execute(strings.ToUpper(string(d.Method)), d.target())
	if err != nil {
		te := &TransportError{Method: d.Method, URL: d.URL, Err: err}
		if resp != nil && resp.RawResponse != nil {
			te.HasResponse = true
			te.StatusCode = resp.StatusCode()
			te.Headers = resp.Header()
			te.Body = resp.Body()
		}
		return nil, te
	}

	if !resp.IsSuccess() {
		return nil, &TransportError{
			Method:      d.Method,
			URL:         d.URL,
			HasResponse: true,
			StatusCode:  resp.StatusCode(),
			Headers:     resp.Header(),
			Body:        resp.Body(),
		}
	}

	if raw {
		switch p := any(&out).(type) {
		case *[]byte:
			*p = resp.Body()
		case *string:
			*p = resp.String()
		}
	}

	return &Response[T]{
		Data:       out,
		Headers:    resp.Header(),
		StatusCode: resp.StatusCode(),
	}, nil
}

// Get issues a GET without a body.
func Get[T any](ctx context.Context, c *Client, url string, cfg *Config) (*Response[T], error) {
	return Request[T](ctx, c, MethodGet, url, nil, cfg)
}

// Post issues a POST.
func Post[T any](ctx context.Context, c *Client, url string, body any, cfg *Config) (*Response[T], error) {
	return Request[T](ctx, c, MethodPost, url, body, cfg)
}

// Put issues a PUT.
func Put[T any](ctx context.Context, c *Client, url string, body any, cfg *Config) (*Response[T], error) {
	return Request[T](ctx, c, MethodPut, url, body, cfg)
}

// Patch issues a PATCH.
func Patch[T any](ctx context.Context, c *Client, url string, body any, cfg *Config) (*Response[T], error) {
	return Request[T](ctx, c, MethodPatch, url, body, cfg)
}

// Delete issues a DELETE. body may be nil.
func Delete[T any](ctx context.Context, c *Client, url string, body any, cfg *Config) (*Response[T], error) {
	return Request[T](ctx, c, MethodDelete, url, body, cfg)
}
