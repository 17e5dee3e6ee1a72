// Package api provides a request facade over a resty HTTP client.
package api

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Config holds request defaults. A facade keeps one as its base; callers may
// pass another per call to override it.
type Config struct {
	// BaseURL is prepended to relative request URLs when set
	BaseURL string
	// Headers are sent as given; keys are case-sensitive here
	Headers map[string]string
	// Params are query parameters; values are strings or numbers
	Params map[string]any
}

// Merge combines base and override. Override wins per key for both Headers
// and Params; keys present only in base are kept. Neither input is mutated.
func Merge(base, override Config) Config {
	merged := Config{
		BaseURL: base.BaseURL,
		Headers: make(map[string]string, len(base.Headers)+len(override.Headers)),
		Params:  make(map[string]any, len(base.Params)+len(override.Params)),
	}
	if override.BaseURL != "" {
		merged.BaseURL = override.BaseURL
	}
	maps.Copy(merged.Headers, base.Headers)
	maps.Copy(merged.Headers, override.Headers)
	maps.Copy(merged.Params, base.Params)
	maps.Copy(merged.Params, override.Params)
	return merged
}

// Method is a lowercase HTTP verb.
type Method string

// Supported methods.
const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodPut    Method = "put"
	MethodPatch  Method = "patch"
	MethodDelete Method = "delete"
)

// ErrUnsupportedMethod is returned for verbs outside get/post/put/patch/delete.
var ErrUnsupportedMethod = errors.New("unsupported method")

// ParseMethod canonicalises s case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if err := m.validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) validate() error {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(m))
	}
}

// Descriptor is a fully merged outbound request.
type Descriptor struct {
	Method Method
	URL    string
	Body   any
	Config Config
}

// target resolves URL against Config.BaseURL. Absolute URLs are left alone.
func (d Descriptor) target() string {
	if d.Config.BaseURL == "" || strings.Contains(d.URL, "://") {
		return d.URL
	}
	return strings.TrimSuffix(d.Config.BaseURL, "/") + "/" + strings.TrimPrefix(d.URL, "/")
}
