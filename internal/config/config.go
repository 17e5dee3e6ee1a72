// Package config loads facade and logger settings for the CLI.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/devsecops-cli/devsecops-cli/internal/api"
)

// EnvPrefix prefixes every environment override, e.g. DEVSECOPS_BASE_URL.
const EnvPrefix = "DEVSECOPS"

// DefaultPrefix is the logger prefix used when none is configured.
const DefaultPrefix = "devsecops"

// LogConfig configures the console logger.
type LogConfig struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	Color  bool   `mapstructure:"color" yaml:"color"`
}

// Config is the on-disk configuration. Header names read from a file are
// lowercased by viper; API canonicalises them.
type Config struct {
	BaseURL string            `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Headers map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
	Params  map[string]any    `mapstructure:"params" yaml:"params,omitempty"`
	Log     LogConfig         `mapstructure:"log" yaml:"log"`
}

// Logger is where Load reports which file it used.
type Logger interface {
	Debugf(format string, v ...any)
}

// Load reads path, or ./devsecops.yaml when path is empty, then applies
// DEVSECOPS_* environment overrides. A missing default file is not an error.
func Load(path string, log Logger) (*Config, error) {
	v := viper.New()
	v.SetDefault("base_url", "")
	v.SetDefault("log.prefix", DefaultPrefix)
	v.SetDefault("log.color", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("devsecops")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		log.Debugf("config file not found, using defaults and environment")
	} else {
		log.Debugf("loaded config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the base URL, header names and parameter values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.By(validateBaseURL)),
		validation.Field(&c.Headers, validation.By(validateHeaders)),
		validation.Field(&c.Params, validation.By(validateParams)),
	)
}

// API returns the facade base configuration. Header names are
// canonicalised so that later overrides replace them instead of sitting
// next to a lowercased copy.
func (c *Config) API() api.Config {
	var headers map[string]string
	if c.Headers != nil {
		headers = make(map[string]string, len(c.Headers))
		for name, value := range c.Headers {
			headers[http.CanonicalHeaderKey(name)] = value
		}
	}
	return api.Config{
		BaseURL: c.BaseURL,
		Headers: headers,
		Params:  c.Params,
	}
}

func validateBaseURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if raw == "" {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if parsed.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}

func validateHeaders(value interface{}) error {
	headers, ok := value.(map[string]string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a map of strings")
	}
	for name := range headers {
		if strings.TrimSpace(name) == "" {
			return validation.NewError("validation_empty_header", "header name cannot be empty")
		}
		if strings.ContainsAny(name, " \t\r\n:") {
			return validation.NewError("validation_invalid_header", fmt.Sprintf("invalid header name %q", name))
		}
	}
	return nil
}

func validateParams(value interface{}) error {
	params, ok := value.(map[string]any)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a map")
	}
	for name, v := range params {
		if _, err := cast.ToStringE(v); err != nil {
			return validation.NewError("validation_invalid_param", fmt.Sprintf("param %q must be a string or number", name))
		}
	}
	return nil
}
