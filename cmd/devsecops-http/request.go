package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/devsecops-cli/devsecops-cli/internal/api"
	"github.com/devsecops-cli/devsecops-cli/internal/config"
	"github.com/devsecops-cli/devsecops-cli/internal/logger"
	"github.com/devsecops-cli/devsecops-cli/internal/output"
)

type requestOptions struct {
	configPath string
	prefix     string
	color      bool
	headers    []string
	params     []string
	requestID  bool
	query      string
	output     string
	schema     string
}

func verbCmd(method api.Method, opts *requestOptions) *cobra.Command {
	cmd := &cobra.Command{
		Short: fmt.Sprintf("Send a %s request", strings.ToUpper(string(method))),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, method, args[0], args[1:], opts)
		},
	}

	switch method {
	case api.MethodGet:
		cmd.Use = "get <url>"
		cmd.Args = cobra.ExactArgs(1)
	case api.MethodDelete:
		cmd.Use = "delete <url> [body]"
		cmd.Args = cobra.RangeArgs(1, 2)
	default:
		cmd.Use = string(method) + " <url> <body>"
		cmd.Long = `The body is sent as given; "@path" reads it from a file.`
		cmd.Args = cobra.ExactArgs(2)
	}
	return cmd
}

func requestCmd(opts *requestOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "request <method> <url> [body]",
		Short: "Send a request with any supported method",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := api.ParseMethod(args[0])
			if err != nil {
				return err
			}
			return runRequest(cmd, method, args[1], args[2:], opts)
		},
	}
}

func runRequest(cmd *cobra.Command, method api.Method, url string, rest []string, opts *requestOptions) error {
	stderr := cmd.ErrOrStderr()

	prefix := opts.prefix
	if prefix == "" {
		prefix = config.DefaultPrefix
	}
	log := logger.New(prefix, logger.WithWriter(stderr), logger.WithColor(opts.color))

	cfg, err := config.Load(opts.configPath, log)
	if err != nil {
		return err
	}
	if opts.prefix == "" {
		prefix = cfg.Log.Prefix
	}
	log = logger.New(prefix, logger.WithWriter(stderr), logger.WithColor(opts.color || cfg.Log.Color))

	format, err := output.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	var body any
	if len(rest) > 0 {
		raw, readErr := readBody(rest[0])
		if readErr != nil {
			return readErr
		}
		body = raw
	}

	override, err := opts.override(body, cfg.Headers)
	if err != nil {
		return err
	}
	if opts.requestID {
		log.Info(logger.Text("request id " + override.Headers["X-Request-Id"]))
	}

	client := api.New(cfg.API(), log)
	resp, err := api.Request[[]byte](cmd.Context(), client, method, url, body, override)
	if err != nil {
		var te *api.TransportError
		if errors.As(err, &te) && len(te.Body) > 0 {
			log.Warn(logger.Text(string(te.Body)))
		}
		return err
	}

	return output.Render(cmd.OutOrStdout(), resp.Data, output.Options{
		Format: format,
		Query:  opts.query,
		Schema: opts.schema,
	})
}

// override builds the per-call config from flags. JSON bodies get a JSON
// content type unless one is already configured.
func (o *requestOptions) override(body any, base map[string]string) (*api.Config, error) {
	cfg := &api.Config{
		Headers: make(map[string]string, len(o.headers)),
		Params:  make(map[string]any, len(o.params)),
	}

	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q: want \"Name: value\"", h)
		}
		cfg.Headers[http.CanonicalHeaderKey(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	for _, p := range o.params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q: want key=value", p)
		}
		cfg.Params[key] = value
	}

	if o.requestID {
		cfg.Headers["X-Request-Id"] = uuid.NewString()
	}

	if s, ok := body.(string); ok && gjson.Valid(s) && !hasHeader(cfg.Headers, base, "Content-Type") {
		cfg.Headers["Content-Type"] = "application/json"
	}
	return cfg, nil
}

func hasHeader(override, base map[string]string, name string) bool {
	for _, m := range []map[string]string{override, base} {
		for k := range m {
			if strings.EqualFold(k, name) {
				return true
			}
		}
	}
	return false
}

func readBody(arg string) (string, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(data), nil
}
