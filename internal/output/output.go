// Package output renders response bodies for the command line.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format selects how a body is written.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatRaw  Format = "raw"
)

// ErrNoMatch is returned when a query selects nothing.
var ErrNoMatch = errors.New("query matched nothing")

// ParseFormat accepts json, yaml or raw in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatRaw:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options controls Render.
type Options struct {
	Format Format
	// Query is a gjson path applied before formatting
	Query string
	// Schema is a JSON schema file the whole body must satisfy
	Schema string
}

// Render validates, filters and writes body to w. Bodies that are not
// JSON are written unchanged whatever the format.
func Render(w io.Writer, body []byte, opts Options) error {
	if opts.Schema != "" {
		if err := Validate(body, opts.Schema); err != nil {
			return err
		}
	}

	isJSON := gjson.ValidBytes(body)
	if opts.Query != "" {
		if !isJSON {
			return fmt.Errorf("query %q: response is not JSON", opts.Query)
		}
		res := gjson.GetBytes(body, opts.Query)
		if !res.Exists() {
			return fmt.Errorf("%w: %s", ErrNoMatch, opts.Query)
		}
		if opts.Format == FormatRaw && res.Type == gjson.String {
			body = []byte(res.Str)
			isJSON = false
		} else {
			body = []byte(res.Raw)
		}
	}

	if !isJSON || opts.Format == FormatRaw {
		return writeLine(w, body)
	}

	switch opts.Format {
	case FormatYAML:
		out, err := toYAML(body)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := w.Write(pretty.Pretty(body))
		return err
	}
}

// Validate checks body against the JSON schema at schemaPath.
func Validate(body []byte, schemaPath string) error {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("resolving schema path: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(abs)),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("validating against schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("response does not match schema: %s", strings.Join(msgs, "; "))
}

// toYAML re-encodes a JSON document as YAML, keeping key order.
func toYAML(body []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(body, &node); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// resetStyle drops the flow and quoting styles yaml picked up from JSON
// syntax so the output is block YAML.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
