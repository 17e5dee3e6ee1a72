package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const findings = `{"scanner":"trivy","count":2,"findings":[{"id":"CVE-1","severity":"high"},{"id":"CVE-2","severity":"low"}]}`

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "YAML", "Raw"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte(findings), Options{Format: FormatJSON}))

	assert.JSONEq(t, findings, buf.String())
	assert.Contains(t, buf.String(), "\n  \"scanner\": \"trivy\"")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte(`{"name":"svc","version":"1.0","port":8080}`), Options{Format: FormatYAML}))

	assert.Equal(t, "name: svc\nversion: \"1.0\"\nport: 8080\n", buf.String())

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.0", decoded["version"])
}

func TestRender_Query(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		format Format
		want   string
	}{
		{name: "number", query: "count", format: FormatJSON, want: "2\n"},
		{name: "string json", query: "scanner", format: FormatJSON, want: "\"trivy\"\n"},
		{name: "string raw", query: "scanner", format: FormatRaw, want: "trivy\n"},
		{name: "array path", query: "findings.#.id", format: FormatRaw, want: "[\"CVE-1\",\"CVE-2\"]\n"},
		{name: "filter", query: `findings.#(severity=="high").id`, format: FormatRaw, want: "CVE-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, []byte(findings), Options{Format: tt.format, Query: tt.query}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRender_QueryNoMatch(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, []byte(findings), Options{Format: FormatJSON, Query: "missing"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestRender_NonJSONPassthrough(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte("plain text"), Options{Format: FormatYAML}))
	assert.Equal(t, "plain text\n", buf.String())

	err := Render(&buf, []byte("plain text"), Options{Query: "a"})
	assert.Error(t, err)
}

func TestRender_Schema(t *testing.T) {
	schema := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{
		"type": "object",
		"required": ["scanner", "count"],
		"properties": {"count": {"type": "integer", "minimum": 0}}
	}`), 0o600))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []byte(findings), Options{Format: FormatRaw, Schema: schema}))

	buf.Reset()
	err := Render(&buf, []byte(`{"count":-1}`), Options{Format: FormatRaw, Schema: schema})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
	assert.Empty(t, buf.String())
}
