package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     Config
		override Config
		want     Config
	}{
		{
			name:     "override wins per header",
			base:     Config{Headers: map[string]string{"X-A": "1"}},
			override: Config{Headers: map[string]string{"X-A": "2", "X-B": "3"}},
			want: Config{
				Headers: map[string]string{"X-A": "2", "X-B": "3"},
				Params:  map[string]any{},
			},
		},
		{
			name:     "base only keys kept",
			base:     Config{Headers: map[string]string{"X-A": "1", "X-C": "c"}},
			override: Config{Headers: map[string]string{"X-A": "2"}},
			want: Config{
				Headers: map[string]string{"X-A": "2", "X-C": "c"},
				Params:  map[string]any{},
			},
		},
		{
			name:     "header keys are case sensitive",
			base:     Config{Headers: map[string]string{"x-a": "1"}},
			override: Config{Headers: map[string]string{"X-A": "2"}},
			want: Config{
				Headers: map[string]string{"x-a": "1", "X-A": "2"},
				Params:  map[string]any{},
			},
		},
		{
			name:     "params merge per key",
			base:     Config{Params: map[string]any{"page": 1, "q": "x"}},
			override: Config{Params: map[string]any{"page": 2}},
			want: Config{
				Headers: map[string]string{},
				Params:  map[string]any{"page": 2, "q": "x"},
			},
		},
		{
			name:     "base url override",
			base:     Config{BaseURL: "https://a.example"},
			override: Config{BaseURL: "https://b.example"},
			want: Config{
				BaseURL: "https://b.example",
				Headers: map[string]string{},
				Params:  map[string]any{},
			},
		},
		{
			name:     "empty override keeps base url",
			base:     Config{BaseURL: "https://a.example"},
			override: Config{},
			want: Config{
				BaseURL: "https://a.example",
				Headers: map[string]string{},
				Params:  map[string]any{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.base, tt.override))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := Config{Headers: map[string]string{"X-A": "1"}, Params: map[string]any{"a": 1}}
	override := Config{Headers: map[string]string{"X-A": "2"}, Params: map[string]any{"a": 2}}

	merged := Merge(base, override)
	merged.Headers["X-New"] = "n"

	assert.Equal(t, map[string]string{"X-A": "1"}, base.Headers)
	assert.Equal(t, map[string]any{"a": 1}, base.Params)
	assert.Equal(t, map[string]string{"X-A": "2"}, override.Headers)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "get", want: MethodGet},
		{in: "GET", want: MethodGet},
		{in: "Post", want: MethodPost},
		{in: " put ", want: MethodPut},
		{in: "PATCH", want: MethodPatch},
		{in: "delete", want: MethodDelete},
		{in: "HEAD", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptor_Target(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{name: "no base", d: Descriptor{URL: "/x"}, want: "/x"},
		{name: "joins", d: Descriptor{URL: "/x", Config: Config{BaseURL: "http://h/api/"}}, want: "http://h/api/x"},
		{name: "joins without slash", d: Descriptor{URL: "x", Config: Config{BaseURL: "http://h"}}, want: "http://h/x"},
		{name: "absolute url wins", d: Descriptor{URL: "https://o/y", Config: Config{BaseURL: "http://h"}}, want: "https://o/y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.target())
		})
	}
}
