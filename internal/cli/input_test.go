package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/value"
)

func TestDetectInputFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.json", InputJSON},
		{"dir/A.JSON", InputJSON},
		{"a.jsonl", InputJSONL},
		{"a.ndjson", InputJSONL},
		{"a.yaml", InputYAML},
		{"a.yml", InputYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := detectInputFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detectInputFormat("a.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input-format")
}

func TestParseDocuments(t *testing.T) {
	want := []value.Value{
		value.Object{"a": value.Int(1)},
		value.Object{},
		value.Object{"b": value.Array{value.String("x"), value.Null{}}},
	}

	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"json", InputJSON, `[{"a":1},{},{"b":["x",null]}]`},
		{"jsonl", InputJSONL, "{\"a\":1}\n{}\n\n{\"b\":[\"x\",null]}\n"},
		{"jsonl without trailing newline", InputJSONL, "{\"a\":1}\n{}\n{\"b\":[\"x\",null]}"},
		{"yaml sequence", InputYAML, "- a: 1\n- {}\n- b: [x, null]\n"},
		{"yaml stream", InputYAML, "a: 1\n---\n{}\n---\nb: [x, null]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDocuments([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, value.Equal(want[i], got[i]), "element %d: got %v", i, got[i])
			}
		})
	}
}

func TestParseDocuments_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   string
	}{
		{"json not a list", InputJSON, `{"a":1}`, "expected a list"},
		{"json malformed", InputJSON, `[{"a":`, "parse JSON"},
		{"jsonl bad line", InputJSONL, "{}\n{oops}\n", "line 2"},
		{"yaml malformed", InputYAML, "a: [1\n", "parse YAML"},
		{"yaml non-string keys", InputYAML, "- {1: a}\n", "object keys must be strings"},
		{"yaml nested non-string keys", InputYAML, "- {a: {true: 1}}\n", "object keys must be strings"},
		{"unknown format", "csv", "", "unknown input format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDocuments([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseDocuments_EmptyInput(t *testing.T) {
	got, err := parseDocuments([]byte("[]"), InputJSON)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = parseDocuments(nil, InputJSONL)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = parseDocuments(nil, InputYAML)
	require.NoError(t, err)
	assert.Empty(t, got)
}
