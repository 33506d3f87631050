package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/extarray/internal/value"
)

// Input formats accepted by import.
const (
	InputJSON  = "json"  // a single JSON array of objects
	InputJSONL = "jsonl" // one JSON object per line
	InputYAML  = "yaml"  // a YAML sequence, or a stream of documents
)

// ValidInputFormats defines the allowed --input-format values.
var ValidInputFormats = []string{InputJSON, InputJSONL, InputYAML}

// detectInputFormat picks an input format from the file extension.
func detectInputFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return InputJSON, nil
	case ".jsonl", ".ndjson":
		return InputJSONL, nil
	case ".yaml", ".yml":
		return InputYAML, nil
	}
	return "", fmt.Errorf("cannot infer input format from %q: use --input-format", filepath.Base(path))
}

// parseDocuments decodes data and returns one value per element.
func parseDocuments(data []byte, format string) ([]value.Value, error) {
	switch format {
	case InputJSON:
		return parseJSON(data)
	case InputJSONL:
		return parseJSONL(data)
	case InputYAML:
		return parseYAML(data)
	}
	return nil, fmt.Errorf("unknown input format %q: must be one of %v", format, ValidInputFormats)
}

func parseJSON(data []byte) ([]value.Value, error) {
	v, err := value.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	arr, ok := v.(value.Array)
	if !ok {
		return nil, fmt.Errorf("parse JSON: expected a list of objects, got %s", value.Kind(v))
	}
	return arr, nil
}

func parseJSONL(data []byte) ([]value.Value, error) {
	var out []value.Value
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		v, err := value.Unmarshal(text)
		if err != nil {
			return nil, fmt.Errorf("parse JSON Lines: line %d: %w", line, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse JSON Lines: %w", err)
	}
	return out, nil
}

// parseYAML accepts either one document holding a sequence of elements or a
// stream of documents, one element each.
func parseYAML(data []byte) ([]value.Value, error) {
	var docs []any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 1 {
		if seq, ok := docs[0].([]any); ok {
			docs = seq
		}
	}

	out := make([]value.Value, len(docs))
	for i, doc := range docs {
		v, err := value.FromAny(doc)
		if err != nil {
			return nil, fmt.Errorf("parse YAML: element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
