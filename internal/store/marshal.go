package store

import (
	"fmt"

	"github.com/roach88/extarray/internal/value"
)

// marshalElement converts an element to canonical JSON TEXT for storage.
// A nil element is stored as the missing sentinel.
func marshalElement(obj value.Object) (string, error) {
	key, err := obj.CanonicalKey()
	if err != nil {
		return "", fmt.Errorf("marshal element: %w", err)
	}
	return key, nil
}

// unmarshalElement parses canonical JSON TEXT back into an element.
// Large integers survive the round trip; value.Unmarshal decodes numbers
// without going through float64.
func unmarshalElement(data string) (value.Object, error) {
	if data == "" || data == "{}" {
		return value.Object{}, nil
	}
	v, err := value.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal element: %w", err)
	}
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("unmarshal element: expected object, got %s", value.Kind(v))
	}
	return obj, nil
}
