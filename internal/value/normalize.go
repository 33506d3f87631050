package value

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// NormalizeNFC returns a copy of v with every string and object key in
// Unicode Normalization Form C. Canonical keys compare bytes, so composed
// and decomposed spellings stay distinct unless values are normalized
// before they enter a column.
//
// Two keys of one object that normalize to the same string are an error.
// Invalid UTF-8 is left for Validate to report.
func NormalizeNFC(v Value) (Value, error) {
	return normalizeNFC(v, "$")
}

func normalizeNFC(v Value, path string) (Value, error) {
	switch val := v.(type) {
	case String:
		return String(norm.NFC.String(string(val))), nil
	case Array:
		if val == nil {
			return val, nil
		}
		out := make(Array, len(val))
		for i, elem := range val {
			n, err := normalizeNFC(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case Object:
		if val == nil {
			return val, nil
		}
		out := make(Object, len(val))
		for _, k := range val.SortedKeys() {
			nk := norm.NFC.String(k)
			if _, dup := out[nk]; dup {
				return nil, fmt.Errorf("%s: keys %q collide after NFC normalization", path, nk)
			}
			n, err := normalizeNFC(val[k], path+"."+nk)
			if err != nil {
				return nil, err
			}
			out[nk] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
