package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainElement = "extarray/element/v1"
	DomainColumn  = "extarray/column/v1"
)

// hashWithDomain computes SHA-256 over domain + 0x00 + each part, with a
// 0x00 after every part. The separators keep part boundaries unambiguous.
func hashWithDomain(domain string, parts ...[]byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0x00})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ElementDigest returns the content digest of a single value.
func ElementDigest(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("ElementDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainElement, canonical), nil
}

// ColumnDigest returns the content digest of an ordered list of canonical
// keys. Order matters: a permuted column has a different digest.
func ColumnDigest(keys []string) string {
	parts := make([][]byte, len(keys))
	for i, k := range keys {
		parts[i] = []byte(k)
	}
	return hashWithDomain(DomainColumn, parts...)
}
