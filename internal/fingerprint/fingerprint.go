// Package fingerprint derives stable opaque keys from client-supplied
// values so raw addresses and tokens are never used as map or redis keys.
package fingerprint

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Of hashes the parts into a hex-encoded blake2b-256 digest. Parts are
// joined with a separator byte so ("ab","c") and ("a","bc") differ.
func Of(parts ...string) string {
	sum := blake2b.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Short returns the first 16 hex characters of Of, for log lines.
func Short(parts ...string) string {
	return Of(parts...)[:16]
}
