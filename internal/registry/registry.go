// Package registry stores CODIE source text addressed by its sha256 hash.
// Two implementations are provided: an in-memory one for tests and embedding,
// and a bbolt-backed one that persists across processes.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOf returns the hex-encoded sha256 digest of source text.
func HashOf(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
