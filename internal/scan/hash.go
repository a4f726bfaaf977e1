package scan

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest hashes the exact document bytes at scan time. The digest is kept
// for integrity checking only, never for deduplication.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
