// Package hashkey computes the cache key used to gate reuse of the
// persistent ELF/DWARF cache.
package hashkey

import (
	"crypto/sha512"
	"encoding/hex"
	"io"
	"os"
)

// SchemaVersion is bumped whenever the cache's table layout changes.
// A stored meta row whose schema_version differs from this value is
// treated as a CacheSchemaMismatch and triggers a rebuild.
const SchemaVersion = 1

// OfBytes returns the hex-encoded SHA-512 of the exact input bytes.
//
// The hash is defined over the file's bytes, not over a memory mapping:
// on systems where a mapped view's size can differ from the file's size
// (sparse files), hashing the mapping would give inputs with identical
// file content different keys.
func OfBytes(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}

// OfFile hashes a file's contents by path, reading it as a plain byte
// stream (never through a memory mapping) so the hash is stable
// regardless of how the caller later chooses to access the bytes.
func OfFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha512.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
