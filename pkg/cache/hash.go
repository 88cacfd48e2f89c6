package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key builds a namespaced cache key from a free-text query.
// Queries are hashed so that arbitrary user text maps to safe identifiers
// (no filesystem special characters, bounded length).
//
// Example: Key("images", "FitTracker Hype app interface mobile")
func Key(namespace, query string) string {
	return namespace + ":" + Hash([]byte(query))
}
