package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "stage:digest" cache key from the key components. The
// components are JSON-marshaled before hashing so that option structs key
// by value, not by pointer identity. The digest is the full SHA-256 hex
// string; truncating it would invite collisions between near-identical
// graphs.
func hashKey(stage string, components ...any) string {
	data, _ := json.Marshal(components)
	return stage + ":" + Hash(data)
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// Graph, image, and segmentation bytes are all content-addressed with it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
