package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching expensive results
// (query embeddings, full answers)
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key from arbitrary input text
func Key(kind, input string) string {
	hash := sha256.Sum256([]byte(input))
	return "veritas:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
