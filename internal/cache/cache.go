package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching oracle judgments
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ClassifyKey generates a cache key for a comment classification. Keyed on
// the text alone: identical texts get identical oracle judgments.
func ClassifyKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "signalsift:classify:v1:" + hex.EncodeToString(hash[:])
}
