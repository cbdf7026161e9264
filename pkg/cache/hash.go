package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per cached stage. Layouts are deterministic so the TTL
// only bounds disk usage; artifacts are cheaper to recompute.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// GraphKey is the cache key for a concept-map layout result. The spec
// hash covers the normalized input; strategy and seed change the output
// so they are part of the key.
func GraphKey(specHash, strategy string, seed int64) string {
	return hashKey("graph", specHash, strategy, seed)
}

// TreeKey is the cache key for a mind-map layout result.
func TreeKey(specHash, complexity string) string {
	return hashKey("tree", specHash, complexity)
}

// ArtifactKey is the cache key for one rendered output derived from a
// layout. The layout hash covers the enhanced spec; format and labeling
// change the bytes so they are part of the key.
func ArtifactKey(layoutHash, format string, labeled bool) string {
	return hashKey("artifact", layoutHash, format, labeled)
}
