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

// Keyer builds cache keys.
type Keyer interface {
	// AssetKey returns the key for the bytes behind an image reference.
	AssetKey(ref string) string
}

// DefaultKeyer produces keys of the form "asset:<sha256(ref)>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AssetKey implements Keyer.
func (DefaultKeyer) AssetKey(ref string) string {
	return "asset:" + Hash([]byte(ref))
}

// ScopedKeyer prefixes every key, isolating deployments that share a
// backend such as one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AssetKey implements Keyer.
func (k *ScopedKeyer) AssetKey(ref string) string {
	return k.prefix + k.inner.AssetKey(ref)
}
