package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SourceHash identifies the DOT source an image is rendered from.
func SourceHash(dot string) string {
	sum := sha256.Sum256([]byte(dot))
	return hex.EncodeToString(sum[:])
}

// digest hashes the JSON encoding of parts. Values that fail to encode
// contribute nothing.
func digest(parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Color    bool    `json:"color"`
	Detailed bool    `json:"detailed"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the source
	// identified by sourceHash (the [SourceHash] of the DOT text).
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<digest>", where the digest covers
// the source hash and every option, so keys stay readable in logs while any
// change to the rendering yields a new key.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + opts.Format + ":" + digest(sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so that a new release never serves artifacts rendered by an older
// one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
