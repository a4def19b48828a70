// Package cache stores computed layouts keyed by tree content and settings.
//
// Three backends share the [Cache] interface:
//
//   - [NullCache] never stores anything
//   - [FileCache] keeps entries under a directory, for the CLI
//   - [RedisCache] keeps entries in Redis, for the HTTP server
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the tree together with
// every setting that changes the output, so a cache hit is always a layout
// the engine would have produced anyway.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout = 7 * 24 * time.Hour
	TTLTree   = 24 * time.Hour
)

// LayoutKeyOpts holds the settings that change a layout result.
type LayoutKeyOpts struct {
	GridSpacing   float64 `json:"grid_spacing"`
	NodeSize      float64 `json:"node_size"`
	Unit          string  `json:"unit"`
	DividerMargin float64 `json:"divider_margin"`
	DividerOffset float64 `json:"divider_offset"`
	PreFilled     bool    `json:"prefilled"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of the tree with the given
	// content hash under opts.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// TreeKey returns the key of a decoded tree, by payload hash.
	TreeKey(payloadHash string) string
}

// DefaultKeyer produces "layout:<sha256>" and "tree:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes treeHash together with opts.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// TreeKey returns "tree:" + payloadHash.
func (DefaultKeyer) TreeKey(payloadHash string) string {
	return "tree:" + payloadHash
}

var _ Keyer = DefaultKeyer{}
