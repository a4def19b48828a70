package cache

// ScopedKeyer prefixes every key of an inner Keyer. The file backend uses it
// to keep entries of differently prefixed configurations apart when they
// share one cache directory; RedisCache applies its prefix itself.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "ttm:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

// TreeKey generates a prefixed tree key.
func (k *ScopedKeyer) TreeKey(payloadHash string) string {
	return k.prefix + k.inner.TreeKey(payloadHash)
}
