package cache

// Keyer builds cache keys for the fetch layer. Splitting key
// construction from storage keeps key formats stable across backends
// and lets shared deployments scope keys per tenant or per key-format
// version.
type Keyer interface {
	// HTTPKey builds a key for a raw HTTP response body.
	HTTPKey(namespace, url string) string
}

// DefaultKeyer is the standard key format.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, url string) string {
	return hashKey("http:"+namespace, url)
}

// ScopedKeyer wraps a Keyer with a prefix so different users, services,
// or key-format versions get separate namespaces in a shared backend.
// Bumping a version prefix invalidates every earlier entry without
// touching the store.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, url string) string {
	return k.prefix + k.inner.HTTPKey(namespace, url)
}
