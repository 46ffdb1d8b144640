package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each caller its
// own namespace on a shared backend:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "slidelint:api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, defaulting to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey returns the prefixed report key.
func (k *ScopedKeyer) ReportKey(deckHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(deckHash, opts)
}

// RelationsKey returns the prefixed relations key.
func (k *ScopedKeyer) RelationsKey(deckHash string, opts RelationsKeyOpts) string {
	return k.prefix + k.inner.RelationsKey(deckHash, opts)
}
