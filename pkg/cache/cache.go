// Package cache stores analysis results keyed by deck content.
//
// Analysis is deterministic: the same deck bytes with the same options
// always produce the same report. Caching therefore never changes a result;
// it only skips recomputation for large decks and repeated API calls.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] turns a deck hash plus the options that affect the result into
// a cache key. [ScopedKeyer] adds a prefix so several tools can share one
// backend without collisions.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	TTLReport    = 24 * time.Hour
	TTLRelations = 24 * time.Hour
	TTLCanvas    = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts are the options that change an overlap report.
type ReportKeyOpts struct {
	Slide                  int     `json:"slide"`
	Label                  string  `json:"label"`
	MuteContainment        bool    `json:"mute_containment"`
	IgnoreLines            bool    `json:"ignore_lines"`
	IgnoreDecorativeShapes bool    `json:"ignore_decorative_shapes"`
	CheckBounds            bool    `json:"check_bounds"`
	Coarse                 float64 `json:"coarse"`
	Fine                   float64 `json:"fine"`
}

// RelationsKeyOpts are the options that change a relation table.
type RelationsKeyOpts struct {
	Slide  int     `json:"slide"`
	Coarse float64 `json:"coarse"`
	Fine   float64 `json:"fine"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey keys an overlap report for one slide of a deck.
	ReportKey(deckHash string, opts ReportKeyOpts) string

	// RelationsKey keys the relation table for one slide of a deck.
	RelationsKey(deckHash string, opts RelationsKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey returns "report:<sha256>".
func (DefaultKeyer) ReportKey(deckHash string, opts ReportKeyOpts) string {
	return hashKey("report", deckHash, opts)
}

// RelationsKey returns "relations:<sha256>".
func (DefaultKeyer) RelationsKey(deckHash string, opts RelationsKeyOpts) string {
	return hashKey("relations", deckHash, opts)
}
