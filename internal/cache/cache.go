// Package cache is the fingerprint cache: a content-addressed store keyed by
// (purpose, normalized query) pairs. Writes are whole-value replacements and
// entries persist until externally cleared; callers own invalidation. The
// missing retention policy is a known gap for production hardening.
package cache

import "context"

// Purpose tags discriminate what a cached payload holds.
const (
	PurposeCourses  = "courses"
	PurposeTimeline = "timeline"
)

type Store interface {
	// Get returns the payload for (purpose, query), reporting whether a value
	// was present. A miss is not an error.
	Get(ctx context.Context, purpose, query string) (string, bool, error)
	// Put replaces the whole value for (purpose, query). A failed write must
	// not corrupt a prior valid entry for the same key.
	Put(ctx context.Context, purpose, query, payload string) error
}

// Fingerprint builds the cache key. Query text is case-folded and whitespace
// runs collapse to a single underscore, so distinct surface forms of the same
// goal collide deterministically.
func Fingerprint(purpose, query string) string {
	return purpose + ":" + normalizeQuery(query)
}
