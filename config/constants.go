package config

import "time"

// News Constants
const (
	// DefaultNewsLimit is the article count returned when the request has no limit
	DefaultNewsLimit = 20

	// MaxNewsLimit caps the article count a single request may ask for
	MaxNewsLimit = 100
)

// Stock Constants
const (
	// DefaultHistoryDays is the historical window returned when the request has no days
	DefaultHistoryDays = 30

	// MaxHistoryDays caps the historical window a single request may ask for
	MaxHistoryDays = 365
)

// Transport Constants
const (
	// UpstreamTimeout bounds a single upstream API request
	UpstreamTimeout = 30 * time.Second

	// DefaultCacheTTL is how long normalized records stay in the cache
	DefaultCacheTTL = 5 * time.Minute
)
