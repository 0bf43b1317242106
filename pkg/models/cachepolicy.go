package models

// CachePolicy controls how long and whether a collection's content is kept in
// the local cache.
type CachePolicy struct {
	InheritFromParent bool `json:"inherit"`
	// IntervalCheckTime is the re-sync interval in seconds; 0 means never,
	// -1 disables interval checking.
	IntervalCheckTime int `json:"interval"`
	// CacheTimeout is how long payload stays cached; -1 means forever.
	CacheTimeout int      `json:"cacheTimeout"`
	SyncOnDemand bool     `json:"syncOnDemand"`
	LocalParts   []string `json:"localParts,omitempty"`
}

// NewCachePolicy returns the policy a collection starts with: inherit everything.
func NewCachePolicy() CachePolicy {
	return CachePolicy{
		InheritFromParent: true,
		IntervalCheckTime: -1,
		CacheTimeout:      -1,
	}
}
