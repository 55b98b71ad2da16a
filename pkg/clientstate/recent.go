package clientstate

import (
	"context"
	"encoding/json"
)

const (
	// recentKey matches the storage key the site has always used.
	recentKey = "ai-freshdaily-recent-searches"

	maxRecentSearches = 5
)

// RecentSearches is the client's bounded, deduplicated list of free-text
// queries, most recent first.
type RecentSearches struct {
	kv KV
}

// NewRecentSearches binds the recent-search list to a client's KV.
func NewRecentSearches(kv KV) *RecentSearches {
	return &RecentSearches{kv: kv}
}

// All returns the saved queries, most recent first.
func (r *RecentSearches) All(ctx context.Context) []string {
	raw, err := r.kv.Get(ctx, recentKey)
	if err != nil {
		return nil
	}
	var queries []string
	if err := json.Unmarshal([]byte(raw), &queries); err != nil {
		return nil
	}
	return queries
}

// Add records a query at the front, dropping any earlier duplicate and
// trimming to the bound.
func (r *RecentSearches) Add(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}
	updated := []string{query}
	for _, q := range r.All(ctx) {
		if q != query {
			updated = append(updated, q)
		}
	}
	if len(updated) > maxRecentSearches {
		updated = updated[:maxRecentSearches]
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, recentKey, string(raw))
}
