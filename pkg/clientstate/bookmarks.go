package clientstate

import (
	"context"
	"encoding/json"
	"errors"
)

// bookmarksKey matches the storage key the site has always used.
const bookmarksKey = "ai-pulse-bookmarks"

// Bookmarks is the client's saved-article id set, stored as a JSON id list.
// Single writer (the owning client); a corrupt stored value reads as empty.
type Bookmarks struct {
	kv KV
}

// NewBookmarks binds the bookmark set to a client's KV.
func NewBookmarks(kv KV) *Bookmarks {
	return &Bookmarks{kv: kv}
}

// All returns the bookmarked ids in insertion order.
func (b *Bookmarks) All(ctx context.Context) []string {
	raw, err := b.kv.Get(ctx, bookmarksKey)
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

// Contains reports whether the article is bookmarked.
func (b *Bookmarks) Contains(ctx context.Context, articleID string) bool {
	for _, id := range b.All(ctx) {
		if id == articleID {
			return true
		}
	}
	return false
}

// Toggle adds the article when absent and removes it when present, returning
// the new bookmarked state.
func (b *Bookmarks) Toggle(ctx context.Context, articleID string) (bool, error) {
	ids := b.All(ctx)
	out := ids[:0]
	found := false
	for _, id := range ids {
		if id == articleID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, articleID)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return found, err
	}
	if err := b.kv.Set(ctx, bookmarksKey, string(raw)); err != nil {
		return found, err
	}
	return !found, nil
}

// Clear removes every bookmark.
func (b *Bookmarks) Clear(ctx context.Context) error {
	err := b.kv.Remove(ctx, bookmarksKey)
	if errors.Is(err, ErrNoKey) {
		return nil
	}
	return err
}
