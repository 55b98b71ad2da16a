package news

import (
	"context"
	"testing"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/store"
)

func TestTrendingCache_ComputesOnceUntilRefresh(t *testing.T) {
	m := store.NewMemory()
	m.AddArticles(
		article("a1", 1, func(r *store.ArticleRow) { r.Tags = []string{"openai"} }),
	)
	svc := New(m)
	cache := NewTrendingCache(svc, 8)
	ctx := context.Background()

	first := cache.Get(ctx)
	if len(first) != 1 || first[0].Tag != "openai" {
		t.Fatalf("Expected [openai], got %v", first)
	}

	// New data is invisible until Refresh.
	m.AddArticles(
		article("a2", 2, func(r *store.ArticleRow) { r.Tags = []string{"agents"} }),
	)
	if again := cache.Get(ctx); len(again) != 1 {
		t.Fatalf("Expected cached batch of 1, got %d", len(again))
	}

	refreshed := cache.Refresh(ctx)
	if len(refreshed) != 2 {
		t.Fatalf("Expected 2 tags after refresh, got %d", len(refreshed))
	}
}

func TestTrendingCache_CachesEmptyOnOutage(t *testing.T) {
	m := store.NewMemory()
	m.FailAll = true
	cache := NewTrendingCache(New(m), 8)
	ctx := context.Background()

	if got := cache.Get(ctx); len(got) != 0 {
		t.Fatalf("Expected empty batch on outage, got %v", got)
	}

	// Recovery is only visible after an explicit refresh.
	m.FailAll = false
	m.AddArticles(article("a1", 1, func(r *store.ArticleRow) { r.Tags = []string{"gpu"} }))
	if got := cache.Get(ctx); len(got) != 0 {
		t.Fatal("Expected the empty batch to stay cached until Refresh")
	}
	if got := cache.Refresh(ctx); len(got) != 1 {
		t.Fatalf("Expected refresh to pick up new data, got %v", got)
	}
}

func TestLoadFrontPage_SectionsDegradeIndependently(t *testing.T) {
	m := store.NewMemory()
	m.AddArticles(
		article("hero", 1, func(r *store.ArticleRow) {
			r.Image = strp("https://img/h.jpg")
			r.IsFeatured = true
			r.Tags = []string{"llm"}
		}),
		article("breaking", 2, func(r *store.ArticleRow) { r.IsBreaking = true }),
	)
	svc := New(m)
	cache := NewTrendingCache(svc, 8)

	page := LoadFrontPage(context.Background(), svc, cache)

	if len(page.Hero) != 1 {
		t.Errorf("Expected 1 hero article, got %d", len(page.Hero))
	}
	if len(page.Breaking) != 1 || page.Breaking[0].ID != "breaking" {
		t.Errorf("Expected [breaking], got %v", page.Breaking)
	}
	if len(page.Featured) != 1 || page.Featured[0].ID != "hero" {
		t.Errorf("Expected [hero] featured, got %v", page.Featured)
	}
	if len(page.Trending) != 1 {
		t.Errorf("Expected 1 trending tag, got %d", len(page.Trending))
	}
}
