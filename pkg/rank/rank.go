// Package rank re-orders and filters already-fetched article batches for
// pages where the store-side filter isn't expressive enough.
package rank

import (
	"sort"
	"strings"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
)

// SortKey selects a section's in-memory ordering.
type SortKey string

const (
	// SortLatest keeps the input order, which is recency-sorted upstream.
	SortLatest SortKey = "latest"
	// SortTrending reverses the input: a deliberately crude proxy, not a
	// real trend signal.
	SortTrending SortKey = "trending"
	// SortPopular floats featured articles to the front, otherwise keeping
	// the original order.
	SortPopular SortKey = "popular"
)

// Sort returns a new ordered slice; the input is never mutated.
func Sort(articles []domain.Article, key SortKey) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	switch key {
	case SortTrending:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsFeatured && !out[j].IsFeatured
		})
	}
	return out
}

// sectionKeywords maps a section slug to the category substrings it accepts.
var sectionKeywords = map[string][]string{
	"models":     {"model", "llm", "benchmark", "research"},
	"agents":     {"agent"},
	"industry":   {"industry", "healthcare", "finance", "legal"},
	"coding":     {"coding", "code"},
	"regulation": {"regulation", "policy"},
	"science":    {"science", "quantum", "robotics"},
	"education":  {"academy", "education"},
	"video":      {"video", "demo"},
}

// MatchesCategory reports whether an article belongs on a section page.
// Categories are free-text labels, so each section accepts a small keyword
// family; unknown sections fall back to a plain substring test.
func MatchesCategory(a *domain.Article, slug string) bool {
	cat := strings.ToLower(a.Category)
	keywords, ok := sectionKeywords[slug]
	if !ok {
		return strings.Contains(cat, strings.ToLower(slug))
	}
	for _, kw := range keywords {
		if strings.Contains(cat, kw) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps the articles matching a section page, preserving
// input order.
func FilterByCategory(articles []domain.Article, slug string) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for i := range articles {
		if MatchesCategory(&articles[i], slug) {
			out = append(out, articles[i])
		}
	}
	return out
}

// allCapsTags are tag words rendered fully uppercase in labels.
var allCapsTags = map[string]bool{
	"openai": true, "gpt": true, "llm": true, "ai": true, "api": true,
	"agi": true, "gpu": true, "tpu": true, "llms": true, "rlhf": true,
}

// FormatTag renders a tag slug as a display label: "openai" → "OPENAI"-class
// words go uppercase, everything else is title-cased, hyphens become spaces.
func FormatTag(tag string) string {
	words := strings.Split(tag, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		if allCapsTags[strings.ToLower(w)] {
			words[i] = strings.ToUpper(w)
		} else {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
