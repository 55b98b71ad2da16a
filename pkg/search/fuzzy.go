// Package search implements the search overlay's data path: a session-scoped
// article cache, an in-memory fuzzy matcher, and a debounced searcher with
// last-keystroke-wins delivery.
package search

import (
	"strings"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
)

// MaxResults caps how many matches a search returns.
const MaxResults = 8

// haystack flattens the searchable fields of one article.
func haystack(a *domain.Article) string {
	parts := make([]string, 0, 2+len(a.Tags))
	parts = append(parts, a.Headline, a.Category)
	parts = append(parts, a.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Fuzzy matches the query against headline, category, and tags of each
// corpus article. The query is lowercased and split on whitespace; every
// token must appear as a substring. Matches come back in corpus order,
// capped at MaxResults.
func Fuzzy(query string, corpus []domain.Article) []domain.Article {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var out []domain.Article
	for i := range corpus {
		hay := haystack(&corpus[i])
		matched := true
		for _, tok := range tokens {
			if !strings.Contains(hay, tok) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, corpus[i])
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}
