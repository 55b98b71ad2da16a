// Package news is the article retrieval and ranking service: every read the
// site performs goes through here. Reads follow one policy throughout —
// degrade, don't crash. A store hiccup turns a listing into an empty slice
// and a lookup into "not found"; pages render placeholder states instead of
// failing.
package news

import (
	"context"
	"log"
	"sort"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/store"
)

// Default listing sizes, matching what the site's sections request.
const (
	DefaultListLimit     = 20
	DefaultHeroLimit     = 3
	DefaultRelatedLimit  = 3
	DefaultPopularLimit  = 5
	DefaultBreakingLimit = 5

	// tagScanWindow bounds the tag-frequency scan to the most recent N
	// tagged articles. A deliberate approximation: popular-tag counts
	// diverge from corpus-wide frequency once the corpus outgrows the
	// window, traded for never running a full-table scan.
	tagScanWindow = 200

	// CategoryAll disables the category filter in paged listings.
	CategoryAll = "all"
)

// Service exposes the query and mutation surface over a store backend.
type Service struct {
	backend store.Backend
}

// New wires a Service to its backend.
func New(backend store.Backend) *Service {
	return &Service{backend: backend}
}

// list runs one article query and applies the degrade policy.
func (s *Service) list(ctx context.Context, op string, q store.ArticleQuery) []domain.Article {
	rows, err := s.backend.SelectArticles(ctx, q)
	if err != nil {
		log.Printf("news: %s degraded to empty list: %v", op, err)
		return []domain.Article{}
	}
	return store.ArticlesFromRows(rows)
}

func limitOr(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

// ListRecent returns up to limit articles, newest first (articles without a
// publish timestamp sort last).
func (s *Service) ListRecent(ctx context.Context, limit int) []domain.Article {
	return s.list(ctx, "ListRecent", store.ArticleQuery{
		Limit: limitOr(limit, DefaultListLimit),
	})
}

// ListByCategory filters on category, case-insensitively, newest first.
func (s *Service) ListByCategory(ctx context.Context, category string, limit int) []domain.Article {
	return s.list(ctx, "ListByCategory", store.ArticleQuery{
		Category: category,
		Limit:    limitOr(limit, DefaultListLimit),
	})
}

// ListByTag returns articles whose tag set contains the exact stored slug.
func (s *Service) ListByTag(ctx context.Context, tag string, limit int) []domain.Article {
	return s.list(ctx, "ListByTag", store.ArticleQuery{
		Tag:   tag,
		Limit: limitOr(limit, 30),
	})
}

// ListVideo returns video-flagged articles, newest first.
func (s *Service) ListVideo(ctx context.Context, limit int) []domain.Article {
	return s.list(ctx, "ListVideo", store.ArticleQuery{
		Video: true,
		Limit: limitOr(limit, 6),
	})
}

// ListFeatured returns featured articles, newest first.
func (s *Service) ListFeatured(ctx context.Context, limit int) []domain.Article {
	return s.list(ctx, "ListFeatured", store.ArticleQuery{
		Featured: true,
		Limit:    limitOr(limit, DefaultHeroLimit),
	})
}

// ListBreaking returns breaking articles, newest first.
func (s *Service) ListBreaking(ctx context.Context, limit int) []domain.Article {
	return s.list(ctx, "ListBreaking", store.ArticleQuery{
		Breaking: true,
		Limit:    limitOr(limit, DefaultBreakingLimit),
	})
}

// ListHero returns the masthead set: articles with a non-empty image that are
// featured, breaking, or exclusive. Never returns an image-less article.
func (s *Service) ListHero(ctx context.Context, limit int) []domain.Article {
	articles := s.list(ctx, "ListHero", store.ArticleQuery{
		HeroOnly: true,
		Limit:    limitOr(limit, DefaultHeroLimit),
	})
	// Belt and braces: a backend bug must not leak an image-less article
	// into the masthead.
	out := articles[:0]
	for _, a := range articles {
		if a.Image != "" && (a.IsFeatured || a.IsBreaking || a.IsExclusive) {
			out = append(out, a)
		}
	}
	return out
}

// ListPaged returns one zero-indexed offset page. The CategoryAll sentinel
// disables the category filter. A page shorter than pageSize signals
// end-of-data; there is no separate has-more flag.
func (s *Service) ListPaged(ctx context.Context, category string, offset, pageSize int) []domain.Article {
	q := store.ArticleQuery{
		Offset: offset,
		Limit:  limitOr(pageSize, DefaultListLimit),
	}
	if category != "" && category != CategoryAll {
		q.Category = category
	}
	return s.list(ctx, "ListPaged", q)
}

// ListMostPopular orders by view count descending, recency as tiebreak.
// Stores without a view counter fall back to the plain recency listing;
// callers tolerate either ordering.
func (s *Service) ListMostPopular(ctx context.Context, limit int) []domain.Article {
	limit = limitOr(limit, DefaultPopularLimit)
	rows, err := s.backend.SelectArticles(ctx, store.ArticleQuery{
		Order: store.OrderViewCount,
		Limit: limit,
	})
	if err != nil {
		return s.ListRecent(ctx, limit)
	}
	return store.ArticlesFromRows(rows)
}

// ListRelatedByTags resolves related content in two deterministic tiers:
// tag overlap first (always, when tags is non-empty), then same-category.
// The fallback kicks in on empty tags, zero overlap rows, or overlap error.
func (s *Service) ListRelatedByTags(ctx context.Context, tags []string, excludeID, fallbackCategory string, limit int) []domain.Article {
	limit = limitOr(limit, DefaultRelatedLimit)

	if len(tags) > 0 {
		rows, err := s.backend.SelectArticles(ctx, store.ArticleQuery{
			TagsOverlap: tags,
			ExcludeID:   excludeID,
			Limit:       limit,
		})
		if err == nil && len(rows) > 0 {
			return store.ArticlesFromRows(rows)
		}
		if err != nil {
			log.Printf("news: related tag-overlap degraded to category fallback: %v", err)
		}
	}

	return s.list(ctx, "ListRelatedByTags", store.ArticleQuery{
		Category:  fallbackCategory,
		ExcludeID: excludeID,
		Limit:     limit,
	})
}

// GetByID returns the article or nil when absent. Store errors degrade to
// not-found.
func (s *Service) GetByID(ctx context.Context, id string) *domain.Article {
	return s.getOne(s.backend.GetArticleByID, ctx, id)
}

// GetBySlug returns the article or nil when absent.
func (s *Service) GetBySlug(ctx context.Context, slug string) *domain.Article {
	return s.getOne(s.backend.GetArticleBySlug, ctx, slug)
}

// GetBySlugOrID tries the slug lookup first, then the id lookup, so both
// slug URLs and legacy numeric-id links resolve.
func (s *Service) GetBySlugOrID(ctx context.Context, slugOrID string) *domain.Article {
	if a := s.GetBySlug(ctx, slugOrID); a != nil {
		return a
	}
	return s.GetByID(ctx, slugOrID)
}

func (s *Service) getOne(fetch func(context.Context, string) (*store.ArticleRow, error), ctx context.Context, key string) *domain.Article {
	row, err := fetch(ctx, key)
	if err != nil || row == nil {
		return nil
	}
	a, err := store.ArticleFromRow(*row)
	if err != nil {
		log.Printf("news: malformed article row %q: %v", key, err)
		return nil
	}
	return &a
}

// ArticlePath returns the canonical URL path, preferring slug over id.
func ArticlePath(a *domain.Article) string {
	if a.Slug != "" {
		return "/article/" + a.Slug
	}
	return "/article/" + a.ID
}

// ListAllIDs enumerates article ids in recency order.
func (s *Service) ListAllIDs(ctx context.Context) []string {
	pairs := s.ListAllSlugsOrIDs(ctx)
	ids := make([]string, 0, len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.ID)
	}
	return ids
}

// ListAllSlugsOrIDs enumerates id+slug pairs in recency order.
func (s *Service) ListAllSlugsOrIDs(ctx context.Context) []domain.SlugOrID {
	rows, err := s.backend.ListIDSlugs(ctx)
	if err != nil {
		log.Printf("news: ListAllSlugsOrIDs degraded to empty list: %v", err)
		return []domain.SlugOrID{}
	}
	out := make([]domain.SlugOrID, 0, len(rows))
	for _, row := range rows {
		p := domain.SlugOrID{ID: row.ID}
		if row.Slug != nil {
			p.Slug = *row.Slug
		}
		out = append(out, p)
	}
	return out
}

// TagFrequency counts tag occurrences over the recent scan window and
// returns the top limit tags by count. Ties keep first-appearance order,
// which is stable for a fixed store ordering.
func (s *Service) TagFrequency(ctx context.Context, limit int) []domain.TagCount {
	tagSets, err := s.backend.TagWindow(ctx, tagScanWindow)
	if err != nil {
		log.Printf("news: TagFrequency degraded to empty list: %v", err)
		return []domain.TagCount{}
	}

	counts := make(map[string]int)
	var order []string
	for _, tags := range tagSets {
		for _, t := range tags {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	out := make([]domain.TagCount, 0, len(order))
	for _, t := range order {
		out = append(out, domain.TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchHeadlines matches articles by headline through the store: full-text
// where available, substring otherwise. Errors degrade to an empty list.
func (s *Service) SearchHeadlines(ctx context.Context, query string, limit int) []domain.Article {
	rows, err := s.backend.SearchHeadline(ctx, query, limitOr(limit, 8))
	if err != nil {
		log.Printf("news: SearchHeadlines degraded to empty list: %v", err)
		return []domain.Article{}
	}
	return store.ArticlesFromRows(rows)
}

// ListModelScores returns the leaderboard rows in stored order.
func (s *Service) ListModelScores(ctx context.Context) []domain.ModelScore {
	rows, err := s.backend.ListModelScores(ctx)
	if err != nil {
		log.Printf("news: ListModelScores degraded to empty list: %v", err)
		return []domain.ModelScore{}
	}
	out := make([]domain.ModelScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.ModelFromRow(row))
	}
	return out
}

// ListRegulations returns tracked policy items in display order.
func (s *Service) ListRegulations(ctx context.Context) []domain.Regulation {
	rows, err := s.backend.ListRegulations(ctx)
	if err != nil {
		log.Printf("news: ListRegulations degraded to empty list: %v", err)
		return []domain.Regulation{}
	}
	out := make([]domain.Regulation, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.RegulationFromRow(row))
	}
	return out
}

// ListAIVoices returns the curated expert quotes in display order.
func (s *Service) ListAIVoices(ctx context.Context) []domain.AIVoice {
	rows, err := s.backend.ListAIVoices(ctx)
	if err != nil {
		log.Printf("news: ListAIVoices degraded to empty list: %v", err)
		return []domain.AIVoice{}
	}
	out := make([]domain.AIVoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.AIVoiceFromRow(row))
	}
	return out
}

// ListTimeline returns curated timeline events in display order.
func (s *Service) ListTimeline(ctx context.Context) []domain.TimelineEvent {
	rows, err := s.backend.ListTimelineEvents(ctx)
	if err != nil {
		log.Printf("news: ListTimeline degraded to empty list: %v", err)
		return []domain.TimelineEvent{}
	}
	out := make([]domain.TimelineEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.TimelineEventFromRow(row))
	}
	return out
}

// NewsletterStats reports the subscriber total, zero when the stats
// procedure is absent or failing.
func (s *Service) NewsletterStats(ctx context.Context) int {
	total, err := s.backend.NewsletterTotal(ctx)
	if err != nil {
		return 0
	}
	return total
}
