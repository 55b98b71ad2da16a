package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"
)

// PostgrestConfig holds what's needed to talk to a Supabase project over its
// REST API.
type PostgrestConfig struct {
	// SupabaseURL is the project URL.
	// Example: "https://[project-ref].supabase.co"
	SupabaseURL string

	// SupabaseKey is the Supabase API key. Use the anon key client-side,
	// the service_role key server-side.
	SupabaseKey string
}

// Postgrest is a Backend over the Supabase REST API.
type Postgrest struct {
	sdk *supabase.Client
	cfg PostgrestConfig

	// viewOrderBroken records, after one failed attempt, that the store has
	// no view_count column. Checked up front so each page load doesn't pay
	// for a doomed round trip.
	viewOrderBroken atomic.Bool
}

// NewPostgrest constructs and initializes the REST backend.
func NewPostgrest(cfg PostgrestConfig) (*Postgrest, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key are required")
	}
	sdk, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize supabase SDK: %w", err)
	}
	return &Postgrest{sdk: sdk, cfg: cfg}, nil
}

var recencyDesc = &postgrest.OrderOpts{Ascending: false, NullsFirst: false}

// unboundedPageSize caps offset listings that carry no explicit limit.
const unboundedPageSize = 1000

// pgArray renders a Postgres array literal for cs/ov filters.
func pgArray(values []string) string {
	return "{" + strings.Join(values, ",") + "}"
}

// escapeLike neutralizes LIKE metacharacters so user text matches literally.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SelectArticles implements Backend.
func (p *Postgrest) SelectArticles(ctx context.Context, q ArticleQuery) ([]ArticleRow, error) {
	if q.Order == OrderViewCount && p.viewOrderBroken.Load() {
		return nil, ErrUnsupported
	}

	fb := p.sdk.From("articles").Select("*", "", false)

	if q.Category != "" {
		// ilike with metacharacters escaped = case-insensitive equality.
		fb = fb.Ilike("category", escapeLike.Replace(q.Category))
	}
	if q.Tag != "" {
		fb = fb.Filter("tags", "cs", pgArray([]string{q.Tag}))
	}
	if len(q.TagsOverlap) > 0 {
		fb = fb.Filter("tags", "ov", pgArray(q.TagsOverlap))
	}
	if q.ExcludeID != "" {
		fb = fb.Neq("id", q.ExcludeID)
	}
	if q.Featured {
		fb = fb.Eq("is_featured", "true")
	}
	if q.Breaking {
		fb = fb.Eq("is_breaking", "true")
	}
	if q.Video {
		fb = fb.Eq("is_video", "true")
	}
	if q.HeroOnly {
		fb = fb.Not("image", "is", "null").
			Neq("image", "").
			Or("is_featured.eq.true,is_breaking.eq.true,is_exclusive.eq.true", "")
	}

	if q.Order == OrderViewCount {
		fb = fb.Order("view_count", recencyDesc)
	}
	fb = fb.Order("published_at", recencyDesc)

	if q.Offset > 0 {
		limit := q.Limit
		if limit <= 0 {
			// PostgREST ranges are closed intervals; a limit-less offset
			// gets a page cap instead of an inverted range.
			limit = unboundedPageSize
		}
		fb = fb.Range(q.Offset, q.Offset+limit-1, "")
	} else if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}

	var rows []ArticleRow
	if _, err := fb.ExecuteTo(&rows); err != nil {
		if q.Order == OrderViewCount {
			// Column not yet provisioned. Remember and let the caller
			// fall back to a recency listing.
			p.viewOrderBroken.Store(true)
			return nil, ErrUnsupported
		}
		return nil, fmt.Errorf("select articles: %w", err)
	}
	return rows, nil
}

func (p *Postgrest) getArticle(column, value string) (*ArticleRow, error) {
	var row ArticleRow
	fb := p.sdk.From("articles").Select("*", "", false).Eq(column, value).Single()
	if _, err := fb.ExecuteTo(&row); err != nil {
		// PostgREST reports "no rows" as an error on single-row requests;
		// every failure here degrades to not-found.
		return nil, ErrNotFound
	}
	return &row, nil
}

// GetArticleByID implements Backend.
func (p *Postgrest) GetArticleByID(ctx context.Context, id string) (*ArticleRow, error) {
	return p.getArticle("id", id)
}

// GetArticleBySlug implements Backend.
func (p *Postgrest) GetArticleBySlug(ctx context.Context, slug string) (*ArticleRow, error) {
	return p.getArticle("slug", slug)
}

// ListIDSlugs implements Backend.
func (p *Postgrest) ListIDSlugs(ctx context.Context) ([]IDSlugRow, error) {
	var rows []IDSlugRow
	fb := p.sdk.From("articles").Select("id, slug", "", false).Order("published_at", recencyDesc)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list id/slug pairs: %w", err)
	}
	return rows, nil
}

// TagWindow implements Backend.
func (p *Postgrest) TagWindow(ctx context.Context, window int) ([][]string, error) {
	var rows []struct {
		Tags []string `json:"tags"`
	}
	fb := p.sdk.From("articles").Select("tags", "", false).
		Not("tags", "is", "null").
		Order("published_at", recencyDesc).
		Limit(window, "")
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("tag window: %w", err)
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Tags)
	}
	return out, nil
}

// SearchHeadline implements Backend: websearch full-text first, ilike
// substring when full-text errors or matches nothing.
func (p *Postgrest) SearchHeadline(ctx context.Context, query string, limit int) ([]ArticleRow, error) {
	var rows []ArticleRow
	fb := p.sdk.From("articles").Select("*", "", false).
		TextSearch("headline", query, "english", "websearch").
		Limit(limit, "")
	if _, err := fb.ExecuteTo(&rows); err == nil && len(rows) > 0 {
		return rows, nil
	}

	rows = nil
	fb = p.sdk.From("articles").Select("*", "", false).
		Ilike("headline", "%"+query+"%").
		Limit(limit, "")
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("headline search: %w", err)
	}
	return rows, nil
}

// ListModelScores implements Backend.
func (p *Postgrest) ListModelScores(ctx context.Context) ([]ModelScoreRow, error) {
	var rows []ModelScoreRow
	fb := p.sdk.From("model_scores").Select("*", "", false).
		Order("score_overall", recencyDesc)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list model scores: %w", err)
	}
	return rows, nil
}

var sortAsc = &postgrest.OrderOpts{Ascending: true}

// ListRegulations implements Backend.
func (p *Postgrest) ListRegulations(ctx context.Context) ([]RegulationRow, error) {
	var rows []RegulationRow
	fb := p.sdk.From("regulations").Select("*", "", false).Order("sort_order", sortAsc)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list regulations: %w", err)
	}
	return rows, nil
}

// ListTimelineEvents implements Backend.
func (p *Postgrest) ListTimelineEvents(ctx context.Context) ([]TimelineEventRow, error) {
	var rows []TimelineEventRow
	fb := p.sdk.From("timeline_events").Select("*", "", false).Order("sort_order", sortAsc)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list timeline events: %w", err)
	}
	return rows, nil
}

// ListAIVoices implements Backend.
func (p *Postgrest) ListAIVoices(ctx context.Context) ([]AIVoiceRow, error) {
	var rows []AIVoiceRow
	fb := p.sdk.From("ai_voices").Select("*", "", false).Order("sort_order", sortAsc)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list ai voices: %w", err)
	}
	return rows, nil
}

// IncrementViewCount implements Backend via the increment_view_count RPC.
// The procedure is SECURITY DEFINER server-side; one call is one atomic add.
func (p *Postgrest) IncrementViewCount(ctx context.Context, articleID string) error {
	p.sdk.Rpc("increment_view_count", "", map[string]interface{}{
		"article_id": articleID,
	})
	return nil
}

// IncrementModelVote implements Backend via the vote_for_model RPC.
func (p *Postgrest) IncrementModelVote(ctx context.Context, modelID int) error {
	p.sdk.Rpc("vote_for_model", "", map[string]interface{}{
		"p_model_id": modelID,
	})
	return nil
}

// SubscribeEmail implements Backend via the subscribe_email RPC, which
// validates and deduplicates server-side.
func (p *Postgrest) SubscribeEmail(ctx context.Context, email string) error {
	raw := p.sdk.Rpc("subscribe_email", "", map[string]interface{}{
		"p_email": strings.ToLower(strings.TrimSpace(email)),
	})
	if raw == "" {
		return fmt.Errorf("subscribe rpc failed")
	}

	var result struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return fmt.Errorf("subscribe rpc: unexpected response")
	}
	if result.Success != nil && !*result.Success {
		if result.Error == "invalid_email" {
			return ErrInvalidEmail
		}
		return fmt.Errorf("subscribe rpc: %s", result.Error)
	}
	return nil
}

// NewsletterTotal implements Backend via the get_newsletter_stats RPC.
func (p *Postgrest) NewsletterTotal(ctx context.Context) (int, error) {
	raw := p.sdk.Rpc("get_newsletter_stats", "", nil)
	if raw == "" {
		return 0, ErrUnsupported
	}

	// The RPC returns a single row, sometimes wrapped in an array.
	type stats struct {
		TotalSubscribers int `json:"total_subscribers"`
	}
	var one stats
	if err := json.Unmarshal([]byte(raw), &one); err == nil {
		return one.TotalSubscribers, nil
	}
	var many []stats
	if err := json.Unmarshal([]byte(raw), &many); err == nil && len(many) > 0 {
		return many[0].TotalSubscribers, nil
	}
	return 0, ErrUnsupported
}
