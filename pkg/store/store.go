package store

import (
	"context"
	"errors"
)

// Sentinel errors shared by every backend.
var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("store: not found")

	// ErrUnsupported is returned when the backend lacks a capability
	// (a column or procedure not yet provisioned). Callers fall back to a
	// simpler query instead of failing.
	ErrUnsupported = errors.New("store: capability unsupported")

	// ErrInvalidEmail is returned by SubscribeEmail when the server-side
	// validation rejects the address.
	ErrInvalidEmail = errors.New("store: invalid email")
)

// ArticleOrder selects the ordering applied to an article listing.
type ArticleOrder int

const (
	// OrderRecency sorts by published_at descending, nulls last.
	OrderRecency ArticleOrder = iota
	// OrderViewCount sorts by view_count descending (nulls last), with
	// published_at descending as tiebreak. Backends without a view_count
	// column return ErrUnsupported.
	OrderViewCount
)

// ArticleQuery describes one article listing request. Zero values mean
// "no constraint"; Limit 0 means no explicit limit.
type ArticleQuery struct {
	Category    string   // case-insensitive equality when non-empty
	Tag         string   // tags array contains this slug
	TagsOverlap []string // tags array shares at least one entry
	ExcludeID   string   // drop this article id
	Featured    bool     // is_featured = true
	Breaking    bool     // is_breaking = true
	Video       bool     // is_video = true
	HeroOnly    bool     // non-empty image AND (featured OR breaking OR exclusive)

	Order  ArticleOrder
	Offset int
	Limit  int
}

// Backend is the contract the backing relational store must satisfy.
// Implementations: Postgrest (Supabase REST), Postgres (direct SQL), and
// Memory (dev mode and tests).
type Backend interface {
	// SelectArticles runs one filtered, ordered, paged listing.
	SelectArticles(ctx context.Context, q ArticleQuery) ([]ArticleRow, error)

	// GetArticleByID and GetArticleBySlug return exactly one row or
	// ErrNotFound.
	GetArticleByID(ctx context.Context, id string) (*ArticleRow, error)
	GetArticleBySlug(ctx context.Context, slug string) (*ArticleRow, error)

	// ListIDSlugs enumerates id+slug pairs in recency order.
	ListIDSlugs(ctx context.Context) ([]IDSlugRow, error)

	// TagWindow returns the tag arrays of the most recent window articles
	// that carry tags.
	TagWindow(ctx context.Context, window int) ([][]string, error)

	// SearchHeadline matches articles by headline: full-text where the
	// store supports it, case-insensitive substring otherwise.
	SearchHeadline(ctx context.Context, query string, limit int) ([]ArticleRow, error)

	ListModelScores(ctx context.Context) ([]ModelScoreRow, error)
	ListRegulations(ctx context.Context) ([]RegulationRow, error)
	ListTimelineEvents(ctx context.Context) ([]TimelineEventRow, error)
	ListAIVoices(ctx context.Context) ([]AIVoiceRow, error)

	// IncrementViewCount and IncrementModelVote apply one atomic server-side
	// add-1. Never read-modify-write.
	IncrementViewCount(ctx context.Context, articleID string) error
	IncrementModelVote(ctx context.Context, modelID int) error

	// SubscribeEmail inserts a newsletter subscription. The server validates
	// and deduplicates; rejected addresses come back as ErrInvalidEmail.
	SubscribeEmail(ctx context.Context, email string) error

	// NewsletterTotal reports the subscriber count, ErrUnsupported when the
	// stats procedure is absent.
	NewsletterTotal(ctx context.Context) (int, error)
}

// ArticleRow mirrors the articles table column shape. Optional columns are
// pointers so absent values survive the round trip.
type ArticleRow struct {
	ID            string   `json:"id"`
	Slug          *string  `json:"slug"`
	Headline      string   `json:"headline"`
	Excerpt       *string  `json:"excerpt"`
	Summary       *string  `json:"summary"`
	Image         *string  `json:"image"`
	Category      string   `json:"category"`
	Author        *string  `json:"author"`
	ReadTime      *string  `json:"read_time"`
	PublishedAt   *string  `json:"published_at"`
	OriginalURL   *string  `json:"original_url"`
	IsExclusive   bool     `json:"is_exclusive"`
	IsFeatured    bool     `json:"is_featured"`
	IsBreaking    bool     `json:"is_breaking"`
	IsVideo       bool     `json:"is_video"`
	SourceName    *string  `json:"source_name"`
	SourceURL     *string  `json:"source_url"`
	SourceFavicon *string  `json:"source_favicon"`
	KeyPoints     []string `json:"key_points"`
	WhyItMatters  *string  `json:"why_it_matters"`
	Tags          []string `json:"tags"`
	Body          *string  `json:"body"`
	ViewCount     *int     `json:"view_count"`
}

// IDSlugRow is the projection used for URL enumeration.
type IDSlugRow struct {
	ID   string  `json:"id"`
	Slug *string `json:"slug"`
}

// ModelScoreRow mirrors the model_scores table.
type ModelScoreRow struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Company        string  `json:"company"`
	ScoreOverall   float64 `json:"score_overall"`
	ScoreCoding    float64 `json:"score_coding"`
	ScoreReasoning float64 `json:"score_reasoning"`
	ScoreCreative  float64 `json:"score_creative"`
	ContextWindow  *string `json:"context_window"`
	Highlight      *string `json:"highlight"`
	Trend          string  `json:"trend"`
	VoteCount      *int    `json:"vote_count"`
	UpdatedAt      string  `json:"updated_at"`
}

// RegulationRow mirrors the regulations table.
type RegulationRow struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Region      string  `json:"region"`
	Status      string  `json:"status"`
	Impact      string  `json:"impact"`
	Deadline    *string `json:"deadline"`
	Description string  `json:"description"`
	SourceURL   *string `json:"source_url"`
	SortOrder   int     `json:"sort_order"`
}

// AIVoiceRow mirrors the ai_voices table.
type AIVoiceRow struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Avatar      *string `json:"avatar"`
	Quote       string  `json:"quote"`
	ArticleLink *string `json:"article_link"`
	SortOrder   int     `json:"sort_order"`
}

// TimelineEventRow mirrors the timeline_events table.
type TimelineEventRow struct {
	Year        string  `json:"year"`
	Quarter     *string `json:"quarter"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Type        string  `json:"type"`
	SortOrder   int     `json:"sort_order"`
}
