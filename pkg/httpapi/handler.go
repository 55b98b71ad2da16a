// Package httpapi exposes the news service over JSON. Listings always answer
// 200 with an array (empty on degraded reads — the "nothing found" state is
// the caller's to render); single-entity misses answer 404.
package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/clientstate"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/news"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/rank"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/search"
)

// Handler carries the wiring for all routes.
type Handler struct {
	svc      *news.Service
	trending *news.TrendingCache

	// clientKV backs per-client bookmark/search state for identified
	// clients; nil disables the /api/client routes.
	clientKV clientstate.KV
}

// NewHandler wires the HTTP surface.
func NewHandler(svc *news.Service, trending *news.TrendingCache, clientKV clientstate.KV) *Handler {
	return &Handler{svc: svc, trending: trending, clientKV: clientKV}
}

// RegisterRoutes attaches every route to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/front", h.FrontPage)

		api.GET("/articles", h.ListArticles)
		api.GET("/articles/featured", h.ListFeatured)
		api.GET("/articles/breaking", h.ListBreaking)
		api.GET("/articles/hero", h.ListHero)
		api.GET("/articles/popular", h.ListMostPopular)
		api.GET("/articles/video", h.ListVideo)
		api.GET("/articles/paged", h.ListPaged)
		api.GET("/articles/ids", h.ListIDs)

		api.GET("/article/:key", h.GetArticle)
		api.GET("/article/:key/related", h.GetRelated)
		api.POST("/article/:key/view", h.IncrementView)

		api.GET("/tags/trending", h.TrendingTags)
		api.GET("/search", h.Search)

		api.GET("/models", h.ListModels)
		api.POST("/models/:id/vote", h.VoteModel)

		api.GET("/regulations", h.ListRegulations)
		api.GET("/timeline", h.ListTimeline)
		api.GET("/voices", h.ListAIVoices)

		api.POST("/subscribe", h.Subscribe)
		api.GET("/newsletter/stats", h.NewsletterStats)

		if h.clientKV != nil {
			client := api.Group("/client", h.requireClientID)
			client.GET("/bookmarks", h.ListBookmarks)
			client.POST("/bookmarks/:id/toggle", h.ToggleBookmark)
			client.DELETE("/bookmarks", h.ClearBookmarks)
			client.GET("/searches", h.RecentSearches)
		}
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// FrontPage assembles the landing page sections concurrently.
func (h *Handler) FrontPage(c *gin.Context) {
	c.JSON(http.StatusOK, news.LoadFrontPage(c.Request.Context(), h.svc, h.trending))
}

// ListArticles serves the recency listing, optionally narrowed by category
// or tag, optionally re-sorted in memory (?sort=latest|trending|popular).
func (h *Handler) ListArticles(c *gin.Context) {
	ctx := c.Request.Context()
	limit := queryInt(c, "limit", 0)

	var articles []domain.Article
	switch {
	case c.Query("category") != "":
		articles = h.svc.ListByCategory(ctx, c.Query("category"), limit)
	case c.Query("tag") != "":
		articles = h.svc.ListByTag(ctx, c.Query("tag"), limit)
	case c.Query("section") != "":
		// Section pages filter a broad batch with the keyword heuristics
		// the store-side category filter can't express.
		articles = rank.FilterByCategory(h.svc.ListRecent(ctx, 100), c.Query("section"))
	default:
		articles = h.svc.ListRecent(ctx, limit)
	}

	if key := c.Query("sort"); key != "" {
		articles = rank.Sort(articles, rank.SortKey(key))
	}
	c.JSON(http.StatusOK, articles)
}

// ListFeatured serves featured articles.
func (h *Handler) ListFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListFeatured(c.Request.Context(), queryInt(c, "limit", 0)))
}

// ListBreaking serves breaking articles.
func (h *Handler) ListBreaking(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListBreaking(c.Request.Context(), queryInt(c, "limit", 0)))
}

// ListHero serves the masthead set.
func (h *Handler) ListHero(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListHero(c.Request.Context(), queryInt(c, "limit", 0)))
}

// ListMostPopular serves the most-read listing.
func (h *Handler) ListMostPopular(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListMostPopular(c.Request.Context(), queryInt(c, "limit", 0)))
}

// ListVideo serves video-flagged articles.
func (h *Handler) ListVideo(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListVideo(c.Request.Context(), queryInt(c, "limit", 0)))
}

// ListPaged serves one offset page; a short page signals end-of-data.
func (h *Handler) ListPaged(c *gin.Context) {
	category := c.DefaultQuery("category", news.CategoryAll)
	offset := queryInt(c, "offset", 0)
	size := queryInt(c, "size", 12)
	c.JSON(http.StatusOK, h.svc.ListPaged(c.Request.Context(), category, offset, size))
}

// ListIDs enumerates id+slug pairs in recency order.
func (h *Handler) ListIDs(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListAllSlugsOrIDs(c.Request.Context()))
}

// GetArticle resolves slug-or-id, slug first.
func (h *Handler) GetArticle(c *gin.Context) {
	a := h.svc.GetBySlugOrID(c.Request.Context(), c.Param("key"))
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetRelated resolves related content for one article via tag overlap with
// category fallback.
func (h *Handler) GetRelated(c *gin.Context) {
	ctx := c.Request.Context()
	a := h.svc.GetBySlugOrID(ctx, c.Param("key"))
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	limit := queryInt(c, "limit", 0)
	c.JSON(http.StatusOK, h.svc.ListRelatedByTags(ctx, a.Tags, a.ID, a.Category, limit))
}

// IncrementView applies the fire-and-forget view counter bump. Always 204:
// failures are invisible by policy.
func (h *Handler) IncrementView(c *gin.Context) {
	h.svc.IncrementViewCount(c.Request.Context(), c.Param("key"))
	c.Status(http.StatusNoContent)
}

// TrendingTags serves the cached trending batch with display labels.
func (h *Handler) TrendingTags(c *gin.Context) {
	type entry struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	tags := h.trending.Get(c.Request.Context())
	out := make([]entry, 0, len(tags))
	for _, t := range tags {
		out = append(out, entry{Tag: t.Tag, Label: rank.FormatTag(t.Tag), Count: t.Count})
	}
	c.JSON(http.StatusOK, out)
}

// Search answers a settled query (debouncing lives client-side; this is the
// store path the overlay falls back to).
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []domain.Article{})
		return
	}
	c.JSON(http.StatusOK, h.svc.SearchHeadlines(c.Request.Context(), q, search.MaxResults))
}

// ListModels serves the leaderboard, optionally ranked by ?dimension=.
func (h *Handler) ListModels(c *gin.Context) {
	models := h.svc.ListModelScores(c.Request.Context())
	if dim := c.Query("dimension"); dim != "" {
		models = domain.RankModels(models, domain.ScoreDimension(dim))
	}
	c.JSON(http.StatusOK, models)
}

// VoteModel applies the fire-and-forget vote bump. The at-most-once guard is
// client-side by design; the endpoint stays a bare increment.
func (h *Handler) VoteModel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}
	h.svc.VoteForModel(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

// ListRegulations serves tracked policy items.
func (h *Handler) ListRegulations(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListRegulations(c.Request.Context()))
}

// ListTimeline serves the curated timeline.
func (h *Handler) ListTimeline(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListTimeline(c.Request.Context()))
}

// ListAIVoices serves the curated expert quotes.
func (h *Handler) ListAIVoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListAIVoices(c.Request.Context()))
}

// Subscribe validates and records a newsletter signup. Validation failures
// are field-level errors, not 5xx.
func (h *Handler) Subscribe(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
		return
	}

	switch err := h.svc.SubscribeEmail(c.Request.Context(), body.Email); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"subscribed": true})
	case news.ErrInvalidEmail:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed"})
	}
}

// NewsletterStats serves the subscriber total.
func (h *Handler) NewsletterStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total": h.svc.NewsletterStats(c.Request.Context())})
}
