package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/clientstate"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/news"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/store"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func newTestRouter(t *testing.T, mem *store.Memory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := news.New(mem)
	h := NewHandler(svc, news.NewTrendingCache(svc, 8), clientstate.NewMemoryKV())
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func seededMemory() *store.Memory {
	m := store.NewMemory()
	m.AddArticles(
		store.ArticleRow{
			ID:          "a1",
			Slug:        strp("gpt-6-ships"),
			Headline:    "GPT-6 ships",
			Category:    "Models",
			Tags:        []string{"openai", "llm-benchmark"},
			Image:       strp("https://img/1.jpg"),
			IsFeatured:  true,
			PublishedAt: strp("2026-03-10T09:00:00Z"),
			ViewCount:   intp(40),
		},
		store.ArticleRow{
			ID:          "a2",
			Headline:    "EU finalises AI Act guidance",
			Category:    "Regulation",
			Tags:        []string{"eu", "policy"},
			IsBreaking:  true,
			PublishedAt: strp("2026-03-09T09:00:00Z"),
			ViewCount:   intp(90),
		},
		store.ArticleRow{
			ID:          "a3",
			Headline:    "Benchmarks revisited",
			Category:    "Models",
			Tags:        []string{"openai", "eval"},
			PublishedAt: strp("2026-03-08T09:00:00Z"),
		},
	)
	m.AddModels(store.ModelScoreRow{
		ID: 1, Name: "Atlas", Company: "Acme",
		ScoreOverall: 91.2, ScoreCoding: 88.0, ScoreReasoning: 92.5, ScoreCreative: 85.1,
		Trend: "up", UpdatedAt: "2026-03-01",
	})
	return m
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return w
}

func TestListArticles_RecencyOrder(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var got []domain.Article
	w := doJSON(t, r, http.MethodGet, "/api/articles", "", &got)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(got) != 3 || got[0].ID != "a1" || got[2].ID != "a3" {
		t.Fatalf("Unexpected listing: %+v", got)
	}
}

func TestListArticles_CategoryFilter(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var got []domain.Article
	doJSON(t, r, http.MethodGet, "/api/articles?category=regulation", "", &got)
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("Expected only the regulation article, got %+v", got)
	}
}

func TestListArticles_DegradesToEmptyArray(t *testing.T) {
	m := seededMemory()
	m.FailAll = true
	r := newTestRouter(t, m)

	w := doJSON(t, r, http.MethodGet, "/api/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 even on store failure, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("Expected empty JSON array, got %q", body)
	}
}

func TestListPopular_ViewCountOrder(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var got []domain.Article
	doJSON(t, r, http.MethodGet, "/api/articles/popular?limit=2", "", &got)
	if len(got) != 2 || got[0].ID != "a2" || got[1].ID != "a1" {
		t.Fatalf("Expected view-count order [a2 a1], got %+v", got)
	}
}

func TestGetArticle_SlugThenID(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var bySlug domain.Article
	doJSON(t, r, http.MethodGet, "/api/article/gpt-6-ships", "", &bySlug)
	if bySlug.ID != "a1" {
		t.Fatalf("Expected a1 by slug, got %+v", bySlug)
	}

	var byID domain.Article
	doJSON(t, r, http.MethodGet, "/api/article/a3", "", &byID)
	if byID.ID != "a3" {
		t.Fatalf("Expected a3 by id, got %+v", byID)
	}
}

func TestGetArticle_MissingGives404(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	w := doJSON(t, r, http.MethodGet, "/api/article/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestGetRelated_TagOverlapExcludesSelf(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var got []domain.Article
	doJSON(t, r, http.MethodGet, "/api/article/a1/related", "", &got)
	if len(got) == 0 {
		t.Fatal("Expected related articles")
	}
	for _, a := range got {
		if a.ID == "a1" {
			t.Fatal("Related listing must exclude the article itself")
		}
	}
	if got[0].ID != "a3" {
		t.Fatalf("Expected tag-overlapping a3 first, got %s", got[0].ID)
	}
}

func TestIncrementView_AlwaysNoContent(t *testing.T) {
	m := seededMemory()
	r := newTestRouter(t, m)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/article/a1/view", "", nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", w.Code)
		}
	}

	row, err := m.GetArticleByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Failed to re-read article: %v", err)
	}
	if row.ViewCount == nil || *row.ViewCount != 43 {
		t.Fatalf("Expected view count 43, got %v", row.ViewCount)
	}

	// Failures stay invisible to the caller.
	m.FailAll = true
	if w := doJSON(t, r, http.MethodPost, "/api/article/a1/view", "", nil); w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 on failing store, got %d", w.Code)
	}
}

func TestTrendingTags_LabelsFormatted(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var got []struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	doJSON(t, r, http.MethodGet, "/api/tags/trending", "", &got)
	if len(got) == 0 || got[0].Tag != "openai" || got[0].Count != 2 {
		t.Fatalf("Expected openai with count 2 first, got %+v", got)
	}
	if got[0].Label != "OPENAI" {
		t.Fatalf("Expected display label OPENAI, got %q", got[0].Label)
	}
}

func TestSearch_BlankQueryAnswersEmpty(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	w := doJSON(t, r, http.MethodGet, "/api/search?q=", "", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("Expected empty array for blank query, got %d %q", w.Code, w.Body.String())
	}

	var got []domain.Article
	doJSON(t, r, http.MethodGet, "/api/search?q=guidance", "", &got)
	if len(got) != 1 || got[0].ID != "a2" {
		t.Fatalf("Expected headline match a2, got %+v", got)
	}
}

func TestSubscribe_Validation(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	if w := doJSON(t, r, http.MethodPost, "/api/subscribe", `{"email":"not-an-email"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed email, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/subscribe", `{"email":"reader@example.com"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for valid email, got %d", w.Code)
	}

	var stats struct {
		Total int `json:"total"`
	}
	doJSON(t, r, http.MethodGet, "/api/newsletter/stats", "", &stats)
	if stats.Total != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", stats.Total)
	}
}

func TestVoteModel_BumpsCount(t *testing.T) {
	m := seededMemory()
	r := newTestRouter(t, m)

	if w := doJSON(t, r, http.MethodPost, "/api/models/1/vote", "", nil); w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/models/abc/vote", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for junk id, got %d", w.Code)
	}

	rows, err := m.ListModelScores(context.Background())
	if err != nil {
		t.Fatalf("Failed to list models: %v", err)
	}
	if rows[0].VoteCount == nil || *rows[0].VoteCount != 1 {
		t.Fatalf("Expected vote count 1, got %v", rows[0].VoteCount)
	}
}

func TestClientRoutes_RequireClientID(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	if w := doJSON(t, r, http.MethodGet, "/api/client/bookmarks", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without client id, got %d", w.Code)
	}
}

func TestClientRoutes_BookmarksPerClient(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	do := func(method, path, clientID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(clientIDHeader, clientID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodPost, "/api/client/bookmarks/a1/toggle", "alice"); w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var alice, bob []string
	if err := json.Unmarshal(do(http.MethodGet, "/api/client/bookmarks", "alice").Body.Bytes(), &alice); err != nil {
		t.Fatalf("Failed to decode bookmarks: %v", err)
	}
	if err := json.Unmarshal(do(http.MethodGet, "/api/client/bookmarks", "bob").Body.Bytes(), &bob); err != nil {
		t.Fatalf("Failed to decode bookmarks: %v", err)
	}
	if fmt.Sprint(alice) != "[a1]" {
		t.Fatalf("Expected alice to hold [a1], got %v", alice)
	}
	if len(bob) != 0 {
		t.Fatalf("Expected bob to hold nothing, got %v", bob)
	}
}

func TestFrontPage_SectionsPresent(t *testing.T) {
	r := newTestRouter(t, seededMemory())

	var page struct {
		Hero     []domain.Article  `json:"hero"`
		Breaking []domain.Article  `json:"breaking"`
		Featured []domain.Article  `json:"featured"`
		Trending []domain.TagCount `json:"trending"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/front", "", &page)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(page.Breaking) != 1 || page.Breaking[0].ID != "a2" {
		t.Fatalf("Expected breaking [a2], got %+v", page.Breaking)
	}
	if len(page.Hero) != 1 || page.Hero[0].ID != "a1" {
		t.Fatalf("Expected hero [a1], got %+v", page.Hero)
	}
	if len(page.Trending) == 0 {
		t.Fatal("Expected trending tags on the front page")
	}
}

func TestListAIVoices_ServedInDisplayOrder(t *testing.T) {
	m := seededMemory()
	m.AddAIVoices(
		store.AIVoiceRow{ID: 2, Name: "Dr. Mena Osei", Quote: "Scaling is not understanding.", SortOrder: 2},
		store.AIVoiceRow{ID: 1, Name: "Ilya Petrov", Quote: "Agents change the economics.", SortOrder: 1},
	)
	r := newTestRouter(t, m)

	var got []domain.AIVoice
	w := doJSON(t, r, http.MethodGet, "/api/voices", "", &got)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(got) != 2 || got[0].Name != "Ilya Petrov" || got[1].Name != "Dr. Mena Osei" {
		t.Fatalf("Expected voices in display order, got %+v", got)
	}
}
