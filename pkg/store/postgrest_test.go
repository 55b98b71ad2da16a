package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func newPostgrestAgainst(t *testing.T, handler http.HandlerFunc) *Postgrest {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p, err := NewPostgrest(PostgrestConfig{SupabaseURL: srv.URL, SupabaseKey: "test-key"})
	if err != nil {
		t.Fatalf("Failed to construct backend: %v", err)
	}
	return p
}

func emptyListCapture(query *url.Values) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}
}

func TestPostgrestSelect_LimitlessOffsetSendsSaneRange(t *testing.T) {
	var query url.Values
	p := newPostgrestAgainst(t, emptyListCapture(&query))

	if _, err := p.SelectArticles(context.Background(), ArticleQuery{Offset: 5}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := query.Get("offset"); got != "5" {
		t.Errorf("Expected offset 5, got %q", got)
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit <= 0 {
		t.Errorf("Expected a positive page cap for a limit-less offset, got %q", query.Get("limit"))
	}
}

func TestPostgrestSelect_CategoryFilterMatchesLiterally(t *testing.T) {
	var query url.Values
	p := newPostgrestAgainst(t, emptyListCapture(&query))

	if _, err := p.SelectArticles(context.Background(), ArticleQuery{Category: "mo%de_ls"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := query.Get("category"); got != `ilike.mo\%de\_ls` {
		t.Errorf("Expected escaped pattern, got %q", got)
	}
}

func TestPostgrestListAIVoices_OrderedBySortOrder(t *testing.T) {
	var query url.Values
	p := newPostgrestAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Ilya Petrov","quote":"Agents change the economics.","sort_order":1}]`))
	})

	rows, err := p.ListAIVoices(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Ilya Petrov" {
		t.Fatalf("Unexpected rows: %+v", rows)
	}
	if got := query.Get("order"); got == "" {
		t.Error("Expected an order parameter on the voices listing")
	}
}
