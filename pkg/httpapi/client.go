package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/clientstate"
)

// clientIDHeader identifies a browser session for server-held client state.
const clientIDHeader = "X-Client-ID"

const clientKVKey = "clientKV"

// requireClientID namespaces the shared KV per caller. Anonymous requests
// get a 400: client state has no meaning without an identity.
func (h *Handler) requireClientID(c *gin.Context) {
	id := c.GetHeader(clientIDHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + clientIDHeader})
		return
	}
	c.Set(clientKVKey, clientstate.NewPrefixed(h.clientKV, id))
	c.Next()
}

func clientKV(c *gin.Context) clientstate.KV {
	return c.MustGet(clientKVKey).(clientstate.KV)
}

// ListBookmarks serves the caller's saved article ids, oldest first.
func (h *Handler) ListBookmarks(c *gin.Context) {
	b := clientstate.NewBookmarks(clientKV(c))
	ids := b.All(c.Request.Context())
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// ToggleBookmark flips one bookmark and reports the resulting state.
func (h *Handler) ToggleBookmark(c *gin.Context) {
	b := clientstate.NewBookmarks(clientKV(c))
	saved, err := b.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "bookmark store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": saved})
}

// ClearBookmarks drops the caller's whole bookmark list.
func (h *Handler) ClearBookmarks(c *gin.Context) {
	b := clientstate.NewBookmarks(clientKV(c))
	if err := b.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "bookmark store unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RecentSearches serves the caller's last submitted queries, newest first.
// Recording happens on submit (?record=), reading with no parameters.
func (h *Handler) RecentSearches(c *gin.Context) {
	r := clientstate.NewRecentSearches(clientKV(c))
	ctx := c.Request.Context()
	if q := c.Query("record"); q != "" {
		if err := r.Add(ctx, q); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "search store unavailable"})
			return
		}
	}
	queries := r.All(ctx)
	if queries == nil {
		queries = []string{}
	}
	c.JSON(http.StatusOK, queries)
}
