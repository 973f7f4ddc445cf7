package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/regenefi/storefront/internal/models"
)

// BlogAPI defines the article lookups required by the BlogHandler.
type BlogAPI interface {
	Articles(ctx context.Context, first int) []models.Article
	ArticleByHandle(ctx context.Context, handle string) *models.Article
}

// BlogHandler handles HTTP requests for blog articles.
type BlogHandler struct {
	Blog BlogAPI
}

// List handles GET /api/blog?first=N. Article listing degrades to an
// empty list when the platform is unreachable.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	articles := h.Blog.Articles(r.Context(), pageSize(r))
	writeJSON(w, http.StatusOK, articles)
}

// Get handles GET /api/blog/{handle}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	article := h.Blog.ArticleByHandle(r.Context(), handle)
	if article == nil {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, article)
}
