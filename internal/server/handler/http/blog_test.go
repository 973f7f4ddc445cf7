package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/regenefi/storefront/internal/models"
)

// fakeBlogAPI implements BlogAPI for testing.
type fakeBlogAPI struct {
	articles  []models.Article
	article   *models.Article
	gotHandle string
}

func (f *fakeBlogAPI) Articles(ctx context.Context, first int) []models.Article {
	return f.articles
}

func (f *fakeBlogAPI) ArticleByHandle(ctx context.Context, handle string) *models.Article {
	f.gotHandle = handle
	return f.article
}

func blogRouter(h *BlogHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/blog", h.List)
	r.Get("/api/blog/{handle}", h.Get)
	return r
}

func TestBlogHandler_List(t *testing.T) {
	api := &fakeBlogAPI{articles: []models.Article{{Handle: "soap-guide", Title: "Soap Guide"}}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/blog", nil)
	blogRouter(&BlogHandler{Blog: api}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var articles []models.Article
	if err := json.NewDecoder(rec.Body).Decode(&articles); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(articles) != 1 || articles[0].Handle != "soap-guide" {
		t.Errorf("articles = %+v", articles)
	}
}

func TestBlogHandler_List_EmptyIsOK(t *testing.T) {
	api := &fakeBlogAPI{articles: []models.Article{}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/blog", nil)
	blogRouter(&BlogHandler{Blog: api}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for an empty blog, got %d", rec.Code)
	}
}

func TestBlogHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeBlogAPI{article: &models.Article{Handle: "soap-guide", Title: "Soap Guide"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/blog/soap-guide", nil)
		blogRouter(&BlogHandler{Blog: api}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if api.gotHandle != "soap-guide" {
			t.Errorf("ArticleByHandle received handle = %q", api.gotHandle)
		}
	})

	t.Run("unknown handle", func(t *testing.T) {
		api := &fakeBlogAPI{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/blog/missing", nil)
		blogRouter(&BlogHandler{Blog: api}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}
