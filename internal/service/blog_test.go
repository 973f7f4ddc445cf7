package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/regenefi/storefront/internal/models"
)

type mockBlogRepo struct {
	ArticlesFunc         func(ctx context.Context, first int) ([]models.Article, error)
	ArticlesByHandleFunc func(ctx context.Context, handle string) ([]models.Article, error)
}

func (m *mockBlogRepo) Articles(ctx context.Context, first int) ([]models.Article, error) {
	return m.ArticlesFunc(ctx, first)
}
func (m *mockBlogRepo) ArticlesByHandle(ctx context.Context, handle string) ([]models.Article, error) {
	return m.ArticlesByHandleFunc(ctx, handle)
}

func TestArticles_SortedNewestFirst(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockBlogRepo{
		ArticlesFunc: func(ctx context.Context, first int) ([]models.Article, error) {
			return []models.Article{
				{Handle: "older", Title: "Older", PublishedAt: older, Excerpt: "x", Author: "a", Image: "i", ImageAlt: "alt", Tags: []string{}},
				{Handle: "newer", Title: "Newer", PublishedAt: newer, Excerpt: "x", Author: "a", Image: "i", ImageAlt: "alt", Tags: []string{}},
			}, nil
		},
	}
	svc := NewBlogService(repo, nil)

	articles := svc.Articles(context.Background(), 10)
	if len(articles) != 2 {
		t.Fatalf("Articles returned %d articles; want 2", len(articles))
	}
	if articles[0].Handle != "newer" || articles[1].Handle != "older" {
		t.Errorf("Articles order = [%s, %s]; want newest first", articles[0].Handle, articles[1].Handle)
	}
}

func TestArticles_FetchFailureReturnsEmpty(t *testing.T) {
	repo := &mockBlogRepo{
		ArticlesFunc: func(ctx context.Context, first int) ([]models.Article, error) {
			return nil, errors.New("server error")
		},
	}
	svc := NewBlogService(repo, nil)

	articles := svc.Articles(context.Background(), 10)
	if articles == nil || len(articles) != 0 {
		t.Errorf("Articles = %v; want empty non-nil slice on failure", articles)
	}
}

func TestArticles_NormalizesDisplayDefaults(t *testing.T) {
	content := strings.Repeat("abcde ", 50) // 300 chars
	repo := &mockBlogRepo{
		ArticlesFunc: func(ctx context.Context, first int) ([]models.Article, error) {
			return []models.Article{{Handle: "bare", Title: "Bare Article", Content: content}}, nil
		},
	}
	svc := NewBlogService(repo, nil)

	a := svc.Articles(context.Background(), 10)[0]
	if want := content[:150] + "..."; a.Excerpt != want {
		t.Errorf("Excerpt = %q; want 150-character prefix with ellipsis", a.Excerpt)
	}
	if a.Author != "Regenefi Team" {
		t.Errorf("Author = %q; want default author", a.Author)
	}
	if a.Image != "/images/blog-placeholder.jpg" {
		t.Errorf("Image = %q; want placeholder", a.Image)
	}
	if a.ImageAlt != "Bare Article" {
		t.Errorf("ImageAlt = %q; want title fallback", a.ImageAlt)
	}
	if a.Tags == nil {
		t.Error("Tags = nil; want empty slice")
	}
}

func TestArticleByHandle_ExactMatchOnly(t *testing.T) {
	repo := &mockBlogRepo{
		ArticlesByHandleFunc: func(ctx context.Context, handle string) ([]models.Article, error) {
			// Handle search can return loose matches; only the exact one
			// counts.
			return []models.Article{
				{Handle: "soap-guide-2", Title: "Wrong"},
				{Handle: "soap-guide", Title: "Right"},
			}, nil
		},
	}
	svc := NewBlogService(repo, nil)

	article := svc.ArticleByHandle(context.Background(), "soap-guide")
	if article == nil || article.Title != "Right" {
		t.Fatalf("ArticleByHandle = %+v; want exact handle match", article)
	}
}

func TestArticleByHandle_NoMatch(t *testing.T) {
	repo := &mockBlogRepo{
		ArticlesByHandleFunc: func(ctx context.Context, handle string) ([]models.Article, error) {
			return nil, nil
		},
	}
	svc := NewBlogService(repo, nil)

	if article := svc.ArticleByHandle(context.Background(), "missing"); article != nil {
		t.Errorf("ArticleByHandle = %+v; want nil", article)
	}
}
