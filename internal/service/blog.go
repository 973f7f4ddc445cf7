package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/regenefi/storefront/internal/models"
)

// Display defaults applied to articles missing optional fields.
const (
	defaultAuthor    = "Regenefi Team"
	placeholderImage = "/images/blog-placeholder.jpg"
	excerptLength    = 150
	excerptEllipsis  = "..."
)

// BlogRepository defines the article listing operations required by the
// BlogService.
type BlogRepository interface {
	// Articles returns up to first articles across every blog.
	Articles(ctx context.Context, first int) ([]models.Article, error)
	// ArticlesByHandle returns the articles matching a handle search.
	ArticlesByHandle(ctx context.Context, handle string) ([]models.Article, error)
}

// BlogService normalizes and orders blog articles for display. Fetch
// failures degrade to an empty result: the blog is decorative and never
// blocks the page.
type BlogService struct {
	repo BlogRepository
	log  *zap.Logger
}

// NewBlogService constructs a BlogService using the provided repository.
func NewBlogService(repo BlogRepository, log *zap.Logger) *BlogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlogService{repo: repo, log: log}
}

// normalize fills display defaults: excerpt from a content prefix, author,
// placeholder image, and alt text from the title.
func normalize(a models.Article) models.Article {
	if a.Excerpt == "" {
		runes := []rune(a.Content)
		if len(runes) > excerptLength {
			runes = runes[:excerptLength]
		}
		a.Excerpt = string(runes) + excerptEllipsis
	}
	if a.Author == "" {
		a.Author = defaultAuthor
	}
	if a.Image == "" {
		a.Image = placeholderImage
	}
	if a.ImageAlt == "" {
		a.ImageAlt = a.Title
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a
}

// Articles returns up to first articles across every blog, newest first.
// On failure it logs and returns an empty slice.
func (s *BlogService) Articles(ctx context.Context, first int) []models.Article {
	raw, err := s.repo.Articles(ctx, first)
	if err != nil {
		s.log.Error("failed to fetch blog articles", zap.Error(err))
		return []models.Article{}
	}
	articles := make([]models.Article, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, normalize(a))
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles
}

// ArticleByHandle returns the article with exactly the given handle, or nil
// when no article matches or the fetch fails.
func (s *BlogService) ArticleByHandle(ctx context.Context, handle string) *models.Article {
	raw, err := s.repo.ArticlesByHandle(ctx, handle)
	if err != nil {
		s.log.Error("failed to fetch blog article", zap.String("handle", handle), zap.Error(err))
		return nil
	}
	for _, a := range raw {
		if a.Handle == handle {
			article := normalize(a)
			return &article
		}
	}
	return nil
}
