package repository

import (
	"context"

	"github.com/regenefi/storefront/internal/models"
	"github.com/regenefi/storefront/internal/shopify"
)

// ShopifyBlogRepository reads blog articles from the Storefront API. The
// platform nests articles under blogs; both queries are flattened into a
// single article list here.
type ShopifyBlogRepository struct {
	client *shopify.Client
}

// NewShopifyBlogRepository creates a blog repository over the given client.
func NewShopifyBlogRepository(client *shopify.Client) *ShopifyBlogRepository {
	return &ShopifyBlogRepository{client: client}
}

type articlePayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Image       *struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"image"`
	Author *struct {
		Name string `json:"name"`
	} `json:"author"`
	Blog struct {
		Title string `json:"title"`
	} `json:"blog"`
	Tags []string `json:"tags"`
}

func (p articlePayload) toModel() models.Article {
	a := models.Article{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		PublishedAt: parseTime(p.PublishedAt),
		BlogTitle:   p.Blog.Title,
		Tags:        p.Tags,
	}
	if p.Image != nil {
		a.Image = p.Image.URL
		a.ImageAlt = p.Image.AltText
	}
	if p.Author != nil {
		a.Author = p.Author.Name
	}
	return a
}

type blogsPayload struct {
	Blogs struct {
		Edges []struct {
			Node struct {
				Handle   string `json:"handle"`
				Title    string `json:"title"`
				Articles struct {
					Edges []struct {
						Node articlePayload `json:"node"`
					} `json:"edges"`
				} `json:"articles"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"blogs"`
}

func (p *blogsPayload) flatten() []models.Article {
	var articles []models.Article
	for _, blog := range p.Blogs.Edges {
		for _, edge := range blog.Node.Articles.Edges {
			articles = append(articles, edge.Node.toModel())
		}
	}
	return articles
}

// Articles returns up to first articles from every blog on the shop.
func (r *ShopifyBlogRepository) Articles(ctx context.Context, first int) ([]models.Article, error) {
	var data blogsPayload
	vars := map[string]any{"first": first}
	if err := r.client.Do(ctx, shopify.ArticlesQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.flatten(), nil
}

// ArticlesByHandle returns every article the platform's per-blog handle
// search matched; the caller picks the exact handle.
func (r *ShopifyBlogRepository) ArticlesByHandle(ctx context.Context, handle string) ([]models.Article, error) {
	var data blogsPayload
	vars := map[string]any{"handle": handle}
	if err := r.client.Do(ctx, shopify.ArticleByHandleQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.flatten(), nil
}
