package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenefi/storefront/internal/shopify"
)

func TestArticles_FlattensBlogs(t *testing.T) {
	srv := graphQLServer(t, `{"data":{"blogs":{"edges":[
		{"node":{"handle":"news","title":"News","articles":{"edges":[
			{"node":{"id":"gid://shopify/Article/1","title":"First","handle":"first","content":"Body",
				"publishedAt":"2026-01-10T00:00:00Z",
				"image":{"url":"https://cdn/a.jpg","altText":"a"},
				"author":{"name":"Dana"},
				"blog":{"title":"News"},
				"tags":["soap"]}}
		]}}},
		{"node":{"handle":"guides","title":"Guides","articles":{"edges":[
			{"node":{"id":"gid://shopify/Article/2","title":"Second","handle":"second","content":"Body",
				"publishedAt":"2026-02-10T00:00:00Z",
				"blog":{"title":"Guides"}}}
		]}}}
	]}}}`, nil)
	defer srv.Close()

	repo := NewShopifyBlogRepository(shopify.NewClient(srv.URL, "token", nil))

	articles, err := repo.Articles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "first", first.Handle)
	assert.Equal(t, "Dana", first.Author)
	assert.Equal(t, "https://cdn/a.jpg", first.Image)
	assert.Equal(t, "News", first.BlogTitle)

	second := articles[1]
	assert.Equal(t, "Guides", second.BlogTitle)
	assert.Empty(t, second.Author)
	assert.Empty(t, second.Image)
}

func TestArticlesByHandle_SendsHandle(t *testing.T) {
	var vars map[string]any
	srv := graphQLServer(t, `{"data":{"blogs":{"edges":[]}}}`, &vars)
	defer srv.Close()

	repo := NewShopifyBlogRepository(shopify.NewClient(srv.URL, "token", nil))

	articles, err := repo.ArticlesByHandle(context.Background(), "soap-guide")
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Equal(t, "soap-guide", vars["handle"])
}
