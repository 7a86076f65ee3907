package blog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/apiclient"
	"vitrine/common"
	"vitrine/models"
	"vitrine/services"
	"vitrine/storefront"
)

const postsJSON = `[
	{"id": 1, "slug": "launch", "title": "We Launched", "content": "# Hello\n\nThis is a **test** post.", "tags": ["News", "Go"], "author": "Ada", "status": "published"},
	{"id": 2, "slug": "recipes", "title": "Recipes", "content": "Cook", "tags": ["food"], "status": "published"},
	{"id": 3, "slug": "secret", "title": "Secret Draft", "content": "Hidden", "tags": ["news"], "status": "draft"},
	{"id": 4, "slug": "roadmap", "title": "Roadmap", "content": "Soon", "tags": ["news"], "status": "published"}
]`

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/websites/by_slug/":
			if r.URL.Query().Get("slug") != "acme" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			io.WriteString(w, `{"id": 1, "slug": "acme", "name": "Acme", "status": "published"}`)
		case "/blogs/by_website_slug/":
			io.WriteString(w, postsJSON)
		case "/products/by_website_slug/":
			io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	api := apiclient.New(srv.URL, nil, nil)

	shell := storefront.NewStorefrontModule(storefront.Deps{
		Sites:    common.NewSiteResolver(services.NewWebsiteService(api), nil),
		Products: services.NewProductService(api),
		Blogs:    services.NewBlogService(api),
	})

	router := gin.New()
	router.SetFuncMap(common.FuncMap("http://localhost:8080"))
	router.LoadHTMLGlob("../*/views/*.html")
	NewBlogModule(shell, nil).RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex_OnlyPublishedPosts(t *testing.T) {
	router := setupTestRouter(t)

	w := get(router, "/acme/blogs")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "We Launched")
	assert.Contains(t, body, "Roadmap")
	assert.NotContains(t, body, "Secret Draft")
}

func TestIndex_TagFilter(t *testing.T) {
	router := setupTestRouter(t)

	w := get(router, "/acme/blogs?tag=news")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Posts tagged news")
	assert.Contains(t, body, "We Launched")
	assert.Contains(t, body, "Roadmap")
	assert.NotContains(t, body, "Recipes</a>")

	w = get(router, "/acme/blogs?tag=missing")
	assert.Contains(t, w.Body.String(), "No posts tagged missing")
}

func TestPost_RendersMarkdown(t *testing.T) {
	router := setupTestRouter(t)

	w := get(router, "/acme/blogs/launch")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Hello</h1>")
	assert.Contains(t, body, "<strong>test</strong>")
	assert.Contains(t, body, "by Ada")
	assert.Contains(t, body, "More posts")
}

func TestPost_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/acme/blogs/secret", "/acme/blogs/nope"} {
		w := get(router, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Post not found", path)
	}

	w := get(router, "/ghost/blogs")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "main portal"))
}

func TestTagCloud(t *testing.T) {
	posts := []models.BlogPost{
		{Tags: []string{"News", "Go"}},
		{Tags: []string{"news"}},
		{Tags: []string{"food"}},
	}

	cloud := tagCloud(posts, "NEWS")

	require.Len(t, cloud, 3)
	assert.Equal(t, tagCount{Name: "News", Count: 2, Active: true}, cloud[0])
	assert.Equal(t, "food", cloud[1].Name)
	assert.Equal(t, "Go", cloud[2].Name)
}

func TestRelated(t *testing.T) {
	current := models.BlogPost{Slug: "a", Tags: []string{"go"}}
	posts := []models.BlogPost{
		current,
		{Slug: "b"},
		{Slug: "c", Tags: []string{"Go"}},
		{Slug: "d"},
		{Slug: "e"},
	}

	got := related(posts, current)

	require.Len(t, got, relatedLimit)
	assert.Equal(t, "c", got[0].Slug)
	assert.Equal(t, "b", got[1].Slug)
	assert.Equal(t, "d", got[2].Slug)
}
