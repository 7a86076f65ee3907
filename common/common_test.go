package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vitrine/models"
	"vitrine/services"
)

func TestSiteFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"acme.localhost:8080", "acme"},
		{"ACME.localhost", "acme"},
		{"localhost:8080", ""},
		{"www.localhost", ""},
		{"admin.localhost", ""},
		{"a.b.localhost", ""},
		{"acme.example.com", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SiteFromHost(tt.host, "localhost"), tt.host)
	}
	assert.Equal(t, "", SiteFromHost("acme.localhost", ""))
}

func TestSubdomainHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/:slug", func(c *gin.Context) { c.String(http.StatusOK, "home "+c.Param("slug")) })
	router.GET("/:slug/about", func(c *gin.Context) { c.String(http.StatusOK, "about "+c.Param("slug")) })
	handler := SubdomainHandler("localhost", router)

	serve := func(host, path string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Host = host
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "home acme", serve("acme.localhost:8080", "/"))
	assert.Equal(t, "about acme", serve("acme.localhost:8080", "/about"))
	assert.Equal(t, "about acme", serve("acme.localhost:8080", "/acme/about"))
	assert.Equal(t, "about other", serve("localhost:8080", "/other/about"))
}

func TestMoney(t *testing.T) {
	price := decimal.RequireFromString("12.5")
	assert.Equal(t, "$12.50", Money(price))
	assert.Equal(t, "$12.50", Money(&price))
	assert.Equal(t, "$0.00", Money((*decimal.Decimal)(nil)))
	assert.Equal(t, "$3.00", Money(3))
	assert.Equal(t, "-$1.25", Money(decimal.RequireFromString("-1.25")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate(10, "short"))
	assert.Equal(t, "héllo...", Truncate(5, "héllo world"))
}

func TestMarkdown(t *testing.T) {
	html := string(Markdown("# Title\n\nSome **bold** and https://example.com"))
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, `<a href="https://example.com">`)
}

type checkout struct {
	Email string `json:"email" validate:"required,email"`
	Qty   int    `form:"qty" validate:"gte=1"`
}

func TestFormatValidationErrors(t *testing.T) {
	err := Validate(checkout{Email: "nope"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Value must be greater than or equal to 1", fields["qty"])

	assert.Nil(t, FormatValidationErrors(assert.AnError))
	assert.NoError(t, Validate(checkout{Email: "a@b.co", Qty: 1}))
}

type slowLookup struct {
	calls atomic.Int32
}

func (s *slowLookup) GetWebsiteBySlug(_ context.Context, slug string) services.Result[models.Website] {
	s.calls.Add(1)
	time.Sleep(50 * time.Millisecond)
	if slug == "draft" {
		return services.Result[models.Website]{Success: true, Data: models.Website{Slug: slug, Status: models.WebsiteDraft}}
	}
	if slug == "missing" {
		return services.Result[models.Website]{Error: "Not found.", NotFound: true}
	}
	return services.Result[models.Website]{Success: true, Data: models.Website{Slug: slug, Status: models.WebsitePublished}}
}

func TestSiteResolver_CollapsesConcurrentLookups(t *testing.T) {
	lookup := &slowLookup{}
	r := NewSiteResolver(lookup, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Resolve(context.Background(), "acme")
			assert.True(t, res.Success)
		}()
	}
	wg.Wait()

	assert.Less(t, lookup.calls.Load(), int32(10))
}

func TestSiteResolver_ResolvePublished(t *testing.T) {
	r := NewSiteResolver(&slowLookup{}, nil)
	ctx := context.Background()

	w, ok := r.ResolvePublished(ctx, "acme")
	require.True(t, ok)
	assert.Equal(t, "acme", w.Slug)

	_, ok = r.ResolvePublished(ctx, "draft")
	assert.False(t, ok)
	_, ok = r.ResolvePublished(ctx, "missing")
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()), Recovery(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, strings.ToUpper("ok")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, "OK", w.Body.String())
}

func TestWriteSitemap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/sitemap.xml", func(c *gin.Context) {
		WriteSitemap(c, []SitemapURL{
			SitemapEntry("http://localhost:8080/", "/acme", time.Time{}, "weekly", "1.0"),
			SitemapEntry("http://localhost:8080", "/acme/blogs/a&b", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "", ""),
		})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>http://localhost:8080/acme</loc>")
	assert.Contains(t, body, "<loc>http://localhost:8080/acme/blogs/a&amp;b</loc>")
	assert.Contains(t, body, "<lastmod>2026-01-02T00:00:00Z</lastmod>")
	assert.Equal(t, 1, strings.Count(body, "<lastmod>"))
}
