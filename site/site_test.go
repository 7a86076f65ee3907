package site

import (
	"encoding/xml"
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
	"vitrine/services"
)

const websitesJSON = `{"results": [
	{"id": 1, "slug": "zeta", "name": "Zeta Shoes", "status": "published", "category": "fashion", "description": "Shoes"},
	{"id": 2, "slug": "acme", "name": "Acme", "status": "published", "category": "technology", "updated_at": "2026-03-01T10:00:00Z"},
	{"id": 3, "slug": "wip", "name": "Work In Progress", "status": "draft"}
]}`

func setupTestRouter(t *testing.T, websites string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/websites/":
			if websites == "" {
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, `{"error": "boom"}`)
				return
			}
			io.WriteString(w, websites)
		case "/blogs/by_website_slug/":
			switch r.URL.Query().Get("slug") {
			case "acme":
				io.WriteString(w, `[
					{"id": 1, "slug": "old", "title": "Old News", "tags": ["News"], "status": "published", "created_at": "2026-01-01T00:00:00Z"},
					{"id": 2, "slug": "draft", "title": "Hidden Draft", "status": "draft"}
				]`)
			case "zeta":
				io.WriteString(w, `[{"id": 3, "slug": "new", "title": "New Shoes", "tags": ["style"], "status": "published", "created_at": "2026-02-01T00:00:00Z"}]`)
			default:
				w.WriteHeader(http.StatusInternalServerError)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	api := apiclient.New(srv.URL, nil, nil)

	router := gin.New()
	router.SetFuncMap(common.FuncMap("http://localhost:8080"))
	router.LoadHTMLGlob("../*/views/*.html")
	NewSiteModule(services.NewWebsiteService(api), services.NewBlogService(api), "http://localhost:8080/", nil).RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex_ListsPublishedWebsites(t *testing.T) {
	router := setupTestRouter(t, websitesJSON)

	w := get(router, "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Zeta Shoes")
	assert.NotContains(t, body, "Work In Progress")
	assert.Less(t, strings.Index(body, "Acme"), strings.Index(body, "Zeta Shoes"))
}

func TestIndex_CategoryFilter(t *testing.T) {
	router := setupTestRouter(t, websitesJSON)

	w := get(router, "/?category=Fashion")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/zeta"`)
	assert.NotContains(t, w.Body.String(), `href="/acme"`)
}

func TestIndex_BackendDown(t *testing.T) {
	router := setupTestRouter(t, "")

	w := get(router, "/")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Could not load websites")
}

func TestExplore(t *testing.T) {
	router := setupTestRouter(t, websitesJSON)

	w := get(router, "/explore")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "New Shoes")
	assert.Contains(t, body, "Old News")
	assert.NotContains(t, body, "Hidden Draft")
	assert.Less(t, strings.Index(body, "New Shoes"), strings.Index(body, "Old News"))

	w = get(router, "/explore/news")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Old News")
	assert.NotContains(t, w.Body.String(), "New Shoes")
}

func TestSitemap(t *testing.T) {
	router := setupTestRouter(t, websitesJSON)

	w := get(router, "/sitemap.xml")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))

	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"http://localhost:8080/",
		"http://localhost:8080/explore",
		"http://localhost:8080/acme",
		"http://localhost:8080/zeta",
		"http://localhost:8080/explore/news",
		"http://localhost:8080/explore/style",
	}, locs)
	assert.Equal(t, "2026-03-01T10:00:00Z", set.URLs[2].LastMod)
}
