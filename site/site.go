package site

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vitrine/common"
	"vitrine/models"
	"vitrine/render"
	"vitrine/services"
)

const (
	exploreLimit  = 50
	fetchParallel = 4
)

// SiteModule serves the platform pages that sit outside any website: the
// directory of published websites, a feed of their latest posts and the
// platform sitemap.
type SiteModule struct {
	websites *services.WebsiteService
	blogs    *services.BlogService
	domain   string
	log      *zap.Logger
}

func NewSiteModule(websites *services.WebsiteService, blogs *services.BlogService, domain string, log *zap.Logger) *SiteModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &SiteModule{websites: websites, blogs: blogs, domain: strings.TrimSuffix(domain, "/"), log: log}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.index)
	router.GET("/explore", s.explore)
	router.GET("/explore/:tagName", s.exploreByTag)
	router.GET("/sitemap.xml", s.sitemap)
}

func view(title string, data gin.H) gin.H {
	h := gin.H{
		"site":  models.Website{},
		"theme": render.ResolveTheme(models.Customizations{}),
		"base":  "",
		"title": title,
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (s *SiteModule) published(ctx context.Context) ([]models.Website, error) {
	res := s.websites.GetWebsites(ctx)
	if !res.Success {
		return nil, fmt.Errorf("load websites: %s", res.Error)
	}
	out := make([]models.Website, 0, len(res.Data))
	for _, w := range res.Data {
		if w.IsPublished() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

type directoryEntry struct {
	Site        models.Website
	URL         string
	Description string
}

func (s *SiteModule) index(c *gin.Context) {
	sites, err := s.published(c.Request.Context())
	if err != nil {
		s.log.Error("failed to list websites", zap.Error(err))
		c.HTML(http.StatusBadGateway, "site_index.html", view("Vitrine", gin.H{
			"error": "Could not load websites right now. Please try again later.",
		}))
		return
	}

	category := strings.TrimSpace(c.Query("category"))
	categories := map[string]bool{}
	entries := make([]directoryEntry, 0, len(sites))
	for _, w := range sites {
		if w.Category != "" {
			categories[w.Category] = true
		}
		if category != "" && !strings.EqualFold(w.Category, category) {
			continue
		}
		entries = append(entries, directoryEntry{
			Site:        w,
			URL:         "/" + w.Slug,
			Description: common.Truncate(140, w.Description),
		})
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	c.HTML(http.StatusOK, "site_index.html", view("Vitrine", gin.H{
		"websites":   entries,
		"categories": names,
		"category":   category,
	}))
}

type feedEntry struct {
	SiteName string
	SiteURL  string
	Card     render.BlogCard
}

// feed gathers the published posts of every published website, newest
// first. Websites whose posts fail to load are skipped.
func (s *SiteModule) feed(ctx context.Context, sites []models.Website, tag string) []feedEntry {
	var (
		mu  sync.Mutex
		out []feedEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallel)
	for _, w := range sites {
		g.Go(func() error {
			res := s.blogs.GetBlogsByWebsiteSlug(gctx, w.Slug)
			if !res.Success {
				s.log.Warn("failed to load blogs", zap.String("site", w.Slug), zap.String("error", res.Error))
				return nil
			}
			var posts []models.BlogPost
			for _, b := range res.Data {
				if b.Visible() && (tag == "" || b.HasTag(tag)) {
					posts = append(posts, b)
				}
			}
			cards := render.BlogCards(w.Slug, posts)
			mu.Lock()
			defer mu.Unlock()
			for _, card := range cards {
				out = append(out, feedEntry{SiteName: w.Name, SiteURL: "/" + w.Slug, Card: card})
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Card.Date.After(out[j].Card.Date)
	})
	if len(out) > exploreLimit {
		out = out[:exploreLimit]
	}
	return out
}

func (s *SiteModule) explore(c *gin.Context) {
	s.renderFeed(c, "")
}

func (s *SiteModule) exploreByTag(c *gin.Context) {
	s.renderFeed(c, c.Param("tagName"))
}

func (s *SiteModule) renderFeed(c *gin.Context, tag string) {
	title := "Latest posts"
	if tag != "" {
		title = "Posts tagged " + tag
	}
	sites, err := s.published(c.Request.Context())
	if err != nil {
		s.log.Error("failed to list websites", zap.Error(err))
		c.HTML(http.StatusBadGateway, "site_explore.html", view(title, gin.H{
			"heading": title,
			"tag":     tag,
			"error":   "Could not load posts right now. Please try again later.",
		}))
		return
	}
	c.HTML(http.StatusOK, "site_explore.html", view(title, gin.H{
		"heading": title,
		"tag":     tag,
		"entries": s.feed(c.Request.Context(), sites, tag),
	}))
}

func (s *SiteModule) sitemap(c *gin.Context) {
	urls := []common.SitemapURL{
		common.SitemapEntry(s.domain, "/", time.Time{}, "weekly", "1.0"),
		common.SitemapEntry(s.domain, "/explore", time.Time{}, "daily", "0.8"),
	}

	sites, err := s.published(c.Request.Context())
	if err != nil {
		s.log.Warn("sitemap without websites", zap.Error(err))
	}
	for _, w := range sites {
		urls = append(urls, common.SitemapEntry(s.domain, "/"+w.Slug, w.UpdatedAt, "weekly", "0.7"))
	}

	tags := map[string]bool{}
	for _, e := range s.feed(c.Request.Context(), sites, "") {
		for _, t := range e.Card.Tags {
			tags[strings.ToLower(t)] = true
		}
	}
	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		urls = append(urls, common.SitemapEntry(s.domain, "/explore/"+url.PathEscape(t), time.Time{}, "weekly", "0.4"))
	}

	common.WriteSitemap(c, urls)
}
