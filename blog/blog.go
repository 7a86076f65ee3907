package blog

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/common"
	"vitrine/models"
	"vitrine/render"
	"vitrine/storefront"
)

const relatedLimit = 3

// BlogModule serves the public blog of every published website. Pages are
// registered on the storefront's /:slug group and share its layout.
type BlogModule struct {
	shell *storefront.StorefrontModule
	log   *zap.Logger
}

func NewBlogModule(shell *storefront.StorefrontModule, log *zap.Logger) *BlogModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlogModule{shell: shell, log: log}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	blogGroup := b.shell.Group(router)
	{
		blogGroup.GET("/blogs", b.index)
		blogGroup.GET("/blogs/:blogSlug", b.post)
	}
}

type tagCount struct {
	Name   string
	Count  int
	Active bool
}

// tagCloud counts tags across posts, most used first and alphabetical on
// ties. Tags differing only in case are counted together under the first
// spelling seen.
func tagCloud(posts []models.BlogPost, active string) []tagCount {
	index := map[string]int{}
	var out []tagCount
	for _, p := range posts {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if i, ok := index[key]; ok {
				out[i].Count++
				continue
			}
			index[key] = len(out)
			out = append(out, tagCount{Name: t, Count: 1, Active: strings.EqualFold(t, active)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func filterByTag(posts []models.BlogPost, tag string) []models.BlogPost {
	if tag == "" {
		return posts
	}
	out := make([]models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// related picks up to relatedLimit other posts, preferring those sharing a
// tag with current and keeping the backend's order otherwise.
func related(posts []models.BlogPost, current models.BlogPost) []models.BlogPost {
	var sharing, rest []models.BlogPost
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		shares := false
		for _, t := range current.Tags {
			if p.HasTag(t) {
				shares = true
				break
			}
		}
		if shares {
			sharing = append(sharing, p)
		} else {
			rest = append(rest, p)
		}
	}
	out := append(sharing, rest...)
	if len(out) > relatedLimit {
		out = out[:relatedLimit]
	}
	return out
}

func (b *BlogModule) index(c *gin.Context) {
	site, ok := b.shell.Site(c)
	if !ok {
		return
	}
	posts := b.shell.VisibleBlogs(c, site.Slug)
	tag := strings.TrimSpace(c.Query("tag"))
	shown := filterByTag(posts, tag)

	title := "Blog"
	if tag != "" {
		title = "Posts tagged " + tag
	}
	c.HTML(http.StatusOK, "blog_index.html", b.shell.View(site, title+" - "+site.Name, gin.H{
		"heading": title,
		"tag":     tag,
		"tags":    tagCloud(posts, tag),
		"posts":   render.BlogCards(site.Slug, shown),
	}))
}

func (b *BlogModule) post(c *gin.Context) {
	site, ok := b.shell.Site(c)
	if !ok {
		return
	}
	slug := c.Param("blogSlug")
	posts := b.shell.VisibleBlogs(c, site.Slug)

	var current models.BlogPost
	found := false
	for _, p := range posts {
		if p.Slug == slug {
			current, found = p, true
			break
		}
	}
	if !found {
		b.log.Debug("blog post not found", zap.String("site", site.Slug), zap.String("slug", slug))
		b.shell.Missing(c, site, http.StatusNotFound, "Post not found",
			"The post you're looking for doesn't exist or is no longer published.")
		return
	}

	custom := current.Customizations
	if custom == (models.BlogCustomizations{}) {
		custom = models.DefaultBlogCustomizations()
	}
	c.HTML(http.StatusOK, "blog_post.html", b.shell.View(site, current.Title+" - "+site.Name, gin.H{
		"post":    current,
		"content": common.Markdown(current.Content),
		"custom":  custom,
		"related": render.BlogCards(site.Slug, related(posts, current)),
	}))
}
