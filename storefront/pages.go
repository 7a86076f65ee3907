package storefront

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/common"
	"vitrine/models"
	"vitrine/render"
)

func (s *StorefrontModule) home(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	page := render.Render(site, s.visibleProducts(c, site.Slug), s.VisibleBlogs(c, site.Slug), nil)
	c.HTML(http.StatusOK, "storefront_home.html", s.View(site, site.Name, gin.H{"page": page}))
}

func (s *StorefrontModule) about(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "storefront_about.html", s.View(site, "About "+site.Name, gin.H{
		"about": site.About,
		"story": common.Markdown(site.About.CompanyStory),
	}))
}

func (s *StorefrontModule) contact(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "storefront_contact.html", s.View(site, "Contact "+site.Name, gin.H{
		"contact": site.About.ContactInfo,
	}))
}

type variantOption struct {
	Key      string
	Name     string
	Selected bool
}

func (s *StorefrontModule) product(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}

	rawID := c.Param("id")
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		s.Missing(c, site, http.StatusBadRequest, "Invalid product id",
			fmt.Sprintf("Product ID %q is invalid. Product IDs should be numbers (e.g., 1, 2, 3).", rawID))
		return
	}

	res := s.products.GetProduct(c.Request.Context(), id)
	if !res.Success && !res.NotFound {
		s.log.Error("failed to load product", zap.Int("id", id), zap.String("error", res.Error))
		c.HTML(http.StatusBadGateway, "storefront_error.html", s.View(site, "Error", gin.H{"error": "Could not load this product. Please try again later."}))
		return
	}
	p := res.Data
	if res.NotFound || !p.Visible() || (p.WebsiteID != 0 && site.ID != 0 && p.WebsiteID != site.ID) {
		s.Missing(c, site, http.StatusNotFound, "Product not found",
			"The product you're looking for doesn't exist or is no longer available.")
		return
	}

	variantKey := c.Query("variant")
	price, inventory := p.Effective(variantKey)
	selected, hasVariant := p.Variant(variantKey)
	options := make([]variantOption, 0, len(p.Variants))
	for _, v := range p.Variants {
		key := v.ID
		if key == "" {
			key = v.Name
		}
		options = append(options, variantOption{Key: key, Name: v.Name, Selected: hasVariant && v.Name == selected.Name})
	}

	var original any
	if p.OnSale() && !hasVariant {
		original = *p.OriginalPrice
	}

	images := p.Images
	if len(images) == 0 {
		images = []string{render.ProductPlaceholder}
	}

	c.HTML(http.StatusOK, "storefront_product.html", s.View(site, p.Name, gin.H{
		"product":       p,
		"images":        images,
		"price":         price,
		"originalPrice": original,
		"inventory":     inventory,
		"inStock":       inventory > 0,
		"variants":      options,
		"variant":       variantKey,
		"description":   common.Markdown(p.Description),
	}))
}

func (s *StorefrontModule) searchPage(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	data := gin.H{"query": query}

	if query == "" {
		if res := s.search.Popular(c.Request.Context()); res.Success {
			data["popular"] = res.Data
		}
		c.HTML(http.StatusOK, "storefront_search.html", s.View(site, "Search", data))
		return
	}

	filters := url.Values{"website_slug": {site.Slug}}
	if t := c.Query("type"); t != "" {
		filters.Set("type", t)
	}
	res := s.search.Search(c.Request.Context(), query, filters)
	if !res.Success {
		s.log.Warn("search failed", zap.String("site", site.Slug), zap.String("error", res.Error))
		data["error"] = "Search is unavailable right now."
	} else {
		data["results"] = res.Data.Results
		data["total"] = res.Data.Total
		data["suggestions"] = res.Data.Suggestions
	}
	c.HTML(http.StatusOK, "storefront_search.html", s.View(site, "Search: "+query, data))
}

func (s *StorefrontModule) sitemap(c *gin.Context) {
	slug := c.Param("slug")
	site, ok := s.sites.ResolvePublished(c.Request.Context(), slug)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}
	base := "/" + site.Slug
	urls := []common.SitemapURL{
		common.SitemapEntry(s.domain, base, site.UpdatedAt, "weekly", "1.0"),
		common.SitemapEntry(s.domain, base+"/about", site.UpdatedAt, "monthly", "0.6"),
		common.SitemapEntry(s.domain, base+"/contact", site.UpdatedAt, "monthly", "0.5"),
		common.SitemapEntry(s.domain, base+"/blogs", site.UpdatedAt, "daily", "0.7"),
	}
	for _, p := range s.visibleProducts(c, site.Slug) {
		urls = append(urls, common.SitemapEntry(s.domain, fmt.Sprintf("%s/products/%d", base, p.ID), p.UpdatedAt, "weekly", "0.8"))
	}
	for _, b := range s.VisibleBlogs(c, site.Slug) {
		urls = append(urls, common.SitemapEntry(s.domain, base+"/blogs/"+b.Slug, b.Date(), "monthly", "0.6"))
	}
	common.WriteSitemap(c, urls)
}

type suggestion struct {
	Message  string
	Products []render.ProductCard
	LinkText string
	LinkURL  string
}

// Missing answers with the not-found page for a website that exists,
// suggesting a few of its products.
func (s *StorefrontModule) Missing(c *gin.Context, site models.Website, status int, title, message string) {
	var suggestions []suggestion
	if status == http.StatusBadRequest {
		suggestions = append(suggestions, suggestion{Message: message})
	}
	if products := s.visibleProducts(c, site.Slug); len(products) > 0 {
		if len(products) > 3 {
			products = products[:3]
		}
		suggestions = append(suggestions, suggestion{
			Message:  fmt.Sprintf("Found website %q. Here are some available products:", site.Name),
			Products: render.ProductCards(site.Slug, products),
			LinkText: "Visit " + site.Name,
			LinkURL:  "/" + site.Slug,
		})
	}
	c.HTML(status, "storefront_not_found.html", s.View(site, title, gin.H{
		"heading":     title,
		"message":     message,
		"path":        c.Request.URL.Path,
		"suggestions": suggestions,
	}))
}

// NotFound renders the not-found page for an unknown or unpublished website.
func (s *StorefrontModule) NotFound(c *gin.Context, slug, message string) {
	if message == "" {
		message = "The page you're looking for doesn't exist or may have been moved."
	}
	var suggestions []suggestion
	if slug != "" {
		suggestions = append(suggestions, suggestion{
			Message:  fmt.Sprintf("Website %q not found. Try the main portal instead.", slug),
			LinkText: "Go to the main portal",
			LinkURL:  "/",
		})
	}
	c.HTML(http.StatusNotFound, "storefront_not_found.html", s.View(models.Website{}, "Page Not Found", gin.H{
		"base":        "",
		"heading":     "Page Not Found",
		"message":     message,
		"path":        c.Request.URL.Path,
		"suggestions": suggestions,
	}))
}

func (s *StorefrontModule) noRoute(c *gin.Context) {
	slug := strings.SplitN(strings.Trim(c.Request.URL.Path, "/"), "/", 2)[0]
	if slug == "" {
		s.NotFound(c, "", "")
		return
	}
	site, ok := s.sites.ResolvePublished(c.Request.Context(), slug)
	if !ok {
		s.NotFound(c, slug, "")
		return
	}
	s.Missing(c, site, http.StatusNotFound, "Page Not Found", "The page you're looking for doesn't exist or may have been moved.")
}
