package storefront

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/analytics"
	"vitrine/cache"
	"vitrine/cart"
	"vitrine/common"
	"vitrine/models"
	"vitrine/render"
	"vitrine/services"
)

// Mailer sends the shopper's order confirmation.
type Mailer interface {
	SendOrderConfirmation(o models.Order) error
}

type Deps struct {
	Sites     *common.SiteResolver
	Products  *services.ProductService
	Blogs     *services.BlogService
	Coupons   *services.CouponService
	Payments  *services.PaymentService
	Orders    *services.OrderService
	Search    *services.SearchService
	Carts     cart.Store
	Analytics *analytics.AnalyticsModule
	Cache     *cache.PageCache
	Mailer    Mailer
	Domain    string
	Log       *zap.Logger
}

// StorefrontModule serves the public pages of every published website.
type StorefrontModule struct {
	sites     *common.SiteResolver
	products  *services.ProductService
	blogs     *services.BlogService
	coupons   *services.CouponService
	payments  *services.PaymentService
	orders    *services.OrderService
	search    *services.SearchService
	carts     cart.Store
	analytics *analytics.AnalyticsModule
	cache     *cache.PageCache
	mailer    Mailer
	domain    string
	log       *zap.Logger
	now       func() time.Time
}

func NewStorefrontModule(d Deps) *StorefrontModule {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &StorefrontModule{
		sites:     d.Sites,
		products:  d.Products,
		blogs:     d.Blogs,
		coupons:   d.Coupons,
		payments:  d.Payments,
		orders:    d.Orders,
		search:    d.Search,
		carts:     d.Carts,
		analytics: d.Analytics,
		cache:     d.Cache,
		mailer:    d.Mailer,
		domain:    strings.TrimSuffix(d.Domain, "/"),
		log:       d.Log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *StorefrontModule) RegisterRoutes(router *gin.Engine) {
	g := s.Group(router)
	{
		g.GET("", s.home)
		g.GET("/about", s.about)
		g.GET("/contact", s.contact)
		g.GET("/products/:id", s.product)
		g.GET("/search", s.searchPage)
		g.GET("/sitemap.xml", s.sitemap)

		g.GET("/cart", s.viewCart)
		g.POST("/cart/add", s.addToCart)
		g.POST("/cart/update", s.updateCart)
		g.POST("/cart/remove", s.removeFromCart)
		g.POST("/cart/coupon", s.applyCoupon)
		g.POST("/cart/clear", s.clearCart)

		g.GET("/checkout", s.checkout)
		g.POST("/checkout", s.placeOrder)
	}
	router.NoRoute(s.noRoute)
}

// Group returns the /:slug route group with visit tracking and the page
// cache in front. Other public modules register their pages on it.
func (s *StorefrontModule) Group(router *gin.Engine) *gin.RouterGroup {
	return router.Group("/:slug", s.analytics.Middleware(Classify), s.cache.Middleware(CacheKey))
}

// Classify names the analytics page for a matched public route.
func Classify(c *gin.Context) (string, string, *int, bool) {
	slug := c.Param("slug")
	switch c.FullPath() {
	case "/:slug":
		return slug, analytics.PageHome, nil, true
	case "/:slug/about":
		return slug, analytics.PageAbout, nil, true
	case "/:slug/contact":
		return slug, analytics.PageContact, nil, true
	case "/:slug/search":
		return slug, analytics.PageSearch, nil, true
	case "/:slug/blogs":
		return slug, analytics.PageBlogs, nil, true
	case "/:slug/blogs/:blogSlug":
		return slug, analytics.PageBlog, nil, true
	case "/:slug/products/:id":
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return "", "", nil, false
		}
		return slug, analytics.PageProduct, &id, true
	}
	return "", "", nil, false
}

var uncached = map[string]bool{"cart": true, "checkout": true, "search": true, "sitemap.xml": true}

// CacheKey accepts the read-only public pages: home, about, contact, product
// detail and blog pages.
func CacheKey(r *http.Request) (string, string, bool) {
	parts := strings.SplitN(strings.Trim(r.URL.Path, "/"), "/", 2)
	if parts[0] == "" {
		return "", "", false
	}
	if len(parts) == 1 {
		return parts[0], "", true
	}
	first := strings.SplitN(parts[1], "/", 2)[0]
	if uncached[first] {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Site resolves the published website named by the :slug param. When there
// is none it renders the not-found page and returns false.
func (s *StorefrontModule) Site(c *gin.Context) (models.Website, bool) {
	slug := c.Param("slug")
	site, ok := s.sites.ResolvePublished(c.Request.Context(), slug)
	if !ok {
		s.NotFound(c, slug, "")
		return models.Website{}, false
	}
	return site, true
}

// View returns the template data every storefront page shares.
func (s *StorefrontModule) View(site models.Website, title string, data gin.H) gin.H {
	h := gin.H{
		"site":  site,
		"theme": render.ResolveTheme(site.Customizations),
		"base":  "/" + site.Slug,
		"title": title,
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (s *StorefrontModule) visibleProducts(c *gin.Context, slug string) []models.Product {
	res := s.products.GetProductsByWebsiteSlug(c.Request.Context(), slug)
	if !res.Success {
		s.log.Warn("failed to load products", zap.String("site", slug), zap.String("error", res.Error))
		return nil
	}
	out := make([]models.Product, 0, len(res.Data))
	for _, p := range res.Data {
		if p.Visible() {
			out = append(out, p)
		}
	}
	return out
}

// VisibleBlogs lists the website's published posts, newest first as the
// backend returns them.
func (s *StorefrontModule) VisibleBlogs(c *gin.Context, slug string) []models.BlogPost {
	res := s.blogs.GetBlogsByWebsiteSlug(c.Request.Context(), slug)
	if !res.Success {
		s.log.Warn("failed to load blogs", zap.String("site", slug), zap.String("error", res.Error))
		return nil
	}
	out := make([]models.BlogPost, 0, len(res.Data))
	for _, b := range res.Data {
		if b.Visible() {
			out = append(out, b)
		}
	}
	return out
}
