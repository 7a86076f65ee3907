package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/analytics"
	"vitrine/apiclient"
	"vitrine/cache"
	"vitrine/common"
	"vitrine/localstore"
	"vitrine/services"
	"vitrine/store"
)

const tokenSessionKey = "admin_token"

type Deps struct {
	Websites  *services.WebsiteService
	Products  *services.ProductService
	Blogs     *services.BlogService
	Orders    *services.OrderService
	Cart      *services.CartService
	Drafts    *localstore.DraftStore
	Images    *localstore.ImageStore
	Analytics *analytics.AnalyticsModule
	Cache     *cache.PageCache
	// AllowAnonymous lets requests without a session token through; the API
	// client then falls back to the configured token.
	AllowAnonymous bool
	Log            *zap.Logger
}

// AdminModule is the owner-facing JSON API.
type AdminModule struct {
	websites       *services.WebsiteService
	products       *services.ProductService
	blogs          *services.BlogService
	orders         *services.OrderService
	cart           *services.CartService
	stores         *ownerStores
	drafts         *localstore.DraftStore
	images         *localstore.ImageStore
	analytics      *analytics.AnalyticsModule
	cache          *cache.PageCache
	allowAnonymous bool
	log            *zap.Logger
}

func NewAdminModule(d Deps) *AdminModule {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &AdminModule{
		websites:       d.Websites,
		products:       d.Products,
		blogs:          d.Blogs,
		orders:         d.Orders,
		cart:           d.Cart,
		stores:         newOwnerStores(d.Log),
		drafts:         d.Drafts,
		images:         d.Images,
		analytics:      d.Analytics,
		cache:          d.Cache,
		allowAnonymous: d.AllowAnonymous,
		log:            d.Log,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/admin/session", a.login)
	router.DELETE("/admin/session", a.logout)

	adminGroup := router.Group("/admin")
	adminGroup.Use(a.requireAuth)
	{
		adminGroup.POST("/refresh", a.refresh)
		adminGroup.GET("/state", a.state)
		adminGroup.GET("/dashboard", a.dashboard)
		adminGroup.GET("/templates", a.listTemplates)
		adminGroup.GET("/themes", a.listThemes)

		adminGroup.GET("/websites", a.listWebsites)
		adminGroup.DELETE("/websites/:id", a.deleteWebsite)
		adminGroup.GET("/websites/:id/analytics", a.websiteAnalytics)
		adminGroup.GET("/websites/:id/products", a.listProducts)
		adminGroup.POST("/websites/:id/products", a.createProduct)
		adminGroup.GET("/websites/:id/blogs", a.listBlogs)
		adminGroup.POST("/websites/:id/blogs", a.createBlog)
		adminGroup.POST("/websites/:id/wizard", a.editWizard)

		adminGroup.POST("/wizard", a.newWizard)
		adminGroup.GET("/wizard/:id", a.getWizard)
		adminGroup.PUT("/wizard/:id/step", a.updateWizardStep)
		adminGroup.POST("/wizard/:id/next", a.nextWizardStep)
		adminGroup.POST("/wizard/:id/prev", a.prevWizardStep)
		adminGroup.POST("/wizard/:id/save", a.saveWizard)
		adminGroup.POST("/wizard/:id/publish", a.publishWizard)

		adminGroup.PUT("/products/:id", a.updateProduct)
		adminGroup.DELETE("/products/:id", a.deleteProduct)
		adminGroup.PUT("/blogs/:id", a.updateBlog)
		adminGroup.DELETE("/blogs/:id", a.deleteBlog)

		adminGroup.GET("/images", a.listImages)
		adminGroup.POST("/images", a.uploadImage)
		adminGroup.GET("/images/usage", a.imageUsage)
		adminGroup.PUT("/images/:id", a.updateImage)
		adminGroup.DELETE("/images/:id", a.deleteImage)

		adminGroup.GET("/orders", a.listOrders)
		adminGroup.PUT("/orders/:id/status", a.updateOrderStatus)
	}
}

// requireAuth forwards the session's API token to the backend through the
// request context and names the owner whose state the request works on.
func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	token, _ := session.Get(tokenSessionKey).(string)

	if token == "" && !a.allowAnonymous {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	c.Set(ownerCtxKey, ownerKey(token))
	if token != "" {
		c.Request = c.Request.WithContext(apiclient.WithToken(c.Request.Context(), token))
	}
	c.Next()
}

type loginRequest struct {
	Token string `json:"token" binding:"required"`
}

func (a *AdminModule) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	session := sessions.Default(c)
	session.Set(tokenSessionKey, req.Token)
	if err := session.Save(); err != nil {
		a.log.Error("failed to save admin session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed in"})
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	if token, _ := session.Get(tokenSessionKey).(string); token != "" {
		a.stores.drop(ownerKey(token))
	}
	session.Delete(tokenSessionKey)
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

type stateView struct {
	Websites int    `json:"websites"`
	Products int    `json:"products"`
	Blogs    int    `json:"blogs"`
	Orders   int    `json:"orders"`
	CartSize int    `json:"cartItems"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
}

func viewOf(s store.State) stateView {
	return stateView{
		Websites: len(s.Websites),
		Products: len(s.Products),
		Blogs:    len(s.Blogs),
		Orders:   len(s.Orders),
		CartSize: s.Cart.ItemCount(),
		Loading:  s.UI.Loading,
		Error:    s.UI.Error,
	}
}

// refresh reloads every resource from the backend into the store.
func (a *AdminModule) refresh(c *gin.Context) {
	st := a.storeOf(c)
	st.Dispatch(store.SetError{})
	st.Hydrate(c.Request.Context(), store.Backend{
		Websites: a.websites,
		Products: a.products,
		Blogs:    a.blogs,
		Orders:   a.orders,
		Cart:     a.cart,
	})
	c.JSON(http.StatusOK, viewOf(st.State()))
}

func (a *AdminModule) state(c *gin.Context) {
	s := a.storeOf(c).State()
	c.JSON(http.StatusOK, gin.H{
		"summary":  viewOf(s),
		"websites": s.Websites,
		"products": s.Products,
		"blogs":    s.Blogs,
		"orders":   s.Orders,
	})
}

func (a *AdminModule) dashboard(c *gin.Context) {
	res := a.orders.GetDashboard(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	c.JSON(http.StatusOK, res.Data)
}

func (a *AdminModule) listWebsites(c *gin.Context) {
	st := a.storeOf(c)
	res := a.websites.GetWebsites(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	st.Dispatch(store.SetWebsites{Websites: res.Data})
	c.JSON(http.StatusOK, res.Data)
}

func (a *AdminModule) deleteWebsite(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	slug := a.siteSlug(c, id)

	res := a.websites.DeleteWebsite(ctx, id)
	if !res.Success {
		status := http.StatusBadGateway
		if res.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": res.Error})
		return
	}

	websites := st.State().Websites
	kept := websites[:0:0]
	for _, w := range websites {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	st.Dispatch(store.SetWebsites{Websites: kept})
	a.clearSite(slug)
	c.JSON(http.StatusOK, gin.H{"message": "Website deleted"})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"fields": common.FormatValidationErrors(err),
	})
}

// siteSlug finds the slug of a website, from the owner's store when it is
// loaded and from the backend otherwise. It returns "" when neither knows it.
func (a *AdminModule) siteSlug(c *gin.Context, websiteID int) string {
	if websiteID <= 0 {
		return ""
	}
	for _, w := range a.storeOf(c).State().Websites {
		if w.ID == websiteID {
			return w.Slug
		}
	}
	res := a.websites.GetWebsite(c.Request.Context(), websiteID)
	if !res.Success {
		return ""
	}
	return res.Data.Slug
}

// clearSite drops the cached public pages of a website after a change.
func (a *AdminModule) clearSite(slug string) {
	if slug == "" || a.cache == nil {
		return
	}
	if err := a.cache.ClearSite(slug); err != nil {
		a.log.Warn("failed to clear page cache", zap.String("site", slug), zap.Error(err))
	}
}
