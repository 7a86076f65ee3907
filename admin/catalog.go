package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"vitrine/common"
	"vitrine/models"
	"vitrine/store"
)

// generateSlug turns a post title into a URL slug, folding accents so that
// "Café com Leite" becomes "cafe-com-leite".
func generateSlug(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	slug := strings.Map(func(r rune) rune {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			return r
		case r == ' ' || r == '_':
			return '-'
		}
		return -1
	}, strings.ToLower(folded))

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

func (a *AdminModule) listProducts(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res := a.products.GetProducts(c.Request.Context(), id)
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	c.JSON(http.StatusOK, res.Data)
}

// bindProduct decodes and validates a product body, answering 400/422 on
// failure.
func bindProduct(c *gin.Context) (models.Product, bool) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return p, false
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := common.Validate(p); err != nil {
		validationFailed(c, err)
		return p, false
	}
	if p.Price.IsNegative() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": []common.ValidationError{{Field: "price", Message: "Value must be greater than or equal to 0"}},
		})
		return p, false
	}
	if p.Slug == "" {
		p.Slug = generateSlug(p.Name)
	}
	return p, true
}

func (a *AdminModule) createProduct(c *gin.Context) {
	st := a.storeOf(c)
	websiteID, ok := idParam(c)
	if !ok {
		return
	}
	p, ok := bindProduct(c)
	if !ok {
		return
	}
	p.WebsiteID = websiteID

	ctx := c.Request.Context()
	res := a.products.CreateProduct(ctx, p)
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	st.Dispatch(store.SetProducts{Products: append(st.State().Products, res.Data)})
	a.clearSite(a.siteSlug(c, websiteID))
	c.JSON(http.StatusCreated, res.Data)
}

func (a *AdminModule) updateProduct(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, ok := bindProduct(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res := a.products.UpdateProduct(ctx, id, p)
	if !res.Success {
		status := http.StatusBadGateway
		if res.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": res.Error})
		return
	}

	products := st.State().Products
	updated := make([]models.Product, 0, len(products))
	for _, existing := range products {
		if existing.ID == id {
			existing = res.Data
		}
		updated = append(updated, existing)
	}
	st.Dispatch(store.SetProducts{Products: updated})
	a.clearSite(a.siteSlug(c, res.Data.WebsiteID))
	c.JSON(http.StatusOK, res.Data)
}

// deleteProduct removes the product from the store first; a rejected delete
// re-fetches the authoritative list.
func (a *AdminModule) deleteProduct(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	websiteID := 0
	for _, p := range st.State().Products {
		if p.ID == id {
			websiteID = p.WebsiteID
			break
		}
	}

	err := st.Optimistic(ctx, store.RemoveProduct{ID: id},
		func(ctx context.Context) error {
			res := a.products.DeleteProduct(ctx, id)
			if !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
		func(ctx context.Context) (store.Action, error) {
			res := a.products.GetProducts(ctx, 0)
			if !res.Success {
				return nil, errors.New(res.Error)
			}
			return store.SetProducts{Products: res.Data}, nil
		})
	if err != nil {
		a.log.Warn("product delete rejected", zap.Int("product", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "products": st.State().Products})
		return
	}
	a.clearSite(a.siteSlug(c, websiteID))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (a *AdminModule) listBlogs(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res := a.blogs.GetBlogs(c.Request.Context(), id)
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	c.JSON(http.StatusOK, res.Data)
}

func bindBlog(c *gin.Context) (models.BlogPost, bool) {
	var b models.BlogPost
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return b, false
	}
	b.Title = strings.TrimSpace(b.Title)
	if err := common.Validate(b); err != nil {
		validationFailed(c, err)
		return b, false
	}
	if b.Slug == "" {
		b.Slug = generateSlug(b.Title)
	}
	b.Tags = models.NormalizeTags(b.Tags)
	if b.Status == "" {
		b.Status = models.BlogDraft
	}
	return b, true
}

func (a *AdminModule) createBlog(c *gin.Context) {
	st := a.storeOf(c)
	websiteID, ok := idParam(c)
	if !ok {
		return
	}
	b, ok := bindBlog(c)
	if !ok {
		return
	}
	b.WebsiteID = websiteID

	ctx := c.Request.Context()
	res := a.blogs.CreateBlog(ctx, b)
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}
	st.Dispatch(store.SetBlogs{Blogs: append(st.State().Blogs, res.Data)})
	a.clearSite(a.siteSlug(c, websiteID))
	c.JSON(http.StatusCreated, res.Data)
}

func (a *AdminModule) updateBlog(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, ok := bindBlog(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res := a.blogs.UpdateBlog(ctx, id, b)
	if !res.Success {
		status := http.StatusBadGateway
		if res.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": res.Error})
		return
	}

	blogs := st.State().Blogs
	updated := make([]models.BlogPost, 0, len(blogs))
	for _, existing := range blogs {
		if existing.ID == id {
			existing = res.Data
		}
		updated = append(updated, existing)
	}
	st.Dispatch(store.SetBlogs{Blogs: updated})
	a.clearSite(a.siteSlug(c, res.Data.WebsiteID))
	c.JSON(http.StatusOK, res.Data)
}

func (a *AdminModule) deleteBlog(c *gin.Context) {
	st := a.storeOf(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	websiteID := 0
	for _, b := range st.State().Blogs {
		if b.ID == id {
			websiteID = b.WebsiteID
			break
		}
	}

	err := st.Optimistic(ctx, store.RemoveBlog{ID: id},
		func(ctx context.Context) error {
			res := a.blogs.DeleteBlog(ctx, id)
			if !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
		func(ctx context.Context) (store.Action, error) {
			res := a.blogs.GetBlogs(ctx, 0)
			if !res.Success {
				return nil, errors.New(res.Error)
			}
			return store.SetBlogs{Blogs: res.Data}, nil
		})
	if err != nil {
		a.log.Warn("blog delete rejected", zap.Int("blog", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "blogs": st.State().Blogs})
		return
	}
	a.clearSite(a.siteSlug(c, websiteID))
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}
