package storefront

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/cart"
	"vitrine/models"
	"vitrine/store"
)

const (
	cartSessionKey = "cart_id"
	cartFlashKey   = "cart"
)

// cartID returns the shopper's cart id, issuing one on first use.
func cartID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(cartSessionKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Set(cartSessionKey, id)
	_ = session.Save()
	return id
}

func (s *StorefrontModule) loadCart(c *gin.Context, slug string) cart.Cart {
	crt, err := cart.LoadOrNew(c.Request.Context(), s.carts, cartID(c), slug)
	if err != nil {
		s.log.Warn("failed to load cart, starting empty", zap.String("site", slug), zap.Error(err))
	}
	return crt
}

// mutateCart runs a through the store reducer against the shopper's cart and
// persists the result. A reducer error is flashed to the cart page.
func (s *StorefrontModule) mutateCart(c *gin.Context, slug string, a store.Action) {
	before := s.loadCart(c, slug)
	next := store.Reduce(store.State{Cart: before}, a)
	if next.UI.Error != "" {
		flash(c, next.UI.Error)
	}
	if err := s.carts.Save(c.Request.Context(), cart.StorageKey(cartID(c), slug), next.Cart); err != nil {
		s.log.Error("failed to save cart", zap.String("site", slug), zap.Error(err))
		flash(c, "We could not update your cart. Please try again.")
	}
}

func flash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, cartFlashKey)
	_ = session.Save()
}

func flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes(cartFlashKey)
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

func toCart(c *gin.Context, slug string) {
	c.Redirect(http.StatusSeeOther, "/"+slug+"/cart")
}

func (s *StorefrontModule) viewCart(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	crt := s.loadCart(c, site.Slug)
	c.HTML(http.StatusOK, "storefront_cart.html", s.View(site, "Your Cart", gin.H{
		"cart":    crt,
		"totals":  crt.Checkout(),
		"flashes": flashes(c),
	}))
}

func (s *StorefrontModule) addToCart(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.PostForm("product_id"))
	if err != nil || id <= 0 {
		flash(c, "Invalid product id")
		toCart(c, site.Slug)
		return
	}
	quantity := 1
	if q := c.PostForm("quantity"); q != "" {
		if quantity, err = strconv.Atoi(q); err != nil {
			quantity = 0
		}
	}

	res := s.products.GetProduct(c.Request.Context(), id)
	p := res.Data
	if !res.Success || !p.Visible() || (p.WebsiteID != 0 && site.ID != 0 && p.WebsiteID != site.ID) {
		flash(c, "Product not found")
		toCart(c, site.Slug)
		return
	}

	variant := c.PostForm("variant")
	item, err := cart.ItemFromProduct(p, variant, quantity)
	if err == nil {
		inCart, _ := s.loadCart(c, site.Slug).Find(item.Key())
		if _, inventory := p.Effective(variant); inCart.Quantity+quantity > inventory {
			err = cart.ErrInsufficientStock
		}
	}
	if err != nil {
		flash(c, addError(p, err))
		toCart(c, site.Slug)
		return
	}

	s.mutateCart(c, site.Slug, store.AddToCart{Item: item})
	toCart(c, site.Slug)
}

func addError(p models.Product, err error) string {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		return p.Name + " is out of stock"
	case errors.Is(err, cart.ErrInsufficientStock):
		return "Not enough " + p.Name + " in stock for that quantity"
	default:
		return "Quantity must be at least 1"
	}
}

func (s *StorefrontModule) updateCart(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		flash(c, "Quantity must be a number")
		toCart(c, site.Slug)
		return
	}
	s.mutateCart(c, site.Slug, store.UpdateCartQuantity{Key: c.PostForm("key"), Quantity: quantity})
	toCart(c, site.Slug)
}

func (s *StorefrontModule) removeFromCart(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	s.mutateCart(c, site.Slug, store.RemoveFromCart{Key: c.PostForm("key")})
	toCart(c, site.Slug)
}

func (s *StorefrontModule) clearCart(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	s.mutateCart(c, site.Slug, store.ClearCart{})
	toCart(c, site.Slug)
}

// applyCoupon validates the code with the backend first. A rejected code
// leaves the cart as it was.
func (s *StorefrontModule) applyCoupon(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	code := strings.TrimSpace(c.PostForm("code"))
	res := s.coupons.ValidateCoupon(c.Request.Context(), code)
	if !res.Success {
		flash(c, res.Error)
		toCart(c, site.Slug)
		return
	}
	s.mutateCart(c, site.Slug, store.ApplyDiscount{Discount: cart.Discount{
		Code:   res.Data.Code,
		Type:   res.Data.Type,
		Amount: res.Data.Discount,
	}})
	toCart(c, site.Slug)
}
