package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vitrine/models"
)

const ProductPlaceholder = "https://via.placeholder.com/300x200/gray/white?text=Product"

type ProductCard struct {
	ID            int
	Name          string
	URL           string
	AddURL        string
	Image         string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	InStock       bool

	product   models.Product
	addToCart func(models.Product)
}

// AddToCart fires the add-to-cart callback. Out of stock cards never fire.
func (p ProductCard) AddToCart() bool {
	if !p.InStock || p.addToCart == nil {
		return false
	}
	p.addToCart(p.product)
	return true
}

func newProductCard(slug string, p models.Product, onAdd func(models.Product)) ProductCard {
	card := ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		URL:         fmt.Sprintf("/%s/products/%d", slug, p.ID),
		AddURL:      "/" + slug + "/cart/add",
		Image:       or(p.FirstImage(), ProductPlaceholder),
		Description: p.ShortDescription,
		Price:       p.Price,
		InStock:     p.InStock(),
		product:     p,
		addToCart:   onAdd,
	}
	if card.Description == "" && p.Description != "" {
		card.Description = truncate(p.Description, 100) + "..."
	}
	if p.OnSale() {
		orig := *p.OriginalPrice
		card.OriginalPrice = &orig
	}
	return card
}

// ProductCards builds cards without an add-to-cart callback, for pages that
// post to the cart instead.
func ProductCards(slug string, products []models.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, newProductCard(slug, p, nil))
	}
	return out
}

// BlogCard renders either the standard card or the hover-overlay variant.
type BlogCard struct {
	Title      string
	URL        string
	Image      string
	Excerpt    string
	Date       time.Time
	FirstTag   string
	Tags       []string
	Author     string
	Overlay    bool
	Placement  string
	ShowAuthor bool
	ShowDate   bool
	ShowTags   bool
}

func newBlogCard(slug string, b models.BlogPost) BlogCard {
	custom := b.Customizations
	if custom == (models.BlogCustomizations{}) {
		custom = models.DefaultBlogCustomizations()
	}
	return BlogCard{
		Title:      b.Title,
		URL:        fmt.Sprintf("/%s/blogs/%s", slug, b.Slug),
		Image:      b.FeaturedImage,
		Excerpt:    b.Excerpt,
		Date:       b.Date(),
		FirstTag:   b.FirstTag(),
		Tags:       b.Tags,
		Author:     b.Author,
		Overlay:    b.IsOverlay(),
		Placement:  or(custom.Layout, models.PlacementColumn),
		ShowAuthor: custom.ShowAuthor,
		ShowDate:   custom.ShowDate,
		ShowTags:   custom.ShowTags,
	}
}

func BlogCards(slug string, posts []models.BlogPost) []BlogCard {
	out := make([]BlogCard, 0, len(posts))
	for _, b := range posts {
		out = append(out, newBlogCard(slug, b))
	}
	return out
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
