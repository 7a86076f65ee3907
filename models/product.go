package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
	ProductActive    ProductStatus = "active"
	ProductArchived  ProductStatus = "archived"
)

type Variant struct {
	ID        string           `json:"id,omitempty"`
	Name      string           `json:"name" validate:"required"`
	SKU       string           `json:"sku"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Inventory *int             `json:"inventory,omitempty"`
}

type Product struct {
	ID               int              `json:"id,omitempty"`
	Slug             string           `json:"slug"`
	Name             string           `json:"name" validate:"required,max=200"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Price            decimal.Decimal  `json:"price"`
	OriginalPrice    *decimal.Decimal `json:"originalPrice,omitempty"`
	Category         string           `json:"category"`
	SKU              string           `json:"sku"`
	Inventory        int              `json:"inventory" validate:"gte=0"`
	Images           []string         `json:"images"`
	Variants         []Variant        `json:"variants" validate:"dive"`
	Status           ProductStatus    `json:"status" validate:"omitempty,oneof=draft published active archived"`
	WebsiteID        int              `json:"website"`
	CreatedAt        time.Time        `json:"created_at,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at,omitempty"`
}

// Visible reports whether shoppers may see the product.
func (p Product) Visible() bool {
	return p.Status == "" || p.Status == ProductPublished || p.Status == ProductActive
}

// OnSale is true only when an original price is set and above the current one.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

func (p Product) InStock() bool {
	return p.Inventory > 0
}

func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Variant looks a variant up by id, sku or name.
func (p Product) Variant(key string) (Variant, bool) {
	if key == "" {
		return Variant{}, false
	}
	for _, v := range p.Variants {
		if v.ID == key || v.SKU == key || v.Name == key {
			return v, true
		}
	}
	return Variant{}, false
}

// Effective returns the price and inventory in force for the given variant
// key. Fields the variant leaves unset fall through to the product.
func (p Product) Effective(variantKey string) (decimal.Decimal, int) {
	price, inventory := p.Price, p.Inventory
	v, ok := p.Variant(variantKey)
	if !ok {
		return price, inventory
	}
	if v.Price != nil {
		price = *v.Price
	}
	if v.Inventory != nil {
		inventory = *v.Inventory
	}
	return price, inventory
}
