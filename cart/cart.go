package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine/models"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

var (
	ErrDuplicateDiscount = errors.New("discount code already applied")
	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock for requested quantity")
)

type Discount struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Value is what the discount takes off the given subtotal.
func (d Discount) Value(subtotal decimal.Decimal) decimal.Decimal {
	if d.Type == DiscountPercentage {
		return subtotal.Mul(d.Amount).Div(decimal.NewFromInt(100))
	}
	return d.Amount
}

type LineItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	SKU       string          `json:"sku,omitempty"`
}

// Key identifies a line: the same product in two variants is two lines.
func (l LineItem) Key() string {
	return fmt.Sprintf("%d:%s", l.ProductID, l.Variant)
}

func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a value: every mutator returns a new cart and leaves the receiver
// untouched. Totals are derived on demand and never stored.
type Cart struct {
	WebsiteSlug string     `json:"websiteSlug"`
	Items       []LineItem `json:"items"`
	Discounts   []Discount `json:"discounts"`
}

func New(websiteSlug string) Cart {
	return Cart{WebsiteSlug: websiteSlug, Items: []LineItem{}, Discounts: []Discount{}}
}

func (c Cart) clone() Cart {
	out := Cart{WebsiteSlug: c.WebsiteSlug}
	out.Items = append([]LineItem{}, c.Items...)
	out.Discounts = append([]Discount{}, c.Discounts...)
	return out
}

// Add merges item into the line with the same key, or appends a new line.
// Items with a non-positive quantity are ignored.
func (c Cart) Add(item LineItem) Cart {
	out := c.clone()
	if item.Quantity <= 0 {
		return out
	}
	for i := range out.Items {
		if out.Items[i].Key() == item.Key() {
			out.Items[i].Quantity += item.Quantity
			return out
		}
	}
	out.Items = append(out.Items, item)
	return out
}

// UpdateQuantity sets the quantity of the keyed line; zero or less removes it.
func (c Cart) UpdateQuantity(key string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(key)
	}
	out := c.clone()
	for i := range out.Items {
		if out.Items[i].Key() == key {
			out.Items[i].Quantity = quantity
		}
	}
	return out
}

func (c Cart) Remove(key string) Cart {
	out := c.clone()
	items := out.Items[:0]
	for _, it := range out.Items {
		if it.Key() != key {
			items = append(items, it)
		}
	}
	out.Items = items
	return out
}

func (c Cart) Clear() Cart {
	return New(c.WebsiteSlug)
}

// ApplyDiscount adds d. A code can only be applied once per cart.
func (c Cart) ApplyDiscount(d Discount) (Cart, error) {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	if d.Code == "" || d.Amount.IsNegative() {
		return c, ErrInvalidDiscount
	}
	if d.Type != DiscountPercentage && d.Type != DiscountFixed {
		return c, ErrInvalidDiscount
	}
	for _, existing := range c.Discounts {
		if existing.Code == d.Code {
			return c, ErrDuplicateDiscount
		}
	}
	out := c.clone()
	out.Discounts = append(out.Discounts, d)
	return out, nil
}

func (c Cart) Find(key string) (LineItem, bool) {
	for _, it := range c.Items {
		if it.Key() == key {
			return it, true
		}
	}
	return LineItem{}, false
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}

// DiscountAmount sums every applied discount against the subtotal. The sum
// is not capped; Total clamps instead.
func (c Cart) DiscountAmount() decimal.Decimal {
	subtotal := c.Subtotal()
	sum := decimal.Zero
	for _, d := range c.Discounts {
		sum = sum.Add(d.Value(subtotal))
	}
	return sum
}

// Total is the subtotal less all discounts, never below zero.
func (c Cart) Total() decimal.Decimal {
	total := c.Subtotal().Sub(c.DiscountAmount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (c Cart) OrderItems() []models.OrderItem {
	out := make([]models.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Variant:   it.Variant,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out
}

func (c Cart) Codes() []string {
	out := make([]string, 0, len(c.Discounts))
	for _, d := range c.Discounts {
		out = append(out, d.Code)
	}
	return out
}

// ItemFromProduct snapshots product (and the chosen variant) into a line.
func ItemFromProduct(p models.Product, variantKey string, quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	price, inventory := p.Effective(variantKey)
	if inventory <= 0 {
		return LineItem{}, ErrOutOfStock
	}
	if quantity > inventory {
		return LineItem{}, ErrInsufficientStock
	}

	item := LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     price,
		Quantity:  quantity,
		Image:     p.FirstImage(),
		SKU:       p.SKU,
	}
	if v, ok := p.Variant(variantKey); ok {
		item.Variant = v.Name
		if v.SKU != "" {
			item.SKU = v.SKU
		}
	}
	return item, nil
}
