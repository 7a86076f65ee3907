package cart

import (
	"github.com/shopspring/decimal"

	"vitrine/models"
)

var (
	TaxRate               = decimal.RequireFromString("0.08")
	FreeShippingThreshold = decimal.NewFromInt(50)
	ShippingFee           = decimal.RequireFromString("9.99")
)

type Totals struct {
	Subtotal           decimal.Decimal
	Discount           decimal.Decimal
	DiscountedSubtotal decimal.Decimal
	Tax                decimal.Decimal
	Shipping           decimal.Decimal
	Total              decimal.Decimal
}

func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

func (t Totals) Order() models.OrderTotals {
	return models.OrderTotals{
		Subtotal: t.Subtotal,
		Discount: t.Discount,
		Tax:      t.Tax,
		Shipping: t.Shipping,
		Total:    t.Total,
	}
}

// Checkout prices the cart for the cart and checkout pages alike. Tax is
// charged on the discounted subtotal; shipping is waived strictly above the
// threshold. An empty cart costs nothing.
func (c Cart) Checkout() Totals {
	subtotal := c.Subtotal()
	discounted := c.Total()

	shipping := ShippingFee
	if c.IsEmpty() || discounted.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := discounted.Mul(TaxRate)

	return Totals{
		Subtotal:           subtotal,
		Discount:           c.DiscountAmount(),
		DiscountedSubtotal: discounted,
		Tax:                tax,
		Shipping:           shipping,
		Total:              discounted.Add(tax).Add(shipping),
	}
}
