package storefront

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/cart"
	"vitrine/common"
	"vitrine/models"
	"vitrine/services"
)

const (
	PaymentCard   = "credit_card"
	PaymentPaypal = "paypal"
)

type PaymentDetails struct {
	Method     string `json:"paymentMethod" validate:"required,oneof=credit_card paypal"`
	CardNumber string `json:"cardNumber" validate:"required_if=Method credit_card,omitempty,min=12,max=19,numeric"`
}

// CheckoutForm is the posted checkout page. Shipping fields are prefixed
// with "shipping_" and ignored when SameAsBilling is set.
type CheckoutForm struct {
	Billing       models.Address
	Shipping      models.Address
	SameAsBilling bool
	Payment       PaymentDetails
}

func addressFromForm(c *gin.Context, prefix string) models.Address {
	get := func(name string) string { return strings.TrimSpace(c.PostForm(prefix + name)) }
	return models.Address{
		FullName:   get("full_name"),
		Email:      get("email"),
		Phone:      get("phone"),
		Line1:      get("address"),
		City:       get("city"),
		State:      get("state"),
		PostalCode: get("zip_code"),
		Country:    get("country"),
	}
}

func checkoutFormFrom(c *gin.Context) CheckoutForm {
	f := CheckoutForm{
		Billing:       addressFromForm(c, ""),
		SameAsBilling: c.PostForm("same_as_billing") != "",
		Payment: PaymentDetails{
			Method:     c.DefaultPostForm("payment_method", PaymentCard),
			CardNumber: strings.ReplaceAll(c.PostForm("card_number"), " ", ""),
		},
	}
	if f.SameAsBilling {
		f.Shipping = f.Billing
	} else {
		f.Shipping = addressFromForm(c, "shipping_")
		if f.Shipping.Email == "" {
			f.Shipping.Email = f.Billing.Email
		}
		if f.Shipping.FullName == "" {
			f.Shipping.FullName = f.Billing.FullName
		}
	}
	return f
}

// Validate returns inline messages keyed by form field; shipping fields are
// prefixed with "shipping.".
func (f CheckoutForm) Validate() map[string]string {
	errs := map[string]string{}
	for k, v := range common.FieldErrors(common.Validate(f.Billing)) {
		errs[k] = v
	}
	if !f.SameAsBilling {
		for k, v := range common.FieldErrors(common.Validate(f.Shipping)) {
			errs["shipping."+k] = v
		}
	}
	for k, v := range common.FieldErrors(common.Validate(f.Payment)) {
		errs[k] = v
	}
	return errs
}

func (f CheckoutForm) cardToken() string {
	n := f.Payment.CardNumber
	if f.Payment.Method != PaymentCard || len(n) < 4 {
		return ""
	}
	return "tok_" + n[len(n)-4:]
}

func (s *StorefrontModule) checkout(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	crt := s.loadCart(c, site.Slug)
	if crt.IsEmpty() {
		toCart(c, site.Slug)
		return
	}
	s.renderCheckout(c, site, crt, http.StatusOK, CheckoutForm{SameAsBilling: true, Payment: PaymentDetails{Method: PaymentCard}}, nil, "")
}

func (s *StorefrontModule) renderCheckout(c *gin.Context, site models.Website, crt cart.Cart, status int, form CheckoutForm, errs map[string]string, message string) {
	if errs == nil {
		errs = map[string]string{}
	}
	c.HTML(status, "storefront_checkout.html", s.View(site, "Checkout", gin.H{
		"cart":    crt,
		"totals":  crt.Checkout(),
		"form":    form,
		"errors":  errs,
		"message": message,
	}))
}

// placeOrder charges the shopper and records the order. The cart is only
// cleared once both the payment and the order succeeded.
func (s *StorefrontModule) placeOrder(c *gin.Context) {
	site, ok := s.Site(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	crt := s.loadCart(c, site.Slug)
	if crt.IsEmpty() {
		toCart(c, site.Slug)
		return
	}

	form := checkoutFormFrom(c)
	if errs := form.Validate(); len(errs) > 0 {
		s.renderCheckout(c, site, crt, http.StatusUnprocessableEntity, form, errs, "Please fix the highlighted fields.")
		return
	}

	totals := crt.Checkout()
	payment := s.payments.ProcessPayment(ctx, services.PaymentRequest{
		IdempotencyKey: uuid.NewString(),
		WebsiteSlug:    site.Slug,
		Amount:         totals.Total,
		Currency:       "USD",
		Method:         form.Payment.Method,
		CardToken:      form.cardToken(),
		Billing:        form.Billing,
	})
	if !payment.Success {
		s.log.Info("payment failed", zap.String("site", site.Slug), zap.String("error", payment.Error))
		s.renderCheckout(c, site, crt, http.StatusPaymentRequired, form, nil, "Payment failed: "+payment.Error)
		return
	}

	now := s.now()
	order := models.NewOrder(site.Slug, crt.OrderItems(), now)
	order.BillingAddress = form.Billing
	order.ShippingAddress = form.Shipping
	order.Coupons = crt.Codes()
	order.Totals = totals.Order()
	order.TransactionID = payment.Data.TransactionID
	if err := order.Transition(models.OrderPaid, "payment "+payment.Data.TransactionID, now); err != nil {
		s.log.Error("order transition failed", zap.Error(err))
	}

	created := s.orders.CreateOrder(ctx, order)
	if !created.Success {
		s.log.Error("failed to create order after payment",
			zap.String("site", site.Slug),
			zap.String("transaction", payment.Data.TransactionID),
			zap.String("error", created.Error))
		s.renderCheckout(c, site, crt, http.StatusBadGateway, form, nil,
			"Your payment went through but we could not record the order. Please contact the store with reference "+payment.Data.TransactionID+".")
		return
	}
	placed := created.Data
	if placed.Number == "" && placed.ID == 0 {
		placed = order
	}
	if placed.BillingAddress.Email == "" {
		placed.BillingAddress = order.BillingAddress
	}

	if err := s.carts.Delete(ctx, cart.StorageKey(cartID(c), site.Slug)); err != nil {
		s.log.Warn("failed to clear cart after order", zap.String("site", site.Slug), zap.Error(err))
	}
	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(placed); err != nil {
			s.log.Warn("failed to send order confirmation", zap.String("site", site.Slug), zap.Error(err))
		}
	}

	c.HTML(http.StatusOK, "storefront_confirmation.html", s.View(site, "Order Confirmed", gin.H{
		"order": placed,
	}))
}
