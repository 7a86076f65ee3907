package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"vitrine/common"
	"vitrine/config"
	"vitrine/models"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends shopper notifications. Without an SMTP host it logs and
// returns nil so checkout never depends on mail delivery.
type EmailService struct {
	cfg    config.SMTPConfig
	domain string
	log    *zap.Logger
	send   sendFunc
}

func NewEmailService(cfg config.SMTPConfig, domain string, log *zap.Logger) *EmailService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmailService{cfg: cfg, domain: strings.TrimSuffix(domain, "/"), log: log, send: smtp.SendMail}
}

func (e *EmailService) SendOrderConfirmation(o models.Order) error {
	to := o.BillingAddress.Email
	if to == "" {
		to = o.ShippingAddress.Email
	}
	if to == "" {
		return nil
	}
	if !e.cfg.Enabled() {
		e.log.Info("smtp not configured, skipping order confirmation",
			zap.String("site", o.WebsiteSlug), zap.String("order", o.Number))
		return nil
	}

	msg := e.orderMessage(to, o)
	auth := smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)
	addr := fmt.Sprintf("%s:%s", e.cfg.Host, e.cfg.Port)
	if err := e.send(addr, auth, e.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func (e *EmailService) orderMessage(to string, o models.Order) []byte {
	subject := "Your order is confirmed"
	if o.Number != "" {
		subject = fmt.Sprintf("Order %s confirmed", o.Number)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order. Here is what you bought:\n\n", o.BillingAddress.FullName)
	for _, it := range o.Items {
		name := it.Name
		if it.Variant != "" {
			name += " (" + it.Variant + ")"
		}
		fmt.Fprintf(&b, "  %d x %s  %s\n", it.Quantity, name, common.Money(it.Price))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", common.Money(o.Totals.Subtotal))
	if o.Totals.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -%s\n", common.Money(o.Totals.Discount))
	}
	fmt.Fprintf(&b, "Tax: %s\n", common.Money(o.Totals.Tax))
	fmt.Fprintf(&b, "Shipping: %s\n", common.Money(o.Totals.Shipping))
	fmt.Fprintf(&b, "Total: %s\n", common.Money(o.Totals.Total))
	fmt.Fprintf(&b, "\nVisit the store again at %s/%s\n", e.domain, o.WebsiteSlug)

	return []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.cfg.From, to, subject, b.String()))
}
