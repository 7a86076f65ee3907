package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/config"
	"vitrine/models"
)

func sampleOrder() models.Order {
	o := models.NewOrder("acme", []models.OrderItem{
		{ProductID: 1, Name: "Mug", Variant: "Blue", Price: decimal.RequireFromString("12.5"), Quantity: 2},
	}, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC))
	o.Number = "ORD-1"
	o.BillingAddress = models.Address{FullName: "Ana", Email: "ana@example.com"}
	o.Totals = models.OrderTotals{
		Subtotal: decimal.RequireFromString("25"),
		Tax:      decimal.RequireFromString("2"),
		Shipping: decimal.RequireFromString("9.99"),
		Total:    decimal.RequireFromString("36.99"),
	}
	return o
}

func TestSendOrderConfirmation_DisabledIsNoop(t *testing.T) {
	e := NewEmailService(config.SMTPConfig{}, "http://localhost:8080", nil)
	e.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, e.SendOrderConfirmation(sampleOrder()))
}

func TestSendOrderConfirmation(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587", From: "shop@example.com"}
	e := NewEmailService(cfg, "http://localhost:8080/", nil)

	var gotAddr string
	var gotTo []string
	var gotMsg string
	e.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	require.NoError(t, e.SendOrderConfirmation(sampleOrder()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ana@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Order ORD-1 confirmed")
	assert.Contains(t, gotMsg, "2 x Mug (Blue)  $12.50")
	assert.Contains(t, gotMsg, "Total: $36.99")
	assert.Contains(t, gotMsg, "http://localhost:8080/acme")
	assert.NotContains(t, gotMsg, "Discount:")
}

func TestSendOrderConfirmation_Failure(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: "587", From: "shop@example.com"}
	e := NewEmailService(cfg, "", nil)
	e.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }

	err := e.SendOrderConfirmation(sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}
