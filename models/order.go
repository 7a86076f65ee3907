package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderCreated: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Address struct {
	FullName   string `json:"fullName" form:"full_name" validate:"required"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Phone      string `json:"phone" form:"phone"`
	Line1      string `json:"address" form:"address" validate:"required"`
	City       string `json:"city" form:"city" validate:"required"`
	State      string `json:"state" form:"state"`
	PostalCode string `json:"zipCode" form:"zip_code" validate:"required"`
	Country    string `json:"country" form:"country" validate:"required"`
}

type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// TimelineEntry records one status change. Entries are append-only.
type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Order struct {
	ID              int             `json:"id,omitempty"`
	Number          string          `json:"order_number,omitempty"`
	WebsiteSlug     string          `json:"website_slug"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	Coupons         []string        `json:"coupons,omitempty"`
	Totals          OrderTotals     `json:"totals"`
	Status          OrderStatus     `json:"status"`
	Timeline        []TimelineEntry `json:"timeline"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}

// Transition moves the order to next and appends a timeline entry. The
// order is left untouched when the move is not allowed.
func (o *Order) Transition(next OrderStatus, note string, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	o.Timeline = append(o.Timeline, TimelineEntry{Status: next, Note: note, Timestamp: at})
	return nil
}

// NewOrder starts an order in the created state with its first timeline entry.
func NewOrder(websiteSlug string, items []OrderItem, at time.Time) Order {
	return Order{
		WebsiteSlug: websiteSlug,
		Items:       items,
		Status:      OrderCreated,
		Timeline:    []TimelineEntry{{Status: OrderCreated, Timestamp: at}},
		CreatedAt:   at,
	}
}
