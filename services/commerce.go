package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine/models"
)

// CartEntry is a line of the backend-held cart.
type CartEntry struct {
	ID          int             `json:"id,omitempty"`
	ProductID   int             `json:"product"`
	Quantity    int             `json:"quantity"`
	Variant     string          `json:"variant,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Name        string          `json:"name,omitempty"`
	WebsiteSlug string          `json:"website_slug,omitempty"`
}

type CartService struct {
	api API
}

func NewCartService(api API) *CartService {
	return &CartService{api: api}
}

func (s *CartService) GetCart(ctx context.Context) Result[[]CartEntry] {
	return getList[CartEntry](ctx, s.api, "/cart/")
}

func (s *CartService) AddToCart(ctx context.Context, entry CartEntry) Result[CartEntry] {
	return send[CartEntry](ctx, s.api, "POST", "/cart/add_to_cart/", entry)
}

func (s *CartService) UpdateCartItem(ctx context.Context, id, quantity int) Result[CartEntry] {
	return send[CartEntry](ctx, s.api, "PUT", itemPath("/cart/", id), map[string]int{"quantity": quantity})
}

func (s *CartService) RemoveFromCart(ctx context.Context, id int) Result[struct{}] {
	return remove(ctx, s.api, itemPath("/cart/", id))
}

// ClearCart empties the cart, scoped to one website when slug is set.
func (s *CartService) ClearCart(ctx context.Context, websiteSlug string) Result[struct{}] {
	path := "/cart/clear_cart/"
	if websiteSlug != "" {
		path = withQuery(path, url.Values{"website_slug": {websiteSlug}})
	}
	return remove(ctx, s.api, path)
}

type OrderService struct {
	api API
}

func NewOrderService(api API) *OrderService {
	return &OrderService{api: api}
}

func (s *OrderService) GetOrders(ctx context.Context) Result[[]models.Order] {
	return getList[models.Order](ctx, s.api, "/orders/")
}

func (s *OrderService) GetOrder(ctx context.Context, id int) Result[models.Order] {
	return getOne[models.Order](ctx, s.api, itemPath("/orders/", id))
}

func (s *OrderService) CreateOrder(ctx context.Context, o models.Order) Result[models.Order] {
	return send[models.Order](ctx, s.api, "POST", "/orders/create_order/", o)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) Result[models.Order] {
	return send[models.Order](ctx, s.api, "PUT", itemPath("/orders/", id), map[string]models.OrderStatus{"status": status})
}

// GetDashboard returns the backend's aggregate sales figures as-is.
func (s *OrderService) GetDashboard(ctx context.Context) Result[map[string]any] {
	return getOne[map[string]any](ctx, s.api, "/analytics/dashboard/")
}

type SearchHit struct {
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Snippet   string           `json:"snippet"`
	URL       string           `json:"url"`
	Relevance float64          `json:"relevance"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type SearchResponse struct {
	Results     []SearchHit `json:"results"`
	Total       int         `json:"total"`
	Query       string      `json:"query"`
	Suggestions []string    `json:"suggestions"`
}

type PopularSearch struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type SearchService struct {
	api API
}

func NewSearchService(api API) *SearchService {
	return &SearchService{api: api}
}

func (s *SearchService) Search(ctx context.Context, query string, filters url.Values) Result[SearchResponse] {
	params := url.Values{}
	for k, v := range filters {
		params[k] = v
	}
	params.Set("q", query)
	return getOne[SearchResponse](ctx, s.api, withQuery("/search/", params))
}

func (s *SearchService) Suggestions(ctx context.Context, query string) Result[[]string] {
	return getList[string](ctx, s.api, withQuery("/search/suggestions/", url.Values{"q": {query}}))
}

func (s *SearchService) Popular(ctx context.Context) Result[[]PopularSearch] {
	return getList[PopularSearch](ctx, s.api, "/search/popular/")
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	Code     string          `json:"code"`
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Type     string          `json:"type"`
	Message  string          `json:"message,omitempty"`
}

const invalidCouponMessage = "Invalid coupon code"

type CouponService struct {
	api API
}

func NewCouponService(api API) *CouponService {
	return &CouponService{api: api}
}

// ValidateCoupon asks the backend about code. An answer with valid=false is
// reported as a failed result carrying the backend's message.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string) Result[Coupon] {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Result[Coupon]{Error: invalidCouponMessage}
	}

	res := send[Coupon](ctx, s.api, "POST", "/coupons/validate", map[string]string{"code": code})
	if !res.Success {
		return res
	}
	if !res.Data.Valid {
		msg := res.Data.Message
		if msg == "" {
			msg = invalidCouponMessage
		}
		return Result[Coupon]{Error: msg}
	}
	if res.Data.Type != DiscountFixed {
		res.Data.Type = DiscountPercentage
	}
	res.Data.Code = code
	return res
}

type PaymentRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	WebsiteSlug    string          `json:"website_slug"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Method         string          `json:"payment_method"`
	CardToken      string          `json:"card_token,omitempty"`
	Billing        models.Address  `json:"billing_address"`
}

type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

type PaymentService struct {
	api API
}

func NewPaymentService(api API) *PaymentService {
	return &PaymentService{api: api}
}

func (s *PaymentService) ProcessPayment(ctx context.Context, req PaymentRequest) Result[PaymentResult] {
	res := send[PaymentResult](ctx, s.api, "POST", "/payments/process", req)
	if !res.Success {
		return res
	}
	if !res.Data.Success {
		msg := res.Data.Message
		if msg == "" {
			msg = "Payment was declined"
		}
		return Result[PaymentResult]{Data: res.Data, Error: msg}
	}
	return res
}
