package cart

import (
	"context"
	"errors"
)

var ErrCartNotFound = errors.New("cart not found")

// Store persists carts between requests. Load returns ErrCartNotFound when
// nothing is stored under the key.
type Store interface {
	Load(ctx context.Context, key string) (Cart, error)
	Save(ctx context.Context, key string, c Cart) error
	Delete(ctx context.Context, key string) error
}

// StorageKey scopes a shopper's cart to one website.
func StorageKey(sessionID, websiteSlug string) string {
	return "cart_" + websiteSlug + ":" + sessionID
}

// LoadOrNew returns the stored cart or an empty one for the website. Any
// failure other than a miss is returned alongside the empty cart.
func LoadOrNew(ctx context.Context, s Store, sessionID, websiteSlug string) (Cart, error) {
	c, err := s.Load(ctx, StorageKey(sessionID, websiteSlug))
	if errors.Is(err, ErrCartNotFound) {
		return New(websiteSlug), nil
	}
	if err != nil {
		return New(websiteSlug), err
	}
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	if c.Discounts == nil {
		c.Discounts = []Discount{}
	}
	c.WebsiteSlug = websiteSlug
	return c, nil
}
