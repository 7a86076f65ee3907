package localstore

import (
	"context"

	"vitrine/cart"
)

// CartStore persists shopper carts in the draft table. It is the cart.Store
// used when redis is not configured.
type CartStore struct {
	drafts *DraftStore
}

func NewCartStore(drafts *DraftStore) *CartStore {
	return &CartStore{drafts: drafts}
}

func (s *CartStore) Load(ctx context.Context, key string) (cart.Cart, error) {
	var c cart.Cart
	found, err := s.drafts.Get(ctx, key, &c)
	if err != nil {
		return cart.Cart{}, err
	}
	if !found {
		return cart.Cart{}, cart.ErrCartNotFound
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, key string, c cart.Cart) error {
	return s.drafts.Put(ctx, KindCart, key, c)
}

func (s *CartStore) Delete(ctx context.Context, key string) error {
	return s.drafts.Delete(ctx, key)
}
