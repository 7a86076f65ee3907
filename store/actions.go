package store

import (
	"vitrine/cart"
	"vitrine/models"
	"vitrine/services"
)

// Action is the closed set of state transitions. Only types in this file
// implement it.
type Action interface {
	action()
}

type SetLoading struct{ Loading bool }

// SetError records a user-facing message. An empty Message clears it.
type SetError struct{ Message string }

type LoadCart struct{ Cart cart.Cart }

type AddToCart struct{ Item cart.LineItem }

type RemoveFromCart struct{ Key string }

type UpdateCartQuantity struct {
	Key      string
	Quantity int
}

type ClearCart struct{}

type ApplyDiscount struct{ Discount cart.Discount }

type SetWebsites struct{ Websites []models.Website }

type SetProducts struct{ Products []models.Product }

type SetBlogs struct{ Blogs []models.BlogPost }

type RemoveBlog struct{ ID int }

type RemoveProduct struct{ ID int }

type SetOrders struct{ Orders []models.Order }

// UpsertOrder replaces the order with the same id, or prepends it.
type UpsertOrder struct{ Order models.Order }

type SetSearchQuery struct{ Query string }

type SetSearchResults struct{ Results []services.SearchHit }

// The reinsert actions undo an optimistic remove when the authoritative
// reload fails too. They touch only their own list.
type reinsertProduct struct {
	product models.Product
	index   int
}

type reinsertBlog struct {
	blog  models.BlogPost
	index int
}

func (SetLoading) action()         {}
func (SetError) action()           {}
func (LoadCart) action()           {}
func (AddToCart) action()          {}
func (RemoveFromCart) action()     {}
func (UpdateCartQuantity) action() {}
func (ClearCart) action()          {}
func (ApplyDiscount) action()      {}
func (SetWebsites) action()        {}
func (SetProducts) action()        {}
func (SetBlogs) action()           {}
func (RemoveBlog) action()         {}
func (RemoveProduct) action()      {}
func (SetOrders) action()          {}
func (UpsertOrder) action()        {}
func (SetSearchQuery) action()     {}
func (SetSearchResults) action()   {}
func (reinsertProduct) action()    {}
func (reinsertBlog) action()       {}
