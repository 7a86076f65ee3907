package store

import (
	"fmt"

	"vitrine/cart"
	"vitrine/models"
	"vitrine/services"
)

type Search struct {
	Query   string
	Results []services.SearchHit
}

type UI struct {
	Loading bool
	Error   string
}

type State struct {
	Cart     cart.Cart
	Websites []models.Website
	Products []models.Product
	Blogs    []models.BlogPost
	Orders   []models.Order
	Search   Search
	UI       UI
}

func Initial() State {
	return State{Cart: cart.New("")}
}

// Reduce returns the state after applying a. It never mutates s: slices are
// replaced, never written through.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.UI.Loading = a.Loading
	case SetError:
		s.UI.Error = a.Message
	case LoadCart:
		s.Cart = a.Cart
	case AddToCart:
		s.Cart = s.Cart.Add(a.Item)
	case RemoveFromCart:
		s.Cart = s.Cart.Remove(a.Key)
	case UpdateCartQuantity:
		s.Cart = s.Cart.UpdateQuantity(a.Key, a.Quantity)
	case ClearCart:
		s.Cart = s.Cart.Clear()
	case ApplyDiscount:
		next, err := s.Cart.ApplyDiscount(a.Discount)
		if err != nil {
			s.UI.Error = fmt.Sprintf("%s: %v", a.Discount.Code, err)
			break
		}
		s.Cart = next
		s.UI.Error = ""
	case SetWebsites:
		s.Websites = a.Websites
	case SetProducts:
		s.Products = a.Products
	case SetBlogs:
		s.Blogs = a.Blogs
	case RemoveBlog:
		s.Blogs = without(s.Blogs, func(b models.BlogPost) bool { return b.ID == a.ID })
	case RemoveProduct:
		s.Products = without(s.Products, func(p models.Product) bool { return p.ID == a.ID })
	case SetOrders:
		s.Orders = a.Orders
	case UpsertOrder:
		s.Orders = upsertOrder(s.Orders, a.Order)
	case SetSearchQuery:
		s.Search.Query = a.Query
	case SetSearchResults:
		s.Search.Results = a.Results
	case reinsertProduct:
		s.Products = reinsert(s.Products, a.product, a.index, func(p models.Product) bool { return p.ID == a.product.ID })
	case reinsertBlog:
		s.Blogs = reinsert(s.Blogs, a.blog, a.index, func(b models.BlogPost) bool { return b.ID == a.blog.ID })
	}
	return s
}

func without[T any](in []T, drop func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

// reinsert puts v back at index, or at the end when the list has shrunk
// since. A list that already holds v is returned as is.
func reinsert[T any](in []T, v T, index int, same func(T) bool) []T {
	for _, existing := range in {
		if same(existing) {
			return in
		}
	}
	if index > len(in) {
		index = len(in)
	}
	out := make([]T, 0, len(in)+1)
	out = append(out, in[:index]...)
	out = append(out, v)
	return append(out, in[index:]...)
}

func upsertOrder(orders []models.Order, o models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders)+1)
	replaced := false
	for _, existing := range orders {
		if existing.ID == o.ID {
			out = append(out, o)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append([]models.Order{o}, out...)
	}
	return out
}
