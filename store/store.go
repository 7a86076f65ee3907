package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vitrine/cart"
	"vitrine/services"
)

// Store owns the admin application state. Every mutation goes through
// Dispatch, which runs Reduce under the lock and then notifies subscribers.
type Store struct {
	mu    sync.Mutex
	state State

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)

	log *zap.Logger
}

func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{state: Initial(), subs: make(map[int]func(State)), log: log}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	s.mu.Unlock()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return next
}

// Subscribe registers fn for every state change. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Backend is what Hydrate loads from.
type Backend struct {
	Websites *services.WebsiteService
	Products *services.ProductService
	Blogs    *services.BlogService
	Orders   *services.OrderService
	Cart     *services.CartService
}

func loadFailed(resource string) string {
	return "failed to load " + resource + " — backend may not be running"
}

// Hydrate fetches every resource concurrently. A failing resource records
// its message in UI.Error; the others still load.
func (s *Store) Hydrate(ctx context.Context, b Backend) {
	s.Dispatch(SetLoading{Loading: true})
	defer s.Dispatch(SetLoading{Loading: false})

	var g errgroup.Group
	g.Go(func() error {
		res := b.Websites.GetWebsites(ctx)
		s.apply(res.Success, "websites", res.Error, func() Action { return SetWebsites{Websites: res.Data} })
		return nil
	})
	g.Go(func() error {
		res := b.Products.GetProducts(ctx, 0)
		s.apply(res.Success, "products", res.Error, func() Action { return SetProducts{Products: res.Data} })
		return nil
	})
	g.Go(func() error {
		res := b.Blogs.GetBlogs(ctx, 0)
		s.apply(res.Success, "blogs", res.Error, func() Action { return SetBlogs{Blogs: res.Data} })
		return nil
	})
	g.Go(func() error {
		res := b.Orders.GetOrders(ctx)
		s.apply(res.Success, "orders", res.Error, func() Action { return SetOrders{Orders: res.Data} })
		return nil
	})
	g.Go(func() error {
		res := b.Cart.GetCart(ctx)
		s.apply(res.Success, "cart", res.Error, func() Action { return LoadCart{Cart: cartFromEntries(res.Data)} })
		return nil
	})
	_ = g.Wait()
}

func (s *Store) apply(success bool, resource, msg string, action func() Action) {
	if !success {
		s.log.Warn("hydrate failed", zap.String("resource", resource), zap.String("error", msg))
		s.Dispatch(SetError{Message: loadFailed(resource)})
		return
	}
	s.Dispatch(action())
}

func cartFromEntries(entries []services.CartEntry) cart.Cart {
	slug := ""
	if len(entries) > 0 {
		slug = entries[0].WebsiteSlug
	}
	c := cart.New(slug)
	for _, e := range entries {
		c = c.Add(cart.LineItem{
			ProductID: e.ProductID,
			Name:      e.Name,
			Price:     e.Price,
			Quantity:  e.Quantity,
			Variant:   e.Variant,
		})
	}
	return c
}

// Optimistic applies local immediately, then runs commit. When commit fails
// the authoritative state is re-fetched through reload; if that fails too,
// only what local removed is put back, so dispatches made meanwhile survive.
// The commit error is returned.
func (s *Store) Optimistic(ctx context.Context, local Action, commit func(context.Context) error, reload func(context.Context) (Action, error)) error {
	undo := undoFor(s.State(), local)
	s.Dispatch(local)

	err := commit(ctx)
	if err == nil {
		return nil
	}

	s.log.Warn("optimistic update rejected", zap.Error(err))
	if reload != nil {
		a, rerr := reload(ctx)
		if rerr == nil {
			s.Dispatch(a)
			s.Dispatch(SetError{Message: err.Error()})
			return err
		}
		s.log.Warn("reload after rejected update failed", zap.Error(rerr))
	}
	if undo != nil {
		s.Dispatch(undo)
	}
	s.Dispatch(SetError{Message: err.Error()})
	return err
}

// undoFor returns the action reverting local, computed against the state
// before it ran. Actions without an undo return nil.
func undoFor(before State, local Action) Action {
	switch a := local.(type) {
	case RemoveProduct:
		for i, p := range before.Products {
			if p.ID == a.ID {
				return reinsertProduct{product: p, index: i}
			}
		}
	case RemoveBlog:
		for i, b := range before.Blogs {
			if b.ID == a.ID {
				return reinsertBlog{blog: b, index: i}
			}
		}
	}
	return nil
}
